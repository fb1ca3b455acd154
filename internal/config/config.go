package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types

    "github.com/joho/godotenv" // godotenv loads a local .env file into the process environment
)

// Config holds the runtime configuration every binary needs.  Each field
// corresponds to an environment variable.  Optional feature groups (coach
// layout, CORS, cache, rate limiting, Redis) live in their own loaders.
type Config struct {
    Env                  string // application environment (e.g. "dev", "prod")
    Port                 string // HTTP port to listen on
    DBUser               string // database username
    DBPass               string // database password (optional)
    DBHost               string // database host address
    DBPort               string // database port number
    DBName               string // database name
    JWTSecret            string // secret used to sign operator JWTs
    AccessTTLMin         int    // access token time-to-live in minutes
    OperatorEmail        string // login of the operator allowed to reset/fill the coach
    OperatorPasswordHash string // bcrypt hash of the operator password
}

// LoadDotEnv loads variables from a .env file in the working directory when
// one exists.  Variables already present in the environment win.
func LoadDotEnv() {
    if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
        log.Printf("config: could not load .env: %v", err)
    }
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:                  must("APP_ENV"),
        Port:                 must("APP_PORT"),
        DBUser:               must("DB_USER"),
        DBPass:               os.Getenv("DB_PASS"), // empty allowed
        DBHost:               must("DB_HOST"),
        DBPort:               must("DB_PORT"),
        DBName:               must("DB_NAME"),
        JWTSecret:            must("JWT_SECRET"),
        AccessTTLMin:         mustInt("ACCESS_TOKEN_TTL_MIN"),
        OperatorEmail:        os.Getenv("OPERATOR_EMAIL"),
        OperatorPasswordHash: os.Getenv("OPERATOR_PASSWORD_HASH"),
    }
}

// LoadDB reads only the database settings.  coachctl uses it so that it can
// run without the HTTP and JWT variables.
func LoadDB() Config {
    return Config{
        DBUser: must("DB_USER"),
        DBPass: os.Getenv("DB_PASS"),
        DBHost: must("DB_HOST"),
        DBPort: must("DB_PORT"),
        DBName: must("DB_NAME"),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// LoadBcryptCost reads BCRYPT_COST, defaulting to 12.
func LoadBcryptCost() int {
    return envInt("BCRYPT_COST", 12)
}
