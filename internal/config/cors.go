package config

import "strings"

// CORSConfig lists the browser origins allowed to call the API.  An empty
// list means cross-origin requests are rejected.
type CORSConfig struct {
    AllowOrigins []string
}

// LoadCORSConfig reads CORS_ALLOW_ORIGINS as a comma separated list.  The
// default whitelist covers the local front-end dev server.
func LoadCORSConfig() CORSConfig {
    raw := envStr("CORS_ALLOW_ORIGINS", "http://localhost:4200")
    var origins []string
    for _, o := range strings.Split(raw, ",") {
        o = strings.TrimRight(strings.TrimSpace(o), "/")
        if o != "" {
            origins = append(origins, o)
        }
    }
    return CORSConfig{AllowOrigins: origins}
}
