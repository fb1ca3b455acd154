package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
    hash, err := HashPassword("s3cret", bcrypt.MinCost)
    if err != nil {
        t.Fatalf("hash: %v", err)
    }
    if !VerifyPassword(hash, "s3cret") {
        t.Fatal("expected password to verify")
    }
    if VerifyPassword(hash, "wrong") {
        t.Fatal("wrong password verified")
    }
    if VerifyPassword("", "s3cret") {
        t.Fatal("empty hash must never verify")
    }
}

func TestNewAccessToken(t *testing.T) {
    tok, err := NewAccessToken("k", "ops@example.com", RoleOperator, 5)
    if err != nil {
        t.Fatalf("issue: %v", err)
    }
    parsed, err := jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) { return []byte("k"), nil })
    if err != nil || !parsed.Valid {
        t.Fatalf("token did not verify: %v", err)
    }
    claims := parsed.Claims.(jwt.MapClaims)
    if claims["sub"] != "ops@example.com" || claims["role"] != RoleOperator {
        t.Fatalf("claims %v", claims)
    }
    if _, err := NewAccessToken("", "x", RoleOperator, 5); err == nil {
        t.Fatal("expected error for empty secret")
    }
    if _, err := NewAccessToken("k", "x", RoleOperator, 0); err == nil {
        t.Fatal("expected error for zero ttl")
    }
}

func TestParseAccessToken(t *testing.T) {
    good, _ := NewAccessToken("k", "ops@example.com", RoleOperator, 5)
    claims, err := ParseAccessToken("k", good.Token)
    if err != nil {
        t.Fatalf("parse: %v", err)
    }
    if claims.Subject != "ops@example.com" || claims.Role != RoleOperator {
        t.Fatalf("claims %+v", claims)
    }

    noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{Role: RoleOperator}).SignedString([]byte("k"))
    hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, AccessClaims{
        Role:             RoleOperator,
        RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
    }).SignedString([]byte("k"))

    tests := []struct {
        name, secret, raw string
    }{
        {"wrong secret", "other", good.Token},
        {"empty secret", "", good.Token},
        {"no expiry", "k", noExp},
        {"unexpected algorithm", "k", hs512},
        {"garbage", "k", "abc"},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            if _, err := ParseAccessToken(tt.secret, tt.raw); err == nil {
                t.Fatal("expected an error")
            }
        })
    }
}
