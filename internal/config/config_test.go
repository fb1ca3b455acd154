package config

import (
    "reflect"
    "testing"
    "time"
)

func TestLoadCoachConfig_Defaults(t *testing.T) {
    cfg := LoadCoachConfig()
    if cfg.ID != 1 || cfg.TotalSeats != 80 || cfg.RowWidth != 7 || cfg.MaxSeatsPerReq != 7 {
        t.Fatalf("unexpected defaults: %+v", cfg)
    }
    if cfg.FillRatio != 0.5 {
        t.Fatalf("fill ratio %v", cfg.FillRatio)
    }
}

func TestLoadCoachConfig_Overrides(t *testing.T) {
    t.Setenv("COACH_ID", "3")
    t.Setenv("COACH_TOTAL_SEATS", "40")
    t.Setenv("COACH_ROW_WIDTH", "4")
    t.Setenv("MAX_SEATS_PER_BOOKING", "0")
    t.Setenv("COACH_FILL_RATIO", "1.5")
    cfg := LoadCoachConfig()
    if cfg.ID != 3 || cfg.TotalSeats != 40 || cfg.RowWidth != 4 {
        t.Fatalf("overrides not applied: %+v", cfg)
    }
    if cfg.MaxSeatsPerReq != 4 {
        t.Fatalf("max seats should fall back to row width, got %d", cfg.MaxSeatsPerReq)
    }
    if cfg.FillRatio != 0.5 {
        t.Fatalf("out of range ratio should reset, got %v", cfg.FillRatio)
    }
}

func TestLoadCORSConfig(t *testing.T) {
    t.Setenv("CORS_ALLOW_ORIGINS", " http://localhost:4200/ ,https://coach.example.com,, ")
    got := LoadCORSConfig().AllowOrigins
    want := []string{"http://localhost:4200", "https://coach.example.com"}
    if !reflect.DeepEqual(got, want) {
        t.Fatalf("got %v, want %v", got, want)
    }
}

func TestLoadBookingLimitConfig(t *testing.T) {
    cfg := LoadBookingLimitConfig()
    if !cfg.Enabled || cfg.Burst != 10 || cfg.RefillEvery != 2*time.Second || cfg.Prefix != "coach-rl" {
        t.Fatalf("unexpected defaults: %+v", cfg)
    }
    if cfg.IdleTTL() != time.Minute {
        t.Fatalf("idle ttl should have a one minute floor, got %s", cfg.IdleTTL())
    }

    t.Setenv("BOOKING_LIMIT_ENABLED", "OFF")
    t.Setenv("BOOKING_LIMIT_BURST", "0")
    t.Setenv("BOOKING_LIMIT_REFILL_EVERY", "-1s")
    cfg = LoadBookingLimitConfig()
    if cfg.Enabled {
        t.Fatal("expected limiter disabled")
    }
    if cfg.Burst != 1 || cfg.RefillEvery != time.Second {
        t.Fatalf("values not clamped: %+v", cfg)
    }

    t.Setenv("BOOKING_LIMIT_BURST", "30")
    t.Setenv("BOOKING_LIMIT_REFILL_EVERY", "4s")
    if got := LoadBookingLimitConfig().IdleTTL(); got != 2*time.Minute {
        t.Fatalf("idle ttl %s, want the full refill time", got)
    }
}

func TestLoadCacheConfig(t *testing.T) {
    t.Setenv("CACHE_TTL", "bogus")
    cfg := LoadCacheConfig()
    if !cfg.Enabled || cfg.TTL != 10*time.Second || cfg.Prefix != "coach-cache" || cfg.MaxBodyBytes != 256<<10 {
        t.Fatalf("unexpected defaults: %+v", cfg)
    }
    t.Setenv("CACHE_ENABLED", "false")
    t.Setenv("CACHE_TTL", "0s")
    cfg = LoadCacheConfig()
    if cfg.Enabled || cfg.TTL != 10*time.Second {
        t.Fatalf("unexpected config: %+v", cfg)
    }
}

func TestLoadRedisConfig(t *testing.T) {
    t.Setenv("REDIS_ADDR", "cache:6380")
    if got := LoadRedisConfig().Addr; got != "cache:6380" {
        t.Fatalf("addr %q", got)
    }
    t.Setenv("REDIS_HOST", "redis")
    t.Setenv("REDIS_PORT", "6379")
    t.Setenv("REDIS_TLS", "1")
    cfg := LoadRedisConfig()
    if cfg.Addr != "redis:6379" || !cfg.TLS {
        t.Fatalf("unexpected config %+v", cfg)
    }
}
