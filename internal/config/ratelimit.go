package config

import "time"

// BookingLimitConfig throttles the endpoints a passenger can hammer (booking
// and login).  Each client IP gets its own bucket per route: Burst requests
// may go through back to back, after which one more is allowed every
// RefillEvery.
type BookingLimitConfig struct {
    Enabled     bool
    Burst       int
    RefillEvery time.Duration
    Prefix      string
    Debug       bool
}

// IdleTTL is how long an untouched bucket is kept in Redis: the time it takes
// to refill from empty, with a one minute floor.
func (c BookingLimitConfig) IdleTTL() time.Duration {
    return max(time.Duration(c.Burst)*c.RefillEvery, time.Minute)
}

// LoadBookingLimitConfig reads BOOKING_LIMIT_* variables.  Defaults allow a
// burst of 10 requests and one more every 2s.
func LoadBookingLimitConfig() BookingLimitConfig {
    cfg := BookingLimitConfig{
        Enabled:     envBool("BOOKING_LIMIT_ENABLED", true),
        Burst:       envInt("BOOKING_LIMIT_BURST", 10),
        RefillEvery: envDur("BOOKING_LIMIT_REFILL_EVERY", 2*time.Second),
        Prefix:      envStr("BOOKING_LIMIT_PREFIX", "coach-rl"),
        Debug:       envBool("BOOKING_LIMIT_DEBUG", false),
    }
    if cfg.Burst < 1 {
        cfg.Burst = 1
    }
    if cfg.RefillEvery <= 0 {
        cfg.RefillEvery = time.Second
    }
    return cfg
}
