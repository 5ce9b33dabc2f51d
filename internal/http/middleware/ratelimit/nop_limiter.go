package ratelimit

// NopLimiter allows everything, used when limiting is disabled.
type NopLimiter struct{}

// Allow always returns true.
func (NopLimiter) Allow(string) bool { return true }

// NewNopLimiter returns NopLimiter.
func NewNopLimiter() Limiter { return NopLimiter{} }
