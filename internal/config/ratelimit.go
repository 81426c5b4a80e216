package config

import "time"

// RateLimitConfig controls the fixed-window limiter applied to the
// booking endpoints.  Limit requests per Window per client IP.
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
	Prefix  string
}

// LoadRateLimitConfig reads limiter settings from the environment.  The
// defaults allow 30 booking calls per minute per IP, which is far above
// any legitimate client while still damping scripted abuse.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled: envOr("RATE_LIMIT_ENABLED", "true") != "false",
		Limit:   intOr("RATE_LIMIT_REQUESTS", 30),
		Window:  time.Minute,
		Prefix:  envOr("RATE_LIMIT_PREFIX", "rl"),
	}
	if v := envOr("RATE_LIMIT_WINDOW", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Window = d
		}
	}
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}
	return cfg
}
