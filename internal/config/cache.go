package config

import "time"

// CacheConfig controls the Redis response cache used on public content
// GETs (menu, news, testimonials).  When Enabled is false or no Redis
// client is available the middleware becomes a pass-through.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads cache settings from the environment.  Content
// pages change rarely, so the default TTL is generous.
func LoadCacheConfig() CacheConfig {
	ttl := 5 * time.Minute
	if v := envOr("CACHE_TTL", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		}
	}
	return CacheConfig{
		Enabled: envOr("CACHE_ENABLED", "true") != "false",
		TTL:     ttl,
		Prefix:  envOr("CACHE_PREFIX", "rc"),
	}
}
