package config

import "time"

// CacheConfig controls the Redis response cache used for the public
// layout endpoint. When Enabled is false or no Redis client exists the
// middleware is a pass-through.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int64
}

// LoadCacheConfig reads cache settings with sane defaults. Layouts
// change rarely compared to how often they are viewed, so a short TTL
// already removes most database reads.
func LoadCacheConfig() CacheConfig {
	cfg := CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "respcache"),
		MaxBodyBytes: int64(envInt("CACHE_MAX_BODY_BYTES", 1<<20)),
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Second
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	return cfg
}
