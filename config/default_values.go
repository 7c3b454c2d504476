package config

import "time"

var (
	DefaultCurve             = "stark"
	DefaultBasePath          = "/tmp/keygen-data"
	DefaultHttpServerPort    = "8000"
	DefaultMetricsPort       = "9090"
	DefaultLogLevel          = "info"
	DefaultPublicKeyCacheTTL = "5m"
)

// CacheTTL parses PublicKeyCacheTTL. Zero or empty disables the cache.
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.PublicKeyCacheTTL == "" {
		return 0, nil
	}
	return time.ParseDuration(c.PublicKeyCacheTTL)
}
