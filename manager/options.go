package manager

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/arcana-network/keygen/entropy"
	"github.com/arcana-network/keygen/telemetry"
)

type Option func(*KeyManager)

// WithEntropySource replaces the OS entropy source.
func WithEntropySource(src entropy.Source) Option {
	return func(m *KeyManager) {
		m.source = src
	}
}

func WithMetrics(metrics *telemetry.Metrics) Option {
	return func(m *KeyManager) {
		m.metrics = metrics
	}
}

// WithPublicKeyCache keeps validated imported public points for ttl, so
// repeated imports of the same encoding skip the curve and subgroup checks.
func WithPublicKeyCache(ttl time.Duration) Option {
	return func(m *KeyManager) {
		if ttl <= 0 {
			m.publicCache = nil
			return
		}
		m.publicCache = cache.New(ttl, 2*ttl)
	}
}
