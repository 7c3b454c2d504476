// Package manager is the entry point for creating, importing and exporting
// key material.
package manager

import (
	"encoding/hex"

	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"github.com/arcana-network/keygen/codec"
	"github.com/arcana-network/keygen/common"
	"github.com/arcana-network/keygen/curves"
	"github.com/arcana-network/keygen/entropy"
	"github.com/arcana-network/keygen/keys"
	"github.com/arcana-network/keygen/scalar"
	"github.com/arcana-network/keygen/telemetry"
)

const (
	opGenerate      = "generate"
	opImportPrivate = "import_private"
	opImportPublic  = "import_public"
	opExport        = "export"
)

// KeyManager creates key material on one curve. It holds no key state and is
// safe for concurrent use.
type KeyManager struct {
	curve       *curves.Curve
	source      entropy.Source
	metrics     *telemetry.Metrics
	publicCache *cache.Cache
}

func New(curve *curves.Curve, opts ...Option) *KeyManager {
	m := &KeyManager{
		curve:  curve,
		source: entropy.NewOSSource(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *KeyManager) Curve() *curves.Curve {
	return m.curve
}

// Generate draws a fresh private scalar and derives its public point.
func (m *KeyManager) Generate() (*keys.KeyMaterial, error) {
	d, err := scalar.ReduceToValidScalar(m.source, m.curve)
	if err != nil {
		return nil, m.fail(opGenerate, "Generate", err)
	}
	k, err := keys.FromScalar(m.curve, d)
	if err != nil {
		d.Zero()
		return nil, m.fail(opGenerate, "Generate", err)
	}
	m.metrics.IncrementKeysGenerated()
	m.logKeyEvent("Generate", k.PublicKey())
	return k, nil
}

// ImportPrivate builds key material from a raw big-endian scalar. enc is
// copied and left untouched.
func (m *KeyManager) ImportPrivate(enc []byte) (*keys.KeyMaterial, error) {
	d, err := codec.DecodeScalar(m.curve, enc)
	if err != nil {
		common.LogDecodeError(common.MANAGER_COMPONENT_NAME, "ImportPrivate", codec.FormatRawScalarHex.String(), err)
		m.metrics.IncrementFailure(opImportPrivate)
		return nil, err
	}
	k, err := keys.FromScalar(m.curve, d)
	if err != nil {
		d.Zero()
		return nil, m.fail(opImportPrivate, "ImportPrivate", err)
	}
	m.metrics.IncrementKeysImported("private")
	m.logKeyEvent("ImportPrivate", k.PublicKey())
	return k, nil
}

// ImportPublic builds public-only key material from a compressed or
// uncompressed point encoding.
func (m *KeyManager) ImportPublic(enc []byte) (*keys.KeyMaterial, error) {
	pub, err := m.decodePublic(enc)
	if err != nil {
		m.metrics.IncrementFailure(opImportPublic)
		return nil, err
	}
	k, err := keys.New(m.curve, nil, pub)
	if err != nil {
		return nil, m.fail(opImportPublic, "ImportPublic", err)
	}
	m.metrics.IncrementKeysImported("public")
	m.logKeyEvent("ImportPublic", pub)
	return k, nil
}

func (m *KeyManager) decodePublic(enc []byte) (*keys.PublicPoint, error) {
	cacheKey := m.curve.Name + ":" + hex.EncodeToString(enc)
	if m.publicCache != nil {
		if cached, found := m.publicCache.Get(cacheKey); found {
			return cached.(*keys.PublicPoint), nil
		}
	}

	f, err := codec.DetectPointFormat(m.curve, enc)
	if err != nil {
		common.LogDecodeError(common.MANAGER_COMPONENT_NAME, "ImportPublic", "", err)
		return nil, err
	}
	pub, err := codec.DecodePoint(m.curve, enc, f)
	if err != nil {
		common.LogDecodeError(common.MANAGER_COMPONENT_NAME, "ImportPublic", f.String(), err)
		return nil, err
	}

	if m.publicCache != nil {
		m.publicCache.SetDefault(cacheKey, pub)
	}
	return pub, nil
}

// Export encodes k. A raw scalar export fails once k is disposed.
func (m *KeyManager) Export(k *keys.KeyMaterial, f codec.Format) (codec.EncodedKey, error) {
	if k.Curve().ID != m.curve.ID {
		return nil, m.fail(opExport, "Export", common.Errorf("Export", common.ErrKeyMismatch, "key is on %s, manager on %s", k.Curve().Name, m.curve.Name))
	}
	enc, err := codec.Encode(k, f)
	if err != nil {
		return nil, m.fail(opExport, "Export", err)
	}
	m.metrics.IncrementKeysExported(f.String())
	return enc, nil
}

// WithKey runs fn and disposes k afterwards.
func (m *KeyManager) WithKey(k *keys.KeyMaterial, fn func(*keys.KeyMaterial) error) error {
	return keys.Use(k, fn)
}

func (m *KeyManager) fail(op, function string, err error) error {
	m.metrics.IncrementFailure(op)
	common.LogOperationError(common.MANAGER_COMPONENT_NAME, function, err)
	return err
}

func (m *KeyManager) logKeyEvent(function string, pub *keys.PublicPoint) {
	if !log.IsLevelEnabled(log.DebugLevel) {
		return
	}
	id, err := codec.PublicIdentifier(pub)
	if err != nil {
		return
	}
	common.LogKeyEvent(common.MANAGER_COMPONENT_NAME, function, m.curve.Name, id)
}
