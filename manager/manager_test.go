package manager

import (
	"bytes"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcana-network/keygen/codec"
	"github.com/arcana-network/keygen/common"
	"github.com/arcana-network/keygen/curves"
	"github.com/arcana-network/keygen/derivation"
	"github.com/arcana-network/keygen/entropy"
	"github.com/arcana-network/keygen/keys"
	"github.com/arcana-network/keygen/telemetry"
)

func allCurves() []*curves.Curve {
	return []*curves.Curve{curves.CurveStark(), curves.CurveK256(), curves.CurveEd25519()}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if labelsMatch(metric, labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelsMatch(metric *dto.Metric, labels map[string]string) bool {
	if len(metric.GetLabel()) != len(labels) {
		return false
	}
	for _, lp := range metric.GetLabel() {
		if labels[lp.GetName()] != lp.GetValue() {
			return false
		}
	}
	return true
}

func TestGenerate(t *testing.T) {
	for _, c := range allCurves() {
		t.Run(c.Name, func(t *testing.T) {
			m := New(c)
			k, err := m.Generate()
			require.NoError(t, err)
			defer k.Dispose()

			d, err := k.PrivateKey()
			require.NoError(t, err)
			p, err := derivation.DerivePublicPoint(c, d)
			require.NoError(t, err)
			assert.True(t, p.Equal(k.PublicKey().Point()))
			assert.True(t, k.PublicKey().Point().IsInSubgroup())
		})
	}
}

func TestGenerateConcurrent(t *testing.T) {
	m := New(curves.CurveStark())
	const workers = 16
	results := make([][]byte, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			k, err := m.Generate()
			if !assert.NoError(t, err) {
				return
			}
			results[i] = k.PublicKey().Compressed()
			assert.NoError(t, k.Dispose())
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, r := range results {
		require.NotNil(t, r)
		assert.False(t, seen[string(r)])
		seen[string(r)] = true
	}
}

func TestGenerateSpread(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test skipped in short mode")
	}
	const (
		samples = 1024
		buckets = 8
		// chi-square, 7 degrees of freedom, p ~ 1e-4
		critical = 29.9
	)
	c := curves.CurveK256()
	m := New(c)
	n := c.Params.N()

	var counts [buckets]int
	for i := 0; i < samples; i++ {
		k, err := m.Generate()
		require.NoError(t, err)
		enc, err := m.Export(k, codec.FormatRawScalarHex)
		require.NoError(t, err)
		d := new(big.Int).SetBytes(enc)
		enc.Wipe()
		require.NoError(t, k.Dispose())

		idx := new(big.Int).Div(new(big.Int).Mul(d, big.NewInt(buckets)), n)
		counts[idx.Int64()]++
	}
	expected := float64(samples) / buckets
	var chi2 float64
	for _, o := range counts {
		diff := float64(o) - expected
		chi2 += diff * diff / expected
	}
	assert.Less(t, chi2, critical)
}

func TestGenerateEntropyFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(curves.CurveK256(),
		WithEntropySource(&entropy.ReaderSource{Reader: bytes.NewReader(nil)}),
		WithMetrics(telemetry.NewMetrics(reg)),
	)
	k, err := m.Generate()
	assert.Nil(t, k)
	assert.True(t, errors.Is(err, common.ErrEntropyUnavailable))
	assert.Equal(t, 1.0, counterValue(t, reg, "key_operation_failures_total", map[string]string{"op": "generate"}))
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestGenerateEntropyExhausted(t *testing.T) {
	m := New(curves.CurveStark(), WithEntropySource(&entropy.ReaderSource{Reader: zeroReader{}}))
	_, err := m.Generate()
	assert.True(t, errors.Is(err, common.ErrEntropyExhausted))
}

func TestImportPublicGenerator(t *testing.T) {
	for _, c := range allCurves() {
		m := New(c)
		for _, enc := range [][]byte{c.NewGeneratorPoint().ToAffineCompressed(), c.NewGeneratorPoint().ToAffineUncompressed()} {
			k, err := m.ImportPublic(enc)
			require.NoError(t, err, c.Name)
			assert.True(t, k.PublicKey().Point().Equal(c.NewGeneratorPoint()))
			assert.False(t, k.HasPrivateKey())

			_, err = m.Export(k, codec.FormatRawScalarHex)
			assert.True(t, errors.Is(err, common.ErrNoPrivateKey))
		}
	}
}

func TestImportPublicRejects(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := curves.CurveK256()
	m := New(c, WithMetrics(telemetry.NewMetrics(reg)))

	enc := c.NewGeneratorPoint().ToAffineCompressed()
	enc[0] = 0x05
	_, err := m.ImportPublic(enc)
	assert.True(t, errors.Is(err, common.ErrMalformedEncoding))

	enc = c.NewGeneratorPoint().ToAffineUncompressed()
	enc[64] ^= 1
	_, err = m.ImportPublic(enc)
	assert.True(t, errors.Is(err, common.ErrMalformedEncoding))

	_, err = m.ImportPublic([]byte{1, 2, 3})
	assert.True(t, errors.Is(err, common.ErrMalformedEncoding))

	assert.Equal(t, 3.0, counterValue(t, reg, "key_operation_failures_total", map[string]string{"op": "import_public"}))
}

func TestImportPublicCache(t *testing.T) {
	c := curves.CurveEd25519()
	m := New(c, WithPublicKeyCache(time.Minute))
	gen, err := m.Generate()
	require.NoError(t, err)
	enc := gen.PublicKey().Compressed()
	require.NoError(t, gen.Dispose())

	a, err := m.ImportPublic(enc)
	require.NoError(t, err)
	b, err := m.ImportPublic(enc)
	require.NoError(t, err)
	assert.Same(t, a.PublicKey(), b.PublicKey())
	assert.Equal(t, 1, m.publicCache.ItemCount())

	uncached := New(c)
	x, err := uncached.ImportPublic(enc)
	require.NoError(t, err)
	y, err := uncached.ImportPublic(enc)
	require.NoError(t, err)
	assert.NotSame(t, x.PublicKey(), y.PublicKey())
	assert.True(t, x.PublicKey().Equal(y.PublicKey()))
}

func TestImportPrivateRoundTrip(t *testing.T) {
	for _, c := range allCurves() {
		t.Run(c.Name, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			m := New(c, WithMetrics(telemetry.NewMetrics(reg)))
			k, err := m.Generate()
			require.NoError(t, err)

			raw, err := m.Export(k, codec.FormatRawScalarHex)
			require.NoError(t, err)
			defer raw.Wipe()

			imported, err := m.ImportPrivate(raw)
			require.NoError(t, err)
			assert.True(t, imported.PublicKey().Equal(k.PublicKey()))

			for _, f := range []codec.Format{codec.FormatCompressedPoint, codec.FormatUncompressedPoint} {
				enc, err := m.Export(k, f)
				require.NoError(t, err)
				pub, err := m.ImportPublic(enc)
				require.NoError(t, err)
				assert.True(t, pub.PublicKey().Equal(k.PublicKey()))
			}

			assert.Equal(t, 1.0, counterValue(t, reg, "keys_generated_total", nil))
			assert.Equal(t, 1.0, counterValue(t, reg, "keys_imported_total", map[string]string{"kind": "private"}))
			assert.Equal(t, 2.0, counterValue(t, reg, "keys_imported_total", map[string]string{"kind": "public"}))
			assert.Equal(t, 1.0, counterValue(t, reg, "keys_exported_total", map[string]string{"format": "raw-scalar-hex"}))
		})
	}
}

func TestImportPrivateRejects(t *testing.T) {
	c := curves.CurveStark()
	m := New(c)

	_, err := m.ImportPrivate(make([]byte, 32))
	assert.True(t, errors.Is(err, common.ErrInvalidScalar))
	_, err = m.ImportPrivate(c.Params.OrderBytes())
	assert.True(t, errors.Is(err, common.ErrInvalidScalar))
	_, err = m.ImportPrivate([]byte{1})
	assert.True(t, errors.Is(err, common.ErrMalformedEncoding))
}

func TestWithKeyDisposes(t *testing.T) {
	m := New(curves.CurveStark())
	k, err := m.Generate()
	require.NoError(t, err)

	var id string
	err = m.WithKey(k, func(k *keys.KeyMaterial) error {
		enc, err := m.Export(k, codec.FormatRawScalarHex)
		if err != nil {
			return err
		}
		enc.Wipe()
		id, err = codec.PublicIdentifier(k.PublicKey())
		return err
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.True(t, k.IsDisposed())

	_, err = k.PrivateKey()
	assert.True(t, errors.Is(err, common.ErrKeyDisposed))
	_, err = m.Export(k, codec.FormatRawScalarHex)
	assert.True(t, errors.Is(err, common.ErrKeyDisposed))
	_, err = m.Export(k, codec.FormatCompressedPoint)
	assert.NoError(t, err)
}

func TestExportWrongCurve(t *testing.T) {
	k, err := New(curves.CurveK256()).Generate()
	require.NoError(t, err)
	defer k.Dispose()

	_, err = New(curves.CurveStark()).Export(k, codec.FormatCompressedPoint)
	assert.True(t, errors.Is(err, common.ErrKeyMismatch))
}
