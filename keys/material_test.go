package keys

import (
	"errors"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcana-network/keygen/common"
	"github.com/arcana-network/keygen/curves"
	"github.com/arcana-network/keygen/derivation"
	"github.com/arcana-network/keygen/entropy"
	"github.com/arcana-network/keygen/scalar"
)

func generate(t *testing.T, c *curves.Curve) (*scalar.PrivateScalar, *PublicPoint) {
	t.Helper()
	d, err := scalar.ReduceToValidScalar(entropy.NewOSSource(), c)
	require.NoError(t, err)
	p, err := derivation.DerivePublicPoint(c, d)
	require.NoError(t, err)
	pub, err := NewPublicPoint(c, p)
	require.NoError(t, err)
	return d, pub
}

func TestNewPublicPointRejects(t *testing.T) {
	stark := curves.CurveStark()
	ed := curves.CurveEd25519()

	_, err := NewPublicPoint(stark, nil)
	assert.True(t, errors.Is(err, common.ErrMalformedEncoding))

	_, err = NewPublicPoint(stark, stark.NewIdentityPoint())
	assert.True(t, errors.Is(err, common.ErrMalformedEncoding))

	_, err = NewPublicPoint(stark, ed.NewGeneratorPoint())
	assert.True(t, errors.Is(err, common.ErrMalformedEncoding))

	// order-8 point on edwards25519
	small, err := ed.Point.FromAffineCompressed(smallOrderEd25519)
	require.NoError(t, err)
	_, err = NewPublicPoint(ed, small)
	assert.True(t, errors.Is(err, common.ErrMalformedEncoding))

	// G plus a torsion component is on the curve but outside the subgroup
	_, err = NewPublicPoint(ed, ed.NewGeneratorPoint().Add(small))
	assert.True(t, errors.Is(err, common.ErrMalformedEncoding))

	pub, err := NewPublicPoint(ed, ed.NewGeneratorPoint())
	require.NoError(t, err)
	assert.Equal(t, ed.NewGeneratorPoint().ToAffineCompressed(), pub.Compressed())
}

var smallOrderEd25519 = []byte{
	0x26, 0xe8, 0x95, 0x8f, 0xc2, 0xb2, 0x27, 0xb0, 0x45, 0xc3, 0xf4, 0x89, 0xf2, 0xef, 0x98, 0xf0,
	0xd5, 0xdf, 0xac, 0x05, 0xd3, 0xc6, 0x33, 0x39, 0xb1, 0x38, 0x02, 0x88, 0x6d, 0x53, 0xfc, 0x05,
}

func TestNewKeyMaterial(t *testing.T) {
	for _, c := range []*curves.Curve{curves.CurveStark(), curves.CurveK256(), curves.CurveEd25519()} {
		t.Run(c.Name, func(t *testing.T) {
			d, pub := generate(t, c)
			k, err := New(c, d, pub)
			require.NoError(t, err)
			assert.True(t, k.HasPrivateKey())
			assert.False(t, k.IsDisposed())

			got, err := k.PrivateKey()
			require.NoError(t, err)
			derived, err := derivation.DerivePublicPoint(c, got)
			require.NoError(t, err)
			assert.True(t, derived.Equal(k.PublicKey().Point()))
		})
	}
}

func TestNewKeyMaterialMismatch(t *testing.T) {
	c := curves.CurveK256()
	d, _ := generate(t, c)
	_, other := generate(t, c)

	_, err := New(c, d, other)
	assert.True(t, errors.Is(err, common.ErrKeyMismatch))

	_, err = New(c, d, nil)
	assert.True(t, errors.Is(err, common.ErrKeyMismatch))

	_, starkPub := generate(t, curves.CurveStark())
	_, err = New(c, d, starkPub)
	assert.True(t, errors.Is(err, common.ErrKeyMismatch))
}

func TestPublicOnly(t *testing.T) {
	c := curves.CurveStark()
	_, pub := generate(t, c)
	k, err := New(c, nil, pub)
	require.NoError(t, err)
	assert.False(t, k.HasPrivateKey())

	_, err = k.PrivateKey()
	assert.True(t, errors.Is(err, common.ErrNoPrivateKey))
	require.NoError(t, k.Dispose())
	_, err = k.PrivateKey()
	assert.True(t, errors.Is(err, common.ErrKeyDisposed))
}

func TestDispose(t *testing.T) {
	c := curves.CurveStark()
	d, pub := generate(t, c)
	k, err := New(c, d, pub)
	require.NoError(t, err)

	require.NoError(t, k.Dispose())
	assert.True(t, k.IsDisposed())
	assert.True(t, d.IsZeroed())

	_, err = k.PrivateKey()
	assert.True(t, errors.Is(err, common.ErrKeyDisposed))
	assert.True(t, k.PublicKey().Equal(pub))

	err = k.Dispose()
	assert.True(t, errors.Is(err, common.ErrKeyDisposed))
	assert.Contains(t, k.String(), "disposed")
}

func TestConcurrentDispose(t *testing.T) {
	c := curves.CurveK256()
	d, pub := generate(t, c)
	k, err := New(c, d, pub)
	require.NoError(t, err)

	const workers = 32
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if k.Dispose() == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, success)
	assert.True(t, d.IsZeroed())
}

func TestUse(t *testing.T) {
	c := curves.CurveEd25519()
	d, pub := generate(t, c)
	k, err := New(c, d, pub)
	require.NoError(t, err)

	fnErr := errors.New("boom")
	err = Use(k, func(k *KeyMaterial) error {
		_, err := k.PrivateKey()
		require.NoError(t, err)
		return fnErr
	})
	assert.Equal(t, fnErr, err)
	assert.True(t, k.IsDisposed())

	err = Use(k, func(*KeyMaterial) error { return nil })
	assert.True(t, errors.Is(err, common.ErrKeyDisposed))
}

func TestDisposedScalarCannotRederive(t *testing.T) {
	c := curves.CurveK256()
	one, err := scalar.ValidateScalar(c, big.NewInt(1).FillBytes(make([]byte, 32)))
	require.NoError(t, err)
	pub, err := NewPublicPoint(c, c.NewGeneratorPoint())
	require.NoError(t, err)
	k, err := New(c, one, pub)
	require.NoError(t, err)
	require.NoError(t, k.Dispose())

	_, err = New(c, one, pub)
	assert.True(t, errors.Is(err, common.ErrInvalidScalar))
}

func TestFromScalar(t *testing.T) {
	c := curves.CurveEd25519()
	one, err := scalar.ValidateScalar(c, big.NewInt(1).FillBytes(make([]byte, 32)))
	require.NoError(t, err)
	k, err := FromScalar(c, one)
	require.NoError(t, err)
	assert.True(t, k.PublicKey().Point().Equal(c.NewGeneratorPoint()))

	one.Zero()
	_, err = FromScalar(c, one)
	assert.True(t, errors.Is(err, common.ErrInvalidScalar))
}
