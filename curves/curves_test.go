package curves

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allCurves() []*Curve {
	return []*Curve{CurveStark(), CurveK256(), CurveEd25519()}
}

func TestGeneratorMatchesParameters(t *testing.T) {
	for _, c := range allCurves() {
		t.Run(c.Name, func(t *testing.T) {
			g := c.NewGeneratorPoint()
			assert.True(t, g.IsOnCurve())
			assert.True(t, g.IsInSubgroup())
			assert.False(t, g.IsIdentity())

			expected := make([]byte, 0, 65)
			expected = append(expected, 4)
			expected = append(expected, c.Params.Gx().FillBytes(make([]byte, c.Params.FieldLen()))...)
			expected = append(expected, c.Params.Gy().FillBytes(make([]byte, c.Params.FieldLen()))...)
			assert.Equal(t, hex.EncodeToString(expected), hex.EncodeToString(g.ToAffineUncompressed()))
			assert.Equal(t, c.Params.Gx().FillBytes(make([]byte, c.Params.FieldLen())), g.X())
		})
	}
}

func TestIdentity(t *testing.T) {
	for _, c := range allCurves() {
		t.Run(c.Name, func(t *testing.T) {
			id := c.NewIdentityPoint()
			g := c.NewGeneratorPoint()
			assert.True(t, id.IsIdentity())
			assert.True(t, g.Add(id).Equal(g))
			assert.True(t, id.Add(g).Equal(g))
			assert.False(t, id.Equal(g))
			assert.True(t, id.Equal(c.NewIdentityPoint()))
		})
	}
}

func TestPointEncodingRoundTrip(t *testing.T) {
	for _, c := range allCurves() {
		t.Run(c.Name, func(t *testing.T) {
			p := c.NewGeneratorPoint()
			for i := 0; i < 8; i++ {
				compressed := p.ToAffineCompressed()
				require.Len(t, compressed, c.CompressedLen())
				fromCompressed, err := c.Point.FromAffineCompressed(compressed)
				require.NoError(t, err)
				assert.True(t, fromCompressed.Equal(p))

				uncompressed := p.ToAffineUncompressed()
				require.Len(t, uncompressed, c.UncompressedLen())
				fromUncompressed, err := c.Point.FromAffineUncompressed(uncompressed)
				require.NoError(t, err)
				assert.True(t, fromUncompressed.Equal(p))

				p = p.Double().Add(c.NewGeneratorPoint())
			}
		})
	}
}

func TestDoubleEqualsAdd(t *testing.T) {
	for _, c := range allCurves() {
		t.Run(c.Name, func(t *testing.T) {
			g := c.NewGeneratorPoint()
			assert.True(t, g.Double().Equal(g.Add(g)))
			assert.False(t, g.Double().Equal(g))
		})
	}
}

func TestSelect(t *testing.T) {
	for _, c := range allCurves() {
		t.Run(c.Name, func(t *testing.T) {
			g := c.NewGeneratorPoint()
			g2 := g.Double()
			assert.True(t, g.Select(0, g2).Equal(g))
			assert.True(t, g.Select(1, g2).Equal(g2))
			assert.True(t, c.NewIdentityPoint().Select(1, g).Equal(g))
			assert.True(t, c.NewIdentityPoint().Select(0, g).IsIdentity())
		})
	}
}

func TestInvalidPrefix(t *testing.T) {
	for _, c := range []*Curve{CurveStark(), CurveK256()} {
		t.Run(c.Name, func(t *testing.T) {
			compressed := c.NewGeneratorPoint().ToAffineCompressed()
			compressed[0] = 0x05
			_, err := c.Point.FromAffineCompressed(compressed)
			assert.True(t, errors.Is(err, errInvalidPrefix))

			uncompressed := c.NewGeneratorPoint().ToAffineUncompressed()
			uncompressed[0] = 0x05
			_, err = c.Point.FromAffineUncompressed(uncompressed)
			assert.True(t, errors.Is(err, errInvalidPrefix))
		})
	}
}

func TestOffCurveRejected(t *testing.T) {
	for _, c := range allCurves() {
		t.Run(c.Name, func(t *testing.T) {
			uncompressed := c.NewGeneratorPoint().ToAffineUncompressed()
			uncompressed[len(uncompressed)-1] ^= 0x01
			_, err := c.Point.FromAffineUncompressed(uncompressed)
			assert.Error(t, err)
		})
	}
}

func TestCompressedNonResidueRejected(t *testing.T) {
	for _, c := range []*Curve{CurveStark(), CurveK256()} {
		t.Run(c.Name, func(t *testing.T) {
			rejected := 0
			for x := int64(1); x < 64; x++ {
				enc := make([]byte, 33)
				enc[0] = 2
				big.NewInt(x).FillBytes(enc[1:])
				_, err := c.Point.FromAffineCompressed(enc)
				if err != nil {
					assert.True(t, errors.Is(err, errNotOnCurve))
					rejected++
				}
			}
			// roughly half of all x have no matching y
			assert.Greater(t, rejected, 0)
		})
	}
}

func TestNonCanonicalCoordinateRejected(t *testing.T) {
	for _, c := range []*Curve{CurveStark(), CurveK256()} {
		t.Run(c.Name, func(t *testing.T) {
			enc := make([]byte, 33)
			enc[0] = 2
			c.Params.P().FillBytes(enc[1:])
			_, err := c.Point.FromAffineCompressed(enc)
			assert.True(t, errors.Is(err, errNonCanonical))
		})
	}
}

func TestEd25519SmallOrderPoint(t *testing.T) {
	c := CurveEd25519()
	// (0, -1) has order 2
	enc, err := hex.DecodeString("ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f")
	require.NoError(t, err)

	p, err := c.Point.FromAffineCompressed(enc)
	require.NoError(t, err)
	assert.False(t, p.IsIdentity())
	assert.False(t, p.IsInSubgroup())
	assert.True(t, p.Double().IsIdentity())

	mixed := c.NewGeneratorPoint().Add(p)
	assert.False(t, mixed.IsInSubgroup())
}

func TestEd25519NonCanonicalRejected(t *testing.T) {
	c := CurveEd25519()
	// y = p + 1 encodes the same point as y = 1
	enc, err := hex.DecodeString("eeffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f")
	require.NoError(t, err)
	_, err = c.Point.FromAffineCompressed(enc)
	assert.Error(t, err)
}

func TestWrongCurveOperand(t *testing.T) {
	stark := CurveStark().NewGeneratorPoint()
	k256 := CurveK256().NewGeneratorPoint()
	assert.Nil(t, stark.Add(k256))
	assert.Nil(t, stark.Select(1, k256))
	assert.False(t, stark.Equal(k256))
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		c, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, c.Name)
	}
	c, err := ByName("STARKNET")
	require.NoError(t, err)
	assert.Equal(t, CurveSTARK, c.ID)

	_, err = ByName("p521")
	assert.Error(t, err)
}

func TestParametersAreCopies(t *testing.T) {
	c := CurveStark()
	n := c.Params.N()
	n.SetInt64(7)
	assert.NotEqual(t, int64(7), c.Params.N().Int64())

	order := c.Params.OrderBytes()
	order[0] = 0xff
	assert.NotEqual(t, byte(0xff), c.Params.OrderBytes()[0])
	assert.Equal(t, 252, c.Params.OrderBitLen())
	assert.Equal(t, uint64(8), CurveEd25519().Params.Cofactor())
}

func TestDecodeCompressedPicksParity(t *testing.T) {
	for _, c := range []*Curve{CurveStark(), CurveK256()} {
		t.Run(c.Name, func(t *testing.T) {
			fieldLen := c.Params.FieldLen()
			gy := c.Params.Gy()
			enc := make([]byte, 1+fieldLen)
			c.Params.Gx().FillBytes(enc[1:])

			enc[0] = 2 | byte(gy.Bit(0))
			x, y, err := decodeCompressed(c.Params, enc)
			require.NoError(t, err)
			assert.Equal(t, 0, x.Cmp(c.Params.Gx()))
			assert.Equal(t, 0, y.Cmp(gy))

			// the other prefix selects -G
			enc[0] ^= 1
			_, y, err = decodeCompressed(c.Params, enc)
			require.NoError(t, err)
			assert.Equal(t, 0, new(big.Int).Add(y, gy).Cmp(c.Params.P()))

			_, _, err = decodeCompressed(c.Params, enc[:fieldLen])
			assert.True(t, errors.Is(err, errInvalidLength))

			g := c.NewGeneratorPoint()
			x, y, err = decodeUncompressed(c.Params, g.ToAffineUncompressed())
			require.NoError(t, err)
			assert.Equal(t, 0, x.Cmp(c.Params.Gx()))
			assert.Equal(t, 0, y.Cmp(gy))
		})
	}
}
