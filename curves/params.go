package curves

import "math/big"

// CurveParameters are the immutable domain parameters of a curve. Values are
// built once at package initialisation and every getter hands out a copy.
//
// For short Weierstrass curves A and B are the coefficients of
// y² = x³ + Ax + B. For twisted Edwards curves they are a and d of
// ax² + y² = 1 + dx²y².
type CurveParameters struct {
	name      string
	p         *big.Int
	a         *big.Int
	b         *big.Int
	n         *big.Int
	gx        *big.Int
	gy        *big.Int
	cofactor  uint64
	fieldLen  int
	scalarLen int
	orderBE   []byte
}

func newCurveParameters(name, p, a, b, n, gx, gy string, cofactor uint64) *CurveParameters {
	params := &CurveParameters{
		name:     name,
		p:        HexToBigInt(p),
		a:        HexToBigInt(a),
		b:        HexToBigInt(b),
		n:        HexToBigInt(n),
		gx:       HexToBigInt(gx),
		gy:       HexToBigInt(gy),
		cofactor: cofactor,
	}
	params.fieldLen = (params.p.BitLen() + 7) / 8
	params.scalarLen = (params.n.BitLen() + 7) / 8
	params.orderBE = params.n.FillBytes(make([]byte, params.scalarLen))
	return params
}

func (c *CurveParameters) Name() string { return c.name }

// P is the prime field modulus.
func (c *CurveParameters) P() *big.Int { return new(big.Int).Set(c.p) }

func (c *CurveParameters) A() *big.Int { return new(big.Int).Set(c.a) }

func (c *CurveParameters) B() *big.Int { return new(big.Int).Set(c.b) }

// N is the order of the subgroup generated by G.
func (c *CurveParameters) N() *big.Int { return new(big.Int).Set(c.n) }

func (c *CurveParameters) Gx() *big.Int { return new(big.Int).Set(c.gx) }

func (c *CurveParameters) Gy() *big.Int { return new(big.Int).Set(c.gy) }

func (c *CurveParameters) Cofactor() uint64 { return c.cofactor }

// FieldLen is the byte length of an encoded field element.
func (c *CurveParameters) FieldLen() int { return c.fieldLen }

// ScalarLen is the byte length of an encoded private scalar.
func (c *CurveParameters) ScalarLen() int { return c.scalarLen }

// OrderBitLen is the bit length of n.
func (c *CurveParameters) OrderBitLen() int { return c.n.BitLen() }

// OrderBytes returns n as a big-endian buffer of ScalarLen bytes.
func (c *CurveParameters) OrderBytes() []byte {
	out := make([]byte, len(c.orderBE))
	copy(out, c.orderBE)
	return out
}

func HexToBigInt(s string) *big.Int {
	r, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid hex in source file: " + s)
	}
	return r
}
