package curves

import (
	"math/big"

	starkcurve "github.com/consensys/gnark-crypto/ecc/stark-curve"
)

// Stark curve, y² = x³ + x + β over p = 2²⁵¹ + 17·2¹⁹² + 1.
var starkParams = newCurveParameters(
	"stark",
	"800000000000011000000000000000000000000000000000000000000000001",
	"1",
	"6f21413efbe40de150e596d72f7a8c5609ad26c15c915c1f4cdfcb99cee9e89",
	"800000000000010ffffffffffffffffb781126dcae7b2321e66a241adc64d2f",
	"1ef15c18599971b7beced415a40f0c7deacfd9b0d1819e03d723d8bc943cfca",
	"5668060aa49730b7be4801df46ec62de53ecd11abe43a32873000c36e8dc1f",
	1,
)

var starkGenerator = func() starkcurve.G1Jac {
	var aff starkcurve.G1Affine
	aff.X.SetBigInt(starkParams.gx)
	aff.Y.SetBigInt(starkParams.gy)
	var jac starkcurve.G1Jac
	jac.FromAffine(&aff)
	return jac
}()

var starkCurve = &Curve{
	Name:            "stark",
	ID:              CurveSTARK,
	Params:          starkParams,
	Point:           &PointStark{},
	compressedLen:   33,
	uncompressedLen: 65,
}

func CurveStark() *Curve {
	return starkCurve
}

type PointStark struct {
	value starkcurve.G1Jac
}

func (p *PointStark) CurveID() CurveID {
	return CurveSTARK
}

func (p *PointStark) Identity() Point {
	var tmp starkcurve.G1Jac
	tmp.X.SetOne()
	tmp.Y.SetOne()
	tmp.Z.SetZero()
	return &PointStark{value: tmp}
}

func (p *PointStark) Generator() Point {
	return &PointStark{value: starkGenerator}
}

func (p *PointStark) IsIdentity() bool {
	return p.value.Z.IsZero()
}

func (p *PointStark) IsOnCurve() bool {
	return p.value.IsOnCurve()
}

func (p *PointStark) IsInSubgroup() bool {
	return p.IsOnCurve()
}

func (p *PointStark) Double() Point {
	var tmp starkcurve.G1Jac
	tmp.Double(&p.value)
	return &PointStark{value: tmp}
}

func (p *PointStark) Add(rhs Point) Point {
	r, ok := rhs.(*PointStark)
	if !ok {
		return nil
	}
	var tmp starkcurve.G1Jac
	tmp.Set(&p.value)
	tmp.AddAssign(&r.value)
	return &PointStark{value: tmp}
}

func (p *PointStark) Select(cond int, rhs Point) Point {
	r, ok := rhs.(*PointStark)
	if !ok {
		return nil
	}
	var tmp starkcurve.G1Jac
	tmp.X.Select(cond, &p.value.X, &r.value.X)
	tmp.Y.Select(cond, &p.value.Y, &r.value.Y)
	tmp.Z.Select(cond, &p.value.Z, &r.value.Z)
	return &PointStark{value: tmp}
}

func (p *PointStark) Equal(rhs Point) bool {
	r, ok := rhs.(*PointStark)
	if !ok {
		return false
	}
	if p.IsIdentity() || r.IsIdentity() {
		return p.IsIdentity() == r.IsIdentity()
	}
	a, b := p.affine(), r.affine()
	return a.Equal(&b)
}

// X is the stark key of a public point.
func (p *PointStark) X() []byte {
	aff := p.affine()
	x := aff.X.Bytes()
	return x[:]
}

func (p *PointStark) ToAffineCompressed() []byte {
	if p.IsIdentity() {
		return []byte{0}
	}
	aff := p.affine()
	x, y := aff.X.Bytes(), aff.Y.Bytes()
	return encodeCompressed(x[:], y[:])
}

func (p *PointStark) ToAffineUncompressed() []byte {
	if p.IsIdentity() {
		return []byte{0}
	}
	aff := p.affine()
	x, y := aff.X.Bytes(), aff.Y.Bytes()
	return encodeUncompressed(x[:], y[:])
}

func (p *PointStark) FromAffineCompressed(bytes []byte) (Point, error) {
	x, y, err := decodeCompressed(starkParams, bytes)
	if err != nil {
		return nil, err
	}
	return newPointStark(x, y)
}

func (p *PointStark) FromAffineUncompressed(bytes []byte) (Point, error) {
	x, y, err := decodeUncompressed(starkParams, bytes)
	if err != nil {
		return nil, err
	}
	return newPointStark(x, y)
}

func newPointStark(x, y *big.Int) (Point, error) {
	var aff starkcurve.G1Affine
	aff.X.SetBigInt(x)
	aff.Y.SetBigInt(y)
	if aff.X.IsZero() && aff.Y.IsZero() {
		return nil, errNotOnCurve
	}
	if !aff.IsOnCurve() {
		return nil, errNotOnCurve
	}
	var jac starkcurve.G1Jac
	jac.FromAffine(&aff)
	return &PointStark{value: jac}, nil
}

func (p *PointStark) affine() starkcurve.G1Affine {
	var aff starkcurve.G1Affine
	aff.FromJacobian(&p.value)
	return aff
}
