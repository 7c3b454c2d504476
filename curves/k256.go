package curves

import (
	"math/big"

	secp256k12 "github.com/consensys/gnark-crypto/ecc/secp256k1"
)

var k256Params = newCurveParameters(
	"secp256k1",
	"fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f",
	"0",
	"7",
	"fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
	"79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
	"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8",
	1,
)

var k256Generator = func() secp256k12.G1Jac {
	var aff secp256k12.G1Affine
	aff.X.SetBigInt(k256Params.gx)
	aff.Y.SetBigInt(k256Params.gy)
	var jac secp256k12.G1Jac
	jac.FromAffine(&aff)
	return jac
}()

var k256Curve = &Curve{
	Name:            "secp256k1",
	ID:              CurveSECP256K1,
	Params:          k256Params,
	Point:           &PointK256{},
	compressedLen:   33,
	uncompressedLen: 65,
}

func CurveK256() *Curve {
	return k256Curve
}

type PointK256 struct {
	value secp256k12.G1Jac
}

func (p *PointK256) CurveID() CurveID {
	return CurveSECP256K1
}

func (p *PointK256) Identity() Point {
	var tmp secp256k12.G1Jac
	tmp.X.SetOne()
	tmp.Y.SetOne()
	tmp.Z.SetZero()
	return &PointK256{value: tmp}
}

func (p *PointK256) Generator() Point {
	return &PointK256{value: k256Generator}
}

func (p *PointK256) IsIdentity() bool {
	return p.value.Z.IsZero()
}

func (p *PointK256) IsOnCurve() bool {
	return p.value.IsOnCurve()
}

// secp256k1 has cofactor 1, every curve point is in the subgroup.
func (p *PointK256) IsInSubgroup() bool {
	return p.IsOnCurve()
}

func (p *PointK256) Double() Point {
	var tmp secp256k12.G1Jac
	tmp.Double(&p.value)
	return &PointK256{value: tmp}
}

func (p *PointK256) Add(rhs Point) Point {
	r, ok := rhs.(*PointK256)
	if !ok {
		return nil
	}
	var tmp secp256k12.G1Jac
	tmp.Set(&p.value)
	tmp.AddAssign(&r.value)
	return &PointK256{value: tmp}
}

func (p *PointK256) Select(cond int, rhs Point) Point {
	r, ok := rhs.(*PointK256)
	if !ok {
		return nil
	}
	var tmp secp256k12.G1Jac
	tmp.X.Select(cond, &p.value.X, &r.value.X)
	tmp.Y.Select(cond, &p.value.Y, &r.value.Y)
	tmp.Z.Select(cond, &p.value.Z, &r.value.Z)
	return &PointK256{value: tmp}
}

func (p *PointK256) Equal(rhs Point) bool {
	r, ok := rhs.(*PointK256)
	if !ok {
		return false
	}
	if p.IsIdentity() || r.IsIdentity() {
		return p.IsIdentity() == r.IsIdentity()
	}
	a, b := p.affine(), r.affine()
	return a.Equal(&b)
}

func (p *PointK256) X() []byte {
	aff := p.affine()
	x := aff.X.Bytes()
	return x[:]
}

func (p *PointK256) ToAffineCompressed() []byte {
	if p.IsIdentity() {
		return []byte{0}
	}
	aff := p.affine()
	x, y := aff.X.Bytes(), aff.Y.Bytes()
	return encodeCompressed(x[:], y[:])
}

func (p *PointK256) ToAffineUncompressed() []byte {
	if p.IsIdentity() {
		return []byte{0}
	}
	aff := p.affine()
	x, y := aff.X.Bytes(), aff.Y.Bytes()
	return encodeUncompressed(x[:], y[:])
}

func (p *PointK256) FromAffineCompressed(bytes []byte) (Point, error) {
	x, y, err := decodeCompressed(k256Params, bytes)
	if err != nil {
		return nil, err
	}
	return newPointK256(x, y)
}

func (p *PointK256) FromAffineUncompressed(bytes []byte) (Point, error) {
	x, y, err := decodeUncompressed(k256Params, bytes)
	if err != nil {
		return nil, err
	}
	return newPointK256(x, y)
}

// newPointK256 lifts a validated affine point; (0, 0) is gnark's encoding of
// infinity and is rejected here as it is not a curve point.
func newPointK256(x, y *big.Int) (Point, error) {
	var aff secp256k12.G1Affine
	aff.X.SetBigInt(x)
	aff.Y.SetBigInt(y)
	if aff.X.IsZero() && aff.Y.IsZero() {
		return nil, errNotOnCurve
	}
	if !aff.IsOnCurve() {
		return nil, errNotOnCurve
	}
	var jac secp256k12.G1Jac
	jac.FromAffine(&aff)
	return &PointK256{value: jac}, nil
}

func (p *PointK256) affine() secp256k12.G1Affine {
	var aff secp256k12.G1Affine
	aff.FromJacobian(&p.value)
	return aff
}

