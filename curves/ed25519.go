package curves

import (
	"bytes"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
)

// edwards25519, -x² + y² = 1 + dx²y² over p = 2²⁵⁵ - 19, cofactor 8.
var ed25519Params = newCurveParameters(
	"ed25519",
	"7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed",
	"7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffec",
	"52036cee2b6ffe738cc740797779e89800700a4d4141d8ab75eb4dca135978a3",
	"1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed",
	"216936d3cd6e53fec0a4e231fdd6dc5c692cc7609525a7b2c9562d608f25d51a",
	"6666666666666666666666666666666666666666666666666666666666666658",
	8,
)

// ed25519InvCofactor is 8⁻¹ mod n. For P = P' + T with T a torsion
// component, [8]([8⁻¹]P) = P' so the result equals P only when T is zero.
var ed25519InvCofactor = func() *edwards25519.Scalar {
	var eight [32]byte
	eight[0] = 8
	s, err := edwards25519.NewScalar().SetCanonicalBytes(eight[:])
	if err != nil {
		panic(err)
	}
	return edwards25519.NewScalar().Invert(s)
}()

var ed25519Curve = &Curve{
	Name:            "ed25519",
	ID:              CurveED25519,
	Params:          ed25519Params,
	Point:           &PointEd25519{},
	compressedLen:   32,
	uncompressedLen: 65,
}

func CurveEd25519() *Curve {
	return ed25519Curve
}

// PointEd25519 wraps an extended-coordinates point. The compressed form is
// the RFC 8032 encoding, which has no prefix byte.
type PointEd25519 struct {
	value *edwards25519.Point
}

func (p *PointEd25519) CurveID() CurveID {
	return CurveED25519
}

func (p *PointEd25519) Identity() Point {
	return &PointEd25519{value: edwards25519.NewIdentityPoint()}
}

func (p *PointEd25519) Generator() Point {
	return &PointEd25519{value: edwards25519.NewGeneratorPoint()}
}

func (p *PointEd25519) IsIdentity() bool {
	return p.value.Equal(edwards25519.NewIdentityPoint()) == 1
}

// Points can only be built through validated constructors.
func (p *PointEd25519) IsOnCurve() bool {
	return p.value != nil
}

func (p *PointEd25519) IsInSubgroup() bool {
	q := new(edwards25519.Point).ScalarMult(ed25519InvCofactor, p.value)
	q.MultByCofactor(q)
	return q.Equal(p.value) == 1
}

func (p *PointEd25519) Double() Point {
	return &PointEd25519{value: new(edwards25519.Point).Add(p.value, p.value)}
}

func (p *PointEd25519) Add(rhs Point) Point {
	r, ok := rhs.(*PointEd25519)
	if !ok {
		return nil
	}
	return &PointEd25519{value: new(edwards25519.Point).Add(p.value, r.value)}
}

func (p *PointEd25519) Select(cond int, rhs Point) Point {
	r, ok := rhs.(*PointEd25519)
	if !ok {
		return nil
	}
	pX, pY, pZ, pT := p.value.ExtendedCoordinates()
	rX, rY, rZ, rT := r.value.ExtendedCoordinates()
	x := new(field.Element).Select(rX, pX, cond)
	y := new(field.Element).Select(rY, pY, cond)
	z := new(field.Element).Select(rZ, pZ, cond)
	t := new(field.Element).Select(rT, pT, cond)
	out, err := new(edwards25519.Point).SetExtendedCoordinates(x, y, z, t)
	if err != nil {
		// both inputs are valid points, so the selection is too
		panic("curves: invalid extended coordinates after select")
	}
	return &PointEd25519{value: out}
}

func (p *PointEd25519) Equal(rhs Point) bool {
	r, ok := rhs.(*PointEd25519)
	if !ok {
		return false
	}
	return p.value.Equal(r.value) == 1
}

func (p *PointEd25519) X() []byte {
	x, _ := p.affine()
	return reverse(x.Bytes())
}

func (p *PointEd25519) ToAffineCompressed() []byte {
	return p.value.Bytes()
}

func (p *PointEd25519) ToAffineUncompressed() []byte {
	x, y := p.affine()
	out := make([]byte, 65)
	out[0] = 4
	copy(out[1:33], reverse(x.Bytes()))
	copy(out[33:], reverse(y.Bytes()))
	return out
}

func (p *PointEd25519) FromAffineCompressed(b []byte) (Point, error) {
	if len(b) != 32 {
		return nil, errInvalidLength
	}
	pt, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		return nil, errNotOnCurve
	}
	// SetBytes accepts non-canonical encodings of valid points
	if !bytes.Equal(pt.Bytes(), b) {
		return nil, errNonCanonical
	}
	return &PointEd25519{value: pt}, nil
}

func (p *PointEd25519) FromAffineUncompressed(b []byte) (Point, error) {
	if len(b) != 65 {
		return nil, errInvalidLength
	}
	if b[0] != 4 {
		return nil, errInvalidPrefix
	}
	if _, err := parseFieldBytes(b[1:33], ed25519Params.p); err != nil {
		return nil, err
	}
	if _, err := parseFieldBytes(b[33:65], ed25519Params.p); err != nil {
		return nil, err
	}
	x, err := new(field.Element).SetBytes(reverse(b[1:33]))
	if err != nil {
		return nil, errNonCanonical
	}
	y, err := new(field.Element).SetBytes(reverse(b[33:65]))
	if err != nil {
		return nil, errNonCanonical
	}
	t := new(field.Element).Multiply(x, y)
	z := new(field.Element).One()
	pt, err := new(edwards25519.Point).SetExtendedCoordinates(x, y, z, t)
	if err != nil {
		return nil, errNotOnCurve
	}
	return &PointEd25519{value: pt}, nil
}

func (p *PointEd25519) affine() (*field.Element, *field.Element) {
	X, Y, Z, _ := p.value.ExtendedCoordinates()
	zInv := new(field.Element).Invert(Z)
	return new(field.Element).Multiply(X, zInv), new(field.Element).Multiply(Y, zInv)
}
