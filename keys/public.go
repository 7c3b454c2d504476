// Package keys holds validated public points and the key material that owns
// a private scalar.
package keys

import (
	"github.com/arcana-network/keygen/common"
	"github.com/arcana-network/keygen/curves"
)

// PublicPoint is a curve point known to be on the curve, in the prime-order
// subgroup and not the identity.
type PublicPoint struct {
	curve *curves.Curve
	point curves.Point
}

// NewPublicPoint validates p before wrapping it.
func NewPublicPoint(curve *curves.Curve, p curves.Point) (*PublicPoint, error) {
	switch {
	case p == nil:
		return nil, common.Errorf("NewPublicPoint", common.ErrMalformedEncoding, "nil point")
	case p.CurveID() != curve.ID:
		return nil, common.Errorf("NewPublicPoint", common.ErrMalformedEncoding, "point is on %s, want %s", p.CurveID(), curve.ID)
	case p.IsIdentity():
		return nil, common.Errorf("NewPublicPoint", common.ErrMalformedEncoding, "identity point")
	case !p.IsOnCurve():
		return nil, common.Errorf("NewPublicPoint", common.ErrMalformedEncoding, "point not on curve")
	case !p.IsInSubgroup():
		return nil, common.Errorf("NewPublicPoint", common.ErrMalformedEncoding, "point not in prime-order subgroup")
	}
	return &PublicPoint{curve: curve, point: p}, nil
}

func (p *PublicPoint) Curve() *curves.Curve {
	return p.curve
}

func (p *PublicPoint) Point() curves.Point {
	return p.point
}

func (p *PublicPoint) Equal(rhs *PublicPoint) bool {
	if p == nil || rhs == nil {
		return p == rhs
	}
	return p.curve.ID == rhs.curve.ID && p.point.Equal(rhs.point)
}

func (p *PublicPoint) Compressed() []byte {
	return p.point.ToAffineCompressed()
}

func (p *PublicPoint) Uncompressed() []byte {
	return p.point.ToAffineUncompressed()
}

// X is the affine x coordinate. On the Stark curve this is the stark key.
func (p *PublicPoint) X() []byte {
	return p.point.X()
}
