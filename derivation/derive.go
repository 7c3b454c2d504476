// Package derivation computes public points from private scalars.
package derivation

import (
	log "github.com/sirupsen/logrus"

	"github.com/arcana-network/keygen/common"
	"github.com/arcana-network/keygen/curves"
	"github.com/arcana-network/keygen/scalar"
)

// DerivePublicPoint returns d*G. The running time depends only on the curve,
// not on the value of d.
func DerivePublicPoint(curve *curves.Curve, d *scalar.PrivateScalar) (curves.Point, error) {
	if d == nil || d.CurveID() != curve.ID {
		return nil, common.Errorf("DerivePublicPoint", common.ErrInvalidScalar, "scalar does not belong to %s", curve.Name)
	}
	raw := d.Bytes()
	defer scalar.Wipe(raw)
	if scalar.InRange(curve, raw) != 1 {
		return nil, common.Errorf("DerivePublicPoint", common.ErrInvalidScalar, "scalar not in [1, n-1]")
	}

	k := recode(curve.Params, raw)
	defer wipe(k)

	p := ladder(curve, k, curve.Params.OrderBitLen()+1)
	if p == nil || p.IsIdentity() {
		log.WithFields(log.Fields{
			"Curve": curve.Name,
		}).Error("DerivePublicPoint: ladder produced the identity")
		return nil, common.Errorf("DerivePublicPoint", common.ErrInvalidScalar, "derived identity point")
	}
	return p, nil
}
