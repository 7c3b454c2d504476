package keys

import (
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/arcana-network/keygen/common"
	"github.com/arcana-network/keygen/curves"
	"github.com/arcana-network/keygen/derivation"
	"github.com/arcana-network/keygen/scalar"
)

// KeyMaterial pairs an optional private scalar with its public point.
//
// A KeyMaterial has a single owner. Dispose moves it from active to disposed
// exactly once and zeroes the scalar, after which PrivateKey fails while
// PublicKey keeps working.
type KeyMaterial struct {
	curve    *curves.Curve
	private  *scalar.PrivateScalar
	public   *PublicPoint
	disposed atomic.Bool
}

// New builds key material. When d is non-nil, d*G is recomputed and must
// equal pub. On success the KeyMaterial takes ownership of d.
func New(curve *curves.Curve, d *scalar.PrivateScalar, pub *PublicPoint) (*KeyMaterial, error) {
	if pub == nil {
		return nil, common.Errorf("keys.New", common.ErrKeyMismatch, "public point is required")
	}
	if pub.Curve().ID != curve.ID {
		return nil, common.Errorf("keys.New", common.ErrKeyMismatch, "public point is on %s, want %s", pub.Curve().Name, curve.Name)
	}
	if d != nil {
		if d.CurveID() != curve.ID {
			return nil, common.Errorf("keys.New", common.ErrKeyMismatch, "scalar is for %s, want %s", d.CurveID(), curve.ID)
		}
		derived, err := derivation.DerivePublicPoint(curve, d)
		if err != nil {
			return nil, common.OpError("keys.New", err)
		}
		if !derived.Equal(pub.Point()) {
			return nil, common.Errorf("keys.New", common.ErrKeyMismatch, "public point is not d*G")
		}
	}
	return &KeyMaterial{curve: curve, private: d, public: pub}, nil
}

// FromScalar derives the public point for d and takes ownership of d. The
// caller still owns d when an error is returned.
func FromScalar(curve *curves.Curve, d *scalar.PrivateScalar) (*KeyMaterial, error) {
	p, err := derivation.DerivePublicPoint(curve, d)
	if err != nil {
		return nil, common.OpError("keys.FromScalar", err)
	}
	pub, err := NewPublicPoint(curve, p)
	if err != nil {
		return nil, common.OpError("keys.FromScalar", err)
	}
	return &KeyMaterial{curve: curve, private: d, public: pub}, nil
}

func (k *KeyMaterial) Curve() *curves.Curve {
	return k.curve
}

// PublicKey is available for the whole lifetime, including after Dispose.
func (k *KeyMaterial) PublicKey() *PublicPoint {
	return k.public
}

// PrivateKey returns the scalar while the material is active. The returned
// value is still owned by k and is zeroed by Dispose.
func (k *KeyMaterial) PrivateKey() (*scalar.PrivateScalar, error) {
	if k.disposed.Load() {
		return nil, common.OpError("PrivateKey", common.ErrKeyDisposed)
	}
	if k.private == nil {
		return nil, common.OpError("PrivateKey", common.ErrNoPrivateKey)
	}
	return k.private, nil
}

func (k *KeyMaterial) HasPrivateKey() bool {
	return k.private != nil
}

func (k *KeyMaterial) IsDisposed() bool {
	return k.disposed.Load()
}

// Dispose zeroes the private scalar. Only the first call does anything; later
// calls return ErrKeyDisposed.
func (k *KeyMaterial) Dispose() error {
	if !k.disposed.CompareAndSwap(false, true) {
		log.WithFields(log.Fields{
			"Curve": k.curve.Name,
		}).Warn("KeyMaterial: dispose called more than once")
		return common.OpError("Dispose", common.ErrKeyDisposed)
	}
	if k.private != nil {
		k.private.Zero()
	}
	return nil
}

func (k *KeyMaterial) String() string {
	state := "active"
	if k.IsDisposed() {
		state = "disposed"
	}
	return "KeyMaterial(" + k.curve.Name + ", " + state + ")"
}

// Use runs fn with k and disposes k afterwards, also when fn fails or panics.
func Use(k *KeyMaterial, fn func(*KeyMaterial) error) (err error) {
	defer func() {
		if derr := k.Dispose(); err == nil && derr != nil {
			err = derr
		}
	}()
	return fn(k)
}
