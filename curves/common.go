package curves

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	errInvalidLength  = errors.New("invalid encoding length")
	errInvalidPrefix  = errors.New("invalid prefix byte")
	errNonCanonical   = errors.New("field element not canonical")
	errNotOnCurve     = errors.New("point is not on the curve")
	errWrongPointType = errors.New("point belongs to a different curve")
)

// Curve represents a named elliptic curve with its parameters and point group
type Curve struct {
	Name   string
	ID     CurveID
	Params *CurveParameters
	Point  Point

	compressedLen   int
	uncompressedLen int
}

func (c *Curve) NewGeneratorPoint() Point {
	return c.Point.Generator()
}

func (c *Curve) NewIdentityPoint() Point {
	return c.Point.Identity()
}

// CompressedLen is the byte length of a compressed point encoding.
func (c *Curve) CompressedLen() int {
	return c.compressedLen
}

// UncompressedLen is the byte length of a 04 || x || y encoding.
func (c *Curve) UncompressedLen() int {
	return c.uncompressedLen
}

func (c *Curve) String() string {
	return c.Name
}

// Point is an element of the curve group. Implementations keep a projective
// representation internally; all methods return new values and never mutate
// the receiver.
type Point interface {
	CurveID() CurveID
	Identity() Point
	Generator() Point
	IsIdentity() bool
	IsOnCurve() bool
	// IsInSubgroup reports whether the point lies in the prime-order subgroup
	// generated by the base point.
	IsInSubgroup() bool
	Double() Point
	Add(rhs Point) Point
	// Select returns rhs when cond == 1 and the receiver when cond == 0, in
	// constant time. cond must be 0 or 1.
	Select(cond int, rhs Point) Point
	Equal(rhs Point) bool
	// X returns the affine x coordinate, big-endian, field length.
	X() []byte
	ToAffineCompressed() []byte
	ToAffineUncompressed() []byte
	FromAffineCompressed(bytes []byte) (Point, error)
	FromAffineUncompressed(bytes []byte) (Point, error)
}

type CurveID uint16

const (
	CurveUndefined CurveID = iota
	CurveED25519
	CurveSECP256K1
	CurveSTARK
)

func (id CurveID) String() string {
	switch id {
	case CurveED25519:
		return "ed25519"
	case CurveSECP256K1:
		return "secp256k1"
	case CurveSTARK:
		return "stark"
	default:
		return "undefined"
	}
}

// ByName resolves a curve by its name. Matching is case-insensitive.
func ByName(name string) (*Curve, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "stark", "stark-curve", "starknet":
		return CurveStark(), nil
	case "secp256k1", "k256":
		return CurveK256(), nil
	case "ed25519", "edwards25519":
		return CurveEd25519(), nil
	default:
		return nil, fmt.Errorf("unsupported curve %q", name)
	}
}

// Names lists the canonical names accepted by ByName.
func Names() []string {
	return []string{CurveStark().Name, CurveK256().Name, CurveEd25519().Name}
}

// parseFieldBytes reads a big-endian field element and rejects values >= p.
func parseFieldBytes(b []byte, p *big.Int) (*big.Int, error) {
	v := new(big.Int).SetBytes(b)
	if v.Cmp(p) >= 0 {
		return nil, errNonCanonical
	}
	return v, nil
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}
