package scalar

import (
	"crypto/subtle"

	"github.com/arcana-network/keygen/curves"
)

// PrivateScalar holds a private key d, 1 <= d < n, as a fixed-length
// big-endian buffer. It is deliberately never converted to a big.Int since
// big.Int memory cannot be erased.
//
// A PrivateScalar is owned by exactly one KeyMaterial. Use Bytes for an
// explicit copy; Zero overwrites the backing buffer.
type PrivateScalar struct {
	curve curves.CurveID
	b     []byte
}

func (s *PrivateScalar) CurveID() curves.CurveID {
	return s.curve
}

func (s *PrivateScalar) Len() int {
	return len(s.b)
}

// Bytes returns a copy of the big-endian encoding. The caller owns the copy
// and should zero it when done.
func (s *PrivateScalar) Bytes() []byte {
	out := make([]byte, len(s.b))
	copy(out, s.b)
	return out
}

// Equal compares two scalars in constant time.
func (s *PrivateScalar) Equal(rhs *PrivateScalar) bool {
	if s == nil || rhs == nil || s.curve != rhs.curve {
		return false
	}
	return subtle.ConstantTimeCompare(s.b, rhs.b) == 1
}

// Zero overwrites the scalar's backing memory.
func (s *PrivateScalar) Zero() {
	Wipe(s.b)
}

// IsZeroed reports whether every byte of the backing buffer is zero.
func (s *PrivateScalar) IsZeroed() bool {
	var acc byte
	for _, v := range s.b {
		acc |= v
	}
	return acc == 0
}

func (s *PrivateScalar) String() string {
	return "PrivateScalar(redacted)"
}

func (s *PrivateScalar) GoString() string {
	return s.String()
}

// Wipe zeroes b in place.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
