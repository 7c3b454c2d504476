// Package entropy supplies the random bytes private scalars are drawn from.
package entropy

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/arcana-network/keygen/common"
)

// Source produces uniformly random bytes. Implementations must be safe for
// concurrent use.
type Source interface {
	NextRandomBytes(n int) ([]byte, error)
}

// OSSource reads from the operating system CSPRNG.
type OSSource struct{}

func NewOSSource() *OSSource {
	return &OSSource{}
}

func (OSSource) NextRandomBytes(n int) ([]byte, error) {
	return readFull(rand.Reader, n)
}

// ReaderSource draws from an arbitrary reader. It exists for deterministic
// tests and must never be given a non-cryptographic reader in production.
type ReaderSource struct {
	Reader io.Reader
}

func (s *ReaderSource) NextRandomBytes(n int) ([]byte, error) {
	return readFull(s.Reader, n)
}

func readFull(r io.Reader, n int) ([]byte, error) {
	if n <= 0 {
		return nil, common.Errorf("NextRandomBytes", common.ErrEntropyUnavailable, "invalid length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		for i := range buf {
			buf[i] = 0
		}
		return nil, common.OpError("NextRandomBytes", fmt.Errorf("%w: %v", common.ErrEntropyUnavailable, err))
	}
	return buf, nil
}
