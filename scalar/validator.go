package scalar

import (
	"crypto/subtle"
	"errors"

	"github.com/avast/retry-go"
	log "github.com/sirupsen/logrus"

	"github.com/arcana-network/keygen/common"
	"github.com/arcana-network/keygen/curves"
	"github.com/arcana-network/keygen/entropy"
)

// MaxAttempts bounds rejection sampling. For every supported curve a draw is
// accepted with probability > 1/2, so exhausting this is a broken source.
const MaxAttempts = 256

var errOutOfRange = errors.New("scalar out of range")

// ValidateScalar copies raw into a PrivateScalar when it is a big-endian
// integer in [1, n-1] of exactly ScalarLen bytes.
func ValidateScalar(curve *curves.Curve, raw []byte) (*PrivateScalar, error) {
	if len(raw) != curve.Params.ScalarLen() {
		return nil, common.Errorf("ValidateScalar", common.ErrInvalidScalar, "expected %d bytes, got %d", curve.Params.ScalarLen(), len(raw))
	}
	if InRange(curve, raw) != 1 {
		return nil, common.Errorf("ValidateScalar", common.ErrInvalidScalar, "scalar not in [1, n-1]")
	}
	b := make([]byte, len(raw))
	copy(b, raw)
	return &PrivateScalar{curve: curve.ID, b: b}, nil
}

// ReduceToValidScalar draws ScalarLen bytes from src, clears the bits above
// bitlen(n) and rejects draws equal to 0 or >= n. Rejected draws are wiped and
// resampled. Modular reduction is never used as it would bias the result.
func ReduceToValidScalar(src entropy.Source, curve *curves.Curve) (*PrivateScalar, error) {
	params := curve.Params
	mask := topByteMask(params)

	var out *PrivateScalar
	err := retry.Do(
		func() error {
			buf, err := src.NextRandomBytes(params.ScalarLen())
			if err != nil {
				return err
			}
			buf[0] &= mask
			if InRange(curve, buf) != 1 {
				Wipe(buf)
				return errOutOfRange
			}
			out = &PrivateScalar{curve: curve.ID, b: buf}
			return nil
		},
		retry.Attempts(MaxAttempts),
		retry.Delay(0),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, errOutOfRange)
		}),
	)
	if err != nil {
		if errors.Is(err, errOutOfRange) {
			log.WithFields(log.Fields{
				"Curve":    curve.Name,
				"Attempts": MaxAttempts,
			}).Error("scalar: rejection sampling exhausted")
			return nil, common.Errorf("ReduceToValidScalar", common.ErrEntropyExhausted, "no valid scalar after %d attempts", MaxAttempts)
		}
		return nil, err
	}
	return out, nil
}

// InRange returns 1 when b, read as a big-endian integer, is in [1, n-1] and
// 0 otherwise. b must be ScalarLen bytes long. The running time depends only
// on len(b).
func InRange(curve *curves.Curve, b []byte) int {
	order := curve.Params.OrderBytes()
	if len(b) != len(order) {
		return 0
	}

	// borrow out of b - n is 1 exactly when b < n
	var borrow uint32
	for i := len(b) - 1; i >= 0; i-- {
		diff := uint32(b[i]) - uint32(order[i]) - borrow
		borrow = (diff >> 31) & 1
	}

	var acc byte
	for _, v := range b {
		acc |= v
	}
	nonZero := 1 ^ subtle.ConstantTimeByteEq(acc, 0)

	return int(borrow) & nonZero
}

func topByteMask(params *curves.CurveParameters) byte {
	excess := params.ScalarLen()*8 - params.OrderBitLen()
	return byte(0xff >> uint(excess))
}
