package common

import (
	"errors"
	"fmt"
)

var (
	// ErrEntropyUnavailable means the OS random source could not be read. Fatal.
	ErrEntropyUnavailable = errors.New("keygen: entropy unavailable")

	// ErrEntropyExhausted means rejection sampling ran out of attempts, which
	// only happens when the entropy source is broken.
	ErrEntropyExhausted = errors.New("keygen: entropy exhausted")

	// ErrInvalidScalar indicates a private scalar outside [1, n-1]
	ErrInvalidScalar = errors.New("keygen: invalid scalar")

	// ErrKeyMismatch indicates the public point is not d·G for the given scalar
	ErrKeyMismatch = errors.New("keygen: key mismatch")

	// ErrMalformedEncoding indicates a bad length, prefix or point
	ErrMalformedEncoding = errors.New("keygen: malformed encoding")

	// ErrNoPrivateKey indicates private access on public-only key material
	ErrNoPrivateKey = errors.New("keygen: no private key")

	// ErrKeyDisposed indicates private access after Dispose
	ErrKeyDisposed = errors.New("keygen: key disposed")
)

// Error wraps an underlying error with the operation that failed.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("keygen.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// OpError returns err wrapped with op, or nil when err is nil.
func OpError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// Errorf wraps sentinel with a formatted detail, keeping errors.Is working.
func Errorf(op string, sentinel error, format string, args ...interface{}) error {
	return &Error{
		Op:  op,
		Err: fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	}
}
