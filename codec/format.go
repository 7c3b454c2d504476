// Package codec converts key material to and from byte encodings.
package codec

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/arcana-network/keygen/scalar"
)

type Format int

const (
	FormatCompressedPoint Format = iota + 1
	FormatUncompressedPoint
	FormatRawScalarHex
)

func (f Format) String() string {
	switch f {
	case FormatCompressedPoint:
		return "compressed"
	case FormatUncompressedPoint:
		return "uncompressed"
	case FormatRawScalarHex:
		return "raw-scalar-hex"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// IsPoint reports whether f encodes a public point.
func (f Format) IsPoint() bool {
	return f == FormatCompressedPoint || f == FormatUncompressedPoint
}

// ParseFormat accepts the names printed by Format.String.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compressed":
		return FormatCompressedPoint, nil
	case "uncompressed":
		return FormatUncompressedPoint, nil
	case "raw-scalar-hex", "raw", "scalar":
		return FormatRawScalarHex, nil
	default:
		return 0, fmt.Errorf("unknown key format %q", s)
	}
}

// EncodedKey is a transient encoding. When it holds a scalar the owner should
// call Wipe once done.
type EncodedKey []byte

// String is the 0x-prefixed hex form.
func (e EncodedKey) String() string {
	return hexutil.Encode(e)
}

func (e EncodedKey) Wipe() {
	scalar.Wipe(e)
}
