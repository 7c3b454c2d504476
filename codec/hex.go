package codec

import (
	"encoding/hex"
	"strings"

	"github.com/arcana-network/keygen/common"
	"github.com/arcana-network/keygen/curves"
)

// ParseHex decodes hex with an optional 0x prefix.
func ParseHex(s string) ([]byte, error) {
	s = trimHexPrefix(strings.TrimSpace(s))
	if s == "" {
		return nil, common.Errorf("ParseHex", common.ErrMalformedEncoding, "empty input")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, common.Errorf("ParseHex", common.ErrMalformedEncoding, "%v", err)
	}
	return b, nil
}

// ParseScalarHex decodes a scalar written as hex. Short or odd-length input is
// left-padded with zeros to the curve's scalar length. Longer input is
// rejected.
func ParseScalarHex(curve *curves.Curve, s string) (EncodedKey, error) {
	s = trimHexPrefix(strings.TrimSpace(s))
	width := 2 * curve.Params.ScalarLen()
	if s == "" || len(s) > width {
		return nil, common.Errorf("ParseScalarHex", common.ErrMalformedEncoding, "want at most %d hex digits, got %d", width, len(s))
	}
	out := make([]byte, curve.Params.ScalarLen())
	padded := strings.Repeat("0", width-len(s)) + s
	if _, err := hex.Decode(out, []byte(padded)); err != nil {
		return nil, common.Errorf("ParseScalarHex", common.ErrMalformedEncoding, "%v", err)
	}
	return out, nil
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
