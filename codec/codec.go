package codec

import (
	"errors"

	"github.com/arcana-network/keygen/common"
	"github.com/arcana-network/keygen/curves"
	"github.com/arcana-network/keygen/keys"
	"github.com/arcana-network/keygen/scalar"
)

// Fragment is the result of Decode. Exactly one field is set.
type Fragment struct {
	Public *keys.PublicPoint
	Scalar *scalar.PrivateScalar
}

// Encode serializes k in format f. FormatRawScalarHex yields the fixed-length
// big-endian scalar; the caller owns it and should Wipe it.
func Encode(k *keys.KeyMaterial, f Format) (EncodedKey, error) {
	switch f {
	case FormatCompressedPoint:
		return k.PublicKey().Compressed(), nil
	case FormatUncompressedPoint:
		return k.PublicKey().Uncompressed(), nil
	case FormatRawScalarHex:
		d, err := k.PrivateKey()
		if err != nil {
			return nil, common.OpError("Encode", err)
		}
		return d.Bytes(), nil
	default:
		return nil, common.Errorf("Encode", common.ErrMalformedEncoding, "unsupported format %s", f)
	}
}

// DecodePoint parses a public point and checks it is on the curve, in the
// prime-order subgroup and not the identity.
func DecodePoint(curve *curves.Curve, enc []byte, f Format) (*keys.PublicPoint, error) {
	var (
		p   curves.Point
		err error
	)
	switch f {
	case FormatCompressedPoint:
		if len(enc) != curve.CompressedLen() {
			return nil, common.Errorf("DecodePoint", common.ErrMalformedEncoding, "compressed %s point is %d bytes, got %d", curve.Name, curve.CompressedLen(), len(enc))
		}
		p, err = curve.Point.FromAffineCompressed(enc)
	case FormatUncompressedPoint:
		if len(enc) != curve.UncompressedLen() {
			return nil, common.Errorf("DecodePoint", common.ErrMalformedEncoding, "uncompressed %s point is %d bytes, got %d", curve.Name, curve.UncompressedLen(), len(enc))
		}
		p, err = curve.Point.FromAffineUncompressed(enc)
	default:
		return nil, common.Errorf("DecodePoint", common.ErrMalformedEncoding, "%s is not a point format", f)
	}
	if err != nil {
		return nil, common.Errorf("DecodePoint", common.ErrMalformedEncoding, "%v", err)
	}
	pub, err := keys.NewPublicPoint(curve, p)
	if err != nil {
		return nil, common.OpError("DecodePoint", err)
	}
	return pub, nil
}

// DecodeScalar parses a fixed-length big-endian scalar. A wrong length is a
// malformed encoding; a value outside [1, n-1] is an invalid scalar.
func DecodeScalar(curve *curves.Curve, enc []byte) (*scalar.PrivateScalar, error) {
	if len(enc) != curve.Params.ScalarLen() {
		return nil, common.Errorf("DecodeScalar", common.ErrMalformedEncoding, "%s scalar is %d bytes, got %d", curve.Name, curve.Params.ScalarLen(), len(enc))
	}
	d, err := scalar.ValidateScalar(curve, enc)
	if err != nil {
		return nil, common.OpError("DecodeScalar", err)
	}
	return d, nil
}

// Decode dispatches on f. On error the returned Fragment is empty.
func Decode(curve *curves.Curve, enc []byte, f Format) (Fragment, error) {
	switch f {
	case FormatRawScalarHex:
		d, err := DecodeScalar(curve, enc)
		if err != nil {
			return Fragment{}, err
		}
		return Fragment{Scalar: d}, nil
	default:
		pub, err := DecodePoint(curve, enc, f)
		if err != nil {
			return Fragment{}, err
		}
		return Fragment{Public: pub}, nil
	}
}

// DetectPointFormat picks the point format from the encoding's length.
func DetectPointFormat(curve *curves.Curve, enc []byte) (Format, error) {
	switch len(enc) {
	case curve.CompressedLen():
		return FormatCompressedPoint, nil
	case curve.UncompressedLen():
		return FormatUncompressedPoint, nil
	default:
		return 0, common.Errorf("DetectPointFormat", common.ErrMalformedEncoding, "no %s point encoding is %d bytes", curve.Name, len(enc))
	}
}

// IsMalformed reports whether err came from a rejected encoding.
func IsMalformed(err error) bool {
	return errors.Is(err, common.ErrMalformedEncoding)
}
