package curves

import "math/big"

// SEC1 point encodings shared by the short Weierstrass backends. Coordinates
// are big-endian and FieldLen bytes long.

func encodeCompressed(x, y []byte) []byte {
	out := make([]byte, 1+len(x))
	out[0] = 2 | (y[len(y)-1] & 1)
	copy(out[1:], x)
	return out
}

func encodeUncompressed(x, y []byte) []byte {
	out := make([]byte, 1+len(x)+len(y))
	out[0] = 4
	copy(out[1:], x)
	copy(out[1+len(x):], y)
	return out
}

// decodeCompressed solves y² = x³ + Ax + B for the root whose parity matches
// the prefix. The result is public, so big.Int is fine here.
func decodeCompressed(params *CurveParameters, enc []byte) (x, y *big.Int, err error) {
	if len(enc) != 1+params.fieldLen {
		return nil, nil, errInvalidLength
	}
	if enc[0] != 2 && enc[0] != 3 {
		return nil, nil, errInvalidPrefix
	}
	x, err = parseFieldBytes(enc[1:], params.p)
	if err != nil {
		return nil, nil, err
	}

	rhs := new(big.Int).Mul(x, x)
	rhs.Mul(rhs, x)
	rhs.Add(rhs, new(big.Int).Mul(params.a, x))
	rhs.Add(rhs, params.b)
	rhs.Mod(rhs, params.p)

	y = new(big.Int).ModSqrt(rhs, params.p)
	if y == nil {
		return nil, nil, errNotOnCurve
	}
	odd := uint(enc[0] & 1)
	if y.Bit(0) != odd {
		if y.Sign() == 0 {
			return nil, nil, errNotOnCurve
		}
		y.Sub(params.p, y)
	}
	return x, y, nil
}

func decodeUncompressed(params *CurveParameters, enc []byte) (x, y *big.Int, err error) {
	if len(enc) != 1+2*params.fieldLen {
		return nil, nil, errInvalidLength
	}
	if enc[0] != 4 {
		return nil, nil, errInvalidPrefix
	}
	x, err = parseFieldBytes(enc[1:1+params.fieldLen], params.p)
	if err != nil {
		return nil, nil, err
	}
	y, err = parseFieldBytes(enc[1+params.fieldLen:], params.p)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}
