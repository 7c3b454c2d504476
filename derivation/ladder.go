package derivation

import (
	"crypto/subtle"

	"github.com/arcana-network/keygen/curves"
)

// recode returns k = d+n when that sum has bit bitlen(n) set and d+2n
// otherwise, as a big-endian buffer one byte wider than the scalar. Either way
// k has exactly bitlen(n)+1 bits and k*G = d*G.
func recode(params *curves.CurveParameters, d []byte) []byte {
	width := params.ScalarLen() + 1
	order := widen(params.OrderBytes(), width)
	scalar := widen(d, width)
	defer wipe(scalar)

	kn := addFixed(scalar, order)
	k2n := addFixed(kn, order)
	defer wipe(kn)

	top := params.OrderBitLen()
	useN := bitAt(kn, top)
	subtle.ConstantTimeCopy(useN, k2n, kn)
	return k2n
}

// ladder computes k*G for a k with exactly bits significant bits. The top bit
// is consumed by the initial state, the remaining bits-1 steps each do the
// same swap, add, double and swap regardless of the bit value.
func ladder(curve *curves.Curve, k []byte, bits int) curves.Point {
	r0 := curve.NewGeneratorPoint()
	r1 := r0.Double()

	for i := bits - 2; i >= 0; i-- {
		b := bitAt(k, i)
		r0, r1 = cswap(b, r0, r1)
		r1 = r0.Add(r1)
		r0 = r0.Double()
		r0, r1 = cswap(b, r0, r1)
	}
	return r0
}

func cswap(b int, p, q curves.Point) (curves.Point, curves.Point) {
	return p.Select(b, q), q.Select(b, p)
}

// bitAt returns bit i of the big-endian buffer b. The memory access depends
// only on i.
func bitAt(b []byte, i int) int {
	return int(b[len(b)-1-i/8]>>uint(i%8)) & 1
}

func addFixed(a, b []byte) []byte {
	out := make([]byte, len(a))
	var carry uint16
	for i := len(a) - 1; i >= 0; i-- {
		sum := uint16(a[i]) + uint16(b[i]) + carry
		out[i] = byte(sum)
		carry = sum >> 8
	}
	return out
}

func widen(b []byte, width int) []byte {
	out := make([]byte, width)
	copy(out[width-len(b):], b)
	return out
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
