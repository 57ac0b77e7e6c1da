package dilithium

// The transform tables are derived once at start-up instead of being
// pasted in: zetas[k] = rootOfUnity^bitrev8(k) mod Q, so the values can
// be audited against the ring constants directly.
var (
	zetas [N]uint32
	nInv  uint32 // N^-1 mod Q
)

func init() {
	for k := range zetas {
		zetas[k] = modPow(rootOfUnity, uint32(bitrev8(k)))
	}
	nInv = modInv(N)
}

// bitrev8 reverses the low 8 bits of k.
func bitrev8(k int) int {
	r := 0
	for i := 0; i < 8; i++ {
		r = r<<1 | (k>>i)&1
	}
	return r
}

// NTT applies the forward transform (Cooley-Tukey butterflies over the
// decimation-in-frequency order used by the reference scheme). The
// output coefficient order is the standard bit-reversed one; pointwise
// products of two transformed values are the images of ring products.
func (f Poly) NTT() NTTPoly {
	k := 1
	for length := N / 2; length >= 1; length >>= 1 {
		for start := 0; start < N; start += 2 * length {
			zeta := zetas[k]
			k++
			for j := start; j < start+length; j++ {
				t := mulMod(zeta, f[j+length])
				f[j+length] = subMod(f[j], t)
				f[j] = addMod(f[j], t)
			}
		}
	}
	return NTTPoly(f)
}

// InvNTT applies the inverse transform (Gentleman-Sande butterflies)
// and the final N^-1 scaling, so that InvNTT(NTT(f)) == f exactly.
func (f NTTPoly) InvNTT() Poly {
	k := N - 1
	for length := 1; length < N; length <<= 1 {
		for start := 0; start < N; start += 2 * length {
			zeta := Q - zetas[k] // -zeta
			k--
			for j := start; j < start+length; j++ {
				t := f[j]
				f[j] = addMod(t, f[j+length])
				f[j+length] = mulMod(zeta, subMod(t, f[j+length]))
			}
		}
	}
	for i := range f {
		f[i] = mulMod(f[i], nInv)
	}
	return Poly(f)
}
