package dilithium

// Coefficient splitting primitives. All of them work on canonical
// [0, Q) representatives; "negative" halves are returned as mod-Q
// representatives so they can flow through ring arithmetic unchanged.

// power2Round splits r as r = r1*2^D + r0 with r0 in (-2^(D-1), 2^(D-1)].
func power2Round(r uint32) (r1, r0 uint32) {
	r1 = r >> D
	r0 = r - r1<<D
	const half = 1 << (D - 1)
	if r0 > half {
		r0 = subMod(r0, 1<<D)
		r1++
	}
	return r1, r0
}

// highBits returns the Gamma2-decomposition high part of r, a value in
// [0, 15] for Gamma2 = (Q-1)/32.
func highBits(r uint32) uint32 {
	r1 := int32((r + 127) >> 7)
	r1 = (r1*1025 + (1 << 21)) >> 22
	return uint32(r1) & 15
}

// decompose splits r as r = r1*2*Gamma2 + r0 with r0 centered in
// (-Gamma2, Gamma2], folding the q-1 = -1 corner into r1 = 0.
func decompose(r uint32) (r1 uint32, r0 int32) {
	r1 = highBits(r)
	r0 = int32(r) - int32(r1)*2*Gamma2
	r0 -= ((qMinus1Div2 - r0) >> 31) & Q
	return r1, r0
}

// makeHint returns 1 when adding z to r moves its high bits.
func makeHint(z, r uint32) uint32 {
	if highBits(addMod(r, z)) != highBits(r) {
		return 1
	}
	return 0
}

// useHint recovers HighBits(r + z) from r and the hint bit produced by
// makeHint(z, r), valid whenever |centered(z)| <= Gamma2.
func useHint(hint, r uint32) uint32 {
	r1, r0 := decompose(r)
	if hint == 0 {
		return r1
	}
	if r0 > 0 {
		return (r1 + 1) & 15
	}
	return (r1 - 1) & 15
}

// Power2Round splits every coefficient at the 2^D radix, returning the
// high and low parts. f reconstructs as hi*2^D + lo.
func (f Poly) Power2Round() (hi, lo Poly) {
	for i := range f {
		hi[i], lo[i] = power2Round(f[i])
	}
	return hi, lo
}

// Decompose splits every coefficient around 2*Gamma2, returning the
// high part and the centered low part (as mod-Q representatives).
func (f Poly) Decompose() (hi, lo Poly) {
	for i := range f {
		r1, r0 := decompose(f[i])
		hi[i] = r1
		lo[i] = fromCentered(r0)
	}
	return hi, lo
}

// HighBits returns the Decompose high part only.
func (f Poly) HighBits() Poly {
	var hi Poly
	for i := range f {
		hi[i] = highBits(f[i])
	}
	return hi
}

// LowBits returns the Decompose low part only.
func (f Poly) LowBits() Poly {
	_, lo := f.Decompose()
	return lo
}

// MakeHint computes the per-coefficient hint mask for the pair (z, r)
// and the number of set bits.
func MakeHint(z, r Poly) (h Poly, weight int) {
	for i := range h {
		h[i] = makeHint(z[i], r[i])
		weight += int(h[i])
	}
	return h, weight
}

// UseHint applies a hint mask to recover the corrected high bits of r.
func UseHint(h, r Poly) Poly {
	var out Poly
	for i := range out {
		out[i] = useHint(h[i], r[i])
	}
	return out
}
