package dilithium

// Poly is a ring element of Z_q[X]/(X^N+1) in the standard coefficient
// domain. It is a value type: arithmetic returns new values and never
// mutates its operands.
type Poly [N]uint32

// NTTPoly is a ring element in the NTT domain. Keeping it a distinct
// type makes a cross-domain multiplication a compile error.
type NTTPoly [N]uint32

// Add returns f + g.
func (f Poly) Add(g Poly) Poly {
	var h Poly
	for i := range h {
		h[i] = addMod(f[i], g[i])
	}
	return h
}

// Sub returns f - g.
func (f Poly) Sub(g Poly) Poly {
	var h Poly
	for i := range h {
		h[i] = subMod(f[i], g[i])
	}
	return h
}

// Neg returns -f.
func (f Poly) Neg() Poly {
	var h Poly
	for i := range h {
		h[i] = subMod(0, f[i])
	}
	return h
}

// Equal reports whether f and g have identical coefficients.
func (f Poly) Equal(g Poly) bool {
	return f == g
}

// Mul returns f * g in the ring, computed through the NTT. It agrees
// bit-for-bit with the schoolbook negacyclic convolution.
func (f Poly) Mul(g Poly) Poly {
	return f.NTT().Mul(g.NTT()).InvNTT()
}

// InfNorm returns max_i |centered(f_i)|.
func (f Poly) InfNorm() uint32 {
	var max uint32
	for i := range f {
		if v := absCentered(f[i]); v > max {
			max = v
		}
	}
	return max
}

// Centered returns the coefficients as signed representatives in
// [-(Q-1)/2, (Q-1)/2].
func (f Poly) Centered() [N]int32 {
	var out [N]int32
	for i := range f {
		out[i] = centered(f[i])
	}
	return out
}

// mulSchoolbook is the quadratic negacyclic convolution, kept as the
// reference against which the NTT path is checked.
func mulSchoolbook(f, g Poly) Poly {
	var h Poly
	for i := 0; i < N; i++ {
		fi := uint64(f[i])
		if fi == 0 {
			continue
		}
		for j := 0; j < N; j++ {
			p := fi * uint64(g[j]) % Q
			idx := i + j
			if idx < N {
				h[idx] = addMod(h[idx], uint32(p))
			} else {
				// X^N = -1
				h[idx-N] = subMod(h[idx-N], uint32(p))
			}
		}
	}
	return h
}

// Add returns f + g in the NTT domain.
func (f NTTPoly) Add(g NTTPoly) NTTPoly {
	var h NTTPoly
	for i := range h {
		h[i] = addMod(f[i], g[i])
	}
	return h
}

// Sub returns f - g in the NTT domain.
func (f NTTPoly) Sub(g NTTPoly) NTTPoly {
	var h NTTPoly
	for i := range h {
		h[i] = subMod(f[i], g[i])
	}
	return h
}

// Mul returns the pointwise product f o g, the NTT image of the ring
// product.
func (f NTTPoly) Mul(g NTTPoly) NTTPoly {
	var h NTTPoly
	for i := range h {
		h[i] = mulMod(f[i], g[i])
	}
	return h
}

// Equal reports whether f and g have identical coefficients.
func (f NTTPoly) Equal(g NTTPoly) bool {
	return f == g
}
