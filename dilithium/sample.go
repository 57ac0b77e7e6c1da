package dilithium

import "golang.org/x/crypto/sha3"

// All sampling is deterministic given its seed: each sampler squeezes a
// domain-separated SHAKE stream and rejection-samples it into the
// target range, so the restricted distributions stay exactly uniform.

const (
	shake128Rate = 168
	shake256Rate = 136
)

// ExpandA derives the K x L public matrix from rho, directly in the
// NTT domain. Entry (i, j) is sampled from SHAKE128(rho || j || i).
func ExpandA(rho []byte) Mat {
	a := NewMat(K, L)
	for i := 0; i < K; i++ {
		for j := 0; j < L; j++ {
			a.Set(i, j, polyUniform(rho, uint16(i)<<8|uint16(j)))
		}
	}
	return a
}

// polyUniform rejection-samples a uniform NTT-domain polynomial from
// SHAKE128(rho || nonce), discarding 23-bit draws >= Q.
func polyUniform(rho []byte, nonce uint16) NTTPoly {
	h := sha3.NewShake128()
	h.Write(rho)
	h.Write([]byte{byte(nonce), byte(nonce >> 8)})

	var buf [shake128Rate]byte
	var a NTTPoly
	j := 0
	for {
		h.Read(buf[:])
		for i := 0; i+2 < len(buf) && j < N; i += 3 {
			d := uint32(buf[i]) | uint32(buf[i+1])<<8 | (uint32(buf[i+2])&0x7f)<<16
			if d < Q {
				a[j] = d
				j++
			}
		}
		if j == N {
			return a
		}
	}
}

// ExpandS derives the short secret vectors s1 (length L) and s2
// (length K) from sigma, with coefficients uniform in [-Eta, Eta].
func ExpandS(sigma []byte) (s1, s2 Vec) {
	s1, s2 = NewVec(L), NewVec(K)
	for i := 0; i < L; i++ {
		s1.elems[i] = polyUniformEta(sigma, uint16(i))
	}
	for i := 0; i < K; i++ {
		s2.elems[i] = polyUniformEta(sigma, uint16(L+i))
	}
	return s1, s2
}

// polyUniformEta rejection-samples nibbles from
// SHAKE256(sigma || nonce) and keeps z <= 2*Eta, mapping to Eta - z.
func polyUniformEta(sigma []byte, nonce uint16) Poly {
	h := sha3.NewShake256()
	h.Write(sigma)
	h.Write([]byte{byte(nonce), byte(nonce >> 8)})

	var buf [shake256Rate]byte
	var a Poly
	j := 0
	offset := len(buf)
	for j < N {
		if offset == len(buf) {
			h.Read(buf[:])
			offset = 0
		}
		z0 := buf[offset] & 0x0f
		z1 := buf[offset] >> 4
		offset++
		if z0 <= 2*Eta {
			a[j] = subMod(Eta, uint32(z0))
			j++
		}
		if j < N && z1 <= 2*Eta {
			a[j] = subMod(Eta, uint32(z1))
			j++
		}
	}
	return a
}

// ExpandMask derives the length-L masking vector y for retry counter
// kappa, with coefficients uniform in (-Gamma1, Gamma1]. Element i is
// read from SHAKE256(rhoPrime || kappa+i).
func ExpandMask(rhoPrime []byte, kappa uint16) Vec {
	y := NewVec(L)
	for i := 0; i < L; i++ {
		y.elems[i] = polyUniformGamma1(rhoPrime, kappa+uint16(i))
	}
	return y
}

// polyUniformGamma1 reads 20-bit draws from SHAKE256(rhoPrime || nonce)
// and maps z to Gamma1 - z.
func polyUniformGamma1(rhoPrime []byte, nonce uint16) Poly {
	h := sha3.NewShake256()
	h.Write(rhoPrime)
	h.Write([]byte{byte(nonce), byte(nonce >> 8)})

	var buf [polyZSize]byte
	h.Read(buf[:])

	var f Poly
	unpackZ(buf[:], &f)
	return f
}

// SampleInBall expands the challenge seed into a polynomial with
// exactly Tau coefficients in {-1, +1}, placed by a Fisher-Yates
// shuffle over the SHAKE256 stream. The first 8 bytes carry the signs.
func SampleInBall(seed []byte) Poly {
	h := sha3.NewShake256()
	h.Write(seed)

	var buf [shake256Rate]byte
	h.Read(buf[:])

	var signs uint64
	for i := 0; i < 8; i++ {
		signs |= uint64(buf[i]) << (8 * i)
	}
	offset := 8

	var c Poly
	for i := N - Tau; i < N; i++ {
		var j byte
		for {
			if offset == len(buf) {
				h.Read(buf[:])
				offset = 0
			}
			j = buf[offset]
			offset++
			if int(j) <= i {
				break
			}
		}
		c[i] = c[j]
		if signs&1 == 0 {
			c[j] = 1
		} else {
			c[j] = Q - 1
		}
		signs >>= 1
	}
	return c
}

// shake256Sum writes the concatenation of parts into SHAKE256 and
// squeezes outLen bytes.
func shake256Sum(outLen int, parts ...[]byte) []byte {
	h := sha3.NewShake256()
	for _, p := range parts {
		h.Write(p)
	}
	out := make([]byte, outLen)
	h.Read(out)
	return out
}
