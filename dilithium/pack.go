package dilithium

import "errors"

// Fixed-width packing of polynomials, keys and signatures. Every
// encoding has one exact length for the parameter set; decoders check
// that length up front and never parse partially.

var (
	// ErrPublicKeySize is returned for a public key of the wrong length.
	ErrPublicKeySize = errors.New("dilithium: invalid public key length")
	// ErrSecretKeySize is returned for a secret key of the wrong length.
	ErrSecretKeySize = errors.New("dilithium: invalid secret key length")
	// ErrSignatureSize is returned for a signature of the wrong length.
	ErrSignatureSize = errors.New("dilithium: invalid signature length")
	// ErrMalformedEncoding is returned when a byte string of the right
	// length carries an out-of-range or non-canonical payload.
	ErrMalformedEncoding = errors.New("dilithium: malformed encoding")
)

// packT1 packs 10-bit coefficients in [0, 2^10).
func packT1(f Poly) []byte {
	b := make([]byte, polyT1Size)
	for i := 0; i < N; i += 4 {
		x := uint64(f[i]) | uint64(f[i+1])<<10 | uint64(f[i+2])<<20 | uint64(f[i+3])<<30
		b[i/4*5] = byte(x)
		b[i/4*5+1] = byte(x >> 8)
		b[i/4*5+2] = byte(x >> 16)
		b[i/4*5+3] = byte(x >> 24)
		b[i/4*5+4] = byte(x >> 32)
	}
	return b
}

func unpackT1(b []byte) Poly {
	var f Poly
	for i := 0; i < N; i += 4 {
		x := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 | uint64(b[4])<<32
		f[i] = uint32(x & 0x3ff)
		f[i+1] = uint32(x >> 10 & 0x3ff)
		f[i+2] = uint32(x >> 20 & 0x3ff)
		f[i+3] = uint32(x >> 30 & 0x3ff)
		b = b[5:]
	}
	return f
}

// packT0 packs 13-bit coefficients centered at 2^(D-1), i.e. values in
// (-2^12, 2^12] stored as 2^12 - r0.
func packT0(f Poly) []byte {
	b := make([]byte, polyT0Size)
	const center = 1 << (D - 1)
	idx := 0
	for i := 0; i < N; i += 8 {
		var x1, x2 uint64
		x1 = uint64(subMod(center, f[i]))
		x1 |= uint64(subMod(center, f[i+1])) << 13
		x1 |= uint64(subMod(center, f[i+2])) << 26
		x1 |= uint64(subMod(center, f[i+3])) << 39
		a := uint64(subMod(center, f[i+4]))
		x1 |= a << 52
		x2 = a >> 12
		x2 |= uint64(subMod(center, f[i+5])) << 1
		x2 |= uint64(subMod(center, f[i+6])) << 14
		x2 |= uint64(subMod(center, f[i+7])) << 27

		b[idx] = byte(x1)
		b[idx+1] = byte(x1 >> 8)
		b[idx+2] = byte(x1 >> 16)
		b[idx+3] = byte(x1 >> 24)
		b[idx+4] = byte(x1 >> 32)
		b[idx+5] = byte(x1 >> 40)
		b[idx+6] = byte(x1 >> 48)
		b[idx+7] = byte(x1 >> 56)
		b[idx+8] = byte(x2)
		b[idx+9] = byte(x2 >> 8)
		b[idx+10] = byte(x2 >> 16)
		b[idx+11] = byte(x2 >> 24)
		b[idx+12] = byte(x2 >> 32)
		idx += 13
	}
	return b
}

func unpackT0(b []byte) Poly {
	var f Poly
	const center = 1 << (D - 1)
	const mask = 1<<13 - 1
	for i := 0; i < N; i += 8 {
		x1 := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
			uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
		x2 := uint64(b[8]) | uint64(b[9])<<8 | uint64(b[10])<<16 | uint64(b[11])<<24 | uint64(b[12])<<32
		b = b[13:]

		f[i] = subMod(center, uint32(x1&mask))
		f[i+1] = subMod(center, uint32(x1>>13&mask))
		f[i+2] = subMod(center, uint32(x1>>26&mask))
		f[i+3] = subMod(center, uint32(x1>>39&mask))
		f[i+4] = subMod(center, uint32((x1>>52|x2<<12)&mask))
		f[i+5] = subMod(center, uint32(x2>>1&mask))
		f[i+6] = subMod(center, uint32(x2>>14&mask))
		f[i+7] = subMod(center, uint32(x2>>27&mask))
	}
	return f
}

// packEta packs coefficients in [-Eta, Eta] (Eta = 4) as nibbles
// Eta - a in [0, 8].
func packEta(f Poly) []byte {
	b := make([]byte, polyEtaSize)
	for i := 0; i < N; i += 2 {
		b[i/2] = byte(subMod(Eta, f[i])) | byte(subMod(Eta, f[i+1]))<<4
	}
	return b
}

func unpackEta(b []byte) (Poly, error) {
	var f Poly
	for i := 0; i < N; i += 8 {
		x := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
		// Nibbles 9..15 are not produced by packEta.
		msbs := x & 0x88888888
		bad := msbs>>1 | msbs>>2 | msbs>>3
		if bad&x != 0 {
			return Poly{}, ErrMalformedEncoding
		}
		b = b[4:]
		for j := 0; j < 8; j++ {
			f[i+j] = subMod(Eta, x>>(4*j)&0xf)
		}
	}
	return f, nil
}

// packZ packs coefficients in (-Gamma1, Gamma1] as 20-bit values
// Gamma1 - a.
func packZ(f Poly) []byte {
	b := make([]byte, polyZSize)
	idx := 0
	for i := 0; i < N; i += 4 {
		var x1, x2 uint64
		x1 = uint64(subMod(Gamma1, f[i]))
		x1 |= uint64(subMod(Gamma1, f[i+1])) << 20
		x1 |= uint64(subMod(Gamma1, f[i+2])) << 40
		x2 = uint64(subMod(Gamma1, f[i+3]))
		x1 |= x2 << 60
		x2 >>= 4

		b[idx] = byte(x1)
		b[idx+1] = byte(x1 >> 8)
		b[idx+2] = byte(x1 >> 16)
		b[idx+3] = byte(x1 >> 24)
		b[idx+4] = byte(x1 >> 32)
		b[idx+5] = byte(x1 >> 40)
		b[idx+6] = byte(x1 >> 48)
		b[idx+7] = byte(x1 >> 56)
		b[idx+8] = byte(x2)
		b[idx+9] = byte(x2 >> 8)
		idx += 10
	}
	return b
}

// unpackZ fills f from 20-bit draws; shared by signature decoding and
// ExpandMask.
func unpackZ(b []byte, f *Poly) {
	const mask = 1<<20 - 1
	for i := 0; i < N; i += 4 {
		x1 := uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
			uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
		x2 := uint64(b[8]) | uint64(b[9])<<8
		b = b[10:]
		f[i] = subMod(Gamma1, uint32(x1&mask))
		f[i+1] = subMod(Gamma1, uint32(x1>>20&mask))
		f[i+2] = subMod(Gamma1, uint32(x1>>40&mask))
		f[i+3] = subMod(Gamma1, uint32((x1>>60|x2<<4)&mask))
	}
}

// packW1 packs the 4-bit Decompose high parts.
func packW1(f Poly) []byte {
	b := make([]byte, polyW1Size)
	for i := 0; i < N; i += 2 {
		b[i/2] = byte(f[i]) | byte(f[i+1])<<4
	}
	return b
}

// packHint encodes a hint vector as up to Omega set-bit positions
// followed by K cumulative per-row counts, Omega + K bytes in total.
// The caller guarantees the total weight fits the Omega budget.
func packHint(h Vec) []byte {
	b := make([]byte, hintSize)
	idx := 0
	for i := 0; i < h.Len(); i++ {
		row := h.elems[i]
		for j := 0; j < N; j++ {
			if row[j] != 0 {
				b[idx] = byte(j)
				idx++
			}
		}
		b[Omega+i] = byte(idx)
	}
	return b
}

// unpackHint decodes a hint vector, rejecting non-monotone row counts,
// rows over the per-row cap, unsorted positions and nonzero padding.
func unpackHint(b []byte) (Vec, error) {
	h := NewVec(K)
	idx := 0
	for i := 0; i < K; i++ {
		limit := int(b[Omega+i])
		if limit < idx || limit > Omega {
			return Vec{}, ErrMalformedEncoding
		}
		first := idx
		for ; idx < limit; idx++ {
			pos := b[idx]
			if idx > first && b[idx-1] >= pos {
				return Vec{}, ErrMalformedEncoding
			}
			h.elems[i][pos] = 1
		}
	}
	for ; idx < Omega; idx++ {
		if b[idx] != 0 {
			return Vec{}, ErrMalformedEncoding
		}
	}
	return h, nil
}
