package dilithium

import "bytes"

// Signature is the decoded form of a packed signature: the challenge
// seed, the response vector z and the hint rows.
type Signature struct {
	CTilde [CTildeSize]byte
	Z      Vec
	Hint   Vec
}

// ParseSignature decodes a packed signature. The input length must be
// exactly SignatureSize; a malformed hint encoding is rejected without
// partial parsing.
func ParseSignature(b []byte) (*Signature, error) {
	if len(b) != SignatureSize {
		return nil, ErrSignatureSize
	}
	sig := &Signature{Z: NewVec(L)}
	copy(sig.CTilde[:], b[:CTildeSize])
	offset := CTildeSize
	for i := 0; i < L; i++ {
		unpackZ(b[offset:offset+polyZSize], &sig.Z.elems[i])
		offset += polyZSize
	}
	h, err := unpackHint(b[offset:])
	if err != nil {
		return nil, err
	}
	sig.Hint = h
	return sig, nil
}

// Bytes returns the packed signature c~ || z || h.
func (sig *Signature) Bytes() []byte {
	b := make([]byte, 0, SignatureSize)
	b = append(b, sig.CTilde[:]...)
	for i := 0; i < L; i++ {
		b = append(b, packZ(sig.Z.elems[i])...)
	}
	b = append(b, packHint(sig.Hint)...)
	return b
}

// Verify checks sig over msg under pk. It never mutates its inputs and
// never accepts malformed bytes; any decode failure, norm violation or
// challenge mismatch yields false.
func Verify(pk *PublicKey, msg, sigBytes []byte) bool {
	sig, err := ParseSignature(sigBytes)
	if err != nil {
		return false
	}
	if sig.Z.InfNorm() >= Gamma1-Beta {
		return false
	}

	mu := shake256Sum(muSize, pk.tr[:], msg)
	c := SampleInBall(sig.CTilde[:])
	cHat := c.NTT()

	azHat, err := pk.a.MulVec(sig.Z.NTT())
	if err != nil {
		return false
	}

	// t1 * 2^D back in the ring, then into the NTT domain.
	t1Scaled := NewVec(K)
	for i := 0; i < K; i++ {
		var f Poly
		for j := 0; j < N; j++ {
			f[j] = pk.t1.elems[i][j] << D
		}
		t1Scaled.elems[i] = f
	}
	wApproxHat, err := azHat.Sub(t1Scaled.NTT().ScalarMul(cHat))
	if err != nil {
		return false
	}
	wApprox := wApproxHat.InvNTT()

	w1 := NewVec(K)
	for i := 0; i < K; i++ {
		w1.elems[i] = UseHint(sig.Hint.elems[i], wApprox.elems[i])
	}

	cTildeCheck := shake256Sum(CTildeSize, mu, packW1Vec(w1))
	return bytes.Equal(sig.CTilde[:], cTildeCheck)
}
