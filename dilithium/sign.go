package dilithium

import (
	"errors"
	"fmt"
)

// ErrMaxAttempts is returned when the rejection loop exhausts its
// iteration ceiling. With correct parameters this never happens; it
// signals a parameter or randomness defect, not an unlucky run.
var ErrMaxAttempts = errors.New("dilithium: signing exceeded maximum rejection attempts")

// Sign produces a deterministic signature over msg: the masking seed
// is derived as SHAKE256(K || mu), so identical key and message yield
// identical signature bytes.
func Sign(sk *SecretKey, msg []byte) ([]byte, error) {
	mu := shake256Sum(muSize, sk.tr[:], msg)
	rhoPrime := shake256Sum(rhoPrimeSize, sk.key[:], mu)
	return signWithMu(sk, mu, rhoPrime)
}

// SignRandomized produces a signature whose masking seed is drawn from
// rng instead of being derived from the key, trading reproducibility
// for protection against fault attacks on repeated messages.
func SignRandomized(sk *SecretKey, msg []byte, rng RandomSource) ([]byte, error) {
	mu := shake256Sum(muSize, sk.tr[:], msg)
	rhoPrime, err := rng.NextBytes(rhoPrimeSize)
	if err != nil {
		return nil, fmt.Errorf("dilithium: signing randomness: %w", err)
	}
	return signWithMu(sk, mu, rhoPrime)
}

// signWithMu runs the Fiat-Shamir-with-aborts loop. Norm-bound and
// hint-cap failures are the expected retry path, not errors; only the
// attempt ceiling is fatal.
func signWithMu(sk *SecretKey, mu, rhoPrime []byte) ([]byte, error) {
	s1Hat := sk.s1.NTT()
	s2Hat := sk.s2.NTT()
	t0Hat := sk.t0.NTT()

	attempts := 0
	for kappa := uint16(0); attempts < maxSignAttempts; kappa += L {
		attempts++

		y := ExpandMask(rhoPrime, kappa)
		wHat, err := sk.a.MulVec(y.NTT())
		if err != nil {
			return nil, err
		}
		w := wHat.InvNTT()
		w1 := w.HighBits()

		cTilde := shake256Sum(CTildeSize, mu, packW1Vec(w1))
		c := SampleInBall(cTilde)
		cHat := c.NTT()

		// z = y + c*s1, rejected when it would leak the secret.
		z, err := y.Add(s1Hat.ScalarMul(cHat).InvNTT())
		if err != nil {
			return nil, err
		}
		if z.InfNorm() >= Gamma1-Beta {
			continue
		}

		// r0 = LowBits(w - c*s2) must stay clear of the rounding edge.
		wMinusCs2, err := w.Sub(s2Hat.ScalarMul(cHat).InvNTT())
		if err != nil {
			return nil, err
		}
		if wMinusCs2.LowBits().InfNorm() >= Gamma2-Beta {
			continue
		}

		ct0 := t0Hat.ScalarMul(cHat).InvNTT()
		if ct0.InfNorm() >= Gamma2 {
			continue
		}

		h, ok := hintVec(ct0, wMinusCs2)
		if !ok {
			continue
		}

		sig := make([]byte, 0, SignatureSize)
		sig = append(sig, cTilde...)
		for i := 0; i < L; i++ {
			sig = append(sig, packZ(z.elems[i])...)
		}
		sig = append(sig, packHint(h)...)
		return sig, nil
	}
	return nil, fmt.Errorf("%w (after %d attempts)", ErrMaxAttempts, maxSignAttempts)
}

// hintVec builds the hint rows for the verifier, enforcing both the
// per-row cap and the total Omega budget during signing.
func hintVec(ct0, wMinusCs2 Vec) (Vec, bool) {
	h := NewVec(K)
	total := 0
	for i := 0; i < K; i++ {
		row, weight := MakeHint(ct0.elems[i], wMinusCs2.elems[i])
		if weight > Omega {
			return Vec{}, false
		}
		total += weight
		if total > Omega {
			return Vec{}, false
		}
		h.elems[i] = row
	}
	return h, true
}

// packW1Vec concatenates the packed high-bits rows, the byte string
// the challenge hash commits to.
func packW1Vec(w1 Vec) []byte {
	b := make([]byte, 0, K*polyW1Size)
	for i := 0; i < w1.Len(); i++ {
		b = append(b, packW1(w1.elems[i])...)
	}
	return b
}
