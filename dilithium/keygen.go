package dilithium

import (
	"bytes"
	"fmt"
)

// RandomSource is the byte stream KeyGen (and SignRandomized) draw
// from. A source carries its own state and must not be shared between
// concurrent callers; the drbg package provides implementations.
type RandomSource interface {
	// NextBytes returns n fresh bytes or an error if the source is
	// unusable (unseeded, or past its reseed interval).
	NextBytes(n int) ([]byte, error)
}

// PublicKey is a Dilithium3 public key: the matrix seed rho and the
// rounded high-order vector t1. The expanded matrix and the digest tr
// are cached at construction and never change afterwards.
type PublicKey struct {
	rho [SeedSize]byte
	t1  Vec
	tr  [TRSize]byte
	a   Mat
}

// SecretKey is a Dilithium3 secret key. It is reused read-only across
// any number of Sign calls.
type SecretKey struct {
	rho [SeedSize]byte
	key [SeedSize]byte
	tr  [TRSize]byte
	s1  Vec
	s2  Vec
	t0  Vec
	a   Mat
}

// KeyGen draws a 32-byte seed from rng and derives a key pair from it.
func KeyGen(rng RandomSource) (*PublicKey, *SecretKey, error) {
	seed, err := rng.NextBytes(SeedSize)
	if err != nil {
		return nil, nil, fmt.Errorf("dilithium: keygen randomness: %w", err)
	}
	return NewKeyFromSeed(seed)
}

// NewKeyFromSeed deterministically derives a key pair from a 32-byte
// seed: SHAKE256(seed) yields (rho, sigma, K); A = ExpandA(rho),
// (s1, s2) = ExpandS(sigma), t = A*s1 + s2 split by Power2Round.
func NewKeyFromSeed(seed []byte) (*PublicKey, *SecretKey, error) {
	if len(seed) != SeedSize {
		return nil, nil, fmt.Errorf("dilithium: seed must be %d bytes, got %d", SeedSize, len(seed))
	}

	expanded := shake256Sum(2*SeedSize + 64, seed)
	var rho, key [SeedSize]byte
	copy(rho[:], expanded[:32])
	sigma := expanded[32:96]
	copy(key[:], expanded[96:128])

	a := ExpandA(rho[:])
	s1, s2 := ExpandS(sigma)

	tHat, err := a.MulVec(s1.NTT())
	if err != nil {
		return nil, nil, err
	}
	t, err := tHat.InvNTT().Add(s2)
	if err != nil {
		return nil, nil, err
	}
	t1, t0 := t.Power2Round()

	pk := &PublicKey{rho: rho, t1: t1, a: a}
	copy(pk.tr[:], shake256Sum(TRSize, pk.Bytes()))

	sk := &SecretKey{rho: rho, key: key, tr: pk.tr, s1: s1, s2: s2, t0: t0, a: a}
	return pk, sk, nil
}

// Bytes returns the packed public key rho || t1 (PublicKeySize bytes).
func (pk *PublicKey) Bytes() []byte {
	b := make([]byte, 0, PublicKeySize)
	b = append(b, pk.rho[:]...)
	for i := 0; i < K; i++ {
		b = append(b, packT1(pk.t1.elems[i])...)
	}
	return b
}

// Equal reports whether two public keys encode the same key.
func (pk *PublicKey) Equal(o *PublicKey) bool {
	if o == nil {
		return false
	}
	return bytes.Equal(pk.Bytes(), o.Bytes())
}

// ParsePublicKey decodes a packed public key, re-expanding the matrix
// and recomputing tr. The input length must be exactly PublicKeySize.
func ParsePublicKey(b []byte) (*PublicKey, error) {
	if len(b) != PublicKeySize {
		return nil, ErrPublicKeySize
	}
	pk := &PublicKey{t1: NewVec(K)}
	copy(pk.rho[:], b[:SeedSize])
	offset := SeedSize
	for i := 0; i < K; i++ {
		pk.t1.elems[i] = unpackT1(b[offset : offset+polyT1Size])
		offset += polyT1Size
	}
	pk.a = ExpandA(pk.rho[:])
	copy(pk.tr[:], shake256Sum(TRSize, b))
	return pk, nil
}

// Bytes returns the packed secret key
// rho || K || tr || s1 || s2 || t0 (SecretKeySize bytes).
func (sk *SecretKey) Bytes() []byte {
	b := make([]byte, 0, SecretKeySize)
	b = append(b, sk.rho[:]...)
	b = append(b, sk.key[:]...)
	b = append(b, sk.tr[:]...)
	for i := 0; i < L; i++ {
		b = append(b, packEta(sk.s1.elems[i])...)
	}
	for i := 0; i < K; i++ {
		b = append(b, packEta(sk.s2.elems[i])...)
	}
	for i := 0; i < K; i++ {
		b = append(b, packT0(sk.t0.elems[i])...)
	}
	return b
}

// ParseSecretKey decodes a packed secret key and re-expands the
// matrix. The input length must be exactly SecretKeySize; out-of-range
// secret coefficients are rejected.
func ParseSecretKey(b []byte) (*SecretKey, error) {
	if len(b) != SecretKeySize {
		return nil, ErrSecretKeySize
	}
	sk := &SecretKey{s1: NewVec(L), s2: NewVec(K), t0: NewVec(K)}
	copy(sk.rho[:], b[:SeedSize])
	copy(sk.key[:], b[SeedSize:2*SeedSize])
	copy(sk.tr[:], b[2*SeedSize:2*SeedSize+TRSize])

	offset := 2*SeedSize + TRSize
	var err error
	for i := 0; i < L; i++ {
		sk.s1.elems[i], err = unpackEta(b[offset : offset+polyEtaSize])
		if err != nil {
			return nil, err
		}
		offset += polyEtaSize
	}
	for i := 0; i < K; i++ {
		sk.s2.elems[i], err = unpackEta(b[offset : offset+polyEtaSize])
		if err != nil {
			return nil, err
		}
		offset += polyEtaSize
	}
	for i := 0; i < K; i++ {
		sk.t0.elems[i] = unpackT0(b[offset : offset+polyT0Size])
		offset += polyT0Size
	}
	sk.a = ExpandA(sk.rho[:])
	return sk, nil
}

// PublicKey recomputes the public key matching sk.
func (sk *SecretKey) PublicKey() (*PublicKey, error) {
	tHat, err := sk.a.MulVec(sk.s1.NTT())
	if err != nil {
		return nil, err
	}
	t, err := tHat.InvNTT().Add(sk.s2)
	if err != nil {
		return nil, err
	}
	t1, _ := t.Power2Round()
	pk := &PublicKey{rho: sk.rho, t1: t1, tr: sk.tr, a: sk.a}
	return pk, nil
}
