// Package drbg provides the byte-stream sources consumed by key
// generation and randomized signing: a deterministic AES-256 CTR
// generator mirroring the one used to produce the scheme's published
// test vectors, a system-entropy source, and an adapter for arbitrary
// io.Readers. Every source satisfies the same NextBytes contract.
//
// A generator owns mutable counter state. It must be used by one
// caller at a time; concurrent callers hold independent instances or
// serialize access themselves.
package drbg

import (
	"crypto/aes"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrNotSeeded is returned when bytes are requested from a
	// generator that was never seeded.
	ErrNotSeeded = errors.New("drbg: generator not seeded")

	// ErrReseedRequired is returned once a generator has served its
	// full reseed interval without fresh entropy.
	ErrReseedRequired = errors.New("drbg: reseed interval exceeded")
)

const (
	// SeedSize is the entropy input length of the AES-256 CTR DRBG.
	SeedSize = 32

	// NonceSize is the personalization nonce length; entropy || nonce
	// forms the 48-byte seed material.
	NonceSize = 16

	seedMaterialLen = SeedSize + NonceSize

	// DefaultReseedInterval is the number of generate calls served
	// before the DRBG demands fresh entropy.
	DefaultReseedInterval = 1 << 20
)

// AESDRBG is an AES-256 CTR-mode deterministic random byte generator
// (the SP 800-90A construction without a derivation function). Seeded
// with a fixed entropy input it reproduces the exact byte stream used
// for known-answer tests.
type AESDRBG struct {
	key    [SeedSize]byte
	v      [aes.BlockSize]byte
	calls  uint64
	limit  uint64
	seeded bool
}

// NewAESDRBG returns a generator seeded with entropy || nonce.
func NewAESDRBG(entropy [SeedSize]byte, nonce [NonceSize]byte) *AESDRBG {
	g := &AESDRBG{limit: DefaultReseedInterval}
	g.Reseed(entropy, nonce)
	return g
}

// SetReseedInterval overrides the number of generate calls allowed
// before ErrReseedRequired. Zero restores the default.
func (g *AESDRBG) SetReseedInterval(n uint64) {
	if n == 0 {
		n = DefaultReseedInterval
	}
	g.limit = n
}

// Reseed mixes fresh entropy into the generator state and resets the
// call counter.
func (g *AESDRBG) Reseed(entropy [SeedSize]byte, nonce [NonceSize]byte) {
	var material [seedMaterialLen]byte
	copy(material[:SeedSize], entropy[:])
	copy(material[SeedSize:], nonce[:])
	g.update(material[:])
	g.calls = 0
	if g.limit == 0 {
		g.limit = DefaultReseedInterval
	}
	g.seeded = true
}

// NextBytes returns n deterministic bytes. It fails when the generator
// was never seeded or has exceeded its reseed interval.
func (g *AESDRBG) NextBytes(n int) ([]byte, error) {
	if !g.seeded {
		return nil, ErrNotSeeded
	}
	if g.calls >= g.limit {
		return nil, ErrReseedRequired
	}
	if n < 0 {
		return nil, fmt.Errorf("drbg: negative request %d", n)
	}
	g.calls++

	block, err := aes.NewCipher(g.key[:])
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	var buf [aes.BlockSize]byte
	for off := 0; off < n; off += aes.BlockSize {
		incrementBlock(&g.v)
		block.Encrypt(buf[:], g.v[:])
		copy(out[off:], buf[:])
	}
	g.update(nil)
	return out, nil
}

// update is the CTR_DRBG state transition: generate 48 keystream
// bytes, xor in the provided data, and split into the new key and V.
func (g *AESDRBG) update(provided []byte) {
	block, err := aes.NewCipher(g.key[:])
	if err != nil {
		// key length is fixed at 32 bytes
		panic(err)
	}
	var temp [seedMaterialLen]byte
	for i := 0; i < seedMaterialLen/aes.BlockSize; i++ {
		incrementBlock(&g.v)
		block.Encrypt(temp[i*aes.BlockSize:(i+1)*aes.BlockSize], g.v[:])
	}
	for i := range provided {
		temp[i] ^= provided[i]
	}
	copy(g.key[:], temp[:SeedSize])
	copy(g.v[:], temp[SeedSize:])
}

// incrementBlock treats v as a big-endian counter and adds one.
func incrementBlock(v *[aes.BlockSize]byte) {
	for i := aes.BlockSize - 1; i >= 0; i-- {
		v[i]++
		if v[i] != 0 {
			return
		}
	}
}

// SystemSource serves bytes from the operating system's entropy pool.
// It is safe for concurrent use and never needs reseeding.
type SystemSource struct{}

// NextBytes reads n bytes from crypto/rand.
func (SystemSource) NextBytes(n int) ([]byte, error) {
	out := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, out); err != nil {
		return nil, fmt.Errorf("drbg: system entropy: %w", err)
	}
	return out, nil
}

// ReaderSource adapts any io.Reader (for instance a keyed PRNG used in
// tests) to the NextBytes contract.
type ReaderSource struct {
	R io.Reader
}

// NextBytes reads n bytes from the wrapped reader.
func (s ReaderSource) NextBytes(n int) ([]byte, error) {
	if s.R == nil {
		return nil, ErrNotSeeded
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(s.R, out); err != nil {
		return nil, fmt.Errorf("drbg: reader source: %w", err)
	}
	return out, nil
}
