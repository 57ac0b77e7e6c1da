// Package dilithium implements the CRYSTALS-Dilithium signature scheme
// at the Dilithium3 parameter set (round-3 submission, version 3.1) in
// pure Go: deterministic key generation, Fiat-Shamir-with-aborts
// signing and signature verification.
//
// The package is organised around the polynomial ring Z_q[X]/(X^256+1)
// with q = 8380417. Standard-domain and NTT-domain ring elements are
// distinct types, so mixing domains in a multiplication is a compile
// error rather than a runtime surprise. Vectors and matrices of ring
// elements are backed by flat arenas and carry their shape; operations
// on mismatched shapes fail with ErrShapeMismatch.
//
// Randomness enters only through the RandomSource interface passed to
// KeyGen (and optionally SignRandomized). The drbg package provides an
// AES-256 CTR generator for reproducing known-answer vectors and a
// system-entropy source for normal use.
package dilithium
