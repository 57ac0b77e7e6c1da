package dilithium

// Dilithium3 parameters (round-3 submission, version 3.1).
const (
	// N is the degree of the ring Z_q[X]/(X^N+1).
	N = 256

	// Q is the ring modulus, a prime with Q = 1 mod 2N so that a
	// primitive 2N-th root of unity exists: Q = 2^23 - 2^13 + 1.
	Q = 8380417

	// rootOfUnity is a primitive 512th root of unity mod Q.
	rootOfUnity = 1753

	// D is the number of bits dropped from t by Power2Round.
	D = 13

	// K and L are the module dimensions: the public matrix A is K x L.
	K = 6
	L = 5

	// Eta bounds the coefficients of the secret vectors s1, s2.
	Eta = 4

	// Tau is the number of +-1 coefficients in the challenge polynomial.
	Tau = 49

	// Beta = Tau * Eta bounds the norm of c*s1 and c*s2.
	Beta = Tau * Eta

	// Gamma1 bounds the coefficients of the masking vector y.
	Gamma1 = 1 << 19

	// Gamma2 is the low-order rounding range used by Decompose.
	Gamma2 = (Q - 1) / 32

	// Omega caps the total number of set hint bits.
	Omega = 55

	qMinus1Div2 = (Q - 1) / 2
)

// Byte sizes of seeds, digests and packed objects.
const (
	// SeedSize is the size of the key-generation seed and of rho and K.
	SeedSize = 32

	// TRSize is the size of the public-key digest tr.
	TRSize = 32

	// CTildeSize is the size of the packed challenge seed c~.
	CTildeSize = 32

	muSize       = 64
	rhoPrimeSize = 64

	polyT1Size  = N * 10 / 8 // t1, 10 bits per coefficient
	polyT0Size  = N * 13 / 8 // t0, 13 bits per coefficient
	polyEtaSize = N * 4 / 8  // s1/s2, 4 bits per coefficient (Eta = 4)
	polyZSize   = N * 20 / 8 // z, 20 bits per coefficient (Gamma1 = 2^19)
	polyW1Size  = N * 4 / 8  // w1, 4 bits per coefficient

	hintSize = Omega + K

	// PublicKeySize is the byte length of a packed public key: rho || t1.
	PublicKeySize = SeedSize + K*polyT1Size

	// SecretKeySize is the byte length of a packed secret key:
	// rho || K || tr || s1 || s2 || t0.
	SecretKeySize = 2*SeedSize + TRSize + (K+L)*polyEtaSize + K*polyT0Size

	// SignatureSize is the byte length of a packed signature:
	// c~ || z || h.
	SignatureSize = CTildeSize + L*polyZSize + hintSize
)

// maxSignAttempts bounds the Fiat-Shamir rejection loop. The loop is
// expected to finish within a handful of iterations; reaching the
// ceiling indicates broken parameters or randomness, not bad luck.
const maxSignAttempts = 1024
