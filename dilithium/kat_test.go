package dilithium_test

import (
	"testing"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"github.com/stretchr/testify/require"

	"Dilithium-Signature/dilithium"
	"Dilithium-Signature/drbg"
)

// The mode3 package implements the same round-3 Dilithium3 scheme and
// serves as an independent reference: key derivation, deterministic
// signing and verification must agree byte for byte.

func TestKeyDerivationMatchesReference(t *testing.T) {
	require.Equal(t, mode3.PublicKeySize, dilithium.PublicKeySize)
	require.Equal(t, mode3.PrivateKeySize, dilithium.SecretKeySize)
	require.Equal(t, mode3.SignatureSize, dilithium.SignatureSize)

	for _, fill := range []byte{0x00, 0x01, 0x42, 0xff} {
		var seed [mode3.SeedSize]byte
		for i := range seed {
			seed[i] = fill
		}
		refPK, refSK := mode3.NewKeyFromSeed(&seed)

		pk, sk, err := dilithium.NewKeyFromSeed(seed[:])
		require.NoError(t, err)
		require.Equal(t, refPK.Bytes(), pk.Bytes(), "public key for seed fill %#x", fill)
		require.Equal(t, refSK.Bytes(), sk.Bytes(), "secret key for seed fill %#x", fill)
	}
}

func TestDeterministicSignatureMatchesReference(t *testing.T) {
	var seed [mode3.SeedSize]byte
	for i := range seed {
		seed[i] = byte(i)
	}
	_, refSK := mode3.NewKeyFromSeed(&seed)
	_, sk, err := dilithium.NewKeyFromSeed(seed[:])
	require.NoError(t, err)

	for _, msg := range [][]byte{
		{},
		[]byte("m"),
		[]byte("interoperable signature bytes"),
		make([]byte, 1000),
	} {
		want := make([]byte, mode3.SignatureSize)
		mode3.SignTo(refSK, msg, want)

		got, err := dilithium.Sign(sk, msg)
		require.NoError(t, err)
		require.Equal(t, want, got, "message %q", msg)
	}
}

func TestInteropVerify(t *testing.T) {
	var seed [mode3.SeedSize]byte
	seed[0] = 0x99
	refPK, refSK := mode3.NewKeyFromSeed(&seed)
	pk, sk, err := dilithium.NewKeyFromSeed(seed[:])
	require.NoError(t, err)

	msg := []byte("cross-implementation verification")

	// Our signature under the reference verifier.
	sig, err := dilithium.Sign(sk, msg)
	require.NoError(t, err)
	require.True(t, mode3.Verify(refPK, msg, sig))

	// The reference signature under our verifier, both with the
	// in-memory key and with one parsed from the reference encoding.
	refSig := make([]byte, mode3.SignatureSize)
	mode3.SignTo(refSK, msg, refSig)
	require.True(t, dilithium.Verify(pk, msg, refSig))

	parsed, err := dilithium.ParsePublicKey(refPK.Bytes())
	require.NoError(t, err)
	require.True(t, dilithium.Verify(parsed, msg, refSig))
}

func TestSeededPipeline(t *testing.T) {
	// The full deterministic pipeline: a fixed DRBG seed drives keygen,
	// and the resulting keys interoperate with the reference.
	var entropy [drbg.SeedSize]byte
	for i := range entropy {
		entropy[i] = byte(i)
	}
	rng := drbg.NewAESDRBG(entropy, [drbg.NonceSize]byte{})
	pk, sk, err := dilithium.KeyGen(rng)
	require.NoError(t, err)

	rng2 := drbg.NewAESDRBG(entropy, [drbg.NonceSize]byte{})
	pk2, sk2, err := dilithium.KeyGen(rng2)
	require.NoError(t, err)
	require.Equal(t, pk.Bytes(), pk2.Bytes())
	require.Equal(t, sk.Bytes(), sk2.Bytes())

	msg := []byte("seeded end to end")
	sig, err := dilithium.Sign(sk, msg)
	require.NoError(t, err)
	require.True(t, dilithium.Verify(pk, msg, sig))

	var refPK mode3.PublicKey
	require.NoError(t, refPK.UnmarshalBinary(pk.Bytes()))
	require.True(t, mode3.Verify(&refPK, msg, sig))
}
