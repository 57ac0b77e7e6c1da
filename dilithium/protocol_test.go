package dilithium_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/lattigo/v4/utils"

	"Dilithium-Signature/dilithium"
	"Dilithium-Signature/drbg"
)

func seededSource(t *testing.T, fill byte) *drbg.AESDRBG {
	t.Helper()
	var entropy [drbg.SeedSize]byte
	var nonce [drbg.NonceSize]byte
	for i := range entropy {
		entropy[i] = fill
	}
	return drbg.NewAESDRBG(entropy, nonce)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	messages := [][]byte{
		nil,
		[]byte(""),
		[]byte("a"),
		[]byte("the quick brown fox jumps over the lazy dog"),
		make([]byte, 4096),
	}
	for _, fill := range []byte{0x00, 0x01, 0x7f, 0xff} {
		pk, sk, err := dilithium.KeyGen(seededSource(t, fill))
		require.NoError(t, err)
		require.Len(t, pk.Bytes(), dilithium.PublicKeySize)
		require.Len(t, sk.Bytes(), dilithium.SecretKeySize)

		for _, msg := range messages {
			sig, err := dilithium.Sign(sk, msg)
			require.NoError(t, err)
			require.Len(t, sig, dilithium.SignatureSize)
			require.True(t, dilithium.Verify(pk, msg, sig))
		}
	}
}

func TestDeterministicSigning(t *testing.T) {
	_, sk, err := dilithium.KeyGen(seededSource(t, 0x21))
	require.NoError(t, err)

	msg := []byte("repeatable")
	sig1, err := dilithium.Sign(sk, msg)
	require.NoError(t, err)
	sig2, err := dilithium.Sign(sk, msg)
	require.NoError(t, err)
	require.Equal(t, sig1, sig2)

	other, err := dilithium.Sign(sk, []byte("repeatable?"))
	require.NoError(t, err)
	require.NotEqual(t, sig1, other)
}

func TestSignRandomized(t *testing.T) {
	pk, sk, err := dilithium.KeyGen(seededSource(t, 0x22))
	require.NoError(t, err)

	msg := []byte("masked fresh each time")
	sig1, err := dilithium.SignRandomized(sk, msg, seededSource(t, 0x55))
	require.NoError(t, err)
	sig2, err := dilithium.SignRandomized(sk, msg, seededSource(t, 0x56))
	require.NoError(t, err)

	require.True(t, dilithium.Verify(pk, msg, sig1))
	require.True(t, dilithium.Verify(pk, msg, sig2))
	require.NotEqual(t, sig1, sig2)
}

func TestVerifyRejectsTampering(t *testing.T) {
	pk, sk, err := dilithium.KeyGen(seededSource(t, 0x23))
	require.NoError(t, err)
	msg := []byte("tamper target")
	sig, err := dilithium.Sign(sk, msg)
	require.NoError(t, err)

	// Flipped message.
	bad := append([]byte{}, msg...)
	bad[0] ^= 1
	require.False(t, dilithium.Verify(pk, bad, sig))

	// One flipped bit in each signature region: challenge seed, z, hint.
	for _, idx := range []int{0, dilithium.CTildeSize + 100, dilithium.SignatureSize - 1} {
		mangled := append([]byte{}, sig...)
		mangled[idx] ^= 0x40
		require.False(t, dilithium.Verify(pk, msg, mangled), "bit flip at %d accepted", idx)
	}

	// Truncated and padded signatures.
	require.False(t, dilithium.Verify(pk, msg, sig[:len(sig)-1]))
	require.False(t, dilithium.Verify(pk, msg, append(append([]byte{}, sig...), 0)))

	// Wrong key.
	pk2, _, err := dilithium.KeyGen(seededSource(t, 0x24))
	require.NoError(t, err)
	require.False(t, dilithium.Verify(pk2, msg, sig))

	// A bit flip in the public key encoding, in rho and in t1.
	for _, idx := range []int{3, dilithium.SeedSize + 50} {
		raw := pk.Bytes()
		raw[idx] ^= 0x10
		flipped, err := dilithium.ParsePublicKey(raw)
		require.NoError(t, err)
		require.False(t, dilithium.Verify(flipped, msg, sig), "pk bit flip at %d accepted", idx)
	}
}

func TestKeyEncodingRoundTrip(t *testing.T) {
	pk, sk, err := dilithium.KeyGen(seededSource(t, 0x25))
	require.NoError(t, err)

	pk2, err := dilithium.ParsePublicKey(pk.Bytes())
	require.NoError(t, err)
	require.True(t, pk.Equal(pk2))

	sk2, err := dilithium.ParseSecretKey(sk.Bytes())
	require.NoError(t, err)
	require.Equal(t, sk.Bytes(), sk2.Bytes())

	// A parsed secret key signs identically and its recomputed public
	// key verifies.
	msg := []byte("parsed keys behave like originals")
	sig1, err := dilithium.Sign(sk, msg)
	require.NoError(t, err)
	sig2, err := dilithium.Sign(sk2, msg)
	require.NoError(t, err)
	require.Equal(t, sig1, sig2)

	pk3, err := sk2.PublicKey()
	require.NoError(t, err)
	require.True(t, pk.Equal(pk3))
	require.True(t, dilithium.Verify(pk3, msg, sig1))
}

func TestParseRejectsWrongLengths(t *testing.T) {
	_, err := dilithium.ParsePublicKey(make([]byte, dilithium.PublicKeySize-1))
	require.ErrorIs(t, err, dilithium.ErrPublicKeySize)
	_, err = dilithium.ParsePublicKey(make([]byte, dilithium.PublicKeySize+1))
	require.ErrorIs(t, err, dilithium.ErrPublicKeySize)

	_, err = dilithium.ParseSecretKey(make([]byte, dilithium.SecretKeySize-1))
	require.ErrorIs(t, err, dilithium.ErrSecretKeySize)

	_, err = dilithium.ParseSignature(make([]byte, dilithium.SignatureSize+7))
	require.ErrorIs(t, err, dilithium.ErrSignatureSize)
	_, err = dilithium.ParseSignature(nil)
	require.ErrorIs(t, err, dilithium.ErrSignatureSize)
}

func TestSignatureStructure(t *testing.T) {
	pk, sk, err := dilithium.KeyGen(seededSource(t, 0x26))
	require.NoError(t, err)
	raw, err := dilithium.Sign(sk, []byte("structural checks"))
	require.NoError(t, err)

	sig, err := dilithium.ParseSignature(raw)
	require.NoError(t, err)
	require.Equal(t, raw[:dilithium.CTildeSize], sig.CTilde[:])
	require.Less(t, sig.Z.InfNorm(), uint32(dilithium.Gamma1-dilithium.Beta))
	require.Equal(t, raw, sig.Bytes())

	require.True(t, dilithium.Verify(pk, []byte("structural checks"), sig.Bytes()))
}

func TestKeyGenSourceErrors(t *testing.T) {
	var unseeded drbg.AESDRBG
	_, _, err := dilithium.KeyGen(&unseeded)
	require.ErrorIs(t, err, drbg.ErrNotSeeded)

	src := seededSource(t, 0x27)
	src.SetReseedInterval(1)
	_, _, err = dilithium.KeyGen(src)
	require.NoError(t, err)
	_, _, err = dilithium.KeyGen(src)
	require.ErrorIs(t, err, drbg.ErrReseedRequired)
}

func TestReaderSourceReproducible(t *testing.T) {
	// Any io.Reader can drive key generation; a keyed PRNG makes the
	// whole pipeline reproducible from its key.
	key := []byte("fixed 32-byte prng key material!")
	prng1, err := utils.NewKeyedPRNG(key)
	require.NoError(t, err)
	prng2, err := utils.NewKeyedPRNG(key)
	require.NoError(t, err)

	pk1, sk1, err := dilithium.KeyGen(drbg.ReaderSource{R: prng1})
	require.NoError(t, err)
	pk2, sk2, err := dilithium.KeyGen(drbg.ReaderSource{R: prng2})
	require.NoError(t, err)

	require.Equal(t, pk1.Bytes(), pk2.Bytes())
	require.Equal(t, sk1.Bytes(), sk2.Bytes())
}
