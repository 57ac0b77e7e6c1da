package bench

import (
	"testing"

	"Dilithium-Signature/dilithium"
	"Dilithium-Signature/drbg"
)

func benchRNG(b *testing.B) *drbg.AESDRBG {
	b.Helper()
	var entropy [drbg.SeedSize]byte
	for i := range entropy {
		entropy[i] = byte(i)
	}
	return drbg.NewAESDRBG(entropy, [drbg.NonceSize]byte{})
}

func randPolyForBench(b *testing.B, rng *drbg.AESDRBG) dilithium.Poly {
	b.Helper()
	var f dilithium.Poly
	raw, err := rng.NextBytes(3 * dilithium.N)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < dilithium.N; i++ {
		v := uint32(raw[3*i]) | uint32(raw[3*i+1])<<8 | uint32(raw[3*i+2])<<16
		f[i] = v % dilithium.Q
	}
	return f
}

func BenchmarkNTT(b *testing.B) {
	f := randPolyForBench(b, benchRNG(b))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.NTT()
	}
}

func BenchmarkInvNTT(b *testing.B) {
	fHat := randPolyForBench(b, benchRNG(b)).NTT()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = fHat.InvNTT()
	}
}

func BenchmarkPolyMul(b *testing.B) {
	rng := benchRNG(b)
	f := randPolyForBench(b, rng)
	g := randPolyForBench(b, rng)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Mul(g)
	}
}

func BenchmarkExpandA(b *testing.B) {
	rho, err := benchRNG(b).NextBytes(dilithium.SeedSize)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = dilithium.ExpandA(rho)
	}
}
