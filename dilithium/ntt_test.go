package dilithium

import (
	mrand "math/rand"
	"testing"
)

func randomPoly(r *mrand.Rand) Poly {
	var f Poly
	for i := range f {
		f[i] = uint32(r.Int63n(Q))
	}
	return f
}

func TestTransformConstants(t *testing.T) {
	// rootOfUnity must be a primitive 512th root: r^256 = -1 mod Q.
	if got := modPow(rootOfUnity, N); got != Q-1 {
		t.Fatalf("root^%d = %d want %d", N, got, Q-1)
	}
	if got := modPow(rootOfUnity, 2*N); got != 1 {
		t.Fatalf("root^%d = %d want 1", 2*N, got)
	}
	if got := mulMod(nInv, N); got != 1 {
		t.Fatalf("nInv*N = %d want 1", got)
	}
	if zetas[0] != 1 {
		t.Fatalf("zetas[0] = %d want 1", zetas[0])
	}
}

func TestNTTRoundTrip(t *testing.T) {
	r := mrand.New(mrand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		f := randomPoly(r)
		if got := f.NTT().InvNTT(); got != f {
			t.Fatalf("trial %d: InvNTT(NTT(f)) != f", trial)
		}
	}
	var zero Poly
	if got := zero.NTT().InvNTT(); got != zero {
		t.Fatal("round trip of zero polynomial failed")
	}
}

func TestMulMatchesSchoolbook(t *testing.T) {
	r := mrand.New(mrand.NewSource(2))
	for trial := 0; trial < 20; trial++ {
		f := randomPoly(r)
		g := randomPoly(r)
		fast := f.Mul(g)
		slow := mulSchoolbook(f, g)
		if fast != slow {
			t.Fatalf("trial %d: NTT product differs from schoolbook", trial)
		}
	}
}

func TestMulNegacyclicWrap(t *testing.T) {
	// X^(N-1) * X = X^N = -1.
	var f, g Poly
	f[N-1] = 1
	g[1] = 1
	got := f.Mul(g)
	var want Poly
	want[0] = Q - 1
	if got != want {
		t.Fatalf("X^255 * X: coefficient 0 = %d want %d", got[0], Q-1)
	}
}

func TestRingArithmetic(t *testing.T) {
	r := mrand.New(mrand.NewSource(3))
	f := randomPoly(r)
	g := randomPoly(r)

	if got := f.Sub(g).Add(g); got != f {
		t.Fatal("f - g + g != f")
	}
	if got := f.Add(f.Neg()); (got != Poly{}) {
		t.Fatal("f + (-f) != 0")
	}

	// Multiplication distributes over addition.
	h := randomPoly(r)
	left := f.Add(g).Mul(h)
	right := f.Mul(h).Add(g.Mul(h))
	if left != right {
		t.Fatal("(f+g)*h != f*h + g*h")
	}
}
