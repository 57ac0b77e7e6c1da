package dilithium

import (
	mrand "math/rand"
	"testing"

	"github.com/tuneinsight/lattigo/v4/ring"
)

// TestMulMatchesLattigo multiplies random ring elements with an
// independent implementation of Z_q[X]/(X^256+1) and compares products
// coefficient by coefficient.
func TestMulMatchesLattigo(t *testing.T) {
	rq, err := ring.NewRing(N, []uint64{Q})
	if err != nil {
		t.Fatalf("lattigo ring: %v", err)
	}

	r := mrand.New(mrand.NewSource(40))
	for trial := 0; trial < 10; trial++ {
		f := randomPoly(r)
		g := randomPoly(r)

		pf, pg, ph := rq.NewPoly(), rq.NewPoly(), rq.NewPoly()
		for i := 0; i < N; i++ {
			pf.Coeffs[0][i] = uint64(f[i])
			pg.Coeffs[0][i] = uint64(g[i])
		}
		rq.NTT(pf, pf)
		rq.NTT(pg, pg)
		rq.MForm(pf, pf)
		rq.MulCoeffsMontgomery(pf, pg, ph)
		rq.InvNTT(ph, ph)

		got := f.Mul(g)
		for i := 0; i < N; i++ {
			if uint64(got[i]) != ph.Coeffs[0][i] {
				t.Fatalf("trial %d: coefficient %d: got %d, reference %d", trial, i, got[i], ph.Coeffs[0][i])
			}
		}
	}
}
