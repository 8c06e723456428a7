// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmres

import (
	"math"
	"math/rand"
	"testing"

	"github.com/krylovkit/gmres/vec"
)

type gsFunc func(v []vec.Vector, h [][]float64, k int) float64

// gsVariants exposes both orthogonalizations under the signature the
// tests drive, with the lookback and scratch sized for m directions.
func gsVariants(m int) map[string]gsFunc {
	return map[string]gsFunc{
		"modified": func(v []vec.Vector, h [][]float64, k int) float64 {
			return modifiedGS(v, h, k, m)
		},
		"classical": func(v []vec.Vector, h [][]float64, k int) float64 {
			stemp := make([]float64, m+1)
			vtemp := make([]vec.Vector, m+1)
			return classicalGS(v, h, k, m, stemp, vtemp)
		},
	}
}

func fillRandom(v vec.Vector, rnd *rand.Rand) {
	d := v.(*vec.Dense).RawSlice()
	for i := range d {
		d[i] = rnd.NormFloat64()
	}
}

// newBasis allocates m+1 basis slots and a matching Hessenberg matrix and
// fills v[0] with a random unit vector.
func newBasis(n, m int, rnd *rand.Rand) ([]vec.Vector, [][]float64) {
	v := make([]vec.Vector, m+1)
	h := make([][]float64, m+1)
	for i := range v {
		v[i] = vec.NewDense(n, nil)
		h[i] = make([]float64, m)
	}
	fillRandom(v[0], rnd)
	v[0].Scale(1/vec.Norm(v[0]), v[0])
	return v, h
}

func TestGramSchmidtOrthonormal(t *testing.T) {
	const n, m = 40, 8
	for name, gs := range gsVariants(m) {
		rnd := rand.New(rand.NewSource(7))
		v, h := newBasis(n, m, rnd)
		for k := 1; k <= m; k++ {
			fillRandom(v[k], rnd)
			norm := gs(v, h, k)
			if norm == 0 {
				t.Fatalf("%s: unexpected breakdown at k=%d", name, k)
			}
			v[k].Scale(1/norm, v[k])
		}
		for i := 0; i <= m; i++ {
			for j := 0; j <= i; j++ {
				got := v[i].Dot(v[j])
				want := 0.0
				if i == j {
					want = 1
				}
				if math.Abs(got-want) > 1e-12 {
					t.Errorf("%s: <v%d, v%d> = %v, want %v", name, i, j, got, want)
				}
			}
		}
	}
}

// TestGramSchmidtColumnContract checks that each Hessenberg column
// reproduces its original candidate: w = sum_i h[i][k-1] v[i] with the
// remainder norm in h[k][k-1].
func TestGramSchmidtColumnContract(t *testing.T) {
	const n, m = 30, 6
	for name, gs := range gsVariants(m) {
		rnd := rand.New(rand.NewSource(8))
		v, h := newBasis(n, m, rnd)
		orig := vec.NewDense(n, nil)
		recon := vec.NewDense(n, nil)
		for k := 1; k <= m; k++ {
			fillRandom(v[k], rnd)
			orig.Scale(1, v[k])
			norm := gs(v, h, k)
			if norm == 0 {
				t.Fatalf("%s: unexpected breakdown at k=%d", name, k)
			}
			v[k].Scale(1/norm, v[k])

			recon.Fill(0)
			for i := 0; i < k; i++ {
				recon.LinearSum(1, recon, h[i][k-1], v[i])
			}
			recon.LinearSum(1, recon, h[k][k-1], v[k])
			recon.LinearSum(1, recon, -1, orig)
			if resid := vec.Norm(recon); resid > 1e-12*vec.Norm(orig) {
				t.Errorf("%s: column %d does not reconstruct its candidate: residual %v", name, k-1, resid)
			}
		}
	}
}

// TestGramSchmidtBreakdown feeds a candidate that lies in the span of the
// basis. The returned remainder norm must vanish without producing NaNs;
// the caller recognizes the zero and never divides by it.
func TestGramSchmidtBreakdown(t *testing.T) {
	const n, m = 10, 4
	for name, gs := range gsVariants(m) {
		rnd := rand.New(rand.NewSource(9))
		v, h := newBasis(n, m, rnd)
		fillRandom(v[1], rnd)
		norm := gs(v, h, 1)
		v[1].Scale(1/norm, v[1])

		v[2].LinearSum(0.3, v[0], -2, v[1])
		norm = gs(v, h, 2)
		if math.IsNaN(norm) {
			t.Fatalf("%s: remainder norm is NaN", name)
		}
		if norm > 1e-12 {
			t.Errorf("%s: expected breakdown, got remainder norm %v", name, norm)
		}
		if h[2][1] != norm {
			t.Errorf("%s: h[2][1] = %v, want the returned norm %v", name, h[2][1], norm)
		}
	}
}

// TestClassicalGSReorthogonalizes drives classical Gram-Schmidt with a
// candidate nearly parallel to the basis, forcing the norm-drop test to
// fire. One extra pass must restore orthogonality to working precision.
func TestClassicalGSReorthogonalizes(t *testing.T) {
	const n, m = 25, 3
	rnd := rand.New(rand.NewSource(10))
	v, h := newBasis(n, m, rnd)
	stemp := make([]float64, m+1)
	vtemp := make([]vec.Vector, m+1)

	fillRandom(v[1], rnd)
	norm := classicalGS(v, h, 1, m, stemp, vtemp)
	v[1].Scale(1/norm, v[1])

	// v[2] = v[0] + 1e-10 * noise: the projection removes almost all of
	// it, so the remainder is dominated by cancellation error unless the
	// routine reorthogonalizes.
	fillRandom(v[2], rnd)
	v[2].LinearSum(1, v[0], 1e-10, v[2])
	preNorm := vec.Norm(v[2])
	norm = classicalGS(v, h, 2, m, stemp, vtemp)
	if norm >= invSqrt2*preNorm {
		t.Fatalf("test candidate did not trigger the norm-drop branch: %v >= %v", norm, invSqrt2*preNorm)
	}
	v[2].Scale(1/norm, v[2])

	for i := 0; i < 2; i++ {
		if got := math.Abs(v[2].Dot(v[i])); got > 1e-12 {
			t.Errorf("after reorthogonalization <v2, v%d> = %v", i, got)
		}
	}
}

// TestGramSchmidtVariantsAgree feeds the same candidate stream through
// both orthogonalizations and expects matching coefficients on
// well-conditioned input.
func TestGramSchmidtVariantsAgree(t *testing.T) {
	const n, m = 20, 5
	rndM := rand.New(rand.NewSource(11))
	rndC := rand.New(rand.NewSource(11))

	vm, hm := newBasis(n, m, rndM)
	vc, hc := newBasis(n, m, rndC)
	stemp := make([]float64, m+1)
	vtemp := make([]vec.Vector, m+1)

	for k := 1; k <= m; k++ {
		fillRandom(vm[k], rndM)
		fillRandom(vc[k], rndC)
		nm := modifiedGS(vm, hm, k, m)
		nc := classicalGS(vc, hc, k, m, stemp, vtemp)
		if math.Abs(nm-nc) > 1e-12*(1+nm) {
			t.Errorf("k=%d: remainder norms differ: modified %v, classical %v", k, nm, nc)
		}
		vm[k].Scale(1/nm, vm[k])
		vc[k].Scale(1/nc, vc[k])
		for i := 0; i < k; i++ {
			if math.Abs(hm[i][k-1]-hc[i][k-1]) > 1e-12*(1+math.Abs(hm[i][k-1])) {
				t.Errorf("h[%d][%d]: modified %v, classical %v", i, k-1, hm[i][k-1], hc[i][k-1])
			}
		}
	}
}
