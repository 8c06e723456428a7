// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmres

import (
	"math"

	"github.com/krylovkit/gmres/vec"
)

// gsFactor decides when a modified Gram-Schmidt pass has cancelled so
// much of the candidate vector that reorthogonalization is warranted: the
// post-projection norm must still be visible next to gsFactor times the
// pre-projection norm in floating point.
const gsFactor = 1000.0

// invSqrt2 is the norm-drop threshold of the classical Gram-Schmidt
// reorthogonalization test.
const invSqrt2 = 1 / math.Sqrt2

// modifiedGS orthogonalizes v[k] in place against the previous p basis
// vectors v[max(k-p,0)..k-1] with modified Gram-Schmidt. The projection
// coefficients are stored into Hessenberg column k-1, the Euclidean norm
// of the remainder is stored into h[k][k-1] and returned. A returned zero
// is not an error; it reports that v[k] was linearly dependent on the
// basis.
//
// If the projection cancels the candidate almost completely, a second
// pass reorthogonalizes the remainder, skipping coefficients whose
// correction would be absorbed by rounding, and folds the corrections
// into the same column.
func modifiedGS(v []vec.Vector, h [][]float64, k, p int) float64 {
	i0 := max(k-p, 0)

	vkNorm := vec.Norm(v[k])

	for i := i0; i < k; i++ {
		hik := v[i].Dot(v[k])
		h[i][k-1] = hik
		v[k].LinearSum(1, v[k], -hik, v[i])
	}
	newNorm := vec.Norm(v[k])

	if temp := gsFactor * vkNorm; temp+newNorm != temp {
		h[k][k-1] = newNorm
		return newNorm
	}

	var corr2 float64
	for i := i0; i < k; i++ {
		hik := v[i].Dot(v[k])
		if temp := gsFactor * h[i][k-1]; temp+hik == temp {
			continue
		}
		corr2 += hik * hik
		h[i][k-1] += hik
		v[k].LinearSum(1, v[k], -hik, v[i])
	}
	if corr2 > 0 {
		// The corrections were orthogonal to the remainder, so the new
		// norm follows from Pythagoras instead of another reduction.
		if d := newNorm*newNorm - corr2; d > 0 {
			newNorm = math.Sqrt(d)
		} else {
			newNorm = 0
		}
	}

	h[k][k-1] = newNorm
	return newNorm
}

// classicalGS orthogonalizes v[k] in place against the previous p basis
// vectors with classical Gram-Schmidt: the projection coefficients and
// the pre-projection norm come from one batched inner-product pass, and
// the subtraction is a single fused linear combination. stemp and vtemp
// are caller-owned scratch of length at least k-max(k-p,0)+1. The column
// contract and return value are those of modifiedGS.
//
// If the remainder norm drops below 1/√2 of the pre-projection norm, the
// whole projection is repeated once and folded into the same column.
func classicalGS(v []vec.Vector, h [][]float64, k, p int, stemp []float64, vtemp []vec.Vector) float64 {
	i0 := max(k-p, 0)
	n := k - i0

	// stemp[0..n-1] = <v[k], v[i0..k-1]>, stemp[n] = <v[k], v[k]>.
	vec.MultiDot(v[k], v[i0:k+1], stemp[:n+1])

	vkNorm := math.Sqrt(stemp[n])
	for i := n - 1; i >= 0; i-- {
		h[i0+i][k-1] = stemp[i]
		stemp[i+1] = -stemp[i]
		vtemp[i+1] = v[i0+i]
	}
	stemp[0] = 1
	vtemp[0] = v[k]
	vec.LinearCombination(v[k], stemp[:n+1], vtemp[:n+1])

	newNorm := vec.Norm(v[k])

	if newNorm < invSqrt2*vkNorm {
		vec.MultiDot(v[k], v[i0:k], stemp[1:n+1])
		stemp[0] = 1
		vtemp[0] = v[k]
		for i := i0; i < k; i++ {
			h[i][k-1] += stemp[i-i0+1]
			stemp[i-i0+1] = -stemp[i-i0+1]
			vtemp[i-i0+1] = v[i]
		}
		vec.LinearCombination(v[k], stemp[:n+1], vtemp[:n+1])
		newNorm = vec.Norm(v[k])
	}

	h[k][k-1] = newNorm
	return newNorm
}
