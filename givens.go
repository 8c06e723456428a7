// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmres

import "math"

// makeGivens returns the cosine and sine of the Givens rotation that
// annihilates b:
//
//	[ c  -s ] [ a ]   [ r ]
//	[ s   c ] [ b ] = [ 0 ] ,  |r| = sqrt(a² + b²).
//
// For b == 0 it returns the identity rotation (1, 0), so the zero
// remainder of a happy breakdown passes through unchanged. The branch on
// |b| >= |a| avoids overflow in the intermediate ratio.
func makeGivens(a, b float64) (c, s float64) {
	switch {
	case b == 0:
		return 1, 0
	case math.Abs(b) >= math.Abs(a):
		t := a / b
		s = -1 / math.Sqrt(1+t*t)
		return -t * s, s
	default:
		t := b / a
		c = 1 / math.Sqrt(1+t*t)
		return c, -t * c
	}
}

// qrAddColumn updates the QR factorization of the leading (k+2)×(k+1)
// block of the Hessenberg matrix h after column k has been filled in. It
// applies the k stored rotations to the new column, computes the rotation
// annihilating the subdiagonal entry, stores it as the pair
// (givens[2k], givens[2k+1]) and writes the rotated diagonal entry into
// h[k][k]. The subdiagonal slot h[k+1][k] is not written: the new
// rotation is known to zero it, and the caller still needs the basis norm
// kept there.
//
// qrAddColumn returns ErrQRFact if the new diagonal entry is exactly
// zero, making the triangular factor singular.
func qrAddColumn(h [][]float64, givens []float64, k int) error {
	for j := 0; j < k; j++ {
		c, s := givens[2*j], givens[2*j+1]
		h[j][k], h[j+1][k] = c*h[j][k]-s*h[j+1][k], s*h[j][k]+c*h[j+1][k]
	}
	c, s := makeGivens(h[k][k], h[k+1][k])
	givens[2*k], givens[2*k+1] = c, s
	h[k][k] = c*h[k][k] - s*h[k+1][k]
	if h[k][k] == 0 {
		return ErrQRFact
	}
	return nil
}

// qrSolve solves the least-squares problem min |H y - b| over the leading
// (n+1)×n block of the Hessenberg matrix h whose QR factorization was
// built by successive qrAddColumn calls. It applies the n stored
// rotations to b and back-substitutes the triangular factor, leaving y in
// b[:n].
//
// qrSolve returns ErrQRSolve if a diagonal entry is exactly zero.
func qrSolve(h [][]float64, givens []float64, n int, b []float64) error {
	for j := 0; j < n; j++ {
		c, s := givens[2*j], givens[2*j+1]
		b[j], b[j+1] = c*b[j]-s*b[j+1], s*b[j]+c*b[j+1]
	}
	for k := n - 1; k >= 0; k-- {
		if h[k][k] == 0 {
			return ErrQRSolve
		}
		b[k] /= h[k][k]
		for i := 0; i < k; i++ {
			b[i] -= b[k] * h[i][k]
		}
	}
	return nil
}
