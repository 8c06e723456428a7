// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vec

import "gonum.org/v1/gonum/floats"

// Dense is a serial Vector backed by a contiguous []float64.
type Dense struct {
	data []float64
}

// NewDense returns a new Dense vector of length n. If data is nil, a new
// zeroed slice is allocated, otherwise the vector wraps data, which must
// have length n.
func NewDense(n int, data []float64) *Dense {
	if n <= 0 {
		panic("vec: non-positive vector length")
	}
	if data == nil {
		data = make([]float64, n)
	}
	if len(data) != n {
		panic("vec: dimension mismatch")
	}
	return &Dense{data: data}
}

// RawSlice returns the slice backing v. Writes to it are visible to v.
func (v *Dense) RawSlice() []float64 { return v.data }

// Len returns the number of elements.
func (v *Dense) Len() int { return len(v.data) }

// Clone returns a new zero *Dense with the same length as v.
func (v *Dense) Clone() Vector {
	return &Dense{data: make([]float64, len(v.data))}
}

// Scale stores alpha*x into v.
func (v *Dense) Scale(alpha float64, x Vector) {
	xd := dense(x, len(v.data))
	if alpha == 1 {
		copy(v.data, xd)
		return
	}
	floats.ScaleTo(v.data, alpha, xd)
}

// LinearSum stores a*x + b*y into v.
func (v *Dense) LinearSum(a float64, x Vector, b float64, y Vector) {
	xd := dense(x, len(v.data))
	yd := dense(y, len(v.data))
	switch {
	case a == 1 && b == 1:
		floats.AddTo(v.data, xd, yd)
	case a == 1 && b == -1:
		floats.SubTo(v.data, xd, yd)
	case a == 1:
		floats.AddScaledTo(v.data, xd, b, yd)
	case b == 1:
		floats.AddScaledTo(v.data, yd, a, xd)
	default:
		for i, xv := range xd {
			v.data[i] = a*xv + b*yd[i]
		}
	}
}

// Fill sets every element of v to alpha.
func (v *Dense) Fill(alpha float64) {
	for i := range v.data {
		v.data[i] = alpha
	}
}

// Mul stores the element-wise product x*y into v.
func (v *Dense) Mul(x, y Vector) {
	floats.MulTo(v.data, dense(x, len(v.data)), dense(y, len(v.data)))
}

// Div stores the element-wise ratio x/y into v.
func (v *Dense) Div(x, y Vector) {
	floats.DivTo(v.data, dense(x, len(v.data)), dense(y, len(v.data)))
}

// Dot returns the Euclidean inner product of v with y.
func (v *Dense) Dot(y Vector) float64 {
	return floats.Dot(v.data, dense(y, len(v.data)))
}

// MultiDot implements MultiDotter.
func (v *Dense) MultiDot(ys []Vector, dst []float64) {
	if len(ys) != len(dst) {
		panic("vec: dimension mismatch")
	}
	for i, y := range ys {
		dst[i] = floats.Dot(v.data, dense(y, len(v.data)))
	}
}

// LinearCombination implements LinearCombiner.
func (v *Dense) LinearCombination(c []float64, xs []Vector) {
	if len(c) == 0 || len(c) != len(xs) {
		panic("vec: dimension mismatch")
	}
	v.Scale(c[0], xs[0])
	for i := 1; i < len(xs); i++ {
		floats.AddScaled(v.data, c[i], dense(xs[i], len(v.data)))
	}
}

// dense extracts the slice backing x, which must be a *Dense of length n.
func dense(x Vector, n int) []float64 {
	d, ok := x.(*Dense)
	if !ok {
		panic("vec: mixed vector implementations")
	}
	if len(d.data) != n {
		panic("vec: dimension mismatch")
	}
	return d.data
}
