// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vec defines the vector operations required by the gmres solver
// and provides serial and multi-goroutine implementations backed by
// []float64.
//
// The solver is written against the Vector interface so that callers with
// their own storage (strided, distributed, device-resident) can plug it in
// without copying. All methods write into the receiver, which keeps the
// solver allocation-free in its inner loop.
package vec

import "math"

// Vector is a fixed-length vector of float64 values.
//
// Methods that take operands write their result into the receiver. Unless
// stated otherwise the receiver may alias any operand of the same length.
// Implementations must panic when operand lengths do not match the
// receiver and when an operand comes from a different implementation.
type Vector interface {
	// Len returns the number of elements.
	Len() int

	// Clone returns a new zero vector with the same length and layout as
	// the receiver. The contents are not copied.
	Clone() Vector

	// Scale stores alpha*x into the receiver. Scale with alpha == 1 is a
	// copy.
	Scale(alpha float64, x Vector)

	// LinearSum stores a*x + b*y into the receiver.
	LinearSum(a float64, x Vector, b float64, y Vector)

	// Fill sets every element of the receiver to alpha.
	Fill(alpha float64)

	// Mul stores the element-wise product x*y into the receiver.
	Mul(x, y Vector)

	// Div stores the element-wise ratio x/y into the receiver. The caller
	// guarantees that every element of y is nonzero.
	Div(x, y Vector)

	// Dot returns the Euclidean inner product of the receiver with y.
	Dot(y Vector) float64
}

// MultiDotter is implemented by vectors that can compute several inner
// products in one pass. Backends that pay a fixed cost per reduction, for
// example one message round-trip per Dot, implement this to batch the
// reductions of classical Gram-Schmidt.
type MultiDotter interface {
	// MultiDot stores the inner product of the receiver with ys[i] into
	// dst[i] for every i.
	MultiDot(ys []Vector, dst []float64)
}

// LinearCombiner is implemented by vectors that can evaluate a linear
// combination of several vectors in one pass. The receiver may appear in
// xs only as xs[0].
type LinearCombiner interface {
	// LinearCombination stores c[0]*xs[0] + c[1]*xs[1] + ... into the
	// receiver.
	LinearCombination(c []float64, xs []Vector)
}

// MultiDot stores the inner products of x with each vector of ys into dst.
// It uses the MultiDotter fast path when x provides one and falls back to
// repeated Dot calls otherwise.
func MultiDot(x Vector, ys []Vector, dst []float64) {
	if len(ys) != len(dst) {
		panic("vec: dimension mismatch")
	}
	if m, ok := x.(MultiDotter); ok {
		m.MultiDot(ys, dst)
		return
	}
	for i, y := range ys {
		dst[i] = x.Dot(y)
	}
}

// LinearCombination stores c[0]*xs[0] + ... + c[len(c)-1]*xs[len(c)-1]
// into dst. dst may alias xs only as xs[0]. It uses the LinearCombiner
// fast path when dst provides one and falls back to a Scale followed by
// accumulating LinearSum calls otherwise.
func LinearCombination(dst Vector, c []float64, xs []Vector) {
	if len(c) == 0 || len(c) != len(xs) {
		panic("vec: dimension mismatch")
	}
	if lc, ok := dst.(LinearCombiner); ok {
		lc.LinearCombination(c, xs)
		return
	}
	dst.Scale(c[0], xs[0])
	for i := 1; i < len(xs); i++ {
		dst.LinearSum(1, dst, c[i], xs[i])
	}
}

// Norm returns the Euclidean norm of x.
func Norm(x Vector) float64 {
	return math.Sqrt(x.Dot(x))
}
