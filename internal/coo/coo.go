// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coo provides a coordinate-format sparse matrix, just capable
// enough to define operators and Jacobi preconditioners for tests and
// demos.
package coo

import "github.com/krylovkit/gmres/vec"

type entry struct {
	i, j int
	v    float64
}

// Matrix is a sparse matrix assembled as a list of (row, column, value)
// entries. Duplicate entries accumulate when the matrix is applied, so
// stencil-style assembly needs no merging pass.
type Matrix struct {
	r, c int
	data []entry
}

// New returns an empty r×c Matrix.
func New(r, c int) *Matrix {
	if r <= 0 || c <= 0 {
		panic("coo: non-positive dimension")
	}
	return &Matrix{r: r, c: c}
}

// Dims returns the dimensions of the matrix.
func (m *Matrix) Dims() (r, c int) {
	return m.r, m.c
}

// NNZ returns the number of stored entries.
func (m *Matrix) NNZ() int {
	return len(m.data)
}

// Add appends the entry (i, j, v).
func (m *Matrix) Add(i, j int, v float64) {
	if i < 0 || m.r <= i {
		panic("coo: row index out of range")
	}
	if j < 0 || m.c <= j {
		panic("coo: column index out of range")
	}
	m.data = append(m.data, entry{i, j, v})
}

// MulVec stores m*x into dst.
func (m *Matrix) MulVec(dst, x []float64) {
	if m.c != len(x) || m.r != len(dst) {
		panic("coo: dimension mismatch")
	}
	for i := range dst {
		dst[i] = 0
	}
	for _, e := range m.data {
		dst[e.i] += e.v * x[e.j]
	}
}

// Diagonal stores the main diagonal of m into dst. Off-diagonal entries
// are ignored; duplicate diagonal entries accumulate.
func (m *Matrix) Diagonal(dst []float64) {
	if len(dst) != min(m.r, m.c) {
		panic("coo: dimension mismatch")
	}
	for i := range dst {
		dst[i] = 0
	}
	for _, e := range m.data {
		if e.i == e.j && e.i < len(dst) {
			dst[e.i] += e.v
		}
	}
}

// Apply implements the solver's operator contract for *vec.Dense
// vectors.
func (m *Matrix) Apply(dst, v vec.Vector) error {
	m.MulVec(dst.(*vec.Dense).RawSlice(), v.(*vec.Dense).RawSlice())
	return nil
}
