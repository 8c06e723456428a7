// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmres

import "github.com/krylovkit/gmres/vec"

// Operator is the linear operator A of the system A x = b. The solver
// accesses A through matrix-vector products only, so any representation
// works: assembled sparse storage, a stencil, a matrix-free
// approximation.
type Operator interface {
	// Apply stores A*v into dst. dst and v never alias. A nil return
	// means success. An error marked with Recoverable reports a
	// transient failure; any other error is final. In both cases the
	// solve stops at the first failure.
	Apply(dst, v vec.Vector) error
}

// OperatorFunc adapts a function to the Operator interface.
type OperatorFunc func(dst, v vec.Vector) error

// Apply calls f(dst, v).
func (f OperatorFunc) Apply(dst, v vec.Vector) error { return f(dst, v) }

// Preconditioner approximately inverts one side of a split
// preconditioner P1 A P2, chosen so that systems P1 z = r and P2 z = r
// are cheap to solve.
type Preconditioner interface {
	// Solve stores into dst an approximate solution of P z = r for the
	// preconditioner of the given side, PrecLeft or PrecRight. tol is
	// the tolerance of the enclosing solve, for preconditioners that
	// are themselves iterative. dst and r never alias. The error
	// convention is that of Operator.Apply.
	Solve(dst, r vec.Vector, tol float64, side PrecSide) error
}

// PreconditionerFunc adapts a function to the Preconditioner interface.
type PreconditionerFunc func(dst, r vec.Vector, tol float64, side PrecSide) error

// Solve calls f(dst, r, tol, side).
func (f PreconditionerFunc) Solve(dst, r vec.Vector, tol float64, side PrecSide) error {
	return f(dst, r, tol, side)
}

// PreconditionerSetup is implemented by preconditioners that prepare
// data before a solve, for example factor an approximation of the
// operator. When the configured Preconditioner implements it, Solve
// calls Setup exactly once per call, before the first Arnoldi step.
type PreconditionerSetup interface {
	Setup() error
}
