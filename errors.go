// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmres

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Solver.Solve. Failures of user callbacks
// are returned as *OperatorError or *PreconditionerError instead.
var (
	// ErrNotConverged means the restart budget is exhausted and the
	// residual estimate is no smaller than the initial one. The solution
	// vector is untouched.
	ErrNotConverged = errors.New("gmres: convergence not reached and residual not reduced")
	// ErrResidualReduced means the restart budget is exhausted but the
	// residual estimate did shrink. The improved iterate has been
	// written to the solution vector.
	ErrResidualReduced = errors.New("gmres: convergence not reached, residual reduced")
	// ErrQRFact means a Givens update of the Hessenberg matrix produced
	// an exactly zero diagonal entry.
	ErrQRFact = errors.New("gmres: singular Givens update of the Hessenberg matrix")
	// ErrQRSolve means the triangular least-squares solve hit an exactly
	// zero diagonal entry.
	ErrQRSolve = errors.New("gmres: singular triangular least-squares system")
	// ErrNoOperator means Solve was called before SetOperator.
	ErrNoOperator = errors.New("gmres: operator not set")
	// ErrNoPreconditioner means preconditioning is enabled but no
	// preconditioner was set.
	ErrNoPreconditioner = errors.New("gmres: preconditioning requested but preconditioner not set")
)

// OperatorError wraps an error returned by an Operator.
type OperatorError struct {
	Err error
}

func (e *OperatorError) Error() string {
	return fmt.Sprintf("gmres: operator apply: %v", e.Err)
}

// Unwrap returns the error returned by the operator.
func (e *OperatorError) Unwrap() error { return e.Err }

// PreconditionerError wraps an error returned by a Preconditioner.
type PreconditionerError struct {
	// Setup reports whether the error came from the setup hook rather
	// than from a solve.
	Setup bool
	// Side is the preconditioning side being applied when a solve
	// failed. It is meaningless when Setup is true.
	Side PrecSide
	Err  error
}

func (e *PreconditionerError) Error() string {
	if e.Setup {
		return fmt.Sprintf("gmres: preconditioner setup: %v", e.Err)
	}
	return fmt.Sprintf("gmres: preconditioner solve (%v): %v", e.Side, e.Err)
}

// Unwrap returns the error returned by the preconditioner.
func (e *PreconditionerError) Unwrap() error { return e.Err }

type recoverableError struct {
	err error
}

func (e recoverableError) Error() string { return e.err.Error() }

func (e recoverableError) Unwrap() error { return e.err }

// Recoverable marks err as recoverable: the failure is transient and the
// caller of Solve may rebuild its data and retry. Operator and
// Preconditioner implementations return Recoverable(err) to distinguish
// such failures from hard ones. Recoverable(nil) returns nil.
func Recoverable(err error) error {
	if err == nil {
		return nil
	}
	return recoverableError{err: err}
}

// IsRecoverable reports whether any error in err's chain was marked with
// Recoverable.
func IsRecoverable(err error) bool {
	var re recoverableError
	return errors.As(err, &re)
}
