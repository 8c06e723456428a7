// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmres

import "time"

// DefaultMaxKrylov is the Krylov subspace dimension used when New is
// given a non-positive one.
const DefaultMaxKrylov = 5

// PrecSide determines on which side of the operator the preconditioner
// is applied.
type PrecSide int

const (
	// PrecNone disables preconditioning.
	PrecNone PrecSide = iota
	// PrecLeft applies the preconditioner to the left of the operator.
	PrecLeft
	// PrecRight applies the preconditioner to the right of the operator.
	PrecRight
	// PrecBoth applies the preconditioner on both sides.
	PrecBoth
)

// String returns a human-readable name of the side.
func (p PrecSide) String() string {
	switch p {
	case PrecNone:
		return "none"
	case PrecLeft:
		return "left"
	case PrecRight:
		return "right"
	case PrecBoth:
		return "both"
	default:
		return "unknown"
	}
}

// GSType selects the orthogonalization used to build the Krylov basis.
type GSType int

const (
	// ModifiedGS projects the candidate vector against the basis one
	// vector at a time. It is the numerically more robust choice and the
	// default.
	ModifiedGS GSType = iota
	// ClassicalGS computes all projection coefficients in one batched
	// pass with a reorthogonalization pass when cancellation is
	// detected. It needs fewer reductions per step, which matters for
	// vector backends with expensive Dot.
	ClassicalGS
)

// String returns a human-readable name of the orthogonalization.
func (t GSType) String() string {
	switch t {
	case ModifiedGS:
		return "modified"
	case ClassicalGS:
		return "classical"
	default:
		return "unknown"
	}
}

// Status reports how the last call to Solver.Solve finished. It remains
// available on the solver until the next call.
type Status int

const (
	// StatusNone means Solve has not been called yet.
	StatusNone Status = iota
	// StatusConverged means the scaled preconditioned residual met the
	// tolerance within the first Krylov cycle.
	StatusConverged
	// StatusConvergedRestarted means the tolerance was met after at
	// least one restart.
	StatusConvergedRestarted
	// StatusResidualReduced means the tolerance was not met but the
	// final residual estimate is strictly smaller than the initial one;
	// the solution update has been applied.
	StatusResidualReduced
	// StatusNotConverged means no progress was made within the restart
	// budget; the solution is untouched.
	StatusNotConverged
	// StatusOperatorFailure means the operator callback failed with an
	// unrecoverable error.
	StatusOperatorFailure
	// StatusOperatorFailureRecoverable means the operator callback
	// failed with an error marked Recoverable; the caller may rebuild
	// its data and try again.
	StatusOperatorFailureRecoverable
	// StatusPrecondFailure means the preconditioner setup or solve
	// failed with an unrecoverable error.
	StatusPrecondFailure
	// StatusPrecondFailureRecoverable means the preconditioner setup or
	// solve failed with an error marked Recoverable.
	StatusPrecondFailureRecoverable
	// StatusQRFactFailure means a Givens update of the Hessenberg
	// matrix produced an exactly singular factor.
	StatusQRFactFailure
	// StatusQRSolveFailure means the least-squares back-substitution
	// hit a zero diagonal.
	StatusQRSolveFailure
	// StatusMisconfigured means a required callback was not set.
	StatusMisconfigured
)

// String returns a human-readable name of the status.
func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusConverged:
		return "converged"
	case StatusConvergedRestarted:
		return "converged after restart"
	case StatusResidualReduced:
		return "residual reduced"
	case StatusNotConverged:
		return "not converged"
	case StatusOperatorFailure:
		return "operator failure"
	case StatusOperatorFailureRecoverable:
		return "recoverable operator failure"
	case StatusPrecondFailure:
		return "preconditioner failure"
	case StatusPrecondFailureRecoverable:
		return "recoverable preconditioner failure"
	case StatusQRFactFailure:
		return "QR factorization failure"
	case StatusQRSolveFailure:
		return "QR solve failure"
	case StatusMisconfigured:
		return "misconfigured"
	default:
		return "unknown"
	}
}

// Stats holds statistics about a Solve call.
type Stats struct {
	// Iterations is the number of Arnoldi steps taken, summed over all
	// restart cycles.
	Iterations int
	// Restarts is the number of restart cycles entered after the first.
	Restarts int
	// MatVec is the number of operator applications.
	MatVec int
	// PSolve is the number of preconditioner solves.
	PSolve int
	// ResidualNorm is the last estimate of the scaled preconditioned
	// residual norm. It is NaN if no estimate was computed.
	ResidualNorm float64
	// Runtime is the duration of the Solve call.
	Runtime time.Duration
}

// Monitor observes the progress of a Solve call. It is called once with
// the initial residual norm at iteration 0 and then after every Arnoldi
// step with the running residual estimate. The callback must not modify
// solver state.
type Monitor func(iteration int, residualNorm float64)
