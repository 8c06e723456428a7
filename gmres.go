// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmres

import (
	"math"
	"time"

	"github.com/krylovkit/gmres/vec"
)

// Solver solves A x = b with restarted GMRES, preconditioned on the
// configured side and with optional diagonal scaling of the residual and
// solution spaces. With both preconditioners and both scalings active the
// Krylov iteration runs on the transformed operator
//
//	A~ = s1 P1⁻¹ A P2⁻¹ s2⁻¹
//
// and convergence is measured as |s1 P1⁻¹ (b - A x)| ≤ tol in the
// Euclidean norm.
//
// All workspace is allocated by New and reused by every Solve call, so a
// Solver is cheap to call repeatedly but must not be used from multiple
// goroutines at once. Distinct Solvers are independent.
type Solver struct {
	op          Operator
	prec        Preconditioner
	s1, s2      vec.Vector
	side        PrecSide
	gsType      GSType
	maxl        int
	maxRestarts int
	zeroGuess   bool
	monitor     Monitor

	v      []vec.Vector // Krylov basis, maxl+1 vectors.
	hes    [][]float64  // (maxl+1)×maxl upper Hessenberg matrix.
	givens []float64    // 2·maxl Givens rotation coefficients.
	yg     []float64    // Least-squares right-hand side, then solution.
	xcor   vec.Vector   // Correction accumulated across restart cycles.
	vtemp  vec.Vector   // Scratch vector for the apply pipeline.
	cv     []float64    // Coefficient scratch for fused operations.
	xv     []vec.Vector // Vector scratch for fused operations.

	stats  Stats
	status Status
}

// New returns a Solver that searches Krylov subspaces of dimension up to
// maxKrylov between restarts and expects a preconditioner on the given
// side. The template vector determines the problem size and the vector
// backend; all solver workspace is cloned from it here and Solve never
// allocates.
//
// A non-positive maxKrylov is replaced by DefaultMaxKrylov, an unknown
// side by PrecNone. A nil template panics.
func New(template vec.Vector, side PrecSide, maxKrylov int) *Solver {
	if template == nil {
		panic("gmres: nil template vector")
	}
	if maxKrylov <= 0 {
		maxKrylov = DefaultMaxKrylov
	}
	switch side {
	case PrecNone, PrecLeft, PrecRight, PrecBoth:
	default:
		side = PrecNone
	}

	s := &Solver{
		side:   side,
		gsType: ModifiedGS,
		maxl:   maxKrylov,
	}
	s.v = make([]vec.Vector, maxKrylov+1)
	for i := range s.v {
		s.v[i] = template.Clone()
	}
	s.hes = make([][]float64, maxKrylov+1)
	for i := range s.hes {
		s.hes[i] = make([]float64, maxKrylov)
	}
	s.givens = make([]float64, 2*maxKrylov)
	s.yg = make([]float64, maxKrylov+1)
	s.xcor = template.Clone()
	s.vtemp = template.Clone()
	s.cv = make([]float64, maxKrylov+1)
	s.xv = make([]vec.Vector, maxKrylov+1)
	s.stats.ResidualNorm = math.NaN()
	return s
}

// SetOperator sets the linear operator A. It must be called before Solve.
func (s *Solver) SetOperator(op Operator) { s.op = op }

// SetPreconditioner sets the preconditioner for the side configured in
// New. It must be set whenever preconditioning is enabled. If p
// implements PreconditionerSetup, Setup runs once per Solve call.
func (s *Solver) SetPreconditioner(p Preconditioner) { s.prec = p }

// SetScaling sets the diagonal scaling vectors. s1 weighs the residual
// space: convergence is measured in the norm |s1 P1⁻¹ (b - A x)|. s2
// weighs the solution space of the right-preconditioned system. Either
// may be nil, disabling scaling on that side. The vectors are not
// copied; the caller may update their entries between solves.
func (s *Solver) SetScaling(s1, s2 vec.Vector) {
	s.s1 = s1
	s.s2 = s2
}

// SetGSType selects the Gram-Schmidt variant used to orthogonalize the
// Krylov basis. Unknown values are replaced by ModifiedGS.
func (s *Solver) SetGSType(t GSType) {
	if t != ClassicalGS {
		t = ModifiedGS
	}
	s.gsType = t
}

// SetMaxRestarts sets the number of restart cycles allowed after the
// first Krylov cycle. Negative values are replaced by 0.
func (s *Solver) SetMaxRestarts(n int) {
	if n < 0 {
		n = 0
	}
	s.maxRestarts = n
}

// SetZeroGuess declares that the next Solve starts from x = 0. The
// solver then skips the initial operator application and overwrites x
// with the correction instead of adding to it. The flag is consumed by
// the next Solve call, whatever its outcome.
func (s *Solver) SetZeroGuess(zero bool) { s.zeroGuess = zero }

// SetMonitor sets the progress callback. A nil monitor disables it.
func (s *Solver) SetMonitor(m Monitor) { s.monitor = m }

// Stats returns statistics of the last Solve call.
func (s *Solver) Stats() Stats { return s.stats }

// Status reports how the last Solve call finished.
func (s *Solver) Status() Status { return s.status }

// Solve approximates the solution of A x = b so that the scaled
// preconditioned residual satisfies |s1 P1⁻¹ (b - A x)| ≤ tol. On entry x
// holds the initial guess, unless the zero-guess flag is set, in which
// case the contents of x are ignored. On a nil return x holds the
// solution. On ErrResidualReduced x holds the improved iterate. On any
// other error x is untouched.
//
// x and b must have the length and backend of the template vector given
// to New.
func (s *Solver) Solve(x, b vec.Vector, tol float64) error {
	start := time.Now()
	defer func() { s.stats.Runtime = time.Since(start) }()

	s.stats = Stats{ResidualNorm: math.NaN()}
	s.status = StatusNone

	preOnLeft := s.side == PrecLeft || s.side == PrecBoth
	preOnRight := s.side == PrecRight || s.side == PrecBoth

	if s.op == nil {
		return s.finish(StatusMisconfigured, ErrNoOperator)
	}
	if (preOnLeft || preOnRight) && s.prec == nil {
		return s.finish(StatusMisconfigured, ErrNoPreconditioner)
	}
	if ps, ok := s.prec.(PreconditionerSetup); ok && (preOnLeft || preOnRight) {
		if err := ps.Setup(); err != nil {
			return s.finish(precStatus(err), &PreconditionerError{Setup: true, Err: err})
		}
	}

	// Set v[0] to the initial unscaled residual r0 = b - A x0.
	if s.zeroGuess {
		s.vtemp.Scale(1, b)
	} else {
		if err := s.apply(s.vtemp, x); err != nil {
			return s.finish(opStatus(err), err)
		}
		s.vtemp.LinearSum(1, b, -1, s.vtemp)
	}
	s.v[0].Scale(1, s.vtemp)

	// Apply the left preconditioner and left scaling to v[0].
	if preOnLeft {
		if err := s.psolve(s.vtemp, s.v[0], tol, PrecLeft); err != nil {
			return s.finish(precStatus(err), err)
		}
	} else {
		s.vtemp.Scale(1, s.v[0])
	}
	if s.s1 != nil {
		s.v[0].Mul(s.s1, s.vtemp)
	} else {
		s.v[0].Scale(1, s.vtemp)
	}

	// beta is the norm of the scaled preconditioned residual. If it is
	// already within tolerance the guess stands.
	beta := vec.Norm(s.v[0])
	s.stats.ResidualNorm = beta
	if s.monitor != nil {
		s.monitor(0, beta)
	}
	if beta <= tol {
		if s.zeroGuess {
			x.Fill(0)
		}
		return s.finish(StatusConverged, nil)
	}

	rnorm := beta
	s.xcor.Fill(0)

	var (
		rho       float64
		krydim    int
		converged bool
	)
	for ntries := 0; ntries <= s.maxRestarts; ntries++ {
		// Reset the Hessenberg matrix and normalize the cycle's starting
		// vector. After a restart v[0] arrives unnormalized with norm
		// rnorm, computed below without an operator application.
		for i := range s.hes {
			for j := range s.hes[i] {
				s.hes[i][j] = 0
			}
		}
		rotationProduct := 1.0
		s.v[0].Scale(1/rnorm, s.v[0])

		// Inner loop: grow the Krylov subspace one direction at a time.
		for l := 0; l < s.maxl; l++ {
			s.stats.Iterations++
			krydim = l + 1

			// Generate A~ v[l], where A~ = s1 P1⁻¹ A P2⁻¹ s2⁻¹, leaving
			// the result in v[l+1].
			if s.s2 != nil {
				s.vtemp.Div(s.v[l], s.s2)
			} else {
				s.vtemp.Scale(1, s.v[l])
			}
			if preOnRight {
				s.v[l+1].Scale(1, s.vtemp)
				if err := s.psolve(s.vtemp, s.v[l+1], tol, PrecRight); err != nil {
					return s.finish(precStatus(err), err)
				}
			}
			if err := s.apply(s.v[l+1], s.vtemp); err != nil {
				return s.finish(opStatus(err), err)
			}
			if preOnLeft {
				if err := s.psolve(s.vtemp, s.v[l+1], tol, PrecLeft); err != nil {
					return s.finish(precStatus(err), err)
				}
			} else {
				s.vtemp.Scale(1, s.v[l+1])
			}
			if s.s1 != nil {
				s.v[l+1].Mul(s.s1, s.vtemp)
			} else {
				s.v[l+1].Scale(1, s.vtemp)
			}

			// Orthogonalize v[l+1] against the basis, writing column l of
			// the Hessenberg matrix, and fold the column into the running
			// QR factorization.
			switch s.gsType {
			case ClassicalGS:
				classicalGS(s.v, s.hes, l+1, s.maxl, s.cv, s.xv)
			default:
				modifiedGS(s.v, s.hes, l+1, s.maxl)
			}
			if err := qrAddColumn(s.hes, s.givens, l); err != nil {
				return s.finish(StatusQRFactFailure, err)
			}

			// The sines of the rotations compound into the residual
			// estimate, so convergence costs no extra reduction.
			rotationProduct *= s.givens[2*l+1]
			rho = math.Abs(rotationProduct * rnorm)
			s.stats.ResidualNorm = rho
			if s.monitor != nil {
				s.monitor(s.stats.Iterations, rho)
			}
			if rho <= tol {
				converged = true
				break
			}

			// Normalize v[l+1] with the remainder norm that Gram-Schmidt
			// left in the subdiagonal slot. On a convergence break that
			// norm may be zero (happy breakdown); this line is skipped.
			s.v[l+1].Scale(1/s.hes[l+1][l], s.v[l+1])
		}

		// Solve the least-squares system of this cycle and accumulate
		// the correction xcor += V y.
		s.yg[0] = rnorm
		for i := 1; i <= krydim; i++ {
			s.yg[i] = 0
		}
		if err := qrSolve(s.hes, s.givens, krydim, s.yg); err != nil {
			return s.finish(StatusQRSolveFailure, err)
		}
		s.cv[0] = 1
		s.xv[0] = s.xcor
		for k := 0; k < krydim; k++ {
			s.cv[k+1] = s.yg[k]
			s.xv[k+1] = s.v[k]
		}
		vec.LinearCombination(s.xcor, s.cv[:krydim+1], s.xv[:krydim+1])

		if converged {
			if err := s.finalize(x, tol); err != nil {
				return s.finish(precStatus(err), err)
			}
			if s.stats.Restarts > 0 {
				return s.finish(StatusConvergedRestarted, nil)
			}
			return s.finish(StatusConverged, nil)
		}

		if ntries == s.maxRestarts {
			break
		}
		s.stats.Restarts++

		// Restart: rebuild the residual of the current iterate from the
		// basis and the stored rotations alone. The last column of Q
		// scaled by the signed running norm gives its coordinates, so no
		// operator application is spent. v[0] is left unnormalized; the
		// top of the next cycle divides by the new rnorm.
		sProduct := 1.0
		for i := krydim; i > 0; i-- {
			s.yg[i] = sProduct * s.givens[2*i-2]
			sProduct *= s.givens[2*i-1]
		}
		s.yg[0] = sProduct

		rnorm *= sProduct
		for i := 0; i <= krydim; i++ {
			s.yg[i] *= rnorm
		}
		rnorm = math.Abs(rnorm)

		s.cv[0] = s.yg[0]
		s.xv[0] = s.v[0]
		for k := 1; k <= krydim; k++ {
			s.cv[k] = s.yg[k]
			s.xv[k] = s.v[k]
		}
		vec.LinearCombination(s.v[0], s.cv[:krydim+1], s.xv[:krydim+1])
	}

	// Out of restarts. If the estimate improved on beta, hand the
	// accumulated correction to the caller anyway.
	if rho < beta {
		if err := s.finalize(x, tol); err != nil {
			return s.finish(precStatus(err), err)
		}
		return s.finish(StatusResidualReduced, ErrResidualReduced)
	}
	return s.finish(StatusNotConverged, ErrNotConverged)
}

// finalize undoes the right scaling and right preconditioning of the
// accumulated correction and folds it into x.
func (s *Solver) finalize(x vec.Vector, tol float64) error {
	if s.s2 != nil {
		s.xcor.Div(s.xcor, s.s2)
	}
	if s.side == PrecRight || s.side == PrecBoth {
		if err := s.psolve(s.vtemp, s.xcor, tol, PrecRight); err != nil {
			return err
		}
	} else {
		s.vtemp.Scale(1, s.xcor)
	}
	if s.zeroGuess {
		x.Scale(1, s.vtemp)
	} else {
		x.LinearSum(1, x, 1, s.vtemp)
	}
	return nil
}

// apply computes dst = A·v, counting the operator call.
func (s *Solver) apply(dst, v vec.Vector) error {
	s.stats.MatVec++
	if err := s.op.Apply(dst, v); err != nil {
		return &OperatorError{Err: err}
	}
	return nil
}

// psolve applies one side of the preconditioner, counting the call.
func (s *Solver) psolve(dst, r vec.Vector, tol float64, side PrecSide) error {
	s.stats.PSolve++
	if err := s.prec.Solve(dst, r, tol, side); err != nil {
		return &PreconditionerError{Side: side, Err: err}
	}
	return nil
}

// finish records the terminal status, consumes the zero-guess flag and
// returns err.
func (s *Solver) finish(st Status, err error) error {
	s.zeroGuess = false
	s.status = st
	return err
}

func opStatus(err error) Status {
	if IsRecoverable(err) {
		return StatusOperatorFailureRecoverable
	}
	return StatusOperatorFailure
}

func precStatus(err error) Status {
	if IsRecoverable(err) {
		return StatusPrecondFailureRecoverable
	}
	return StatusPrecondFailure
}
