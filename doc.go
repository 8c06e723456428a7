// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gmres solves large linear systems A x = b with the scaled,
// preconditioned, restarted generalized minimal residual method,
// GMRES(m).
//
// The operator is accessed only through matrix-vector products and the
// preconditioner only through approximate solves, both supplied by the
// caller as interfaces. Vectors are abstract too (package vec), so the
// solver runs unchanged on serial, multi-goroutine or caller-provided
// storage.
//
// A Solver is configured once and reused across solves:
//
//	s := gmres.New(template, gmres.PrecLeft, 30)
//	s.SetOperator(a)
//	s.SetPreconditioner(p)
//	s.SetMaxRestarts(10)
//	err := s.Solve(x, b, 1e-8)
//
// Between restarts the solver grows a Krylov subspace of dimension up to
// maxKrylov and minimizes the residual over it through an incrementally
// QR-factored Hessenberg least-squares system. The sines of the QR
// rotations double as a running residual estimate, so the convergence
// test costs no extra reductions, and at a restart the residual vector
// of the current iterate is rebuilt from the basis and the rotations
// without spending an operator application.
package gmres
