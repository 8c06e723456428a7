// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmres_test

import (
	"fmt"

	"github.com/krylovkit/gmres"
	"github.com/krylovkit/gmres/vec"
)

func ExampleSolver() {
	// Solve the 1-D Poisson system
	//
	//	⎡ 2 -1       ⎤     ⎡0⎤
	//	⎢-1  2 -1    ⎥ x = ⎢0⎥
	//	⎢   -1  2 -1 ⎥     ⎢0⎥
	//	⎣      -1  2 ⎦     ⎣5⎦
	//
	// whose solution is (1, 2, 3, 4).
	op := gmres.OperatorFunc(func(dst, v vec.Vector) error {
		d := dst.(*vec.Dense).RawSlice()
		s := v.(*vec.Dense).RawSlice()
		for i := range d {
			d[i] = 2 * s[i]
			if i > 0 {
				d[i] -= s[i-1]
			}
			if i < len(s)-1 {
				d[i] -= s[i+1]
			}
		}
		return nil
	})

	solver := gmres.New(vec.NewDense(4, nil), gmres.PrecNone, 4)
	solver.SetOperator(op)
	solver.SetZeroGuess(true)

	x := vec.NewDense(4, nil)
	b := vec.NewDense(4, []float64{0, 0, 0, 5})
	if err := solver.Solve(x, b, 1e-10); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("# iterations: %v\n", solver.Stats().Iterations)
	fmt.Printf("Solution: %.2f\n", x.RawSlice())

	// Output:
	// # iterations: 4
	// Solution: [1.00 2.00 3.00 4.00]
}
