// Copyright ©2026 The krylovkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vec

import (
	"runtime"
	"sync"
)

// Chunked is a Vector backed by a contiguous []float64 whose operations
// run over contiguous element ranges in parallel goroutines. The fan-out
// cost is paid on every operation, so Chunked pays off only for vectors
// large enough that the arithmetic dominates, roughly 10^5 elements and
// up. For anything smaller use Dense.
type Chunked struct {
	data    []float64
	chunks  int
	partial []float64 // per-chunk reduction scratch
}

// NewChunked returns a new zero Chunked vector of length n split into the
// given number of chunks. If chunks is not positive, runtime.GOMAXPROCS(0)
// is used. The chunk count is capped at n.
func NewChunked(n, chunks int) *Chunked {
	if n <= 0 {
		panic("vec: non-positive vector length")
	}
	if chunks <= 0 {
		chunks = runtime.GOMAXPROCS(0)
	}
	if chunks > n {
		chunks = n
	}
	return &Chunked{
		data:    make([]float64, n),
		chunks:  chunks,
		partial: make([]float64, chunks),
	}
}

// RawSlice returns the slice backing v. Writes to it are visible to v.
func (v *Chunked) RawSlice() []float64 { return v.data }

// Len returns the number of elements.
func (v *Chunked) Len() int { return len(v.data) }

// Clone returns a new zero *Chunked with the same length and chunk count
// as v.
func (v *Chunked) Clone() Vector {
	return &Chunked{
		data:    make([]float64, len(v.data)),
		chunks:  v.chunks,
		partial: make([]float64, v.chunks),
	}
}

// parallel runs fn over v.chunks contiguous index ranges that cover
// [0, len(v.data)) and waits for all of them to finish.
func (v *Chunked) parallel(fn func(chunk, start, end int)) {
	n := len(v.data)
	stride := (n + v.chunks - 1) / v.chunks
	var wg sync.WaitGroup
	for c := 0; c*stride < n; c++ {
		c := c
		start := c * stride
		end := min(start+stride, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(c, start, end)
		}()
	}
	wg.Wait()
}

// Scale stores alpha*x into v.
func (v *Chunked) Scale(alpha float64, x Vector) {
	xd := chunked(x, len(v.data))
	if alpha == 1 {
		v.parallel(func(_, start, end int) {
			copy(v.data[start:end], xd[start:end])
		})
		return
	}
	v.parallel(func(_, start, end int) {
		for i := start; i < end; i++ {
			v.data[i] = alpha * xd[i]
		}
	})
}

// LinearSum stores a*x + b*y into v.
func (v *Chunked) LinearSum(a float64, x Vector, b float64, y Vector) {
	xd := chunked(x, len(v.data))
	yd := chunked(y, len(v.data))
	v.parallel(func(_, start, end int) {
		for i := start; i < end; i++ {
			v.data[i] = a*xd[i] + b*yd[i]
		}
	})
}

// Fill sets every element of v to alpha.
func (v *Chunked) Fill(alpha float64) {
	v.parallel(func(_, start, end int) {
		for i := start; i < end; i++ {
			v.data[i] = alpha
		}
	})
}

// Mul stores the element-wise product x*y into v.
func (v *Chunked) Mul(x, y Vector) {
	xd := chunked(x, len(v.data))
	yd := chunked(y, len(v.data))
	v.parallel(func(_, start, end int) {
		for i := start; i < end; i++ {
			v.data[i] = xd[i] * yd[i]
		}
	})
}

// Div stores the element-wise ratio x/y into v.
func (v *Chunked) Div(x, y Vector) {
	xd := chunked(x, len(v.data))
	yd := chunked(y, len(v.data))
	v.parallel(func(_, start, end int) {
		for i := start; i < end; i++ {
			v.data[i] = xd[i] / yd[i]
		}
	})
}

// Dot returns the Euclidean inner product of v with y. Per-chunk partial
// sums are reduced in index order, so the result is deterministic for a
// fixed chunk count.
func (v *Chunked) Dot(y Vector) float64 {
	yd := chunked(y, len(v.data))
	v.parallel(func(chunk, start, end int) {
		var s float64
		for i := start; i < end; i++ {
			s += v.data[i] * yd[i]
		}
		v.partial[chunk] = s
	})
	var sum float64
	for _, s := range v.partial {
		sum += s
	}
	return sum
}

// chunked extracts the slice backing x, which must be a *Chunked of
// length n.
func chunked(x Vector, n int) []float64 {
	c, ok := x.(*Chunked)
	if !ok {
		panic("vec: mixed vector implementations")
	}
	if len(c.data) != n {
		panic("vec: dimension mismatch")
	}
	return c.data
}
