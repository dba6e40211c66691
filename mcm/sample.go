package mcm

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
)

// massTol bounds the accepted deviation of total probability mass from 1.0.
const massTol = 1e-9

// Sample draws n independent variates from the distribution using
// piecewise-uniform inverse-CDF sampling. Each draw selects a bin from the
// cumulative bin probabilities and a uniform offset within it.
//
// The distribution must carry full probability mass: a total short of 1.0
// beyond floating tolerance fails with ErrNoCoverage before any draw, rather
// than leaving part of the range unreachable. The output is deterministic
// for a fixed rng; a nil rng is seeded from the clock.
func (d *Distribution) Sample(n int, rng *rand.Rand) ([]float64, error) {
	cdf, w, err := d.cumulative()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: sample count must be non-negative, got %d", ErrInvalidInput, n)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	out := make([]float64, n)
	d.drawInto(out, cdf, w, rng)
	return out, nil
}

// SampleConcurrent draws n variates using up to workers goroutines. Each
// worker owns a source derived from seed and its chunk index and fills a
// disjoint range of the result, so the output is deterministic for a fixed
// (seed, workers) pair. With workers <= 1 it behaves like Sample with a
// source seeded from seed.
func (d *Distribution) SampleConcurrent(n, workers int, seed int64) ([]float64, error) {
	cdf, w, err := d.cumulative()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: sample count must be non-negative, got %d", ErrInvalidInput, n)
	}
	if n == 0 {
		return []float64{}, nil
	}

	out := make([]float64, n)
	if workers <= 1 {
		d.drawInto(out, cdf, w, rand.New(rand.NewSource(seed)))
		return out, nil
	}
	if workers > n {
		workers = n
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for c := 0; c*chunk < n; c++ {
		lo := c * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(c int, part []float64) {
			defer wg.Done()
			d.drawInto(part, cdf, w, rand.New(rand.NewSource(seed+int64(c))))
		}(c, out[lo:hi])
	}
	wg.Wait()
	return out, nil
}

// cumulative validates the distribution and returns its CDF and bin width.
func (d *Distribution) cumulative() ([]float64, float64, error) {
	n := len(d.BinProbs)
	if n == 0 || len(d.BinEdges) != n {
		return nil, 0, fmt.Errorf("%w: need matching non-empty bin edges and probabilities (%d edges, %d probabilities)",
			ErrInvalidInput, len(d.BinEdges), n)
	}

	w := d.BinWidth
	if w <= 0 && n > 1 {
		w = d.BinEdges[1] - d.BinEdges[0]
	}
	if !(w > 0) {
		return nil, 0, fmt.Errorf("%w: bin width must be positive", ErrInvalidInput)
	}
	// Within-bin offsets assume a single width, so edges must be uniformly
	// spaced.
	tol := massTol * math.Max(1, math.Abs(w))
	for k := 1; k < n; k++ {
		if math.Abs(d.BinEdges[k]-d.BinEdges[k-1]-w) > tol {
			return nil, 0, fmt.Errorf("%w: bin edges are not uniformly spaced at bin %d", ErrInvalidInput, k+1)
		}
	}
	for k, p := range d.BinProbs {
		if p < 0 || math.IsNaN(p) {
			return nil, 0, fmt.Errorf("%w: bin %d has invalid probability %g", ErrInvalidInput, k+1, p)
		}
	}

	cdf := make([]float64, n)
	floats.CumSum(cdf, d.BinProbs)

	mass := cdf[n-1]
	switch {
	case mass == 0:
		return nil, 0, fmt.Errorf("%w: distribution carries no probability mass", ErrNoCoverage)
	case mass < 1-massTol:
		return nil, 0, fmt.Errorf("%w: probability mass %g does not cover the sampling range", ErrNoCoverage, mass)
	case mass > 1+massTol:
		return nil, 0, fmt.Errorf("%w: probability mass %g exceeds 1", ErrInvalidInput, mass)
	}
	return cdf, w, nil
}

// drawInto fills out with inverse-CDF draws from rng.
func (d *Distribution) drawInto(out []float64, cdf []float64, w float64, rng *rand.Rand) {
	last := len(cdf) - 1
	for i := range out {
		v := rng.Float64()
		u := rng.Float64() * w

		// First bin whose cumulative probability covers v.
		j := sort.SearchFloat64s(cdf, v)
		if j > last {
			j = last // v fell in the sub-tolerance gap below 1.0
		}
		out[i] = d.BinEdges[j] + u
	}
}
