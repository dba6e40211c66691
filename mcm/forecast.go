package mcm

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Distribution is a piecewise-uniform forecast distribution. BinProbs[k] is
// the probability that the forecast value falls in
// [BinEdges[k], BinEdges[k]+BinWidth); BinEdges holds lower edges only.
type Distribution struct {
	BinEdges []float64
	BinProbs []float64
	BinWidth float64
}

// Forecast derives the forecast distribution conditioned on observation,
// given a row-stochastic transition matrix p fitted over the data range
// [a, b].
//
// The observation is assigned to the bin with the largest lower edge not
// exceeding it, so an observation exactly on an edge belongs to the bin
// starting there. Observations outside [a, b] are rejected: the model has no
// fitted support beyond its data range.
func Forecast(p mat.Matrix, a, b, observation float64) (*Distribution, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil transition matrix", ErrInvalidInput)
	}
	r, c := p.Dims()
	if r != c || r < 1 {
		return nil, fmt.Errorf("%w: transition matrix must be square, got %dx%d", ErrInvalidInput, r, c)
	}
	if a >= b {
		return nil, fmt.Errorf("%w: range minimum %g must be below maximum %g", ErrInvalidInput, a, b)
	}
	if observation < a {
		return nil, fmt.Errorf("%w: observation %g below range minimum %g", ErrInvalidInput, observation, a)
	}
	if observation > b {
		return nil, fmt.Errorf("%w: observation %g above range maximum %g", ErrInvalidInput, observation, b)
	}

	n := r
	w := (b - a) / float64(n)
	edges := make([]float64, n)
	for k := range edges {
		edges[k] = a + float64(k)*w
	}

	// Largest edge not exceeding the observation.
	bin := 0
	for k := n - 1; k >= 0; k-- {
		if edges[k] <= observation {
			bin = k
			break
		}
	}

	probs := mat.Row(nil, bin, p)
	if floats.Sum(probs) == 0 {
		return nil, fmt.Errorf("%w: no transitions observed from bin %d", ErrNoCoverage, bin+1)
	}

	return &Distribution{BinEdges: edges, BinProbs: probs, BinWidth: w}, nil
}

// Forecast derives the forecast distribution conditioned on observation for
// a fitted model.
func (m *Model) Forecast(observation float64) (*Distribution, error) {
	if !m.fitted {
		return nil, errors.New("mcm: model must be fitted before forecasting")
	}
	return Forecast(m.p, m.min, m.max, observation)
}

// NumBins returns the number of bins in the distribution.
func (d *Distribution) NumBins() int {
	return len(d.BinProbs)
}

// Mass returns the total probability carried by the distribution.
func (d *Distribution) Mass() float64 {
	return floats.Sum(d.BinProbs)
}

// Mean returns the expected value of the distribution, with each bin's mass
// centered at its midpoint. It returns NaN for a distribution with no mass.
func (d *Distribution) Mean() float64 {
	mass := d.Mass()
	if mass == 0 {
		return math.NaN()
	}
	var sum float64
	for k, p := range d.BinProbs {
		sum += p * (d.BinEdges[k] + d.BinWidth/2)
	}
	return sum / mass
}
