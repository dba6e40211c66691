package mcm

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/gomcm/timeseries"
)

// Model represents a Markov-chain Mixture model.
type Model struct {
	NumBins    int // number of discretization bins (chain states)
	StepsAhead int // forecast horizon; the transition matrix power

	p        *mat.Dense
	min      float64
	max      float64
	binWidth float64
	fitted   bool
}

// New creates a model with numBins states forecasting stepsAhead steps into
// the future.
func New(numBins, stepsAhead int) *Model {
	return &Model{NumBins: numBins, StepsAhead: stepsAhead}
}

// Fit estimates the transition matrix from the given time series.
//
// The series range [min, max] is split into NumBins equal-width bins, each
// observation is assigned to its bin (the maximum lands in the last bin),
// and consecutive bin pairs are counted into an empirical transition matrix.
// Rows are normalized to sum to 1; rows with no observed outgoing
// transitions stay all-zero. The normalized matrix is raised to StepsAhead
// by matrix self-multiplication.
func (m *Model) Fit(series *timeseries.Series) error {
	if m.NumBins < 1 {
		return fmt.Errorf("%w: number of bins must be positive, got %d", ErrInvalidInput, m.NumBins)
	}
	if m.StepsAhead < 1 {
		return fmt.Errorf("%w: steps ahead must be positive, got %d", ErrInvalidInput, m.StepsAhead)
	}
	if series == nil || series.Len() < 2 {
		return fmt.Errorf("%w: series needs at least 2 observations", ErrInvalidInput)
	}

	a, b := series.Min(), series.Max()
	if a == b {
		return fmt.Errorf("%w: series range is degenerate (min == max == %g)", ErrInvalidInput, a)
	}

	n := m.NumBins
	w := (b - a) / float64(n)
	states := binIndices(series.Values, a, w, n)

	counts := mat.NewDense(n, n, nil)
	for i := 1; i < len(states); i++ {
		r, c := states[i-1], states[i]
		counts.Set(r, c, counts.At(r, c)+1)
	}

	// Row-normalize; rows with no outgoing transitions stay all-zero.
	for r := 0; r < n; r++ {
		row := counts.RawRowView(r)
		if sum := floats.Sum(row); sum > 0 {
			floats.Scale(1/sum, row)
		}
	}

	p := counts
	if m.StepsAhead > 1 {
		powered := mat.NewDense(n, n, nil)
		powered.Pow(counts, m.StepsAhead)
		p = powered
	}

	m.p = p
	m.min = a
	m.max = b
	m.binWidth = w
	m.fitted = true
	return nil
}

// binIndices assigns each value to a 0-based bin index under the scheme
// starting at a with width w, clamping values on the upper boundary into the
// last bin.
func binIndices(values []float64, a, w float64, n int) []int {
	states := make([]int, len(values))
	for i, v := range values {
		k := int(math.Floor((v - a) / w))
		if k > n-1 {
			k = n - 1
		}
		states[i] = k
	}
	return states
}

// States maps each observation in series to its 1-based bin index under the
// fitted binning scheme.
func (m *Model) States(series *timeseries.Series) ([]int, error) {
	if !m.fitted {
		return nil, errors.New("mcm: model must be fitted before assigning states")
	}
	if series == nil || series.Len() == 0 {
		return nil, fmt.Errorf("%w: empty series", ErrInvalidInput)
	}

	states := binIndices(series.Values, m.min, m.binWidth, m.NumBins)
	for i := range states {
		states[i]++
	}
	return states, nil
}

// TransitionMatrix returns a copy of the fitted multi-step transition
// matrix, or nil if the model has not been fitted.
func (m *Model) TransitionMatrix() *mat.Dense {
	if !m.fitted {
		return nil
	}
	var c mat.Dense
	c.CloneFrom(m.p)
	return &c
}

// Range returns the minimum and maximum of the fitted series.
func (m *Model) Range() (min, max float64) {
	return m.min, m.max
}

// BinWidth returns the width of each bin under the fitted scheme.
func (m *Model) BinWidth() float64 {
	return m.binWidth
}
