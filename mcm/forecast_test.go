package mcm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/gomcm/timeseries"
)

func fittedModel(t *testing.T) *Model {
	t.Helper()
	series := timeseries.New([]float64{1, 2, 3, 2, 1, 2, 3, 2, 1})
	model := New(2, 1)
	require.NoError(t, model.Fit(series))
	return model
}

func TestForecastSelectsObservationBin(t *testing.T) {
	model := fittedModel(t)

	// Bin edges are [1, 2] with width 1.
	dist, err := model.Forecast(1.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, dist.BinEdges)
	assert.InDelta(t, 1.0, dist.BinWidth, 1e-12)

	// Observation 1.5 sits in the first bin, whose row is [0, 1].
	require.Equal(t, 2, dist.NumBins())
	assert.InDelta(t, 0.0, dist.BinProbs[0], 1e-12)
	assert.InDelta(t, 1.0, dist.BinProbs[1], 1e-12)
}

func TestForecastBinBracketsObservation(t *testing.T) {
	series := timeseries.New([]float64{0, 1, 2, 3, 4, 3, 2, 1, 0, 2, 4, 1, 3})
	model := New(5, 1)
	require.NoError(t, model.Fit(series))

	a, b := model.Range()
	w := model.BinWidth()
	for obs := a; obs < b; obs += 0.17 {
		dist, err := model.Forecast(obs)
		require.NoError(t, err, "observation %g", obs)

		// Exactly one bin must bracket an interior observation.
		found := -1
		for k, edge := range dist.BinEdges {
			if edge <= obs && obs < edge+w {
				found = k
			}
		}
		require.GreaterOrEqual(t, found, 0, "observation %g", obs)
		row := mat.Row(nil, found, model.TransitionMatrix())
		assert.InDeltaSlice(t, row, dist.BinProbs, 1e-12, "observation %g", obs)
	}
}

func TestForecastEdgeTieTakesHigherBin(t *testing.T) {
	// Distinct rows make the selected bin observable from the probabilities.
	p := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})

	// Edges are [0, 1, 2]; an observation exactly on edge 1 belongs to the
	// bin starting there, not the one below it.
	dist, err := Forecast(p, 0, 3, 1.0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0}, dist.BinProbs)

	// Observation on the range maximum selects the last bin.
	dist, err = Forecast(p, 0, 3, 3.0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1}, dist.BinProbs)
}

func TestForecastInvalidInput(t *testing.T) {
	p := mat.NewDense(2, 2, []float64{0.5, 0.5, 0.5, 0.5})

	tests := []struct {
		name    string
		p       mat.Matrix
		a, b    float64
		obs     float64
	}{
		{"nil matrix", nil, 0, 1, 0.5},
		{"non-square matrix", mat.NewDense(2, 3, nil), 0, 1, 0.5},
		{"inverted range", p, 1, 0, 0.5},
		{"degenerate range", p, 1, 1, 1},
		{"observation below range", p, 0, 1, -0.1},
		{"observation above range", p, 0, 1, 1.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Forecast(tt.p, tt.a, tt.b, tt.obs)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestForecastDegenerateRow(t *testing.T) {
	// The first row has no observed transitions; forecasting from it
	// yields a zero-mass distribution and must fail.
	p := mat.NewDense(2, 2, []float64{
		0, 0,
		0.5, 0.5,
	})

	_, err := Forecast(p, 0, 1, 0.2)
	require.ErrorIs(t, err, ErrNoCoverage)

	// The other row is fine.
	_, err = Forecast(p, 0, 1, 0.7)
	require.NoError(t, err)
}

func TestDistributionMassAndMean(t *testing.T) {
	dist := &Distribution{
		BinEdges: []float64{0, 1},
		BinProbs: []float64{0.25, 0.75},
		BinWidth: 1,
	}

	assert.InDelta(t, 1.0, dist.Mass(), 1e-12)
	// 0.25*0.5 + 0.75*1.5
	assert.InDelta(t, 1.25, dist.Mean(), 1e-12)

	empty := &Distribution{BinEdges: []float64{0}, BinProbs: []float64{0}, BinWidth: 1}
	assert.True(t, math.IsNaN(empty.Mean()))
}
