// Package mcm implements the Markov-chain Mixture (MCM) distribution model.
//
// The model discretizes a scalar time series into N equal-width bins and
// estimates an NxN row-stochastic transition matrix from consecutive
// observation pairs. Conditioning on an observation selects one row of the
// matrix, which together with the bin edges forms a piecewise-uniform
// forecast distribution.
//
// # Basic Usage
//
// Fit, forecast, and sample:
//
//	model := mcm.New(50, 1)
//	if err := model.Fit(series); err != nil {
//	    log.Fatal(err)
//	}
//
//	dist, err := model.Forecast(0.5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rng := rand.New(rand.NewSource(42))
//	samples, err := dist.Sample(2000, rng)
//
// # Multi-Step Forecasts
//
// A model created with stepsAhead > 1 raises the one-step transition matrix
// to that power, so the forecast distribution describes the series that many
// steps into the future:
//
//	model := mcm.New(50, 3) // three steps ahead
//
// # Errors
//
// Malformed parameters are reported as ErrInvalidInput. A forecast from a bin
// the fitted series never left, or sampling a distribution whose probability
// mass falls short of 1, is reported as ErrNoCoverage. Both are sentinels for
// errors.Is; returned errors carry additional context.
package mcm
