// Package gomcm provides the Markov-chain Mixture (MCM) distribution model
// for probabilistic time series forecasting.
//
// GoMCM fits a first-order Markov chain to a scalar time series by
// discretizing it into equal-width bins and counting empirical transitions.
// The transition matrix row matching the most recent observation is a
// piecewise-uniform predictive distribution, from which forecast samples can
// be drawn.
//
// # Quick Start
//
// Fit a model and sample from the one-step-ahead forecast:
//
//	series, _ := timeseries.LoadText("data.txt")
//	model := mcm.New(50, 1)
//	if err := model.Fit(series); err != nil {
//	    log.Fatal(err)
//	}
//	dist, _ := model.Forecast(series.Last())
//	samples, _ := dist.Sample(2000, rand.New(rand.NewSource(1)))
//
// # Packages
//
// The library is organized into the following packages:
//
//   - mcm: model fitting, forecast distributions, and sampling
//   - timeseries: time series data structures and loaders
//   - stats: summary statistics for sample batches
//   - config: pipeline configuration for the mcm command
//
// # References
//
//   - Munkhammar, J., & Widén, J. (2019). Probabilistic forecasting of
//     high-resolution clear-sky index time-series using a Markov-chain
//     mixture distribution model. Solar Energy.
package gomcm
