// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for representing ordered scalar
// observations, along with loaders for the plain-text and CSV input formats.
//
// # Creating a Series
//
// Create a time series from a slice:
//
//	values := []float64{0.52, 0.55, 0.49, 0.61}
//	series := timeseries.New(values)
//
// # Loading from Files
//
// Load whitespace-delimited observations:
//
//	series, err := timeseries.LoadText("data.txt")
//
// Load a named column from a CSV file:
//
//	series, err := timeseries.LoadCSVColumn("data.csv", "value")
//
// Both loaders preserve the on-disk order and reject empty input.
//
// # Basic Statistics
//
// Calculate summary statistics:
//
//	min := series.Min()
//	max := series.Max()
//	mean := series.Mean()
//	std := series.Std()
package timeseries
