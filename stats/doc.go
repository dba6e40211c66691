// Package stats provides summary statistics for forecast sample batches.
//
// The histogram mirrors the binning scheme used by the model: equal-width
// bins spanning the data range, with the maximum value counted into the last
// bin.
package stats
