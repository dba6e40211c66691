package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Bin is one equal-width histogram bin covering [From, To).
type Bin struct {
	From  float64
	To    float64
	Count int
}

// Histogram counts values into bins equal-width intervals spanning the data
// range. Values on the upper boundary are counted into the last bin.
// Histogram returns nil when there is no data or bins is not positive.
func Histogram(values []float64, bins int) []Bin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}

	lo := floats.Min(values)
	hi := floats.Max(values)
	if hi == lo {
		hi = lo + 1e-9 // all values identical; avoid a zero-width range
	}
	width := (hi - lo) / float64(bins)

	result := make([]Bin, bins)
	for i := range result {
		result[i] = Bin{
			From: lo + float64(i)*width,
			To:   lo + float64(i+1)*width,
		}
	}

	for _, v := range values {
		k := int(math.Floor((v - lo) / width))
		if k >= bins {
			k = bins - 1
		}
		result[k].Count++
	}

	return result
}
