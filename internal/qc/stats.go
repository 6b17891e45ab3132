package qc

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Column names read by the suites.
const (
	colFrameNumber = "CameraFrameNumber"
	colFrameTime   = "CameraFrameTime"
	colBackground  = "Background"
)

// frameTimeToSeconds converts the device frame clock (ns) to seconds.
const frameTimeToSeconds = 1e-9

// diff returns the first difference x[i+1]-x[i].
func diff(x []float64) []float64 {
	if len(x) < 2 {
		return nil
	}
	return floats.SubTo(make([]float64, len(x)-1), x[1:], x[:len(x)-1])
}

// finite drops NaN and ±Inf values.
func finite(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// maxAbs returns the largest |v| ignoring NaNs, and false if there is none.
func maxAbs(x []float64) (float64, bool) {
	best, found := 0.0, false
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		if a := math.Abs(v); !found || a > best {
			best, found = a, true
		}
	}
	return best, found
}

// median of the finite values of x; ok is false when there are none.
func median(x []float64) (float64, bool) {
	vals := finite(x)
	if len(vals) == 0 {
		return 0, false
	}
	slices.Sort(vals)
	return stat.Quantile(0.5, stat.Empirical, vals, nil), true
}

// popMeanStd is the population mean and standard deviation.
func popMeanStd(x []float64) (mean, std float64) {
	return stat.PopMeanStdDev(x, nil)
}
