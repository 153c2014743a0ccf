package formulas

import "github.com/markcheno/go-talib"

// MovingAverage returns a simple moving average aligned with values.
// Leading points without a full window use the mean of the points seen so far,
// so the output never starts with a run of zeros.
func MovingAverage(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 || period <= 0 {
		return out
	}

	if period > 1 && len(values) >= period {
		copy(out, talib.Sma(values, period))
	}

	running := 0.0
	for i, v := range values {
		running += v
		if period == 1 {
			out[i] = v
			continue
		}
		if i < period-1 || len(values) < period {
			out[i] = running / float64(i+1)
		}
	}
	return out
}
