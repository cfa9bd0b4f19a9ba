package calculator

import (
	"errors"

	"FearGreed/internal/model"
)

// SMA computes the simple moving average of the last period values.
func SMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// Average returns the mean score over the trailing window, or over all points
// when there are fewer than window.
func Average(history []model.HistoryPoint, window int) (float64, error) {
	values := extractValues(history)
	if window > len(values) {
		window = len(values)
	}
	return SMA(values, window)
}

func extractValues(history []model.HistoryPoint) []float64 {
	values := make([]float64, len(history))
	for i, p := range history {
		values[i] = p.Value
	}
	return values
}
