package calculator

import (
	"errors"
	"math"

	"FearGreed/internal/model"
)

// Range scans the trailing window points and returns the high and low scores.
func Range(history []model.HistoryPoint, window int) (high, low float64, err error) {
	if len(history) == 0 {
		return 0, 0, errors.New("no history provided")
	}
	n := len(history)
	start := n - window
	if start < 0 || window <= 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		high = math.Max(high, history[i].Value)
		low = math.Min(low, history[i].Value)
	}
	return high, low, nil
}

// Position returns where current sits within [low, high] (0.0~1.0).
func Position(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
