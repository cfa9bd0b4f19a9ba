package collector

import (
	"fmt"
	"math"
	"time"

	"FearGreed/internal/model"
)

// looseDateLayout accepts both "2024-03-05" and "2024-3-5".
const looseDateLayout = "2006-1-2"

// NormalizeDate converts a raw date field into "YYYY-MM-DD".
// Strings must already be calendar dates, zero padding optional; numbers are
// epoch milliseconds and are converted in loc (nil means UTC). Anything else,
// including numbers outside the int64 millisecond range, is rejected.
func NormalizeDate(raw any, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.UTC
	}
	switch v := raw.(type) {
	case string:
		t, err := time.Parse(looseDateLayout, v)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrUnrecognizedDateFormat, v)
		}
		return t.Format(model.DateLayout), nil
	case float64:
		if math.IsNaN(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return "", fmt.Errorf("%w: %v", ErrUnrecognizedDateFormat, v)
		}
		return time.UnixMilli(int64(v)).In(loc).Format(model.DateLayout), nil
	case float32:
		return NormalizeDate(float64(v), loc)
	case int:
		return time.UnixMilli(int64(v)).In(loc).Format(model.DateLayout), nil
	case int64:
		return time.UnixMilli(v).In(loc).Format(model.DateLayout), nil
	default:
		return "", fmt.Errorf("%w: %T %v", ErrUnrecognizedDateFormat, raw, raw)
	}
}
