package collector

import (
	"fmt"
	"strconv"

	"FearGreed/internal/model"
)

// Deduplicate keeps the first point for each raw date key, in input order.
func Deduplicate(points []model.RawPoint) []model.RawPoint {
	seen := make(map[string]struct{}, len(points))
	result := make([]model.RawPoint, 0, len(points))
	for _, p := range points {
		key := dedupKey(p.X)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, p)
	}
	return result
}

// dedupKey renders a raw date field as a string key. The type prefix keeps
// the string "1" and the number 1 apart; maps and slices would panic as
// map keys otherwise.
func dedupKey(x any) string {
	switch v := x.(type) {
	case string:
		return "s:" + v
	case float64:
		return "n:" + strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%T:%v", x, x)
	}
}

// lastN returns the trailing n points, or all of them if there are fewer.
func lastN(points []model.RawPoint, n int) []model.RawPoint {
	if len(points) > n {
		return points[len(points)-n:]
	}
	return points
}
