package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"FearGreed/internal/model"
)

func TestDeduplicate_KeepsFirstOccurrence(t *testing.T) {
	in := []model.RawPoint{
		{X: "2024-01-01", Y: 10},
		{X: "2024-01-02", Y: 20},
		{X: "2024-01-01", Y: 99},
	}
	got := Deduplicate(in)
	assert.Equal(t, []model.RawPoint{
		{X: "2024-01-01", Y: 10},
		{X: "2024-01-02", Y: 20},
	}, got)
}

func TestDeduplicate_Idempotent(t *testing.T) {
	in := []model.RawPoint{
		{X: float64(1700000000000), Y: 1},
		{X: "2024-01-02", Y: 2},
		{X: float64(1700000000000), Y: 3},
		{X: "2024-01-02", Y: 4},
		{X: "2024-01-03", Y: 5},
	}
	once := Deduplicate(in)
	assert.Equal(t, once, Deduplicate(once))
	assert.Len(t, once, 3)
}

func TestDeduplicate_DistinguishesKeyTypes(t *testing.T) {
	in := []model.RawPoint{
		{X: "1", Y: 1},
		{X: float64(1), Y: 2},
		{X: []any{"x"}, Y: 3},
	}
	assert.Len(t, Deduplicate(in), 3)
}

func TestDeduplicate_Empty(t *testing.T) {
	assert.Empty(t, Deduplicate(nil))
}

func TestLastN(t *testing.T) {
	pts := GenerateMockPoints(mustDate(t, "2024-01-10"), 10)
	assert.Len(t, lastN(pts, 3), 3)
	assert.Equal(t, pts[7:], lastN(pts, 3))
	assert.Equal(t, pts, lastN(pts, 1000))
}
