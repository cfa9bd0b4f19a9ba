package collector

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate_String(t *testing.T) {
	got, err := NormalizeDate("2024-03-15", nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", got)
}

func TestNormalizeDate_UnpaddedString(t *testing.T) {
	got, err := NormalizeDate("2024-3-5", nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", got)
}

func TestNormalizeDate_Milliseconds(t *testing.T) {
	const ms = 1700000000000
	want := time.UnixMilli(ms).UTC().Format("2006-01-02")

	got, err := NormalizeDate(float64(ms), nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "2023-11-14", got)

	got, err = NormalizeDate(int64(ms), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2023-11-14", got)
}

func TestNormalizeDate_MillisecondsInLocation(t *testing.T) {
	kst := time.FixedZone("KST", 9*60*60)
	// 2023-11-14T22:13:20Z is already the 15th in Seoul.
	got, err := NormalizeDate(float64(1700000000000), kst)
	require.NoError(t, err)
	assert.Equal(t, "2023-11-15", got)
}

func TestNormalizeDate_Rejects(t *testing.T) {
	inputs := []any{
		true,
		nil,
		map[string]any{"d": 1},
		[]any{"2024-01-01"},
		"15/03/2024",
		"not a date",
		"2024-02-30",
		math.NaN(),
		math.Inf(1),
		math.Inf(-1),
		1e19,
		-1e19,
	}
	for _, in := range inputs {
		_, err := NormalizeDate(in, nil)
		assert.ErrorIs(t, err, ErrUnrecognizedDateFormat, "input %#v", in)
	}
}
