package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		points int
		want   Level
	}{
		{0, Seed},
		{1, Seed},
		{2, Root},
		{4, Root},
		{5, Sprout},
		{9, Sprout},
		{10, Stem},
		{19, Stem},
		{20, Leaf},
		{29, Leaf},
		{30, Tree},
		{49, Tree},
		{50, Flower},
		{99, Flower},
		{100, Fruit},
		{1_000_000, Fruit},
	}
	for _, tt := range tests {
		got, err := Classify(tt.points)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "points=%d", tt.points)
	}
}

func TestClassifyRejectsNegative(t *testing.T) {
	_, err := Classify(-1)
	assert.ErrorIs(t, err, ErrNegativePoints)
}

func tierIndex(l Level) int {
	for i, t := range thresholds {
		if t.level == l {
			return i
		}
	}
	if l == Fruit {
		return len(thresholds)
	}
	return -1
}

func TestClassifyIsMonotonic(t *testing.T) {
	prev := -1
	for p := 0; p <= 150; p++ {
		l, err := Classify(p)
		require.NoError(t, err)
		r := tierIndex(l)
		assert.GreaterOrEqual(t, r, prev)
		prev = r
	}
	assert.Equal(t, 7, prev)
}
