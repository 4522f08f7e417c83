package infra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloatKeyNaNBreaksTotalOrder(t *testing.T) {
	nan := math.NaN()
	assert.True(t, nan != nan)
	assert.False(t, nan < 1.0)
	assert.False(t, nan > 1.0)
}

func TestOrderedKeyComparatorContract(t *testing.T) {
	var cmp OrderedKeyComparator[int] = func(i, j int) int64 {
		if i == j {
			return 0
		} else if i < j {
			return -1
		}
		return 1
	}
	assert.Equal(t, int64(0), cmp(3, 3))
	assert.Equal(t, int64(-1), cmp(1, 3))
	assert.Equal(t, int64(1), cmp(5, 3))
}
