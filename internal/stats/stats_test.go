// internal/stats/stats_test.go
//
// 驗證統計函式的邊界行為：空序列退回值、NaN 平均值，以及 Average 的累加規則。

package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []float64{15, 8, 42, 4, 23, 16}

func TestLargestSmallest(t *testing.T) {
	assert.Equal(t, 42.0, Largest(sample))
	assert.Equal(t, 4.0, Smallest(sample))

	ints := []int{-3, -10, -1}
	assert.Equal(t, -1, Largest(ints))
	assert.Equal(t, -10, Smallest(ints))
}

// TestBoundsHoldForEveryElement 對多組非空序列檢查
// Largest >= 每個元素、Smallest <= 每個元素。
func TestBoundsHoldForEveryElement(t *testing.T) {
	cases := [][]float64{
		{1},
		{0, 0, 0},
		{-5, 3, -2.5, 7.25},
		{100, -100, 50, -50},
		sample,
	}
	for _, seq := range cases {
		hi, lo := Largest(seq), Smallest(seq)
		for _, v := range seq {
			assert.GreaterOrEqual(t, hi, v, "seq=%v", seq)
			assert.LessOrEqual(t, lo, v, "seq=%v", seq)
		}
	}
}

func TestEmptyFallbackIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Largest([]float64{}))
	assert.Equal(t, 0.0, Smallest([]float64{}))
	assert.Equal(t, 0, Largest[int](nil))
	assert.Equal(t, 0, Smallest[int](nil))
}

// 首項為 NaN 時以 0 為起點繼續比較。
func TestNaNFirstElement(t *testing.T) {
	seq := []float64{math.NaN(), 3, -2}
	assert.Equal(t, 3.0, Largest(seq))
	assert.Equal(t, -2.0, Smallest(seq))
}

func TestAverageOnlyAddsGreaterThanRunningTotal(t *testing.T) {
	assert.Equal(t, 9.5, Average(sample))
	assert.Equal(t, 9.5, Average([]int{15, 8, 42, 4, 23, 16}))

	// 1 → 1；2 > 1 → 3；4 > 3 → 7；7 不大於 7 → 跳過。
	assert.Equal(t, 7.0/4, Average([]int{1, 2, 4, 7}))

	// 負數永遠不會大於累加值 0。
	assert.Equal(t, 0.0, Average([]float64{-1, -2, -3}))
}

func TestAverageEmptyIsNaN(t *testing.T) {
	require.NotPanics(t, func() { Average([]int{}) })
	assert.True(t, math.IsNaN(Average([]float64{})))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]int{15, 8, 42, 4, 23, 16})
	assert.Equal(t, Summary{Count: 6, Largest: 42, Smallest: 4, Average: 9.5}, s)

	empty := Summarize[float64](nil)
	assert.Equal(t, 0, empty.Count)
	assert.True(t, math.IsNaN(empty.Average))
}

func TestInputNotMutated(t *testing.T) {
	seq := []int{3, 1, 2}
	_ = Summarize(seq)
	assert.Equal(t, []int{3, 1, 2}, seq)
}
