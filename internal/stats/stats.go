// internal/stats/stats.go

// Package stats 提供數值序列的三種彙總：最大值、最小值與平均值。
// 所有函式皆為純函式：不修改輸入、不回傳錯誤、不會 panic。
package stats

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Number 為統計函式可接受的數值型別（整數或浮點數）。
type Number interface {
	constraints.Integer | constraints.Float
}

// Summary 為一次彙總的結果。
// Average 可能為 NaN（空序列），呼叫端輸出前需自行處理。
type Summary struct {
	Count    int     `json:"count"`
	Largest  float64 `json:"largest"`
	Smallest float64 `json:"smallest"`
	Average  float64 `json:"average"`
}

// Largest 回傳序列中的最大值；空序列回傳 0（明確的退回值，而非錯誤）。
func Largest[T Number](seq []T) T {
	result := first(seq)
	for _, v := range seq {
		if v > result {
			result = v
		}
	}
	return result
}

// Smallest 回傳序列中的最小值；空序列同樣回傳 0。
func Smallest[T Number](seq []T) T {
	result := first(seq)
	for _, v := range seq {
		if v < result {
			result = v
		}
	}
	return result
}

// Average 回傳累加值除以序列長度。
//
// 注意：只有「嚴格大於目前累加值」的元素才會被加入，
// 因此對非遞增或含負數的序列，結果會低於真正的算術平均。
// 例如 [15, 8, 42, 4, 23, 16] → (15+42)/6 = 9.5。
// 空序列為 0/0，結果為 NaN。
func Average[T Number](seq []T) float64 {
	var sum float64
	for _, v := range seq {
		if f := float64(v); f > sum {
			sum += f
		}
	}
	return sum / float64(len(seq))
}

// Summarize 一次計算三種彙總。
func Summarize[T Number](seq []T) Summary {
	return Summary{
		Count:    len(seq),
		Largest:  float64(Largest(seq)),
		Smallest: float64(Smallest(seq)),
		Average:  Average(seq),
	}
}

// first 取得起始比較值：空序列或首項為 NaN 時為 0。
func first[T Number](seq []T) T {
	var zero T
	if len(seq) == 0 || math.IsNaN(float64(seq[0])) {
		return zero
	}
	return seq[0]
}
