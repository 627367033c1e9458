package utils

import (
	"math"
	"time"
)

// TrendConfig 热度计算权重配置
type TrendConfig struct {
	Gravity        float64 // 时间重力 (1.5)
	WeightFavorite float64 // 3.0
	WeightShare    float64 // 2.5
	WeightCompare  float64 // 1.5
	WeightView     float64 // 1.0
	WeightSearch   float64 // 0.5
	ScaleFactor    float64 // 放大系数 (100)
}

var DefaultTrendConfig = TrendConfig{
	Gravity:        1.5,
	WeightFavorite: 3.0,
	WeightShare:    2.5,
	WeightCompare:  1.5,
	WeightView:     1.0,
	WeightSearch:   0.5,
	ScaleFactor:    100.0, // 让分数落在 0-100 区间，像"温度"
}

// CalculateTrendScore 根据窗口内的互动量计算政客热度分
// lastActivity 为窗口内最近一次互动时间，越久远衰减越快
func CalculateTrendScore(lastActivity time.Time, views, favorites, shares, compares, searches int) float64 {
	hours := time.Since(lastActivity).Hours()
	if hours < 0 {
		hours = 0
	}

	// 1. 计算加权互动值 (Weighted Sum)
	weightedSum := (float64(favorites) * DefaultTrendConfig.WeightFavorite) +
		(float64(shares) * DefaultTrendConfig.WeightShare) +
		(float64(compares) * DefaultTrendConfig.WeightCompare) +
		(float64(views) * DefaultTrendConfig.WeightView) +
		(float64(searches) * DefaultTrendConfig.WeightSearch)

	if weightedSum < 0 {
		weightedSum = 0
	}

	// 2. 对数平滑 (Log Smoothing)
	// log10(sum + 1) -> 确保 sum=0 时结果为 0
	logScore := math.Log10(weightedSum + 1)

	// 3. 放大系数
	numerator := logScore * DefaultTrendConfig.ScaleFactor

	// 4. 时间衰减 (分母)
	decay := math.Pow(hours+2, DefaultTrendConfig.Gravity)

	return numerator / decay
}
