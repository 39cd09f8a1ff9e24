package pheromone

import "math"

// sqrt32 returns the square root of a float32.
func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// minFloat returns the smaller of two float32 values.
func minFloat(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// maxFloat returns the larger of two float32 values.
func maxFloat(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
