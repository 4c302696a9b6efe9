package util

import "math"

// RoundHalfUp rounds to the nearest integer with halves going towards +Inf,
// matching how scores and percentages have always been reported to clients.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// MeanInt returns the arithmetic mean of values, or 0 for an empty slice.
func MeanInt(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// TotalPages returns ceil(total/limit), or 0 when limit is not positive.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
