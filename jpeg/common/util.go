package common

// Clamp limits val to the range [minVal, maxVal].
func Clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// DivCeil returns ceil(a/b) for positive operands.
func DivCeil(a, b int) int {
	return (a + b - 1) / b
}
