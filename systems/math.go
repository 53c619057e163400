package systems

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// edgeDistance returns how far (x, y) is from the nearest edge of a
// width x height rectangle. Negative outside.
func edgeDistance(x, y, width, height float64) float64 {
	return min(x, y, width-x, height-y)
}
