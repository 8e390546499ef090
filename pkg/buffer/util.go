package buffer

// clamp keeps v within lo and hi. lo must not be greater than hi.
func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
