package geometry

// CeilDiv divides a by b rounding up; both must be positive.
// It counts the tiles of size b needed to cover a pixels.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}
