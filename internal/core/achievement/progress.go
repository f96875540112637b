package achievement

import "math"

// Percentage converts current/target to a whole percentage clamped to [0, 100].
// A non-positive target counts as complete once anything has been done.
func Percentage(current, target int) int {
	if target <= 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	pct := int(math.Round(float64(current) / float64(target) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
