package achievement

import "testing"

func TestPercentage(t *testing.T) {
	tests := []struct {
		current, target, want int
	}{
		{0, 7, 0},
		{1, 3, 33},
		{2, 3, 67},
		{7, 7, 100},
		{20, 7, 100},
		{-5, 7, 0},
		{1, 200, 1},
		{1, 1000, 0},
		{0, 0, 0},
		{3, 0, 100},
	}

	for _, tt := range tests {
		if got := Percentage(tt.current, tt.target); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tt.current, tt.target, got, tt.want)
		}
	}
}
