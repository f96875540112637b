package habit

import "testing"

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		today string
		want  int
	}{
		{"no completions", nil, "2024-06-15", 0},
		{"completed today only", []string{"2024-06-15"}, "2024-06-15", 1},
		{"run ending today", []string{"2024-06-13", "2024-06-14", "2024-06-15"}, "2024-06-15", 3},
		{"run ending yesterday still counts", []string{"2024-06-13", "2024-06-14"}, "2024-06-15", 2},
		{"run ending two days ago is broken", []string{"2024-06-12", "2024-06-13"}, "2024-06-15", 0},
		{"gap resets", []string{"2024-06-10", "2024-06-11", "2024-06-13", "2024-06-14", "2024-06-15"}, "2024-06-15", 3},
		{"duplicates and order ignored", []string{"2024-06-15", "2024-06-14", "2024-06-15"}, "2024-06-15", 2},
		{"crosses month boundary", []string{"2024-05-31", "2024-06-01"}, "2024-06-01", 2},
		{"invalid today", []string{"2024-06-15"}, "bogus", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStreak(tt.dates, tt.today); got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{"empty", nil, 0},
		{"single", []string{"2024-01-01"}, 1},
		{"two runs", []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-10", "2024-01-11"}, 3},
		{"unsorted with duplicates", []string{"2024-01-11", "2024-01-10", "2024-01-10"}, 2},
		{"leap day", []string{"2024-02-28", "2024-02-29", "2024-03-01"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LongestStreak(tt.dates); got != tt.want {
				t.Errorf("LongestStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}
