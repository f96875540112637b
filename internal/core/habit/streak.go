package habit

import (
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// CurrentStreak counts consecutive completion days ending today, or ending
// yesterday when today has no completion yet. dates may be unsorted and
// contain duplicates.
func CurrentStreak(dates []string, today string) int {
	done := make(map[string]bool, len(dates))
	for _, d := range dates {
		done[d] = true
	}
	day, err := time.Parse(dateLayout, today)
	if err != nil {
		return 0
	}
	if !done[today] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for done[day.Format(dateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak returns the longest run of consecutive completion days.
func LongestStreak(dates []string) int {
	if len(dates) == 0 {
		return 0
	}
	uniq := make(map[string]bool, len(dates))
	sorted := make([]string, 0, len(dates))
	for _, d := range dates {
		if !uniq[d] {
			uniq[d] = true
			sorted = append(sorted, d)
		}
	}
	sort.Strings(sorted)

	best, run := 0, 0
	var prev time.Time
	for i, d := range sorted {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		if i > 0 && t.Equal(prev.AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		prev = t
		if run > best {
			best = run
		}
	}
	return best
}
