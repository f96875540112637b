package condition

import (
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// civil day arithmetic is done in UTC so DST transitions never shift a date.

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func addDays(date string, n int) string {
	t, ok := parseDate(date)
	if !ok {
		return date
	}
	return t.AddDate(0, 0, n).Format(dateLayout)
}

// runEndingAt counts consecutive qualifying days backwards from ref.
// When ref itself does not qualify the count starts from the day before,
// so a streak still in progress today is not reported as broken.
func runEndingAt(ref string, qualifies func(date string) bool) int {
	day := ref
	if !qualifies(day) {
		day = addDays(ref, -1)
	}
	n := 0
	for qualifies(day) {
		n++
		day = addDays(day, -1)
	}
	return n
}

// run is a maximal stretch of consecutive days.
type run struct {
	Start  string
	End    string
	Length int
}

// runs splits a set of dates into maximal runs of consecutive days, oldest first.
func runs(dates map[string]bool) []run {
	sorted := make([]string, 0, len(dates))
	for d, ok := range dates {
		if !ok {
			continue
		}
		if _, valid := parseDate(d); valid {
			sorted = append(sorted, d)
		}
	}
	sort.Strings(sorted)

	var out []run
	for i, d := range sorted {
		if i > 0 && addDays(sorted[i-1], 1) == d {
			out[len(out)-1].End = d
			out[len(out)-1].Length++
			continue
		}
		out = append(out, run{Start: d, End: d, Length: 1})
	}
	return out
}

// fullYearsBetween counts whole calendar years from `from` to `to`.
func fullYearsBetween(from, to time.Time) int {
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
