package condition

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/example/milestone/internal/core/achievement"
)

// Evaluate runs the evaluator for cond. now supplies the reference date when
// the context carries none. A Facts failure is returned as an error and no
// result; callers treat it as "not satisfied, no progress".
func Evaluate(cond achievement.Condition, ec achievement.EvaluationContext, facts Facts, now time.Time) (Result, error) {
	ref, err := referenceDate(ec, now)
	if err != nil {
		return Result{}, err
	}

	switch c := cond.(type) {
	case achievement.FirstAction:
		return evalFirstAction(c, ec, facts)
	case achievement.TaskCount:
		return evalTaskCount(c, facts)
	case achievement.StreakDays:
		return evalStreakDays(c, facts)
	case achievement.TotalCompletions:
		return evalTotalCompletions(c, facts)
	case achievement.AllHabitsStreak:
		return evalAllHabitsStreak(c.Days, ref, facts)
	case achievement.PerfectWeek:
		return evalAllHabitsStreak(c.Weeks*7, ref, facts)
	case achievement.EarlyCompletion:
		return evalTimeOfDay(ref, c.Days, facts, func(r DayRecord) bool { return r.FirstAt != "" && r.FirstAt < c.Before })
	case achievement.EveningCompletion:
		return evalTimeOfDay(ref, c.Days, facts, func(r DayRecord) bool { return r.LastAt != "" && r.LastAt > c.After })
	case achievement.DateSpecific:
		return Result{Satisfied: ref[5:] == c.MonthDay}, nil
	case achievement.AppAnniversary:
		return evalAppAnniversary(c, ref, facts)
	case achievement.MultiHabitSameDay:
		return evalMultiHabitSameDay(c, facts)
	case achievement.MultiHabitStreak:
		return evalMultiHabitStreak(c, ref, facts)
	case achievement.StreakRecovery:
		return evalStreakRecovery(c, ref, facts)
	case achievement.WeekendStreak:
		return evalWeekendStreak(c, ref, facts)
	case achievement.TotalHabitsCompletions:
		return evalTotalHabitsCompletions(c, facts)
	default:
		return Result{}, fmt.Errorf("%w: %T", ErrUnsupportedCondition, cond)
	}
}

func referenceDate(ec achievement.EvaluationContext, now time.Time) (string, error) {
	if ec.Date == "" {
		return now.Format(dateLayout), nil
	}
	if _, ok := parseDate(ec.Date); !ok {
		return "", fmt.Errorf("invalid evaluation date %q (want YYYY-MM-DD)", ec.Date)
	}
	return ec.Date, nil
}

func loadHabits(facts Facts) ([]Habit, error) {
	habits, err := facts.Habits()
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}
	return habits, nil
}

func loadDays(facts Facts) ([]DayRecord, error) {
	days, err := facts.DayRecords("")
	if err != nil {
		return nil, fmt.Errorf("failed to load completion days: %w", err)
	}
	return days, nil
}

func active(habits []Habit) []Habit {
	return lo.Filter(habits, func(h Habit, _ int) bool { return !h.Archived })
}

// completedByDate maps each date to the set of habits completed on it.
func completedByDate(days []DayRecord) map[string]map[string]bool {
	out := make(map[string]map[string]bool)
	for _, d := range days {
		if d.Count <= 0 {
			continue
		}
		if out[d.Date] == nil {
			out[d.Date] = make(map[string]bool)
		}
		out[d.Date][d.TaskID] = true
	}
	return out
}

func evalFirstAction(c achievement.FirstAction, ec achievement.EvaluationContext, facts Facts) (Result, error) {
	action, ok := achievement.TriggerAction(ec.Trigger)
	if !ok || action != c.Action {
		return Result{}, nil
	}

	var counter int
	switch c.Action {
	case achievement.ActionCreateHabit:
		habits, err := loadHabits(facts)
		if err != nil {
			return Result{}, err
		}
		counter = len(habits)
	case achievement.ActionCompleteHabit:
		habits, err := loadHabits(facts)
		if err != nil {
			return Result{}, err
		}
		counter = lo.SumBy(habits, func(h Habit) int { return h.TotalCompletions })
	case achievement.ActionCustomizeHabit:
		n, err := facts.Customizations()
		if err != nil {
			return Result{}, fmt.Errorf("failed to load customizations: %w", err)
		}
		counter = n
	}

	res := progressResult(min(counter, 1), 1)
	if res.Satisfied {
		res.Metadata = map[string]string{"action": string(c.Action)}
	}
	return res, nil
}

func evalTaskCount(c achievement.TaskCount, facts Facts) (Result, error) {
	habits, err := loadHabits(facts)
	if err != nil {
		return Result{}, err
	}
	return progressResult(len(active(habits)), c.Threshold), nil
}

func evalStreakDays(c achievement.StreakDays, facts Facts) (Result, error) {
	habits, err := loadHabits(facts)
	if err != nil {
		return Result{}, err
	}

	best := Habit{}
	for _, h := range active(habits) {
		if h.CurrentStreak > best.CurrentStreak {
			best = h
		}
	}

	res := progressResult(best.CurrentStreak, c.Threshold)
	if res.Satisfied {
		res.Metadata = map[string]string{"task_id": best.ID, "streak": fmt.Sprint(best.CurrentStreak)}
	}
	return res, nil
}

func evalTotalCompletions(c achievement.TotalCompletions, facts Facts) (Result, error) {
	habits, err := loadHabits(facts)
	if err != nil {
		return Result{}, err
	}

	best := Habit{}
	for _, h := range habits {
		if h.TotalCompletions > best.TotalCompletions {
			best = h
		}
	}

	res := progressResult(best.TotalCompletions, c.Threshold)
	if res.Satisfied {
		res.Metadata = map[string]string{"task_id": best.ID}
	}
	return res, nil
}

func evalAllHabitsStreak(days int, ref string, facts Facts) (Result, error) {
	habits, err := loadHabits(facts)
	if err != nil {
		return Result{}, err
	}
	tracked := active(habits)
	if len(tracked) == 0 {
		return Result{Progress: &Progress{Current: 0, Target: days}}, nil
	}

	records, err := loadDays(facts)
	if err != nil {
		return Result{}, err
	}
	byDate := completedByDate(records)

	current := runEndingAt(ref, func(date string) bool {
		done := byDate[date]
		return lo.EveryBy(tracked, func(h Habit) bool { return done[h.ID] })
	})
	return progressResult(current, days), nil
}

func evalTimeOfDay(ref string, days int, facts Facts, match func(DayRecord) bool) (Result, error) {
	records, err := loadDays(facts)
	if err != nil {
		return Result{}, err
	}

	qualifying := make(map[string]bool)
	for _, r := range records {
		if r.Count > 0 && match(r) {
			qualifying[r.Date] = true
		}
	}

	current := runEndingAt(ref, func(date string) bool { return qualifying[date] })
	return progressResult(current, days), nil
}

func evalAppAnniversary(c achievement.AppAnniversary, ref string, facts Facts) (Result, error) {
	habits, err := loadHabits(facts)
	if err != nil {
		return Result{}, err
	}
	if len(habits) == 0 {
		return Result{Progress: &Progress{Current: 0, Target: c.Years}}, nil
	}

	oldest := lo.MinBy(habits, func(a, b Habit) bool { return a.CreatedAt.Before(b.CreatedAt) })
	refTime, _ := parseDate(ref)
	return progressResult(fullYearsBetween(oldest.CreatedAt, refTime), c.Years), nil
}

func evalMultiHabitSameDay(c achievement.MultiHabitSameDay, facts Facts) (Result, error) {
	records, err := loadDays(facts)
	if err != nil {
		return Result{}, err
	}

	best, bestDate := 0, ""
	for date, set := range completedByDate(records) {
		if len(set) > best || (len(set) == best && date > bestDate) {
			best, bestDate = len(set), date
		}
	}

	res := progressResult(best, c.Habits)
	if res.Satisfied {
		res.Metadata = map[string]string{"date": bestDate}
	}
	return res, nil
}

func evalMultiHabitStreak(c achievement.MultiHabitStreak, ref string, facts Facts) (Result, error) {
	records, err := loadDays(facts)
	if err != nil {
		return Result{}, err
	}
	byDate := completedByDate(records)

	current := runEndingAt(ref, func(date string) bool { return len(byDate[date]) >= c.Habits })
	return progressResult(current, c.Days), nil
}

func evalStreakRecovery(c achievement.StreakRecovery, ref string, facts Facts) (Result, error) {
	records, err := loadDays(facts)
	if err != nil {
		return Result{}, err
	}

	perHabit := make(map[string]map[string]bool)
	for _, r := range records {
		if r.Count <= 0 {
			continue
		}
		if perHabit[r.TaskID] == nil {
			perHabit[r.TaskID] = make(map[string]bool)
		}
		perHabit[r.TaskID][r.Date] = true
	}

	yesterday := addDays(ref, -1)
	best, bestTask := 0, ""
	for taskID, dates := range perHabit {
		rs := runs(dates)
		lost := -1
		for i, r := range rs {
			broken := i < len(rs)-1 || r.End < yesterday
			if r.Length >= c.MinLostStreak && broken {
				lost = i
				break
			}
		}
		if lost < 0 {
			continue
		}
		for _, r := range rs[lost+1:] {
			if r.End > ref {
				continue
			}
			if r.Length > best || (r.Length == best && taskID < bestTask) {
				best, bestTask = r.Length, taskID
			}
		}
	}

	res := progressResult(best, c.Threshold)
	if res.Satisfied {
		res.Metadata = map[string]string{"task_id": bestTask}
	}
	return res, nil
}

func evalWeekendStreak(c achievement.WeekendStreak, ref string, facts Facts) (Result, error) {
	records, err := loadDays(facts)
	if err != nil {
		return Result{}, err
	}
	byDate := completedByDate(records)
	done := func(date string) bool { return len(byDate[date]) > 0 }

	refTime, _ := parseDate(ref)
	// Saturday on or before the reference date.
	back := (int(refTime.Weekday()) - int(time.Saturday) + 7) % 7
	saturday := addDays(ref, -back)

	complete := func(sat string) bool { return done(sat) && done(addDays(sat, 1)) }
	if !complete(saturday) {
		saturday = addDays(saturday, -7)
	}

	current := 0
	for complete(saturday) {
		current++
		saturday = addDays(saturday, -7)
	}
	return progressResult(current, c.Weekends), nil
}

func evalTotalHabitsCompletions(c achievement.TotalHabitsCompletions, facts Facts) (Result, error) {
	habits, err := loadHabits(facts)
	if err != nil {
		return Result{}, err
	}
	total := lo.SumBy(habits, func(h Habit) int { return h.TotalCompletions })
	return progressResult(total, c.Threshold), nil
}
