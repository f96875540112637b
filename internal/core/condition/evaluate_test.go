package condition

import (
	"errors"
	"testing"
	"time"

	"github.com/example/milestone/internal/core/achievement"
)

type fakeFacts struct {
	habits         []Habit
	days           []DayRecord
	customizations int
	err            error
}

func (f *fakeFacts) Habits() ([]Habit, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.habits, nil
}

func (f *fakeFacts) DayRecords(taskID string) ([]DayRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if taskID == "" {
		return f.days, nil
	}
	var out []DayRecord
	for _, d := range f.days {
		if d.TaskID == taskID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeFacts) Customizations() (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.customizations, nil
}

// streakDays returns n consecutive day records for task ending at end.
func streakDays(task, end string, n int, at string) []DayRecord {
	out := make([]DayRecord, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, DayRecord{TaskID: task, Date: addDays(end, -i), Count: 1, FirstAt: at, LastAt: at})
	}
	return out
}

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) // a Saturday

func evaluate(t *testing.T, cond achievement.Condition, ec achievement.EvaluationContext, facts Facts) Result {
	t.Helper()
	res, err := Evaluate(cond, ec, facts, fixedNow)
	if err != nil {
		t.Fatalf("Evaluate(%s) error: %v", cond.Type(), err)
	}
	return res
}

func assertProgress(t *testing.T, res Result, current, target int) {
	t.Helper()
	if res.Progress == nil {
		t.Fatalf("expected progress %d/%d, got none", current, target)
	}
	if res.Progress.Current != current || res.Progress.Target != target {
		t.Errorf("progress = %d/%d, want %d/%d", res.Progress.Current, res.Progress.Target, current, target)
	}
}

func TestFirstAction(t *testing.T) {
	oneHabit := &fakeFacts{habits: []Habit{{ID: "h1"}}}
	completed := &fakeFacts{habits: []Habit{{ID: "h1", TotalCompletions: 1}}}
	done := &Progress{Current: 1, Target: 1}
	none := &Progress{Current: 0, Target: 1}

	tests := []struct {
		name         string
		cond         achievement.FirstAction
		trigger      achievement.Trigger
		facts        *fakeFacts
		want         bool
		wantProgress *Progress
	}{
		{"create matches habit_created", achievement.FirstAction{Action: achievement.ActionCreateHabit}, achievement.TriggerHabitCreated, oneHabit, true, done},
		{"create ignores app_opened", achievement.FirstAction{Action: achievement.ActionCreateHabit}, achievement.TriggerAppOpened, oneHabit, false, nil},
		{"create needs a habit to exist", achievement.FirstAction{Action: achievement.ActionCreateHabit}, achievement.TriggerHabitCreated, &fakeFacts{}, false, none},
		{"complete matches habit_completed", achievement.FirstAction{Action: achievement.ActionCompleteHabit}, achievement.TriggerHabitCompleted, completed, true, done},
		{"complete needs a completion", achievement.FirstAction{Action: achievement.ActionCompleteHabit}, achievement.TriggerHabitCompleted, oneHabit, false, none},
		{"customize matches habit_customized", achievement.FirstAction{Action: achievement.ActionCustomizeHabit}, achievement.TriggerHabitCustomized, &fakeFacts{customizations: 1}, true, done},
		{"customize progress caps at one", achievement.FirstAction{Action: achievement.ActionCustomizeHabit}, achievement.TriggerHabitCustomized, &fakeFacts{customizations: 4}, true, done},
		{"customize ignores habit_created", achievement.FirstAction{Action: achievement.ActionCustomizeHabit}, achievement.TriggerHabitCreated, &fakeFacts{customizations: 1}, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := evaluate(t, tt.cond, achievement.EvaluationContext{Trigger: tt.trigger}, tt.facts)
			if res.Satisfied != tt.want {
				t.Errorf("Satisfied = %v, want %v", res.Satisfied, tt.want)
			}
			switch {
			case tt.wantProgress == nil && res.Progress != nil:
				t.Errorf("Progress = %+v, want none", *res.Progress)
			case tt.wantProgress != nil && res.Progress == nil:
				t.Errorf("Progress = nil, want %+v", *tt.wantProgress)
			case tt.wantProgress != nil && *res.Progress != *tt.wantProgress:
				t.Errorf("Progress = %+v, want %+v", *res.Progress, *tt.wantProgress)
			}
			if tt.want && res.Metadata["action"] != string(tt.cond.Action) {
				t.Errorf("Metadata[action] = %q, want %q", res.Metadata["action"], tt.cond.Action)
			}
		})
	}
}

func TestTaskCount_IgnoresArchived(t *testing.T) {
	facts := &fakeFacts{habits: []Habit{{ID: "a"}, {ID: "b"}, {ID: "c", Archived: true}}}

	res := evaluate(t, achievement.TaskCount{Threshold: 3}, achievement.EvaluationContext{}, facts)
	if res.Satisfied {
		t.Error("archived habit counted toward task_count")
	}
	assertProgress(t, res, 2, 3)
}

func TestStreakDays_AnySingleHabit(t *testing.T) {
	facts := &fakeFacts{habits: []Habit{
		{ID: "read", CurrentStreak: 4},
		{ID: "meditate-id", CurrentStreak: 7},
		{ID: "old", CurrentStreak: 30, Archived: true},
	}}

	res := evaluate(t, achievement.StreakDays{Threshold: 7}, achievement.EvaluationContext{}, facts)
	if !res.Satisfied {
		t.Fatal("7-day streak not satisfied")
	}
	if res.Metadata["task_id"] != "meditate-id" {
		t.Errorf("metadata task_id = %q", res.Metadata["task_id"])
	}

	res = evaluate(t, achievement.StreakDays{Threshold: 14}, achievement.EvaluationContext{}, facts)
	if res.Satisfied {
		t.Error("archived habit's streak counted")
	}
	assertProgress(t, res, 7, 14)
}

func TestTotalCompletions_SingleHabitNotSum(t *testing.T) {
	facts := &fakeFacts{habits: []Habit{{ID: "a", TotalCompletions: 6}, {ID: "b", TotalCompletions: 6}}}

	res := evaluate(t, achievement.TotalCompletions{Threshold: 10}, achievement.EvaluationContext{}, facts)
	if res.Satisfied {
		t.Error("completions summed across habits")
	}
	assertProgress(t, res, 6, 10)
}

func TestTotalHabitsCompletions_SumsAllHabits(t *testing.T) {
	facts := &fakeFacts{habits: []Habit{{ID: "a", TotalCompletions: 6}, {ID: "b", TotalCompletions: 5, Archived: true}}}

	res := evaluate(t, achievement.TotalHabitsCompletions{Threshold: 10}, achievement.EvaluationContext{}, facts)
	if !res.Satisfied {
		t.Error("total across habits not satisfied")
	}
	assertProgress(t, res, 11, 10)
}

func TestAllHabitsStreak(t *testing.T) {
	habits := []Habit{{ID: "a"}, {ID: "b"}, {ID: "gone", Archived: true}}
	days := append(streakDays("a", "2024-06-15", 7, "08:00"), streakDays("b", "2024-06-15", 5, "08:00")...)
	facts := &fakeFacts{habits: habits, days: days}
	ec := achievement.EvaluationContext{Date: "2024-06-15"}

	res := evaluate(t, achievement.AllHabitsStreak{Days: 5}, ec, facts)
	if !res.Satisfied {
		t.Error("5 days of both habits not satisfied")
	}

	res = evaluate(t, achievement.AllHabitsStreak{Days: 7}, ec, facts)
	if res.Satisfied {
		t.Error("habit b only has 5 days")
	}
	assertProgress(t, res, 5, 7)
}

func TestAllHabitsStreak_NoActiveHabits(t *testing.T) {
	res := evaluate(t, achievement.AllHabitsStreak{Days: 1}, achievement.EvaluationContext{}, &fakeFacts{})
	if res.Satisfied {
		t.Error("satisfied with no habits")
	}
	assertProgress(t, res, 0, 1)
}

func TestAllHabitsStreak_TodayNotYetDone(t *testing.T) {
	facts := &fakeFacts{
		habits: []Habit{{ID: "a"}},
		days:   streakDays("a", "2024-06-14", 3, "08:00"),
	}

	res := evaluate(t, achievement.AllHabitsStreak{Days: 3}, achievement.EvaluationContext{Date: "2024-06-15"}, facts)
	if !res.Satisfied {
		t.Error("run ending yesterday should still count")
	}
}

func TestPerfectWeek_IsSevenDayAllHabitsStreak(t *testing.T) {
	facts := &fakeFacts{habits: []Habit{{ID: "a"}}, days: streakDays("a", "2024-06-15", 6, "08:00")}
	ec := achievement.EvaluationContext{Date: "2024-06-15"}

	res := evaluate(t, achievement.PerfectWeek{Weeks: 1}, ec, facts)
	if res.Satisfied {
		t.Error("6 days satisfied a perfect week")
	}
	assertProgress(t, res, 6, 7)

	facts.days = streakDays("a", "2024-06-15", 7, "08:00")
	if res := evaluate(t, achievement.PerfectWeek{Weeks: 1}, ec, facts); !res.Satisfied {
		t.Error("7 days did not satisfy a perfect week")
	}
}

func TestEarlyAndEveningCompletion(t *testing.T) {
	days := append(streakDays("a", "2024-06-15", 3, "06:30"), streakDays("b", "2024-06-15", 2, "22:30")...)
	facts := &fakeFacts{days: days}
	ec := achievement.EvaluationContext{Date: "2024-06-15"}

	if res := evaluate(t, achievement.EarlyCompletion{Before: "07:00", Days: 3}, ec, facts); !res.Satisfied {
		t.Error("3 early days not satisfied")
	}
	if res := evaluate(t, achievement.EarlyCompletion{Before: "06:30", Days: 1}, ec, facts); res.Satisfied {
		t.Error("boundary must be strict")
	}

	res := evaluate(t, achievement.EveningCompletion{After: "22:00", Days: 3}, ec, facts)
	if res.Satisfied {
		t.Error("only 2 evening days")
	}
	assertProgress(t, res, 2, 3)
}

func TestDateSpecific(t *testing.T) {
	cond := achievement.DateSpecific{MonthDay: "01-01"}

	for _, tt := range []struct {
		date string
		want bool
	}{
		{"2025-01-01", true},
		{"1999-01-01", true},
		{"2025-01-02", false},
	} {
		res := evaluate(t, cond, achievement.EvaluationContext{Date: tt.date}, &fakeFacts{})
		if res.Satisfied != tt.want {
			t.Errorf("date %s: Satisfied = %v, want %v", tt.date, res.Satisfied, tt.want)
		}
		if res.Progress != nil {
			t.Errorf("date_specific reported progress")
		}
	}
}

func TestDateSpecific_FallsBackToNow(t *testing.T) {
	res := evaluate(t, achievement.DateSpecific{MonthDay: "06-15"}, achievement.EvaluationContext{}, &fakeFacts{})
	if !res.Satisfied {
		t.Error("reference date should default to now")
	}
}

func TestAppAnniversary(t *testing.T) {
	facts := &fakeFacts{habits: []Habit{
		{ID: "new", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "old", CreatedAt: time.Date(2023, 6, 16, 9, 0, 0, 0, time.UTC), Archived: true},
	}}

	res := evaluate(t, achievement.AppAnniversary{Years: 1}, achievement.EvaluationContext{Date: "2024-06-15"}, facts)
	if res.Satisfied {
		t.Error("anniversary is tomorrow")
	}
	assertProgress(t, res, 0, 1)

	res = evaluate(t, achievement.AppAnniversary{Years: 1}, achievement.EvaluationContext{Date: "2024-06-16"}, facts)
	if !res.Satisfied {
		t.Error("anniversary reached on the day")
	}
}

func TestMultiHabitSameDay_UnlocksOnThirdCompletion(t *testing.T) {
	facts := &fakeFacts{}
	cond := achievement.MultiHabitSameDay{Habits: 3}
	ec := achievement.EvaluationContext{Trigger: achievement.TriggerHabitCompleted, Date: "2024-06-15"}

	for i, task := range []string{"A", "B", "C"} {
		facts.days = append(facts.days, DayRecord{TaskID: task, Date: "2024-06-15", Count: 1, FirstAt: "09:00", LastAt: "09:00"})
		res := evaluate(t, cond, ec, facts)
		wantSatisfied := i == 2
		if res.Satisfied != wantSatisfied {
			t.Errorf("after %s: Satisfied = %v, want %v", task, res.Satisfied, wantSatisfied)
		}
		assertProgress(t, res, i+1, 3)
	}
}

func TestMultiHabitSameDay_DifferentDaysDoNotCombine(t *testing.T) {
	facts := &fakeFacts{days: []DayRecord{
		{TaskID: "A", Date: "2024-06-13", Count: 1},
		{TaskID: "B", Date: "2024-06-14", Count: 1},
		{TaskID: "C", Date: "2024-06-15", Count: 1},
		{TaskID: "C", Date: "2024-06-14", Count: 0},
	}}

	res := evaluate(t, achievement.MultiHabitSameDay{Habits: 2}, achievement.EvaluationContext{}, facts)
	if res.Satisfied {
		t.Error("completions on separate days combined")
	}
}

func TestMultiHabitStreak(t *testing.T) {
	var days []DayRecord
	for _, task := range []string{"a", "b", "c"} {
		days = append(days, streakDays(task, "2024-06-15", 4, "10:00")...)
	}
	days = append(days, streakDays("d", "2024-06-11", 1, "10:00")...)
	facts := &fakeFacts{days: days}
	ec := achievement.EvaluationContext{Date: "2024-06-15"}

	if res := evaluate(t, achievement.MultiHabitStreak{Habits: 3, Days: 4}, ec, facts); !res.Satisfied {
		t.Error("3 habits for 4 days not satisfied")
	}
	res := evaluate(t, achievement.MultiHabitStreak{Habits: 3, Days: 5}, ec, facts)
	if res.Satisfied {
		t.Error("fifth day only has 1 habit")
	}
	assertProgress(t, res, 4, 5)
}

func TestStreakRecovery(t *testing.T) {
	lost := streakDays("a", "2024-05-20", 10, "08:00")  // 10-day run, then a gap
	rebuilt := streakDays("a", "2024-06-15", 7, "08:00") // rebuilt run ending today
	ec := achievement.EvaluationContext{Date: "2024-06-15"}
	cond := achievement.StreakRecovery{MinLostStreak: 7, Threshold: 7}

	res := evaluate(t, cond, ec, &fakeFacts{days: append(lost, rebuilt...)})
	if !res.Satisfied {
		t.Error("rebuilt 7 after losing 10 not satisfied")
	}

	res = evaluate(t, cond, ec, &fakeFacts{days: append(lost, streakDays("a", "2024-06-15", 4, "08:00")...)})
	if res.Satisfied {
		t.Error("rebuilt only 4 days")
	}
	assertProgress(t, res, 4, 7)

	short := streakDays("a", "2024-05-20", 3, "08:00")
	res = evaluate(t, cond, ec, &fakeFacts{days: append(short, rebuilt...)})
	if res.Satisfied {
		t.Error("lost streak was shorter than the minimum")
	}

	res = evaluate(t, cond, ec, &fakeFacts{days: streakDays("a", "2024-06-15", 20, "08:00")})
	if res.Satisfied {
		t.Error("an unbroken streak is not a recovery")
	}
	assertProgress(t, res, 0, 7)
}

func TestStreakRecovery_IsPerHabit(t *testing.T) {
	days := append(streakDays("a", "2024-05-20", 10, "08:00"), streakDays("b", "2024-06-15", 7, "08:00")...)

	res := evaluate(t, achievement.StreakRecovery{MinLostStreak: 7, Threshold: 7}, achievement.EvaluationContext{Date: "2024-06-15"}, &fakeFacts{days: days})
	if res.Satisfied {
		t.Error("another habit's streak counted as a recovery")
	}
}

func TestWeekendStreak(t *testing.T) {
	// 2024-06-15 is a Saturday.
	weekend := func(sat string) []DayRecord {
		return []DayRecord{
			{TaskID: "a", Date: sat, Count: 1},
			{TaskID: "a", Date: addDays(sat, 1), Count: 1},
		}
	}
	var days []DayRecord
	days = append(days, weekend("2024-06-01")...)
	days = append(days, weekend("2024-06-08")...)
	days = append(days, DayRecord{TaskID: "a", Date: "2024-06-15", Count: 1})
	facts := &fakeFacts{days: days}
	cond := achievement.WeekendStreak{Weekends: 2}

	res := evaluate(t, cond, achievement.EvaluationContext{Date: "2024-06-15"}, facts)
	if !res.Satisfied {
		t.Error("in-progress weekend should not break the previous two")
	}
	assertProgress(t, res, 2, 2)

	res = evaluate(t, cond, achievement.EvaluationContext{Date: "2024-06-12"}, facts)
	if !res.Satisfied {
		t.Error("midweek evaluation should see the last two weekends")
	}

	facts.days = append(facts.days, DayRecord{TaskID: "b", Date: "2024-06-16", Count: 1})
	res = evaluate(t, achievement.WeekendStreak{Weekends: 3}, achievement.EvaluationContext{Date: "2024-06-16"}, facts)
	if !res.Satisfied {
		t.Error("three complete weekends not satisfied")
	}
}

func TestWeekendStreak_HalfWeekendDoesNotCount(t *testing.T) {
	facts := &fakeFacts{days: []DayRecord{{TaskID: "a", Date: "2024-06-08", Count: 1}}}

	res := evaluate(t, achievement.WeekendStreak{Weekends: 1}, achievement.EvaluationContext{Date: "2024-06-12"}, facts)
	if res.Satisfied {
		t.Error("Saturday alone counted as a weekend")
	}
	assertProgress(t, res, 0, 1)
}

func TestEvaluate_FactsErrorIsReturned(t *testing.T) {
	boom := errors.New("storage unreachable")
	facts := &fakeFacts{err: boom}

	for _, cond := range []achievement.Condition{
		achievement.TaskCount{Threshold: 1},
		achievement.MultiHabitSameDay{Habits: 2},
		achievement.FirstAction{Action: achievement.ActionCustomizeHabit},
	} {
		ec := achievement.EvaluationContext{Trigger: achievement.TriggerHabitCustomized}
		_, err := Evaluate(cond, ec, facts, fixedNow)
		if !errors.Is(err, boom) {
			t.Errorf("%s: err = %v, want wrapped %v", cond.Type(), err, boom)
		}
	}
}

func TestEvaluate_InvalidDate(t *testing.T) {
	_, err := Evaluate(achievement.TaskCount{Threshold: 1}, achievement.EvaluationContext{Date: "15/06/2024"}, &fakeFacts{}, fixedNow)
	if err == nil {
		t.Error("invalid date accepted")
	}
}

func TestEvaluate_UnsupportedCondition(t *testing.T) {
	_, err := Evaluate(nil, achievement.EvaluationContext{}, &fakeFacts{}, fixedNow)
	if !errors.Is(err, ErrUnsupportedCondition) {
		t.Errorf("err = %v, want ErrUnsupportedCondition", err)
	}
}

func TestEvaluate_EveryCatalogConditionHasAnEvaluator(t *testing.T) {
	for _, d := range achievement.DefaultCatalog() {
		_, err := Evaluate(d.Condition, achievement.EvaluationContext{Trigger: achievement.TriggerAppOpened}, &fakeFacts{}, fixedNow)
		if err != nil {
			t.Errorf("%s (%s): %v", d.ID, d.Condition.Type(), err)
		}
	}
}
