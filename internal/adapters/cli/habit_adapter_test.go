package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/milestone/internal/ports/primary"
)

func TestHabitAdapter_Add(t *testing.T) {
	habits := &mockHabitService{createFn: func(ctx context.Context, req primary.CreateHabitRequest) (*primary.HabitResponse, error) {
		return &primary.HabitResponse{
			Habit:         &primary.Habit{ID: "h-1", Name: req.Name, Icon: req.Icon},
			NewlyUnlocked: []string{"first_habit"},
		}, nil
	}}
	out := &bytes.Buffer{}
	adapter := NewHabitAdapter(habits, &mockAchievementService{}, out)

	if err := adapter.Add(context.Background(), "Meditate", "🧘", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "✓ Created habit h-1: 🧘 Meditate") {
		t.Errorf("unexpected output:\n%s", output)
	}
	if !strings.Contains(output, "Achievement unlocked: 🏅 Name of first_habit") {
		t.Errorf("expected unlock announcement, got:\n%s", output)
	}
	if habits.lastCreate.Icon != "🧘" {
		t.Errorf("expected icon to be passed through, got %q", habits.lastCreate.Icon)
	}
}

func TestHabitAdapter_AddError(t *testing.T) {
	habits := &mockHabitService{createFn: func(ctx context.Context, req primary.CreateHabitRequest) (*primary.HabitResponse, error) {
		return nil, errors.New(`habit "Meditate" already exists (h-1)`)
	}}
	adapter := NewHabitAdapter(habits, &mockAchievementService{}, &bytes.Buffer{})

	err := adapter.Add(context.Background(), "Meditate", "", "")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected duplicate error, got %v", err)
	}
}

func TestHabitAdapter_Done(t *testing.T) {
	habits := &mockHabitService{completeFn: func(ctx context.Context, req primary.CompleteHabitRequest) (*primary.HabitResponse, error) {
		return &primary.HabitResponse{
			Habit:    &primary.Habit{ID: req.HabitID, Name: "Read", CurrentStreak: 7},
			Warnings: []string{"achievement evaluation failed: boom"},
		}, nil
	}}
	out := &bytes.Buffer{}
	adapter := NewHabitAdapter(habits, &mockAchievementService{}, out)

	if err := adapter.Done(context.Background(), "h-1", "2026-03-09", "07:15"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "✓ Read done (streak: 7 days)") {
		t.Errorf("unexpected output:\n%s", output)
	}
	if !strings.Contains(output, "⚠ achievement evaluation failed: boom") {
		t.Errorf("expected warning, got:\n%s", output)
	}
	if habits.lastDone.Date != "2026-03-09" || habits.lastDone.Time != "07:15" {
		t.Errorf("expected date and time to be passed, got %+v", habits.lastDone)
	}
}

func TestHabitAdapter_List(t *testing.T) {
	habits := &mockHabitService{listFn: func(ctx context.Context, filters primary.HabitFilters) ([]*primary.Habit, error) {
		return []*primary.Habit{
			{ID: "h-1", Name: "Meditate", CurrentStreak: 1, LongestStreak: 21, TotalCompletions: 1200},
			{ID: "h-2", Name: "Floss", Archived: true},
		}, nil
	}}
	out := &bytes.Buffer{}
	adapter := NewHabitAdapter(habits, &mockAchievementService{}, out)

	if err := adapter.List(context.Background(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := out.String()
	for _, want := range []string{"1 day", "21 days", "1,200", "Floss (archived)"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
	if !habits.lastFilters.IncludeArchived {
		t.Error("expected IncludeArchived to be passed")
	}
}

func TestHabitAdapter_ListEmpty(t *testing.T) {
	out := &bytes.Buffer{}
	adapter := NewHabitAdapter(&mockHabitService{}, &mockAchievementService{}, out)

	if err := adapter.List(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No habits found") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestHabitAdapter_Customize(t *testing.T) {
	habits := &mockHabitService{}
	out := &bytes.Buffer{}
	adapter := NewHabitAdapter(habits, &mockAchievementService{}, out)

	if err := adapter.Customize(context.Background(), "h-1", "Long walk", "", "green"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if habits.lastCustom.Color != "green" || habits.lastCustom.Name != "Long walk" {
		t.Errorf("unexpected request: %+v", habits.lastCustom)
	}
	if !strings.Contains(out.String(), "✓ Habit h-1 updated") {
		t.Errorf("unexpected output: %s", out.String())
	}
}
