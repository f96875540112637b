package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/milestone/internal/core/achievement"
	"github.com/example/milestone/internal/ports/primary"
	"github.com/example/milestone/internal/wire"
)

// AchievementsCmd returns the achievements command with all subcommands attached.
func AchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "achievements",
		Aliases: []string{"ach"},
		Short:   "Browse achievements",
	}

	cmd.AddCommand(achievementsListCmd())
	cmd.AddCommand(achievementsShowCmd())
	cmd.AddCommand(achievementsViewCmd())
	return cmd
}

func achievementsListCmd() *cobra.Command {
	var category string
	var unlocked, locked bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List achievements with unlock state and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			if unlocked && locked {
				return fmt.Errorf("--unlocked and --locked are mutually exclusive")
			}
			return wire.AchievementAdapter().List(NewContext(), primary.AchievementFilters{
				Category:     category,
				UnlockedOnly: unlocked,
				LockedOnly:   locked,
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Filter by category")
	cmd.Flags().BoolVar(&unlocked, "unlocked", false, "Only unlocked achievements")
	cmd.Flags().BoolVar(&locked, "locked", false, "Only locked achievements")
	return cmd
}

func achievementsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [achievement-id]",
		Short: "Show achievement details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.AchievementAdapter().Show(NewContext(), args[0])
			return err
		},
	}
}

func achievementsViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [achievement-id]",
		Short: "Mark an unlocked achievement as seen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.AchievementAdapter().View(NewContext(), args[0])
		},
	}
}

// EvaluateCmd returns the evaluate command.
func EvaluateCmd() *cobra.Command {
	var trigger, taskID, date, at string
	var count int

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run an achievement evaluation cycle",
		Long: `Run one unlock cycle for a trigger. Habit commands do this automatically;
use this to re-check achievements, e.g. on app start.

Triggers: habit_completed, streak_updated, habit_created, habit_customized, app_opened`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := achievement.ParseTrigger(trigger)
			if err != nil {
				return err
			}
			return wire.AchievementAdapter().Evaluate(NewContext(), achievement.EvaluationContext{
				Trigger:   t,
				TaskID:    taskID,
				Date:      date,
				Count:     count,
				TimeOfDay: at,
			})
		},
	}

	cmd.Flags().StringVarP(&trigger, "trigger", "t", string(achievement.TriggerAppOpened), "Trigger kind")
	cmd.Flags().StringVar(&taskID, "habit", "", "Habit the trigger refers to")
	cmd.Flags().StringVar(&date, "date", "", "Reference date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&count, "count", 0, "Completions on the reference date")
	cmd.Flags().StringVar(&at, "time", "", "Time of day (HH:MM)")
	return cmd
}
