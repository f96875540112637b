package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/milestone/internal/wire"
)

// HabitCmd returns the habit command with all subcommands attached.
func HabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "habit",
		Aliases: []string{"habits"},
		Short:   "Track habits",
		Long:    "Create, complete, archive and customize habits. Every change re-evaluates achievements.",
	}

	cmd.AddCommand(habitAddCmd())
	cmd.AddCommand(habitDoneCmd())
	cmd.AddCommand(habitArchiveCmd())
	cmd.AddCommand(habitCustomizeCmd())
	cmd.AddCommand(habitListCmd())
	return cmd
}

func habitAddCmd() *cobra.Command {
	var icon, color string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a new habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.HabitAdapter().Add(NewContext(), args[0], icon, color)
		},
	}

	cmd.Flags().StringVar(&icon, "icon", "", "Emoji shown next to the habit")
	cmd.Flags().StringVar(&color, "color", "", "Display color")
	return cmd
}

func habitDoneCmd() *cobra.Command {
	var date, at string

	cmd := &cobra.Command{
		Use:   "done [habit-id]",
		Short: "Record a completion",
		Long: `Record a completion for a habit.

Examples:
  milestone habit done 3f2a...                       # now
  milestone habit done 3f2a... --date 2026-03-09     # backfill yesterday
  milestone habit done 3f2a... --time 06:15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.HabitAdapter().Done(NewContext(), args[0], date, at)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Completion date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&at, "time", "", "Completion time (HH:MM, default now)")
	return cmd
}

func habitArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive [habit-id]",
		Short: "Archive a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.HabitAdapter().Archive(NewContext(), args[0])
		},
	}
}

func habitCustomizeCmd() *cobra.Command {
	var name, icon, color string

	cmd := &cobra.Command{
		Use:   "customize [habit-id]",
		Short: "Change a habit's name, icon or color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.HabitAdapter().Customize(NewContext(), args[0], name, icon, color)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&icon, "icon", "", "New icon")
	cmd.Flags().StringVar(&color, "color", "", "New color")
	return cmd
}

func habitListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habits with their streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.HabitAdapter().List(NewContext(), all)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include archived habits")
	return cmd
}
