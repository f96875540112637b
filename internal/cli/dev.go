package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/milestone/internal/core/achievement"
	"github.com/example/milestone/internal/db"
	"github.com/example/milestone/internal/wire"
)

// DevCmd returns the dev command group for development utilities.
func DevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "dev",
		Short:  "Development utilities",
		Hidden: true,
		Long: `Development utilities for working with a throwaway milestone database.

Point --db (or --data-dir) at a scratch location before running these.`,
	}

	cmd.AddCommand(devSeedCmd())
	cmd.AddCommand(devResetCmd())
	return cmd
}

func devSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add fixture habits and completions",
		Long: `Insert three fixture habits with a few weeks of completions, then run an
evaluation so the matching achievements unlock.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return seed(cmd)
		},
	}
}

func devResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the database with fresh fixtures",
		Long: `Delete the database and recreate it with fixture data.

This command:
1. Deletes the existing database file
2. Creates a fresh database with the current schema
3. Seeds fixture habits and evaluates achievements`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := wire.Config().DBPath()

			if !force && !confirm(cmd, fmt.Sprintf("This will delete and recreate: %s", dbPath)) {
				fmt.Println("Aborted.")
				return nil
			}

			if err := db.Close(); err != nil {
				return fmt.Errorf("failed to close database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to delete database: %w", err)
			}
			fmt.Printf("✓ Deleted %s\n", dbPath)

			return seed(cmd)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}

func seed(cmd *cobra.Command) error {
	if err := db.SeedFixtures(wire.Database(), wire.Config().UserID, time.Now().In(wire.Location())); err != nil {
		return fmt.Errorf("failed to seed fixtures: %w", err)
	}
	fmt.Println("✓ Seeded 3 habits with completions")

	return wire.AchievementAdapterWithOutput(cmd.OutOrStdout()).Evaluate(NewContext(), achievement.EvaluationContext{
		Trigger: achievement.TriggerAppOpened,
	})
}

// confirm prints prompt and reads a y/N answer from the command's input.
func confirm(cmd *cobra.Command, prompt string) bool {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, prompt)
	fmt.Fprint(out, "Continue? [y/N] ")

	var response string
	fmt.Fscanln(cmd.InOrStdin(), &response)
	response = strings.TrimSpace(response)
	return response == "y" || response == "Y"
}
