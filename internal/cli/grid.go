package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/milestone/internal/wire"
)

// GridCmd returns the grid command with all subcommands attached.
func GridCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Show the achievement grid",
		Long: `The achievement grid places every achievement on a square board.
Unlocking an achievement reveals its orthogonal neighbours.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.GridAdapter().Show(NewContext())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Render the grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.GridAdapter().Show(NewContext())
		},
	})
	cmd.AddCommand(gridResetCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "upgrade",
		Short: "Grow the grid to fit new achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.GridAdapter().Upgrade(NewContext())
		},
	})
	return cmd
}

func gridResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Shuffle the grid with a new seed",
		Long:  "Generate a new layout from a fresh seed. Unlocked achievements stay unlocked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirm(cmd, "This will reshuffle your grid.") {
				fmt.Println("Aborted.")
				return nil
			}
			return wire.GridAdapter().Reset(NewContext())
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}
