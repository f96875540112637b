package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/example/milestone/internal/cli"
	"github.com/example/milestone/internal/version"
	"github.com/example/milestone/internal/wire"
)

func main() {
	var (
		opts        wire.Options
		showMetrics bool
	)

	rootCmd := &cobra.Command{
		Use:     "milestone",
		Short:   "milestone - achievements for your habits",
		Version: version.String(),
		Long: `milestone tracks daily habits and unlocks achievements as streaks and
totals grow. Achievements sit on a grid that reveals itself as you unlock
neighbouring cells.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			wire.Configure(opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "Data directory (default $MILESTONE_HOME or ~/.milestone)")
	rootCmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "Database path (default <data-dir>/milestone.db)")
	rootCmd.PersistentFlags().StringVar(&opts.UserID, "user", "", "User to act as (default from config)")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "Print engine metrics after the command")

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.HabitCmd())
	rootCmd.AddCommand(cli.AchievementsCmd())
	rootCmd.AddCommand(cli.GridCmd())
	rootCmd.AddCommand(cli.EvaluateCmd())
	rootCmd.AddCommand(cli.LogCmd())
	rootCmd.AddCommand(cli.MetricsCmd())

	// Developer tools
	rootCmd.AddCommand(cli.DevCmd())

	err := rootCmd.Execute()
	if showMetrics {
		_ = cli.DumpMetrics(os.Stderr, prometheus.DefaultGatherer, false)
	}
	wire.Shutdown()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
