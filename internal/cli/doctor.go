package cli

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/milestone/internal/config"
	"github.com/example/milestone/internal/core/achievement"
	"github.com/example/milestone/internal/core/grid"
	"github.com/example/milestone/internal/db"
	"github.com/example/milestone/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate configuration, catalog and database",
		Long: `Health check for milestone.

Validates:
- Configuration (config.yaml, timezone, log level)
- Achievement catalog (references, conditions, prerequisite cycles)
- Database reachability and schema version

Examples:
  milestone doctor              # Run full health check
  milestone doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			results := []CheckResult{
				checkConfig(cfg),
				checkCatalog(achievement.DefaultCatalog(), cfg.StarterID),
				checkDatabase(cfg.DBPath()),
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Check              Status")
				fmt.Fprintln(out, "─────────────────────────")
				for _, r := range results {
					fmt.Fprintf(out, "%-18s %s\n", r.Name, r.Status)
				}
				fmt.Fprintln(out)

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Fprintln(out, "Details:")
							hasDetails = true
						}
						fmt.Fprintf(out, "\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if !hasErrors {
					fmt.Fprintln(out, "All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// checkConfig re-validates the loaded configuration
func checkConfig(cfg *config.Config) CheckResult {
	if err := cfg.Validate(); err != nil {
		return CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()}
	}
	return CheckResult{Name: "Config", Status: "✓"}
}

// checkCatalog validates the achievement catalog and reports achievements
// that prerequisite cycles lock forever
func checkCatalog(defs []achievement.Definition, starterID string) CheckResult {
	registry, err := achievement.NewRegistry(defs)
	if err != nil {
		return CheckResult{Name: "Catalog", Status: "✗", Details: "  " + err.Error()}
	}
	if _, ok := registry.Get(starterID); !ok {
		return CheckResult{Name: "Catalog", Status: "✗", Details: fmt.Sprintf("  Starter achievement %s is not in the catalog", starterID)}
	}

	if unreachable := registry.Unreachable(); len(unreachable) > 0 {
		return CheckResult{
			Name:    "Catalog",
			Status:  "⚠",
			Details: "  Locked forever by prerequisite cycles: " + strings.Join(unreachable, ", "),
		}
	}

	cfg := grid.ConfigFor(registry.Len())
	return CheckResult{Name: "Catalog", Status: "✓", Details: fmt.Sprintf("  %d achievements, grid tier %d (%dx%d)", registry.Len(), cfg.Version, cfg.Size, cfg.Size)}
}

// checkDatabase opens the database and compares its schema version
func checkDatabase(path string) CheckResult {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{
			Name:    "Database",
			Status:  "⚠",
			Details: fmt.Sprintf("  %s does not exist yet; it is created on first use", path),
		}
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	defer conn.Close()

	return checkSchema(conn)
}

func checkSchema(conn *sql.DB) CheckResult {
	if err := conn.Ping(); err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  Cannot connect: " + err.Error()}
	}

	current, err := db.CurrentVersion(conn)
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	if latest := db.LatestVersion(); current < latest {
		return CheckResult{
			Name:    "Database",
			Status:  "⚠",
			Details: fmt.Sprintf("  Schema version %d, latest %d; pending migrations run on next use", current, latest),
		}
	}
	return CheckResult{Name: "Database", Status: "✓"}
}
