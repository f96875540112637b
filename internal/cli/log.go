package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/milestone/internal/ports/primary"
	"github.com/example/milestone/internal/wire"
)

// LogCmd returns the log command with all subcommands attached.
func LogCmd() *cobra.Command {
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "View achievement activity logs",
		Long:  "View the audit trail of unlocks, grid changes and habit edits",
	}

	tailCmd := &cobra.Command{
		Use:   "tail",
		Short: "Show recent activity",
		Long:  "Show recent activity log entries (default 50)",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			entityType, _ := cmd.Flags().GetString("type")
			action, _ := cmd.Flags().GetString("action")

			if limit <= 0 {
				limit = 50
			}

			entries, err := wire.LogService().ListLogs(NewContext(), primary.LogFilters{
				EntityType: entityType,
				Action:     action,
				Limit:      limit,
			})
			if err != nil {
				return fmt.Errorf("failed to fetch logs: %w", err)
			}

			printLogEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	tailCmd.Flags().IntP("limit", "n", 50, "Number of entries to show")
	tailCmd.Flags().String("type", "", "Filter by entity type (achievement, grid, habit)")
	tailCmd.Flags().String("action", "", "Filter by action (create, update, delete)")

	showCmd := &cobra.Command{
		Use:   "show <entity-id>",
		Short: "Show activity for a specific entity",
		Long:  "Show activity history for a specific entity (e.g., streak_7, grid, a habit id)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			entries, err := wire.LogService().ListLogs(NewContext(), primary.LogFilters{
				EntityID: args[0],
				Limit:    limit,
			})
			if err != nil {
				return fmt.Errorf("failed to fetch logs: %w", err)
			}

			printLogEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	showCmd.Flags().IntP("limit", "n", 100, "Maximum entries to show")

	logCmd.AddCommand(tailCmd)
	logCmd.AddCommand(showCmd)

	return logCmd
}

func printLogEntries(w io.Writer, entries []*primary.LogEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No log entries found.")
		return
	}

	fmt.Fprintf(w, "Found %d log entries:\n\n", len(entries))

	// Oldest first
	for i := len(entries) - 1; i >= 0; i-- {
		printLogEntry(w, entries[i])
	}
}

func printLogEntry(w io.Writer, entry *primary.LogEntry) {
	// Format: timestamp | action | entity_type/entity_id | field changes
	fmt.Fprintf(w, "%s | %s %-6s | %s/%s",
		formatTimestamp(entry.Timestamp),
		getActionIcon(entry.Action),
		entry.Action,
		entry.EntityType,
		entry.EntityID,
	)

	if entry.Action == "update" && entry.FieldName != "" {
		fmt.Fprintf(w, " | %s: %s -> %s", entry.FieldName, entry.OldValue, entry.NewValue)
	}

	fmt.Fprintln(w)
}

func getActionIcon(action string) string {
	switch action {
	case "create":
		return "+"
	case "update":
		return "~"
	case "delete":
		return "-"
	default:
		return "?"
	}
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
