package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/milestone/internal/config"
	"github.com/example/milestone/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var timezone string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the milestone data directory",
		Long: `Write config.yaml to the data directory (default ~/.milestone) and create
the database with the required schema. An existing config.yaml is kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			path := filepath.Join(cfg.DataDir, "config.yaml")

			if _, err := os.Stat(path); os.IsNotExist(err) {
				if timezone != "" {
					cfg.Timezone = timezone
				}
				if err := cfg.Validate(); err != nil {
					return err
				}
				if err := config.SaveConfig(cfg); err != nil {
					return err
				}
				fmt.Printf("✓ Wrote %s\n", path)
			} else {
				fmt.Printf("✓ Using existing %s\n", path)
			}

			// Opening the database applies the schema.
			_ = wire.Database()
			fmt.Printf("✓ Database ready at %s\n", cfg.DBPath())

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  milestone habit add \"Meditate\"")
			fmt.Println("  milestone grid")
			return nil
		},
	}

	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone for day boundaries (default: system local)")
	return cmd
}
