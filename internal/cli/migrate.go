package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"lomba-poster/internal/config"
	"lomba-poster/internal/db"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}
	cmd.Flags().Bool("status", false, "only report how many migrations are pending")
	return cmd
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("%w: DATABASE_URL", config.ErrMissingConfig)
	}

	database, err := config.NewPostgresDB(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	out := cmd.OutOrStdout()
	pending, err := db.Pending(cmd.Context(), database)
	if err != nil {
		return err
	}

	if status, _ := cmd.Flags().GetBool("status"); status {
		fmt.Fprintf(out, "%d pending migration(s)\n", pending)
		return nil
	}

	if err := db.Migrate(cmd.Context(), database); err != nil {
		return err
	}
	fmt.Fprintf(out, "Applied %d migration(s)\n", pending)
	return nil
}
