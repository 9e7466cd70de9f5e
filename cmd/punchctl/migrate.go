package main

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/cmlabs-hris/punchclock-backend-go/internal/domain/tracking"
	"github.com/cmlabs-hris/punchclock-backend-go/internal/repository/postgresql"
	"github.com/spf13/cobra"
)

var migrateModesDryRun bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database schema migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

var migrateModesCmd = &cobra.Command{
	Use:   "migrate-modes",
	Short: "Move projects off retired tracking modes",
	Long: `migrate-modes rewrites every project still configured with a retired
tracking mode (for example WITH_HOTEL) to the mode that replaced it
(CLIENT_WITH_HOTEL). All renames run in one transaction.`,
	Args: cobra.NoArgs,
	RunE: runMigrateModes,
}

func init() {
	migrateModesCmd.Flags().BoolVar(&migrateModesDryRun, "dry-run", false, "Only report how many projects would change")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	_, db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := postgresql.Migrate(ctx, db)
	if err != nil {
		return err
	}

	if len(applied) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
		return nil
	}
	for _, name := range applied {
		fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
	}
	return nil
}

func runMigrateModes(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	_, db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	projectRepo := postgresql.NewProjectRepository(db)
	transactor := postgresql.NewTransactor(db)

	// stable output order
	retired := slices.Sorted(maps.Keys(tracking.RenamedModes))

	if migrateModesDryRun {
		for _, from := range retired {
			count, err := projectRepo.CountByTrackingMode(ctx, from)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %d project(s) would be updated\n", from, tracking.RenamedModes[from], count)
		}
		return nil
	}

	updated := make(map[tracking.Mode]int64, len(retired))
	err = transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, from := range retired {
			n, err := projectRepo.ReplaceTrackingMode(ctx, from, tracking.RenamedModes[from])
			if err != nil {
				return fmt.Errorf("failed to migrate %s: %w", from, err)
			}
			updated[from] = n
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, from := range retired {
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %d project(s) updated\n", from, tracking.RenamedModes[from], updated[from])
	}
	return nil
}
