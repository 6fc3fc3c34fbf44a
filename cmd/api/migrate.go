package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tunebox/tunebox/internal/migrations"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Run schema migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(migrations.Up), string(migrations.Down), string(migrations.Status)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, logger, db, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			dir := migrations.Direction(args[0])
			if err := migrations.Run(ctx, db, dir); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info("migrations finished", "direction", string(dir))
			return nil
		},
	}
}
