package cmd

import (
	"context"
	"fmt"

	"talentbridge_backend/internal/repository"
	"talentbridge_backend/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Prepare the configured store and exit",
	Long:  "Creates the key/value table for sqlite and mysql, or the bucket for minio, then checks the store answers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defer logger.Log.Sync()

		ctx := context.Background()
		// Opening a store runs its schema setup.
		store, err := repository.OpenStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Ping(ctx); err != nil {
			return fmt.Errorf("ping %s store: %w", cfg.Storage.Type, err)
		}

		logger.Log.Info("Store ready", zap.String("type", cfg.Storage.Type))
		fmt.Fprintf(cmd.OutOrStdout(), "%s store ready\n", cfg.Storage.Type)
		return nil
	},
}
