package cmd

import (
	"context"

	"talentbridge_backend/internal/app"
	"talentbridge_backend/internal/repository"
	"talentbridge_backend/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Log.Sync()

	store, err := repository.OpenStore(context.Background(), cfg)
	if err != nil {
		logger.Log.Error("Failed to open store", zap.String("type", cfg.Storage.Type), zap.Error(err))
		return err
	}

	application, err := app.NewApp(cfg, store)
	if err != nil {
		store.Close()
		return err
	}
	return application.Run()
}
