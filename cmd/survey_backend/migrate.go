package main

import (
	"errors"
	"fmt"

	"github.com/SscSPs/survey_workspace_app/internal/platform/config"
	"github.com/SscSPs/survey_workspace_app/internal/platform/logger"
	"github.com/SscSPs/survey_workspace_app/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			logger.Setup(cfg)
			if cfg.DatabaseURL == "" {
				return errors.New("PGSQL_URL is required to run migrations")
			}
			return database.Migrate(cmd.Context(), cfg.DatabaseURL, cfg.MigrationsPath, database.Direction(args[0]))
		},
	}
}
