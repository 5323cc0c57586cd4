package main

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/app"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/app/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront cart service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newCartCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.MustLoad()

	appLogger, err := app.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = appLogger.Sync() }()
	appLogger.Info("Logger initialized")

	application, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Errorf("Failed to initialize application: %v", err)
		return err
	}

	application.Run()
	return nil
}
