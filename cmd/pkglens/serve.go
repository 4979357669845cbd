package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pkglens/pkglens/internal/cli/config"
	"github.com/pkglens/pkglens/internal/lsp"
	"github.com/pkglens/pkglens/internal/registry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the language server on stdin/stdout",
	Long: `Start the pkglens language server. The server speaks LSP over stdio and
provides hover tooltips, update code lenses, and registry metadata lookups
for manifest documents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck // stderr sync failure is harmless

		launcher := registry.NewCommandLauncher(cfg.Registry.Command, cfg.Registry.Args, logger)
		client := registry.NewClient(launcher, logger)
		svc := registry.NewService(client, cfg.Registry.DefaultName, logger)

		server := lsp.NewServer(svc, logger)
		return server.Run(context.Background())
	},
}

// newLogger builds a stderr zap logger; stdout belongs to the LSP stream.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
