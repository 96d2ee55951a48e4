package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tierview/tierview/internal/logger"
	"github.com/tierview/tierview/internal/web"
	"github.com/tierview/tierview/pkg/browse"
	"github.com/tierview/tierview/pkg/config"
)

var demoNamespace bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the console HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&demoNamespace, "demo", false,
		"Seed a small demo namespace on startup (memory stores only)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	configureLogger(&cfg.Logging)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("TierView starting")
	logger.Info("  Metadata store: %s", cfg.Metadata.Type)
	logger.Info("  Content store: %s", cfg.Content.Type)
	logger.Info("  Tiers: %v", cfg.Tiers)

	metaStore, err := config.CreateMetadataStore(ctx, &cfg.Metadata)
	if err != nil {
		return fmt.Errorf("failed to create metadata store: %w", err)
	}
	defer func() {
		if err := metaStore.Close(); err != nil {
			logger.Warn("Failed to close metadata store: %v", err)
		}
	}()

	contentStore, err := config.CreateContentStore(ctx, &cfg.Content)
	if err != nil {
		return fmt.Errorf("failed to create content store: %w", err)
	}

	if demoNamespace {
		if err := seedDemoNamespace(ctx, metaStore, contentStore, cfg.Tiers); err != nil {
			return fmt.Errorf("failed to seed demo namespace: %w", err)
		}
		logger.Info("Demo namespace seeded")
	}

	browser := browse.New(browse.Options{
		Meta:               metaStore,
		Content:            contentStore,
		Backing:            contentStore,
		WorkerWebPort:      cfg.Server.WorkerWebPort,
		TierAliases:        cfg.Tiers,
		PreviewWindowBytes: int64(cfg.Preview.WindowBytes),
	})

	server := web.NewServer(web.Options{
		ListenAddr:      cfg.Server.ListenAddr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Browser:         browser,
	})

	logger.Info("Console is running on %s. Press Ctrl+C to stop.", cfg.Server.ListenAddr)
	return server.Run(ctx)
}

// configureLogger applies the logging section to the process-wide logger.
func configureLogger(cfg *config.LoggingConfig) {
	logger.SetLevel(cfg.Level)
	logger.SetFormat(cfg.Format)

	switch cfg.Output {
	case "stdout", "":
		logger.SetOutput(os.Stdout)
	case "stderr":
		logger.SetOutput(os.Stderr)
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger.Warn("Failed to open log file %s, falling back to stdout: %v", cfg.Output, err)
			return
		}
		logger.SetOutput(file)
	}
}
