package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nextchapter/internal/cli"
	"nextchapter/internal/config"
	"nextchapter/internal/errors"
)

func main() {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logging
	logger, err := errors.New(cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Overlay secrets from Vault when enabled
	if err := config.ApplyVaultSecrets(cfg, logger); err != nil {
		logger.LogError(err, "Failed to load secrets from Vault")
		os.Exit(1)
	}

	// Log startup
	logger.Info("Starting nextchapter application",
		"version", cli.Version,
		"log_level", cfg.App.LogLevel,
		"gateway", cfg.Gateway.BaseURL)

	// Execute command with cancellable context
	if err := cli.Execute(ctx, cfg, logger); err != nil {
		logger.LogError(err, "Command failed")
		fmt.Fprintln(os.Stderr, errors.UserMessage(err, cfg.App.DebugErrors))
		os.Exit(1)
	}
}
