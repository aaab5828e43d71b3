package cli

import (
	"context"

	"nextchapter/internal/config"
	"nextchapter/internal/errors"
	"nextchapter/internal/gateway"
	"nextchapter/internal/types"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var rootCmd = &cobra.Command{
	Use:   "nextchapter",
	Short: "Resume builder for case-managed reentry clients",
	Long: `NextChapter is a command-line companion to the case-management gateway.
It renders resume previews locally, drives the save/create/generate/download
workflow for client PDFs, and shows each client's notes, documents, job
bookmarks, and community resources, with an offline cache for field work.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

// newGatewayClient builds the gateway client used by remote commands.
func newGatewayClient(ctx context.Context) *gateway.Client {
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)
	return gateway.NewClient(&cfg.Gateway, &cfg.Observability, logger)
}

// resolveSession builds the session from the --client flag or the guest name
// flags. A client id always wins over guest mode.
func resolveSession(ctx context.Context, gw *gateway.Client, clientID, guestFirst, guestLast string) (*types.Session, error) {
	session := types.NewSession()

	if clientID != "" {
		clients, err := gw.ResumeClients(ctx)
		if err != nil {
			return nil, err
		}
		for i := range clients {
			if clients[i].ClientID == clientID {
				session.SelectClient(&clients[i])
				return session, nil
			}
		}
		return nil, errors.NewValidationError(errors.ErrCodeClientNotFound,
			"No resume-module client with id "+clientID, nil)
	}

	if guestFirst != "" || guestLast != "" {
		session.EnableGuestMode()
		session.SetGuestName(guestFirst, guestLast)
	}

	return session, nil
}

func init() {
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
