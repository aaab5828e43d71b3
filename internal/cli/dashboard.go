package cli

import (
	"fmt"

	"nextchapter/internal/common"
	"nextchapter/internal/dashboard"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [client-id]",
	Short: "Show a client's notes, documents, bookmarks, and resources",
	Long: `Load the four dashboard sources for a client. Each source loads
independently: a failed source falls back to the offline cache when a cached
copy exists, and is marked unavailable otherwise, so one outage never blanks
the whole dashboard.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if dashboardConfig.OutputFormat == "" {
			dashboardConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(dashboardConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runDashboard,
}

var dashboardConfig common.CommandConfig

func init() {
	dashboardCmd.Flags().StringVarP(&dashboardConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	dashboardCmd.Flags().StringVar(&dashboardConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = dashboardCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	gw := newGatewayClient(cmd.Context())

	// Continue without the offline cache rather than failing the whole
	// dashboard when it cannot be opened.
	var cache *dashboard.Cache
	if cfg.Dashboard.CachePath != "" {
		var err error
		cache, err = dashboard.OpenCache(cfg.Dashboard.CachePath)
		if err != nil {
			logger.Warn("Dashboard cache unavailable, loading without offline fallback",
				"path", cfg.Dashboard.CachePath, "error", err.Error())
			cache = nil
		} else {
			defer func() {
				if err := cache.Close(); err != nil {
					logger.Warn("Failed to close dashboard cache", "error", err)
				}
			}()
		}
	}

	loader := dashboard.NewLoader(gw, cache, logger)
	data := loader.Load(cmd.Context(), args[0])

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(data, dashboardConfig); err != nil {
		return fmt.Errorf("failed to write dashboard output: %w", err)
	}
	return nil
}
