package cli

import (
	"context"
	"fmt"

	"nextchapter/internal/common"
	"nextchapter/internal/types"

	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List clients enrolled in the resume module",
	Long: `List the case-managed clients enrolled in the resume module.
Use a client's id with the generate, dashboard, and render commands.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if clientsConfig.OutputFormat == "" {
			clientsConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(clientsConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runClients,
}

var clientsConfig common.CommandConfig

func init() {
	clientsCmd.Flags().StringVarP(&clientsConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	clientsCmd.Flags().StringVar(&clientsConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = clientsCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runClients(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())
	gw := newGatewayClient(cmd.Context())

	err := common.RunGatewayCommand(
		cmd.Context(),
		logger,
		clientsConfig,
		func(ctx context.Context) ([]types.Client, error) {
			return gw.ResumeClients(ctx)
		},
	)
	if err != nil {
		return fmt.Errorf("failed to list clients: %w", err)
	}
	return nil
}
