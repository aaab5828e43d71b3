package cli

import (
	"context"
	"fmt"

	"nextchapter/internal/common"
	"nextchapter/internal/gateway"

	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [resume-id]",
	Short: "Run a gateway optimization pass on a resume",
	Long: `Ask the gateway to run one of its optimization passes over a saved
resume and report the ATS score change. The optimization runs entirely on
the gateway; this command only requests it and prints the result.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if optimizeConfig.OutputFormat == "" {
			optimizeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(optimizeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runOptimize,
}

var (
	optimizeConfig common.CommandConfig
	optimizeType   string
)

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	optimizeCmd.Flags().StringVar(&optimizeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	optimizeCmd.Flags().StringVar(&optimizeType, "type", "keywords", "Optimization type to request")

	_ = optimizeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runOptimize(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())
	gw := newGatewayClient(cmd.Context())

	logger.Info("Requesting resume optimization",
		"resume_id", args[0], "type", optimizeType)

	err := common.RunGatewayCommand(
		cmd.Context(),
		logger,
		optimizeConfig,
		func(ctx context.Context) (*gateway.OptimizeResult, error) {
			return gw.Optimize(ctx, args[0], optimizeType)
		},
	)
	if err != nil {
		return fmt.Errorf("failed to optimize resume: %w", err)
	}
	return nil
}
