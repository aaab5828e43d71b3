package cli

import (
	"context"
	"fmt"

	"nextchapter/internal/common"
	"nextchapter/internal/gateway"
	"nextchapter/internal/viewer"

	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view [resume-id]",
	Short: "View a generated resume",
	Long: `Fetch a generated resume and show it. The structured view prints the
stored record with the client and profile contents; --mode html prints the
formatted markup when the gateway can provide it.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if viewConfig.OutputFormat == "" {
			viewConfig.OutputFormat = cfg.App.DefaultFormat
		}
		if viewMode != string(viewer.ModeStructured) && viewMode != string(viewer.ModeHTML) {
			return fmt.Errorf("invalid mode %q: must be %s or %s", viewMode, viewer.ModeStructured, viewer.ModeHTML)
		}
		return common.ValidateOutputFormat(viewConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runView,
}

var (
	viewConfig common.CommandConfig
	viewMode   string
)

func init() {
	viewCmd.Flags().StringVarP(&viewConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	viewCmd.Flags().StringVar(&viewConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	viewCmd.Flags().StringVar(&viewMode, "mode", string(viewer.ModeStructured), "View mode: structured or html")

	_ = viewCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
	_ = viewCmd.RegisterFlagCompletionFunc("mode", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(viewer.ModeStructured), string(viewer.ModeHTML)}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runView(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())
	gw := newGatewayClient(cmd.Context())

	v := viewer.New(gw, logger)
	content, err := v.Load(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}

	if viewMode == string(viewer.ModeHTML) {
		if err := content.SetMode(viewer.ModeHTML); err != nil {
			return err
		}
		fp := common.NewFileProcessor(logger)
		if viewConfig.OutputFile != "" {
			return fp.WriteFile(viewConfig.OutputFile, content.HTML())
		}
		fmt.Print(content.HTML())
		return nil
	}

	return common.RunGatewayCommand(
		cmd.Context(),
		logger,
		viewConfig,
		func(ctx context.Context) (*gateway.ResumeView, error) {
			return content.Structured(), nil
		},
	)
}
