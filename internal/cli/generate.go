package cli

import (
	"context"
	"fmt"
	"time"

	"nextchapter/internal/common"
	"nextchapter/internal/observability"
	"nextchapter/internal/render"
	"nextchapter/internal/workflow"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [profile-file]",
	Short: "Save a profile and generate the resume PDF",
	Long: `Run the full PDF workflow for a client: save the profile, create or
reuse the resume record, generate the PDF on the gateway, and download it.
When the gateway returns printable HTML instead of a PDF the file is printed
locally through headless Chrome, or saved as HTML with printing instructions
when that is unavailable.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if generateConfig.OutputFormat == "" {
			generateConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(generateConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runGenerate,
}

var (
	generateConfig   common.CommandConfig
	generateTemplate string
	generateClientID string
	generateFirst    string
	generateLast     string
	generateForceNew bool
	generateOutDir   string
)

func init() {
	generateCmd.Flags().StringVarP(&generateConfig.OutputFile, "output", "o", "", "Result summary file path (default: stdout)")
	generateCmd.Flags().StringVar(&generateConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	generateCmd.Flags().StringVarP(&generateTemplate, "template", "t", render.DefaultTemplateID, "Template id (see the templates command)")
	generateCmd.Flags().StringVar(&generateClientID, "client", "", "Client id to generate for")
	generateCmd.Flags().StringVar(&generateFirst, "guest-first", "", "Guest first name")
	generateCmd.Flags().StringVar(&generateLast, "guest-last", "", "Guest last name")
	generateCmd.Flags().BoolVar(&generateForceNew, "force-new", false, "Always create a new resume record instead of reusing one")
	generateCmd.Flags().StringVar(&generateOutDir, "out-dir", "", "Directory for the downloaded file (default from config)")

	_ = generateCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	fp := common.NewFileProcessor(logger)

	profile, err := fp.LoadProfile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	gw := newGatewayClient(cmd.Context())
	session, err := resolveSession(cmd.Context(), gw, generateClientID, generateFirst, generateLast)
	if err != nil {
		return err
	}

	pdfCfg := cfg.PDF
	if generateForceNew {
		pdfCfg.ForceNew = true
	}
	if generateOutDir != "" {
		pdfCfg.OutputDir = generateOutDir
	}

	om, err := observability.NewObservabilityManager(observability.GetObservabilityConfig(cfg, Version))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := om.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Failed to shutdown observability", "error", err)
		}
	}()

	wf := workflow.New(gw, &pdfCfg, workflow.NewClientLocks(), logger,
		workflow.WithStateObserver(func(s workflow.State) {
			logger.Info("Workflow step", "state", string(s))
		}),
	)

	err = common.RunGatewayCommand(
		cmd.Context(),
		logger,
		generateConfig,
		func(ctx context.Context) (*workflow.Result, error) {
			tracer := om.Tracer("nextchapter.workflow")
			ctx, span := tracer.Start(ctx, "workflow.generate")
			defer span.End()

			start := time.Now()
			result, err := wf.Generate(ctx, session, profile, generateTemplate)
			reused, printed := false, false
			if result != nil {
				reused, printed = result.ReusedResume, result.PrintedLocally
			}
			om.RecordGeneration(ctx, time.Since(start), reused, printed, err)
			return result, err
		},
	)
	if err != nil {
		return fmt.Errorf("failed to generate resume: %w", err)
	}
	logger.Info("Resume generation completed successfully")
	return nil
}
