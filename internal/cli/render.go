package cli

import (
	"fmt"

	"nextchapter/internal/common"
	"nextchapter/internal/errors"
	"nextchapter/internal/render"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [profile-file]",
	Short: "Render a resume preview from a profile file",
	Long: `Render a profile file to resume HTML using one of the built-in
templates. The profile file is the JSON employment profile saved through the
gateway or exported from the builder. Without --client, the guest name flags
supply the header.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var (
	renderConfig   common.CommandConfig
	renderTemplate string
	renderClientID string
	renderFirst    string
	renderLast     string
)

func init() {
	renderCmd.Flags().StringVarP(&renderConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", render.DefaultTemplateID, "Template id (see the templates command)")
	renderCmd.Flags().StringVar(&renderClientID, "client", "", "Client id to render for")
	renderCmd.Flags().StringVar(&renderFirst, "guest-first", "", "Guest first name")
	renderCmd.Flags().StringVar(&renderLast, "guest-last", "", "Guest last name")
}

func runRender(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())
	fp := common.NewFileProcessor(logger)

	profile, err := fp.LoadProfile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	gw := newGatewayClient(cmd.Context())
	session, err := resolveSession(cmd.Context(), gw, renderClientID, renderFirst, renderLast)
	if err != nil {
		return err
	}

	client := session.EffectiveClient()
	if client == nil {
		return errors.NewPreconditionError(errors.ErrCodeNoActiveClient,
			"Select a client with --client or set both guest name flags", nil)
	}

	html := render.Render(client, profile, renderTemplate)

	if renderConfig.OutputFile != "" {
		if err := fp.WriteFile(renderConfig.OutputFile, html); err != nil {
			return err
		}
		logger.Info("Preview written", "file", renderConfig.OutputFile, "template", renderTemplate)
		return nil
	}

	fmt.Print(html)
	return nil
}
