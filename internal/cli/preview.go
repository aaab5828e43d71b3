package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"nextchapter/internal/common"
	"nextchapter/internal/errors"
	"nextchapter/internal/preview"
	"nextchapter/internal/render"
	"nextchapter/internal/workflow"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview [profile-file]",
	Short: "Live-render a profile file as it changes",
	Long: `Watch a profile file and re-render the resume preview whenever the
file is saved. Renders are debounced so rapid editor saves produce one
render. The preview is written to the output file on every render; point a
browser at it and reload to follow along.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

var (
	previewOutput   string
	previewTemplate string
	previewClientID string
	previewFirst    string
	previewLast     string
)

func init() {
	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "preview.html", "Output file rewritten on every render")
	previewCmd.Flags().StringVarP(&previewTemplate, "template", "t", render.DefaultTemplateID, "Template id (see the templates command)")
	previewCmd.Flags().StringVar(&previewClientID, "client", "", "Client id to render for")
	previewCmd.Flags().StringVar(&previewFirst, "guest-first", "", "Guest first name")
	previewCmd.Flags().StringVar(&previewLast, "guest-last", "", "Guest last name")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	fp := common.NewFileProcessor(logger)
	profilePath := args[0]

	profile, err := fp.LoadProfile(profilePath)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	gw := newGatewayClient(cmd.Context())
	session, err := resolveSession(cmd.Context(), gw, previewClientID, previewFirst, previewLast)
	if err != nil {
		return err
	}
	if session.EffectiveClient() == nil {
		return errors.NewPreconditionError(errors.ErrCodeNoActiveClient,
			"Select a client with --client or set both guest name flags", nil)
	}

	// Edits to a selected client's profile are auto-saved to the gateway in
	// the background; guest-mode edits stay local.
	var autosaver *workflow.Autosaver
	if cfg.Autosave.Enabled && previewClientID != "" {
		autosaver = workflow.NewAutosaver(gw, &cfg.Autosave, workflow.NewClientLocks(), logger)
		defer func() {
			// The command context is already canceled on Ctrl-C, so the
			// final flush gets its own deadline.
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			autosaver.Flush(flushCtx)
			autosaver.Close()
		}()
	}

	controller := preview.NewController(session,
		preview.WithDebounce(cfg.Preview.Debounce),
		preview.WithRenderObserver(func(markup string, token uint64) {
			if err := fp.WriteFile(previewOutput, markup); err != nil {
				logger.LogError(err, "Failed to write preview output")
				return
			}
			logger.Info("Preview rendered", "file", previewOutput, "render", token)
		}),
	)
	defer controller.Close()

	controller.SetTemplate(previewTemplate)
	controller.SetProfile(profile)

	// Watch the directory rather than the file so editor save-by-rename
	// does not drop the watch.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logger.Warn("Failed to close file watcher", "error", err)
		}
	}()

	dir := filepath.Dir(profilePath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	logger.Info("Watching profile file",
		"file", profilePath, "output", previewOutput, "template", previewTemplate)

	target := filepath.Clean(profilePath)
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			updated, err := fp.LoadProfile(profilePath)
			if err != nil {
				logger.Warn("Skipping unreadable profile update", "error", err.Error())
				continue
			}
			controller.SetProfile(updated)
			if autosaver != nil {
				autosaver.ProfileChanged(session, updated)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error", "error", err.Error())
		}
	}
}
