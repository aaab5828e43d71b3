// Package viewer loads a saved resume for display. The structured data and
// the server-rendered HTML preview are fetched independently: the viewer is
// usable whenever the structured fetch succeeds, and the HTML mode is simply
// unavailable when the preview fetch fails.
package viewer

import (
	"context"

	"nextchapter/internal/errors"
	"nextchapter/internal/gateway"
)

// ViewMode selects how a loaded resume is presented.
type ViewMode string

const (
	ModeStructured ViewMode = "structured"
	ModeHTML       ViewMode = "html"
)

// Content is a loaded resume. Both representations are fetched once at load
// time; switching modes never refetches.
type Content struct {
	view          *gateway.ResumeView
	html          string
	htmlAvailable bool
	mode          ViewMode
}

// Viewer fetches resumes for display.
type Viewer struct {
	gw     *gateway.Client
	logger *errors.Logger
}

// New creates a viewer.
func New(gw *gateway.Client, logger *errors.Logger) *Viewer {
	return &Viewer{gw: gw, logger: logger}
}

// Load fetches the resume. The structured fetch is required; the HTML
// preview is best-effort and its failure only disables the HTML mode.
func (v *Viewer) Load(ctx context.Context, resumeID string) (*Content, error) {
	view, err := v.gw.ViewResume(ctx, resumeID)
	if err != nil {
		return nil, err
	}

	content := &Content{view: view, mode: ModeStructured}

	html, err := v.gw.PreviewHTML(ctx, resumeID)
	if err != nil {
		if v.logger != nil {
			v.logger.Warn("HTML preview unavailable, structured view only",
				"resume_id", resumeID, "error", err.Error())
		}
		return content, nil
	}
	content.html = html
	content.htmlAvailable = html != ""

	return content, nil
}

// Mode returns the current presentation mode.
func (c *Content) Mode() ViewMode {
	return c.mode
}

// HTMLAvailable reports whether the HTML mode can be selected.
func (c *Content) HTMLAvailable() bool {
	return c.htmlAvailable
}

// SetMode switches the presentation mode using the data already loaded.
func (c *Content) SetMode(mode ViewMode) error {
	switch mode {
	case ModeStructured:
		c.mode = ModeStructured
		return nil
	case ModeHTML:
		if !c.htmlAvailable {
			return errors.NewPreconditionError(errors.ErrCodePDFNotReady,
				"HTML preview is not available for this resume", nil)
		}
		c.mode = ModeHTML
		return nil
	default:
		return errors.NewValidationError(errors.ErrCodeInvalidFormat,
			"Unknown view mode: "+string(mode), nil)
	}
}

// Structured returns the structured resume payload.
func (c *Content) Structured() *gateway.ResumeView {
	return c.view
}

// HTML returns the server-rendered preview markup, empty when unavailable.
func (c *Content) HTML() string {
	return c.html
}
