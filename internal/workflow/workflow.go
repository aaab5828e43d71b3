// Package workflow drives the four-step PDF generation sequence: save the
// profile, create or reuse the resume record, ask the gateway to render,
// then download the result. A failure at any step aborts the whole run;
// the caller re-invokes from scratch.
package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nextchapter/internal/config"
	"nextchapter/internal/errors"
	"nextchapter/internal/gateway"
	"nextchapter/internal/render"
	"nextchapter/internal/types"
)

// State is the workflow's current step.
type State string

const (
	StateIdle           State = "idle"
	StateSaving         State = "saving"
	StateCreatingResume State = "creating_resume"
	StateGeneratingPDF  State = "generating_pdf"
	StateDownloading    State = "downloading"
	StateDone           State = "done"
	StateError          State = "error"
)

// ResultKind says what kind of file the workflow produced.
type ResultKind string

const (
	// ResultPDF is a true PDF, either straight from the gateway or
	// printed locally from the HTML fallback.
	ResultPDF ResultKind = "pdf"
	// ResultHTML is the printable HTML file saved when no local print
	// path was available.
	ResultHTML ResultKind = "html"
)

// Result describes a completed workflow run.
type Result struct {
	ResumeID       string
	OutputPath     string
	Kind           ResultKind
	ReusedResume   bool
	PrintedLocally bool
	// Instructions is user-facing guidance set when Kind is ResultHTML.
	Instructions string
}

// Workflow orchestrates PDF generation against the gateway.
type Workflow struct {
	gw      *gateway.Client
	cfg     *config.PDFConfig
	locks   *ClientLocks
	printer HTMLPrinter
	logger  *errors.Logger
	now     func() time.Time

	onState func(State)
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithPrinter overrides the HTML-to-PDF printer.
func WithPrinter(p HTMLPrinter) Option {
	return func(w *Workflow) { w.printer = p }
}

// WithClock overrides the clock used for download filenames.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

// WithStateObserver registers a callback invoked on every state change.
func WithStateObserver(fn func(State)) Option {
	return func(w *Workflow) { w.onState = fn }
}

// New creates a workflow. The locks instance must be shared with the
// auto-saver so profile writes for one client never interleave.
func New(gw *gateway.Client, cfg *config.PDFConfig, locks *ClientLocks, logger *errors.Logger, opts ...Option) *Workflow {
	w := &Workflow{
		gw:     gw,
		cfg:    cfg,
		locks:  locks,
		logger: logger,
		now:    time.Now,
	}
	if cfg != nil {
		if p := NewChromePrinter(&cfg.PrintFallback); p != nil {
			w.printer = p
		}
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) setState(s State) {
	if w.onState != nil {
		w.onState(s)
	}
}

// Generate runs the full save, create, render, download sequence for the
// session's effective client. Steps run strictly in order and there is no
// per-step retry.
func (w *Workflow) Generate(ctx context.Context, session *types.Session, profile *types.EmploymentProfile, templateID string) (result *Result, err error) {
	defer func() {
		if err != nil {
			w.setState(StateError)
		}
	}()

	client := session.EffectiveClient()
	if client == nil {
		return nil, errors.NewPreconditionError(errors.ErrCodeNoActiveClient,
			"No client selected and guest details are incomplete", nil)
	}
	if strings.TrimSpace(templateID) == "" {
		return nil, errors.NewPreconditionError(errors.ErrCodeNoTemplate,
			"No resume template selected", nil)
	}
	tmpl := render.Lookup(templateID)

	unlock := w.locks.Lock(client.ClientID)
	defer unlock()

	w.setState(StateSaving)
	if err := w.gw.SaveProfile(ctx, client.ClientID, profile); err != nil {
		return nil, err
	}

	w.setState(StateCreatingResume)
	resumeID, reused, err := w.createOrReuseResume(ctx, client, tmpl)
	if err != nil {
		return nil, err
	}

	w.setState(StateGeneratingPDF)
	if _, err := w.gw.GeneratePDF(ctx, resumeID); err != nil {
		return nil, err
	}

	w.setState(StateDownloading)
	result, err = w.download(ctx, client, resumeID)
	if err != nil {
		return nil, err
	}
	result.ReusedResume = reused

	w.setState(StateDone)
	return result, nil
}

// SaveProfile persists the profile for the session's effective client,
// holding the client lock for the duration of the write.
func (w *Workflow) SaveProfile(ctx context.Context, session *types.Session, profile *types.EmploymentProfile) error {
	client := session.EffectiveClient()
	if client == nil {
		return errors.NewPreconditionError(errors.ErrCodeNoActiveClient,
			"No client selected and guest details are incomplete", nil)
	}

	unlock := w.locks.Lock(client.ClientID)
	defer unlock()

	return w.gw.SaveProfile(ctx, client.ClientID, profile)
}

// ResumeTitle derives the deterministic title used for created resumes.
func ResumeTitle(tmpl *render.Template, client *types.Client) string {
	return fmt.Sprintf("%s Resume for %s %s", tmpl.Name, client.FirstName, client.LastName)
}

// createOrReuseResume reuses an existing resume record with the same title
// and template rather than creating a duplicate on every run. A failed
// lookup is not fatal: it logs and falls through to creation.
func (w *Workflow) createOrReuseResume(ctx context.Context, client *types.Client, tmpl *render.Template) (resumeID string, reused bool, err error) {
	title := ResumeTitle(tmpl, client)

	if !w.cfg.ForceNew {
		existing, err := w.gw.ListResumes(ctx, client.ClientID)
		if err != nil {
			if w.logger != nil {
				w.logger.Warn("Could not list existing resumes, creating a new record",
					"client_id", client.ClientID, "error", err.Error())
			}
		} else {
			for _, rec := range existing {
				if rec.ResumeTitle == title && rec.TemplateType == tmpl.ID {
					if w.logger != nil {
						w.logger.Info("Reusing existing resume record",
							"resume_id", rec.ResumeID, "title", title)
					}
					return rec.ResumeID, true, nil
				}
			}
		}
	}

	id, err := w.gw.CreateResume(ctx, client.ClientID, tmpl.ID, title)
	if err != nil {
		return "", false, err
	}
	return id, false, nil
}

// download fetches the rendered resume and writes it to the output
// directory, bifurcating on the response content type.
func (w *Workflow) download(ctx context.Context, client *types.Client, resumeID string) (*Result, error) {
	contentType, body, err := w.gw.Download(ctx, resumeID)
	if err != nil {
		return nil, err
	}

	switch {
	case isPDFContent(contentType, body):
		path, err := w.writeOutput(FormatFilename(client.FirstName, client.LastName, resumeID, w.now()), body)
		if err != nil {
			return nil, err
		}
		return &Result{ResumeID: resumeID, OutputPath: path, Kind: ResultPDF}, nil

	case strings.Contains(contentType, "text/html"):
		return w.handlePrintableHTML(ctx, client, resumeID, string(body))

	default:
		return nil, errors.NewGatewayError(errors.ErrCodeGatewayFailed,
			fmt.Sprintf("Unexpected download content type: %s", contentType), nil)
	}
}

// handlePrintableHTML runs the print-enhancement path: wrap the HTML with
// instructions, try a local headless-Chrome print, and only save raw HTML
// (with a .html extension, never disguised as a PDF) when printing is
// impossible.
func (w *Workflow) handlePrintableHTML(ctx context.Context, client *types.Client, resumeID, html string) (*Result, error) {
	wrapped := WrapPrintableHTML(html)

	if w.printer != nil {
		pdf, err := w.printer.RenderHTMLToPDF(ctx, wrapped)
		if err == nil {
			path, werr := w.writeOutput(FormatFilename(client.FirstName, client.LastName, resumeID, w.now()), pdf)
			if werr != nil {
				return nil, werr
			}
			return &Result{ResumeID: resumeID, OutputPath: path, Kind: ResultPDF, PrintedLocally: true}, nil
		}
		if w.logger != nil {
			w.logger.Warn("Local print-to-PDF failed, saving printable HTML instead",
				"resume_id", resumeID, "error", err.Error())
		}
	}

	name := strings.TrimSuffix(FormatFilename(client.FirstName, client.LastName, resumeID, w.now()), ".pdf") + ".html"
	path, err := w.writeOutput(name, []byte(wrapped))
	if err != nil {
		return nil, err
	}
	return &Result{
		ResumeID:   resumeID,
		OutputPath: path,
		Kind:       ResultHTML,
		Instructions: "The server could not produce a PDF, so a printable HTML file was saved. " +
			"Open it in a browser and use Print > Save as PDF.",
	}, nil
}

func (w *Workflow) writeOutput(name string, data []byte) (string, error) {
	dir := w.cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", errors.NewIOError("OUTPUT_DIR_CREATE_FAILED",
			fmt.Sprintf("Cannot create output directory: %s", dir), err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", errors.NewIOError("OUTPUT_WRITE_FAILED",
			fmt.Sprintf("Cannot write downloaded resume: %s", path), err)
	}
	return path, nil
}

// isPDFContent accepts the PDF and generic binary content types the
// gateway is known to send for real PDFs.
func isPDFContent(contentType string, body []byte) bool {
	if strings.Contains(contentType, "application/pdf") ||
		strings.Contains(contentType, "application/octet-stream") {
		return true
	}
	return len(body) >= 4 && string(body[:4]) == "%PDF"
}
