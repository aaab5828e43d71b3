package workflow

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"nextchapter/internal/config"
)

// HTMLPrinter converts printable HTML into PDF bytes. The production
// implementation drives headless Chrome; tests substitute a stub.
type HTMLPrinter interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// printBanner is injected at the top of printable HTML so someone opening
// the file knows what to do with it. The print media query keeps it out of
// the printed page itself.
const printBanner = `<style media="print">.print-instructions{display:none !important;}</style>
<div class="print-instructions" style="background:#fef3c7;border:1px solid #d97706;padding:12px;font-family:sans-serif;font-size:14px;">
This resume was delivered as printable HTML because the server could not produce a PDF.
Open your browser's print dialog and choose "Save as PDF" to finish the conversion.
</div>
`

// WrapPrintableHTML injects the print-instructions banner into the HTML
// the gateway returned. The banner goes right after <body> when present,
// otherwise it is prepended.
func WrapPrintableHTML(html string) string {
	lower := strings.ToLower(html)
	if idx := strings.Index(lower, "<body"); idx >= 0 {
		if end := strings.Index(lower[idx:], ">"); end >= 0 {
			insert := idx + end + 1
			return html[:insert] + "\n" + printBanner + html[insert:]
		}
	}
	return printBanner + html
}

// ChromePrinter renders HTML to PDF with a local headless Chrome. It is the
// stand-in for the browser print dialog: when the gateway falls back to
// printable HTML we finish the conversion locally.
type ChromePrinter struct {
	chromePath string
	timeout    time.Duration
}

// NewChromePrinter creates a printer from the fallback configuration.
// Returns nil when the fallback is disabled.
func NewChromePrinter(cfg *config.PrintFallbackConfig) *ChromePrinter {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromePrinter{chromePath: cfg.ChromePath, timeout: timeout}
}

// RenderHTMLToPDF prints the HTML to an A4 PDF.
func (p *ChromePrinter) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(p.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, p.timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "nextchapter-print-")
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "resume.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return nil, err
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
