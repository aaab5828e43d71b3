package workflow

import (
	"context"
	"strings"
	"sync"
	"time"

	"nextchapter/internal/config"
	"nextchapter/internal/errors"
	"nextchapter/internal/gateway"
	"nextchapter/internal/types"
)

// DefaultAutosaveDebounce is the pause after the last edit before an
// automatic save fires.
const DefaultAutosaveDebounce = 2000 * time.Millisecond

// Autosaver persists profile edits in the background. Saves are debounced,
// skipped for empty drafts, and never surface errors to the user; failures
// are logged and the next edit retries naturally.
type Autosaver struct {
	mu       sync.Mutex
	gw       *gateway.Client
	locks    *ClientLocks
	logger   *errors.Logger
	debounce time.Duration

	timer    *time.Timer
	timerGen uint64
	closed   bool

	pendingClient  *types.Client
	pendingProfile *types.EmploymentProfile

	// onSave is invoked after each save attempt, with the error if any.
	onSave func(clientID string, err error)
}

// AutosaveOption configures an Autosaver.
type AutosaveOption func(*Autosaver)

// WithSaveObserver registers a callback fired after every save attempt.
func WithSaveObserver(fn func(clientID string, err error)) AutosaveOption {
	return func(a *Autosaver) { a.onSave = fn }
}

// NewAutosaver creates an auto-saver sharing locks with the PDF workflow.
func NewAutosaver(gw *gateway.Client, cfg *config.AutosaveConfig, locks *ClientLocks, logger *errors.Logger, opts ...AutosaveOption) *Autosaver {
	debounce := DefaultAutosaveDebounce
	if cfg != nil && cfg.Debounce > 0 {
		debounce = cfg.Debounce
	}
	a := &Autosaver{
		gw:       gw,
		locks:    locks,
		logger:   logger,
		debounce: debounce,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ProfileChanged records an edit and schedules a save after the debounce
// window. Edits with no career objective or no effective client are
// ignored, so empty drafts never hit the gateway.
func (a *Autosaver) ProfileChanged(session *types.Session, profile *types.EmploymentProfile) {
	client := session.EffectiveClient()
	if client == nil || profile == nil || strings.TrimSpace(profile.CareerObjective) == "" {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}

	a.pendingClient = client
	a.pendingProfile = profile

	if a.timer != nil {
		a.timer.Stop()
	}
	a.timerGen++
	gen := a.timerGen
	a.timer = time.AfterFunc(a.debounce, func() { a.fire(gen) })
}

// Flush saves any pending edit immediately, cancelling the timer. It is
// called before a manual PDF generation so the workflow never works from
// a stale server-side profile.
func (a *Autosaver) Flush(ctx context.Context) {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.timerGen++
	client, profile := a.pendingClient, a.pendingProfile
	a.pendingClient, a.pendingProfile = nil, nil
	a.mu.Unlock()

	if client == nil || profile == nil {
		return
	}
	a.save(ctx, client, profile)
}

func (a *Autosaver) fire(gen uint64) {
	a.mu.Lock()
	if a.closed || gen != a.timerGen {
		a.mu.Unlock()
		return
	}
	client, profile := a.pendingClient, a.pendingProfile
	a.pendingClient, a.pendingProfile = nil, nil
	a.mu.Unlock()

	if client == nil || profile == nil {
		return
	}
	a.save(context.Background(), client, profile)
}

func (a *Autosaver) save(ctx context.Context, client *types.Client, profile *types.EmploymentProfile) {
	unlock := a.locks.Lock(client.ClientID)
	err := a.gw.SaveProfile(ctx, client.ClientID, profile)
	unlock()

	if err != nil && a.logger != nil {
		// Auto-save is silent: log and let the next edit retry.
		a.logger.Warn("Auto-save failed", "client_id", client.ClientID, "error", err.Error())
	}
	if a.onSave != nil {
		a.onSave(client.ClientID, err)
	}
}

// Close cancels any pending save without running it.
func (a *Autosaver) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.pendingClient = nil
	a.pendingProfile = nil
}
