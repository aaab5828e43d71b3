// Package preview keeps a debounced, always-current rendering of the
// resume being edited. Edits are coalesced: every change arms (or re-arms)
// a single timer, and only the last state within the window is rendered.
package preview

import (
	"sync"
	"time"

	"nextchapter/internal/render"
	"nextchapter/internal/types"
)

// DefaultDebounce is the edit-coalescing window.
const DefaultDebounce = 300 * time.Millisecond

// Zoom bounds for the preview viewport.
const (
	ZoomMin     = 0.3
	ZoomMax     = 1.5
	ZoomStep    = 0.1
	ZoomDefault = 0.7
)

// PlaceholderMarkup is shown when there is no effective client or no
// template selected. No debouncing happens in that state.
const PlaceholderMarkup = `<div class="resume-placeholder">Select a client and a template to see the live preview.</div>`

// Controller owns the preview state for one editing session. All methods
// are safe for concurrent use; rendering itself is synchronous and runs
// under the controller lock, so renders never overlap.
type Controller struct {
	mu         sync.Mutex
	session    *types.Session
	profile    *types.EmploymentProfile
	templateID string

	zoom        float64
	renderToken uint64
	markup      string

	debounce time.Duration
	timer    *time.Timer
	timerGen uint64
	closed   bool

	// onRender, when set, observes every completed render.
	onRender func(markup string, token uint64)
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce overrides the coalescing window.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithRenderObserver registers a callback invoked after each render.
func WithRenderObserver(fn func(markup string, token uint64)) Option {
	return func(c *Controller) { c.onRender = fn }
}

// NewController creates a preview controller for the session.
func NewController(session *types.Session, opts ...Option) *Controller {
	c := &Controller{
		session:  session,
		profile:  &types.EmploymentProfile{},
		zoom:     ZoomDefault,
		debounce: DefaultDebounce,
		markup:   PlaceholderMarkup,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetProfile replaces the profile being previewed and schedules a render.
func (c *Controller) SetProfile(p *types.EmploymentProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = p
	c.scheduleLocked()
}

// SetTemplate selects a template and schedules a render.
func (c *Controller) SetTemplate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templateID = id
	c.scheduleLocked()
}

// ProfileChanged notes an in-place edit to the current profile (objective,
// work history, skills, education or certifications) and schedules a render.
func (c *Controller) ProfileChanged() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scheduleLocked()
}

// ClientChanged notes a change of the session's effective client and
// schedules a render.
func (c *Controller) ClientChanged() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scheduleLocked()
}

// Refresh bypasses the debounce window and renders immediately.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelTimerLocked()
	c.renderLocked()
}

// Markup returns the most recent rendering and its token.
func (c *Controller) Markup() (string, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.markup, c.renderToken
}

// Zoom returns the current zoom level.
func (c *Controller) Zoom() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

// ZoomIn raises the zoom level one step, clamped to the maximum.
func (c *Controller) ZoomIn() float64 {
	return c.adjustZoom(ZoomStep)
}

// ZoomOut lowers the zoom level one step, clamped to the minimum.
func (c *Controller) ZoomOut() float64 {
	return c.adjustZoom(-ZoomStep)
}

func (c *Controller) adjustZoom(delta float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	z := c.zoom + delta
	if z < ZoomMin {
		z = ZoomMin
	}
	if z > ZoomMax {
		z = ZoomMax
	}
	c.zoom = z
	return z
}

// Close cancels any pending render. No render fires after Close returns.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cancelTimerLocked()
}

// scheduleLocked arms the debounce timer, cancelling any pending one so at
// most a single timer is live. When the preview has no effective client or
// no template, it renders the placeholder immediately instead of debouncing.
func (c *Controller) scheduleLocked() {
	if c.closed {
		return
	}

	if !c.readyLocked() {
		c.cancelTimerLocked()
		c.markup = PlaceholderMarkup
		return
	}

	c.cancelTimerLocked()
	c.timerGen++
	gen := c.timerGen
	c.timer = time.AfterFunc(c.debounce, func() {
		c.fire(gen)
	})
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// A reschedule or Close between arming and firing invalidates this shot.
	if c.closed || gen != c.timerGen {
		return
	}
	c.timer = nil
	c.renderLocked()
}

func (c *Controller) renderLocked() {
	if !c.readyLocked() {
		c.markup = PlaceholderMarkup
		return
	}

	c.renderToken++
	c.markup = render.Render(c.session.EffectiveClient(), c.profile, c.templateID)
	if c.onRender != nil {
		c.onRender(c.markup, c.renderToken)
	}
}

func (c *Controller) readyLocked() bool {
	return c.session != nil && c.session.EffectiveClient() != nil && c.templateID != ""
}

func (c *Controller) cancelTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerGen++
}
