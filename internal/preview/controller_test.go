package preview

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"nextchapter/internal/types"
)

func readySession() *types.Session {
	s := types.NewSession()
	s.SelectClient(&types.Client{ClientID: "c1", FirstName: "Maria", LastName: "Santos"})
	return s
}

func TestDebounceCoalescesEdits(t *testing.T) {
	var renders atomic.Int64

	c := NewController(readySession(),
		WithDebounce(20*time.Millisecond),
		WithRenderObserver(func(string, uint64) { renders.Add(1) }),
	)
	defer c.Close()
	c.SetTemplate("classic")

	// Wait out the render scheduled by template selection.
	time.Sleep(60 * time.Millisecond)
	renders.Store(0)

	profile := &types.EmploymentProfile{CareerObjective: "Ready"}
	c.SetProfile(profile)
	for i := 0; i < 9; i++ {
		profile.CareerObjective += "."
		c.ProfileChanged()
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(80 * time.Millisecond)

	if got := renders.Load(); got != 1 {
		t.Errorf("Expected exactly one render after a burst of edits, got %d", got)
	}
}

func TestCloseCancelsPendingRender(t *testing.T) {
	var renders atomic.Int64

	c := NewController(readySession(),
		WithDebounce(20*time.Millisecond),
		WithRenderObserver(func(string, uint64) { renders.Add(1) }),
	)
	c.SetTemplate("classic")
	time.Sleep(60 * time.Millisecond)
	renders.Store(0)

	c.ProfileChanged()
	c.Close()

	time.Sleep(80 * time.Millisecond)

	if got := renders.Load(); got != 0 {
		t.Errorf("Expected no render after Close, got %d", got)
	}
}

func TestPlaceholderWithoutEffectiveClient(t *testing.T) {
	var renders atomic.Int64

	s := types.NewSession() // nobody selected
	c := NewController(s,
		WithDebounce(10*time.Millisecond),
		WithRenderObserver(func(string, uint64) { renders.Add(1) }),
	)
	defer c.Close()
	c.SetTemplate("classic")
	c.ProfileChanged()

	time.Sleep(50 * time.Millisecond)

	markup, token := c.Markup()
	if markup != PlaceholderMarkup {
		t.Errorf("Expected placeholder markup, got %q", markup)
	}
	if token != 0 {
		t.Errorf("Expected render token to stay at zero, got %d", token)
	}
	if renders.Load() != 0 {
		t.Errorf("Expected no renders without an effective client")
	}
}

func TestPlaceholderWithoutTemplate(t *testing.T) {
	c := NewController(readySession(), WithDebounce(10*time.Millisecond))
	defer c.Close()

	c.SetProfile(&types.EmploymentProfile{CareerObjective: "Ready"})
	time.Sleep(40 * time.Millisecond)

	markup, _ := c.Markup()
	if markup != PlaceholderMarkup {
		t.Errorf("Expected placeholder markup while no template is selected")
	}
}

func TestRefreshRendersImmediately(t *testing.T) {
	c := NewController(readySession(), WithDebounce(time.Hour))
	defer c.Close()
	c.SetTemplate("classic")
	c.SetProfile(&types.EmploymentProfile{CareerObjective: "Ready to work"})

	c.Refresh()

	markup, token := c.Markup()
	if token == 0 {
		t.Fatalf("Expected refresh to render without waiting for the debounce window")
	}
	if !strings.Contains(markup, "Ready to work") {
		t.Errorf("Expected refreshed markup to contain the objective")
	}
}

func TestRenderTokenAdvances(t *testing.T) {
	c := NewController(readySession(), WithDebounce(5*time.Millisecond))
	defer c.Close()
	c.SetTemplate("classic")

	c.Refresh()
	_, first := c.Markup()
	c.Refresh()
	_, second := c.Markup()

	if second <= first {
		t.Errorf("Expected render token to advance, got %d then %d", first, second)
	}
}

func TestZoomClamping(t *testing.T) {
	c := NewController(readySession())
	defer c.Close()

	if z := c.Zoom(); z != ZoomDefault {
		t.Fatalf("Expected default zoom %.1f, got %.1f", ZoomDefault, z)
	}

	for i := 0; i < 20; i++ {
		c.ZoomIn()
	}
	if z := c.Zoom(); z > ZoomMax+1e-9 {
		t.Errorf("Expected zoom clamped to %.1f, got %f", ZoomMax, z)
	}

	for i := 0; i < 30; i++ {
		c.ZoomOut()
	}
	if z := c.Zoom(); z < ZoomMin-1e-9 {
		t.Errorf("Expected zoom clamped to %.1f, got %f", ZoomMin, z)
	}
}
