package workflow

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"nextchapter/internal/config"
	"nextchapter/internal/gateway"
	"nextchapter/internal/types"
)

func newTestAutosaver(t *testing.T, saveStatus int, debounce time.Duration, opts ...AutosaveOption) (*Autosaver, *atomic.Int32) {
	t.Helper()

	var saves atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/api/resume/profile" {
			saves.Add(1)
			w.WriteHeader(saveStatus)
			fmt.Fprint(w, `{"success":true}`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	gw := gateway.NewClient(&config.GatewayConfig{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, nil, nil)

	a := NewAutosaver(gw, &config.AutosaveConfig{Enabled: true, Debounce: debounce}, NewClientLocks(), nil, opts...)
	t.Cleanup(a.Close)
	return a, &saves
}

func draftProfile() *types.EmploymentProfile {
	return &types.EmploymentProfile{CareerObjective: "Forklift operator role"}
}

func TestAutosaveDebouncesBursts(t *testing.T) {
	saved := make(chan error, 8)
	a, saves := newTestAutosaver(t, http.StatusOK, 40*time.Millisecond,
		WithSaveObserver(func(_ string, err error) { saved <- err }))

	session := mariaSession()
	for i := 0; i < 5; i++ {
		a.ProfileChanged(session, draftProfile())
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case err := <-saved:
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a save after the debounce window")
	}

	time.Sleep(100 * time.Millisecond)
	if got := saves.Load(); got != 1 {
		t.Errorf("Expected a burst of edits to coalesce into 1 save, got %d", got)
	}
}

func TestAutosaveSkipsEmptyDrafts(t *testing.T) {
	a, saves := newTestAutosaver(t, http.StatusOK, 10*time.Millisecond)

	a.ProfileChanged(mariaSession(), &types.EmploymentProfile{CareerObjective: "   "})
	a.ProfileChanged(mariaSession(), nil)
	a.ProfileChanged(types.NewSession(), draftProfile())

	time.Sleep(100 * time.Millisecond)
	if got := saves.Load(); got != 0 {
		t.Errorf("Expected no saves for empty drafts or missing clients, got %d", got)
	}
}

func TestAutosaveCloseCancelsPending(t *testing.T) {
	a, saves := newTestAutosaver(t, http.StatusOK, 50*time.Millisecond)

	a.ProfileChanged(mariaSession(), draftProfile())
	a.Close()

	time.Sleep(150 * time.Millisecond)
	if got := saves.Load(); got != 0 {
		t.Errorf("Expected no save after Close, got %d", got)
	}
}

func TestAutosaveFailureIsSilent(t *testing.T) {
	saved := make(chan error, 1)
	a, _ := newTestAutosaver(t, http.StatusInternalServerError, 10*time.Millisecond,
		WithSaveObserver(func(_ string, err error) { saved <- err }))

	a.ProfileChanged(mariaSession(), draftProfile())

	select {
	case err := <-saved:
		if err == nil {
			t.Fatal("Expected the save attempt to report an error to the observer")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a save attempt")
	}
}

func TestFlushSavesImmediately(t *testing.T) {
	a, saves := newTestAutosaver(t, http.StatusOK, 10*time.Second)

	a.ProfileChanged(mariaSession(), draftProfile())
	a.Flush(context.Background())

	if got := saves.Load(); got != 1 {
		t.Errorf("Expected Flush to save the pending draft, got %d saves", got)
	}

	// Nothing pending, nothing saved.
	a.Flush(context.Background())
	if got := saves.Load(); got != 1 {
		t.Errorf("Expected a second Flush to be a no-op, got %d saves", got)
	}
}
