package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nextchapter/internal/config"
	"nextchapter/internal/gateway"
)

// sourceBehaviors maps URL path prefixes to canned responses.
type sourceBehaviors struct {
	notesStatus     int
	docsStatus      int
	bookmarksStatus int
	resourcesStatus int
}

func allOK() sourceBehaviors {
	return sourceBehaviors{
		notesStatus:     http.StatusOK,
		docsStatus:      http.StatusOK,
		bookmarksStatus: http.StatusOK,
		resourcesStatus: http.StatusOK,
	}
}

func newDashboardServer(t *testing.T, b sourceBehaviors) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fail := func(status int) bool {
			if status != http.StatusOK {
				w.WriteHeader(status)
				fmt.Fprint(w, `{"success":false,"message":"source broke"}`)
				return true
			}
			return false
		}

		switch {
		case strings.HasPrefix(r.URL.Path, "/api/notes/"):
			if fail(b.notesStatus) {
				return
			}
			fmt.Fprint(w, `{"notes":[{"noteId":"n1","clientId":"c1","text":"Met for intake","author":"cm1"}]}`)
		case strings.HasPrefix(r.URL.Path, "/api/docs/"):
			if fail(b.docsStatus) {
				return
			}
			fmt.Fprint(w, `{"documents":[{"documentId":"d1","clientId":"c1","name":"ID card scan"}]}`)
		case strings.HasPrefix(r.URL.Path, "/api/bookmarks/"):
			if fail(b.bookmarksStatus) {
				return
			}
			fmt.Fprint(w, `{"bookmarks":[{"bookmarkId":"b1","clientId":"c1","title":"Forklift Operator","company":"Acme Logistics"}]}`)
		case r.URL.Path == "/api/resources":
			if fail(b.resourcesStatus) {
				return
			}
			fmt.Fprint(w, `{"resources":[{"resourceId":"rs1","title":"Housing assistance","category":"housing"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newGatewayClient(t *testing.T, baseURL string) *gateway.Client {
	t.Helper()
	return gateway.NewClient(&config.GatewayConfig{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	}, nil, nil)
}

func TestLoadFetchesAllSources(t *testing.T) {
	srv := newDashboardServer(t, allOK())
	loader := NewLoader(newGatewayClient(t, srv.URL), nil, nil)

	data := loader.Load(context.Background(), "c1")

	if len(data.Notes) != 1 || data.Notes[0].Text != "Met for intake" {
		t.Errorf("Unexpected notes: %+v", data.Notes)
	}
	if len(data.Documents) != 1 || data.Documents[0].Name != "ID card scan" {
		t.Errorf("Unexpected documents: %+v", data.Documents)
	}
	if len(data.Bookmarks) != 1 || data.Bookmarks[0].Company != "Acme Logistics" {
		t.Errorf("Unexpected bookmarks: %+v", data.Bookmarks)
	}
	if len(data.Resources) != 1 || data.Resources[0].Category != "housing" {
		t.Errorf("Unexpected resources: %+v", data.Resources)
	}
	for source, status := range data.Status {
		if status.Err != nil || status.FromCache {
			t.Errorf("Expected a clean status for %s, got %+v", source, status)
		}
	}
}

func TestLoadIsolatesFailedSource(t *testing.T) {
	b := allOK()
	b.docsStatus = http.StatusInternalServerError
	srv := newDashboardServer(t, b)
	loader := NewLoader(newGatewayClient(t, srv.URL), nil, nil)

	data := loader.Load(context.Background(), "c1")

	if len(data.Documents) != 0 {
		t.Errorf("Expected the failed source to come back empty, got %+v", data.Documents)
	}
	if data.Status[SourceDocuments].Err == nil {
		t.Error("Expected an error recorded for the failed source")
	}
	if len(data.Notes) != 1 || len(data.Bookmarks) != 1 || len(data.Resources) != 1 {
		t.Error("Expected the healthy sources to load normally")
	}
	for _, source := range []Source{SourceNotes, SourceBookmarks, SourceResources} {
		if data.Status[source].Err != nil {
			t.Errorf("Expected no error for %s, got %v", source, data.Status[source].Err)
		}
	}
}

func TestLoadFallsBackToCache(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "dashboard.db"))
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	defer func() { _ = cache.Close() }()

	// First load succeeds and populates the cache.
	srv := newDashboardServer(t, allOK())
	loader := NewLoader(newGatewayClient(t, srv.URL), cache, nil)
	first := loader.Load(context.Background(), "c1")
	if len(first.Notes) != 1 {
		t.Fatalf("Expected the first load to fetch notes, got %+v", first.Notes)
	}

	// Second load hits a dead gateway and must serve the cached copy.
	srv.Close()
	second := loader.Load(context.Background(), "c1")

	if len(second.Notes) != 1 || second.Notes[0].NoteID != "n1" {
		t.Errorf("Expected cached notes, got %+v", second.Notes)
	}
	if !second.Status[SourceNotes].FromCache {
		t.Error("Expected the notes status to report a cache fallback")
	}
	if second.Status[SourceNotes].Err != nil {
		t.Errorf("Expected no error when the cache served, got %v", second.Status[SourceNotes].Err)
	}
	if len(second.Resources) != 1 || !second.Status[SourceResources].FromCache {
		t.Error("Expected cached resources after the gateway went away")
	}
}

func TestCacheReconcilesOnReconnect(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "dashboard.db"))
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	defer func() { _ = cache.Close() }()

	srv := newDashboardServer(t, allOK())
	loader := NewLoader(newGatewayClient(t, srv.URL), cache, nil)
	loader.Load(context.Background(), "c1")
	srv.Close()

	// A fresh server with different data replaces the cached rows.
	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/notes/"):
			fmt.Fprint(w, `{"notes":[{"noteId":"n2","clientId":"c1","text":"Updated plan"}]}`)
		case strings.HasPrefix(r.URL.Path, "/api/docs/"):
			fmt.Fprint(w, `{"documents":[]}`)
		case strings.HasPrefix(r.URL.Path, "/api/bookmarks/"):
			fmt.Fprint(w, `{"bookmarks":[]}`)
		case r.URL.Path == "/api/resources":
			fmt.Fprint(w, `{"resources":[]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	loader2 := NewLoader(newGatewayClient(t, srv2.URL), cache, nil)
	loader2.Load(context.Background(), "c1")
	srv2.Close()

	// Offline again: the cache must hold the reconciled data, not the old rows.
	third := loader2.Load(context.Background(), "c1")
	if len(third.Notes) != 1 || third.Notes[0].NoteID != "n2" {
		t.Errorf("Expected the reconciled note n2 from cache, got %+v", third.Notes)
	}
	if len(third.Documents) != 0 {
		t.Errorf("Expected the emptied documents source to stay empty, got %+v", third.Documents)
	}
}
