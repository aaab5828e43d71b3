// Package dashboard loads the client dashboard's four data sources. Each
// source is independent: a failed or malformed source comes back empty (or
// from the local cache) without affecting the others.
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"nextchapter/internal/errors"
	"nextchapter/internal/gateway"
	"nextchapter/internal/types"
)

// Source identifies one dashboard data source.
type Source string

const (
	SourceNotes     Source = "notes"
	SourceDocuments Source = "documents"
	SourceBookmarks Source = "bookmarks"
	SourceResources Source = "resources"
)

// SourceStatus reports how one source was resolved.
type SourceStatus struct {
	// FromCache is set when the gateway fetch failed and the cached copy
	// was served instead.
	FromCache bool
	// Err is the fetch error when neither the gateway nor the cache could
	// provide data. The source's items are empty in that case.
	Err error
}

// Data is one loaded dashboard snapshot.
type Data struct {
	Notes     []types.Note
	Documents []types.Document
	Bookmarks []types.Bookmark
	Resources []types.Resource

	Status map[Source]SourceStatus
}

// Loader fetches all dashboard sources concurrently, writing successful
// fetches through to the local cache and falling back to it when the
// gateway is unreachable.
type Loader struct {
	gw     *gateway.Client
	cache  *Cache
	logger *errors.Logger
}

// NewLoader creates a dashboard loader. The cache is optional; without it
// failed sources simply come back empty.
func NewLoader(gw *gateway.Client, cache *Cache, logger *errors.Logger) *Loader {
	return &Loader{gw: gw, cache: cache, logger: logger}
}

// Load fetches the four sources concurrently. It never returns an error:
// per-source outcomes are reported in Data.Status.
func (l *Loader) Load(ctx context.Context, clientID string) *Data {
	var (
		notes     []types.Note
		documents []types.Document
		bookmarks []types.Bookmark
		resources []types.Resource

		notesStatus, docsStatus, bookmarksStatus, resourcesStatus SourceStatus
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		notes, notesStatus = loadSource(ctx, l, SourceNotes, clientID,
			func(ctx context.Context) ([]types.Note, error) { return l.gw.ListNotes(ctx, clientID) },
			func(n types.Note) string { return n.NoteID })
		return nil
	})
	g.Go(func() error {
		documents, docsStatus = loadSource(ctx, l, SourceDocuments, clientID,
			func(ctx context.Context) ([]types.Document, error) { return l.gw.ListDocuments(ctx, clientID) },
			func(d types.Document) string { return d.DocumentID })
		return nil
	})
	g.Go(func() error {
		bookmarks, bookmarksStatus = loadSource(ctx, l, SourceBookmarks, clientID,
			func(ctx context.Context) ([]types.Bookmark, error) { return l.gw.ListBookmarks(ctx, clientID) },
			func(b types.Bookmark) string { return b.BookmarkID })
		return nil
	})
	g.Go(func() error {
		// Resources are global, cached under an empty client id.
		resources, resourcesStatus = loadSource(ctx, l, SourceResources, "",
			func(ctx context.Context) ([]types.Resource, error) { return l.gw.ListResources(ctx) },
			func(r types.Resource) string { return r.ResourceID })
		return nil
	})
	_ = g.Wait()

	return &Data{
		Notes:     notes,
		Documents: documents,
		Bookmarks: bookmarks,
		Resources: resources,
		Status: map[Source]SourceStatus{
			SourceNotes:     notesStatus,
			SourceDocuments: docsStatus,
			SourceBookmarks: bookmarksStatus,
			SourceResources: resourcesStatus,
		},
	}
}

// loadSource resolves one source: gateway first, then the cached copy. A
// gateway success refreshes the cache; a gateway failure with no usable
// cache yields an empty source and a recorded error.
func loadSource[T any](ctx context.Context, l *Loader, source Source, clientID string, fetch func(context.Context) ([]T, error), id func(T) string) ([]T, SourceStatus) {
	items, err := fetch(ctx)
	if err == nil {
		writeThrough(ctx, l, source, clientID, items, id)
		return items, SourceStatus{}
	}

	if l.logger != nil {
		l.logger.Warn("Dashboard source fetch failed",
			"source", string(source), "error", err.Error())
	}

	if cached, ok := readCached[T](ctx, l, source, clientID); ok {
		return cached, SourceStatus{FromCache: true}
	}

	srcErr := errors.NewGatewayError(errors.ErrCodeDashboardSource,
		"Dashboard source unavailable: "+string(source), err)
	return nil, SourceStatus{Err: srcErr}
}

// writeThrough refreshes the cached copy after a successful fetch. Cache
// write failures never fail the load; they are logged and the stale rows
// remain for the next offline fallback.
func writeThrough[T any](ctx context.Context, l *Loader, source Source, clientID string, items []T, id func(T) string) {
	if l.cache == nil {
		return
	}
	encoded, err := encodeItems(items, id)
	if err == nil {
		err = l.cache.replace(ctx, source, clientID, encoded)
	}
	if err != nil && l.logger != nil {
		l.logger.Warn("Dashboard cache write failed",
			"source", string(source), "error", err.Error())
	}
}

func readCached[T any](ctx context.Context, l *Loader, source Source, clientID string) ([]T, bool) {
	if l.cache == nil {
		return nil, false
	}
	payloads, err := l.cache.load(ctx, source, clientID)
	if err != nil || len(payloads) == 0 {
		return nil, false
	}
	items, err := decodeItems[T](payloads)
	if err != nil {
		if l.logger != nil {
			l.logger.Warn("Dashboard cache payload is malformed, ignoring it",
				"source", string(source), "error", err.Error())
		}
		return nil, false
	}
	return items, true
}
