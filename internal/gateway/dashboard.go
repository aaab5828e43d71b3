package gateway

import (
	"context"
	"net/url"

	"nextchapter/internal/types"
)

// ListNotes returns the case notes for a client.
func (c *Client) ListNotes(ctx context.Context, clientID string) ([]types.Note, error) {
	var out struct {
		Notes []types.Note `json:"notes"`
	}
	if err := c.getJSON(ctx, "/api/notes/"+url.PathEscape(clientID), &out); err != nil {
		return nil, err
	}
	return out.Notes, nil
}

// ListDocuments returns the documents stored for a client.
func (c *Client) ListDocuments(ctx context.Context, clientID string) ([]types.Document, error) {
	var out struct {
		Documents []types.Document `json:"documents"`
	}
	if err := c.getJSON(ctx, "/api/docs/"+url.PathEscape(clientID), &out); err != nil {
		return nil, err
	}
	return out.Documents, nil
}

// ListBookmarks returns the saved job bookmarks for a client.
func (c *Client) ListBookmarks(ctx context.Context, clientID string) ([]types.Bookmark, error) {
	var out struct {
		Bookmarks []types.Bookmark `json:"bookmarks"`
	}
	if err := c.getJSON(ctx, "/api/bookmarks/"+url.PathEscape(clientID), &out); err != nil {
		return nil, err
	}
	return out.Bookmarks, nil
}

// ListResources returns the reentry resource directory. Resources are not
// client specific.
func (c *Client) ListResources(ctx context.Context) ([]types.Resource, error) {
	var out struct {
		Resources []types.Resource `json:"resources"`
	}
	if err := c.getJSON(ctx, "/api/resources", &out); err != nil {
		return nil, err
	}
	return out.Resources, nil
}
