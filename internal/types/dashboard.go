package types

import "time"

// Note is one case note shown on the client dashboard.
type Note struct {
	NoteID    string    `json:"noteId"`
	ClientID  string    `json:"clientId"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// Document is one stored document reference for a client.
type Document struct {
	DocumentID string    `json:"documentId"`
	ClientID   string    `json:"clientId"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Bookmark is one saved job posting.
type Bookmark struct {
	BookmarkID string    `json:"bookmarkId"`
	ClientID   string    `json:"clientId"`
	Title      string    `json:"title"`
	Company    string    `json:"company"`
	URL        string    `json:"url"`
	SavedAt    time.Time `json:"savedAt"`
}

// Resource is one entry in the reentry resource directory.
type Resource struct {
	ResourceID string `json:"resourceId"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	URL        string `json:"url"`
	Phone      string `json:"phone"`
}
