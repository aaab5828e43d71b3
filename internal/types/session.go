package types

import (
	"strings"

	"github.com/google/uuid"
)

// Session tracks which client the current editing session is acting for:
// either a selected real client or, in guest mode, a guest draft that only
// exists for the lifetime of the session.
type Session struct {
	SelectedClient *Client
	GuestMode      bool
	guestDraft     *Client
}

// NewSession returns a session with no client selected.
func NewSession() *Session {
	return &Session{}
}

// SelectClient picks a real client and leaves guest mode.
func (s *Session) SelectClient(c *Client) {
	s.SelectedClient = c
	s.GuestMode = false
	s.guestDraft = nil
}

// EnableGuestMode starts a guest draft. The guest id is a fresh per-session
// identifier, so two guest sessions can never collide if a record ever
// reaches the server.
func (s *Session) EnableGuestMode() {
	s.GuestMode = true
	s.SelectedClient = nil
	s.guestDraft = &Client{ClientID: "guest-" + uuid.NewString()}
}

// DisableGuestMode discards the guest draft.
func (s *Session) DisableGuestMode() {
	s.GuestMode = false
	s.guestDraft = nil
}

// SetGuestName updates the guest draft's name fields. Clearing either name
// makes the session have no effective client until both are filled again.
func (s *Session) SetGuestName(first, last string) {
	if s.guestDraft == nil {
		return
	}
	s.guestDraft.FirstName = strings.TrimSpace(first)
	s.guestDraft.LastName = strings.TrimSpace(last)
}

// SetGuestContact updates the guest draft's optional contact fields.
func (s *Session) SetGuestContact(email, phone string) {
	if s.guestDraft == nil {
		return
	}
	s.guestDraft.Email = strings.TrimSpace(email)
	s.guestDraft.Phone = strings.TrimSpace(phone)
}

// EffectiveClient returns the single client this session acts for, or nil.
// In guest mode both name fields must be populated; email and phone alone
// are not enough. Callers that save or generate must treat nil as a
// precondition failure and make no network call.
func (s *Session) EffectiveClient() *Client {
	if s.GuestMode {
		if s.guestDraft == nil {
			return nil
		}
		if s.guestDraft.FirstName == "" || s.guestDraft.LastName == "" {
			return nil
		}
		return s.guestDraft
	}
	return s.SelectedClient
}
