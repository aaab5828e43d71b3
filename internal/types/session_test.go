package types

import (
	"strings"
	"testing"
)

func TestEffectiveClient(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(s *Session)
		wantClient bool
	}{
		{
			name:       "no selection and no guest mode",
			setup:      func(s *Session) {},
			wantClient: false,
		},
		{
			name: "real client selected",
			setup: func(s *Session) {
				s.SelectClient(&Client{ClientID: "c1", FirstName: "Maria", LastName: "Santos"})
			},
			wantClient: true,
		},
		{
			name: "guest mode with both names",
			setup: func(s *Session) {
				s.EnableGuestMode()
				s.SetGuestName("Jo", "Reyes")
			},
			wantClient: true,
		},
		{
			name: "guest mode missing last name despite contact info",
			setup: func(s *Session) {
				s.EnableGuestMode()
				s.SetGuestName("Jo", "")
				s.SetGuestContact("jo@example.com", "555-0100")
			},
			wantClient: false,
		},
		{
			name: "guest mode missing first name",
			setup: func(s *Session) {
				s.EnableGuestMode()
				s.SetGuestName("", "Reyes")
			},
			wantClient: false,
		},
		{
			name: "guest mode name cleared after being set",
			setup: func(s *Session) {
				s.EnableGuestMode()
				s.SetGuestName("Jo", "Reyes")
				s.SetGuestName("Jo", "   ")
			},
			wantClient: false,
		},
		{
			name: "guest mode disabled discards draft",
			setup: func(s *Session) {
				s.EnableGuestMode()
				s.SetGuestName("Jo", "Reyes")
				s.DisableGuestMode()
			},
			wantClient: false,
		},
		{
			name: "selecting a client leaves guest mode",
			setup: func(s *Session) {
				s.EnableGuestMode()
				s.SetGuestName("Jo", "Reyes")
				s.SelectClient(&Client{ClientID: "c2", FirstName: "Dee", LastName: "Lane"})
			},
			wantClient: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			tt.setup(s)

			got := s.EffectiveClient()
			if tt.wantClient && got == nil {
				t.Fatalf("Expected an effective client, got nil")
			}
			if !tt.wantClient && got != nil {
				t.Fatalf("Expected no effective client, got %+v", got)
			}
		})
	}
}

func TestGuestIDIsPerSession(t *testing.T) {
	a := NewSession()
	a.EnableGuestMode()
	a.SetGuestName("Jo", "Reyes")

	b := NewSession()
	b.EnableGuestMode()
	b.SetGuestName("Jo", "Reyes")

	idA := a.EffectiveClient().ClientID
	idB := b.EffectiveClient().ClientID

	if !strings.HasPrefix(idA, "guest-") {
		t.Errorf("Expected guest id prefix, got %q", idA)
	}
	if idA == idB {
		t.Errorf("Expected distinct guest ids per session, both were %q", idA)
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		name     string
		client   Client
		expected string
	}{
		{"both names", Client{FirstName: "Maria", LastName: "Santos"}, "Maria Santos"},
		{"first only", Client{FirstName: "Maria"}, "Maria"},
		{"last only", Client{LastName: "Santos"}, "Santos"},
		{"neither", Client{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.client.FullName(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
