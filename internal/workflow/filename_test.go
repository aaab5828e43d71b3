package workflow

import (
	"strings"
	"testing"
	"time"
)

func TestFormatFilename(t *testing.T) {
	day := time.Date(2026, 8, 29, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		first    string
		last     string
		resumeID string
		expected string
	}{
		{
			name:     "plain names with resume id",
			first:    "Maria",
			last:     "Santos",
			resumeID: "r1",
			expected: "resume_Maria_Santos_r1_2026-08-29.pdf",
		},
		{
			name:     "no resume id",
			first:    "Jane",
			last:     "Doe",
			expected: "resume_Jane_Doe_2026-08-29.pdf",
		},
		{
			name:     "apostrophes stripped",
			first:    "Jo'Ann",
			last:     "O'Brien",
			expected: "resume_JoAnn_OBrien_2026-08-29.pdf",
		},
		{
			name:     "spaces and symbols collapse",
			first:    "Mary Beth",
			last:     "St. James!!",
			resumeID: "r9",
			expected: "resume_Mary_Beth_St_James_r9_2026-08-29.pdf",
		},
		{
			name:     "empty names",
			first:    "",
			last:     "",
			resumeID: "r1",
			expected: "resume_r1_2026-08-29.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatFilename(tt.first, tt.last, tt.resumeID, day)
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
			if strings.ContainsAny(got, "'! ") {
				t.Errorf("Expected sanitized filename, got %q", got)
			}
		})
	}
}

func TestFormatFilenameDeterministicSameDay(t *testing.T) {
	morning := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 8, 29, 22, 30, 0, 0, time.UTC)

	first := FormatFilename("Jane", "Doe", "r1", morning)
	second := FormatFilename("Jane", "Doe", "r1", evening)

	if first != second {
		t.Errorf("Expected identical filenames on the same day, got %q and %q", first, second)
	}
}
