package workflow

import (
	"regexp"
	"strings"
	"time"
)

var (
	filenameUnsafe      = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	repeatedUnderscores = regexp.MustCompile(`_+`)
)

// FormatFilename builds the download filename for a generated resume PDF:
// resume_First_Last[_resumeID]_YYYY-MM-DD.pdf. Characters outside
// [A-Za-z0-9_-] are stripped and runs of underscores collapsed, so the
// result is filesystem-safe on every platform. Two calls with the same
// inputs on the same calendar day return the same name.
func FormatFilename(firstName, lastName, resumeID string, now time.Time) string {
	name := sanitizeFilenamePart(firstName + "_" + lastName)

	parts := []string{"resume"}
	if name != "" {
		parts = append(parts, name)
	}
	if resumeID != "" {
		parts = append(parts, sanitizeFilenamePart(resumeID))
	}
	parts = append(parts, now.Format("2006-01-02"))

	return strings.Join(parts, "_") + ".pdf"
}

func sanitizeFilenamePart(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
	s = filenameUnsafe.ReplaceAllString(s, "")
	s = repeatedUnderscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
