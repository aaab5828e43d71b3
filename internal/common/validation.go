package common

import (
	"fmt"
	"slices"
	"strings"

	"nextchapter/internal/errors"
)

// ValidateOutputFormat validates format against configured supported formats.
// Matching is exact: format strings are lowercase everywhere (flags, config
// defaults, the formatter registry).
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil // No restrictions configured
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return errors.NewValidationError(errors.ErrCodeInvalidFormat,
		fmt.Sprintf("Unsupported output format '%s'. Supported formats: %s",
			format, strings.Join(supportedFormats, ", ")), nil)
}

// GetSupportedFormats returns the list of supported formats
func GetSupportedFormats(supportedFormats []string) []string {
	return supportedFormats
}
