package common

import (
	"strings"
	"testing"

	"nextchapter/internal/errors"
)

func TestValidateOutputFormat(t *testing.T) {
	supported := []string{"json", "text", "markdown"}

	tests := []struct {
		name             string
		format           string
		supportedFormats []string
		expectError      bool
	}{
		{
			name:             "json is supported",
			format:           "json",
			supportedFormats: supported,
			expectError:      false,
		},
		{
			name:             "text is supported",
			format:           "text",
			supportedFormats: supported,
			expectError:      false,
		},
		{
			name:             "markdown is supported",
			format:           "markdown",
			supportedFormats: supported,
			expectError:      false,
		},
		{
			name:             "xml is rejected",
			format:           "xml",
			supportedFormats: supported,
			expectError:      true,
		},
		{
			name:             "matching is case sensitive",
			format:           "JSON",
			supportedFormats: supported,
			expectError:      true,
		},
		{
			name:             "empty format is rejected",
			format:           "",
			supportedFormats: supported,
			expectError:      true,
		},
		{
			name:             "no restrictions allows anything",
			format:           "xml",
			supportedFormats: []string{},
			expectError:      false,
		},
		{
			name:             "single supported format",
			format:           "text",
			supportedFormats: []string{"json"},
			expectError:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, tt.supportedFormats)

			if !tt.expectError {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Expected error but got none")
			}
			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("Expected an AppError, got %T", err)
			}
			if appErr.Code != errors.ErrCodeInvalidFormat {
				t.Errorf("Expected code %s, got %s", errors.ErrCodeInvalidFormat, appErr.Code)
			}
			if !strings.Contains(appErr.Message, tt.format) {
				t.Errorf("Expected the message to name the rejected format, got: %s", appErr.Message)
			}
		})
	}
}

func TestGetSupportedFormats(t *testing.T) {
	formats := []string{"json", "text", "markdown"}
	result := GetSupportedFormats(formats)

	if len(result) != len(formats) {
		t.Fatalf("Expected %d formats, got %d", len(formats), len(result))
	}
	for i, expected := range formats {
		if result[i] != expected {
			t.Errorf("Expected format[%d] = '%s', got '%s'", i, expected, result[i])
		}
	}
}

func BenchmarkValidateOutputFormat(b *testing.B) {
	supportedFormats := []string{"json", "text", "markdown"}

	b.Run("valid format", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("json", supportedFormats)
		}
	})

	b.Run("invalid format", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("xml", supportedFormats)
		}
	})
}
