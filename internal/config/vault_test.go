package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewVaultClientDisabled(t *testing.T) {
	client, err := NewVaultClient(VaultConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("Disabled vault should not error: %v", err)
	}
	if client != nil {
		t.Error("Disabled vault should return a nil client")
	}
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	cfg := &Config{Vault: VaultConfig{Enabled: false}}
	if err := ApplyVaultSecrets(cfg, nil); err != nil {
		t.Errorf("Disabled vault should be a no-op, got: %v", err)
	}
}

func TestResolveVaultToken(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(tokenFile, []byte("  file-token\n"), 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		config      VaultConfig
		expected    string
		expectError bool
	}{
		{
			name:     "inline token",
			config:   VaultConfig{Token: "inline-token"},
			expected: "inline-token",
		},
		{
			name:     "token file",
			config:   VaultConfig{TokenFile: tokenFile},
			expected: "file-token",
		},
		{
			name:     "inline wins over file",
			config:   VaultConfig{Token: "inline-token", TokenFile: tokenFile},
			expected: "inline-token",
		},
		{
			name:        "missing token",
			config:      VaultConfig{},
			expectError: true,
		},
		{
			name:        "unreadable token file",
			config:      VaultConfig{TokenFile: filepath.Join(t.TempDir(), "missing")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := resolveVaultToken(tt.config)
			if tt.expectError {
				if err == nil {
					t.Error("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if token != tt.expected {
				t.Errorf("Expected token %q, got %q", tt.expected, token)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Gateway:  GatewayConfig{BaseURL: "https://gw.example.org", Timeout: 1},
			Preview:  PreviewConfig{Debounce: 1},
			Autosave: AutosaveConfig{Debounce: 1},
			Server:   ServerConfig{Port: "8080"},
			App: AppConfig{
				DefaultFormat:    "json",
				SupportedFormats: []string{"json", "text", "markdown"},
			},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("Valid config should pass: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "missing gateway URL",
			mutate:  func(c *Config) { c.Gateway.BaseURL = "" },
			wantMsg: "gateway base URL",
		},
		{
			name:    "zero gateway timeout",
			mutate:  func(c *Config) { c.Gateway.Timeout = 0 },
			wantMsg: "gateway timeout",
		},
		{
			name:    "zero preview debounce",
			mutate:  func(c *Config) { c.Preview.Debounce = 0 },
			wantMsg: "preview debounce",
		},
		{
			name:    "zero autosave debounce",
			mutate:  func(c *Config) { c.Autosave.Debounce = 0 },
			wantMsg: "autosave debounce",
		},
		{
			name:    "missing server port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantMsg: "server port",
		},
		{
			name:    "unsupported default format",
			mutate:  func(c *Config) { c.App.DefaultFormat = "yaml" },
			wantMsg: "invalid default format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Expected error mentioning %q, got: %v", tt.wantMsg, err)
			}
		})
	}
}
