package config

import (
	"log"
	"os"
	"strings"
)

// applyFallbacks applies environment variable fallbacks
func (c *Config) applyFallbacks() {
	c.applyServerAPIKeyFallbacks()
	c.applyOutputDirFallback()
}

// applyServerAPIKeyFallbacks applies API key fallbacks from environment variables
func (c *Config) applyServerAPIKeyFallbacks() {
	if len(c.Server.APIKeys) == 0 {
		if apiKeysEnv := os.Getenv("NEXTCHAPTER_SERVER_APIKEYS"); apiKeysEnv != "" {
			c.Server.APIKeys = strings.Split(apiKeysEnv, ",")
			for i, key := range c.Server.APIKeys {
				c.Server.APIKeys[i] = strings.TrimSpace(key)
			}
		}
	}
}

// applyOutputDirFallback keeps downloads in the working directory when the
// configured output directory is blank.
func (c *Config) applyOutputDirFallback() {
	if strings.TrimSpace(c.PDF.OutputDir) == "" {
		c.PDF.OutputDir = "."
	}
}

// logConfigurationSources logs a summary of configuration sources being used
func (c *Config) logConfigurationSources(configFileUsed string) {
	log.Println("[CONFIG] === Configuration Sources Summary ===")

	if configFileUsed != "" {
		log.Printf("[CONFIG] Config file: %s", configFileUsed)
	} else {
		log.Println("[CONFIG] Config file: None (using defaults)")
	}

	envVars := []string{
		"NEXTCHAPTER_GATEWAY_BASEURL",
		"NEXTCHAPTER_GATEWAY_TIMEOUT",
		"NEXTCHAPTER_GATEWAY_APIKEY",
		"NEXTCHAPTER_SERVER_PORT",
		"NEXTCHAPTER_SERVER_HOST",
		"NEXTCHAPTER_APP_LOGLEVEL",
		"NEXTCHAPTER_VAULT_ENABLED",
	}

	log.Println("[CONFIG] Environment variables:")
	hasEnvVars := false
	for _, envVar := range envVars {
		if value := os.Getenv(envVar); value != "" {
			// Mask sensitive values
			if strings.Contains(strings.ToLower(envVar), "apikey") || strings.Contains(strings.ToLower(envVar), "key") {
				log.Printf("[CONFIG]   %s=***MASKED***", envVar)
			} else {
				log.Printf("[CONFIG]   %s=%s", envVar, value)
			}
			hasEnvVars = true
		}
	}
	if !hasEnvVars {
		log.Println("[CONFIG]   None set")
	}

	log.Println("[CONFIG] === Key Configuration Values ===")
	log.Printf("[CONFIG] Gateway Base URL: %s", c.Gateway.BaseURL)
	log.Printf("[CONFIG] Gateway Timeout: %s", c.Gateway.Timeout)
	if c.Gateway.APIKey != "" {
		log.Println("[CONFIG] Gateway API Key: ***CONFIGURED***")
	} else {
		log.Println("[CONFIG] Gateway API Key: ***NOT SET***")
	}
	log.Printf("[CONFIG] Preview Debounce: %s", c.Preview.Debounce)
	log.Printf("[CONFIG] Autosave Enabled: %t (debounce %s)", c.Autosave.Enabled, c.Autosave.Debounce)
	log.Printf("[CONFIG] PDF Output Dir: %s", c.PDF.OutputDir)
	log.Printf("[CONFIG] Server Host: %s", c.Server.Host)
	log.Printf("[CONFIG] Server Port: %s", c.Server.Port)
	log.Printf("[CONFIG] Log Level: %s", c.App.LogLevel)
	log.Printf("[CONFIG] Vault Enabled: %t", c.Vault.Enabled)
	log.Printf("[CONFIG] Observability Enabled: %t", c.Observability.Enabled)
	log.Println("[CONFIG] =====================================")
}
