package config

import (
	"time"

	"github.com/spf13/viper"
)

// defaultGatewayBaseURL is the hosted backend origin used when no base URL
// is configured. Self-hosted deployments always set their own.
const defaultGatewayBaseURL = "https://api.nextchapter-reentry.org"

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Gateway Configuration
	v.SetDefault("gateway.baseURL", defaultGatewayBaseURL)
	v.SetDefault("gateway.timeout", 8000*time.Millisecond)
	v.SetDefault("gateway.apiKey", "")

	// Gateway circuit breaker defaults
	v.SetDefault("gateway.circuitBreaker.enabled", true)
	v.SetDefault("gateway.circuitBreaker.maxRequests", 3)
	v.SetDefault("gateway.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("gateway.circuitBreaker.timeout", 30*time.Second)
	v.SetDefault("gateway.circuitBreaker.minRequests", 3)
	v.SetDefault("gateway.circuitBreaker.failureThreshold", 0.6)

	// Preview Configuration
	v.SetDefault("preview.debounce", 300*time.Millisecond)

	// Autosave Configuration
	v.SetDefault("autosave.enabled", true)
	v.SetDefault("autosave.debounce", 2000*time.Millisecond)

	// PDF Configuration
	v.SetDefault("pdf.outputDir", ".")
	v.SetDefault("pdf.forceNew", false)
	v.SetDefault("pdf.printFallback.enabled", true)
	v.SetDefault("pdf.printFallback.chromePath", "")
	v.SetDefault("pdf.printFallback.timeout", 60*time.Second)

	// Dashboard Configuration
	v.SetDefault("dashboard.cachePath", "")

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.idleTimeout", 120*time.Second)
	v.SetDefault("server.apiKeys", []string{})
	v.SetDefault("server.maxRequestSize", 1024*1024) // 1MB

	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.debugErrors", false)

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.gatewayKey", "")
	v.SetDefault("vault.secrets.serverAPIKeys", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "nextchapter")
	v.SetDefault("observability.serviceVersion", "")
	v.SetDefault("observability.sampleRate", 1.0)
	v.SetDefault("observability.consoleOutput", false)

	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")
}
