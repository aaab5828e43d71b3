package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
// Gateway API Key Precedence Order:
// 1. Vault (if configured) - Highest priority
// 2. Config File values
// 3. Environment Variables (NEXTCHAPTER_GATEWAY_APIKEY, etc.)
// 4. Default values - Lowest priority
type Config struct {
	Gateway       GatewayConfig       `mapstructure:"gateway"`
	Preview       PreviewConfig       `mapstructure:"preview"`
	Autosave      AutosaveConfig      `mapstructure:"autosave"`
	PDF           PDFConfig           `mapstructure:"pdf"`
	Dashboard     DashboardConfig     `mapstructure:"dashboard"`
	Server        ServerConfig        `mapstructure:"server"`
	App           AppConfig           `mapstructure:"app"`
	Vault         VaultConfig         `mapstructure:"vault"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// GatewayConfig holds the remote case-management gateway configuration.
type GatewayConfig struct {
	BaseURL        string               `mapstructure:"baseURL"`
	Timeout        time.Duration        `mapstructure:"timeout"`
	APIKey         string               `mapstructure:"apiKey"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Time open before trying half-open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Min requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio that trips the breaker
}

// PreviewConfig holds live preview configuration.
type PreviewConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// AutosaveConfig holds the silent profile auto-save configuration.
type AutosaveConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// PDFConfig holds PDF generation and download configuration.
type PDFConfig struct {
	OutputDir     string              `mapstructure:"outputDir"`
	ForceNew      bool                `mapstructure:"forceNew"` // Always create a new resume record
	PrintFallback PrintFallbackConfig `mapstructure:"printFallback"`
}

// PrintFallbackConfig controls local printable-HTML handling when the
// gateway cannot render a true PDF.
type PrintFallbackConfig struct {
	Enabled    bool          `mapstructure:"enabled"` // Try headless Chrome print-to-PDF
	ChromePath string        `mapstructure:"chromePath"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// DashboardConfig holds the dashboard loader and offline cache configuration.
type DashboardConfig struct {
	CachePath string `mapstructure:"cachePath"`
}

// ServerConfig holds the local preview server configuration.
type ServerConfig struct {
	Host           string          `mapstructure:"host"`
	Port           string          `mapstructure:"port"`
	ReadTimeout    time.Duration   `mapstructure:"readTimeout"`
	WriteTimeout   time.Duration   `mapstructure:"writeTimeout"`
	IdleTimeout    time.Duration   `mapstructure:"idleTimeout"`
	APIKeys        []string        `mapstructure:"apiKeys"`
	RateLimit      RateLimitConfig `mapstructure:"rateLimit"`
	MaxRequestSize int64           `mapstructure:"maxRequestSize"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	RequestsPerMin int           `mapstructure:"requestsPerMin"`
	BurstCapacity  int           `mapstructure:"burstCapacity"`
	ByIP           bool          `mapstructure:"byIP"`
	ByAPIKey       bool          `mapstructure:"byAPIKey"`
	Window         time.Duration `mapstructure:"window"`
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	DebugErrors      bool     `mapstructure:"debugErrors"` // Show raw error text instead of user copy
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	Enabled        bool             `mapstructure:"enabled"`
	ServiceName    string           `mapstructure:"serviceName"`
	ServiceVersion string           `mapstructure:"serviceVersion"`
	SampleRate     float64          `mapstructure:"sampleRate"`
	ConsoleOutput  bool             `mapstructure:"consoleOutput"`
	Tracing        TracingConfig    `mapstructure:"tracing"`
	Metrics        MetricsConfig    `mapstructure:"metrics"`
	Prometheus     PrometheusConfig `mapstructure:"prometheus"`
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate float64 `mapstructure:"sampleRate"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	CollectionInterval time.Duration `mapstructure:"collectionInterval"`
}

// PrometheusConfig holds Prometheus configuration
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Port     string `mapstructure:"port"`
}

// LoadConfig loads configuration from environment variables and a config file
func LoadConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("NEXTCHAPTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/nextchapter/")
	v.AddConfigPath("$HOME/.nextchapter")
	v.AddConfigPath(".")

	configFileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("[CONFIG] No config file found, using defaults and environment variables")
	} else {
		configFileUsed = v.ConfigFileUsed()
		log.Printf("[CONFIG] Loaded config file: %s", configFileUsed)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyFallbacks()
	config.logConfigurationSources(configFileUsed)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Gateway.BaseURL == "" {
		return fmt.Errorf("gateway base URL is required (set NEXTCHAPTER_GATEWAY_BASEURL environment variable)")
	}

	if c.Gateway.Timeout <= 0 {
		return fmt.Errorf("gateway timeout must be positive")
	}

	if c.Preview.Debounce <= 0 {
		return fmt.Errorf("preview debounce must be positive")
	}

	if c.Autosave.Debounce <= 0 {
		return fmt.Errorf("autosave debounce must be positive")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	validFormats := make(map[string]bool)
	for _, format := range c.App.SupportedFormats {
		validFormats[format] = true
	}
	if !validFormats[c.App.DefaultFormat] {
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	}

	return nil
}
