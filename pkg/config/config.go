package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Assembly AssemblyAIConfig
	Gemini   GeminiConfig
	Storage  StorageConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds SQLite database configuration
type DatabaseConfig struct {
	Path string `envconfig:"DB_PATH" default:"meetings.db"`
}

// AssemblyAIConfig holds transcription service configuration
type AssemblyAIConfig struct {
	APIKey          string        `envconfig:"ASSEMBLYAI_API_KEY"`
	PollInterval    time.Duration `envconfig:"ASSEMBLYAI_POLL_INTERVAL" default:"5s"`
	MaxPollAttempts int           `envconfig:"ASSEMBLYAI_MAX_POLLS" default:"60"`
}

// GeminiConfig holds language model service configuration
type GeminiConfig struct {
	APIKey string `envconfig:"GEMINI_API_KEY"`
	Model  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
}

// StorageConfig holds optional object storage configuration for audio archival
type StorageConfig struct {
	Endpoint        string `envconfig:"STORAGE_ENDPOINT"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meeting-audio"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration. Missing API keys are not fatal:
// the gateways degrade to fallback output and the health endpoint reports
// which credentials are absent.
func (c *Config) Validate() error {
	if c.Assembly.PollInterval <= 0 {
		return fmt.Errorf("ASSEMBLYAI_POLL_INTERVAL must be positive")
	}
	if c.Assembly.MaxPollAttempts <= 0 {
		return fmt.Errorf("ASSEMBLYAI_MAX_POLLS must be positive")
	}
	return nil
}

// AssemblyConfigured reports whether the transcription credential is present.
func (c *Config) AssemblyConfigured() bool {
	return strings.TrimSpace(c.Assembly.APIKey) != ""
}

// GeminiConfigured reports whether the language model credential is present.
func (c *Config) GeminiConfigured() bool {
	return strings.TrimSpace(c.Gemini.APIKey) != ""
}

// Enabled reports whether object storage archival is configured.
func (s *StorageConfig) Enabled() bool {
	return s.Endpoint != ""
}

// GetServerAddr returns the listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
