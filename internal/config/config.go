package config

import (
	"os"
	"strconv"
	"time"

	"corrlens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Correlation CorrelationConfig
	Data        DataConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings. URL may be empty,
// in which case run persistence is disabled.
type DatabaseConfig struct {
	URL string
}

// SourceKind selects where correlation matrices come from
type SourceKind string

const (
	SourceLocal  SourceKind = "local"
	SourceRemote SourceKind = "remote"
)

// CorrelationConfig holds matrix-source settings
type CorrelationConfig struct {
	Source        SourceKind
	ServiceURL    string
	ServiceAPIKey string
	Timeout       time.Duration
}

// DataConfig holds file handling settings
type DataConfig struct {
	UploadDir   string
	MaxFileSize int64
}

// Load builds configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Correlation: CorrelationConfig{
			Source:        SourceKind(getEnv("CORRELATION_SOURCE", string(SourceLocal))),
			ServiceURL:    os.Getenv("CORRELATION_SERVICE_URL"),
			ServiceAPIKey: os.Getenv("CORRELATION_SERVICE_API_KEY"),
			Timeout:       time.Duration(getEnvInt("CORRELATION_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Data: DataConfig{
			UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
			MaxFileSize: int64(getEnvInt("MAX_FILE_SIZE_MB", 50)) * 1024 * 1024,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	switch c.Correlation.Source {
	case SourceLocal, SourceRemote:
	default:
		return errors.ConfigInvalid("CORRELATION_SOURCE must be \"local\" or \"remote\"")
	}

	if c.Correlation.Source == SourceRemote && c.Correlation.ServiceURL == "" {
		return errors.ConfigInvalid("CORRELATION_SERVICE_URL is required for the remote source")
	}

	if c.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
