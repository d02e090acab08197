package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Defaults used when neither a flag nor the environment sets a value
const (
	DefaultOrigin    = "http://localhost:8000"
	DefaultLogFile   = "secplus-chat.log"
	DefaultLogLevel  = "info"
	DefaultExportDir = "."
)

type Config struct {
	// Backend
	Origin string

	// Logging
	LogFile  string
	LogLevel string

	// Export
	ExportDir string
}

// Load reads the configuration from the environment, honoring a .env file in
// the working directory if there is one. Variables already set win over .env.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Origin:    getEnvOrDefault("SECPLUS_ORIGIN", DefaultOrigin),
		LogFile:   getEnvOrDefault("SECPLUS_LOG_FILE", DefaultLogFile),
		LogLevel:  getEnvOrDefault("SECPLUS_LOG_LEVEL", DefaultLogLevel),
		ExportDir: getEnvOrDefault("SECPLUS_EXPORT_DIR", DefaultExportDir),
	}
}

// Validate checks the values that would otherwise only fail at first use
func (c *Config) Validate() error {
	u, err := url.Parse(c.Origin)
	if err != nil {
		return fmt.Errorf("invalid origin %q: %w", c.Origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid origin %q: scheme must be http or https", c.Origin)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid origin %q: missing host", c.Origin)
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	if c.ExportDir == "" {
		return errors.New("export dir must not be empty")
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	return val
}
