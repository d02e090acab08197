package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "SECPLUS_TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "SECPLUS_TEST_VAR_2", "", "default", "default"},
		{"uses default when blank", "SECPLUS_TEST_VAR_3", "   ", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envValue)
			assert.Equal(t, tc.expected, getEnvOrDefault(tc.key, tc.defaultVal))
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"SECPLUS_ORIGIN", "SECPLUS_LOG_FILE", "SECPLUS_LOG_LEVEL", "SECPLUS_EXPORT_DIR"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, &Config{
		Origin:    "http://localhost:8000",
		LogFile:   "secplus-chat.log",
		LogLevel:  "info",
		ExportDir: ".",
	}, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("SECPLUS_ORIGIN=https://tutor.example\nSECPLUS_LOG_LEVEL=debug\n"), 0o600))

	// os.Unsetenv so godotenv may fill them; restored after the test
	for _, key := range []string{"SECPLUS_ORIGIN", "SECPLUS_LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("SECPLUS_EXPORT_DIR", "/tmp/exports")

	cfg := Load()
	assert.Equal(t, "https://tutor.example", cfg.Origin)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/exports", cfg.ExportDir)
}

func TestValidate(t *testing.T) {
	valid := Config{Origin: "http://localhost:8000", LogLevel: "info", ExportDir: "."}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"https origin", func(c *Config) { c.Origin = "https://example.com/" }, false},
		{"websocket origin", func(c *Config) { c.Origin = "ws://localhost:8000" }, true},
		{"missing host", func(c *Config) { c.Origin = "http://" }, true},
		{"unparseable origin", func(c *Config) { c.Origin = "http://[::1" }, true},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"empty export dir", func(c *Config) { c.ExportDir = "" }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}
