package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "callclean.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultInput, cfg.Source.Path)
	assert.Equal(t, []string{"stdout"}, cfg.Sink.Drivers)
	assert.Equal(t, "text", cfg.Sink.Format)
	assert.True(t, cfg.Booleans.Unmapped)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `schema_version: v1
source:
  path: calls.csv
  delimiter: ";"
sink:
  format: json
booleans:
  unmapped: false
log:
  level: DEBUG
`)
	t.Setenv("CALLCLEAN__SINK__MAX_ROWS", "25")
	t.Setenv("CALLCLEAN__METRICS__TEXTFILE", "/tmp/callclean.prom")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "calls.csv", cfg.Source.Path)
	assert.Equal(t, ";", cfg.Source.Delimiter)
	assert.Equal(t, "json", cfg.Sink.Format)
	assert.Equal(t, 25, cfg.Sink.MaxRows)
	assert.Equal(t, []string{"stdout"}, cfg.Sink.Drivers)
	assert.False(t, cfg.Booleans.Unmapped)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/callclean.prom", cfg.Metrics.Textfile)
}

func TestLoad_LogLevelFromLoggingEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CALLCLEAN_LOG_LEVEL", "Warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_OverridesWin(t *testing.T) {
	path := writeConfig(t, "source:\n  path: a.xlsx\n")
	cfg, err := Load(path, func(c *Config) { c.Source.Path = "b.xlsx" })
	require.NoError(t, err)
	assert.Equal(t, "b.xlsx", cfg.Source.Path)
}

func TestLoad_InvalidSchema(t *testing.T) {
	path := writeConfig(t, "schema_version: v999\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid schema_version")
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoad_ValidationErrors(t *testing.T) {
	path := writeConfig(t, `sink:
  format: html
  max_rows: -1
  drivers: [stdout, kafka]
source:
  driver: parquet
`)
	_, err := Load(path)
	require.Error(t, err)
	for _, field := range []string{"Sink.Format", "Sink.MaxRows", "Sink.Drivers[1]", "Source.Driver"} {
		assert.Contains(t, err.Error(), field)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores it when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
