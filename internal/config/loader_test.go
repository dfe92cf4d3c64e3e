package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldpaths/internal/logger"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fieldpaths.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, []string{"./..."}, cfg.Analyze.Packages)
	assert.Empty(t, cfg.Analyze.Terminals)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, 8, cfg.Output.MaxDepth)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, `
log:
  level: info
analyze:
  packages: [./store, ./warehouse]
output:
  format: yaml
  max_depth: 3
`)

	t.Setenv("FIELDPATHS_LOG_LEVEL", "debug")
	t.Setenv("FIELDPATHS_ANALYZE_TERMINALS", "github.com/google/uuid.UUID, net/netip.Addr")
	t.Setenv("FIELDPATHS_UNRELATED", "ignored")

	cfg, err := Load(Options{
		File:      path,
		Overrides: map[string]any{"output.format": "json"},
	})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level, "environment wins over the file")
	assert.Equal(t, []string{"./store", "./warehouse"}, cfg.Analyze.Packages)
	assert.Equal(t, []string{"github.com/google/uuid.UUID", "net/netip.Addr"}, cfg.Analyze.Terminals)
	assert.Equal(t, "json", cfg.Output.Format, "overrides win over the file")
	assert.Equal(t, 3, cfg.Output.MaxDepth)
	assert.False(t, cfg.Output.Outline)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		message string
	}{
		{"invalid format", "output:\n  format: xml\n", "configuration validation failed"},
		{"invalid depth", "output:\n  max_depth: 0\n", "configuration validation failed"},
		{"invalid level", "log:\n  level: loud\n", "configuration validation failed"},
		{"malformed yaml", "log: [\n", "failed to parse config file"},
		{"wrong type", "output:\n  max_depth: deep\n", "failed to unmarshal configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(Options{File: writeConfig(t, tt.file)})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(Options{File: filepath.Join(t.TempDir(), "absent.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestEnvMappings(t *testing.T) {
	envs := make(map[string]string)
	for _, m := range EnvMappings() {
		envs[m.EnvVar] = m.ConfigPath
	}

	assert.Equal(t, "log.level", envs["LOG_LEVEL"])
	assert.Equal(t, "analyze.terminals", envs["ANALYZE_TERMINALS"])
	assert.Equal(t, "output.max_depth", envs["OUTPUT_MAX_DEPTH"])
	assert.Len(t, envs, 7)
}

func TestConfig_LoggerConfig(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "debug"
	cfg.Log.JSON = true

	var buf bytes.Buffer

	lc := cfg.LoggerConfig(&buf)
	assert.Equal(t, logger.DebugLevel, lc.Level)
	assert.True(t, lc.JSON)

	logger.New(lc).Debug("hello", "key", "value")
	assert.Contains(t, buf.String(), `"key":"value"`)
}

func TestValidate_Nil(t *testing.T) {
	require.Error(t, Validate(nil))
}
