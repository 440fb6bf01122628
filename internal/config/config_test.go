package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Empty(t, cfg.ProjectDir)
	assert.Empty(t, cfg.GeminiDir)
	assert.Equal(t, ".mcp.json", cfg.ConfigFile)
	assert.Equal(t, 2*time.Second, cfg.LockTimeout)
	assert.False(t, cfg.Verbose)
}

func TestParseFromEnv(t *testing.T) {
	t.Setenv("MCP_SETUP_PROJECT_DIR", "/work/project")
	t.Setenv("MCP_SETUP_GEMINI_DIR", "/opt/gemini-mcp")
	t.Setenv("MCP_SETUP_CONFIG_FILE", "custom.json")
	t.Setenv("MCP_SETUP_LOCK_TIMEOUT", "5s")
	t.Setenv("MCP_SETUP_VERBOSE", "true")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "/work/project", cfg.ProjectDir)
	assert.Equal(t, "/opt/gemini-mcp", cfg.GeminiDir)
	assert.Equal(t, "custom.json", cfg.ConfigFile)
	assert.Equal(t, 5*time.Second, cfg.LockTimeout)
	assert.True(t, cfg.Verbose)
}

func TestParseInvalidValue(t *testing.T) {
	t.Setenv("MCP_SETUP_LOCK_TIMEOUT", "soon")

	_, err := Parse()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MCP_SETUP_GEMINI_DIR=/from/dotenv\n"), 0o644))
	t.Chdir(dir)
	// godotenv.Load does not override variables that are already set.
	t.Setenv("MCP_SETUP_GEMINI_DIR", "")
	require.NoError(t, os.Unsetenv("MCP_SETUP_GEMINI_DIR"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv", cfg.GeminiDir)
}

func TestLoadWithoutDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load()
	require.NoError(t, err)
}
