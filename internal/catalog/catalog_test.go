package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentregistry-dev/mcp-setup/internal/platform"
	"github.com/agentregistry-dev/mcp-setup/pkg/models"
)

func availableGemini() platform.Resolution {
	return platform.Available{Descriptor: models.ServerDescriptor{
		Name:         platform.GeminiServerName,
		Command:      "/repo/gemini-mcp-rs/target/release/gemini-mcp",
		Args:         []string{"--model", platform.GeminiModel},
		DeferLoading: true,
	}}
}

func unavailableGemini() platform.Resolution {
	return platform.Unavailable{
		Path:         "/repo/gemini-mcp-rs/target/release/gemini-mcp",
		Instructions: "expected binary at /repo/gemini-mcp-rs/target/release/gemini-mcp; build it from /repo with: " + platform.BuildCommand(),
	}
}

func TestStaticTables(t *testing.T) {
	defaults := Defaults()
	require.Len(t, defaults, 2)
	for _, d := range defaults {
		assert.True(t, d.DeferLoading, d.Name)
		assert.NotEmpty(t, d.Command, d.Name)
	}

	assert.Equal(t, "context7", defaults[0].Name)
	assert.Equal(t, []string{"-y", "@upstash/context7-mcp@latest"}, defaults[0].Args)
	assert.Equal(t, "playwright", defaults[1].Name)
	assert.Equal(t, []string{"-y", "@playwright/mcp@latest"}, defaults[1].Args)

	var names []string
	for _, d := range Optional() {
		assert.True(t, d.DeferLoading, d.Name)
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"github", "postgres", "filesystem"}, names)
}

func TestOptionalEnvPlaceholders(t *testing.T) {
	c := Effective(unavailableGemini())

	github, ok := c.LookupOptional("github")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"GITHUB_TOKEN": "${GITHUB_TOKEN}"}, github.Env)

	postgres, ok := c.LookupOptional("postgres")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"DATABASE_URL": "${DATABASE_URL}"}, postgres.Env)

	filesystem, ok := c.LookupOptional("filesystem")
	require.True(t, ok)
	assert.Equal(t, []string{"-y", "@anthropic/filesystem-mcp@latest", "--root", "."}, filesystem.Args)
	assert.Empty(t, filesystem.Env)
}

func TestEffectiveDoesNotShareState(t *testing.T) {
	withGemini := Effective(availableGemini())
	without := Effective(unavailableGemini())

	_, ok := withGemini.LookupOptional(platform.GeminiServerName)
	assert.True(t, ok)
	_, ok = without.LookupOptional(platform.GeminiServerName)
	assert.False(t, ok)

	// Building the second catalog must not have touched the first.
	_, ok = withGemini.LookupOptional(platform.GeminiServerName)
	assert.True(t, ok)
	assert.Len(t, Optional(), len(without.OptionalServers()))
}

func TestEffectiveNilResolution(t *testing.T) {
	c := Effective(nil)
	_, ok := c.Gemini().(platform.Unavailable)
	assert.True(t, ok)
}

func TestLookupPrefersDefaults(t *testing.T) {
	c := Effective(unavailableGemini())

	d, tier, ok := c.Lookup("context7")
	require.True(t, ok)
	assert.Equal(t, models.TierDefault, tier)
	assert.Equal(t, "context7", d.Name)

	_, tier, ok = c.Lookup("github")
	require.True(t, ok)
	assert.Equal(t, models.TierOptional, tier)

	_, _, ok = c.Lookup("nonexistent")
	assert.False(t, ok)
}

func TestLookupReturnsCopies(t *testing.T) {
	c := Effective(unavailableGemini())

	d, _, ok := c.Lookup("github")
	require.True(t, ok)
	d.Env["GITHUB_TOKEN"] = "leaked"
	d.Args[0] = "mutated"

	again, _, _ := c.Lookup("github")
	assert.Equal(t, "${GITHUB_TOKEN}", again.Env["GITHUB_TOKEN"])
	assert.Equal(t, "-y", again.Args[0])
}

func TestNamesIncludesGeminiEitherWay(t *testing.T) {
	assert.Contains(t, Effective(availableGemini()).Names(), platform.GeminiServerName)
	assert.Contains(t, Effective(unavailableGemini()).Names(), platform.GeminiServerName)
}
