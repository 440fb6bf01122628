package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentregistry-dev/mcp-setup/internal/platform"
	"github.com/agentregistry-dev/mcp-setup/pkg/models"
)

func findEntry(t *testing.T, entries []Entry, name string) Entry {
	t.Helper()
	for _, e := range entries {
		if e.Name == name {
			return e
		}
	}
	t.Fatalf("entry %q not found", name)
	return Entry{}
}

func TestListingGeminiUnavailable(t *testing.T) {
	entries := Effective(unavailableGemini()).Listing()

	assert.Len(t, entries, len(Defaults())+len(Optional())+1)

	gemini := findEntry(t, entries, platform.GeminiServerName)
	assert.False(t, gemini.Available)
	assert.Empty(t, gemini.Invocation)
	assert.Contains(t, gemini.Note, "cargo build --release")
	assert.Equal(t, models.TierOptional, gemini.Tier)
}

func TestListingGeminiAvailable(t *testing.T) {
	entries := Effective(availableGemini()).Listing()

	gemini := findEntry(t, entries, platform.GeminiServerName)
	assert.True(t, gemini.Available)
	assert.Equal(t, "/repo/gemini-mcp-rs/target/release/gemini-mcp --model gemini-3-pro-preview", gemini.Invocation)
}

func TestListingMatchesSelection(t *testing.T) {
	for _, res := range []platform.Resolution{availableGemini(), unavailableGemini()} {
		c := Effective(res)
		for _, e := range c.Listing() {
			sel := c.Select([]string{e.Name})
			if e.Available {
				require.Len(t, sel.Servers, 1, e.Name)
				assert.Equal(t, e.Invocation, sel.Servers[0].Invocation())
			} else {
				assert.Empty(t, sel.Servers, e.Name)
				require.Len(t, sel.Issues, 1)
				assert.Equal(t, IssueUnavailable, sel.Issues[0].Kind)
			}
		}
	}
}

func TestListingTiers(t *testing.T) {
	entries := Effective(unavailableGemini()).Listing()

	assert.Equal(t, models.TierDefault, findEntry(t, entries, "context7").Tier)
	assert.Equal(t, models.TierOptional, findEntry(t, entries, "github").Tier)
}

func TestListingNotesRequiredEnv(t *testing.T) {
	entries := Effective(unavailableGemini()).Listing()

	assert.Equal(t, "requires: GITHUB_TOKEN", findEntry(t, entries, "github").Note)
	assert.Equal(t, "requires: DATABASE_URL", findEntry(t, entries, "postgres").Note)
	assert.Empty(t, findEntry(t, entries, "filesystem").Note)
	assert.Empty(t, findEntry(t, entries, "context7").Note)
}
