// Package catalog holds the MCP servers this tool knows how to configure and
// resolves caller selections against them.
package catalog

import (
	"github.com/sahilm/fuzzy"

	"github.com/agentregistry-dev/mcp-setup/internal/platform"
	"github.com/agentregistry-dev/mcp-setup/pkg/models"
)

// Defaults returns the servers applied when no explicit selection is given.
func Defaults() []models.ServerDescriptor {
	return []models.ServerDescriptor{
		{
			Name:         "context7",
			Command:      "npx",
			Args:         []string{"-y", "@upstash/context7-mcp@latest"},
			DeferLoading: true,
			Description:  "Up-to-date library documentation lookup",
		},
		{
			Name:         "playwright",
			Command:      "npx",
			Args:         []string{"-y", "@playwright/mcp@latest"},
			DeferLoading: true,
			Description:  "Browser automation",
		},
	}
}

// Optional returns the statically declared optional servers. The gemini
// server is not part of this table; see Effective.
func Optional() []models.ServerDescriptor {
	return []models.ServerDescriptor{
		{
			Name:         "github",
			Command:      "npx",
			Args:         []string{"-y", "@anthropic/github-mcp@latest"},
			Env:          map[string]string{"GITHUB_TOKEN": "${GITHUB_TOKEN}"},
			DeferLoading: true,
		},
		{
			Name:         "postgres",
			Command:      "npx",
			Args:         []string{"-y", "@anthropic/postgres-mcp@latest"},
			Env:          map[string]string{"DATABASE_URL": "${DATABASE_URL}"},
			DeferLoading: true,
		},
		{
			Name:         "filesystem",
			Command:      "npx",
			Args:         []string{"-y", "@anthropic/filesystem-mcp@latest", "--root", "."},
			DeferLoading: true,
		},
	}
}

// Catalog is the effective set of servers for a single run.
type Catalog struct {
	defaults []models.ServerDescriptor
	optional []models.ServerDescriptor
	gemini   platform.Resolution
}

// Effective builds the catalog for this run from the static tables and the
// gemini probe result. The gemini entry is part of the optional tier only
// when res is platform.Available.
func Effective(res platform.Resolution) *Catalog {
	c := &Catalog{
		defaults: Defaults(),
		optional: Optional(),
		gemini:   res,
	}
	if res == nil {
		c.gemini = platform.Unavailable{}
	}
	if available, ok := c.gemini.(platform.Available); ok {
		desc := available.Descriptor.Clone()
		desc.Name = platform.GeminiServerName
		c.optional = append(c.optional, desc)
	}
	return c
}

// Gemini returns the resolution the catalog was built with.
func (c *Catalog) Gemini() platform.Resolution {
	return c.gemini
}

// DefaultServers returns copies of the default tier.
func (c *Catalog) DefaultServers() []models.ServerDescriptor {
	return cloneAll(c.defaults)
}

// OptionalServers returns copies of the optional tier, including gemini when
// it is available.
func (c *Catalog) OptionalServers() []models.ServerDescriptor {
	return cloneAll(c.optional)
}

// Lookup finds name in the default tier, then the optional tier.
func (c *Catalog) Lookup(name string) (models.ServerDescriptor, models.Tier, bool) {
	if d, ok := find(c.defaults, name); ok {
		return d, models.TierDefault, true
	}
	if d, ok := find(c.optional, name); ok {
		return d, models.TierOptional, true
	}
	return models.ServerDescriptor{}, "", false
}

// LookupOptional finds name in the optional tier only.
func (c *Catalog) LookupOptional(name string) (models.ServerDescriptor, bool) {
	return find(c.optional, name)
}

// Names returns every name a caller may request, defaults first.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.defaults)+len(c.optional)+1)
	for _, d := range c.defaults {
		names = append(names, d.Name)
	}
	for _, d := range c.optional {
		names = append(names, d.Name)
	}
	if _, ok := c.gemini.(platform.Unavailable); ok {
		names = append(names, platform.GeminiServerName)
	}
	return names
}

func (c *Catalog) geminiUnavailable(name string) (platform.Unavailable, bool) {
	if name != platform.GeminiServerName {
		return platform.Unavailable{}, false
	}
	u, ok := c.gemini.(platform.Unavailable)
	return u, ok
}

// suggest returns up to three catalog names that fuzzily match name.
func (c *Catalog) suggest(name string) []string {
	matches := fuzzy.Find(name, c.Names())
	var out []string
	for i, m := range matches {
		if i == 3 {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

func find(list []models.ServerDescriptor, name string) (models.ServerDescriptor, bool) {
	for _, d := range list {
		if d.Name == name {
			return d.Clone(), true
		}
	}
	return models.ServerDescriptor{}, false
}

func cloneAll(list []models.ServerDescriptor) []models.ServerDescriptor {
	out := make([]models.ServerDescriptor, len(list))
	for i, d := range list {
		out[i] = d.Clone()
	}
	return out
}
