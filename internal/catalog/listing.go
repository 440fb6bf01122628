package catalog

import (
	"maps"
	"slices"
	"strings"

	"github.com/agentregistry-dev/mcp-setup/internal/platform"
	"github.com/agentregistry-dev/mcp-setup/pkg/models"
)

// Entry is one row of the catalog listing.
type Entry struct {
	Name        string      `json:"name" yaml:"name"`
	Tier        models.Tier `json:"tier" yaml:"tier"`
	Available   bool        `json:"available" yaml:"available"`
	Invocation  string      `json:"invocation,omitempty" yaml:"invocation,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Note        string      `json:"note,omitempty" yaml:"note,omitempty"`
}

// Listing enumerates every default and optional server, including the gemini
// entry whether or not it resolved. It reads the same tables Select and
// Include use.
func (c *Catalog) Listing() []Entry {
	var entries []Entry
	for _, d := range c.defaults {
		entries = append(entries, entryFor(d, models.TierDefault))
	}
	for _, d := range c.optional {
		entries = append(entries, entryFor(d, models.TierOptional))
	}
	if u, ok := c.gemini.(platform.Unavailable); ok {
		entries = append(entries, Entry{
			Name:      platform.GeminiServerName,
			Tier:      models.TierOptional,
			Available: false,
			Note:      u.Instructions,
		})
	}
	return entries
}

func entryFor(d models.ServerDescriptor, tier models.Tier) Entry {
	e := Entry{
		Name:        d.Name,
		Tier:        tier,
		Available:   true,
		Invocation:  d.Invocation(),
		Description: d.Description,
	}
	if len(d.Env) > 0 {
		e.Note = "requires: " + strings.Join(slices.Sorted(maps.Keys(d.Env)), ", ")
	}
	return e
}
