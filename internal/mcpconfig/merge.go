// Package mcpconfig reads, merges and writes the project MCP configuration
// file (.mcp.json).
//
// Entries already present in the file always win: the merge only inserts
// names that are absent and never refreshes an existing entry, even when the
// catalog's descriptor for that name has changed. Unrelated top-level keys,
// comments and member order are preserved.
package mcpconfig

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/agentregistry-dev/mcp-setup/pkg/models"
)

// Server is the persisted shape of a server entry.
type Server struct {
	Command      string            `json:"command"`
	Args         []string          `json:"args"`
	Env          map[string]string `json:"env,omitempty"`
	DeferLoading bool              `json:"defer_loading"`
}

// FromDescriptor converts a catalog descriptor to its persisted form,
// dropping the name and description.
func FromDescriptor(d models.ServerDescriptor) Server {
	args := d.Args
	if args == nil {
		args = []string{}
	}
	var env map[string]string
	if len(d.Env) > 0 {
		env = make(map[string]string, len(d.Env))
		for k, v := range d.Env {
			env[k] = v
		}
	}
	return Server{
		Command:      d.Command,
		Args:         append([]string(nil), args...),
		Env:          env,
		DeferLoading: d.DeferLoading,
	}
}

// Result describes the outcome of a merge.
type Result struct {
	// Servers is the full merged mapping: existing entries untouched plus the
	// newly inserted ones.
	Servers map[string]json.RawMessage
	// Added lists inserted names in request order.
	Added []string
	// Skipped lists requested names that were already present.
	Skipped []string
}

// Merge inserts every incoming server whose name is absent from existing.
// existing is not modified.
func Merge(existing map[string]json.RawMessage, incoming []models.ServerDescriptor) (Result, error) {
	res := Result{Servers: make(map[string]json.RawMessage, len(existing)+len(incoming))}
	for name, raw := range existing {
		res.Servers[name] = raw
	}

	for _, d := range incoming {
		if _, ok := res.Servers[d.Name]; ok {
			if !slices.Contains(res.Skipped, d.Name) && !slices.Contains(res.Added, d.Name) {
				res.Skipped = append(res.Skipped, d.Name)
			}
			continue
		}
		raw, err := json.Marshal(FromDescriptor(d))
		if err != nil {
			return Result{}, fmt.Errorf("failed to marshal server %q: %w", d.Name, err)
		}
		res.Servers[d.Name] = raw
		res.Added = append(res.Added, d.Name)
	}
	return res, nil
}
