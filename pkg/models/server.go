package models

import "strings"

// Tier identifies which catalog table a server descriptor belongs to.
type Tier string

const (
	// TierDefault servers are applied unless the caller picks an explicit selection.
	TierDefault Tier = "default"
	// TierOptional servers are applied only when requested by name.
	TierOptional Tier = "optional"
)

// ServerDescriptor describes a single MCP server invocation known to the catalog.
// Env values may contain placeholder tokens such as ${GITHUB_TOKEN}; they are
// resolved by the host that launches the server, never by this tool.
type ServerDescriptor struct {
	Name         string            `yaml:"name" json:"name"`
	Command      string            `yaml:"command" json:"command"`
	Args         []string          `yaml:"args" json:"args"`
	Env          map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
	DeferLoading bool              `yaml:"defer_loading" json:"defer_loading"`
	// Description is shown in listings and stripped before persistence.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Invocation returns the command line a host would run for this server.
func (d ServerDescriptor) Invocation() string {
	if d.Command == "" {
		return ""
	}
	parts := append([]string{d.Command}, d.Args...)
	return strings.Join(parts, " ")
}

// Clone returns a deep copy so callers can't alias catalog tables.
func (d ServerDescriptor) Clone() ServerDescriptor {
	out := d
	if d.Args != nil {
		out.Args = append([]string(nil), d.Args...)
	}
	if d.Env != nil {
		out.Env = make(map[string]string, len(d.Env))
		for k, v := range d.Env {
			out.Env[k] = v
		}
	}
	return out
}
