package catalog

import (
	"fmt"
	"strings"

	"github.com/agentregistry-dev/mcp-setup/pkg/models"
)

// IssueKind classifies why a requested name was left out of a selection.
type IssueKind string

const (
	// IssueUnknown means the name is not in the relevant catalog tier.
	IssueUnknown IssueKind = "unknown"
	// IssueUnavailable means the name is known but cannot be configured on this host.
	IssueUnavailable IssueKind = "unavailable"
)

// Issue reports a requested name that was skipped. Issues are never fatal.
type Issue struct {
	Name         string
	Kind         IssueKind
	Suggestions  []string
	Instructions string
}

func (i Issue) String() string {
	switch i.Kind {
	case IssueUnavailable:
		msg := fmt.Sprintf("server %q is not available on this system", i.Name)
		if i.Instructions != "" {
			msg += " (" + i.Instructions + ")"
		}
		return msg
	default:
		msg := fmt.Sprintf("unknown server %q, skipping", i.Name)
		if len(i.Suggestions) > 0 {
			msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(i.Suggestions, ", "))
		}
		return msg
	}
}

// Selection is the ordered set of servers resolved from caller input.
type Selection struct {
	Servers []models.ServerDescriptor
	Issues  []Issue
}

// Names returns the selected server names in order.
func (s Selection) Names() []string {
	names := make([]string, len(s.Servers))
	for i, d := range s.Servers {
		names[i] = d.Name
	}
	return names
}

func (s *Selection) add(d models.ServerDescriptor) {
	for _, existing := range s.Servers {
		if existing.Name == d.Name {
			return
		}
	}
	s.Servers = append(s.Servers, d)
}

// Select resolves names against the default tier, then the optional tier.
// An empty names list selects the default tier.
func (c *Catalog) Select(names []string) Selection {
	var sel Selection
	if len(names) == 0 {
		for _, d := range c.DefaultServers() {
			sel.add(d)
		}
		return sel
	}

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if d, _, ok := c.Lookup(name); ok {
			sel.add(d)
			continue
		}
		sel.Issues = append(sel.Issues, c.issueFor(name))
	}
	return sel
}

// Include resolves names against the optional tier only.
func (c *Catalog) Include(names []string) Selection {
	var sel Selection
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if d, ok := c.LookupOptional(name); ok {
			sel.add(d)
			continue
		}
		sel.Issues = append(sel.Issues, c.issueFor(name))
	}
	return sel
}

// Plan combines Select(servers) with Include(include). The first occurrence of
// a name wins.
func (c *Catalog) Plan(servers, include []string) Selection {
	plan := c.Select(servers)
	extra := c.Include(include)
	for _, d := range extra.Servers {
		plan.add(d)
	}
	plan.Issues = append(plan.Issues, extra.Issues...)
	return plan
}

func (c *Catalog) issueFor(name string) Issue {
	if u, ok := c.geminiUnavailable(name); ok {
		return Issue{
			Name:         name,
			Kind:         IssueUnavailable,
			Instructions: u.Instructions,
		}
	}
	return Issue{
		Name:        name,
		Kind:        IssueUnknown,
		Suggestions: c.suggest(name),
	}
}
