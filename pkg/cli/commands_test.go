package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// TestCommandTree verifies the CLI command hierarchy is correct.
func TestCommandTree(t *testing.T) {
	root := NewRootCmd()

	expected := []string{"list", "version"}
	got := childNames(root)
	slices.Sort(got)

	if !slices.Equal(expected, got) {
		t.Fatalf("top-level commands: got %v, want %v", got, expected)
	}
}

// TestCommandsHaveRequiredMetadata verifies every command has Use and Short fields set.
func TestCommandsHaveRequiredMetadata(t *testing.T) {
	root := NewRootCmd()

	var walk func(cmd *cobra.Command, path string)
	walk = func(cmd *cobra.Command, path string) {
		if cmd.Use == "" {
			t.Errorf("%s: Use field is empty", path)
		}
		if cmd.Short == "" {
			t.Errorf("%s: Short field is empty", path)
		}
		for _, child := range cmd.Commands() {
			walk(child, path+"/"+child.Name())
		}
	}

	walk(root, "mcp-setup")
}

// TestRootFlags verifies flag registration on the root command.
func TestRootFlags(t *testing.T) {
	root := NewRootCmd()

	local := []string{"project-dir", "servers", "include", "list", "dry-run", "config-file"}
	for _, name := range local {
		if root.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s not registered", name)
		}
	}

	persistent := []string{"gemini-dir", "output", "no-headers", "verbose"}
	for _, name := range persistent {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("persistent flag --%s not registered", name)
		}
	}

	shorthands := map[string]string{"p": "project-dir", "s": "servers", "i": "include", "l": "list"}
	for short, long := range shorthands {
		f := root.Flags().ShorthandLookup(short)
		if f == nil || f.Name != long {
			t.Errorf("-%s should map to --%s", short, long)
		}
	}
}

// TestListInheritsPersistentFlags verifies list sees the root's persistent flags.
func TestListInheritsPersistentFlags(t *testing.T) {
	root := NewRootCmd()
	list := findSubcommand(root, "list")
	if list == nil {
		t.Fatal("list command not found")
	}
	for _, name := range []string{"gemini-dir", "output", "verbose"} {
		if list.InheritedFlags().Lookup(name) == nil {
			t.Errorf("list does not inherit --%s", name)
		}
	}
}

func TestServerFlagsAreCommaSeparated(t *testing.T) {
	root := NewRootCmd()
	check := func(name string) {
		f := root.Flags().Lookup(name)
		if f == nil {
			t.Fatalf("flag --%s not registered", name)
		}
		if !strings.Contains(f.Usage, "Comma-separated") {
			t.Errorf("--%s usage should mention comma separation: %q", name, f.Usage)
		}
		if f.Value.Type() != "stringSlice" {
			t.Errorf("--%s should be a string slice, got %s", name, f.Value.Type())
		}
	}
	check("servers")
	check("include")
}

func childNames(cmd *cobra.Command) []string {
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	return names
}

func findSubcommand(root *cobra.Command, name string) *cobra.Command {
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}
