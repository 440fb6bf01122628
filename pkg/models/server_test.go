package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerDescriptorInvocation(t *testing.T) {
	tests := []struct {
		name string
		desc ServerDescriptor
		want string
	}{
		{
			name: "command with args",
			desc: ServerDescriptor{Command: "npx", Args: []string{"-y", "@upstash/context7-mcp"}},
			want: "npx -y @upstash/context7-mcp",
		},
		{
			name: "command only",
			desc: ServerDescriptor{Command: "/opt/bin/gemini-mcp"},
			want: "/opt/bin/gemini-mcp",
		},
		{
			name: "no command",
			desc: ServerDescriptor{Args: []string{"ignored"}},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.desc.Invocation())
		})
	}
}

func TestServerDescriptorClone(t *testing.T) {
	orig := ServerDescriptor{
		Name:    "github",
		Command: "npx",
		Args:    []string{"-y", "server"},
		Env:     map[string]string{"TOKEN": "${TOKEN}"},
	}

	clone := orig.Clone()
	clone.Args[0] = "changed"
	clone.Env["TOKEN"] = "changed"

	assert.Equal(t, "-y", orig.Args[0])
	assert.Equal(t, "${TOKEN}", orig.Env["TOKEN"])
}
