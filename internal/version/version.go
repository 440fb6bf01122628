// Package version carries build metadata injected with -ldflags.
package version

// These are overridden at build time, e.g.
//
//	-ldflags "-X github.com/agentregistry-dev/mcp-setup/internal/version.Version=v1.2.3"
var (
	Version   = "dev"
	GitCommit = "none"
	BuildDate = "unknown"
)
