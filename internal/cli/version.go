package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentregistry-dev/mcp-setup/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "mcp-setup version %s\n", version.Version)
			_, _ = fmt.Fprintf(out, "  commit: %s\n", version.GitCommit)
			_, _ = fmt.Fprintf(out, "  built:  %s\n", version.BuildDate)
		},
	}
}
