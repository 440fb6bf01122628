package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentregistry-dev/mcp-setup/internal/cli"
	"github.com/agentregistry-dev/mcp-setup/internal/cli/configure"
	"github.com/agentregistry-dev/mcp-setup/pkg/printer"
)

var rootCmd = NewRootCmd()

// NewRootCmd builds a fresh command tree. Tests use it to avoid sharing flag
// state between runs.
func NewRootCmd() *cobra.Command {
	opts := configure.NewOptions()

	cmd := &cobra.Command{
		Use:   "mcp-setup",
		Short: "Configure MCP servers for a project",
		Long: `mcp-setup writes MCP server entries into the project's .mcp.json.

The default servers (context7, playwright) are added unless --servers is
given. Optional servers (github, postgres, filesystem, gemini) are added with
--include. Both flags take comma-separated names and may be repeated. Entries
that already exist in the file are never changed, so local edits survive
repeated runs.`,
		Example: `  mcp-setup                                     # add the default servers to ./.mcp.json
  mcp-setup -p ~/src/app --include github       # defaults plus github
  mcp-setup --servers context7,filesystem       # only these two
  mcp-setup -i github -i postgres               # repeated flags also work
  mcp-setup --list -o yaml                      # show the catalog`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Complete(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return configure.Execute(cmd, opts)
		},
	}
	cmd.CompletionOptions.HiddenDefaultCmd = true

	opts.AddFlags(cmd)
	opts.AddPersistentFlags(cmd)

	cmd.AddCommand(configure.NewListCmd(opts))
	cmd.AddCommand(cli.NewVersionCmd())
	return cmd
}

// Execute runs the root command and exits non-zero on failure. Errors are
// printed to stdout alongside the rest of the output.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		p := printer.New(printer.OutputTypeTable, false)
		p.SetOutput(rootCmd.OutOrStdout())
		p.Error(err.Error())
		os.Exit(1)
	}
}
