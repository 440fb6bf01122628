package configure

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentregistry-dev/mcp-setup/internal/catalog"
	"github.com/agentregistry-dev/mcp-setup/pkg/printer"
)

// NewListCmd creates the list command. It shares o with the root command so
// that persistent flags such as --gemini-dir apply to both.
func NewListCmd(o *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List default and optional MCP servers",
		Long:  `Lists every server the tool can configure, including whether the gemini server is available on this machine. Nothing is written.`,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return o.Complete(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			o.List = true
			return Execute(cmd, o)
		},
	}
}

func runList(cat *catalog.Catalog, o *Options, p *printer.Printer) error {
	entries := cat.Listing()

	switch p.OutputType() {
	case printer.OutputTypeJSON:
		return p.PrintJSON(entries)
	case printer.OutputTypeYAML:
		return p.PrintYAML(entries)
	}

	var opts []printer.Option
	if p.Wide() {
		opts = append(opts, printer.WithWide())
	}
	if o.NoHeaders {
		opts = append(opts, printer.WithNoHeaders())
	}
	tp := printer.NewTablePrinter(p.Output(), opts...)
	if tp.IsWide() {
		tp.SetHeaders("Name", "Tier", "Status", "Invocation", "Description")
	} else {
		tp.SetHeaders("Name", "Tier", "Status", "Invocation")
	}

	for _, e := range entries {
		invocation := printer.EmptyValueOrDefault(e.Invocation, "-")
		if tp.IsWide() {
			tp.AddRow(e.Name, e.Tier, printer.FormatAvailability(e.Available), invocation, printer.EmptyValueOrDefault(e.Description, "-"))
			continue
		}
		tp.AddRow(e.Name, e.Tier, printer.FormatAvailability(e.Available), invocation)
	}
	if err := tp.Render(); err != nil {
		return err
	}

	printedNotes := false
	for _, e := range entries {
		if e.Note == "" {
			continue
		}
		if !printedNotes {
			p.Info("")
			printedNotes = true
		}
		p.Info(fmt.Sprintf("%s: %s", e.Name, e.Note))
	}
	return nil
}
