package configure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/agentregistry-dev/mcp-setup/internal/catalog"
	"github.com/agentregistry-dev/mcp-setup/internal/config"
	"github.com/agentregistry-dev/mcp-setup/internal/logging"
	"github.com/agentregistry-dev/mcp-setup/internal/mcpconfig"
	"github.com/agentregistry-dev/mcp-setup/internal/platform"
	"github.com/agentregistry-dev/mcp-setup/pkg/printer"
)

const (
	flagProjectDir = "project-dir"
	flagServers    = "servers"
	flagInclude    = "include"
	flagList       = "list"
	flagDryRun     = "dry-run"
	flagGeminiDir  = "gemini-dir"
	flagConfigFile = "config-file"
	flagOutput     = "output"
	flagNoHeaders  = "no-headers"
	flagVerbose    = "verbose"
)

// Options holds everything a configure or list run needs.
type Options struct {
	ProjectDir  string
	Servers     []string
	Include     []string
	List        bool
	DryRun      bool
	GeminiDir   string
	ConfigFile  string
	Output      string
	NoHeaders   bool
	Verbose     bool
	LockTimeout time.Duration

	outputType printer.OutputType
}

// NewOptions returns options with built-in defaults.
func NewOptions() *Options {
	return &Options{
		ConfigFile:  mcpconfig.DefaultFileName,
		Output:      string(printer.OutputTypeTable),
		LockTimeout: 2 * time.Second,
		outputType:  printer.OutputTypeTable,
	}
}

// AddFlags registers the flags that select and apply servers.
func (o *Options) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.ProjectDir, flagProjectDir, "p", "", "Project directory to configure (default: current directory)")
	cmd.Flags().StringSliceVarP(&o.Servers, flagServers, "s", nil, "Comma-separated servers to configure instead of the defaults (context7, playwright); may be repeated")
	cmd.Flags().StringSliceVarP(&o.Include, flagInclude, "i", nil, "Comma-separated optional servers to add (github, postgres, filesystem, gemini); may be repeated")
	cmd.Flags().BoolVarP(&o.List, flagList, "l", false, "List available servers and exit without changing anything")
	cmd.Flags().BoolVar(&o.DryRun, flagDryRun, false, "Show what would change without writing the config file")
	cmd.Flags().StringVar(&o.ConfigFile, flagConfigFile, o.ConfigFile, "Config file name, relative to the project directory")
}

// AddPersistentFlags registers flags shared by the root command and list.
func (o *Options) AddPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.GeminiDir, flagGeminiDir, "", "Repository root containing gemini-mcp-rs (default: four levels above the executable's directory)")
	cmd.PersistentFlags().StringVarP(&o.Output, flagOutput, "o", o.Output, "Listing format: table, wide, json or yaml")
	cmd.PersistentFlags().BoolVar(&o.NoHeaders, flagNoHeaders, false, "Omit headers from table listings")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, flagVerbose, "V", false, "Verbose output")
}

// Complete fills in values from the environment for flags the user did not set
// and validates the result.
func (o *Options) Complete(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed(flagProjectDir) && cfg.ProjectDir != "" {
		o.ProjectDir = cfg.ProjectDir
	}
	if !flags.Changed(flagGeminiDir) && cfg.GeminiDir != "" {
		o.GeminiDir = cfg.GeminiDir
	}
	if !flags.Changed(flagConfigFile) && cfg.ConfigFile != "" {
		o.ConfigFile = cfg.ConfigFile
	}
	if !flags.Changed(flagVerbose) && cfg.Verbose {
		o.Verbose = true
	}
	if cfg.LockTimeout > 0 {
		o.LockTimeout = cfg.LockTimeout
	}

	o.outputType, err = printer.ParseOutputType(o.Output)
	if err != nil {
		return err
	}
	if o.ConfigFile == "" {
		return errors.New("config file name must not be empty")
	}
	return nil
}

// Execute builds the printer and logger for cmd and runs o.
func Execute(cmd *cobra.Command, o *Options) error {
	log, err := logging.New(o.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	p := printer.New(o.outputType, o.outputType == printer.OutputTypeWide)
	p.SetOutput(cmd.OutOrStdout())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return Run(ctx, o, p, log)
}

// Run resolves the catalog for this host and either lists it or applies the
// selected servers to the project config file.
func Run(ctx context.Context, o *Options, p *printer.Printer, log *zap.SugaredLogger) error {
	cat, err := o.effectiveCatalog(log)
	if err != nil {
		return err
	}
	if o.List {
		return runList(cat, o, p)
	}
	return runApply(ctx, cat, o, p, log)
}

func (o *Options) effectiveCatalog(log *zap.SugaredLogger) (*catalog.Catalog, error) {
	geminiDir := o.GeminiDir
	if geminiDir == "" {
		dir, err := platform.DefaultBaseDir()
		if err != nil {
			return nil, err
		}
		geminiDir = dir
	}

	res := platform.ResolveHost(geminiDir)
	switch r := res.(type) {
	case platform.Available:
		log.Debugw("gemini binary found", "path", r.Descriptor.Command)
	case platform.Unavailable:
		log.Debugw("gemini binary not found", "path", r.Path)
	}
	return catalog.Effective(res), nil
}

func (o *Options) projectDir() (string, error) {
	dir := o.ProjectDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project directory: %w", err)
	}
	info, err := os.Stat(abs)
	switch {
	case os.IsNotExist(err):
		// created on write
		return abs, nil
	case err != nil:
		return "", fmt.Errorf("project directory %s: %w", abs, err)
	case !info.IsDir():
		return "", fmt.Errorf("project directory %s is not a directory", abs)
	}
	return abs, nil
}

func runApply(ctx context.Context, cat *catalog.Catalog, o *Options, p *printer.Printer, log *zap.SugaredLogger) error {
	projectDir, err := o.projectDir()
	if err != nil {
		return err
	}
	path := filepath.Join(projectDir, o.ConfigFile)

	p.Banner("Setting up MCP servers", "Path: "+projectDir, "Platform: "+runtime.GOOS)

	if !o.DryRun {
		if err := os.MkdirAll(filepath.Join(projectDir, mcpconfig.HostDir), 0o755); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", mcpconfig.HostDir, err)
		}
	}

	plan := cat.Plan(o.Servers, o.Include)
	for _, issue := range plan.Issues {
		p.Warning(issue.String())
	}
	if len(plan.Servers) == 0 {
		p.Warning("no servers selected, existing entries are kept as they are")
	}
	log.Debugw("selected servers", "servers", plan.Names(), "config", path)

	var (
		doc    *mcpconfig.Document
		result mcpconfig.Result
	)
	err = mcpconfig.WithLock(ctx, path, o.LockTimeout, func() error {
		loaded, err := mcpconfig.Load(path)
		switch {
		case errors.Is(err, mcpconfig.ErrServersNotObject):
			p.Warning(fmt.Sprintf("%v, replacing it", err))
		case mcpconfig.IsRecoverable(err):
			p.Warning(fmt.Sprintf("%v, treating it as empty", err))
		case err != nil:
			return err
		}
		doc = loaded

		result, err = doc.Apply(plan.Servers)
		if err != nil {
			return err
		}
		if o.DryRun {
			return nil
		}
		return doc.Save()
	})
	if err != nil {
		return err
	}

	report(p, doc, result, o.DryRun)
	return nil
}

func report(p *printer.Printer, doc *mcpconfig.Document, result mcpconfig.Result, dryRun bool) {
	verb := "Added"
	if dryRun {
		verb = "Would add"
	}
	for _, name := range result.Added {
		p.Success(fmt.Sprintf("%s %s", verb, name))
	}
	for _, name := range result.Skipped {
		p.Skipped(fmt.Sprintf("%s already configured, leaving it unchanged", name))
	}

	if dryRun {
		p.Banner(fmt.Sprintf("Dry run: %s was not modified (%d to add, %d unchanged)", doc.Path(), len(result.Added), len(result.Skipped)))
	} else {
		p.Banner("MCP setup complete!", fmt.Sprintf("Wrote %s (%d added, %d unchanged)", doc.Path(), len(result.Added), len(result.Skipped)))
	}

	p.Info("Configured MCP servers:")
	for _, name := range doc.Names() {
		p.Info("  - " + name)
	}

	if raw, ok := doc.Servers()[platform.GeminiServerName]; ok {
		reportGemini(p, raw)
	}
}

// reportGemini describes the configured gemini entry, which may be an older
// one left in place by the merge.
func reportGemini(p *printer.Printer, raw json.RawMessage) {
	command := gjson.GetBytes(raw, "command").String()
	model := platform.GeminiModel
	args := gjson.GetBytes(raw, "args").Array()
	for i, arg := range args {
		if arg.String() == "--model" && i+1 < len(args) {
			model = args[i+1].String()
		}
	}

	p.Info("")
	p.Info("Gemini MCP:")
	if strings.HasPrefix(command, "npx") {
		p.Info("  - backend: npx (requires OAuth sign-in)")
	} else {
		p.Info("  - backend: native binary " + command)
	}
	p.Info("  - model: " + model)
	p.Info("  - quota: 60 requests/minute, 1,000 requests/day (free tier)")
	p.Info("  - the first run opens a browser for Google sign-in")
	p.Info("  - restart Claude Code to activate the new MCP servers")
}
