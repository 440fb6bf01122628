package mcpconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"

	"github.com/agentregistry-dev/mcp-setup/pkg/models"
)

const (
	// DefaultFileName is the config file written under the project directory.
	DefaultFileName = ".mcp.json"
	// ServersKey is the only top-level key this package reads or writes.
	ServersKey = "mcpServers"
	// HostDir is the host's per-project settings directory. It is created
	// next to the config file so the host recognizes the project.
	HostDir = ".claude"
)

var (
	// ErrMalformedConfig is returned by Load when the file cannot be parsed.
	// The returned document is empty and still usable.
	ErrMalformedConfig = errors.New("malformed MCP config")
	// ErrServersNotObject is returned by Load when the servers key holds
	// something other than an object. The returned document keeps every
	// other top-level key; Apply replaces the servers value.
	ErrServersNotObject = errors.New(`"` + ServersKey + `" is not a JSON object`)
)

// IsRecoverable reports whether err from Load still came with a usable document.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrMalformedConfig) || errors.Is(err, ErrServersNotObject)
}

// Document is an in-memory copy of a config file.
type Document struct {
	path          string
	root          hujson.Value
	names         []string
	servers       map[string]json.RawMessage
	serversObject bool
}

type patchOp struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

func newDocument(path string) *Document {
	root, err := hujson.Parse([]byte("{}"))
	if err != nil {
		panic(fmt.Sprintf("hujson failed to parse empty object: %v", err))
	}
	return &Document{
		path:    path,
		root:    root,
		servers: make(map[string]json.RawMessage),
	}
}

// Path returns the file the document was loaded from and will be saved to.
func (d *Document) Path() string {
	return d.path
}

// Names returns the configured server names in file order.
func (d *Document) Names() []string {
	return append([]string(nil), d.names...)
}

// Servers returns a copy of the configured server entries.
func (d *Document) Servers() map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(d.servers))
	for k, v := range d.servers {
		out[k] = v
	}
	return out
}

// Load reads the config file at path. A missing or empty file yields an empty
// document. Comments and trailing commas are accepted.
func Load(path string) (*Document, error) {
	doc := newDocument(path)

	// #nosec G304 -- path is the project config file chosen by the operator
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return doc, nil
	}

	v, err := hujson.Parse(content)
	if err != nil {
		return doc, fmt.Errorf("%w: %s: %v", ErrMalformedConfig, path, err)
	}
	if v.Value.Kind() != '{' {
		return doc, fmt.Errorf("%w: %s: top-level value is not an object", ErrMalformedConfig, path)
	}
	doc.root = v

	std := v.Clone()
	std.Standardize()
	servers := gjson.GetBytes(std.Pack(), ServersKey)
	if !servers.Exists() {
		return doc, nil
	}
	if !servers.IsObject() {
		return doc, fmt.Errorf("%w: %s", ErrServersNotObject, path)
	}

	doc.serversObject = true
	servers.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if _, dup := doc.servers[name]; !dup {
			doc.names = append(doc.names, name)
		}
		doc.servers[name] = json.RawMessage(value.Raw)
		return true
	})
	return doc, nil
}

// Apply merges incoming into the document. Only absent names are inserted;
// everything else in the file is left as it was.
func (d *Document) Apply(incoming []models.ServerDescriptor) (Result, error) {
	res, err := Merge(d.servers, incoming)
	if err != nil {
		return Result{}, err
	}

	var ops []patchOp
	if !d.serversObject {
		ops = append(ops, patchOp{Op: "add", Path: pointer(ServersKey), Value: json.RawMessage("{}")})
	}
	for _, name := range res.Added {
		ops = append(ops, patchOp{Op: "add", Path: pointer(ServersKey, name), Value: res.Servers[name]})
	}

	if len(ops) > 0 {
		patch, err := json.Marshal(ops)
		if err != nil {
			return Result{}, fmt.Errorf("failed to build patch: %w", err)
		}
		if err := d.root.Patch(patch); err != nil {
			return Result{}, fmt.Errorf("failed to patch JSON: %w", err)
		}
	}

	d.serversObject = true
	d.servers = res.Servers
	d.names = append(d.names, res.Added...)
	return res, nil
}

// Bytes renders the document. Plain JSON is indented with two spaces per
// level; a file that uses comments or trailing commas keeps them and is
// formatted with hujson instead.
func (d *Document) Bytes() ([]byte, error) {
	packed := d.root.Pack()
	if !d.root.IsStandard() {
		out, err := hujson.Format(packed)
		if err != nil {
			return nil, fmt.Errorf("failed to format JSON: %w", err)
		}
		if !bytes.HasSuffix(out, []byte("\n")) {
			out = append(out, '\n')
		}
		return out, nil
	}

	var compact, out bytes.Buffer
	if err := json.Compact(&compact, packed); err != nil {
		return nil, fmt.Errorf("failed to format JSON: %w", err)
	}
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("failed to format JSON: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Save writes the document back to its path, creating parent directories.
func (d *Document) Save() error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}

	perm := os.FileMode(0o644)
	if info, err := os.Stat(d.path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := writeFileAtomic(d.path, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", d.path, err)
	}
	return nil
}

// pointer builds an RFC 6901 JSON pointer from unescaped segments.
func pointer(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		s = strings.ReplaceAll(s, "~", "~0")
		b.WriteString(strings.ReplaceAll(s, "/", "~1"))
	}
	return b.String()
}
