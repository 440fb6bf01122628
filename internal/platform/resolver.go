// Package platform locates the prebuilt gemini MCP binary for the host OS.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/agentregistry-dev/mcp-setup/pkg/models"
)

const (
	// GeminiServerName is the catalog name of the dynamically resolved server.
	GeminiServerName = "gemini"
	// GeminiModel is the model the gemini server is started with.
	GeminiModel = "gemini-3-pro-preview"
	// GeminiProjectDir is the Rust project, under the repository root, that
	// builds the gemini MCP binary.
	GeminiProjectDir = "gemini-mcp-rs"

	// installDepth is how many directories sit between the repository root
	// and the directory holding this executable
	// (<root>/.claude/skills/<skill>/scripts).
	installDepth = 4
)

// binaryPaths maps GOOS to the binary location relative to the repository root.
var binaryPaths = map[string]string{
	"darwin":  filepath.Join(GeminiProjectDir, "target", "release", "gemini-mcp"),
	"windows": filepath.Join(GeminiProjectDir, "target", "release", "gemini-mcp.exe"),
	"linux":   filepath.Join(GeminiProjectDir, "target", "release", "gemini-mcp"),
}

// Resolution is the outcome of probing for the gemini binary. It is either
// Available or Unavailable; callers are expected to type-switch on it.
type Resolution interface {
	resolution()
}

// Available carries the descriptor for a binary that exists on disk.
type Available struct {
	Descriptor models.ServerDescriptor
}

// Unavailable means no binary was found at Path.
type Unavailable struct {
	Path         string
	Instructions string
}

func (Available) resolution()   {}
func (Unavailable) resolution() {}

// BinaryPath returns the expected binary location for goos under the
// repository root baseDir.
// Unrecognized systems use the linux layout.
func BinaryPath(goos, baseDir string) string {
	rel, ok := binaryPaths[goos]
	if !ok {
		rel = binaryPaths["linux"]
	}
	return filepath.Join(baseDir, rel)
}

// Resolve probes for the gemini binary for goos under baseDir. A missing
// binary is a normal outcome and is reported as Unavailable, not an error.
func Resolve(goos, baseDir string) Resolution {
	path := BinaryPath(goos, baseDir)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return Unavailable{
			Path:         path,
			Instructions: buildInstructions(baseDir, path),
		}
	}

	return Available{
		Descriptor: models.ServerDescriptor{
			Name:         GeminiServerName,
			Command:      path,
			Args:         []string{"--model", GeminiModel},
			DeferLoading: true,
			Description:  "Gemini 3 Pro Preview (Rust binary)",
		},
	}
}

// ResolveHost is Resolve for the running operating system.
func ResolveHost(baseDir string) Resolution {
	return Resolve(runtime.GOOS, baseDir)
}

// DefaultBaseDir returns the repository root the tool was installed into.
func DefaultBaseDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	dir := filepath.Dir(exe)
	for range installDepth {
		dir = filepath.Dir(dir)
	}
	return dir, nil
}

// BuildCommand is the shell command that produces the gemini binary.
func BuildCommand() string {
	return fmt.Sprintf("cd %s && cargo build --release", GeminiProjectDir)
}

func buildInstructions(baseDir, path string) string {
	return fmt.Sprintf("expected binary at %s; build it from %s with: %s", path, baseDir, BuildCommand())
}
