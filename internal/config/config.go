package config

import (
	"fmt"
	"os"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "MCP_SETUP_"

// Config holds the settings that can come from the environment.
// Command-line flags take precedence over these values.
type Config struct {
	ProjectDir  string        `env:"PROJECT_DIR" envDefault:""`
	GeminiDir   string        `env:"GEMINI_DIR" envDefault:""`
	ConfigFile  string        `env:"CONFIG_FILE" envDefault:".mcp.json"`
	LockTimeout time.Duration `env:"LOCK_TIMEOUT" envDefault:"2s"`
	Verbose     bool          `env:"VERBOSE" envDefault:"false"`
}

// Load reads an optional .env file from the working directory and parses the
// MCP_SETUP_* environment variables. A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return Parse()
}

// Parse reads configuration from the environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.ConfigFile == "" {
		cfg.ConfigFile = ".mcp.json"
	}
	return &cfg, nil
}
