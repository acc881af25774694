package app

import (
	"errors"
	"fmt"

	"github.com/vk/taglib/internal/export"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	BundlesPath    string   // archive, bundle directory, or directory of bundles
	BootstrapPaths []string // hcl files or directories

	Format     export.Format
	OutputPath string // empty writes to the app's output writer

	LogFormat  string
	LogLevel   string
	Workers    int
	ListenPort int
	TraceFile  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.BundlesPath == "" {
		return nil, errors.New("BundlesPath is a required configuration field and cannot be empty")
	}
	if cfg.Format == "" {
		cfg.Format = export.FormatJSON
	}
	if _, err := export.ParseFormat(string(cfg.Format)); err != nil {
		return nil, err
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.ListenPort < 0 || cfg.ListenPort > 65535 {
		return nil, fmt.Errorf("listen port out of range: %d", cfg.ListenPort)
	}
	return &cfg, nil
}
