// Package config loads the optional user configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/themeswap/internal/theme"
	"github.com/jsvensson/themeswap/internal/xcode"
)

// FileName is the name of the configuration file inside the user config dir.
const FileName = "config.hcl"

// Config holds user defaults for the CLI.
type Config struct {
	Author        string       `hcl:"author,optional"`
	DefaultFormat string       `hcl:"default_format,optional"`
	OutputDir     string       `hcl:"output_dir,optional"`
	TemplatesDir  string       `hcl:"templates_dir,optional"`
	Jobs          int          `hcl:"jobs,optional"`
	Xcode         *XcodeConfig `hcl:"xcode,block"`
}

// XcodeConfig holds the non-color settings written into Xcode themes.
type XcodeConfig struct {
	Font             string   `hcl:"font,optional"`
	Size             *float64 `hcl:"size,optional"`
	LineSpacing      *float64 `hcl:"line_spacing,optional"`
	CharacterSpacing *float64 `hcl:"character_spacing,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		DefaultFormat: theme.FormatVSCode.String(),
		OutputDir:     ".",
		TemplatesDir:  "templates",
		Jobs:          4,
	}
}

// DefaultPath returns the location of the user configuration file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "themeswap", FileName), nil
}

// Load reads the configuration at path. A missing file yields the
// defaults; a malformed one is an error.
func Load(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes configuration source. Unset fields keep their defaults.
func Parse(src []byte, filename string) (*Config, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	cfg := Default()
	if diags := gohcl.DecodeBody(file.Body, nil, cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decoding config: %s", diags.Error())
	}

	if _, err := theme.ParseFormat(cfg.DefaultFormat); err != nil {
		return nil, fmt.Errorf("default_format: %w", err)
	}
	if cfg.Jobs < 1 {
		return nil, fmt.Errorf("jobs must be at least 1, got %d", cfg.Jobs)
	}
	return cfg, nil
}

// Format returns the default output format.
func (c *Config) Format() theme.Format {
	f, err := theme.ParseFormat(c.DefaultFormat)
	if err != nil {
		return theme.FormatVSCode
	}
	return f
}

// XcodeOptions merges the xcode block over the Xcode defaults.
func (c *Config) XcodeOptions() xcode.Options {
	opts := xcode.DefaultOptions()
	if c.Xcode == nil {
		return opts
	}
	if c.Xcode.Font != "" {
		opts.Font.Name = c.Xcode.Font
	}
	if c.Xcode.Size != nil {
		opts.Font.Size = *c.Xcode.Size
	}
	if c.Xcode.LineSpacing != nil {
		opts.LineSpacing = *c.Xcode.LineSpacing
	}
	if c.Xcode.CharacterSpacing != nil {
		opts.CharacterSpacing = *c.Xcode.CharacterSpacing
	}
	return opts
}
