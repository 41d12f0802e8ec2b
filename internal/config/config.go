// Package config loads the optional setup.yaml build settings.
//
// Only build-environment settings live here. Product identity (name,
// upgrade code, install root, shortcuts) is compiled in and cannot be
// overridden from a file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/LotCoM/watcher-setup/pkg/setup"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const (
	ConfigFileName = "setup.yaml"

	// EngineEnvVar overrides the compilation engine executable.
	EngineEnvVar = "WATCHER_SETUP_ENGINE"

	// DefaultSourceDir is the published release tree, relative to the setup project.
	DefaultSourceDir = `../bin/Release/net9.0-windows10.0.19041.0/win-x64`

	DefaultEngine = "wix"
)

type EngineConfig struct {
	Executable string   `yaml:"executable,omitempty"`
	Args       []string `yaml:"args,omitempty"`
	Extensions []string `yaml:"extensions,omitempty"`
}

type BuildConfig struct {
	SourceDir   string       `yaml:"source_dir,omitempty"`
	OutputDir   string       `yaml:"output_dir,omitempty"`
	FilePattern string       `yaml:"file_pattern,omitempty"`
	Engine      EngineConfig `yaml:"engine,omitempty"`
}

// Load reads path. A missing file yields ErrConfigNotFound.
func Load(path string) (*BuildConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg BuildConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v: %w", path, err, setup.ErrInvalidConfig)
	}
	return &cfg, nil
}

// LoadDir reads ConfigFileName from dir.
func LoadDir(dir string) (*BuildConfig, error) {
	return Load(filepath.Join(dir, ConfigFileName))
}

// Defaults returns the settings used when no config file exists.
func Defaults() *BuildConfig {
	return &BuildConfig{
		SourceDir:   DefaultSourceDir,
		OutputDir:   setup.DefaultOutputDir,
		FilePattern: setup.DefaultFilePattern,
		Engine: EngineConfig{
			Executable: DefaultEngine,
			Extensions: []string{"WixToolset.Util.wixext", "WixToolset.UI.wixext"},
		},
	}
}

// WithDefaults fills every unset field from Defaults and applies the
// engine override from the environment. getenv is usually os.Getenv.
func (c *BuildConfig) WithDefaults(getenv func(string) string) *BuildConfig {
	d := Defaults()
	out := *c

	if out.SourceDir == "" {
		out.SourceDir = d.SourceDir
	}
	if out.OutputDir == "" {
		out.OutputDir = d.OutputDir
	}
	if out.FilePattern == "" {
		out.FilePattern = d.FilePattern
	}
	if out.Engine.Executable == "" {
		out.Engine.Executable = d.Engine.Executable
	}
	if out.Engine.Extensions == nil {
		out.Engine.Extensions = d.Engine.Extensions
	}
	if getenv != nil {
		if exe := getenv(EngineEnvVar); exe != "" {
			out.Engine.Executable = exe
		}
	}
	return &out
}

// Apply copies the file-level overrides onto a product configuration.
func (c *BuildConfig) Apply(cfg setup.StaticConfig) setup.StaticConfig {
	if c.OutputDir != "" {
		cfg.OutputDir = c.OutputDir
	}
	if c.FilePattern != "" {
		cfg.FilePattern = c.FilePattern
	}
	return cfg
}
