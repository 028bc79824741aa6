// Package config resolves jnldoc settings from YAML files and the
// environment.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults
//  2. the first config file found: the --config path, else .jnldoc.yml in
//     the working directory, else config.yml in Dir()
//  3. JNLDOC_MARKER and JNLDOC_DOC_FILE
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load and Dir.
const (
	EnvConfigHome = "JNLDOC_CONFIG_HOME"
	EnvMarker     = "JNLDOC_MARKER"
	EnvDocFile    = "JNLDOC_DOC_FILE"
)

// ProjectFile is the per-project config file name.
const ProjectFile = ".jnldoc.yml"

// DefaultMarker starts every generated block.
const DefaultMarker = "<!-- content below automatically generated by jnldoc -->"

// Config holds resolved settings.
type Config struct {
	Marker      string        `yaml:"marker"`
	DocFile     string        `yaml:"doc_file"`
	Extensions  []string      `yaml:"extensions"`
	ExcludeDirs []string      `yaml:"exclude_dirs"`
	Debounce    time.Duration `yaml:"debounce"`

	// Source is the file the settings were read from, or "" for defaults.
	Source string `yaml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Marker:      DefaultMarker,
		DocFile:     "README.md",
		Extensions:  []string{".jnl", ".JNL"},
		ExcludeDirs: []string{".git", ".hg", ".svn"},
		Debounce:    250 * time.Millisecond,
	}
}

// Load resolves settings for workDir. A non-empty explicit path must exist;
// the implicit locations are optional.
func Load(workDir, explicit string) (*Config, error) {
	cfg := Default()

	path, err := locate(workDir, explicit)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
		cfg.Source = path
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		if cfg.Source != "" {
			return nil, fmt.Errorf("%s: %w", cfg.Source, err)
		}
		return nil, err
	}
	return cfg, nil
}

func locate(workDir, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	for _, candidate := range []string{filepath.Join(workDir, ProjectFile), UserFile()} {
		if candidate == "" {
			continue
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", nil
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvMarker); v != "" {
		c.Marker = v
	}
	if v := os.Getenv(EnvDocFile); v != "" {
		c.DocFile = v
	}
}

// Validate reports settings the sync cannot work with.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Marker) == "":
		return errors.New("marker must not be empty")
	case strings.ContainsAny(c.Marker, "\r\n"):
		return errors.New("marker must be a single line")
	case c.DocFile == "" || c.DocFile != filepath.Base(c.DocFile):
		return fmt.Errorf("doc_file %q must be a plain file name", c.DocFile)
	case len(c.Extensions) == 0:
		return errors.New("extensions must not be empty")
	case c.Debounce < 0:
		return fmt.Errorf("debounce %s must not be negative", c.Debounce)
	}
	for _, ext := range c.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return nil
}
