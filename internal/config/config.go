// Package config loads the optional .vscpp.yaml file that tunes compiler,
// flag and file naming conventions for a project.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/vscpp/internal/filesystem"
	"github.com/jakoblorz/vscpp/internal/models"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the project root.
const FileName = ".vscpp.yaml"

const (
	DefaultCompiler   = "g++-7"
	DefaultStandard   = "c++1z"
	DefaultHeaderExt  = ".h"
	DefaultSourceExt  = ".cpp"
	DefaultObjectsDir = "bin/objects/"
	DefaultBinDir     = "bin"
)

// ErrInvalidConfig is returned when .vscpp.yaml holds unusable values.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the project conventions.
type Config struct {
	Compiler   string `yaml:"compiler"`
	Standard   string `yaml:"standard"`
	HeaderExt  string `yaml:"header_ext"`
	SourceExt  string `yaml:"source_ext"`
	ObjectsDir string `yaml:"objects_dir"`
	BinDir     string `yaml:"bin_dir"`
	Flags      Flags  `yaml:"flags"`
}

// Flags holds the CFLAGS value for each build profile.
type Flags struct {
	Debug   string `yaml:"debug"`
	Release string `yaml:"release"`
}

// NewDefaultConfig returns the conventions used when no file is present.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads root/.vscpp.yaml. A missing file yields the defaults; fields
// left out of the file keep their default values.
func Load(fsys filesystem.FileSystem, root string) (*Config, error) {
	path := filepath.Join(root, FileName)

	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewDefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Compiler == "" {
		c.Compiler = DefaultCompiler
	}
	if c.Standard == "" {
		c.Standard = DefaultStandard
	}
	if c.HeaderExt == "" {
		c.HeaderExt = DefaultHeaderExt
	}
	if c.SourceExt == "" {
		c.SourceExt = DefaultSourceExt
	}
	if c.ObjectsDir == "" {
		c.ObjectsDir = DefaultObjectsDir
	}
	if c.BinDir == "" {
		c.BinDir = DefaultBinDir
	}
	if c.Flags.Debug == "" {
		c.Flags.Debug = fmt.Sprintf("-Wall -std=%s -g", c.Standard)
	}
	if c.Flags.Release == "" {
		c.Flags.Release = fmt.Sprintf("-Wall -std=%s -O2 -DNDEBUG", c.Standard)
	}
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	for field, ext := range map[string]string{"header_ext": c.HeaderExt, "source_ext": c.SourceExt} {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 || strings.ContainsAny(ext, "/\\ ") {
			return fmt.Errorf("%w: %s must look like \".ext\", got %q", ErrInvalidConfig, field, ext)
		}
	}
	if c.HeaderExt == c.SourceExt {
		return fmt.Errorf("%w: header_ext and source_ext must differ", ErrInvalidConfig)
	}
	if strings.ContainsAny(c.Compiler, "\n") || strings.ContainsAny(c.Flags.Debug+c.Flags.Release, "\n") {
		return fmt.Errorf("%w: compiler and flags must be single-line", ErrInvalidConfig)
	}
	if !strings.HasSuffix(c.ObjectsDir, "/") {
		return fmt.Errorf("%w: objects_dir must end with \"/\", got %q", ErrInvalidConfig, c.ObjectsDir)
	}
	return nil
}

// FlagsFor returns the CFLAGS value for a profile.
func (c *Config) FlagsFor(profile models.Profile) string {
	if profile == models.ProfileRelease {
		return c.Flags.Release
	}
	return c.Flags.Debug
}
