// Package config loads lapin.yml, the interpreter's optional settings file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const FileName = "lapin.yml"

type Config struct {
	Path string `yaml:"-"`

	Debug         bool     `yaml:"debug"`
	IncludePaths  []string `yaml:"chemins_inclusion"`
	HistoryFile   string   `yaml:"historique"`
	Prompt        string   `yaml:"invite"`
	MaxIterations int      `yaml:"iterations_max"`
	Quiet         bool     `yaml:"silencieux"`
}

func Default() *Config {
	return &Config{
		HistoryFile: defaultHistoryFile(),
		Prompt:      "lapin> ",
	}
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".lapin_history")
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config: ")
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString("validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load parses path over the defaults. Unknown keys are rejected. Relative
// include paths are taken relative to the file's directory.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath

	dir := filepath.Dir(absPath)
	for idx, p := range cfg.IncludePaths {
		if p != "" && !filepath.IsAbs(p) {
			cfg.IncludePaths[idx] = filepath.Join(dir, p)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover loads the first config found: explicit if given (it must
// exist), then ./lapin.yml, then ~/.lapin.yml. With none found it returns
// the defaults. Environment overrides are applied last.
func Discover(explicit string) (*Config, error) {
	var cfg *Config
	var err error

	switch {
	case explicit != "":
		cfg, err = Load(explicit)
	default:
		for _, cand := range searchPaths() {
			if _, statErr := os.Stat(cand); statErr != nil {
				continue
			}
			cfg, err = Load(cand)
			break
		}
	}
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = Default()
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func searchPaths() []string {
	paths := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, "."+FileName))
	}
	return paths
}

// ApplyEnv overrides fields from LAPIN_DEBUG and LAPIN_CHEMINS. The
// lookup is injected so tests need not touch the process environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("LAPIN_DEBUG"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: LAPIN_DEBUG=%q: %w", v, err)
		}
		c.Debug = b
	}
	if v, ok := lookup("LAPIN_CHEMINS"); ok && v != "" {
		for _, p := range filepath.SplitList(v) {
			if p != "" {
				c.IncludePaths = append(c.IncludePaths, p)
			}
		}
	}
	return nil
}

func (c *Config) Validate() error {
	errs := ValidationError{Path: c.Path}
	if c.MaxIterations < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("iterations_max must be >= 0, got %d", c.MaxIterations))
	}
	for idx, p := range c.IncludePaths {
		if strings.TrimSpace(p) == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("chemins_inclusion[%d] must be a non-empty path", idx))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
