// Package config loads graphwalk settings.
//
// Settings are layered, later sources overriding earlier ones:
//
//  1. built-in defaults
//  2. a TOML file: the --config path, else ./graphwalk.toml, else
//     $XDG_CONFIG_HOME/graphwalk/graphwalk.toml
//  3. GRAPHWALK_* environment variables (GRAPHWALK_SERVER_ADDR -> server.addr)
//  4. command-line flags that were set explicitly
//
// Example file:
//
//	start = 0
//	interval = "700ms"
//
//	[palette]
//	base = "lightblue"
//	clique = "red"
//
//	[server]
//	addr = ":8080"
//
//	[cache]
//	max_age = "168h"
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/render"
)

const (
	appName     = "graphwalk"
	fileName    = "graphwalk.toml"
	envPrefix   = "GRAPHWALK_"
	DefaultAddr = ":8080"
)

// Engines lists the Graphviz layout engines accepted for render.engine.
var Engines = []string{"neato", "fdp", "sfdp", "circo", "twopi", "dot"}

// Config holds all settings.
type Config struct {
	Graph    string        `koanf:"graph"`    // node-link JSON file; empty selects the karate club graph
	Start    int           `koanf:"start"`    // traversal start node
	Interval time.Duration `koanf:"interval"` // delay between animation frames
	Palette  Palette       `koanf:"palette"`
	Server   Server        `koanf:"server"`
	Render   Render        `koanf:"render"`
	Cache    Cache         `koanf:"cache"`

	// Source is the config file that was loaded, if any.
	Source string `koanf:"-"`
}

// Palette overrides the render colors.
type Palette struct {
	Base     string   `koanf:"base"`
	Clique   string   `koanf:"clique"`
	Current  string   `koanf:"current"`
	Visited  string   `koanf:"visited"`
	Coloring []string `koanf:"coloring"`
}

// Server configures `graphwalk serve`.
type Server struct {
	Addr string `koanf:"addr"`
}

// Render configures Graphviz output.
type Render struct {
	Engine string `koanf:"engine"`
	Seed   int    `koanf:"seed"`
}

// Cache configures the rendered frame cache.
type Cache struct {
	Dir      string        `koanf:"dir"`     // empty selects $XDG_CACHE_HOME/graphwalk
	MaxAge   time.Duration `koanf:"max_age"` // 0 keeps entries forever
	Disabled bool          `koanf:"disabled"`
}

// flagKeys maps the command-line flags that override settings to their
// config keys. Other flags are ignored.
var flagKeys = map[string]string{
	"graph":    "graph",
	"start":    "start",
	"interval": "interval",
	"addr":     "server.addr",
	"engine":   "render.engine",
	"seed":     "render.seed",
	"no-cache": "cache.disabled",
}

func defaults() map[string]any {
	p := render.DefaultPalette()
	coloring := make([]string, len(p.Coloring))
	for i, c := range p.Coloring {
		coloring[i] = string(c)
	}
	return map[string]any{
		"graph":            "",
		"start":            0,
		"interval":         "700ms",
		"palette.base":     string(p.Base),
		"palette.clique":   string(p.Clique),
		"palette.current":  string(p.Current),
		"palette.visited":  string(p.Visited),
		"palette.coloring": coloring,
		"server.addr":      DefaultAddr,
		"render.engine":    "neato",
		"render.seed":      42,
		"cache.dir":        "",
		"cache.max_age":    "168h",
		"cache.disabled":   false,
	}
}

// Default returns the built-in settings, ignoring files and environment.
func Default() *Config {
	k := koanf.New(".")
	var cfg Config
	if err := k.Load(mapProvider(defaults()), nil); err != nil {
		panic(err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		panic(err) // defaults are static
	}
	return &cfg
}

// Load builds a Config from defaults, the config file, the environment and
// the explicitly set flags. path selects the file; when empty the
// default locations are tried and a missing file is not an error.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(mapProvider(defaults()), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	source, err := loadFile(k, path)
	if err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagKey(flags)), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) (string, error) {
	if path != "" {
		if err := errors.ValidatePath(path); err != nil {
			return "", err
		}
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		if err := k.Load(file.Provider(path), TOML()); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
		return path, nil
	}

	for _, candidate := range searchPaths() {
		if _, err := os.Stat(candidate); stderrors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := k.Load(file.Provider(candidate), TOML()); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", candidate)
		}
		return candidate, nil
	}
	return "", nil
}

// searchPaths returns ./graphwalk.toml and the XDG config location.
func searchPaths() []string {
	paths := []string{fileName}
	if dir, err := configDir(); err == nil {
		paths = append(paths, filepath.Join(dir, fileName))
	}
	return paths
}

// configDir returns $XDG_CONFIG_HOME/graphwalk, falling back to
// ~/.config/graphwalk.
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// CacheDir returns cache.dir, or $XDG_CACHE_HOME/graphwalk falling back
// to ~/.cache/graphwalk.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func flagKey(flags *pflag.FlagSet) func(*pflag.Flag) (string, any) {
	return func(f *pflag.Flag) (string, any) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return "", nil
		}
		return key, posflag.FlagVal(flags, f)
	}
}

// Validate checks ranges and colors.
func (c *Config) Validate() error {
	if c.Start < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "start must be >= 0, got %d", c.Start)
	}
	if c.Interval <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "interval must be positive, got %s", c.Interval)
	}
	if !slices.Contains(Engines, c.Render.Engine) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown layout engine %q (want one of %s)",
			c.Render.Engine, strings.Join(Engines, ", "))
	}
	if c.Graph != "" {
		if err := errors.ValidatePath(c.Graph); err != nil {
			return err
		}
	}
	if c.Cache.MaxAge < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.max_age must be >= 0, got %s", c.Cache.MaxAge)
	}
	if c.Cache.Dir != "" {
		if err := errors.ValidatePath(c.Cache.Dir); err != nil {
			return err
		}
	}
	if len(c.Palette.Coloring) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "palette.coloring must list at least one color")
	}
	if err := c.RenderPalette().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette")
	}
	return nil
}

// RenderPalette converts the palette section for the render controller.
func (c *Config) RenderPalette() render.Palette {
	p := render.Palette{
		Base:    render.Color(c.Palette.Base),
		Clique:  render.Color(c.Palette.Clique),
		Current: render.Color(c.Palette.Current),
		Visited: render.Color(c.Palette.Visited),
	}
	for _, col := range c.Palette.Coloring {
		p.Coloring = append(p.Coloring, render.Color(col))
	}
	return p
}

// mapProvider serves a static map with dotted keys to koanf.
type mapProvider map[string]any

func (m mapProvider) Read() (map[string]any, error) { return maps.Unflatten(m, "."), nil }

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, stderrors.New("not implemented")
}
