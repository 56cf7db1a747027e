package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/render"
)

// isolate keeps Load away from real config files.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Interval != 700*time.Millisecond {
		t.Errorf("Interval = %v, want 700ms", cfg.Interval)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Render.Engine != "neato" || cfg.Render.Seed != 42 {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Graph != "" || cfg.Start != 0 {
		t.Errorf("Graph/Start = %q/%d", cfg.Graph, cfg.Start)
	}
	if cfg.Cache.MaxAge != 168*time.Hour || cfg.Cache.Disabled {
		t.Errorf("Cache = %+v", cfg.Cache)
	}

	want := render.DefaultPalette()
	got := cfg.RenderPalette()
	if got.Base != want.Base || got.Clique != want.Clique || got.Current != want.Current || got.Visited != want.Visited {
		t.Errorf("palette = %+v, want %+v", got, want)
	}
	if len(got.Coloring) != len(want.Coloring) {
		t.Errorf("coloring len = %d, want %d", len(got.Coloring), len(want.Coloring))
	}
}

func TestLoadNoFile(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if cfg.Interval != 700*time.Millisecond {
		t.Errorf("Interval = %v", cfg.Interval)
	}
}

func TestLoadWorkingDirFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, fileName), `
start = 5
interval = "250ms"

[palette]
clique = "#ff0000"

[server]
addr = ":9000"
`)

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != fileName {
		t.Errorf("Source = %q", cfg.Source)
	}
	if cfg.Start != 5 {
		t.Errorf("Start = %d, want 5", cfg.Start)
	}
	if cfg.Interval != 250*time.Millisecond {
		t.Errorf("Interval = %v, want 250ms", cfg.Interval)
	}
	if cfg.Palette.Clique != "#ff0000" {
		t.Errorf("Palette.Clique = %q", cfg.Palette.Clique)
	}
	if cfg.Palette.Base != "lightblue" {
		t.Errorf("unset keys should keep defaults, Palette.Base = %q", cfg.Palette.Base)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadXDGFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "xdg", appName, fileName)
	writeFile(t, path, "[render]\nengine = \"fdp\"\n")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
	if cfg.Render.Engine != "fdp" {
		t.Errorf("Render.Engine = %q", cfg.Render.Engine)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, "graph = \"graph.json\"\n")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Graph != "graph.json" {
		t.Errorf("Graph = %q", cfg.Graph)
	}
}

func TestLoadExplicitPathMissing(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.toml"), nil)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.toml")
	writeFile(t, path, "start = = 3\n")

	_, err := Load(path, nil)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadEnv(t *testing.T) {
	isolate(t)
	t.Setenv("GRAPHWALK_SERVER_ADDR", ":7070")
	t.Setenv("GRAPHWALK_INTERVAL", "1s")
	t.Setenv("GRAPHWALK_START", "33")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Interval != time.Second {
		t.Errorf("Interval = %v", cfg.Interval)
	}
	if cfg.Start != 33 {
		t.Errorf("Start = %d", cfg.Start)
	}
}

func TestLoadFlagsOverride(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, fileName), "start = 5\n[server]\naddr = \":9000\"\n")
	t.Setenv("GRAPHWALK_SERVER_ADDR", ":7070")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("addr", DefaultAddr, "")
	flags.Int("start", 0, "")
	flags.String("engine", "neato", "")
	flags.Bool("no-cache", false, "")
	if err := flags.Parse([]string{"--addr", ":6060", "--engine", "circo", "--no-cache"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":6060" {
		t.Errorf("flag should beat env, Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Render.Engine != "circo" {
		t.Errorf("Render.Engine = %q", cfg.Render.Engine)
	}
	if cfg.Start != 5 {
		t.Errorf("unset flag should not override file, Start = %d", cfg.Start)
	}
	if !cfg.Cache.Disabled {
		t.Error("--no-cache should disable the cache")
	}
}

func TestCacheDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	cfg := Default()
	got, err := cfg.CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "graphwalk"); got != want {
		t.Errorf("CacheDir() = %q, want %q", got, want)
	}

	cfg.Cache.Dir = filepath.Join(dir, "custom")
	if got, _ := cfg.CacheDir(); got != cfg.Cache.Dir {
		t.Errorf("CacheDir() = %q, want configured dir", got)
	}
}

func TestCacheDirHomeFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", home)

	got, err := Default().CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".cache", "graphwalk"); got != want {
		t.Errorf("CacheDir() = %q, want %q", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   errors.Code
	}{
		{"negative start", func(c *Config) { c.Start = -1 }, errors.ErrCodeInvalidConfig},
		{"zero interval", func(c *Config) { c.Interval = 0 }, errors.ErrCodeInvalidConfig},
		{"unknown engine", func(c *Config) { c.Render.Engine = "magic" }, errors.ErrCodeInvalidConfig},
		{"bad color", func(c *Config) { c.Palette.Base = "#12345" }, errors.ErrCodeInvalidConfig},
		{"empty coloring", func(c *Config) { c.Palette.Coloring = nil }, errors.ErrCodeInvalidConfig},
		{"bad graph path", func(c *Config) { c.Graph = "a\x00b" }, errors.ErrCodeInvalidPath},
		{"negative cache age", func(c *Config) { c.Cache.MaxAge = -time.Second }, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestTOMLParser(t *testing.T) {
	p := TOML()
	m, err := p.Unmarshal([]byte("a = 1\n[b]\nc = \"x\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	b, ok := m["b"].(map[string]any)
	if !ok || b["c"] != "x" {
		t.Errorf("Unmarshal = %#v", m)
	}

	out, err := p.Marshal(map[string]any{"start": 3})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "start = 3\n" {
		t.Errorf("Marshal = %q", out)
	}
}
