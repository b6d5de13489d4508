package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/figure"
	"github.com/matzehuels/shapescatter/pkg/pipeline"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultMatchesPipeline(t *testing.T) {
	opts, err := Default().Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	want := pipeline.DefaultOptions()
	if !reflect.DeepEqual(opts, want) {
		t.Errorf("Default().Options() = %+v, want %+v", opts, want)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load(\"\") without a file = %+v, want defaults", cfg)
	}
}

func TestLoadDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, appName), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, appName, "config.toml"), []byte("[render]\ncount = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Count != 3 {
		t.Errorf("Count = %d, want 3", cfg.Render.Count)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[render]
count = 25
x_min = -10.0
x_max = 10.0
density = 0.75
show_grid = false
kinds = ["circle", "parabola"]
formats = ["svg", "json"]

[server]
addr = "127.0.0.1:9000"
read_timeout = "3s"

[cache]
backend = "none"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Render.Count != 25 || cfg.Render.Density != 0.75 || cfg.Render.ShowGrid {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Render.YMin != -100 || cfg.Render.YMax != 100 {
		t.Errorf("unset y bounds changed: %g..%g", cfg.Render.YMin, cfg.Render.YMax)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout.Duration != 3*time.Second {
		t.Errorf("ReadTimeout = %v, want 3s", cfg.Server.ReadTimeout)
	}
	if cfg.Cache.Backend != CacheNone {
		t.Errorf("Backend = %q", cfg.Cache.Backend)
	}

	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if !reflect.DeepEqual(opts.Kinds, []figure.Kind{figure.Circle, figure.Parabola}) {
		t.Errorf("Kinds = %v", opts.Kinds)
	}
	if opts.Viewport.XMin != -10 || opts.Viewport.XMax != 10 {
		t.Errorf("Viewport = %+v", opts.Viewport)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[render\ncount = 1"},
		{"unknown key", "[render]\ncolour = 1\n"},
		{"wrong type", "[render]\ncount = \"many\"\n"},
		{"bad duration", "[server]\nread_timeout = \"soon\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}

	t.Run("explicit missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		if err == nil {
			t.Error("expected error for missing explicit config")
		}
	})
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[render]\ncount = 25\ndensity = 0.5\n[cache]\nbackend = \"file\"\n")
	t.Setenv("SHAPESCATTER_COUNT", "7")
	t.Setenv("SHAPESCATTER_SHOW_GRID", "false")
	t.Setenv("SHAPESCATTER_KINDS", "line,triangle")
	t.Setenv("SHAPESCATTER_CACHE_BACKEND", "redis")
	t.Setenv("SHAPESCATTER_REDIS_ADDR", "localhost:6379")
	t.Setenv("SHAPESCATTER_REDIS_DB", "2")
	t.Setenv("SHAPESCATTER_CACHE_PREFIX", "staging:")
	t.Setenv("SHAPESCATTER_MAX_PIXELS", "640000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Count != 7 {
		t.Errorf("Count = %d, want env value 7", cfg.Render.Count)
	}
	if cfg.Render.Density != 0.5 {
		t.Errorf("Density = %g, want file value 0.5", cfg.Render.Density)
	}
	if cfg.Render.ShowGrid {
		t.Error("ShowGrid should be overridden to false")
	}
	if got := strings.Join(cfg.Render.Kinds, ","); got != "line,triangle" {
		t.Errorf("Kinds = %q", got)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.RedisAddr != "localhost:6379" || cfg.Cache.RedisDB != 2 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.Prefix != "staging:" {
		t.Errorf("Cache.Prefix = %q, want env value", cfg.Cache.Prefix)
	}
	if cfg.Server.MaxPixels != 640000 {
		t.Errorf("Server.MaxPixels = %d, want env value 640000", cfg.Server.MaxPixels)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestEnvInvalidValue(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SHAPESCATTER_DENSITY", "dense")

	_, err := Load("")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   errors.Code
	}{
		{"defaults", func(*Config) {}, ""},
		{"no cache", func(c *Config) { c.Cache.Backend = CacheNone }, ""},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }, errors.ErrCodeInvalidConfig},
		{"redis without addr", func(c *Config) { c.Cache.Backend = CacheRedis }, errors.ErrCodeInvalidConfig},
		{"negative max count", func(c *Config) { c.Server.MaxCount = -1 }, errors.ErrCodeInvalidConfig},
		{"negative max pixels", func(c *Config) { c.Server.MaxPixels = -1 }, errors.ErrCodeInvalidConfig},
		{"bad kind", func(c *Config) { c.Render.Kinds = []string{"hexagon"} }, errors.ErrCodeInvalidFigureType},
		{"bad format", func(c *Config) { c.Render.Formats = []string{"gif"} }, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestEncodeLoadsBack(t *testing.T) {
	cfg := Default()
	cfg.Render.Count = 42
	cfg.Server.WriteTimeout = Duration{90 * time.Second}

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	loaded, err := Load(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("Load encoded config: %v\n%s", err, data)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestDirs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_CACHE_HOME", "/cache")

	path, err := DefaultPath()
	if err != nil || path != filepath.Join("/cfg", appName, "config.toml") {
		t.Errorf("DefaultPath() = %q, %v", path, err)
	}
	dir, err := CacheDir()
	if err != nil || dir != filepath.Join("/cache", appName) {
		t.Errorf("CacheDir() = %q, %v", dir, err)
	}
}
