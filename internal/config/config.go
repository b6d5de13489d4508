// Package config loads shapescatter settings.
//
// Settings come from four layers, later ones winning: built-in defaults,
// the TOML file, SHAPESCATTER_* environment variables and command-line
// flags (applied by the CLI). The file lives at
// $XDG_CONFIG_HOME/shapescatter/config.toml unless --config names another:
//
//	[render]
//	count = 40
//	density = 0.5
//	kinds = ["circle", "parabola"]
//
//	[server]
//	max_pixels = 4194304
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	prefix = "shapescatter:"
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/figure"
	"github.com/matzehuels/shapescatter/pkg/geom"
	"github.com/matzehuels/shapescatter/pkg/pipeline"
)

const (
	appName = "shapescatter"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SHAPESCATTER"

	// DefaultCachePrefix scopes artifact keys in shared caches.
	DefaultCachePrefix = appName + ":"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the complete settings tree.
type Config struct {
	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// RenderConfig holds the defaults of every render option.
type RenderConfig struct {
	Count       int      `toml:"count"`
	XMin        float64  `toml:"x_min"`
	XMax        float64  `toml:"x_max"`
	YMin        float64  `toml:"y_min"`
	YMax        float64  `toml:"y_max"`
	Density     float64  `toml:"density"`
	ShowGrid    bool     `toml:"show_grid"`
	Kinds       []string `toml:"kinds"`
	Width       float64  `toml:"width"`
	Height      float64  `toml:"height"`
	StrokeWidth float64  `toml:"stroke_width"`
	Formats     []string `toml:"formats"`
	Output      string   `toml:"output"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	MaxCount     int      `toml:"max_count"`
	MaxPixels    int      `toml:"max_pixels"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"`
}

// Duration is a time.Duration written as a string ("30s") in TOML.
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Default returns the built-in settings, matching the parameter form.
func Default() Config {
	opts := pipeline.DefaultOptions()
	return Config{
		Render: RenderConfig{
			Count:       opts.Count,
			XMin:        opts.Viewport.XMin,
			XMax:        opts.Viewport.XMax,
			YMin:        opts.Viewport.YMin,
			YMax:        opts.Viewport.YMax,
			Density:     opts.Density,
			ShowGrid:    opts.ShowGrid,
			Kinds:       figure.Names(opts.Kinds),
			Width:       opts.Width,
			Height:      opts.Height,
			StrokeWidth: opts.StrokeWidth,
			Formats:     opts.Formats,
			Output:      pipeline.DefaultFileName,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxCount:     10000,
			MaxPixels:    4096 * 4096,
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{60 * time.Second},
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			Prefix:  DefaultCachePrefix,
		},
	}
}

// Dir returns the configuration directory, following XDG
// (~/.config/shapescatter/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// DefaultPath returns the path of the configuration file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns the file cache directory using XDG standard
// (~/.cache/shapescatter/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the settings. An empty path loads the default file if it
// exists; an explicit path must exist. Environment overrides are applied
// last.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.loadFile(path, explicit); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	if _, err := os.Stat(path); os.IsNotExist(err) && !required {
		return nil
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// env mirrors the overridable settings. Pointer fields stay nil when the
// variable is unset.
type env struct {
	Count       *int     `envconfig:"COUNT"`
	XMin        *float64 `envconfig:"X_MIN"`
	XMax        *float64 `envconfig:"X_MAX"`
	YMin        *float64 `envconfig:"Y_MIN"`
	YMax        *float64 `envconfig:"Y_MAX"`
	Density     *float64 `envconfig:"DENSITY"`
	ShowGrid    *bool    `envconfig:"SHOW_GRID"`
	Kinds       []string `envconfig:"KINDS"`
	Width       *float64 `envconfig:"WIDTH"`
	Height      *float64 `envconfig:"HEIGHT"`
	StrokeWidth *float64 `envconfig:"STROKE_WIDTH"`
	Formats     []string `envconfig:"FORMATS"`

	Addr      string `envconfig:"ADDR"`
	MaxCount  *int   `envconfig:"MAX_COUNT"`
	MaxPixels *int   `envconfig:"MAX_PIXELS"`

	CacheBackend  string  `envconfig:"CACHE_BACKEND"`
	CacheDir      string  `envconfig:"CACHE_DIR"`
	RedisAddr     string  `envconfig:"REDIS_ADDR"`
	RedisPassword string  `envconfig:"REDIS_PASSWORD"`
	RedisDB       *int    `envconfig:"REDIS_DB"`
	CachePrefix   *string `envconfig:"CACHE_PREFIX"`
}

func (c *Config) applyEnv() error {
	var e env
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "environment")
	}

	r := &c.Render
	setPtr(&r.Count, e.Count)
	setPtr(&r.XMin, e.XMin)
	setPtr(&r.XMax, e.XMax)
	setPtr(&r.YMin, e.YMin)
	setPtr(&r.YMax, e.YMax)
	setPtr(&r.Density, e.Density)
	setPtr(&r.ShowGrid, e.ShowGrid)
	setPtr(&r.Width, e.Width)
	setPtr(&r.Height, e.Height)
	setPtr(&r.StrokeWidth, e.StrokeWidth)
	if len(e.Kinds) > 0 {
		r.Kinds = e.Kinds
	}
	if len(e.Formats) > 0 {
		r.Formats = e.Formats
	}

	setString(&c.Server.Addr, e.Addr)
	setPtr(&c.Server.MaxCount, e.MaxCount)
	setPtr(&c.Server.MaxPixels, e.MaxPixels)

	setString(&c.Cache.Backend, e.CacheBackend)
	setString(&c.Cache.Dir, e.CacheDir)
	setString(&c.Cache.RedisAddr, e.RedisAddr)
	setString(&c.Cache.RedisPassword, e.RedisPassword)
	setPtr(&c.Cache.RedisDB, e.RedisDB)
	setPtr(&c.Cache.Prefix, e.CachePrefix)
	return nil
}

func setPtr[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate checks the settings that are not covered by render validation.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Server.MaxCount < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_count must not be negative")
	}
	if c.Server.MaxPixels < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_pixels must not be negative")
	}
	_, err := c.Options()
	return err
}

// Options converts the render settings to pipeline options. Only the kind
// and format lists are checked here; the pipeline validates the rest.
func (c Config) Options() (pipeline.Options, error) {
	r := c.Render
	kinds, err := figure.ParseKinds(strings.Join(r.Kinds, ","))
	if err != nil {
		return pipeline.Options{}, err
	}
	if err := pipeline.ValidateFormats(r.Formats); err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Count:       r.Count,
		Viewport:    geom.Viewport{XMin: r.XMin, XMax: r.XMax, YMin: r.YMin, YMax: r.YMax},
		Density:     r.Density,
		ShowGrid:    r.ShowGrid,
		Kinds:       kinds,
		Width:       r.Width,
		Height:      r.Height,
		StrokeWidth: r.StrokeWidth,
		Formats:     append([]string(nil), r.Formats...),
	}, nil
}

// Encode renders the settings as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return buf.Bytes(), nil
}
