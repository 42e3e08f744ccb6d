// Package config loads treeoflife settings from TOML or YAML files with
// environment variable overrides.
//
// A minimal config.toml:
//
//	width = 954.0
//	mode = "variable"
//	legend = true
//
//	[[domain]]
//	name = "Bacteria"
//	color = "#1f77b4"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/treeoflife/pkg/cache"
	"github.com/matzehuels/treeoflife/pkg/errors"
	"github.com/matzehuels/treeoflife/pkg/geometry"
	"github.com/matzehuels/treeoflife/pkg/radial"
)

// Environment variables that override file settings.
const (
	EnvRedisAddr = "TREEOFLIFE_REDIS_ADDR"
	EnvAddr      = "TREEOFLIFE_ADDR"
)

// Defaults match the classic 954px tree of life figure.
const (
	DefaultWidth       = 954.0
	DefaultLabelMargin = 170.0
	DefaultAddr        = ":8080"
	DefaultTimeout     = 30 * time.Second
)

// Config holds every tunable setting.
type Config struct {
	Width       float64           `toml:"width" yaml:"width"`
	LabelMargin float64           `toml:"label_margin" yaml:"label_margin"`
	Mode        string            `toml:"mode" yaml:"mode"`
	Legend      bool              `toml:"legend" yaml:"legend"`
	Domain      []radial.Category `toml:"domain" yaml:"domain"`
	Cache       CacheConfig       `toml:"cache" yaml:"cache"`
	Server      ServerConfig      `toml:"server" yaml:"server"`
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend" yaml:"backend"` // file, redis or none
	Dir       string `toml:"dir" yaml:"dir"`
	RedisAddr string `toml:"redis_addr" yaml:"redis_addr"`
	Prefix    string `toml:"prefix" yaml:"prefix"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr           string        `toml:"addr" yaml:"addr"`
	Source         string        `toml:"source" yaml:"source"` // tree served at /tree.svg
	AllowedOrigins []string      `toml:"allowed_origins" yaml:"allowed_origins"`
	Timeout        time.Duration `toml:"timeout" yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Width:       DefaultWidth,
		LabelMargin: DefaultLabelMargin,
		Mode:        string(geometry.DefaultMode),
		Domain:      radial.DefaultDomain(),
		Cache:       CacheConfig{Backend: cache.BackendFile},
		Server: ServerConfig{
			Addr:           DefaultAddr,
			AllowedOrigins: []string{"*"},
			Timeout:        DefaultTimeout,
		},
	}
}

// Load reads path over the defaults and then applies environment overrides.
// An empty path loads only defaults and environment. The format is chosen
// by extension: .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
		}
		if err := cfg.decode(path, data); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
		if c.Cache.Backend == "" || c.Cache.Backend == cache.BackendFile {
			c.Cache.Backend = cache.BackendRedis
		}
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "width must be positive, got %g", c.Width)
	}
	if c.LabelMargin < 0 || c.LabelMargin >= c.Width/2 {
		return errors.New(errors.ErrCodeInvalidConfig, "label_margin must be in [0, width/2), got %g", c.LabelMargin)
	}
	if _, err := geometry.ParseMode(c.Mode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "mode")
	}
	for i, cat := range c.Domain {
		if cat.Name == "" || cat.Color == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "domain[%d]: name and color are required", i)
		}
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendNone:
	case cache.BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid cache.backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	return nil
}

// OuterRadius is half the width.
func (c *Config) OuterRadius() float64 { return c.Width / 2 }

// InnerRadius is the outer radius less the label margin.
func (c *Config) InnerRadius() float64 { return c.OuterRadius() - c.LabelMargin }

// CacheOptions converts the cache section for [cache.Open].
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:   c.Cache.Backend,
		Dir:       c.Cache.Dir,
		RedisAddr: c.Cache.RedisAddr,
		Prefix:    c.Cache.Prefix,
	}
}
