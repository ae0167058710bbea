// Package config loads pixmesh settings from a TOML or YAML file.
//
// A config file supplies defaults for the mesh pipeline, the cache location
// and the API server. Command-line flags override whatever the file sets.
//
//	# pixmesh.toml
//	cache = "badger:/var/cache/pixmesh"
//	cache_prefix = "site-a:"
//
//	[mesh]
//	thickness = 4
//	max_dist  = 3.5
//	formats   = ["nmesh", "stl"]
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/pixmesh/pkg/errors"
	"github.com/matzehuels/pixmesh/pkg/pipeline"
)

// EnvCache overrides the cache location from the file.
const EnvCache = "PIXMESH_CACHE"

// DefaultAddr is the API listen address when none is configured.
const DefaultAddr = ":8080"

// Config is the decoded config file.
type Config struct {
	// Cache is a location understood by cache.Open. Empty means the CLI's
	// default file cache.
	Cache string `toml:"cache" yaml:"cache"`
	// CachePrefix namespaces every cache key, so several installations can
	// share one Redis instance.
	CachePrefix string           `toml:"cache_prefix" yaml:"cache_prefix"`
	Mesh        pipeline.Options `toml:"mesh" yaml:"mesh"`
	Server      Server           `toml:"server" yaml:"server"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr" yaml:"addr"`
	// MaxUploadBytes caps request bodies. Zero means DefaultMaxUpload.
	MaxUploadBytes int64 `toml:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// DefaultMaxUpload is the request body limit when none is configured.
const DefaultMaxUpload = 32 << 20

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: Server{Addr: DefaultAddr, MaxUploadBytes: DefaultMaxUpload},
	}
}

// Load reads the file at path, choosing the decoder by extension
// (.toml, .yaml or .yml). An empty path returns [Default].
// PIXMESH_CACHE, when set, replaces the cache location.
func Load(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = Default()
	} else {
		if err := errs.ValidatePath(path); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file not found: %s", path)
			}
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
		}
		cfg, err = Parse(data, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
		if err != nil {
			return nil, err
		}
	}

	if v := os.Getenv(EnvCache); v != "" {
		cfg.Cache = v
	}
	return cfg, nil
}

// Parse decodes data in the given format ("toml", "yaml" or "yml") over the
// defaults and validates the result.
func Parse(data []byte, format string) (*Config, error) {
	cfg := Default()

	switch format {
	case "toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse TOML config")
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse YAML config")
		}
	default:
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unsupported config format %q (want toml or yaml)", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the mesh options and server limits without applying
// pipeline defaults, so flags can still override unset fields.
func (c *Config) Validate() error {
	if err := errs.ValidateThickness(c.Mesh.Thickness); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "mesh.thickness")
	}
	if c.Mesh.MaxDist != nil {
		if err := errs.ValidateMaxDist(*c.Mesh.MaxDist); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "mesh.max_dist")
		}
	}
	if err := pipeline.ValidateFormats(c.Mesh.Formats); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "mesh.formats")
	}
	if c.Server.MaxUploadBytes < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server.max_upload_bytes cannot be negative")
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = DefaultMaxUpload
	}
	return nil
}
