package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/pixmesh/pkg/errors"
)

const tomlConfig = `
cache = "badger:/tmp/pixmesh"
cache_prefix = "site-a:"

[mesh]
thickness = 4
max_dist = 3.5
any_channel = true
formats = ["nmesh", "stl"]

[server]
addr = "127.0.0.1:9000"
`

const yamlConfig = `
cache: "redis://localhost:6379/0"
mesh:
  thickness: 2
  no_smooth: true
  skip_volumes: true
  formats: [neutral]
`

func TestParseTOML(t *testing.T) {
	cfg, err := Parse([]byte(tomlConfig), "toml")
	require.NoError(t, err)

	assert.Equal(t, "badger:/tmp/pixmesh", cfg.Cache)
	assert.Equal(t, "site-a:", cfg.CachePrefix)
	assert.Equal(t, 4, cfg.Mesh.Thickness)
	assert.Equal(t, 3.5, cfg.Mesh.SmoothRadius())
	assert.True(t, cfg.Mesh.AnyChannel)
	assert.Equal(t, []string{"nmesh", "stl"}, cfg.Mesh.Formats)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, int64(DefaultMaxUpload), cfg.Server.MaxUploadBytes)
}

func TestParseYAML(t *testing.T) {
	for _, format := range []string{"yaml", "yml"} {
		cfg, err := Parse([]byte(yamlConfig), format)
		require.NoError(t, err, format)

		assert.Equal(t, "redis://localhost:6379/0", cfg.Cache)
		assert.Equal(t, 2, cfg.Mesh.Thickness)
		assert.True(t, cfg.Mesh.NoSmooth)
		assert.Nil(t, cfg.Mesh.MaxDist, "unset max_dist stays unset")
		assert.True(t, cfg.Mesh.SkipVolumes)
		assert.Equal(t, []string{"neutral"}, cfg.Mesh.Formats)
		assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	}
}

func TestParseExplicitZeroMaxDist(t *testing.T) {
	tests := []struct {
		data   string
		format string
	}{
		{"[mesh]\nmax_dist = 0.0\n", "toml"},
		{"mesh:\n  max_dist: 0\n", "yaml"},
	}
	for _, tt := range tests {
		cfg, err := Parse([]byte(tt.data), tt.format)
		require.NoError(t, err, tt.format)
		require.NotNil(t, cfg.Mesh.MaxDist, tt.format)
		assert.Zero(t, *cfg.Mesh.MaxDist, tt.format)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
	}{
		{"unknown format", "", "ini"},
		{"bad toml", "thickness = [", "toml"},
		{"bad yaml", "mesh: [1, 2", "yaml"},
		{"negative thickness", "[mesh]\nthickness = -1", "toml"},
		{"negative max dist", "mesh:\n  max_dist: -1", "yaml"},
		{"unknown output", "[mesh]\nformats = [\"png\"]", "toml"},
		{"negative upload", "[server]\nmax_upload_bytes = -5", "toml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrCodeInvalidConfig), "code = %s", errs.GetCode(err))
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvCache, "")

	dir := t.TempDir()
	path := filepath.Join(dir, "pixmesh.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Mesh.Thickness)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errs.Is(err, errs.ErrCodeFileNotFound))
}

func TestLoadDefault(t *testing.T) {
	t.Setenv(EnvCache, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EnvCache, "none")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.Cache)
}
