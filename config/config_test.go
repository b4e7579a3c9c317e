package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "oxy scene viewer", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, DefaultScene, cfg.DefaultScene)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
asset_folder = "/srv/assets"
log_level = "debug"
profiling = true

[window]
title = "fox"
width = 640

[render]
msaa = 1
clear_color = [0.0, 0.0, 0.0, 1.0]
`), 0o644))

	cfg, err := load(env(map[string]string{EnvConfigFile: path}))
	require.NoError(t, err)
	assert.Equal(t, "/srv/assets", cfg.AssetFolder)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Profiling)
	assert.Equal(t, "fox", cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "absent keys keep their defaults")
	assert.Equal(t, 1, cfg.Render.MSAA)
	assert.True(t, cfg.Render.VSync)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, cfg.Render.ClearColor)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte(`asset_folder = "/from/file"`), 0o644))

	cfg, err := load(env(map[string]string{EnvConfigFile: path, EnvAssetFolder: "/from/env"}))
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.AssetFolder)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "unknown.toml")
	require.NoError(t, os.WriteFile(unknown, []byte(`colour = "red"`), 0o644))
	badLevel := filepath.Join(dir, "level.toml")
	require.NoError(t, os.WriteFile(badLevel, []byte(`log_level = "loud"`), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.toml")},
		{"unknown key", unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(env(map[string]string{EnvConfigFile: tt.path}))
			assert.Error(t, err)
		})
	}

	_, err := load(env(map[string]string{EnvConfigFile: badLevel}))
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}

func TestResolveScenePath(t *testing.T) {
	cfg := Default()
	cfg.AssetFolder = "/srv/assets"

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default scene", nil, filepath.Join("/srv/assets", DefaultScene)},
		{"relative argument", []string{"fox.glb"}, filepath.Join("/srv/assets", "fox.glb")},
		{"absolute argument", []string{"/tmp/fox.glb"}, "/tmp/fox.glb"},
		{"empty argument", []string{""}, filepath.Join("/srv/assets", DefaultScene)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.ResolveScenePath(tt.args))
		})
	}

	assert.Equal(t, "fox.glb", Default().ResolveScenePath([]string{"fox.glb"}), "no folder means the working directory")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLogLevel("verbose")
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}
