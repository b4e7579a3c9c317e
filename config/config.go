// Package config holds the viewer's runtime settings.
//
// Settings start from Default, are overridden by an optional TOML file named by
// OXY_VIEWER_CONFIG, and finally by OXY_ASSET_FOLDER.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

const (
	// EnvAssetFolder names the asset-folder root. Relative scene paths are joined onto it.
	EnvAssetFolder = "OXY_ASSET_FOLDER"

	// EnvConfigFile names an optional TOML settings file.
	EnvConfigFile = "OXY_VIEWER_CONFIG"

	// DefaultScene is the scene shown when no path is given on the command line.
	DefaultScene = "assets/models/alien.glb"
)

// ErrInvalidLogLevel is returned for a log level other than debug, info, warn or error.
var ErrInvalidLogLevel = errors.New("invalid log level")

// Config is the full set of viewer settings.
type Config struct {
	// AssetFolder is the root relative scene paths resolve against. Empty means the working directory.
	AssetFolder  string `toml:"asset_folder"`
	DefaultScene string `toml:"default_scene"`
	LogLevel     string `toml:"log_level"`
	Profiling    bool   `toml:"profiling"`

	Window WindowConfig `toml:"window"`
	Camera CameraConfig `toml:"camera"`
	Render RenderConfig `toml:"render"`
}

// WindowConfig sizes and names the viewer window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// CameraConfig is the lens before the camera is framed on a scene.
type CameraConfig struct {
	FovDegrees float32 `toml:"fov_degrees"`
	Near       float32 `toml:"near"`
	Far        float32 `toml:"far"`
}

// RenderConfig selects presentation and anti-aliasing.
type RenderConfig struct {
	VSync bool `toml:"vsync"`
	// MSAA is the sample count; 1 or less disables multisampling, anything higher uses 4.
	MSAA int `toml:"msaa"`
	// ClearColor is the linear RGBA background.
	ClearColor [4]float32 `toml:"clear_color"`
}

// Default returns the built-in settings.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		DefaultScene: DefaultScene,
		LogLevel:     "info",
		Window: WindowConfig{
			Title:  "oxy scene viewer",
			Width:  1280,
			Height: 720,
		},
		Camera: CameraConfig{
			FovDegrees: 60,
			Near:       0.1,
			Far:        1000,
		},
		Render: RenderConfig{
			VSync:      true,
			MSAA:       4,
			ClearColor: [4]float32{0.1, 0.1, 0.1, 1},
		},
	}
}

// Load builds the settings from the defaults, the optional TOML file and the environment.
// A file named by OXY_VIEWER_CONFIG that does not exist is an error.
//
// Returns:
//   - Config: the resolved settings
//   - error: an error if the file cannot be read or parsed, or a value is invalid
func Load() (Config, error) {
	return load(os.Getenv)
}

// load is Load with an injectable environment.
func load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if path := getenv(EnvConfigFile); path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return cfg, fmt.Errorf("config path %q: %w", path, err)
		}
		data, err := os.ReadFile(expanded)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := Decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", expanded, err)
		}
		slog.Debug("loaded config file", "path", expanded)
	}

	if folder := getenv(EnvAssetFolder); folder != "" {
		cfg.AssetFolder = folder
	}

	if cfg.AssetFolder != "" {
		expanded, err := homedir.Expand(cfg.AssetFolder)
		if err != nil {
			return cfg, fmt.Errorf("asset folder %q: %w", cfg.AssetFolder, err)
		}
		cfg.AssetFolder = expanded
	}

	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode overlays TOML settings onto cfg. Keys absent from the document keep their
// current values; unknown keys are an error.
//
// Parameters:
//   - data: the TOML document
//   - cfg: the settings to overlay
//
// Returns:
//   - error: a decode error
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// ResolveScenePath picks the scene to load: the first argument if given, otherwise the
// default scene. Relative paths are joined onto the asset folder.
//
// Parameters:
//   - args: the positional command line arguments
//
// Returns:
//   - string: the scene file path
func (c Config) ResolveScenePath(args []string) string {
	path := c.DefaultScene
	if len(args) > 0 && args[0] != "" {
		path = args[0]
	}
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}
	if filepath.IsAbs(path) || c.AssetFolder == "" {
		return path
	}
	return filepath.Join(c.AssetFolder, path)
}

// ParseLogLevel maps a level name onto a slog level. Matching ignores case.
//
// Parameters:
//   - level: one of debug, info, warn, warning or error; empty means info
//
// Returns:
//   - slog.Level: the level
//   - error: ErrInvalidLogLevel for any other name
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
	}
}
