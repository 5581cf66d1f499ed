// Package config loads echoplot settings from a TOML file.
//
// The default location follows the XDG base directory convention:
// $XDG_CONFIG_HOME/echoplot/config.toml, falling back to
// ~/.config/echoplot/config.toml. A missing file yields [Default].
//
//	dpi = 150
//	width = 8.0
//	height = 4.0
//	ramp = "blackbody"
//	output_dir = "plots"
//	cache = true
//
//	[synth]
//	cols = 200
//	noise_level = -120.0
//	seed = 7
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/echoplot/echoplot/pkg/colorscale"
	"github.com/echoplot/echoplot/pkg/errors"
	"github.com/echoplot/echoplot/pkg/render/sink"
	"github.com/echoplot/echoplot/pkg/synth"
)

// AppName names the config and cache directories.
const AppName = "echoplot"

// Config holds user settings. Command-line flags override these values.
type Config struct {
	DPI       int     `toml:"dpi"`
	Width     float64 `toml:"width"`
	Height    float64 `toml:"height"`
	Ramp      string  `toml:"ramp"`
	OutputDir string  `toml:"output_dir"`
	Cache     bool    `toml:"cache"`
	Synth     Synth   `toml:"synth"`
}

// Synth holds defaults for synthetic layers.
type Synth struct {
	Cols       int     `toml:"cols"`
	NoiseLevel float64 `toml:"noise_level"`
	Seed       uint64  `toml:"seed"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DPI:       sink.DefaultDPI,
		Width:     sink.DefaultWidth,
		Height:    sink.DefaultHeight,
		Ramp:      colorscale.DefaultRamp,
		OutputDir: ".",
		Cache:     true,
		Synth: Synth{
			Cols:       synth.DefaultCols,
			NoiseLevel: synth.DefaultNoiseLevel,
		},
	}
}

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// Load reads the file at path over the defaults. A missing file is not an
// error. Unknown keys and invalid values fail with INVALID_CONFIG.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := errors.ValidateDPI(c.DPI); err != nil {
		return err
	}
	if err := errors.ValidateFigureSize(c.Width, c.Height); err != nil {
		return err
	}
	if _, err := colorscale.Ramp(c.Ramp); err != nil {
		return err
	}
	if c.Synth.Cols < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "synth cols must be positive, got %d", c.Synth.Cols)
	}
	return nil
}
