// Package config merges the client's TOML config file with its command line.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"

	"github.com/remotedisplay/shell/engine/core"
	"github.com/remotedisplay/shell/engine/gfx"
)

// Config holds the client settings.
type Config struct {
	Window WindowConfig `toml:"window"`
	Render RenderConfig `toml:"render"`
	Input  InputConfig  `toml:"input"`
	Log    LogConfig    `toml:"log"`
	Source SourceConfig `toml:"source"`

	// Runtime only, not read from the file.
	Path     string `toml:"-"`
	Headless bool   `toml:"-"`
	Frames   int    `toml:"-"`
	Profile  string `toml:"-"` // speedscope capture written on exit
}

type WindowConfig struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
}

type RenderConfig struct {
	VSync        bool   `toml:"vsync"`
	ScaleQuality string `toml:"scale_quality"` // nearest, linear or best
	DebugOverlay bool   `toml:"debug_overlay"`
}

type InputConfig struct {
	ExitKey       string `toml:"exit_key"` // "none" disables the hard-exit key
	FullscreenKey string `toml:"fullscreen_key"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// SourceConfig drives the stub frame source of the player view.
type SourceConfig struct {
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	FPS      int    `toml:"fps"`
	TestCard string `toml:"test_card"` // optional PNG shown instead of the pattern
}

func Default() Config {
	return Config{
		Window: WindowConfig{Title: "Remote Display Client", Width: 1280, Height: 720},
		Render: RenderConfig{VSync: true, ScaleQuality: "linear", DebugOverlay: true},
		Input:  InputConfig{ExitKey: "escape", FullscreenKey: "f11"},
		Log:    LogConfig{Level: "info"},
		Source: SourceConfig{Width: 640, Height: 360, FPS: 30},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/dvrclient/client.toml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "dvrclient", "client.toml")
}

// ErrHelp is returned by Load when --help was requested.
var ErrHelp = pflag.ErrHelp

// Load builds the configuration from defaults, the config file and args
// (without the program name), in increasing priority. A missing file at the
// default location is not an error.
func Load(args []string) (Config, error) {
	cfg := Default()

	fl := pflag.NewFlagSet("dvrclient", pflag.ContinueOnError)
	path := fl.String("config", DefaultPath(), "config file")
	title := fl.String("title", cfg.Window.Title, "window title")
	fullscreen := fl.Bool("fullscreen", false, "start fullscreen")
	width := fl.Int("width", cfg.Window.Width, "initial window width")
	height := fl.Int("height", cfg.Window.Height, "initial window height")
	noVSync := fl.Bool("no-vsync", false, "disable vertical sync")
	scale := fl.String("scale", cfg.Render.ScaleQuality, "texture scale quality: nearest, linear or best")
	overlay := fl.Bool("debug-overlay", cfg.Render.DebugOverlay, "show the diagnostic overlay")
	level := fl.String("log-level", cfg.Log.Level, "log level: debug, info, warn or error")
	headless := fl.Bool("headless", false, "run without a window")
	frames := fl.Int("frames", 0, "stop after this many frames (0 = no limit)")
	exitKey := fl.String("exit-key", cfg.Input.ExitKey, "hard-exit key name, or none")
	profile := fl.String("profile", "", "write a speedscope frame profile to this file on exit")

	if err := fl.Parse(args); err != nil {
		return cfg, err
	}

	cfg.Path = *path
	if err := ReadFile(cfg.Path, &cfg, fl.Changed("config")); err != nil {
		return cfg, err
	}

	if fl.Changed("title") {
		cfg.Window.Title = *title
	}
	if fl.Changed("fullscreen") {
		cfg.Window.Fullscreen = *fullscreen
	}
	if fl.Changed("width") {
		cfg.Window.Width = *width
	}
	if fl.Changed("height") {
		cfg.Window.Height = *height
	}
	if fl.Changed("no-vsync") {
		cfg.Render.VSync = !*noVSync
	}
	if fl.Changed("scale") {
		cfg.Render.ScaleQuality = *scale
	}
	if fl.Changed("debug-overlay") {
		cfg.Render.DebugOverlay = *overlay
	}
	if fl.Changed("log-level") {
		cfg.Log.Level = *level
	}
	if fl.Changed("exit-key") {
		cfg.Input.ExitKey = *exitKey
	}
	cfg.Headless = *headless
	cfg.Frames = *frames
	cfg.Profile = *profile

	return cfg, cfg.Validate()
}

// ReadFile decodes the TOML file at path over cfg. A missing file is an error
// only when required.
func ReadFile(path string, cfg *Config, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames %d must not be negative", c.Frames))
	}
	if _, err := gfx.ParseScaleQuality(c.Render.ScaleQuality); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Bindings(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	if c.Source.Width <= 0 || c.Source.Height <= 0 || c.Source.FPS <= 0 {
		errs = append(errs, fmt.Errorf("source %dx%d@%d must be positive", c.Source.Width, c.Source.Height, c.Source.FPS))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Bindings resolves the configured key names.
func (c Config) Bindings() (core.Bindings, error) {
	b := core.DefaultBindings()
	exit, err := core.ParseKey(c.Input.ExitKey)
	if err != nil {
		return b, fmt.Errorf("exit key: %w", err)
	}
	full, err := core.ParseKey(c.Input.FullscreenKey)
	if err != nil {
		return b, fmt.Errorf("fullscreen key: %w", err)
	}
	b.Exit = exit
	b.Fullscreen = full
	return b, nil
}

// Shell returns the shell settings.
func (c Config) Shell() (core.Config, error) {
	b, err := c.Bindings()
	if err != nil {
		return core.Config{}, err
	}
	return core.Config{Bindings: b, DebugOverlay: c.Render.DebugOverlay}, nil
}
