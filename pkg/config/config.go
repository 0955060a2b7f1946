// Package config loads the goodnews TOML configuration.
//
// The file lives at $XDG_CONFIG_HOME/goodnews/config.toml, falling back to
// ~/.config/goodnews/config.toml. A missing file is not an error: built-in
// defaults apply.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/goodnews/pkg/errors"
	"github.com/matzehuels/goodnews/pkg/layout"
	"github.com/matzehuels/goodnews/pkg/notify"
	"github.com/matzehuels/goodnews/pkg/style"
)

const (
	appName  = "goodnews"
	fileName = "config.toml"
)

// Config is the on-disk configuration.
type Config struct {
	Defaults  Defaults          `toml:"defaults"`
	Templates Templates         `toml:"templates"`
	Frame     Frame             `toml:"frame"`
	Fonts     map[string]string `toml:"fonts"`
	Export    Export            `toml:"export"`
}

// Defaults is the initial composer state.
type Defaults struct {
	Category string  `toml:"category"`
	Align    string  `toml:"align"`
	Font     string  `toml:"font"`
	Size     float64 `toml:"size"`
	Text     string  `toml:"text"`
}

// Templates are base image paths per category. Empty selects the built-in
// template.
type Templates struct {
	Good string `toml:"good"`
	Bad  string `toml:"bad"`
}

// Frame holds padding fractions of the template size and a font scale.
type Frame struct {
	PadTop    float64 `toml:"pad_top"`
	PadBottom float64 `toml:"pad_bottom"`
	PadSide   float64 `toml:"pad_side"`
	Scale     float64 `toml:"scale"`
}

// Export configures sinks and notifications.
type Export struct {
	OutputDir     string `toml:"output_dir"`
	ToastDuration int    `toml:"toast_duration"` // milliseconds, 0 keeps toasts until closed
}

// Default returns the built-in configuration.
func Default() Config {
	d := style.Default()
	return Config{
		Defaults: Defaults{
			Category: string(d.Category),
			Align:    string(d.Alignment),
			Font:     string(d.FontKey),
			Size:     d.PointSize,
		},
		Frame: Frame{
			PadTop:    layout.DefaultPadTop,
			PadBottom: layout.DefaultPadBottom,
			PadSide:   layout.DefaultPadSide,
			Scale:     1,
		},
		Fonts: map[string]string{},
		Export: Export{
			OutputDir:     ".",
			ToastDuration: int(notify.DefaultDuration / time.Millisecond),
		},
	}
}

// Path returns the default config file location using the XDG standard.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfig, err, "locate home directory")
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the config at path, or the default location when path is
// empty. Keys missing from the file keep their defaults.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfig, err, "read %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfig, err, "invalid %s", path)
	}
	return cfg, nil
}

// Validate checks value ranges and style names.
func (c Config) Validate() error {
	if _, err := style.ParseCategory(c.Defaults.Category); err != nil {
		return err
	}
	if _, err := style.ParseAlignment(c.Defaults.Align); err != nil {
		return err
	}
	if err := errors.ValidatePointSize(c.Defaults.Size); err != nil {
		return err
	}
	if err := errors.ValidateText(c.Defaults.Text); err != nil {
		return err
	}
	for name, v := range map[string]float64{
		"pad_top":    c.Frame.PadTop,
		"pad_bottom": c.Frame.PadBottom,
		"pad_side":   c.Frame.PadSide,
	} {
		if v < 0 || v >= 0.5 {
			return errors.New(errors.ErrCodeInvalidInput, "frame.%s must be in [0, 0.5), got %v", name, v)
		}
	}
	if c.Frame.PadTop+c.Frame.PadBottom >= 1 {
		return errors.New(errors.ErrCodeInvalidInput, "frame padding leaves no vertical space")
	}
	if c.Frame.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "frame.scale must be positive, got %v", c.Frame.Scale)
	}
	if c.Export.ToastDuration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "export.toast_duration must not be negative")
	}
	for key := range c.Fonts {
		if _, ok := style.ParseFontKey(key); !ok {
			return errors.New(errors.ErrCodeInvalidStyle, "fonts: unknown font key %q", key)
		}
	}
	return nil
}

// Style returns the default style. Call Validate first; invalid names fall
// back to the built-in defaults.
func (c Config) Style() style.Config {
	s := style.Default()
	if cat, err := style.ParseCategory(c.Defaults.Category); err == nil {
		s.Category = cat
	}
	if a, err := style.ParseAlignment(c.Defaults.Align); err == nil {
		s.Alignment = a
	}
	s.FontKey, _ = style.ParseFontKey(c.Defaults.Font)
	if c.Defaults.Size > 0 {
		s.PointSize = c.Defaults.Size
	}
	return s
}

// TemplatePath returns the configured template for a category.
func (c Config) TemplatePath(cat style.Category) string {
	if cat == style.CategoryBad {
		return c.Templates.Bad
	}
	return c.Templates.Good
}

// LayoutFrame builds a frame for a template of the given size.
func (c Config) LayoutFrame(width, height int) layout.Frame {
	return layout.Frame{
		Width:     width,
		Height:    height,
		PadTop:    c.Frame.PadTop,
		PadBottom: c.Frame.PadBottom,
		PadSide:   c.Frame.PadSide,
		Scale:     c.Frame.Scale,
	}
}

// FontOverrides maps font keys to configured TTF paths.
func (c Config) FontOverrides() map[style.FontKey]string {
	out := make(map[style.FontKey]string, len(c.Fonts))
	for name, path := range c.Fonts {
		if k, ok := style.ParseFontKey(name); ok && path != "" {
			out[k] = path
		}
	}
	return out
}

// ToastDuration returns the notification display time.
func (c Config) ToastDuration() time.Duration {
	return time.Duration(c.Export.ToastDuration) * time.Millisecond
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "encode config")
	}
	return buf.Bytes(), nil
}

// Write stores c at path, creating parent directories. An existing file is
// only replaced when force is set.
func Write(path string, c Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeConfig, "%s already exists", path)
		}
	}
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeConfig, err, "create %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeConfig, err, "write %s", path)
	}
	return nil
}
