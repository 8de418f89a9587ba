package lattice

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the toolkit settings. The zero value is not useful; start
// from DefaultConfig or LoadConfig.
type Config struct {
	// Debug enables disposed-widget checks and tree size warnings, and
	// lowers the log level to debug.
	Debug bool `toml:"debug"`
	// LogLevel is one of debug, info, warn, error. Ignored when Debug is set.
	LogLevel string `toml:"log_level"`
	// TimeDraw logs how long each child draw takes.
	TimeDraw bool `toml:"time_draw"`
	// Composer outlines widgets that have no fill or border, for interactive
	// layout tools.
	Composer bool `toml:"composer"`
	// MaxDamageRects caps the dirty rectangles kept per screen before they
	// collapse into one bounding rectangle. 0 disables the cap.
	MaxDamageRects int `toml:"max_damage_rects"`

	Display DisplayConfig `toml:"display"`
	Theme   ThemeConfig   `toml:"theme"`
}

// DisplayConfig describes the output device.
type DisplayConfig struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Title  string  `toml:"title"`
	Scale  float64 `toml:"scale"`
	// Device is the framebuffer device, e.g. /dev/fb0.
	Device string `toml:"device"`
	// PlaneDevice is the DRM card used for overlay planes, e.g. /dev/dri/card0.
	PlaneDevice string `toml:"plane_device"`
}

// ThemeConfig selects palette overrides.
type ThemeConfig struct {
	// PaletteFile is a TOML palette loaded as the global palette.
	PaletteFile string `toml:"palette_file"`
	// Watch reloads PaletteFile when it changes.
	Watch bool `toml:"watch"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		LogLevel:       "info",
		MaxDamageRects: DefaultMaxDamageRects,
		Display: DisplayConfig{
			Width:       800,
			Height:      480,
			Title:       "lattice",
			Scale:       1,
			Device:      "/dev/fb0",
			PlaneDevice: "/dev/dri/card0",
		},
	}
}

// LoadConfig reads a TOML config file on top of DefaultConfig and applies
// environment overrides.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("lattice: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses TOML config data on top of DefaultConfig and applies
// environment overrides.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("lattice: parse config: %w", err)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv honors LATTICE_TIME_DRAW and LATTICE_DEBUG.
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("LATTICE_TIME_DRAW"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.TimeDraw = b
		} else {
			c.TimeDraw = v != ""
		}
	}
	if v, ok := os.LookupEnv("LATTICE_DEBUG"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.MaxDamageRects < 0 {
		return fmt.Errorf("lattice: max_damage_rects must be >= 0, got %d", c.MaxDamageRects)
	}
	if c.Display.Width < 0 || c.Display.Height < 0 {
		return fmt.Errorf("lattice: display size %dx%d is negative", c.Display.Width, c.Display.Height)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level selected by Debug and LogLevel.
func (c Config) Level() (slog.Level, error) {
	if c.Debug {
		return slog.LevelDebug, nil
	}
	switch c.LogLevel {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("lattice: unknown log_level %q", c.LogLevel)
}

// Marshal encodes the config as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
