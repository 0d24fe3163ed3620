// Package config handles configuration loading for the toastui demo:
// named banner presets plus theme and audio settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/toastui/internal/banner"
	"github.com/jmylchreest/toastui/internal/theme"
)

// Duration is a time.Duration that unmarshals from human-readable
// strings ("3s", "1m30s") or integer milliseconds. 0 means the banner
// never auto-dismisses.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '3s', '500ms' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the demo application configuration.
// Loaded from ~/.config/toastui/config.toml.
type Config struct {
	Demo    DemoConfig              `toml:"demo"`
	Theme   ThemeConfig             `toml:"theme"`
	Audio   AudioConfig             `toml:"audio"`
	Presets map[string]PresetConfig `toml:"preset"`
}

// DemoConfig contains demo harness settings.
type DemoConfig struct {
	Preset       string  `toml:"preset"`         // Preset presented on trigger
	MinDragCells float64 `toml:"min_drag_cells"` // Gesture distance threshold in cells
}

// ThemeConfig contains color scheme settings.
type ThemeConfig struct {
	ColorScheme string `toml:"color_scheme"` // "system", "light", or "dark"
}

// AudioConfig contains chime playback settings.
type AudioConfig struct {
	Enabled bool   `toml:"enabled"`
	Volume  int    `toml:"volume"` // 0-100
	Chime   string `toml:"chime"`  // Sound file played on presentation
}

// PresetConfig describes one named banner preset.
type PresetConfig struct {
	Edge         string   `toml:"edge"`          // "top" or "bottom"
	Duration     Duration `toml:"duration"`      // "0" = never auto-dismiss
	MinWidth     int      `toml:"min_width"`     // Cells, 0 = none
	CornerRadius *float64 `toml:"corner_radius"` // Absent = pill from content height
	Background   string   `toml:"background"`    // Absent = scheme surface
	ShadowColor  string   `toml:"shadow_color"`
	ShadowRadius int      `toml:"shadow_radius"`
	ShadowOffset int      `toml:"shadow_offset"`
	Chime        string   `toml:"chime"`    // Per-preset chime override
	Template     string   `toml:"template"` // Content template name, "" = default
}

// Banner maps the preset onto the core banner configuration.
func (p PresetConfig) Banner() banner.Config {
	cfg := banner.Config{
		Edge:         banner.Edge(p.Edge),
		Duration:     p.Duration.Duration(),
		MinWidth:     p.MinWidth,
		CornerRadius: banner.CornerRadiusAuto,
		Background:   p.Background,
		ShadowColor:  p.ShadowColor,
		ShadowRadius: p.ShadowRadius,
		ShadowOffset: p.ShadowOffset,
	}
	if cfg.Edge == "" {
		cfg.Edge = banner.EdgeTop
	}
	if p.CornerRadius != nil {
		cfg.CornerRadius = *p.CornerRadius
	}
	return cfg
}

// DefaultConfig returns a Config carrying the standard preset.
func DefaultConfig() *Config {
	std := banner.Standard()
	return &Config{
		Demo: DemoConfig{
			Preset:       "standard",
			MinDragCells: 2,
		},
		Theme: ThemeConfig{
			ColorScheme: string(theme.SchemeSystem),
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  80,
		},
		Presets: map[string]PresetConfig{
			"standard": {
				Edge:         string(std.Edge),
				Duration:     Duration(std.Duration),
				ShadowColor:  std.ShadowColor,
				ShadowRadius: std.ShadowRadius,
				ShadowOffset: std.ShadowOffset,
			},
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "toastui", "config.toml")
}

// TemplatesDir returns the directory for user content templates,
// alongside the config file.
func TemplatesDir() string {
	path := ConfigPath()
	if path == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(path), "templates")
}

// Load reads configuration from path (ConfigPath() when empty),
// overlaying file contents on defaults. A missing file yields defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to path atomically, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks the configuration for contract violations.
func (c *Config) Validate() error {
	if !theme.Scheme(c.Theme.ColorScheme).Valid() {
		return fmt.Errorf("invalid color_scheme %q, must be one of: %v",
			c.Theme.ColorScheme, theme.ValidSchemes())
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	if c.Demo.MinDragCells < 0 {
		return fmt.Errorf("min_drag_cells must not be negative, got %v", c.Demo.MinDragCells)
	}

	for name, preset := range c.Presets {
		if err := preset.validate(); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
	}

	if _, ok := c.Presets[c.Demo.Preset]; !ok {
		return fmt.Errorf("demo preset %q is not defined", c.Demo.Preset)
	}

	return nil
}

func (p PresetConfig) validate() error {
	if p.Edge != "" {
		valid := false
		for _, e := range banner.ValidEdges() {
			if p.Edge == string(e) {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid edge %q, must be one of: %v", p.Edge, banner.ValidEdges())
		}
	}
	if p.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %s", p.Duration.Duration())
	}
	if p.MinWidth < 0 {
		return fmt.Errorf("min_width must not be negative, got %d", p.MinWidth)
	}
	return nil
}

// Preset returns the named preset mapped to a banner configuration.
func (c *Config) Preset(name string) (banner.Config, error) {
	preset, ok := c.Presets[name]
	if !ok {
		return banner.Config{}, fmt.Errorf("unknown preset %q", name)
	}
	return preset.Banner(), nil
}

// TemplateFor returns the content template name for a preset. Empty
// when the preset does not exist or names no template.
func (c *Config) TemplateFor(name string) string {
	if preset, ok := c.Presets[name]; ok {
		return preset.Template
	}
	return ""
}

// ChimeFor returns the chime path for a preset, falling back to the
// global audio chime. Empty when audio is disabled or nothing is set.
func (c *Config) ChimeFor(name string) string {
	if !c.Audio.Enabled {
		return ""
	}
	if preset, ok := c.Presets[name]; ok && preset.Chime != "" {
		return preset.Chime
	}
	return c.Audio.Chime
}
