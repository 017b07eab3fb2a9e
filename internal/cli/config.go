package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/matzehuels/mazer/pkg/errors"
	"github.com/matzehuels/mazer/pkg/layout"
	"github.com/matzehuels/mazer/pkg/maze"
	"github.com/matzehuels/mazer/pkg/pipeline"
	"github.com/matzehuels/mazer/pkg/style"
)

// Config is the mazer.toml settings file. Flags override every value.
//
//	[display]
//	width = 390
//	height = 844
//	scale = 3
//
//	[render]
//	palette = "Peter River"
//	heat_map = true
//	background = "mint"
//	formats = ["svg", "png"]
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//
//	[reveal]
//	sound = true
//	volume = 0.4
type Config struct {
	Display layout.Display `toml:"display"`
	Render  RenderConfig   `toml:"render"`
	Cache   CacheConfig    `toml:"cache"`
	Reveal  RevealConfig   `toml:"reveal"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Topology   string   `toml:"topology"`
	Tier       string   `toml:"tier"`
	Palette    string   `toml:"palette"`
	HeatMap    bool     `toml:"heat_map"`
	Background string   `toml:"background"`
	Gradient   bool     `toml:"gradient"`
	Tint       string   `toml:"tint"`
	Formats    []string `toml:"formats"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	RedisURL string `toml:"redis_url"`
}

// RevealConfig configures the terminal reveal.
type RevealConfig struct {
	Sound  bool    `toml:"sound"`
	Volume float64 `toml:"volume"`
	Bell   bool    `toml:"bell"`
}

// DefaultConfig returns the settings used without a file.
func DefaultConfig() Config {
	return Config{
		Display: layout.Display{
			Width:  pipeline.DefaultWidth,
			Height: pipeline.DefaultHeight,
			Scale:  pipeline.DefaultScale,
		},
		Render: RenderConfig{Tier: maze.Medium.String()},
		Reveal: RevealConfig{Volume: 0.5},
	}
}

// LoadConfig reads path, or the first mazer.toml found in the working
// directory and the user config directory. No file means defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = findConfig()
	}
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

func findConfig() string {
	candidates := []string{configFileName}
	if dir, err := configDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, configFileName))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate checks names and display values.
func (c Config) Validate() error {
	if err := c.Display.Validate(); err != nil {
		return err
	}
	if c.Render.Topology != "" {
		if err := pipeline.ValidateTopology(c.Render.Topology); err != nil {
			return err
		}
	}
	if c.Render.Tier != "" {
		if _, ok := maze.ParseCellSize(c.Render.Tier); !ok {
			return errors.New(errors.ErrCodeInvalidInput, "unknown cell size tier %q", c.Render.Tier)
		}
	}
	if c.Render.Palette != "" {
		if _, err := style.PaletteByName(c.Render.Palette); err != nil {
			return err
		}
	}
	if len(c.Render.Formats) > 0 {
		if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
			return err
		}
	}
	if c.Reveal.Volume < 0 || c.Reveal.Volume > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "reveal volume must be in [0, 1], got %v", c.Reveal.Volume)
	}
	return nil
}

// Tier returns the configured cell size tier.
func (c Config) Tier() maze.CellSize {
	t, _ := maze.ParseCellSize(c.Render.Tier)
	return t
}

// apply copies settings into opts for every flag the user did not set.
func (c Config) apply(flags *pflag.FlagSet, opts *pipeline.Options) {
	unset := func(name string) bool {
		f := flags.Lookup(name)
		return f == nil || !f.Changed
	}
	if unset("width") {
		opts.Width = c.Display.Width
	}
	if unset("height") {
		opts.Height = c.Display.Height
	}
	if unset("scale") {
		opts.Scale = c.Display.Scale
	}
	if unset("topology") && c.Render.Topology != "" {
		opts.Topology = c.Render.Topology
	}
	if unset("palette") && c.Render.Palette != "" {
		opts.Palette = c.Render.Palette
	}
	if unset("heatmap") {
		opts.HeatMap = opts.HeatMap || c.Render.HeatMap
	}
	if unset("background") && c.Render.Background != "" {
		opts.Background = c.Render.Background
	}
	if unset("gradient") {
		opts.Gradient = opts.Gradient || c.Render.Gradient
	}
	if unset("tint") && c.Render.Tint != "" {
		opts.Tint = c.Render.Tint
	}
	if unset("format") && len(c.Render.Formats) > 0 {
		opts.Formats = c.Render.Formats
	}
}
