package dimviz

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dimviz/dimviz/scene"
	"github.com/dimviz/dimviz/shapes"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Initial InitialConfig `yaml:"initial"`
	Palette []string      `yaml:"palette"`
	Panels  []PanelConfig `yaml:"panels"`
	Log     LogConfig     `yaml:"log"`
	// Watch reloads the file on change and applies its initial selection.
	Watch bool `yaml:"watch"`

	path string
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type InitialConfig struct {
	Shape string `yaml:"shape"`
	Color string `yaml:"color"`
}

// PanelConfig declares a panel container. Containers are laid out in order.
type PanelConfig struct {
	Key   PanelKey `yaml:"key"`
	Title string   `yaml:"title"`
}

type LogConfig struct {
	Prefix string `yaml:"prefix"`
	Debug  bool   `yaml:"debug"`
}

// NamedColor is one palette entry; Name is what the color selector shows.
type NamedColor struct {
	Name  string
	Color scene.Color
}

const (
	DefaultShape = "cube"
	DefaultColor = "#3366FF"
)

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{Width: 1280, Height: 800, Title: "Dimensional Objects Visualizer"},
		Initial: InitialConfig{
			Shape: DefaultShape,
			Color: DefaultColor,
		},
		Palette: []string{DefaultColor, "#FF3333", "#33CC66", "#FFCC00", "#CC33FF", "orange", "white"},
		Panels: []PanelConfig{
			{Key: Panel1D, Title: "1D Line"},
			{Key: Panel2D, Title: "2D Shape"},
			{Key: Panel3D, Title: "3D Object"},
			{Key: Panel4D, Title: "4D Projection"},
		},
		Log: LogConfig{Prefix: "dimviz"},
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// ParseConfig decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Path() string {
	return c.path
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if _, err := c.Selection(); err != nil {
		return err
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("%w: empty palette", ErrInvalidConfig)
	}
	if _, err := c.Colors(); err != nil {
		return err
	}

	seen := map[PanelKey]bool{}
	for _, p := range c.Panels {
		if !p.Key.Valid() {
			return fmt.Errorf("%w: unknown panel key %q", ErrInvalidConfig, p.Key)
		}
		if seen[p.Key] {
			return fmt.Errorf("%w: duplicate panel key %q", ErrInvalidConfig, p.Key)
		}
		seen[p.Key] = true
	}
	return nil
}

// Selection resolves the initial shape and color.
func (c *Config) Selection() (Selection, error) {
	kind, err := shapes.ParseKind(c.Initial.Shape)
	if err != nil {
		return Selection{}, fmt.Errorf("%w: %w", ErrUnknownShape, err)
	}
	color, err := parseColor(c.Initial.Color)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Kind: kind, Color: color}, nil
}

// Colors resolves the palette. The initial color is prepended when the
// palette does not already contain it.
func (c *Config) Colors() ([]NamedColor, error) {
	out := make([]NamedColor, 0, len(c.Palette)+1)
	for _, name := range c.Palette {
		col, err := parseColor(name)
		if err != nil {
			return nil, err
		}
		out = append(out, NamedColor{Name: name, Color: col})
	}

	initial, err := parseColor(c.Initial.Color)
	if err != nil {
		return nil, err
	}
	for _, nc := range out {
		if nc.Color == initial {
			return out, nil
		}
	}
	return append([]NamedColor{{Name: c.Initial.Color, Color: initial}}, out...), nil
}

// PanelTitle is the configured title for key, or the key itself.
func (c *Config) PanelTitle(key PanelKey) string {
	for _, p := range c.Panels {
		if p.Key == key && p.Title != "" {
			return p.Title
		}
	}
	return strings.ToUpper(string(key))
}

func parseColor(s string) (scene.Color, error) {
	col, err := scene.ParseColor(s)
	if err != nil {
		return scene.Color{}, fmt.Errorf("%w: %w", ErrUnknownColor, err)
	}
	return col, nil
}
