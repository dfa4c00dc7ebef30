package breakout

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

type PaddleConfig struct {
	Speed float32 `yaml:"speed"`
	Min   float32 `yaml:"min"`
	Max   float32 `yaml:"max"`
}

// ColorConfig holds colours as hex strings such as "#ff8050".
type ColorConfig struct {
	Background  string `yaml:"background"`
	Ball        string `yaml:"ball"`
	PaddleLeft  string `yaml:"paddle_left"`
	PaddleRight string `yaml:"paddle_right"`
}

// Config is the startup configuration: defaults, then an optional YAML
// file, then command-line flags.
type Config struct {
	Window    WindowConfig `yaml:"window"`
	ShaderDir string       `yaml:"shader_dir"`
	Lives     int          `yaml:"lives"`
	Paddle    PaddleConfig `yaml:"paddle"`
	Colors    ColorConfig  `yaml:"colors"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  "My Breakout Game",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		ShaderDir: "assets/shaders",
		Lives:     3,
		Paddle: PaddleConfig{
			Speed: 0.05,
			Min:   -0.85,
			Max:   0.85,
		},
		Colors: ColorConfig{
			Background:  "#ff7f4f",
			Ball:        "#ffffff",
			PaddleLeft:  "#ff0000",
			PaddleRight: "#0000ff",
		},
	}
}

// LoadConfig reads path over the defaults. Keys missing from the file keep
// their default; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// ParseFlags builds the configuration from args. -config names a YAML file;
// any other flag given on the command line overrides both the defaults and
// the file.
func ParseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	flags := DefaultConfig()

	configPath := fs.String("config", "", "path to a YAML config file")
	fs.StringVar(&flags.Window.Title, "title", flags.Window.Title, "window title")
	fs.IntVar(&flags.Window.Width, "width", flags.Window.Width, "window width in pixels")
	fs.IntVar(&flags.Window.Height, "height", flags.Window.Height, "window height in pixels")
	fs.BoolVar(&flags.Window.VSync, "vsync", flags.Window.VSync, "wait for vertical sync")
	fs.StringVar(&flags.ShaderDir, "shaders", flags.ShaderDir, "directory holding the shader sources")
	fs.IntVar(&flags.Lives, "lives", flags.Lives, "starting lives")
	float32Var(fs, &flags.Paddle.Speed, "paddle-speed", "paddle step per key press")
	float32Var(fs, &flags.Paddle.Min, "paddle-min", "leftmost paddle position")
	float32Var(fs, &flags.Paddle.Max, "paddle-max", "rightmost paddle position")
	fs.StringVar(&flags.Colors.Background, "background", flags.Colors.Background, "background colour")

	if err := fs.Parse(args); err != nil {
		return flags, err
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfig(*configPath)
		if err != nil {
			return loaded, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		if apply, ok := flagOverrides[f.Name]; ok {
			apply(&cfg, &flags)
		}
	})

	return cfg, cfg.Validate()
}

var flagOverrides = map[string]func(dst, src *Config){
	"title":        func(dst, src *Config) { dst.Window.Title = src.Window.Title },
	"width":        func(dst, src *Config) { dst.Window.Width = src.Window.Width },
	"height":       func(dst, src *Config) { dst.Window.Height = src.Window.Height },
	"vsync":        func(dst, src *Config) { dst.Window.VSync = src.Window.VSync },
	"shaders":      func(dst, src *Config) { dst.ShaderDir = src.ShaderDir },
	"lives":        func(dst, src *Config) { dst.Lives = src.Lives },
	"paddle-speed": func(dst, src *Config) { dst.Paddle.Speed = src.Paddle.Speed },
	"paddle-min":   func(dst, src *Config) { dst.Paddle.Min = src.Paddle.Min },
	"paddle-max":   func(dst, src *Config) { dst.Paddle.Max = src.Paddle.Max },
	"background":   func(dst, src *Config) { dst.Colors.Background = src.Colors.Background },
}

func float32Var(fs *flag.FlagSet, p *float32, name, usage string) {
	fs.Func(name, fmt.Sprintf("%s (default %g)", usage, *p), func(s string) error {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return err
		}
		*p = float32(f)
		return nil
	})
}

// Validate reports the first problem with the configuration.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Lives < 0:
		return fmt.Errorf("%w: lives %d", ErrInvalidConfig, c.Lives)
	case c.Paddle.Speed <= 0:
		return fmt.Errorf("%w: paddle speed %g", ErrInvalidConfig, c.Paddle.Speed)
	case c.Paddle.Min >= c.Paddle.Max:
		return fmt.Errorf("%w: paddle bounds [%g, %g]", ErrInvalidConfig, c.Paddle.Min, c.Paddle.Max)
	case c.Paddle.Min < -1 || c.Paddle.Max > 1:
		return fmt.Errorf("%w: paddle bounds [%g, %g] leave the screen", ErrInvalidConfig, c.Paddle.Min, c.Paddle.Max)
	}

	colors := []struct{ name, hex string }{
		{"background", c.Colors.Background},
		{"ball", c.Colors.Ball},
		{"paddle_left", c.Colors.PaddleLeft},
		{"paddle_right", c.Colors.PaddleRight},
	}
	for _, color := range colors {
		if _, err := colorful.Hex(color.hex); err != nil {
			return fmt.Errorf("%w: colour %s %q", ErrInvalidConfig, color.name, color.hex)
		}
	}
	return nil
}

// Settings converts the configuration to the Settings singleton. Colours
// that fail to parse become black; Validate catches them first.
func (c Config) Settings() Settings {
	return Settings{
		Title:        c.Window.Title,
		VersionMajor: VersionMajor,
		VersionMinor: VersionMinor,
		Width:        c.Window.Width,
		Height:       c.Window.Height,
		VSync:        c.Window.VSync,
		Background:   parseColor(c.Colors.Background),
		Ball:         parseColor(c.Colors.Ball),
		PaddleLeft:   parseColor(c.Colors.PaddleLeft),
		PaddleRight:  parseColor(c.Colors.PaddleRight),
	}
}

// Layout returns the default grid layout with the configured lives.
func (c Config) Layout() Layout {
	layout := DefaultLayout()
	layout.Lives = c.Lives
	return layout
}

func parseColor(hex string) mgl32.Vec3 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return mgl32.Vec3{}
	}
	return vec3(c)
}
