package motograph

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/lumberjack"
	"github.com/pkg/errors"
)

// Config is the TOML configuration accepted by the command line tool.
//
//	[render]
//	width = 1024
//	height = 1024
//	edges = true
//	nodes = true
//	labels = false
//	background = "#ffffff"
//	node_shape = "circle"
//
//	[log]
//	file = "motograph.log"
//	level = "info"
//	max_log_size = 10
//	max_log_age = 7
//
//	[run]
//	workers = 4
//	max_rounds = 0
type Config struct {
	Render RenderConfig `toml:"render"`
	Log    LogConfig    `toml:"log"`
	Run    RunConfig    `toml:"run"`
}

// RenderConfig holds the preview options.
type RenderConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Edges      bool   `toml:"edges"`
	Nodes      bool   `toml:"nodes"`
	Labels     bool   `toml:"labels"`
	Background string `toml:"background"`
	NodeShape  string `toml:"node_shape"`
}

// LogConfig describes where diagnostics are written.
// An empty File sends them to the console writer.
type LogConfig struct {
	File    string `toml:"file"`
	Level   string `toml:"level"`
	MaxSize int    `toml:"max_log_size"` // megabytes
	MaxAge  int    `toml:"max_log_age"`  // days
}

// RunConfig holds the batch and propagation limits.
type RunConfig struct {
	Workers   int `toml:"workers"`
	MaxRounds int `toml:"max_rounds"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{
			Width:      1024,
			Height:     1024,
			Edges:      true,
			Nodes:      true,
			Background: "#ffffff",
			NodeShape:  string(Circle),
		},
		Log: LogConfig{
			Level:   "warn",
			MaxSize: 10,
			MaxAge:  7,
		},
	}
}

// LoadConfig decodes the TOML file at path over the defaults.
// Unknown keys are reported as an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(err, "could not decode TOML config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.Errorf("unknown configuration keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Render.Width < 0 || c.Render.Height < 0 {
		return errors.Errorf("invalid preview size %dx%d", c.Render.Width, c.Render.Height)
	}
	switch ShapeType(c.Render.NodeShape) {
	case Circle, Square:
	default:
		return errors.Errorf("unknown node shape %q", c.Render.NodeShape)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Run.MaxRounds < 0 {
		return errors.Errorf("negative max_rounds %d", c.Run.MaxRounds)
	}
	return nil
}

// Processor builds a processor from the render and run sections.
func (c Config) Processor() *Processor {
	return &Processor{
		Background: c.Render.Background,
		NodeShape:  ShapeType(c.Render.NodeShape),
		Width:      c.Render.Width,
		Height:     c.Render.Height,
		MaxRounds:  c.Run.MaxRounds,
		Edges:      c.Render.Edges,
		Nodes:      c.Render.Nodes,
		Labels:     c.Render.Labels,
	}
}

// NewLogger creates a text logger at the configured level. When File is set the
// output goes to a rotating log file and the returned closer releases it,
// otherwise console is used and the closer is a no-op.
func (c LogConfig) NewLogger(console io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, nil, err
	}
	var (
		out    io.Writer = console
		closer io.Closer = nopCloser{}
	)
	if c.File != "" {
		l := &lumberjack.Logger{
			Filename: c.File,
			MaxSize:  c.MaxSize,
			MaxAge:   c.MaxAge,
		}
		out, closer = l, l
	}
	h := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(h), closer, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelWarn, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
