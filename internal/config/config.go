package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zeusync/tileset/internal/core/catalog"
	"github.com/zeusync/tileset/internal/core/observability/log"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the tsxinfo configuration file.
type Config struct {
	Log      LogConfig     `json:"log" yaml:"log"`
	Workers  int           `json:"workers,omitempty" yaml:"workers,omitempty"`
	Strict   bool          `json:"strict" yaml:"strict"`
	Tilesets []catalog.Ref `json:"tilesets,omitempty" yaml:"tilesets,omitempty"`
}

type LogConfig struct {
	Level    string `json:"level" yaml:"level"`
	Encoding string `json:"encoding" yaml:"encoding"`
}

func Default() Config {
	return Config{
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
		Workers: 4,
	}
}

// Parse decodes YAML from r over the defaults. Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads the file at path. Relative tileset sources are resolved
// against the directory of the file.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i, ref := range c.Tilesets {
		if !filepath.IsAbs(ref.Source) {
			c.Tilesets[i].Source = filepath.Join(dir, ref.Source)
		}
	}
	return c, nil
}

func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log.encoding must be json or console, got %q", ErrInvalidConfig, c.Log.Encoding)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	for i, ref := range c.Tilesets {
		if ref.Source == "" {
			return fmt.Errorf("%w: tilesets[%d]: source is required", ErrInvalidConfig, i)
		}
		if ref.FirstGID < 1 {
			return fmt.Errorf("%w: tilesets[%d]: firstgid must be at least 1", ErrInvalidConfig, i)
		}
	}
	return nil
}

// LoggerOptions converts the log section for log.New.
func (c Config) LoggerOptions() log.Options {
	level, _ := log.ParseLevel(c.Log.Level)
	return log.Options{Level: level, Encoding: c.Log.Encoding}
}
