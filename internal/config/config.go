package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/plotanim/internal/frame"
	"github.com/san-kum/plotanim/internal/plot"
	"github.com/san-kum/plotanim/internal/terminal"
)

const (
	DefaultFPS      = 30
	DefaultPeriodMs = 5000
	DefaultDensity  = 3
	DefaultCaption  = "Press Control+C to exit."
	DefaultLogLevel = "info"
	// columns and rows of the terminal not given to the chart
	DefaultMarginCols = 9
	DefaultMarginRows = 5
	maxFPS            = 240
)

var (
	ErrInvalidFPS     = errors.New("config: fps must be between 1 and 240")
	ErrInvalidPeriod  = errors.New("config: period_ms must be positive")
	ErrInvalidDensity = errors.New("config: density must be positive")
	ErrInvalidMargin  = errors.New("config: margin must not be negative")
)

type Config struct {
	FPS       int           `yaml:"fps"`
	PeriodMs  int64         `yaml:"period_ms"`
	Density   int           `yaml:"density"`
	Engine    string        `yaml:"engine"`
	Theme     string        `yaml:"theme"`
	Aggregate string        `yaml:"aggregate"`
	Caption   string        `yaml:"caption"`
	Pin       string        `yaml:"pin,omitempty"`
	Functions []string      `yaml:"functions,omitempty"`
	Fallback  terminal.Dims `yaml:"fallback"`
	Margin    terminal.Dims `yaml:"margin"`
	LogLevel  string        `yaml:"log_level"`
	LogFile   string        `yaml:"log_file,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		FPS:       DefaultFPS,
		PeriodMs:  DefaultPeriodMs,
		Density:   DefaultDensity,
		Engine:    plot.EngineUnicode,
		Theme:     frame.ThemePlain.Name,
		Aggregate: plot.Average.String(),
		Caption:   DefaultCaption,
		Fallback:  terminal.Fallback,
		Margin:    terminal.Dims{Cols: DefaultMarginCols, Rows: DefaultMarginRows},
		LogLevel:  DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver decodes the file at path on top of base. Keys missing from the
// file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges and that every named engine, theme and aggregate
// exists.
func (c *Config) Validate() error {
	if c.FPS < 1 || c.FPS > maxFPS {
		return fmt.Errorf("%w: got %d", ErrInvalidFPS, c.FPS)
	}
	if c.PeriodMs <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPeriod, c.PeriodMs)
	}
	if c.Density <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDensity, c.Density)
	}
	if c.Margin.Cols < 0 || c.Margin.Rows < 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidMargin, c.Margin.Cols, c.Margin.Rows)
	}
	if _, err := plot.New(c.Engine); err != nil {
		return err
	}
	if _, err := frame.GetTheme(c.Theme); err != nil {
		return err
	}
	if _, err := plot.ParseAggregate(c.Aggregate); err != nil {
		return err
	}
	return nil
}

// ApplyPreset copies the non-zero fields of p over c.
func (c *Config) ApplyPreset(p *Config) {
	if p.FPS != 0 {
		c.FPS = p.FPS
	}
	if p.PeriodMs != 0 {
		c.PeriodMs = p.PeriodMs
	}
	if p.Density != 0 {
		c.Density = p.Density
	}
	if p.Engine != "" {
		c.Engine = p.Engine
	}
	if p.Theme != "" {
		c.Theme = p.Theme
	}
	if p.Aggregate != "" {
		c.Aggregate = p.Aggregate
	}
	if p.Caption != "" {
		c.Caption = p.Caption
	}
	if p.Pin != "" {
		c.Pin = p.Pin
	}
	if len(p.Functions) > 0 {
		c.Functions = append([]string(nil), p.Functions...)
	}
}
