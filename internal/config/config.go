package config

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/starfield/internal/starfield"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth     = 1280
	DefaultHeight    = 720
	DefaultFrameRate = 60
	DefaultCols      = 80
	DefaultRows      = 24
	DefaultMode      = "pointer"
	DefaultBackend   = "raylib"
	DefaultSSHHost   = "::"
	DefaultSSHPort   = "2222"
)

type Config struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Population int        `yaml:"population"`
	Mode       string     `yaml:"mode"`
	BaseSpeed  float64    `yaml:"base_speed"`
	BaseSize   float64    `yaml:"base_size"`
	FrameRate  int        `yaml:"frame_rate"`
	Seed       int64      `yaml:"seed"`
	Backend    string     `yaml:"backend"`
	Terminal   TermConfig `yaml:"terminal"`
	SSH        SSHConfig  `yaml:"ssh"`
}

// TermConfig sizes the braille canvas, in character cells.
type TermConfig struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

type SSHConfig struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	HostKey string `yaml:"host_key"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Population: starfield.DefaultPopulation,
		Mode:       DefaultMode,
		BaseSpeed:  starfield.DefaultSpeedFactor,
		BaseSize:   starfield.DefaultSizeFactor,
		FrameRate:  DefaultFrameRate,
		Backend:    DefaultBackend,
		Terminal: TermConfig{
			Cols: DefaultCols,
			Rows: DefaultRows,
		},
		SSH: SSHConfig{
			Host: DefaultSSHHost,
			Port: DefaultSSHPort,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("canvas size must not be negative, got %dx%d", c.Width, c.Height)
	}
	if c.Population < 0 || c.Population > starfield.MaxPopulation {
		return fmt.Errorf("population must be in [0, %d], got %d", starfield.MaxPopulation, c.Population)
	}
	if c.BaseSpeed < 1 || c.BaseSize < 1 {
		return fmt.Errorf("base rates must be at least 1, got speed=%g size=%g", c.BaseSpeed, c.BaseSize)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %d", c.FrameRate)
	}
	if c.Terminal.Cols <= 0 || c.Terminal.Rows <= 0 {
		return fmt.Errorf("terminal size must be positive, got %dx%d", c.Terminal.Cols, c.Terminal.Rows)
	}
	if _, err := c.InputMode(); err != nil {
		return err
	}
	switch c.Backend {
	case "raylib", "ebiten":
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}

// ValidateWindow checks what a desktop window additionally needs: a
// positive size. Headless runs accept a degenerate canvas.
func (c *Config) ValidateWindow() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	return nil
}

func (c *Config) Bounds() starfield.Bounds {
	return starfield.Bounds{Width: float64(c.Width), Height: float64(c.Height)}
}

func (c *Config) BaseRates() starfield.Rates {
	return starfield.Rates{Speed: c.BaseSpeed, Size: c.BaseSize}
}

func (c *Config) InputMode() (starfield.Mode, error) {
	return starfield.ParseMode(c.Mode)
}

// NewSource returns a random source seeded from Seed, or from the clock when
// Seed is zero.
func (c *Config) NewSource() starfield.Source {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewField builds a field inside b from the configured population and rates,
// along with the policy for the configured input mode.
func (c *Config) NewField(b starfield.Bounds) (*starfield.Field, starfield.Policy, error) {
	mode, err := c.InputMode()
	if err != nil {
		return nil, nil, err
	}
	p, err := starfield.NewPolicy(mode, c.BaseRates())
	if err != nil {
		return nil, nil, err
	}
	f := starfield.New(c.Population, b,
		starfield.WithSource(c.NewSource()),
		starfield.WithRates(c.BaseRates()),
	)
	return f, p, nil
}
