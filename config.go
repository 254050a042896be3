package pixelcontroller

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/sdawans/pixelcontroller/generator"
)

// Config is the configuration for the pixelcontroller daemon.
type Config struct {
	// Device is the path to the serial device for the matrix
	// controller. This is usually /dev/ttyUSB0 or /dev/ttyACM0.
	Device string `toml:"device"`
	// Baud is the baud rate for the serial connection.
	Baud int `toml:"baud"`
	// Rate is the frame rate in frames per second.
	Rate int `toml:"rate"`
	// Matrix is the output matrix geometry.
	Matrix MatrixConfig `toml:"matrix"`
	// Generator selects and tunes the frame generator.
	Generator GeneratorConfig `toml:"generator"`
	// Audio enables the loudness effect when set.
	Audio *AudioConfig `toml:"audio,omitempty"`
}

// MatrixConfig is the output matrix geometry. Generators render at
// this resolution.
type MatrixConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// GeneratorKind names a configurable generator.
type GeneratorKind string

const (
	// GameOfLifeGenerator runs the cellular automaton.
	GameOfLifeGenerator GeneratorKind = "gameoflife"
)

// GeneratorConfig selects and tunes the generator producing frames.
type GeneratorConfig struct {
	Kind GeneratorKind `toml:"kind"`
	// Speed is the number of animation steps per frame. 0 means 1.
	Speed int `toml:"speed,omitempty"`
	// BoardWidth and BoardHeight size the automaton board. 0 keeps
	// the generator default.
	BoardWidth  int `toml:"board_width,omitempty"`
	BoardHeight int `toml:"board_height,omitempty"`
	// Seed selects the initial board pattern.
	Seed generator.SeedMode `toml:"seed,omitempty"`
	// ReseedOnStasis restarts a stuck board with a glider. Unset
	// means enabled.
	ReseedOnStasis *bool `toml:"reseed_on_stasis,omitempty"`
}

// AudioConfig is the capture configuration for the loudness effect.
type AudioConfig struct {
	// Backend is the catnip input backend, e.g. "pipewire".
	Backend string `toml:"backend"`
	// Device is the capture device. Empty means the backend default.
	Device     string  `toml:"device,omitempty"`
	SampleRate float64 `toml:"sample_rate,omitempty"`
	SampleSize int     `toml:"sample_size,omitempty"`
	// Bins is the number of frequency bins folded into the loudness
	// reading.
	Bins   int     `toml:"bins,omitempty"`
	Smooth float64 `toml:"smooth,omitempty"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Device == "" {
		return errors.New("no serial device configured")
	}
	if c.Baud <= 0 {
		return fmt.Errorf("invalid baud rate %d", c.Baud)
	}
	if c.Rate <= 0 {
		return fmt.Errorf("invalid frame rate %d", c.Rate)
	}
	if c.Matrix.Width <= 0 || c.Matrix.Height <= 0 {
		return fmt.Errorf("invalid matrix resolution %dx%d", c.Matrix.Width, c.Matrix.Height)
	}
	if c.Generator.Speed < 0 {
		return fmt.Errorf("invalid generator speed %d", c.Generator.Speed)
	}

	switch c.Generator.Kind {
	case GameOfLifeGenerator:
	default:
		return fmt.Errorf("unknown generator kind %q", c.Generator.Kind)
	}

	switch c.Generator.Seed {
	case "", generator.RandomSeed, generator.GliderSeed:
	default:
		return fmt.Errorf("unknown seed mode %q", c.Generator.Seed)
	}

	return nil
}

// speed returns the animation steps per frame.
func (c GeneratorConfig) speed() int {
	if c.Speed == 0 {
		return 1
	}
	return c.Speed
}

// reseedOnStasis resolves the reseed flag; unset means enabled.
func (c GeneratorConfig) reseedOnStasis() bool {
	if c.ReseedOnStasis == nil {
		return true
	}
	return *c.ReseedOnStasis
}

// build constructs the configured generator at the matrix resolution.
func (c GeneratorConfig) build(m MatrixConfig) (generator.Generator, error) {
	switch c.Kind {
	case GameOfLifeGenerator:
		return generator.NewLife(m.Width, m.Height, generator.LifeConfig{
			BoardWidth:     c.BoardWidth,
			BoardHeight:    c.BoardHeight,
			Seed:           c.Seed,
			ReseedOnStasis: c.reseedOnStasis(),
		})
	default:
		return nil, fmt.Errorf("unknown generator kind %q", c.Kind)
	}
}

// ParseConfig parses a configuration from a reader.
func ParseConfig(r io.Reader) (*Config, error) {
	var config Config
	if err := toml.NewDecoder(r).Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
