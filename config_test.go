package pixelcontroller

import (
	"strings"
	"testing"

	"github.com/sdawans/pixelcontroller/generator"
)

const sampleConfig = `
device = "/dev/ttyACM0"
baud = 115200
rate = 30

[matrix]
width = 64
height = 32

[generator]
kind = "gameoflife"
speed = 2
board_width = 8
board_height = 8
seed = "glider"
reseed_on_stasis = false

[audio]
backend = "pipewire"
sample_rate = 44100.0
sample_size = 1024
bins = 32
smooth = 0.65
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Device != "/dev/ttyACM0" || cfg.Baud != 115200 || cfg.Rate != 30 {
		t.Errorf("serial settings = %q/%d/%d", cfg.Device, cfg.Baud, cfg.Rate)
	}
	if cfg.Matrix.Width != 64 || cfg.Matrix.Height != 32 {
		t.Errorf("matrix = %dx%d, want 64x32", cfg.Matrix.Width, cfg.Matrix.Height)
	}
	if cfg.Generator.Kind != GameOfLifeGenerator || cfg.Generator.Speed != 2 {
		t.Errorf("generator = %q speed %d", cfg.Generator.Kind, cfg.Generator.Speed)
	}
	if cfg.Generator.Seed != generator.GliderSeed {
		t.Errorf("seed = %q, want glider", cfg.Generator.Seed)
	}
	if cfg.Generator.ReseedOnStasis == nil || *cfg.Generator.ReseedOnStasis {
		t.Error("reseed_on_stasis = false not parsed")
	}
	if cfg.Audio == nil || cfg.Audio.Backend != "pipewire" {
		t.Error("audio section not parsed")
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Device: "/dev/ttyUSB0",
			Baud:   115200,
			Rate:   30,
			Matrix: MatrixConfig{Width: 64, Height: 32},
			Generator: GeneratorConfig{
				Kind: GameOfLifeGenerator,
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing device", func(c *Config) { c.Device = "" }},
		{"zero baud", func(c *Config) { c.Baud = 0 }},
		{"zero rate", func(c *Config) { c.Rate = 0 }},
		{"zero matrix width", func(c *Config) { c.Matrix.Width = 0 }},
		{"negative matrix height", func(c *Config) { c.Matrix.Height = -1 }},
		{"negative speed", func(c *Config) { c.Generator.Speed = -1 }},
		{"unknown generator", func(c *Config) { c.Generator.Kind = "plasma" }},
		{"unknown seed", func(c *Config) { c.Generator.Seed = "diamond" }},
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("baseline config invalid: %v", err)
	}

	for _, tt := range tests {
		cfg := valid()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate accepted the config", tt.name)
		}
	}
}

func TestGeneratorBuild(t *testing.T) {
	cfg := GeneratorConfig{Kind: GameOfLifeGenerator, Seed: generator.GliderSeed}

	gen, err := cfg.build(MatrixConfig{Width: 64, Height: 32})
	if err != nil {
		t.Fatal(err)
	}
	defer gen.Close()

	if gen.Name() != generator.GameOfLife {
		t.Errorf("name = %v, want %v", gen.Name(), generator.GameOfLife)
	}
	if gen.Width() != 64 || gen.Height() != 32 {
		t.Errorf("resolution = %dx%d, want 64x32", gen.Width(), gen.Height())
	}
	if len(gen.Buffer()) != 64*32 {
		t.Errorf("buffer length = %d, want %d", len(gen.Buffer()), 64*32)
	}
}

func TestGeneratorBuildUnknownKind(t *testing.T) {
	cfg := GeneratorConfig{Kind: "fire"}
	if _, err := cfg.build(MatrixConfig{Width: 8, Height: 8}); err == nil {
		t.Fatal("build accepted an unknown kind")
	}
}

func TestReseedOnStasisDefault(t *testing.T) {
	off := false
	on := true

	tests := []struct {
		name string
		flag *bool
		want bool
	}{
		{"unset means enabled", nil, true},
		{"explicitly off", &off, false},
		{"explicitly on", &on, true},
	}

	for _, tt := range tests {
		cfg := GeneratorConfig{Kind: GameOfLifeGenerator, ReseedOnStasis: tt.flag}
		if got := cfg.reseedOnStasis(); got != tt.want {
			t.Errorf("%s: reseedOnStasis = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGeneratorSpeedDefault(t *testing.T) {
	if got := (GeneratorConfig{}).speed(); got != 1 {
		t.Errorf("default speed = %d, want 1", got)
	}
	if got := (GeneratorConfig{Speed: 5}).speed(); got != 5 {
		t.Errorf("speed = %d, want 5", got)
	}
}
