package loudness

import (
	"context"

	"github.com/noriah/catnip"
	"github.com/noriah/catnip/dsp"
	"github.com/noriah/catnip/dsp/window"
	"github.com/pkg/errors"
)

// Config describes the audio capture session feeding a Meter.
type Config struct {
	// Backend is the catnip input backend, e.g. "pipewire" or "parec".
	Backend string
	// Device is the capture device. Empty means the backend default.
	Device       string
	SampleRate   float64
	SampleSize   int
	SmoothFactor float64
}

const defaultProcessRate = 60

// Run drives a catnip capture session, delivering bins to the meter
// until the context is canceled.
func Run(ctx context.Context, cfg Config, meter *Meter) error {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 44100
	}
	if cfg.SampleSize == 0 {
		cfg.SampleSize = 1024
	}
	if cfg.SmoothFactor == 0 {
		cfg.SmoothFactor = 0.65
	}

	catnipCfg := catnip.Config{
		Backend:      cfg.Backend,
		Device:       cfg.Device,
		SampleRate:   cfg.SampleRate,
		SampleSize:   cfg.SampleSize,
		ChannelCount: 1,
		ProcessRate:  defaultProcessRate,
		Output:       meter,
		Windower:     window.Lanczos(),
		Analyzer: dsp.NewAnalyzer(dsp.AnalyzerConfig{
			SampleRate: cfg.SampleRate,
			SampleSize: cfg.SampleSize,
			SquashLow:  true,
			BinMethod:  dsp.MaxSampleValue(),
		}),
		Smoother: dsp.NewSmoother(dsp.SmootherConfig{
			SampleRate:      cfg.SampleRate,
			SampleSize:      cfg.SampleSize,
			ChannelCount:    1,
			SmoothingFactor: cfg.SmoothFactor,
		}),
	}

	return errors.Wrap(catnip.Run(&catnipCfg, ctx), "audio session")
}
