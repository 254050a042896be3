// Package pixelcontroller renders animated pixel content onto a
// virtual buffer and streams it to an LED matrix controller over
// serial.
package pixelcontroller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"
	"golang.org/x/sync/errgroup"

	"github.com/sdawans/pixelcontroller/effect"
	"github.com/sdawans/pixelcontroller/generator"
	"github.com/sdawans/pixelcontroller/internal/loudness"
	"github.com/sdawans/pixelcontroller/matrixserial"
	"github.com/sdawans/pixelcontroller/pixel"
)

// Daemon drives the configured generator once per frame and streams
// the resulting buffers to the matrix controller.
type Daemon struct {
	cfg    *Config
	logger *slog.Logger
}

// NewDaemon creates a new pixelcontroller daemon.
func NewDaemon(cfg *Config, logger *slog.Logger) (*Daemon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &Daemon{
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Run starts the daemon. It blocks until the given context is canceled.
func (d *Daemon) Run(ctx context.Context) error {
	return (&internalDaemon{Daemon: d}).Run(ctx)
}

// serialPort is the subset of serial.Port the daemon uses.
type serialPort interface {
	io.ReadWriteCloser
	SetReadTimeout(t time.Duration) error
}

type internalDaemon struct {
	*Daemon
	port serialPort
}

func (d *internalDaemon) Run(ctx context.Context) error {
	port, err := serial.Open(d.cfg.Device, &serial.Mode{
		BaudRate: d.cfg.Baud,
	})
	if err != nil {
		return errors.Wrap(err, "failed to open serial port")
	}
	defer port.Close()

	d.port = port

	gen, err := d.cfg.Generator.build(d.cfg.Matrix)
	if err != nil {
		return errors.Wrap(err, "failed to build generator")
	}
	defer gen.Close()

	gen.SetActive(true)
	d.logger.Info(
		"generator ready",
		"name", gen.Name().String(),
		"width", gen.Width(),
		"height", gen.Height())

	errg, ctx := errgroup.WithContext(ctx)

	var effects []effect.Effect
	if d.cfg.Audio != nil {
		meter := loudness.NewMeter(d.cfg.Audio.Bins)
		effects = append(effects, effect.NewVoluminize(meter))

		audio := *d.cfg.Audio
		errg.Go(func() error {
			return loudness.Run(ctx, loudness.Config{
				Backend:      audio.Backend,
				Device:       audio.Device,
				SampleRate:   audio.SampleRate,
				SampleSize:   audio.SampleSize,
				SmoothFactor: audio.Smooth,
			}, meter)
		})
	}

	errg.Go(func() error {
		<-ctx.Done()
		d.logger.Debug("closing serial port")
		if err := port.Close(); err != nil {
			return errors.Wrap(err, "failed to close serial port")
		}
		return ctx.Err()
	})

	packets := make(chan matrixserial.OutgoingPacket)
	errg.Go(func() error {
		return d.frameLoop(ctx, gen, effects, packets)
	})
	errg.Go(func() error {
		return d.readPackets(ctx, packets)
	})

	return errg.Wait()
}

func (d *internalDaemon) frameLoop(
	ctx context.Context,
	gen generator.Generator,
	effects []effect.Effect,
	packets <-chan matrixserial.OutgoingPacket,
) error {

	d.logger.Debug("waiting 100ms for the read loop to start...")
	time.Sleep(100 * time.Millisecond)

	d.logger.Debug("sending initialize packet")
	if !d.writePacket(ctx, matrixserial.InitializePacket{
		Width:  uint16(d.cfg.Matrix.Width),
		Height: uint16(d.cfg.Matrix.Height),
	}) {
		return errors.New("failed to initialize matrix")
	}

	speed := d.cfg.Generator.speed()

	frameTicker := time.NewTicker(time.Second / time.Duration(d.cfg.Rate))
	defer frameTicker.Stop()

	// nil until the controller acks the initialize packet; every ack
	// arms the next frame.
	var nextFrame <-chan time.Time

eventLoop:
	for {
		select {
		case <-ctx.Done():
			break eventLoop

		case p := <-packets:
			d.logger.Debug("handling packet", "type", p.Type())

			switch p := p.(type) {
			case matrixserial.AckPacket:
				d.logger.Debug(
					"received ack packet from controller",
					"acked_for", p.IncomingPacketType)
				nextFrame = frameTicker.C

			case matrixserial.ErrorPacket:
				d.logger.Warn(
					"received error packet from controller",
					"message", p.Message)
				return errors.New("controller reported error")

			case matrixserial.PanicPacket:
				d.logger.Error(
					"controller unrecoverably panicked",
					"message", p.Message)
				return errors.New("controller panicked")

			case matrixserial.LogPacket:
				d.logger.Info(
					"received log packet from controller",
					"message", p.Message)

			default:
				return fmt.Errorf("received unknown packet from controller: %s", p.Type())
			}

		case <-nextFrame:
			gen.Update(speed)

			buf := gen.Buffer()
			for _, e := range effects {
				buf = e.Apply(buf)
			}

			d.writePacket(ctx, matrixserial.FramePacket{
				Pix: pixel.Bytes(buf),
			})

			// Hold off further frames until the controller acks.
			nextFrame = nil
		}
	}

	return nil
}

func (d *internalDaemon) readPackets(ctx context.Context, dst chan<- matrixserial.OutgoingPacket) error {
	if err := d.port.SetReadTimeout(serial.NoTimeout); err != nil {
		return errors.Wrap(err, "failed to reset read timeout")
	}

	readCtx := matrixserial.ReadContext{
		Width:  uint16(d.cfg.Matrix.Width),
		Height: uint16(d.cfg.Matrix.Height),
	}

	for ctx.Err() == nil {
		p, err := matrixserial.ReadOutgoingPacket(d.port, readCtx)
		if err != nil {
			// A short read indicates a timeout. This is expected.
			// Ignore the error and try again.
			if errors.Is(err, io.EOF) {
				continue
			}
			return errors.Wrap(err, "failed to read packet")
		}

		d.logger.Debug(
			"received packet from controller",
			"type", p.Type())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case dst <- p:
			// ok
		}
	}

	return ctx.Err()
}

func (d *internalDaemon) writePacket(ctx context.Context, p matrixserial.IncomingPacket) bool {
	d.logger.Debug(
		"writing packet",
		"type", p.Type())

	if err := matrixserial.WriteIncomingPacket(d.port, p); err != nil {
		d.logger.Warn(
			"failed to write packet",
			"packet", p.Type(),
			"error", err)
		return false
	}

	return true
}
