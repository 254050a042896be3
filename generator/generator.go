// Package generator contains the pixel generators. A generator owns a
// pixel buffer sized to its configured resolution and rewrites it in
// place once per frame; the compositor resamples that buffer onto the
// physical matrix.
package generator

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/sdawans/pixelcontroller/pixel"
)

// Name identifies a generator. The numeric values are stable; remote
// surfaces address generators by them.
type Name uint8

const (
	// Passthru forwards an externally supplied buffer unmodified.
	Passthru Name = iota
	// GameOfLife is the cellular automaton generator.
	GameOfLife
)

func (n Name) String() string {
	switch n {
	case Passthru:
		return "passthru"
	case GameOfLife:
		return "gameoflife"
	default:
		return fmt.Sprintf("Name(%d)", uint8(n))
	}
}

// displayNames holds the human-facing labels, kept outside the enum so
// the identity values stay plain tags.
var displayNames = map[Name]string{
	Passthru:   "Passthru",
	GameOfLife: "Game Of Life",
}

// DisplayName returns the label shown on control surfaces.
func (n Name) DisplayName() string {
	if s, ok := displayNames[n]; ok {
		return s
	}
	return n.String()
}

// ResizeStrategy declares how a generator's buffer should be resampled
// to the output resolution. The resampler itself lives outside this
// package.
type ResizeStrategy uint8

const (
	// PixelResize keeps hard pixel edges when resampling.
	PixelResize ResizeStrategy = iota
	// QualityResize lets the resampler smooth the output.
	QualityResize
)

func (r ResizeStrategy) String() string {
	switch r {
	case PixelResize:
		return "pixel"
	case QualityResize:
		return "quality"
	default:
		return fmt.Sprintf("ResizeStrategy(%d)", uint8(r))
	}
}

// Generator is the per-frame contract every visual source satisfies.
type Generator interface {
	// Update advances the animation by amount logical steps and
	// rewrites the buffer. Update(0) is a render-only call.
	Update(amount int)
	// Shuffle randomizes the generator's state where supported.
	Shuffle()
	// Close releases external resources. Safe to call repeatedly.
	Close() error

	Name() Name
	Resize() ResizeStrategy
	Width() int
	Height() int
	Buffer() pixel.Buffer
	Active() bool
	SetActive(active bool)
}

// Hooks are optional callbacks fired when a generator's active flag
// transitions. Either field may be nil.
type Hooks struct {
	NowActive   func()
	NowInactive func()
}

// Base carries the state shared by all generators: identity, resize
// tag, resolution, the owned buffer, and the active flag. Concrete
// generators embed it and provide Update.
type Base struct {
	name   Name
	resize ResizeStrategy
	width  int
	height int
	buffer pixel.Buffer
	active bool
	hooks  Hooks
}

// NewBase allocates the shared generator state with a zero-filled
// buffer of width*height pixels.
func NewBase(width, height int, name Name, resize ResizeStrategy) (*Base, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("generator %s: non-positive resolution %dx%d", name, width, height)
	}
	return &Base{
		name:   name,
		resize: resize,
		width:  width,
		height: height,
		buffer: pixel.New(width * height),
	}, nil
}

func (b *Base) Name() Name             { return b.name }
func (b *Base) Resize() ResizeStrategy { return b.resize }
func (b *Base) Width() int             { return b.width }
func (b *Base) Height() int            { return b.height }
func (b *Base) Buffer() pixel.Buffer   { return b.buffer }
func (b *Base) Active() bool           { return b.active }

// SetActive transitions the active flag, firing the matching hook only
// on an actual transition.
func (b *Base) SetActive(active bool) {
	switch {
	case active && !b.active:
		if b.hooks.NowActive != nil {
			b.hooks.NowActive()
		}
	case !active && b.active:
		if b.hooks.NowInactive != nil {
			b.hooks.NowInactive()
		}
	}
	b.active = active
}

// SetHooks installs the activation callbacks.
func (b *Base) SetHooks(h Hooks) { b.hooks = h }

// Shuffle is the default randomization hook; generators that support
// re-seeding override it.
func (b *Base) Shuffle() {}

// Close is the default resource hook.
func (b *Base) Close() error { return nil }
