package effect

import "github.com/sdawans/pixelcontroller/pixel"

// Voluminize scales every pixel by the current loudness, dimming the
// frame to silence and restoring it at full volume.
type Voluminize struct {
	src LoudnessSource
}

var _ Effect = (*Voluminize)(nil)

// NewVoluminize creates the loudness transform. The source is a
// required dependency.
func NewVoluminize(src LoudnessSource) *Voluminize {
	if src == nil {
		panic("effect: nil loudness source")
	}
	return &Voluminize{src: src}
}

// Apply returns a newly allocated buffer with every channel multiplied
// by the loudness, truncated toward zero. The loudness is read once so
// the whole frame scales coherently.
func (v *Voluminize) Apply(buf pixel.Buffer) pixel.Buffer {
	if buf == nil {
		panic("effect: nil buffer")
	}

	level := v.src.Level()
	out := pixel.New(len(buf))
	for i, c := range buf {
		r := uint8(level * float64(pixel.R(c)))
		g := uint8(level * float64(pixel.G(c)))
		b := uint8(level * float64(pixel.B(c)))
		out[i] = pixel.Pack(r, g, b)
	}
	return out
}
