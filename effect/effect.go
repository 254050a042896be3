// Package effect contains buffer transforms applied between generation
// and output.
package effect

import "github.com/sdawans/pixelcontroller/pixel"

// Effect transforms a pixel buffer into a new buffer of the same
// length. Implementations never mutate their input.
type Effect interface {
	Apply(buf pixel.Buffer) pixel.Buffer
}

// LoudnessSource provides the current normalized audio loudness.
// Implementations must tolerate one read per frame.
type LoudnessSource interface {
	// Level returns the current loudness in [0, 1].
	Level() float64
}

// LoudnessFunc adapts a plain function to a LoudnessSource.
type LoudnessFunc func() float64

func (f LoudnessFunc) Level() float64 { return f() }
