package effect

import (
	"testing"

	"github.com/sdawans/pixelcontroller/pixel"
)

func TestApplyFullLevelIsIdentity(t *testing.T) {
	in := pixel.Buffer{0x000000, 0xFF0000, 0x00FF00, 0x0000FF, 0xFFFFFF, 0x123456}
	v := NewVoluminize(LoudnessFunc(func() float64 { return 1.0 }))

	out := v.Apply(in)
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("pixel %d = %#x, want %#x", i, out[i], in[i])
		}
	}
}

func TestApplyZeroLevelBlanks(t *testing.T) {
	in := pixel.Buffer{0xFFFFFF, 0x123456, 0x0000FF}
	v := NewVoluminize(LoudnessFunc(func() float64 { return 0.0 }))

	for i, c := range v.Apply(in) {
		if c != 0 {
			t.Errorf("pixel %d = %#x, want black", i, c)
		}
	}
}

func TestApplyHalfLevelTruncates(t *testing.T) {
	tests := []struct {
		in   uint32
		want uint32
	}{
		{0xFF0000, 0x7F0000},
		{0x00FF00, 0x007F00},
		{0x0000FF, 0x00007F},
		{0xFFFFFF, 0x7F7F7F},
		{0x010101, 0x000000}, // 0.5 truncates toward zero
	}

	v := NewVoluminize(LoudnessFunc(func() float64 { return 0.5 }))
	for _, tt := range tests {
		out := v.Apply(pixel.Buffer{tt.in})
		if out[0] != tt.want {
			t.Errorf("Apply(%#x) = %#x, want %#x", tt.in, out[0], tt.want)
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	in := pixel.Buffer{0xFF0000, 0x00FF00}
	v := NewVoluminize(LoudnessFunc(func() float64 { return 0.25 }))

	out := v.Apply(in)
	if in[0] != 0xFF0000 || in[1] != 0x00FF00 {
		t.Fatal("input buffer mutated")
	}
	if &out[0] == &in[0] {
		t.Fatal("output buffer aliases the input")
	}
}

func TestApplyReadsLoudnessOnce(t *testing.T) {
	var reads int
	v := NewVoluminize(LoudnessFunc(func() float64 {
		reads++
		return 0.75
	}))

	v.Apply(make(pixel.Buffer, 64))
	if reads != 1 {
		t.Fatalf("loudness read %d times for one frame, want 1", reads)
	}
}

func TestApplyNilBufferPanics(t *testing.T) {
	v := NewVoluminize(LoudnessFunc(func() float64 { return 1.0 }))

	defer func() {
		if recover() == nil {
			t.Fatal("Apply(nil) did not panic")
		}
	}()
	v.Apply(nil)
}

func TestNewVoluminizeNilSourcePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewVoluminize(nil) did not panic")
		}
	}()
	NewVoluminize(nil)
}
