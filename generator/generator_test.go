package generator

import "testing"

func TestNewBaseAllocatesBuffer(t *testing.T) {
	b, err := NewBase(4, 3, GameOfLife, QualityResize)
	if err != nil {
		t.Fatal(err)
	}

	if b.Width() != 4 || b.Height() != 3 {
		t.Errorf("resolution = %dx%d, want 4x3", b.Width(), b.Height())
	}
	if b.Name() != GameOfLife {
		t.Errorf("name = %v, want %v", b.Name(), GameOfLife)
	}
	if b.Resize() != QualityResize {
		t.Errorf("resize = %v, want %v", b.Resize(), QualityResize)
	}
	if b.Active() {
		t.Error("new generator is active")
	}

	buf := b.Buffer()
	if len(buf) != 12 {
		t.Fatalf("buffer length = %d, want 12", len(buf))
	}
	for i, c := range buf {
		if c != 0 {
			t.Fatalf("pixel %d = %#x, want black", i, c)
		}
	}
}

func TestNewBaseRejectsResolution(t *testing.T) {
	tests := []struct{ w, h int }{
		{0, 8},
		{8, 0},
		{-1, 8},
		{8, -3},
		{0, 0},
	}

	for _, tt := range tests {
		if _, err := NewBase(tt.w, tt.h, GameOfLife, PixelResize); err == nil {
			t.Errorf("NewBase(%d, %d) accepted a non-positive resolution", tt.w, tt.h)
		}
	}
}

func TestSetActiveHooks(t *testing.T) {
	b, err := NewBase(2, 2, Passthru, PixelResize)
	if err != nil {
		t.Fatal(err)
	}

	var activated, deactivated int
	b.SetHooks(Hooks{
		NowActive:   func() { activated++ },
		NowInactive: func() { deactivated++ },
	})

	b.SetActive(false) // no transition
	b.SetActive(true)
	b.SetActive(true) // no transition
	b.SetActive(false)
	b.SetActive(false) // no transition

	if activated != 1 {
		t.Errorf("NowActive fired %d times, want 1", activated)
	}
	if deactivated != 1 {
		t.Errorf("NowInactive fired %d times, want 1", deactivated)
	}
}

func TestSetActiveWithoutHooks(t *testing.T) {
	b, err := NewBase(2, 2, Passthru, PixelResize)
	if err != nil {
		t.Fatal(err)
	}

	b.SetActive(true)
	if !b.Active() {
		t.Error("generator not active after SetActive(true)")
	}
	b.SetActive(false)
	if b.Active() {
		t.Error("generator active after SetActive(false)")
	}
}

func TestBaseDefaults(t *testing.T) {
	b, err := NewBase(2, 2, Passthru, PixelResize)
	if err != nil {
		t.Fatal(err)
	}

	b.Shuffle() // default no-op

	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestNameStrings(t *testing.T) {
	if GameOfLife.String() != "gameoflife" {
		t.Errorf("String = %q", GameOfLife.String())
	}
	if GameOfLife.DisplayName() != "Game Of Life" {
		t.Errorf("DisplayName = %q", GameOfLife.DisplayName())
	}
	if Name(42).String() != "Name(42)" {
		t.Errorf("unknown String = %q", Name(42).String())
	}
	if Name(42).DisplayName() != "Name(42)" {
		t.Errorf("unknown DisplayName = %q", Name(42).DisplayName())
	}
}
