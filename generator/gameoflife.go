package generator

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/sdawans/pixelcontroller/pixel"
)

// SeedMode selects how the Game of Life board is initially populated.
type SeedMode string

const (
	// RandomSeed fills the board with a 30%-density random pattern.
	RandomSeed SeedMode = "random"
	// GliderSeed starts the board with a single glider.
	GliderSeed SeedMode = "glider"
)

const defaultBoardSize = 8

// aliveColor is the gray level rendered for alive cells.
var aliveColor = pixel.Pack(180, 180, 180)

// gliderCells is the classic glider, relative to its bounding box:
//
//	.X.
//	..X
//	XXX
//
// It travels one cell down-right every four generations.
var gliderCells = [5][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}

// LifeConfig tunes the Game of Life generator. Zero values for board
// size and seed mode fall back to an 8x8 board with a random fill.
type LifeConfig struct {
	BoardWidth  int
	BoardHeight int
	Seed        SeedMode
	// ReseedOnStasis restarts a stuck board with a glider. The zero
	// value leaves a stuck board alone.
	ReseedOnStasis bool
	// Rand overrides the random source, for deterministic seeding.
	Rand *rand.Rand
}

// Life evolves a small toroidal Conway board and upsamples it onto the
// generator's buffer. The board wraps at all edges, and a board that
// stops changing is reseeded with a glider when configured to.
type Life struct {
	*Base

	boardW, boardH int
	cur, next      []bool
	reseed         bool
	rng            *rand.Rand
}

var _ Generator = (*Life)(nil)

// NewLife creates a Game of Life generator rendering onto a
// width x height buffer.
func NewLife(width, height int, cfg LifeConfig) (*Life, error) {
	base, err := NewBase(width, height, GameOfLife, QualityResize)
	if err != nil {
		return nil, err
	}

	if cfg.BoardWidth == 0 {
		cfg.BoardWidth = defaultBoardSize
	}
	if cfg.BoardHeight == 0 {
		cfg.BoardHeight = defaultBoardSize
	}
	// The glider needs room, and the nearest-index mapping cannot
	// upsample a board larger than the display.
	if cfg.BoardWidth < 4 || cfg.BoardHeight < 4 {
		return nil, errors.Errorf("gameoflife: board %dx%d too small", cfg.BoardWidth, cfg.BoardHeight)
	}
	if cfg.BoardWidth > width || cfg.BoardHeight > height {
		return nil, errors.Errorf("gameoflife: board %dx%d exceeds display %dx%d",
			cfg.BoardWidth, cfg.BoardHeight, width, height)
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g := &Life{
		Base:   base,
		boardW: cfg.BoardWidth,
		boardH: cfg.BoardHeight,
		cur:    make([]bool, cfg.BoardWidth*cfg.BoardHeight),
		next:   make([]bool, cfg.BoardWidth*cfg.BoardHeight),
		reseed: cfg.ReseedOnStasis,
		rng:    rng,
	}

	switch cfg.Seed {
	case GliderSeed:
		g.seedGlider(g.cur)
	case RandomSeed, "":
		g.seedRandom(g.cur)
	default:
		return nil, errors.Errorf("gameoflife: unknown seed mode %q", cfg.Seed)
	}
	copy(g.next, g.cur)

	return g, nil
}

// Update runs amount evolutions and renders the committed generation
// into the buffer.
func (g *Life) Update(amount int) {
	for i := 0; i < amount; i++ {
		g.step()
	}
	g.render()
}

// Shuffle re-seeds the board with a fresh random fill.
func (g *Life) Shuffle() {
	g.seedRandom(g.cur)
	copy(g.next, g.cur)
}

// step computes the next generation, reseeds on stasis, then commits.
// Between steps cur and next hold identical generations.
func (g *Life) step() {
	if len(g.cur) != len(g.next) {
		panic("gameoflife: board generations out of sync")
	}

	w, h := g.boardW, g.boardH
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.next[y*w+x] = willLive(g.cur[y*w+x], g.aliveNeighbors(x, y))
		}
	}

	if g.reseed && g.stuck() {
		g.seedGlider(g.next)
	}

	copy(g.cur, g.next)
}

// aliveNeighbors counts the alive cells among the 8 toroidally-wrapped
// neighbors of (x, y), self excluded.
func (g *Life) aliveNeighbors(x, y int) int {
	w, h := g.boardW, g.boardH
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			// Double modulus turns a negative index into the
			// wrapped positive one, e.g. -1 -> w-1.
			nx := ((x+dx)%w + w) % w
			ny := ((y+dy)%h + h) % h
			if g.cur[ny*w+nx] {
				count++
			}
		}
	}
	return count
}

// willLive applies Conway's rules: survival on 2 or 3 neighbors, birth
// on exactly 3.
func willLive(alive bool, neighbors int) bool {
	if alive {
		return neighbors == 2 || neighbors == 3
	}
	return neighbors == 3
}

// stuck reports whether the just-computed generation is dead or
// identical to the committed one.
func (g *Life) stuck() bool {
	count := 0
	for _, alive := range g.next {
		if alive {
			count++
		}
	}
	if count == 0 {
		return true
	}
	for i := range g.next {
		if g.next[i] != g.cur[i] {
			return false
		}
	}
	return true
}

func (g *Life) seedRandom(board []bool) {
	for i := range board {
		board[i] = g.rng.Float64() > 0.7
	}
}

// seedGlider clears the board and places the glider near its center,
// matching the original layout on the default 8x8 board.
func (g *Life) seedGlider(board []bool) {
	for i := range board {
		board[i] = false
	}
	ox, oy := g.boardW/2-2, g.boardH/2-2
	for _, c := range gliderCells {
		board[(oy+c[1])*g.boardW+(ox+c[0])] = true
	}
}

// render upsamples the committed generation onto the buffer using
// nearest-index mapping.
func (g *Life) render() {
	buf := g.Buffer()
	w, h := g.Width(), g.Height()
	for y := 0; y < h; y++ {
		row := pixel.Nearest(y, g.boardH, h) * g.boardW
		for x := 0; x < w; x++ {
			var c uint32
			if g.cur[row+pixel.Nearest(x, g.boardW, w)] {
				c = aliveColor
			}
			buf[y*w+x] = c
		}
	}
}
