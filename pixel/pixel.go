// Package pixel defines the packed-color buffer that generators and
// effects exchange.
package pixel

// Buffer is a fixed-length, row-major sequence of packed 0x00RRGGBB
// values, one per display cell. The length never changes for the
// lifetime of the owning generator.
type Buffer []uint32

// New creates a buffer of n pixels, initialized to black.
func New(n int) Buffer {
	return make(Buffer, n)
}

// Pack combines three 8-bit channels into a packed color value.
func Pack(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// R returns the red channel of a packed color value.
func R(c uint32) uint8 { return uint8(c >> 16) }

// G returns the green channel of a packed color value.
func G(c uint32) uint8 { return uint8(c >> 8) }

// B returns the blue channel of a packed color value.
func B(c uint32) uint8 { return uint8(c) }

// Clone returns an independent copy of the buffer.
func Clone(buf Buffer) Buffer {
	out := make(Buffer, len(buf))
	copy(out, buf)
	return out
}

// Bytes expands the buffer into the 3-byte-per-pixel RGB stream the
// wire protocol carries.
func Bytes(buf Buffer) []uint8 {
	out := make([]uint8, 0, 3*len(buf))
	for _, c := range buf {
		out = append(out, R(c), G(c), B(c))
	}
	return out
}

// Nearest maps the display coordinate x onto a source grid of size src
// using nearest-index sampling. The mapping only downscales: when the
// source is at least as large as the display, x is returned unchanged,
// so callers must not pass a source larger than the display.
func Nearest(x, src, dst int) int {
	if src < dst {
		return x * src / dst
	}
	return x
}
