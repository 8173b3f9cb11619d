package chip8

import "strings"

// Frame is the display buffer, 32 rows of 64 cells valued 0 or 1.
type Frame [DisplayHeight][DisplayWidth]byte

// Pixel returns whether the cell at column x and row y is set.
// Coordinates wrap around the display edges.
func (f *Frame) Pixel(x, y int) bool {
	return f[wrap(y, DisplayHeight)][wrap(x, DisplayWidth)] != 0
}

// Lit returns the number of set cells.
func (f *Frame) Lit() int {
	count := 0
	for _, row := range f {
		for _, cell := range row {
			count += int(cell)
		}
	}
	return count
}

// String renders the frame as text, one line per row, '#' for set cells.
func (f *Frame) String() string {
	var buf strings.Builder
	buf.Grow(DisplayHeight * (DisplayWidth + 1))
	for _, row := range f {
		for _, cell := range row {
			if cell != 0 {
				buf.WriteByte('#')
			} else {
				buf.WriteByte('.')
			}
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

func wrap(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}
