// Package headless provides a front end without any input or output. It is
// used for automated runs with a tick limit.
package headless

import (
	"github.com/retroenv/emu8/internal/chip8"
)

// Frontend releases all keys and remembers the last rendered frame.
type Frontend struct {
	frame   chip8.Frame
	frames  int
	beeping bool
}

// New returns a new headless front end.
func New() *Frontend {
	return &Frontend{}
}

// Poll returns a keypad state with all keys released.
func (f *Frontend) Poll() (chip8.Keys, error) {
	return chip8.Keys{}, nil
}

// Render stores a copy of the frame.
func (f *Frontend) Render(frame *chip8.Frame) error {
	f.frame = *frame
	f.frames++
	return nil
}

// Beep records the tone state.
func (f *Frontend) Beep(on bool) error {
	f.beeping = on
	return nil
}

// Frame returns the last rendered frame.
func (f *Frontend) Frame() chip8.Frame {
	return f.frame
}

// Frames returns the number of rendered frames.
func (f *Frontend) Frames() int {
	return f.frames
}

// Beeping returns whether the tone is currently on.
func (f *Frontend) Beeping() bool {
	return f.beeping
}
