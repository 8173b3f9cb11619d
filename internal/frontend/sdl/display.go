package sdl

import (
	"fmt"
	"image/color"

	"github.com/retroenv/emu8/internal/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	offColor = color.RGBA{R: 201, G: 171, B: 142, A: 0xff}
	onColor  = color.RGBA{R: 41, G: 30, B: 19, A: 0xff}
)

var _ canvas = &sdl.Renderer{}

// canvas is the part of the SDL renderer used to draw a frame.
type canvas interface {
	SetDrawColor(r, g, b, a uint8) error
	Clear() error
	FillRects(rects []sdl.Rect) error
	Present()
}

// drawFrame clears the canvas, fills the rectangles of the lit cells and
// presents the result once.
func drawFrame(c canvas, rects []sdl.Rect) error {
	if err := c.SetDrawColor(offColor.R, offColor.G, offColor.B, offColor.A); err != nil {
		return fmt.Errorf("setting draw color: %w", err)
	}
	if err := c.Clear(); err != nil {
		return fmt.Errorf("clearing window: %w", err)
	}

	if len(rects) > 0 {
		if err := c.SetDrawColor(onColor.R, onColor.G, onColor.B, onColor.A); err != nil {
			return fmt.Errorf("setting draw color: %w", err)
		}
		if err := c.FillRects(rects); err != nil {
			return fmt.Errorf("drawing cells: %w", err)
		}
	}

	c.Present()
	return nil
}

// litRects appends one scaled rectangle per lit cell of the frame.
func litRects(rects []sdl.Rect, frame *chip8.Frame, scale int32) []sdl.Rect {
	for y := range chip8.DisplayHeight {
		for x := range chip8.DisplayWidth {
			if !frame.Pixel(x, y) {
				continue
			}
			rects = append(rects, sdl.Rect{
				X: int32(x) * scale,
				Y: int32(y) * scale,
				W: scale,
				H: scale,
			})
		}
	}
	return rects
}
