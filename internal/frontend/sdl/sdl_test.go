package sdl

import (
	"errors"
	"testing"

	"github.com/retroenv/emu8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func TestScancodeTable(t *testing.T) {
	table := scancodeTable()

	assert.Equal(t, sdl.Scancode(sdl.SCANCODE_1), table[0x1])
	assert.Equal(t, sdl.Scancode(sdl.SCANCODE_4), table[0xC])
	assert.Equal(t, sdl.Scancode(sdl.SCANCODE_X), table[0x0])
	assert.Equal(t, sdl.Scancode(sdl.SCANCODE_V), table[0xF])
	assert.Equal(t, sdl.Scancode(sdl.SCANCODE_W), table[0x5])

	for _, code := range table {
		assert.True(t, code != sdl.Scancode(sdl.SCANCODE_UNKNOWN), "keypad key without scancode")
	}
}

func TestScancode(t *testing.T) {
	assert.Equal(t, sdl.Scancode(sdl.SCANCODE_0), scancode('0'))
	assert.Equal(t, sdl.Scancode(sdl.SCANCODE_9), scancode('9'))
	assert.Equal(t, sdl.Scancode(sdl.SCANCODE_Z), scancode('z'))
	assert.Equal(t, sdl.Scancode(sdl.SCANCODE_UNKNOWN), scancode('!'))
}

func TestLitRects(t *testing.T) {
	var frame chip8.Frame
	frame[0][0] = 1
	frame[2][63] = 1

	rects := litRects(nil, &frame, 10)
	assert.Len(t, rects, 2)
	assert.Equal(t, sdl.Rect{X: 0, Y: 0, W: 10, H: 10}, rects[0])
	assert.Equal(t, sdl.Rect{X: 630, Y: 20, W: 10, H: 10}, rects[1])

	var empty chip8.Frame
	assert.Len(t, litRects(rects[:0], &empty, 10), 0)
}

// recordingCanvas records the sequence of draw calls.
type recordingCanvas struct {
	calls    []string
	filled   int
	clearErr error
}

func (c *recordingCanvas) SetDrawColor(r, _, _, _ uint8) error {
	if r == onColor.R {
		c.calls = append(c.calls, "on")
	} else {
		c.calls = append(c.calls, "off")
	}
	return nil
}

func (c *recordingCanvas) Clear() error {
	c.calls = append(c.calls, "clear")
	return c.clearErr
}

func (c *recordingCanvas) FillRects(rects []sdl.Rect) error {
	c.calls = append(c.calls, "fill")
	c.filled += len(rects)
	return nil
}

func (c *recordingCanvas) Present() {
	c.calls = append(c.calls, "present")
}

func TestDrawFrame_PresentsOnce(t *testing.T) {
	var frame chip8.Frame
	frame[1][1] = 1
	frame[5][7] = 1

	c := &recordingCanvas{}
	assert.NoError(t, drawFrame(c, litRects(nil, &frame, 4)))
	assert.Equal(t, []string{"off", "clear", "on", "fill", "present"}, c.calls)
	assert.Equal(t, 2, c.filled)
}

func TestDrawFrame_EmptyFrame(t *testing.T) {
	c := &recordingCanvas{}
	assert.NoError(t, drawFrame(c, nil))
	assert.Equal(t, []string{"off", "clear", "present"}, c.calls)
}

func TestDrawFrame_ClearError(t *testing.T) {
	c := &recordingCanvas{clearErr: errors.New("lost device")}
	err := drawFrame(c, []sdl.Rect{{W: 1, H: 1}})
	assert.ErrorContains(t, err, "clearing window")
	assert.Equal(t, []string{"off", "clear"}, c.calls)
}
