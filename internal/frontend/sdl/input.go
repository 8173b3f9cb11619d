package sdl

import (
	"github.com/retroenv/emu8/internal/chip8"
	"github.com/retroenv/emu8/internal/keymap"
	"github.com/veandco/go-sdl2/sdl"
)

// scancodeTable returns the keyboard scancode of every keypad key. Scancodes
// name physical key positions, so the keypad stays in place on non QWERTY
// layouts.
func scancodeTable() [chip8.KeyCount]sdl.Scancode {
	var table [chip8.KeyCount]sdl.Scancode
	for key := range chip8.KeyCount {
		table[key] = scancode(keymap.HostKey(uint8(key)))
	}
	return table
}

func scancode(r rune) sdl.Scancode {
	switch {
	case r >= 'a' && r <= 'z':
		return sdl.Scancode(sdl.SCANCODE_A) + sdl.Scancode(r-'a')
	case r >= '1' && r <= '9':
		return sdl.Scancode(sdl.SCANCODE_1) + sdl.Scancode(r-'1')
	case r == '0':
		return sdl.Scancode(sdl.SCANCODE_0)
	default:
		return sdl.Scancode(sdl.SCANCODE_UNKNOWN)
	}
}
