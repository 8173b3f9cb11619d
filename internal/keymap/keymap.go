// Package keymap maps host keyboard keys to the hexadecimal keypad.
//
// The keypad is laid out on the left side of a QWERTY keyboard:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
package keymap

import (
	"unicode"

	"github.com/retroenv/emu8/internal/chip8"
)

// Layout lists the host keys row by row in keypad order.
var Layout = [4][4]rune{
	{'1', '2', '3', '4'},
	{'q', 'w', 'e', 'r'},
	{'a', 's', 'd', 'f'},
	{'z', 'x', 'c', 'v'},
}

// keypad holds the keypad symbol at each layout position.
var keypad = [4][4]uint8{
	{0x1, 0x2, 0x3, 0xC},
	{0x4, 0x5, 0x6, 0xD},
	{0x7, 0x8, 0x9, 0xE},
	{0xA, 0x0, 0xB, 0xF},
}

var runes = buildRuneMap()

func buildRuneMap() map[rune]uint8 {
	m := make(map[rune]uint8, chip8.KeyCount)
	for row := range Layout {
		for col, r := range Layout[row] {
			m[r] = keypad[row][col]
		}
	}
	return m
}

// Key returns the keypad key for a host key character. Letters match case
// insensitively.
func Key(r rune) (uint8, bool) {
	key, ok := runes[unicode.ToLower(r)]
	return key, ok
}

// HostKey returns the host key character for a keypad key.
func HostKey(key uint8) rune {
	for row := range keypad {
		for col, k := range keypad[row] {
			if k == key {
				return Layout[row][col]
			}
		}
	}
	return 0
}
