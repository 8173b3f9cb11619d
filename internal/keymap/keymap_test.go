package keymap

import (
	"testing"

	"github.com/retroenv/emu8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		r   rune
		key uint8
	}{
		{'1', 0x1}, {'2', 0x2}, {'3', 0x3}, {'4', 0xC},
		{'q', 0x4}, {'w', 0x5}, {'e', 0x6}, {'r', 0xD},
		{'a', 0x7}, {'s', 0x8}, {'d', 0x9}, {'f', 0xE},
		{'z', 0xA}, {'x', 0x0}, {'c', 0xB}, {'v', 0xF},
		{'Q', 0x4}, {'V', 0xF},
	}

	for _, tt := range tests {
		key, ok := Key(tt.r)
		assert.True(t, ok)
		assert.Equal(t, tt.key, key)
	}

	_, ok := Key('p')
	assert.False(t, ok)
}

func TestHostKey(t *testing.T) {
	for key := range uint8(chip8.KeyCount) {
		r := HostKey(key)
		mapped, ok := Key(r)
		assert.True(t, ok)
		assert.Equal(t, key, mapped)
	}
	assert.Equal(t, rune(0), HostKey(0x10))
}
