package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		opcode uint16
		kind   Kind
	}{
		{0x00E0, ClearScreen},
		{0x00EE, Return},
		{0x0123, Unknown},
		{0x1ABC, Jump},
		{0x2ABC, Call},
		{0x3A12, SkipEqualImmediate},
		{0x4A12, SkipNotEqualImmediate},
		{0x5AB0, SkipEqualRegister},
		{0x5AB1, Unknown},
		{0x6A12, LoadImmediate},
		{0x7A12, AddImmediate},
		{0x8AB0, Move},
		{0x8AB1, Or},
		{0x8AB2, And},
		{0x8AB3, Xor},
		{0x8AB4, AddRegister},
		{0x8AB5, Sub},
		{0x8AB6, ShiftRight},
		{0x8AB7, SubReverse},
		{0x8ABE, ShiftLeft},
		{0x8AB8, Unknown},
		{0x9AB0, SkipNotEqualRegister},
		{0x9AB1, Unknown},
		{0xAABC, LoadIndex},
		{0xBABC, JumpOffset},
		{0xCA12, Random},
		{0xDAB5, Draw},
		{0xEA9E, SkipKeyPressed},
		{0xEAA1, SkipKeyReleased},
		{0xEA00, Unknown},
		{0xFA07, LoadDelay},
		{0xFA0A, WaitKey},
		{0xFA15, SetDelay},
		{0xFA18, SetSound},
		{0xFA1E, AddIndex},
		{0xFA29, LoadFont},
		{0xFA33, StoreBCD},
		{0xFA55, StoreRegisters},
		{0xFA65, LoadRegisters},
		{0xFAFF, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			ins := Decode(tt.opcode)
			assert.Equal(t, tt.kind, ins.Kind)
			assert.Equal(t, tt.opcode, ins.Opcode)
		})
	}
}

func TestDecode_Operands(t *testing.T) {
	ins := Decode(0xD7A5)

	assert.Equal(t, uint8(0x7), ins.X)
	assert.Equal(t, uint8(0xA), ins.Y)
	assert.Equal(t, uint8(0x5), ins.N)
	assert.Equal(t, byte(0xA5), ins.KK)
	assert.Equal(t, uint16(0x7A5), ins.NNN)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "draw", Draw.String())
	assert.Equal(t, "unknown", Kind(200).String())
}

func TestHandlers_Complete(t *testing.T) {
	for kind := range kindCount {
		assert.NotNil(t, handlers[kind])
	}
}
