package disasm

import (
	"testing"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestInstruction(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		expected string
		known    bool
	}{
		{"clear screen", 0x00E0, "cls", true},
		{"jump", 0x1234, "jp $234", true},
		{"call", 0x2300, "call $300", true},
		{"skip equal immediate", 0x3234, "se V2, $34", true},
		{"load index", 0xA234, "ld I, $234", true},
		{"unknown opcode", 0xFFFF, ".word $FFFF", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, known := Instruction(tt.opcode)
			assert.Equal(t, tt.expected, text)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		opcode   uint16
		expected *chip8cpu.Instruction
	}{
		{0x00E0, chip8cpu.ClsInst},
		{0x00EE, chip8cpu.RetInst},
		{0x1234, chip8cpu.JpInst},
		{0xB234, chip8cpu.JpInst},
		{0x2300, chip8cpu.CallInst},
		{0x5120, chip8cpu.SeInst},
		{0xA234, chip8cpu.LdInst},
		{0xF165, chip8cpu.LdInst},
		{0xD015, chip8cpu.DrwInst},
		{0xE49E, chip8cpu.SkpInst},
	}

	for _, tt := range tests {
		ins := Lookup(tt.opcode)
		assert.True(t, ins == tt.expected, "opcode %04X", tt.opcode)
	}

	assert.True(t, Lookup(0xFFFF) == nil)
	assert.True(t, Lookup(0x5121) == nil)
}

func TestInstruction_Operands(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		expected string
	}{
		{"return", 0x00EE, chip8cpu.RetName},
		{"draw", 0xD015, chip8cpu.DrwName + " V0, V1, $5"},
		{"random", 0xC30F, chip8cpu.RndName + " V3, $0F"},
		{"xor", 0x8AB3, chip8cpu.XorName + " VA, VB"},
		{"skip key pressed", 0xE49E, chip8cpu.SkpName + " V4"},
		{"skip key released", 0xE5A1, chip8cpu.SknpName + " V5"},
		{"jump offset", 0xB210, chip8cpu.JpName + " V0, $210"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, known := Instruction(tt.opcode)
			assert.True(t, known)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestFormatLoadInstruction(t *testing.T) {
	tests := []struct {
		opcode   uint16
		expected string
	}{
		{0x6A12, "VA, $12"},
		{0x8120, "V1, V2"},
		{0xA123, "I, $123"},
		{0xF307, "V3, DT"},
		{0xF30A, "V3, K"},
		{0xF315, "DT, V3"},
		{0xF318, "ST, V3"},
		{0xF329, "F, V3"},
		{0xF333, "B, V3"},
		{0xF355, "[I], V3"},
		{0xF365, "V3, [I]"},
		{0xF3FF, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatLoadInstruction(tt.opcode))
	}
}

func TestFormatAddInstruction(t *testing.T) {
	assert.Equal(t, "V1, $FF", formatAddInstruction(0x71FF))
	assert.Equal(t, "V1, V2", formatAddInstruction(0x8124))
	assert.Equal(t, "I, V7", formatAddInstruction(0xF71E))
}

func TestControlFlow(t *testing.T) {
	tests := []struct {
		name    string
		opcode  uint16
		jump    bool
		call    bool
		ret     bool
		skip    bool
		dataRef bool
	}{
		{"jump", 0x1234, true, false, false, false, false},
		{"call", 0x2300, false, true, false, false, false},
		{"return", 0x00EE, false, false, true, false, false},
		{"skip equal", 0x3234, false, false, false, true, false},
		{"skip not equal", 0x4234, false, false, false, true, false},
		{"load index", 0xA234, false, false, false, false, true},
		{"load register", 0x6234, false, false, false, false, false},
		{"unknown", 0xFFFF, false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.jump, IsJump(tt.opcode))
			assert.Equal(t, tt.call, IsCall(tt.opcode))
			assert.Equal(t, tt.ret, IsReturn(tt.opcode))
			assert.Equal(t, tt.skip, IsSkip(tt.opcode))
			assert.Equal(t, tt.dataRef, IsDataReference(tt.opcode))
		})
	}
}

func TestTarget(t *testing.T) {
	target, ok := Target(0x1234)
	assert.True(t, ok)
	assert.Equal(t, uint16(0x234), target)

	target, ok = Target(0xA300)
	assert.True(t, ok)
	assert.Equal(t, uint16(0x300), target)

	_, ok = Target(0x6012)
	assert.False(t, ok)
}
