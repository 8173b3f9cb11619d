// Package disasm formats CHIP-8 opcodes as assembly text and classifies
// their control flow.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Lookup identifies the instruction descriptor of an opcode using the
// first nibble indexed opcode tables. It returns nil for unknown opcodes.
func Lookup(opcode uint16) *chip8.Instruction {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value {
			return op.Instruction
		}
	}
	return nil
}

// Instruction returns the assembly text of the opcode and whether the opcode
// is a known instruction. Unknown opcodes are returned as a .word directive.
func Instruction(opcode uint16) (string, bool) {
	ins := Lookup(opcode)
	if ins == nil {
		return fmt.Sprintf(".word $%04X", opcode), false
	}

	if params := formatInstruction(ins.Name, opcode); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params), true
	}
	return ins.Name, true
}

// IsJump returns true if the opcode is an absolute jump.
func IsJump(opcode uint16) bool {
	return Lookup(opcode) == chip8.JpInst && opcode&0xF000 == 0x1000
}

// IsCall returns true if the opcode is a subroutine call.
func IsCall(opcode uint16) bool {
	return Lookup(opcode) == chip8.CallInst
}

// IsReturn returns true if the opcode returns from a subroutine.
func IsReturn(opcode uint16) bool {
	return Lookup(opcode) == chip8.RetInst
}

// IsSkip returns true if the opcode conditionally skips the next instruction.
func IsSkip(opcode uint16) bool {
	ins := Lookup(opcode)
	if ins == nil {
		return false
	}
	return chip8.SkipInstructions.Contains(ins.Name)
}

// IsDataReference returns true if the opcode loads an address into I.
func IsDataReference(opcode uint16) bool {
	return Lookup(opcode) == chip8.LdInst && opcode&0xF000 == 0xA000
}

// Target returns the address operand of jumps, calls and index loads.
func Target(opcode uint16) (uint16, bool) {
	if !IsJump(opcode) && !IsCall(opcode) && !IsDataReference(opcode) {
		return 0, false
	}
	return opcode & 0x0FFF, true
}

// formatInstruction formats the parameters of an instruction.
func formatInstruction(name string, opcode uint16) string {
	switch name {
	case chip8.ClsName, chip8.RetName:
		return "" // No parameters
	case chip8.JpName:
		return formatJumpInstruction(opcode)
	case chip8.CallName:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case chip8.SeName, chip8.SneName:
		return formatCompareInstruction(opcode)
	case chip8.LdName:
		return formatLoadInstruction(opcode)
	case chip8.AddName:
		return formatAddInstruction(opcode)
	case chip8.OrName, chip8.AndName, chip8.XorName, chip8.SubName, chip8.SubnName:
		return formatBinaryInstruction(opcode)
	case chip8.ShrName, chip8.ShlName, chip8.SkpName, chip8.SknpName:
		return fmt.Sprintf("V%X", registerX(opcode))
	case chip8.RndName:
		return fmt.Sprintf("V%X, $%02X", registerX(opcode), opcode&0x00FF)
	case chip8.DrwName:
		return fmt.Sprintf("V%X, V%X, $%X", registerX(opcode), registerY(opcode), opcode&0x000F)
	}
	return ""
}

// formatJumpInstruction formats jump instructions (JP addr, JP V0+addr).
func formatJumpInstruction(opcode uint16) string {
	switch opcode & 0xF000 {
	case 0x1000:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return ""
}

// formatCompareInstruction formats comparison instructions (SE, SNE).
func formatCompareInstruction(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	}
	return ""
}

// loadForms maps the low byte of FxKK load instructions to their operand layout.
var loadForms = map[uint16]string{
	0x07: "V%X, DT",
	0x0A: "V%X, K",
	0x15: "DT, V%X",
	0x18: "ST, V%X",
	0x29: "F, V%X",
	0x33: "B, V%X",
	0x55: "[I], V%X",
	0x65: "V%X, [I]",
}

// formatLoadInstruction formats load instructions (LD Vx, byte/Vy/I and the FxKK forms).
func formatLoadInstruction(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	case 0xF000:
		if form, ok := loadForms[opcode&0x00FF]; ok {
			return fmt.Sprintf(form, x)
		}
	}
	return ""
}

// formatAddInstruction formats add instructions (ADD Vx, byte/Vy, ADD I, Vx).
func formatAddInstruction(opcode uint16) string {
	x := registerX(opcode)
	switch opcode & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(opcode))
	case 0xF000:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}

// formatBinaryInstruction formats binary operation instructions (OR, AND, XOR, SUB, SUBN).
func formatBinaryInstruction(opcode uint16) string {
	return fmt.Sprintf("V%X, V%X", registerX(opcode), registerY(opcode))
}

// registerX extracts the X register nibble from an opcode.
func registerX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// registerY extracts the Y register nibble from an opcode.
func registerY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
