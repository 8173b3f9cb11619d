package chip8

// Kind identifies the operation of a decoded instruction.
type Kind uint8

// Instruction kinds, one per recognized opcode pattern.
const (
	Unknown               Kind = iota // any unrecognized encoding
	ClearScreen                       // 00E0
	Return                            // 00EE
	Jump                              // 1nnn
	Call                              // 2nnn
	SkipEqualImmediate                // 3xkk
	SkipNotEqualImmediate             // 4xkk
	SkipEqualRegister                 // 5xy0
	LoadImmediate                     // 6xkk
	AddImmediate                      // 7xkk
	Move                              // 8xy0
	Or                                // 8xy1
	And                               // 8xy2
	Xor                               // 8xy3
	AddRegister                       // 8xy4
	Sub                               // 8xy5
	ShiftRight                        // 8xy6
	SubReverse                        // 8xy7
	ShiftLeft                         // 8xyE
	SkipNotEqualRegister              // 9xy0
	LoadIndex                         // Annn
	JumpOffset                        // Bnnn
	Random                            // Cxkk
	Draw                              // Dxyn
	SkipKeyPressed                    // Ex9E
	SkipKeyReleased                   // ExA1
	LoadDelay                         // Fx07
	WaitKey                           // Fx0A
	SetDelay                          // Fx15
	SetSound                          // Fx18
	AddIndex                          // Fx1E
	LoadFont                          // Fx29
	StoreBCD                          // Fx33
	StoreRegisters                    // Fx55
	LoadRegisters                     // Fx65

	kindCount
)

var kindNames = [kindCount]string{
	Unknown:               "unknown",
	ClearScreen:           "clear screen",
	Return:                "return",
	Jump:                  "jump",
	Call:                  "call",
	SkipEqualImmediate:    "skip equal immediate",
	SkipNotEqualImmediate: "skip not equal immediate",
	SkipEqualRegister:     "skip equal register",
	LoadImmediate:         "load immediate",
	AddImmediate:          "add immediate",
	Move:                  "move",
	Or:                    "or",
	And:                   "and",
	Xor:                   "xor",
	AddRegister:           "add register",
	Sub:                   "sub",
	ShiftRight:            "shift right",
	SubReverse:            "sub reverse",
	ShiftLeft:             "shift left",
	SkipNotEqualRegister:  "skip not equal register",
	LoadIndex:             "load index",
	JumpOffset:            "jump offset",
	Random:                "random",
	Draw:                  "draw",
	SkipKeyPressed:        "skip key pressed",
	SkipKeyReleased:       "skip key released",
	LoadDelay:             "load delay",
	WaitKey:               "wait key",
	SetDelay:              "set delay",
	SetSound:              "set sound",
	AddIndex:              "add index",
	LoadFont:              "load font",
	StoreBCD:              "store bcd",
	StoreRegisters:        "store registers",
	LoadRegisters:         "load registers",
}

func (k Kind) String() string {
	if k >= kindCount {
		return kindNames[Unknown]
	}
	return kindNames[k]
}

// Instruction is a decoded opcode. All operand fields are extracted from the
// opcode regardless of kind, each handler reads the ones it needs.
type Instruction struct {
	Opcode uint16
	Kind   Kind

	X   uint8  // second nibble, register operand
	Y   uint8  // third nibble, register operand
	N   uint8  // fourth nibble, sprite height
	KK  byte   // low byte immediate
	NNN uint16 // low 12 bit address
}

// Decode classifies an opcode into an instruction.
func Decode(opcode uint16) Instruction {
	ins := Instruction{
		Opcode: opcode,
		X:      uint8(opcode>>8) & 0xF,
		Y:      uint8(opcode>>4) & 0xF,
		N:      uint8(opcode) & 0xF,
		KK:     byte(opcode),
		NNN:    opcode & 0x0FFF,
	}
	ins.Kind = decodeKind(opcode, ins.N)
	return ins
}

func decodeKind(opcode uint16, n uint8) Kind {
	switch opcode >> 12 {
	case 0x0:
		switch opcode {
		case 0x00E0:
			return ClearScreen
		case 0x00EE:
			return Return
		}

	case 0x1:
		return Jump
	case 0x2:
		return Call
	case 0x3:
		return SkipEqualImmediate
	case 0x4:
		return SkipNotEqualImmediate

	case 0x5:
		if n == 0 {
			return SkipEqualRegister
		}

	case 0x6:
		return LoadImmediate
	case 0x7:
		return AddImmediate

	case 0x8:
		return decodeALU(n)

	case 0x9:
		if n == 0 {
			return SkipNotEqualRegister
		}

	case 0xA:
		return LoadIndex
	case 0xB:
		return JumpOffset
	case 0xC:
		return Random
	case 0xD:
		return Draw

	case 0xE:
		switch opcode & 0x00FF {
		case 0x9E:
			return SkipKeyPressed
		case 0xA1:
			return SkipKeyReleased
		}

	case 0xF:
		return decodeMisc(byte(opcode))
	}
	return Unknown
}

// decodeALU decodes the 8xyN register arithmetic group.
func decodeALU(n uint8) Kind {
	switch n {
	case 0x0:
		return Move
	case 0x1:
		return Or
	case 0x2:
		return And
	case 0x3:
		return Xor
	case 0x4:
		return AddRegister
	case 0x5:
		return Sub
	case 0x6:
		return ShiftRight
	case 0x7:
		return SubReverse
	case 0xE:
		return ShiftLeft
	}
	return Unknown
}

// decodeMisc decodes the FxKK timer, input and memory group.
func decodeMisc(kk byte) Kind {
	switch kk {
	case 0x07:
		return LoadDelay
	case 0x0A:
		return WaitKey
	case 0x15:
		return SetDelay
	case 0x18:
		return SetSound
	case 0x1E:
		return AddIndex
	case 0x29:
		return LoadFont
	case 0x33:
		return StoreBCD
	case 0x55:
		return StoreRegisters
	case 0x65:
		return LoadRegisters
	}
	return Unknown
}
