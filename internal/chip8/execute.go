package chip8

type handler func(m *Machine, ins Instruction)

// handlers maps every instruction kind to its implementation.
var handlers = [kindCount]handler{
	Unknown:               (*Machine).nop,
	ClearScreen:           (*Machine).clearScreen,
	Return:                (*Machine).ret,
	Jump:                  (*Machine).jump,
	Call:                  (*Machine).call,
	SkipEqualImmediate:    (*Machine).skipEqualImmediate,
	SkipNotEqualImmediate: (*Machine).skipNotEqualImmediate,
	SkipEqualRegister:     (*Machine).skipEqualRegister,
	LoadImmediate:         (*Machine).loadImmediate,
	AddImmediate:          (*Machine).addImmediate,
	Move:                  (*Machine).move,
	Or:                    (*Machine).or,
	And:                   (*Machine).and,
	Xor:                   (*Machine).xor,
	AddRegister:           (*Machine).addRegister,
	Sub:                   (*Machine).sub,
	ShiftRight:            (*Machine).shiftRight,
	SubReverse:            (*Machine).subReverse,
	ShiftLeft:             (*Machine).shiftLeft,
	SkipNotEqualRegister:  (*Machine).skipNotEqualRegister,
	LoadIndex:             (*Machine).loadIndex,
	JumpOffset:            (*Machine).jumpOffset,
	Random:                (*Machine).randomByte,
	Draw:                  (*Machine).draw,
	SkipKeyPressed:        (*Machine).skipKeyPressed,
	SkipKeyReleased:       (*Machine).skipKeyReleased,
	LoadDelay:             (*Machine).loadDelay,
	WaitKey:               (*Machine).waitKey,
	SetDelay:              (*Machine).setDelay,
	SetSound:              (*Machine).setSound,
	AddIndex:              (*Machine).addIndex,
	LoadFont:              (*Machine).loadFont,
	StoreBCD:              (*Machine).storeBCD,
	StoreRegisters:        (*Machine).storeRegisters,
	LoadRegisters:         (*Machine).loadRegisters,
}

// execute runs a decoded instruction. The program counter has already been
// advanced past it.
func (m *Machine) execute(ins Instruction) {
	if ins.Kind >= kindCount {
		return
	}
	handlers[ins.Kind](m, ins)
}

func (m *Machine) nop(Instruction) {}

func (m *Machine) clearScreen(Instruction) {
	m.display = Frame{}
	m.displayChanged = true
}

// ret pops a return address. The stack pointer may exceed the stack size
// after overflowing calls; those phantom frames unwind without a jump.
// A return with an empty stack is ignored.
func (m *Machine) ret(Instruction) {
	if m.sp == 0 {
		return
	}
	m.sp--
	if m.sp < StackSize {
		m.setPC(m.stack[m.sp])
	}
}

func (m *Machine) jump(ins Instruction) {
	m.setPC(ins.NNN)
}

// call pushes the return address. Once the stack is full the address is
// dropped but the stack pointer still counts the call.
func (m *Machine) call(ins Instruction) {
	if m.sp < StackSize {
		m.stack[m.sp] = m.pc
	}
	m.sp++
	m.setPC(ins.NNN)
}

func (m *Machine) skipEqualImmediate(ins Instruction) {
	if m.v[ins.X] == ins.KK {
		m.skip()
	}
}

func (m *Machine) skipNotEqualImmediate(ins Instruction) {
	if m.v[ins.X] != ins.KK {
		m.skip()
	}
}

func (m *Machine) skipEqualRegister(ins Instruction) {
	if m.v[ins.X] == m.v[ins.Y] {
		m.skip()
	}
}

func (m *Machine) loadImmediate(ins Instruction) {
	m.v[ins.X] = ins.KK
}

// addImmediate wraps around without touching the flag register.
func (m *Machine) addImmediate(ins Instruction) {
	m.v[ins.X] += ins.KK
}

func (m *Machine) move(ins Instruction) {
	m.v[ins.X] = m.v[ins.Y]
}

func (m *Machine) or(ins Instruction) {
	m.v[ins.X] |= m.v[ins.Y]
}

func (m *Machine) and(ins Instruction) {
	m.v[ins.X] &= m.v[ins.Y]
}

func (m *Machine) xor(ins Instruction) {
	m.v[ins.X] ^= m.v[ins.Y]
}

func (m *Machine) addRegister(ins Instruction) {
	sum := uint16(m.v[ins.X]) + uint16(m.v[ins.Y])
	m.v[ins.X] = byte(sum)
	m.v[FlagRegister] = boolToByte(sum > 0xFF)
}

func (m *Machine) sub(ins Instruction) {
	m.v[FlagRegister] = boolToByte(m.v[ins.X] > m.v[ins.Y])
	m.v[ins.X] -= m.v[ins.Y]
}

func (m *Machine) shiftRight(ins Instruction) {
	m.v[FlagRegister] = m.v[ins.X] & 0x01
	m.v[ins.X] >>= 1
}

func (m *Machine) subReverse(ins Instruction) {
	m.v[FlagRegister] = boolToByte(m.v[ins.Y] > m.v[ins.X])
	m.v[ins.X] = m.v[ins.Y] - m.v[ins.X]
}

func (m *Machine) shiftLeft(ins Instruction) {
	m.v[FlagRegister] = m.v[ins.X] >> 7
	m.v[ins.X] <<= 1
}

func (m *Machine) skipNotEqualRegister(ins Instruction) {
	if m.v[ins.X] != m.v[ins.Y] {
		m.skip()
	}
}

func (m *Machine) loadIndex(ins Instruction) {
	m.index = ins.NNN
}

func (m *Machine) jumpOffset(ins Instruction) {
	m.setPC(uint16(m.v[0]) + ins.NNN)
}

func (m *Machine) randomByte(ins Instruction) {
	m.v[ins.X] = byte(m.random.UintN(256)) & ins.KK
}

// draw XORs an n byte sprite from memory at I onto the display at (Vx, Vy).
// Cells wrap around the display edges, VF reports whether any set cell was
// cleared.
func (m *Machine) draw(ins Instruction) {
	originX := int(m.v[ins.X])
	originY := int(m.v[ins.Y])

	var collision byte
	for row := range int(ins.N) {
		y := (originY + row) % DisplayHeight
		sprite := m.readMemory(m.index + uint16(row))

		for bit := range 8 {
			x := (originX + bit) % DisplayWidth
			color := (sprite >> (7 - bit)) & 1
			collision |= color & m.display[y][x]
			m.display[y][x] ^= color
		}
	}

	m.v[FlagRegister] = collision
	m.displayChanged = true
}

func (m *Machine) skipKeyPressed(ins Instruction) {
	if m.keys[m.v[ins.X]&0xF] {
		m.skip()
	}
}

func (m *Machine) skipKeyReleased(ins Instruction) {
	if !m.keys[m.v[ins.X]&0xF] {
		m.skip()
	}
}

func (m *Machine) loadDelay(ins Instruction) {
	m.v[ins.X] = m.delayTimer
}

func (m *Machine) waitKey(ins Instruction) {
	m.waitingKey = true
	m.waitRegister = ins.X
}

func (m *Machine) setDelay(ins Instruction) {
	m.delayTimer = m.v[ins.X]
}

func (m *Machine) setSound(ins Instruction) {
	m.soundTimer = m.v[ins.X]
}

func (m *Machine) addIndex(ins Instruction) {
	m.index += uint16(m.v[ins.X])
	m.v[FlagRegister] = boolToByte(m.index > 0x0F00)
}

func (m *Machine) loadFont(ins Instruction) {
	m.index = uint16(m.v[ins.X]) * glyphSize
}

func (m *Machine) storeBCD(ins Instruction) {
	value := m.v[ins.X]
	m.writeMemory(m.index, value/100)
	m.writeMemory(m.index+1, value%100/10)
	m.writeMemory(m.index+2, value%10)
}

func (m *Machine) storeRegisters(ins Instruction) {
	for i := range uint16(ins.X) + 1 {
		m.writeMemory(m.index+i, m.v[i])
	}
}

func (m *Machine) loadRegisters(ins Instruction) {
	for i := range uint16(ins.X) + 1 {
		m.v[i] = m.readMemory(m.index + i)
	}
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
