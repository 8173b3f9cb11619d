package chip8

import (
	"fmt"
	"strings"

	"github.com/retroenv/emu8/internal/disasm"
	"github.com/retroenv/retrogolib/log"
)

// Output is the visible result of a tick.
type Output struct {
	Frame   Frame // copy of the display buffer
	Changed bool  // display was cleared or drawn to during this tick
	Beep    bool  // sound timer is active
}

// Tick advances the machine by one time step. It stores the keypad state,
// then either scans for a key while waiting for input or decrements the
// timers and executes one instruction. If debug is set, a trace of the
// executed instruction and the register file is logged.
func (m *Machine) Tick(keys Keys, debug bool) Output {
	m.keys = keys
	m.displayChanged = false

	if m.waitingKey {
		m.latchKey()
	} else {
		m.step(debug)
	}

	return Output{
		Frame:   m.display,
		Changed: m.displayChanged,
		Beep:    m.soundTimer > 0,
	}
}

// latchKey copies the lowest pressed key into the wait target register.
func (m *Machine) latchKey() {
	for key, pressed := range m.keys {
		if !pressed {
			continue
		}
		m.v[m.waitRegister] = byte(key)
		m.waitingKey = m.quirks.LatchKeyWait
		return
	}
}

func (m *Machine) step(debug bool) {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}

	opcode := m.fetch()
	m.setPC(m.pc + 2)
	ins := Decode(opcode)
	m.execute(ins)

	if debug {
		m.trace(ins)
	}
}

func (m *Machine) trace(ins Instruction) {
	if m.logger == nil {
		return
	}

	text, _ := disasm.Instruction(ins.Opcode)
	m.logger.Debug("Executed instruction",
		log.Hex("opcode", ins.Opcode),
		log.String("code", text),
		log.Stringer("kind", ins.Kind),
		log.Hex("pc", m.pc),
		log.Int("sp", m.sp),
		log.Hex("i", m.index),
		log.String("v", m.registerDump()),
	)
}

// registerDump formats V0-VF as space separated hex values.
func (m *Machine) registerDump() string {
	var buf strings.Builder
	for i, value := range m.v {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "V%X=%02X", i, value)
	}
	return buf.String()
}
