package chip8

import (
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 machine layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x04F: Built-in hexadecimal font (16 glyphs, 5 bytes each)
//	0x050-0x1FF: Reserved interpreter area
//	0x200-0xFFF: User program space (3584 bytes)
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// ProgramStart is the memory address where programs are loaded and execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits between ProgramStart and the end of memory.
	MaxProgramSize = MemorySize - ProgramStart

	DisplayWidth  = 64
	DisplayHeight = 32

	RegisterCount = 16
	StackSize     = 16
	KeyCount      = 16

	// FlagRegister is the index of VF, used for carry, borrow and collision results.
	FlagRegister = 0xF

	addressMask = MemorySize - 1
)

// Keys is the pressed state of the 16 keypad keys, indexed by key symbol 0-F.
type Keys [KeyCount]bool

// Quirks toggles behaviors where interpreters disagree.
type Quirks struct {
	// LatchKeyWait keeps the machine in the key-wait state after a key was
	// latched into the target register, so the program never resumes.
	LatchKeyWait bool
}

// Machine is the complete state of a CHIP-8 virtual computer.
// It is not safe for concurrent use, callers must serialize Tick calls.
type Machine struct {
	memory [MemorySize]byte

	display        Frame
	displayChanged bool

	pc    uint16
	sp    int // unbounded call depth counter, see call
	stack [StackSize]uint16

	v     [RegisterCount]byte
	index uint16

	delayTimer byte
	soundTimer byte

	keys         Keys
	waitingKey   bool
	waitRegister uint8

	quirks Quirks
	random *rand.Rand
	logger *log.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger that receives the instruction trace.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithRandom sets the random source used by the random instruction.
func WithRandom(random *rand.Rand) Option {
	return func(m *Machine) {
		m.random = random
	}
}

// WithQuirks sets the interpreter quirks.
func WithQuirks(quirks Quirks) Option {
	return func(m *Machine) {
		m.quirks = quirks
	}
}

// New returns a machine in its power-on state: memory zeroed except for the
// font, all registers zeroed and the program counter at ProgramStart.
func New(opts ...Option) *Machine {
	m := &Machine{
		pc: ProgramStart,
	}
	copy(m.memory[:], font[:])

	for _, opt := range opts {
		opt(m)
	}
	if m.random == nil {
		seed := uint64(time.Now().UnixNano())
		m.random = rand.New(rand.NewPCG(seed, seed>>32))
	}
	return m
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// SP returns the stack pointer, the number of active subroutine calls.
func (m *Machine) SP() int {
	return m.sp
}

// Index returns the index register I.
func (m *Machine) Index() uint16 {
	return m.index
}

// Register returns the value of register Vn.
func (m *Machine) Register(n int) byte {
	return m.v[n&0xF]
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() byte {
	return m.delayTimer
}

// SoundTimer returns the current sound timer value.
func (m *Machine) SoundTimer() byte {
	return m.soundTimer
}

// Memory returns the byte at the given address, wrapped into the address space.
func (m *Machine) Memory(address uint16) byte {
	return m.memory[address&addressMask]
}

// Frame returns a copy of the display buffer.
func (m *Machine) Frame() Frame {
	return m.display
}

// WaitingForKey returns whether execution is suspended until a key is pressed.
func (m *Machine) WaitingForKey() bool {
	return m.waitingKey
}

func (m *Machine) readMemory(address uint16) byte {
	return m.memory[address&addressMask]
}

func (m *Machine) writeMemory(address uint16, value byte) {
	m.memory[address&addressMask] = value
}

// fetch reads the big-endian instruction word at the program counter.
func (m *Machine) fetch() uint16 {
	return uint16(m.readMemory(m.pc))<<8 | uint16(m.readMemory(m.pc+1))
}

func (m *Machine) setPC(address uint16) {
	m.pc = address & addressMask
}

// skip advances the program counter past the next instruction.
func (m *Machine) skip() {
	m.setPC(m.pc + 2)
}
