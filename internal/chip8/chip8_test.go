package chip8

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// newTestMachine returns a machine with a fixed random seed and the given
// opcodes loaded at ProgramStart.
func newTestMachine(t *testing.T, opcodes ...uint16) *Machine {
	t.Helper()

	m := New(WithRandom(rand.New(rand.NewPCG(1, 2))))
	if len(opcodes) == 0 {
		return m
	}

	data := make([]byte, 0, 2*len(opcodes))
	for _, op := range opcodes {
		data = append(data, byte(op>>8), byte(op))
	}
	assert.NoError(t, m.LoadBytes(data))
	return m
}

// run executes n ticks without any key pressed.
func run(m *Machine, n int) Output {
	var out Output
	for range n {
		out = m.Tick(Keys{}, false)
	}
	return out
}

func TestNew(t *testing.T) {
	m := New()

	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, 0, m.SP())
	assert.Equal(t, uint16(0), m.Index())
	assert.False(t, m.WaitingForKey())
	for i := range RegisterCount {
		assert.Equal(t, byte(0), m.Register(i))
	}
	for address := len(font); address < MemorySize; address++ {
		assert.Equal(t, byte(0), m.Memory(uint16(address)))
	}
	frame := m.Frame()
	assert.Equal(t, 0, frame.Lit())
}

func TestNew_Font(t *testing.T) {
	m := New()

	for i, b := range font {
		assert.Equal(t, b, m.Memory(uint16(i)))
	}
}

func TestLoadBytes(t *testing.T) {
	t.Run("maximum size", func(t *testing.T) {
		m := New()
		data := make([]byte, MaxProgramSize)
		for i := range data {
			data[i] = byte(i*7 + 3)
		}

		assert.NoError(t, m.LoadBytes(data))
		for i, b := range data {
			assert.Equal(t, b, m.Memory(uint16(ProgramStart+i)))
		}
	})

	t.Run("too large", func(t *testing.T) {
		m := New()
		data := bytes.Repeat([]byte{0xAB}, MaxProgramSize+1)

		err := m.LoadBytes(data)
		assert.True(t, errors.Is(err, ErrProgramTooLarge))
		assert.Equal(t, byte(0), m.Memory(ProgramStart))
		assert.Equal(t, byte(0), m.Memory(MemorySize-1))
	})

	t.Run("empty", func(t *testing.T) {
		m := New()

		err := m.LoadBytes(nil)
		assert.True(t, errors.Is(err, ErrEmptyProgram))
		assert.Equal(t, uint16(ProgramStart), m.PC())
	})
}

func TestLoad(t *testing.T) {
	m := New()
	assert.NoError(t, m.Load(bytes.NewReader([]byte{0x60, 0x12})))
	assert.Equal(t, byte(0x60), m.Memory(ProgramStart))
	assert.Equal(t, byte(0x12), m.Memory(ProgramStart+1))

	err := New().Load(bytes.NewReader(make([]byte, MaxProgramSize+10)))
	assert.True(t, errors.Is(err, ErrProgramTooLarge))

	err = New().Load(bytes.NewReader(nil))
	assert.True(t, errors.Is(err, ErrEmptyProgram))
}

func TestFrame(t *testing.T) {
	var f Frame
	f[0][0] = 1
	f[31][63] = 1

	assert.True(t, f.Pixel(0, 0))
	assert.True(t, f.Pixel(-1, -1))
	assert.True(t, f.Pixel(64, 32))
	assert.False(t, f.Pixel(1, 0))
	assert.Equal(t, 2, f.Lit())

	s := f.String()
	assert.Equal(t, DisplayHeight*(DisplayWidth+1), len(s))
	assert.Equal(t, byte('#'), s[0])
	assert.Equal(t, byte('.'), s[1])
}
