package runner

import (
	"errors"

	"github.com/retroenv/emu8/internal/chip8"
)

// mockFrontend records output and replays scripted key states.
type mockFrontend struct {
	keys     []chip8.Keys // returned in order, then all released
	quitAt   int          // poll number returning ErrQuit, 0 never
	pollErr  error
	polls    int
	frames   []chip8.Frame
	beeps    []bool
	beepFail bool
}

func (m *mockFrontend) Poll() (chip8.Keys, error) {
	m.polls++
	if m.quitAt > 0 && m.polls >= m.quitAt {
		return chip8.Keys{}, ErrQuit
	}
	if m.pollErr != nil {
		return chip8.Keys{}, m.pollErr
	}
	if len(m.keys) == 0 {
		return chip8.Keys{}, nil
	}
	keys := m.keys[0]
	m.keys = m.keys[1:]
	return keys, nil
}

func (m *mockFrontend) Render(frame *chip8.Frame) error {
	m.frames = append(m.frames, *frame)
	return nil
}

func (m *mockFrontend) Beep(on bool) error {
	if m.beepFail {
		return errors.New("audio device lost")
	}
	m.beeps = append(m.beeps, on)
	return nil
}

// mockMachine returns scripted outputs, repeating the last one.
type mockMachine struct {
	outputs []chip8.Output
	keys    []chip8.Keys
	debug   []bool
}

func (m *mockMachine) Tick(keys chip8.Keys, debug bool) chip8.Output {
	m.keys = append(m.keys, keys)
	m.debug = append(m.debug, debug)
	if len(m.outputs) == 0 {
		return chip8.Output{}
	}
	out := m.outputs[0]
	if len(m.outputs) > 1 {
		m.outputs = m.outputs[1:]
	}
	return out
}
