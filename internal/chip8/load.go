package chip8

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrEmptyProgram is returned when a program source contains no bytes.
	ErrEmptyProgram = errors.New("program is empty")
	// ErrProgramTooLarge is returned when a program does not fit into the program space.
	ErrProgramTooLarge = errors.New("program too large")
)

// ValidateProgram checks that a program can be installed into memory.
func ValidateProgram(data []byte) error {
	switch {
	case len(data) == 0:
		return ErrEmptyProgram
	case len(data) > MaxProgramSize:
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrProgramTooLarge, len(data), MaxProgramSize)
	}
	return nil
}

// Load reads a program from the reader and installs it at ProgramStart.
// Memory is left untouched if reading fails or the program is rejected.
func (m *Machine) Load(r io.Reader) error {
	data, err := io.ReadAll(io.LimitReader(r, MaxProgramSize+1))
	if err != nil {
		return fmt.Errorf("reading program: %w", err)
	}
	return m.LoadBytes(data)
}

// LoadBytes installs the program bytes at ProgramStart.
func (m *Machine) LoadBytes(data []byte) error {
	if err := ValidateProgram(data); err != nil {
		return err
	}
	// copy stops at the end of memory, anything beyond it is discarded
	copy(m.memory[ProgramStart:], data)
	return nil
}
