// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/emu8/internal/chip8"
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a raw CHIP-8 ROM file. The whole file is the program, it is
// rejected if it is empty or does not fit into the program space.
func (l *Loader) Load(fileName string) ([]byte, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", fileName, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM %s: %w", fileName, err)
	}
	return data, nil
}

// LoadFromReader reads a ROM from the reader. At most one byte more than the
// program space is read to detect oversized programs.
func (l *Loader) LoadFromReader(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading ROM data: %w", err)
	}
	if err := chip8.ValidateProgram(data); err != nil {
		return nil, err
	}
	return data, nil
}
