// Package terminal provides a front end that draws the display into a text
// terminal and reads the keypad from raw standard input.
package terminal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/retroenv/emu8/internal/chip8"
	"github.com/retroenv/emu8/internal/keymap"
	"github.com/retroenv/emu8/internal/runner"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// DefaultHoldTicks is the number of ticks a key stays pressed after its last
// key-down byte. Terminals do not report key releases.
const DefaultHoldTicks = 50

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b

	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	resetStyle  = "\x1b[0m"
	bell        = "\a"
)

// cells maps the upper and lower pixel of a text cell to its character.
var cells = [2][2]string{
	{" ", "▄"},
	{"▀", "█"},
}

// Frontend renders frames as half-block characters, two display rows per
// text line.
type Frontend struct {
	logger    *log.Logger
	out       io.Writer
	holdTicks int

	input  chan []byte
	errs   chan error
	done   chan struct{}
	closer sync.Once

	hold    [chip8.KeyCount]int
	buf     bytes.Buffer
	restore func() error
}

// Option configures the terminal front end.
type Option func(*Frontend)

// WithHoldTicks sets the number of ticks a key stays pressed.
func WithHoldTicks(ticks int) Option {
	return func(f *Frontend) {
		f.holdTicks = ticks
	}
}

// New returns a front end reading key bytes from in and drawing to out.
// The terminal mode is not changed, see Open for that.
func New(logger *log.Logger, in io.Reader, out io.Writer, opts ...Option) *Frontend {
	f := &Frontend{
		logger:    logger,
		out:       out,
		holdTicks: DefaultHoldTicks,
		input:     make(chan []byte, 64),
		errs:      make(chan error, 1),
		done:      make(chan struct{}),
		restore:   func() error { return nil },
	}
	for _, opt := range opts {
		opt(f)
	}

	go f.read(in)
	return f
}

// Open switches standard input into raw mode and returns a front end using
// the standard streams. Close restores the previous terminal state.
func Open(logger *log.Logger, opts ...Option) (*Frontend, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("standard input is not a terminal")
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enabling raw mode: %w", err)
	}

	if width, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		if width < chip8.DisplayWidth || height < chip8.DisplayHeight/2 {
			logger.Warn("Terminal is smaller than the display",
				log.Int("width", width),
				log.Int("height", height))
		}
	}

	f := New(logger, os.Stdin, os.Stdout, opts...)
	f.restore = func() error {
		return term.Restore(fd, state)
	}

	if _, err := io.WriteString(f.out, hideCursor+clearScreen); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("preparing terminal: %w", err)
	}
	return f, nil
}

// Close stops reading input, shows the cursor and restores the terminal.
func (f *Frontend) Close() error {
	var err error
	f.closer.Do(func() {
		close(f.done)
		if _, werr := io.WriteString(f.out, resetStyle+showCursor+"\r\n"); werr != nil {
			err = fmt.Errorf("resetting terminal: %w", werr)
		}
		if rerr := f.restore(); rerr != nil {
			err = fmt.Errorf("restoring terminal mode: %w", rerr)
		}
	})
	return err
}

func (f *Frontend) read(in io.Reader) {
	buf := make([]byte, 32)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			select {
			case f.input <- chunk:
			case <-f.done:
				return
			}
		}
		if err == nil {
			continue
		}
		if !errors.Is(err, io.EOF) {
			select {
			case f.errs <- err:
			default:
			}
		}
		return
	}
}

// Poll returns the keypad state for the next tick.
func (f *Frontend) Poll() (chip8.Keys, error) {
	select {
	case err := <-f.errs:
		return chip8.Keys{}, fmt.Errorf("reading input: %w", err)
	default:
	}

	for i := range f.hold {
		if f.hold[i] > 0 {
			f.hold[i]--
		}
	}

drain:
	for {
		select {
		case chunk := <-f.input:
			if err := f.handleInput(chunk); err != nil {
				return chip8.Keys{}, err
			}
		default:
			break drain
		}
	}

	var keys chip8.Keys
	for i, ticks := range f.hold {
		keys[i] = ticks > 0
	}
	return keys, nil
}

func (f *Frontend) handleInput(chunk []byte) error {
	// a lone escape is the key itself, longer chunks are escape sequences
	if chunk[0] == keyEscape {
		if len(chunk) == 1 {
			return runner.ErrQuit
		}
		return nil
	}

	for _, b := range chunk {
		if b == keyCtrlC {
			return runner.ErrQuit
		}
		if key, ok := keymap.Key(rune(b)); ok {
			f.hold[key] = f.holdTicks
		}
	}
	return nil
}

// Render draws the frame at the top left of the terminal.
func (f *Frontend) Render(frame *chip8.Frame) error {
	f.buf.Reset()
	f.buf.WriteString(cursorHome)

	for y := 0; y < chip8.DisplayHeight; y += 2 {
		for x := range chip8.DisplayWidth {
			upper := frame[y][x] & 1
			lower := frame[y+1][x] & 1
			f.buf.WriteString(cells[upper][lower])
		}
		f.buf.WriteString("\r\n")
	}

	if _, err := f.out.Write(f.buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Beep rings the terminal bell when the tone starts.
func (f *Frontend) Beep(on bool) error {
	if !on {
		return nil
	}
	if _, err := io.WriteString(f.out, bell); err != nil {
		return fmt.Errorf("writing bell: %w", err)
	}
	return nil
}
