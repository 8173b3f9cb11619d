// Package runner drives the interpreter core: it paces ticks, feeds keypad
// state from a front end and forwards display and sound output to it.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/emu8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// ErrQuit is returned by a front end when the user asked to quit.
var ErrQuit = errors.New("quit requested")

// Machine is the interpreter advanced by the runner.
type Machine interface {
	Tick(keys chip8.Keys, debug bool) chip8.Output
}

// Frontend samples input and presents output of the machine.
type Frontend interface {
	// Poll returns the keypad state for the next tick, or ErrQuit.
	Poll() (chip8.Keys, error)
	// Render presents a changed display.
	Render(frame *chip8.Frame) error
	// Beep starts or stops the tone.
	Beep(on bool) error
}

// Config controls the pacing of the run loop.
type Config struct {
	Interval time.Duration // time between ticks, 0 runs unpaced
	MaxTicks int           // stop after this many ticks, 0 runs until quit
	Debug    bool          // pass the trace flag to every tick
}

// Stats summarizes a run.
type Stats struct {
	Ticks  int // ticks executed
	Frames int // frames forwarded to the renderer
	Beeps  int // number of times the tone was started
}

// Runner runs a machine against a front end.
type Runner struct {
	logger   *log.Logger
	machine  Machine
	frontend Frontend
	cfg      Config

	beeping bool
	stats   Stats
}

// New returns a new runner.
func New(logger *log.Logger, machine Machine, frontend Frontend, cfg Config) *Runner {
	return &Runner{
		logger:   logger,
		machine:  machine,
		frontend: frontend,
		cfg:      cfg,
	}
}

// Run executes ticks until the context is canceled, the front end quits or
// the tick limit is reached. Quitting and reaching the limit are not errors.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	var ticks <-chan time.Time
	if r.cfg.Interval > 0 {
		ticker := time.NewTicker(r.cfg.Interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	err := r.loop(ctx, ticks)
	if r.beeping {
		if beepErr := r.frontend.Beep(false); beepErr != nil && err == nil {
			err = fmt.Errorf("stopping tone: %w", beepErr)
		}
	}

	r.logger.Debug("Run finished",
		log.Int("ticks", r.stats.Ticks),
		log.Int("frames", r.stats.Frames),
		log.Int("beeps", r.stats.Beeps))
	return r.stats, err
}

func (r *Runner) loop(ctx context.Context, ticks <-chan time.Time) error {
	for r.cfg.MaxTicks == 0 || r.stats.Ticks < r.cfg.MaxTicks {
		if err := r.wait(ctx, ticks); err != nil {
			return err
		}

		err := r.tick()
		if errors.Is(err, ErrQuit) {
			r.logger.Debug("Quit requested by front end")
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// wait blocks until the next tick is due. Unpaced runs only check for
// cancellation.
func (r *Runner) wait(ctx context.Context, ticks <-chan time.Time) error {
	if ticks == nil {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running: %w", err)
		}
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("running: %w", ctx.Err())
	case <-ticks:
		return nil
	}
}

func (r *Runner) tick() error {
	keys, err := r.frontend.Poll()
	if err != nil {
		if errors.Is(err, ErrQuit) {
			return err
		}
		return fmt.Errorf("polling input: %w", err)
	}

	out := r.machine.Tick(keys, r.cfg.Debug)
	r.stats.Ticks++

	if out.Changed {
		if err := r.frontend.Render(&out.Frame); err != nil {
			return fmt.Errorf("rendering frame: %w", err)
		}
		r.stats.Frames++
	}

	if out.Beep != r.beeping {
		if err := r.frontend.Beep(out.Beep); err != nil {
			return fmt.Errorf("switching tone: %w", err)
		}
		r.beeping = out.Beep
		if out.Beep {
			r.stats.Beeps++
		}
	}
	return nil
}
