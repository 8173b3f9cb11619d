// Package config turns program options into configured emulator components.
package config

import (
	"math/rand/v2"

	"github.com/retroenv/emu8/internal/chip8"
	"github.com/retroenv/emu8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(opts options.Program) *log.Logger {
	cfg := log.DefaultConfig()
	if opts.Debug {
		cfg.Level = log.DebugLevel
	} else if opts.Quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// MachineOptions returns the interpreter options selected on the command line.
func MachineOptions(opts options.Program, logger *log.Logger) []chip8.Option {
	machineOpts := []chip8.Option{
		chip8.WithLogger(logger),
		chip8.WithQuirks(chip8.Quirks{
			LatchKeyWait: opts.LatchKeyWait,
		}),
	}

	if opts.Seed != 0 {
		random := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
		machineOpts = append(machineOpts, chip8.WithRandom(random))
	}
	return machineOpts
}
