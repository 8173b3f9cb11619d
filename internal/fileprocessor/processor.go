// Package fileprocessor handles ROM loading and runs or lists the program.
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/emu8/internal/chip8"
	"github.com/retroenv/emu8/internal/config"
	"github.com/retroenv/emu8/internal/detector"
	"github.com/retroenv/emu8/internal/frontend/headless"
	"github.com/retroenv/emu8/internal/frontend/sdl"
	"github.com/retroenv/emu8/internal/frontend/terminal"
	"github.com/retroenv/emu8/internal/listing"
	"github.com/retroenv/emu8/internal/loader"
	"github.com/retroenv/emu8/internal/options"
	"github.com/retroenv/emu8/internal/recorder"
	"github.com/retroenv/emu8/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupportedFormat is returned for ROMs of other systems.
var ErrUnsupportedFormat = errors.New("ROM is not a CHIP-8 program")

// frontendFactory creates the front end and a function releasing it.
type frontendFactory func(logger *log.Logger, opts options.Program) (runner.Frontend, func(), error)

var frontendFactories = map[string]frontendFactory{
	options.FrontendSDL:      openSDL,
	options.FrontendTerminal: openTerminal,
	options.FrontendHeadless: openHeadless,
}

// ProcessFile loads the ROM file and either writes its listing or runs it.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	program, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	switch detector.New(logger).Detect(opts.Input, program) {
	case detector.NES:
		return fmt.Errorf("loading ROM: %w", ErrUnsupportedFormat)
	case detector.Unknown:
		logger.Warn("Unknown ROM file extension, assuming a CHIP-8 program",
			log.String("file", opts.Input))
	}

	if opts.List {
		return writeListing(opts, program)
	}
	return runProgram(ctx, logger, opts, program)
}

func writeListing(opts options.Program, program []byte) error {
	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
			_ = closer.Close()
		}
	}()

	listingOpts := listing.Options{
		ZeroBytes:      opts.ZeroBytes,
		HexComments:    !opts.NoHexComments,
		OffsetComments: !opts.NoOffsets,
	}
	if err := listing.Write(writer, program, listingOpts); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// runProgram runs the program on a new machine with the front end selected
// in the options.
func runProgram(ctx context.Context, logger *log.Logger, opts options.Program, program []byte) error {
	machine := chip8.New(config.MachineOptions(opts, logger)...)
	if err := machine.LoadBytes(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	factory, ok := frontendFactories[opts.Frontend]
	if !ok {
		return fmt.Errorf("unsupported front end %s", opts.Frontend)
	}
	frontend, closeFrontend, err := factory(logger, opts)
	if err != nil {
		return fmt.Errorf("opening %s front end: %w", opts.Frontend, err)
	}
	defer closeFrontend()

	var ticker runner.Machine = machine
	if opts.Wav != "" {
		rec, closeRecorder, err := openRecorder(logger, machine, opts)
		if err != nil {
			return err
		}
		defer closeRecorder()
		ticker = rec
	}

	logger.Debug("Running program",
		log.String("file", opts.Input),
		log.Int("size", len(program)),
		log.String("frontend", opts.Frontend),
		log.Int("hz", opts.TickRate))

	r := runner.New(logger, ticker, frontend, runner.Config{
		Interval: opts.TickInterval(),
		MaxTicks: opts.MaxTicks,
		Debug:    opts.Debug,
	})
	stats, err := r.Run(ctx)
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	logger.Info("Program stopped",
		log.Int("ticks", stats.Ticks),
		log.Int("frames", stats.Frames))
	return nil
}

// openRecorder wraps the machine into a recorder writing the WAV file.
func openRecorder(logger *log.Logger, machine runner.Machine, opts options.Program) (runner.Machine, func(), error) {
	file, err := os.Create(opts.Wav)
	if err != nil {
		return nil, nil, fmt.Errorf("creating wav file %s: %w", opts.Wav, err)
	}

	rec := recorder.New(machine, file, opts.TickRate)
	closeRecorder := func() {
		if err := rec.Close(); err != nil {
			logger.Error("Finishing tone recording failed", log.Err(err))
		}
		if err := file.Close(); err != nil {
			logger.Error("Closing wav file failed", log.Err(err))
		}
	}
	return rec, closeRecorder, nil
}

func openSDL(logger *log.Logger, opts options.Program) (runner.Frontend, func(), error) {
	f, err := sdl.Open(logger, sdl.Config{
		Scale: opts.Scale,
		Title: filepath.Base(opts.Input),
	})
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func openTerminal(logger *log.Logger, opts options.Program) (runner.Frontend, func(), error) {
	f, err := terminal.Open(logger, terminal.WithHoldTicks(holdTicks(opts)))
	if err != nil {
		return nil, nil, err
	}
	closeTerminal := func() {
		if err := f.Close(); err != nil {
			logger.Error("Restoring terminal failed", log.Err(err))
		}
	}
	return f, closeTerminal, nil
}

// holdTicks returns the number of ticks covering a tenth of a second.
func holdTicks(opts options.Program) int {
	if opts.TickRate <= 0 {
		return terminal.DefaultHoldTicks
	}
	return max(1, opts.TickRate/10)
}

func openHeadless(logger *log.Logger, _ options.Program) (runner.Frontend, func(), error) {
	f := headless.New()
	closeHeadless := func() {
		frame := f.Frame()
		logger.Debug("Headless run finished",
			log.Int("frames", f.Frames()),
			log.Int("lit", frame.Lit()),
			log.Bool("beeping", f.Beeping()),
			log.Strings("display", displayRows(&frame)))
	}
	return f, closeHeadless, nil
}

// displayRows returns the text rendering of the frame split into rows.
func displayRows(frame *chip8.Frame) []string {
	return strings.Split(strings.TrimSuffix(frame.String(), "\n"), "\n")
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("emu8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
