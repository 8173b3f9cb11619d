// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/emu8/internal/options"
	"github.com/retroenv/emu8/internal/statsview"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the command line usage.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: emu8 [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if !slices.Contains(options.Frontends, opts.Frontend) {
		return fmt.Errorf("unsupported front end: %s. Valid options: %s",
			opts.Frontend, strings.Join(options.Frontends, ", "))
	}

	switch {
	case opts.TickRate < 0:
		return fmt.Errorf("invalid tick rate %d, must not be negative", opts.TickRate)
	case opts.MaxTicks < 0:
		return fmt.Errorf("invalid tick limit %d, must not be negative", opts.MaxTicks)
	case opts.Scale < 1:
		return fmt.Errorf("invalid scale %d, must be at least 1", opts.Scale)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Output, "o", "", "name of the listing output file, default is stdout")
	flags.StringVar(&opts.Wav, "wav", "", "record the tone into the given WAV file")
	flags.StringVar(&opts.Frontend, "f", options.FrontendSDL, "front end to use (sdl/terminal/headless)")
	flags.IntVar(&opts.TickRate, "hz", 500, "instructions executed per second, 0 runs as fast as possible")
	flags.IntVar(&opts.MaxTicks, "ticks", 0, "stop after the given number of ticks, 0 runs until quit")
	flags.IntVar(&opts.Scale, "scale", 10, "window scale factor for the sdl front end")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random number generator seed, 0 uses a time based seed")
	flags.BoolVar(&opts.LatchKeyWait, "latch-key-wait", false, "never leave the key wait state once entered")
	flags.BoolVar(&opts.List, "list", false, "print a program listing instead of running the ROM")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "include the trailing zero bytes in the listing")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in listing comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output offsets in listing comments")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging and the per instruction trace")
	flags.BoolVar(&opts.StatsView, "statsview", false, "serve runtime statistics at "+statsview.URL(statsview.Address))
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
