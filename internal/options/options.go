// Package options contains the program options.
package options

import "time"

// Front end names.
const (
	FrontendSDL      = "sdl"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Frontends lists the supported front end names.
var Frontends = []string{FrontendSDL, FrontendTerminal, FrontendHeadless}

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"ROM file to run"`
	Output string `flag:"o" usage:"listing output file, default is stdout"`
	Wav    string `flag:"wav" usage:"record the tone into a WAV file"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend     string `flag:"f" usage:"front end: sdl, terminal, headless" default:"sdl"`
	TickRate     int    `flag:"hz" usage:"instructions per second, 0 runs unpaced" default:"500"`
	MaxTicks     int    `flag:"ticks" usage:"stop after this many ticks, 0 runs until quit"`
	Scale        int    `flag:"scale" usage:"window scale factor of the sdl front end" default:"10"`
	Seed         uint64 `flag:"seed" usage:"random number seed, 0 picks a time based seed"`
	LatchKeyWait bool   `flag:"latch-key-wait" usage:"never leave the key wait state once entered"`
	Debug        bool   `flag:"debug" usage:"enable debug logging and instruction trace"`
	StatsView    bool   `flag:"statsview" usage:"serve runtime statistics over HTTP"`
	Quiet        bool   `flag:"q" usage:"quiet mode"`
}

// ListingFlags contains program listing options.
type ListingFlags struct {
	List          bool `flag:"list" usage:"print a listing of the program instead of running it"`
	ZeroBytes     bool `flag:"z" usage:"include trailing zero bytes in the listing"`
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcode bytes in listing comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit offset addresses in listing comments"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	ListingFlags
}

// TickInterval returns the time between two ticks, 0 if ticks are unpaced.
func (p Program) TickInterval() time.Duration {
	if p.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(p.TickRate)
}
