// Package tone generates the square wave played while the sound timer is
// active.
package tone

const (
	// SampleRate is the default output sample rate in Hz.
	SampleRate = 44100
	// Frequency is the default pitch of the tone in Hz.
	Frequency = 440

	// Silence is the unsigned 8 bit sample of the zero level.
	Silence   = 0x80
	levelHigh = 0xA0
	levelLow  = 0x60
)

// Generator produces an unsigned 8 bit square wave.
type Generator struct {
	period int
	phase  int
	buf    []byte
}

// New returns a generator for the given sample rate and frequency.
func New(sampleRate, frequency int) *Generator {
	return &Generator{
		period: max(2, sampleRate/frequency),
	}
}

// Reset restarts the wave at the beginning of a period.
func (g *Generator) Reset() {
	g.phase = 0
}

// Next returns the following n samples. The returned slice is reused by the
// next call.
func (g *Generator) Next(n int) []byte {
	if cap(g.buf) < n {
		g.buf = make([]byte, n)
	}
	g.buf = g.buf[:n]

	for i := range g.buf {
		if g.phase < g.period/2 {
			g.buf[i] = levelHigh
		} else {
			g.buf[i] = levelLow
		}
		g.phase = (g.phase + 1) % g.period
	}
	return g.buf
}
