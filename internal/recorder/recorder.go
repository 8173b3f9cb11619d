// Package recorder wraps a machine and records its tone into a WAV file.
package recorder

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/retroenv/emu8/internal/chip8"
	"github.com/retroenv/emu8/internal/runner"
	"github.com/retroenv/emu8/internal/tone"
)

const (
	bitDepth      = 16
	channels      = 1
	formatPCM     = 1
	defaultTickHz = 500
)

var _ runner.Machine = &Recorder{}

// Recorder passes every tick to the wrapped machine and appends the audio of
// the tick to the WAV stream, the tone if the sound timer is running after
// the tick and silence otherwise.
type Recorder struct {
	machine runner.Machine
	encoder *wav.Encoder
	tone    *tone.Generator

	samplesPerTick int
	beeping        bool
	buf            *audio.IntBuffer
	err            error
}

// New returns a recorder writing to w. The tick rate determines the
// duration of a tick, unpaced runs are recorded at the default rate.
func New(machine runner.Machine, w io.WriteSeeker, tickRate int) *Recorder {
	if tickRate <= 0 {
		tickRate = defaultTickHz
	}
	samplesPerTick := max(1, tone.SampleRate/tickRate)

	return &Recorder{
		machine:        machine,
		encoder:        wav.NewEncoder(w, tone.SampleRate, bitDepth, channels, formatPCM),
		tone:           tone.New(tone.SampleRate, tone.Frequency),
		samplesPerTick: samplesPerTick,
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: tone.SampleRate},
			Data:           make([]int, samplesPerTick),
			SourceBitDepth: bitDepth,
		},
	}
}

// Tick advances the wrapped machine and records the audio of the tick.
// The first write error stops the recording and is returned by Close.
func (r *Recorder) Tick(keys chip8.Keys, debug bool) chip8.Output {
	out := r.machine.Tick(keys, debug)

	if out.Beep && !r.beeping {
		r.tone.Reset()
	}
	r.beeping = out.Beep

	if r.err == nil {
		r.err = r.record()
	}
	return out
}

// Close finishes the WAV stream. The underlying writer is not closed.
func (r *Recorder) Close() error {
	if r.err != nil {
		return r.err
	}
	if err := r.encoder.Close(); err != nil {
		return fmt.Errorf("finishing wav stream: %w", err)
	}
	return nil
}

func (r *Recorder) record() error {
	if r.beeping {
		for i, sample := range r.tone.Next(r.samplesPerTick) {
			r.buf.Data[i] = toSigned16(sample)
		}
	} else {
		clear(r.buf.Data)
	}

	if err := r.encoder.Write(r.buf); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	return nil
}

// toSigned16 converts an unsigned 8 bit sample to signed 16 bit.
func toSigned16(sample byte) int {
	return (int(sample) - tone.Silence) << 8
}
