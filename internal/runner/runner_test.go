package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/emu8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestRun_TickLimit(t *testing.T) {
	machine := &mockMachine{}
	frontend := &mockFrontend{}
	r := New(log.NewTestLogger(t), machine, frontend, Config{MaxTicks: 25, Debug: true})

	stats, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 25, stats.Ticks)
	assert.Len(t, machine.keys, 25)
	assert.True(t, machine.debug[0])
	assert.Equal(t, 0, stats.Frames)
}

func TestRun_RendersOnlyChangedFrames(t *testing.T) {
	var drawn chip8.Frame
	drawn[1][2] = 1

	machine := &mockMachine{outputs: []chip8.Output{
		{Changed: true, Frame: drawn},
		{},
		{},
		{Changed: true},
		{},
	}}
	frontend := &mockFrontend{}
	r := New(log.NewTestLogger(t), machine, frontend, Config{MaxTicks: 5})

	stats, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.Frames)
	assert.Len(t, frontend.frames, 2)
	assert.Equal(t, drawn, frontend.frames[0])
	assert.Equal(t, chip8.Frame{}, frontend.frames[1])
}

func TestRun_BeepEdges(t *testing.T) {
	machine := &mockMachine{outputs: []chip8.Output{
		{Beep: true},
		{Beep: true},
		{Beep: false},
		{Beep: true},
	}}
	frontend := &mockFrontend{}
	r := New(log.NewTestLogger(t), machine, frontend, Config{MaxTicks: 6})

	stats, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.Beeps)
	// the tone is stopped when the run ends
	assert.Equal(t, []bool{true, false, true, false}, frontend.beeps)
}

func TestRun_ForwardsKeys(t *testing.T) {
	var pressed chip8.Keys
	pressed[0xA] = true

	machine := &mockMachine{}
	frontend := &mockFrontend{keys: []chip8.Keys{pressed}}
	r := New(log.NewTestLogger(t), machine, frontend, Config{MaxTicks: 2})

	_, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, pressed, machine.keys[0])
	assert.Equal(t, chip8.Keys{}, machine.keys[1])
}

func TestRun_Quit(t *testing.T) {
	machine := &mockMachine{}
	frontend := &mockFrontend{quitAt: 4}
	r := New(log.NewTestLogger(t), machine, frontend, Config{})

	stats, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 3, stats.Ticks)
}

func TestRun_PollError(t *testing.T) {
	frontend := &mockFrontend{pollErr: errors.New("terminal closed")}
	r := New(log.NewTestLogger(t), &mockMachine{}, frontend, Config{})

	_, err := r.Run(context.Background())
	assert.ErrorContains(t, err, "terminal closed")
}

func TestRun_BeepError(t *testing.T) {
	machine := &mockMachine{outputs: []chip8.Output{{Beep: true}}}
	frontend := &mockFrontend{beepFail: true}
	r := New(log.NewTestLogger(t), machine, frontend, Config{MaxTicks: 3})

	stats, err := r.Run(context.Background())
	assert.ErrorContains(t, err, "audio device lost")
	assert.Equal(t, 1, stats.Ticks)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(log.NewTestLogger(t), &mockMachine{}, &mockFrontend{}, Config{})
	stats, err := r.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, stats.Ticks)
}

func TestRun_Paced(t *testing.T) {
	r := New(log.NewTestLogger(t), &mockMachine{}, &mockFrontend{},
		Config{Interval: time.Millisecond, MaxTicks: 5})

	start := time.Now()
	stats, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 5, stats.Ticks)
	assert.True(t, time.Since(start) >= 4*time.Millisecond)
}

func TestRun_Machine(t *testing.T) {
	m := chip8.New()
	assert.NoError(t, m.LoadBytes([]byte{
		0x00, 0xE0, // cls
		0x60, 0x12, // ld V0, $12
		0x12, 0x00, // jp $200
	}))
	frontend := &mockFrontend{}
	r := New(log.NewTestLogger(t), m, frontend, Config{MaxTicks: 3})

	stats, err := r.Run(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.Frames)
	assert.Equal(t, byte(0x12), m.Register(0))
	assert.Equal(t, uint16(0x200), m.PC())
}
