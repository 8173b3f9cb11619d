// Package sdl provides a front end rendering the display into an SDL window
// with keyboard input and a square wave tone.
//
// SDL has to be driven from the OS main thread, all calls into it are
// marshalled with mainthread.Call. The program has to be started through
// mainthread.Run.
package sdl

import (
	"fmt"

	"github.com/faiface/mainthread"
	"github.com/retroenv/emu8/internal/chip8"
	"github.com/retroenv/emu8/internal/runner"
	"github.com/retroenv/emu8/internal/tone"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	titlePrefix  = "Emu 8"
	audioSamples = 1024

	// queueChunk holds 50ms of samples, refilled once less than two chunks
	// are queued.
	queueChunk     = tone.SampleRate / 20
	queueThreshold = 2 * queueChunk
)

// Config controls the window of the front end.
type Config struct {
	Scale int    // size of a display cell in window pixels
	Title string // shown after the title prefix, usually the ROM name
}

// Frontend is an SDL window and audio device.
type Frontend struct {
	logger *log.Logger
	scale  int32

	window   *sdl.Window
	renderer *sdl.Renderer
	audio    sdl.AudioDeviceID
	tone     *tone.Generator

	scancodes [chip8.KeyCount]sdl.Scancode
	rects     []sdl.Rect
	beeping   bool
}

// Open initializes SDL and creates the window and the audio device. A
// missing audio device is logged and leaves the front end silent.
func Open(logger *log.Logger, cfg Config) (*Frontend, error) {
	if cfg.Scale < 1 {
		return nil, fmt.Errorf("invalid scale %d", cfg.Scale)
	}

	f := &Frontend{
		logger:    logger,
		scale:     int32(cfg.Scale),
		scancodes: scancodeTable(),
		rects:     make([]sdl.Rect, 0, chip8.DisplayWidth*chip8.DisplayHeight),
		tone:      tone.New(tone.SampleRate, tone.Frequency),
	}

	title := titlePrefix
	if cfg.Title != "" {
		title = fmt.Sprintf("%s - %s", titlePrefix, cfg.Title)
	}

	if err := mainthread.CallErr(func() error { return f.open(title) }); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func (f *Frontend) open(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("initializing SDL: %w", err)
	}

	var err error
	f.window, err = sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		chip8.DisplayWidth*f.scale, chip8.DisplayHeight*f.scale,
		sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}

	f.renderer, err = sdl.CreateRenderer(f.window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	spec := &sdl.AudioSpec{
		Freq:     tone.SampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  audioSamples,
	}
	f.audio, err = sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		f.logger.Warn("Audio device not available, sound is disabled", log.Err(err))
		f.audio = 0
	}

	return drawFrame(f.renderer, nil)
}

// Close releases all SDL resources.
func (f *Frontend) Close() {
	mainthread.Call(func() {
		if f.audio != 0 {
			sdl.CloseAudioDevice(f.audio)
		}
		if f.renderer != nil {
			_ = f.renderer.Destroy()
		}
		if f.window != nil {
			_ = f.window.Destroy()
		}
		sdl.Quit()
	})
}

// Poll processes pending window events and samples the keyboard.
func (f *Frontend) Poll() (chip8.Keys, error) {
	var keys chip8.Keys
	err := mainthread.CallErr(func() error {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return runner.ErrQuit
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
					return runner.ErrQuit
				}
			}
		}

		state := sdl.GetKeyboardState()
		for key, code := range f.scancodes {
			keys[key] = int(code) < len(state) && state[code] != 0
		}

		if f.beeping {
			return f.feedTone()
		}
		return nil
	})
	return keys, err
}

// Render draws all lit cells of the frame.
func (f *Frontend) Render(frame *chip8.Frame) error {
	f.rects = litRects(f.rects[:0], frame, f.scale)

	return mainthread.CallErr(func() error {
		return drawFrame(f.renderer, f.rects)
	})
}

// Beep starts or stops the tone.
func (f *Frontend) Beep(on bool) error {
	f.beeping = on
	if f.audio == 0 {
		return nil
	}

	return mainthread.CallErr(func() error {
		if !on {
			sdl.PauseAudioDevice(f.audio, true)
			sdl.ClearQueuedAudio(f.audio)
			return nil
		}

		f.tone.Reset()
		if err := f.feedTone(); err != nil {
			return err
		}
		sdl.PauseAudioDevice(f.audio, false)
		return nil
	})
}

// feedTone keeps enough samples queued to play until the next poll.
func (f *Frontend) feedTone() error {
	if f.audio == 0 {
		return nil
	}
	if sdl.GetQueuedAudioSize(f.audio) >= queueThreshold {
		return nil
	}
	if err := sdl.QueueAudio(f.audio, f.tone.Next(queueChunk)); err != nil {
		return fmt.Errorf("queueing tone: %w", err)
	}
	return nil
}
