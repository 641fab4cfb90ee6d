package gfx

import (
	"fmt"
	"log/slog"
)

// LoopState is the state of the frame loop
type LoopState int

const (
	Running LoopState = iota
	Exiting
)

func (s LoopState) String() string {
	if s == Exiting {
		return "exiting"
	}
	return "running"
}

// Loop renders frames until the window is closed or Escape is pressed
type Loop struct {
	Window  Window
	Device  Device
	Factory Factory

	Pipeline PipelineState
	Slice    Slice
	Data     PipeData

	ClearColor Color
	Logger     *slog.Logger

	state  LoopState
	frames int
}

// NewLoop returns a loop drawing sprite into the context's window
func NewLoop(ctx *Context, sprite *Sprite, log *slog.Logger) *Loop {
	return &Loop{
		Window:     ctx.Window,
		Device:     ctx.Device,
		Factory:    ctx.Factory,
		Pipeline:   sprite.Pipeline,
		Slice:      sprite.Slice,
		Data:       sprite.Data,
		ClearColor: ClearColor,
		Logger:     log,
	}
}

// State returns the current loop state
func (l *Loop) State() LoopState {
	return l.state
}

// Frames returns the number of frames presented
func (l *Loop) Frames() int {
	return l.frames
}

func (l *Loop) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

// Step runs a single iteration. Events are polled before anything is drawn,
// an exit request ends the step without rendering. It returns false once
// the loop is exiting.
func (l *Loop) Step() (bool, error) {
	if l.state == Exiting {
		return false, nil
	}

	enc := l.Factory.CreateCommandBuffer()

	for _, ev := range l.Window.PollEvents() {
		if ev.RequestsExit() {
			l.state = Exiting
			l.logger().Debug("exit requested", "event", ev.String(), "frames", l.frames)
			return false, nil
		}
	}

	enc.Clear(l.Data.Out, l.ClearColor)
	enc.Draw(l.Slice, l.Pipeline, l.Data)

	if err := enc.Flush(l.Device); err != nil {
		return false, fmt.Errorf("submitting frame %d: %w", l.frames, err)
	}
	if err := l.Window.SwapBuffers(); err != nil {
		return false, fmt.Errorf("presenting frame %d: %w", l.frames, err)
	}
	l.Device.Cleanup()

	l.frames++
	return true, nil
}

// Run steps until the loop exits or a frame fails
func (l *Loop) Run() error {
	for {
		ok, err := l.Step()
		if err != nil {
			return err
		}
		if !ok {
			l.logger().Info("frame loop finished", "frames", l.frames)
			return nil
		}
	}
}
