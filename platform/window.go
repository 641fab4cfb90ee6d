// Package platform owns the GLFW window shared by the rendering backends.
package platform

import (
	"fmt"
	"log/slog"

	gfx "github.com/jamiltron/gfx-sprite-2d"
	"github.com/vulkan-go/glfw/v3.3/glfw"
)

// API selects the client API the window is created for
type API int

const (
	OpenGL API = iota
	// Vulkan creates a window without a GL context
	Vulkan
)

// Window is a fixed size GLFW window which turns key and close callbacks
// into gfx events.
type Window struct {
	GLFW *glfw.Window

	log    *slog.Logger
	events []gfx.Event
}

// Open initializes GLFW and creates a window configured for api. GLFW must
// only be used from the main thread, callers are expected to have locked it.
func Open(cfg gfx.Config, api API, log *slog.Logger) (*Window, error) {
	if log == nil {
		log = slog.Default()
	}

	err := glfw.Init()
	if err != nil {
		return nil, fmt.Errorf("unable to initialize glfw: %w", err)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.False)

	switch api {
	case OpenGL:
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
		glfw.WindowHint(glfw.ContextVersionMajor, cfg.APIVersion.Major)
		glfw.WindowHint(glfw.ContextVersionMinor, cfg.APIVersion.Minor)
		if cfg.CoreProfile {
			glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
			glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
		}
		glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
		glfw.WindowHint(glfw.SRGBCapable, glfw.True)
		if cfg.Debug {
			glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
		}
	case Vulkan:
		if !glfw.VulkanSupported() {
			glfw.Terminate()
			return nil, fmt.Errorf("vulkan is unsupported")
		}
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	}

	gw, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("unable to create window: %w", err)
	}

	w := &Window{GLFW: gw, log: log}
	gw.SetKeyCallback(w.keyChange)
	gw.SetCloseCallback(w.closeRequested)

	fw, fh := gw.GetFramebufferSize()
	log.Debug("window created", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height,
		"framebuffer", fmt.Sprintf("%dx%d", fw, fh))

	return w, nil
}

func (w *Window) keyChange(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	w.events = append(w.events, gfx.KeyboardInput(translateKey(key), translateAction(action)))
}

func (w *Window) closeRequested(_ *glfw.Window) {
	w.events = append(w.events, gfx.Closed())
}

// PollEvents processes pending window system events and returns the ones
// received since the previous call.
func (w *Window) PollEvents() []gfx.Event {
	glfw.PollEvents()
	return w.drain()
}

func (w *Window) drain() []gfx.Event {
	if len(w.events) == 0 {
		return nil
	}
	ev := w.events
	w.events = nil
	return ev
}

// FramebufferSize returns the size of the window's framebuffer in pixels
func (w *Window) FramebufferSize() (int, int) {
	return w.GLFW.GetFramebufferSize()
}

// Destroy closes the window and terminates GLFW
func (w *Window) Destroy() {
	if w.GLFW != nil {
		w.GLFW.Destroy()
		w.GLFW = nil
	}
	glfw.Terminate()
}

func translateKey(key glfw.Key) gfx.Key {
	switch key {
	case glfw.KeyEscape:
		return gfx.KeyEscape
	case glfw.KeyUnknown:
		return gfx.KeyUnknown
	}
	return gfx.KeyOther
}

func translateAction(action glfw.Action) gfx.Action {
	switch action {
	case glfw.Press:
		return gfx.Press
	case glfw.Repeat:
		return gfx.Repeat
	}
	return gfx.Release
}
