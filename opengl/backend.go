// Package opengl renders through an OpenGL 3.3 core context. Importing it
// registers the "gl" backend.
package opengl

import (
	"log/slog"

	"github.com/go-gl/gl/v3.3-core/gl"
	gfx "github.com/jamiltron/gfx-sprite-2d"
	"github.com/jamiltron/gfx-sprite-2d/platform"
	"github.com/pkg/errors"
	"github.com/vulkan-go/glfw/v3.3/glfw"
)

// Name is the name the backend is registered under
const Name = "gl"

func init() {
	gfx.Register(backend{})
}

type backend struct{}

func (backend) Name() string {
	return Name
}

func (backend) ShaderLanguage() gfx.ShaderLanguage {
	return gfx.GLSL330
}

type window struct {
	*platform.Window
}

// SwapBuffers presents the back buffer
func (w window) SwapBuffers() error {
	w.GLFW.SwapBuffers()
	return nil
}

// Init opens the window, makes its context current and returns a gfx.Context
// whose target is the default framebuffer.
func (backend) Init(cfg gfx.Config, log *slog.Logger) (*gfx.Context, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pw, err := platform.Open(cfg, platform.OpenGL, log)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	pw.GLFW.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		pw.Destroy()
		return nil, errors.Wrap(err, "unable to initialize opengl")
	}

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	gl.Enable(gl.FRAMEBUFFER_SRGB)

	log.Info("opengl context ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"vendor", gl.GoStr(gl.GetString(gl.VENDOR)),
		"glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))

	dev := newDevice(log)

	fw, fh := pw.FramebufferSize()
	screen := gfx.RenderTargetView{Handle: dev.targets.Insert(target{fbo: 0, width: int32(fw), height: int32(fh)})}

	if err := checkError("init"); err != nil {
		pw.Destroy()
		return nil, err
	}

	destroy := func() {
		dev.Destroy()
		pw.Destroy()
	}

	return gfx.NewContext(window{pw}, dev, dev, screen, destroy), nil
}
