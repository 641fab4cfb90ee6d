package vkg

import (
	"log/slog"

	gfx "github.com/jamiltron/gfx-sprite-2d"
	"github.com/jamiltron/gfx-sprite-2d/platform"
	"github.com/pkg/errors"
	"github.com/vulkan-go/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// Name is the name the backend is registered under
const Name = "vulkan"

func init() {
	gfx.Register(backend{})
}

type backend struct{}

func (backend) Name() string {
	return Name
}

func (backend) ShaderLanguage() gfx.ShaderLanguage {
	return gfx.SPIRV
}

type window struct {
	*platform.Window
	renderer *Renderer
}

// SwapBuffers presents the frame submitted last
func (w window) SwapBuffers() error {
	return w.renderer.Present()
}

// Init opens a window without a GL context, brings up Vulkan on the first
// device able to present to it and returns a gfx.Context whose target is the
// swapchain.
func (backend) Init(cfg gfx.Config, log *slog.Logger) (*gfx.Context, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pw, err := platform.Open(cfg, platform.Vulkan, log)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	if err := vk.Init(); err != nil {
		pw.Destroy()
		return nil, errors.Wrap(err, "unable to initialize vulkan")
	}

	app, err := NewGraphicsApp(cfg.Title, Version{Major: 1}, log)
	if err != nil {
		pw.Destroy()
		return nil, err
	}
	app.VSync = cfg.VSync

	fail := func(err error) (*gfx.Context, error) {
		app.Destroy()
		pw.Destroy()
		return nil, err
	}

	if err := app.SetWindow(pw.GLFW); err != nil {
		return fail(err)
	}
	if cfg.Debug {
		if err := app.EnableDebugging(); err != nil {
			log.Warn("vulkan validation unavailable", "error", err)
		}
	}
	if err := app.Init(); err != nil {
		return fail(err)
	}
	if err := app.PrepareToDraw(); err != nil {
		return fail(err)
	}

	log.Info("vulkan device ready",
		"device", app.PhysicalDevice.DeviceName,
		"api", app.PhysicalDevice.APIVersion().String(),
		"validation", app.Debugging())

	r, err := newRenderer(app, log)
	if err != nil {
		return fail(err)
	}

	destroy := func() {
		if err := app.Device.WaitIdle(); err != nil {
			log.Warn("device wait idle failed", "error", err)
		}
		r.Destroy()
		app.Destroy()
		pw.Destroy()
	}

	return gfx.NewContext(window{Window: pw, renderer: r}, r, r, r.screenTarget(), destroy), nil
}
