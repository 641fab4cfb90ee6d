package opengl

import (
	"log/slog"

	"github.com/go-gl/gl/v3.3-core/gl"
	gfx "github.com/jamiltron/gfx-sprite-2d"
	"github.com/pkg/errors"
)

type buffer struct {
	id     uint32
	target uint32
	size   int
}

type texture struct {
	id   uint32
	kind gfx.TextureKind
}

type attribBinding struct {
	location uint32
	attr     gfx.Attribute
}

type program struct {
	id      uint32
	vao     uint32
	stride  int32
	attribs []attribBinding

	model      int32
	projection int32
	texture    int32
}

type target struct {
	fbo    uint32
	width  int32
	height int32
}

// Device executes commands with OpenGL and creates the resources they use.
// It must only be used from the thread owning the GL context.
type Device struct {
	log *slog.Logger

	buffers  gfx.Arena[buffer]
	textures gfx.Arena[texture]
	samplers gfx.Arena[uint32]
	programs gfx.Arena[program]
	targets  gfx.Arena[target]
}

func newDevice(log *slog.Logger) *Device {
	return &Device{log: log}
}

// Submit executes the commands in order against the current context
func (d *Device) Submit(commands []gfx.Command) error {
	for _, c := range commands {
		var err error
		switch c := c.(type) {
		case gfx.ClearCommand:
			err = d.clear(c)
		case gfx.DrawCommand:
			err = d.draw(c)
		default:
			err = errors.Errorf("unsupported command %T", c)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *Device) bindTarget(h gfx.RenderTargetView) error {
	t, err := d.targets.Get(h.Handle)
	if err != nil {
		return errors.Wrap(err, "render target")
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, t.width, t.height)
	return nil
}

func (d *Device) clear(c gfx.ClearCommand) error {
	if err := d.bindTarget(c.Target); err != nil {
		return err
	}
	gl.ClearColor(c.Color[0], c.Color[1], c.Color[2], c.Color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
	return checkError("clear")
}

func (d *Device) draw(c gfx.DrawCommand) error {
	p, err := d.programs.Get(c.Pipeline.Handle)
	if err != nil {
		return errors.Wrap(err, "pipeline")
	}
	vb, err := d.buffers.Get(c.Data.VBuf.Handle)
	if err != nil {
		return errors.Wrap(err, "vertex buffer")
	}
	tex, err := d.textures.Get(c.Data.Texture.View.Handle)
	if err != nil {
		return errors.Wrap(err, "texture")
	}
	smp, err := d.samplers.Get(c.Data.Texture.Sampler.Handle)
	if err != nil {
		return errors.Wrap(err, "sampler")
	}
	if err := d.bindTarget(c.Data.Out); err != nil {
		return err
	}

	gl.UseProgram(p.id)
	gl.UniformMatrix4fv(p.model, 1, false, &c.Data.Model[0][0])
	gl.UniformMatrix4fv(p.projection, 1, false, &c.Data.Projection[0][0])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex.id)
	gl.BindSampler(0, smp)
	gl.Uniform1i(p.texture, 0)

	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.id)
	for _, a := range p.attribs {
		gl.EnableVertexAttribArray(a.location)
		gl.VertexAttribPointerWithOffset(a.location, int32(a.attr.Format.Components()), gl.FLOAT, false, p.stride, uintptr(a.attr.Offset))
	}

	slice := c.Slice
	count := int32(slice.Count())
	switch slice.Buffer.Kind {
	case gfx.IndexAuto:
		gl.DrawArrays(gl.TRIANGLES, int32(slice.Start+slice.BaseVertex), count)
	case gfx.Index16, gfx.Index32:
		ib, err := d.buffers.Get(slice.Buffer.Buffer.Handle)
		if err != nil {
			return errors.Wrap(err, "index buffer")
		}
		xtype, size := uint32(gl.UNSIGNED_SHORT), 2
		if slice.Buffer.Kind == gfx.Index32 {
			xtype, size = gl.UNSIGNED_INT, 4
		}
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.id)
		gl.DrawElementsBaseVertex(gl.TRIANGLES, count, xtype, gl.PtrOffset(int(slice.Start)*size), int32(slice.BaseVertex))
	}

	gl.BindVertexArray(0)
	return checkError("draw")
}

// Cleanup destroys every resource whose last handle has been released
func (d *Device) Cleanup() {
	n := d.buffers.Collect(deleteBuffer)
	n += d.textures.Collect(deleteTexture)
	n += d.samplers.Collect(deleteSampler)
	n += d.programs.Collect(deleteProgram)
	n += d.targets.Collect(nil)
	if n > 0 {
		d.log.Debug("released gl resources", "count", n)
	}
}

// Destroy deletes every resource created by the device
func (d *Device) Destroy() {
	d.buffers.Drain(deleteBuffer)
	d.textures.Drain(deleteTexture)
	d.samplers.Drain(deleteSampler)
	d.programs.Drain(deleteProgram)
	d.targets.Drain(nil)
}

func deleteBuffer(b buffer) {
	gl.DeleteBuffers(1, &b.id)
}

func deleteTexture(t texture) {
	gl.DeleteTextures(1, &t.id)
}

func deleteSampler(s uint32) {
	gl.DeleteSamplers(1, &s)
}

func deleteProgram(p program) {
	gl.DeleteVertexArrays(1, &p.vao)
	gl.DeleteProgram(p.id)
}
