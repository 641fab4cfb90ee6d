package vkg

import (
	"log/slog"

	gfx "github.com/jamiltron/gfx-sprite-2d"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Pool sizes, the sprite needs a fraction of each
const (
	stagingPoolSize  = 4 << 20
	geometryPoolSize = 64 << 10
	texturePoolSize  = 16 << 20

	maxDescriptorSets = 64
)

type pipelineState struct {
	pipeline  vk.Pipeline
	layout    *PipelineLayout
	setLayout *DescriptorSetLayout
}

type texture struct {
	image *ImageResource
	view  *ImageView
	kind  gfx.TextureKind
}

// descriptorKey identifies the resources a cached descriptor set points at
type descriptorKey struct {
	image    uint32
	pipeline gfx.Handle
	texture  gfx.Handle
	sampler  gfx.Handle
}

// Renderer executes gfx commands with Vulkan and creates the resources they
// use. Commands for a frame are recorded into the command buffer of the
// acquired swapchain image, Present hands the image back for display.
type Renderer struct {
	app *GraphicsApp
	log *slog.Logger

	geometry *BufferResourcePool
	textures *ImageResourcePool

	// one uniform buffer per swapchain image, each with maxDrawsPerFrame slots
	uniforms      []*BufferResource
	uniformStride uint64

	descriptorPool *DescriptorPool
	descriptorSets map[descriptorKey]*DescriptorSet

	buffers   gfx.Arena[*BufferResource]
	images    gfx.Arena[texture]
	samplers  gfx.Arena[vk.Sampler]
	pipelines gfx.Arena[pipelineState]
	targets   gfx.Arena[vk.Extent2D]

	pending    bool
	imageIndex uint32
}

func newRenderer(app *GraphicsApp, log *slog.Logger) (*Renderer, error) {
	r := &Renderer{
		app:            app,
		log:            log,
		descriptorSets: make(map[descriptorKey]*DescriptorSet),
	}
	rm := app.ResourceManager

	if _, err := rm.AllocateStagingPool(stagingPoolSize); err != nil {
		return nil, err
	}

	var err error
	if r.geometry, err = rm.AllocateHostVertexAndIndexBufferPool(GeometryPoolName, geometryPoolSize); err != nil {
		return nil, err
	}
	if r.textures, err = rm.AllocateDeviceTexturePool(TexturePoolName, texturePoolSize); err != nil {
		return nil, err
	}

	minAlign := app.PhysicalDevice.MinUniformBufferOffsetAlignment()
	r.uniformStride = uniformStride(minAlign)
	perImage := r.uniformStride * maxDrawsPerFrame
	n := uint64(len(app.SwapchainImages))

	// room for the buffer alignment of each image's buffer
	uniforms, err := rm.AllocateHostUniformBufferPool(UniformPoolName, n*makeAlignUp(perImage, 256)+256)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < n; i++ {
		b, err := uniforms.AllocateBuffer(perImage, vk.BufferUsageUniformBufferBit)
		if err != nil {
			r.freeUniforms()
			return nil, errors.Wrapf(err, "uniform buffer %d", i)
		}
		r.uniforms = append(r.uniforms, b)
	}

	pool := &DescriptorPool{}
	pool.AddPoolSize(vk.DescriptorTypeUniformBufferDynamic, maxDescriptorSets).
		AddPoolSize(vk.DescriptorTypeCombinedImageSampler, maxDescriptorSets)
	if r.descriptorPool, err = app.Device.CreateDescriptorPool(pool, maxDescriptorSets); err != nil {
		r.freeUniforms()
		return nil, err
	}

	log.Debug("renderer ready", "uniformStride", r.uniformStride, "images", n)
	return r, nil
}

func (r *Renderer) screenTarget() gfx.RenderTargetView {
	return gfx.RenderTargetView{Handle: r.targets.Insert(r.app.GetScreenExtent())}
}

// Submit records commands into the command buffer of the next swapchain
// image and submits it. The render pass clears to the color of a leading
// ClearCommand, later clears are recorded as attachment clears.
func (r *Renderer) Submit(commands []gfx.Command) error {
	if r.pending {
		return errors.New("a frame is already submitted, SwapBuffers must be called first")
	}

	imageIndex, err := r.app.AcquireImage()
	if err != nil {
		return err
	}

	cb := r.app.GraphicsCommandBuffers[imageIndex]
	if err := cb.Reset(); err != nil {
		return err
	}
	if err := cb.Begin(); err != nil {
		return err
	}

	var clearColor [4]float32
	if len(commands) > 0 {
		if c, ok := commands[0].(gfx.ClearCommand); ok {
			if _, err := r.targets.Get(c.Target.Handle); err != nil {
				return errors.Wrap(err, "render target")
			}
			clearColor = c.Color
			commands = commands[1:]
		}
	}

	r.app.BeginRenderPass(cb, imageIndex, clearColor)

	draws := 0
	for _, c := range commands {
		switch c := c.(type) {
		case gfx.ClearCommand:
			extent, err := r.targets.Get(c.Target.Handle)
			if err != nil {
				return errors.Wrap(err, "render target")
			}
			cb.CmdClearColor(extent, c.Color)
		case gfx.DrawCommand:
			if err := r.draw(cb, imageIndex, draws, c); err != nil {
				return err
			}
			draws++
		default:
			return errors.Errorf("unsupported command %T", c)
		}
	}

	vk.CmdEndRenderPass(cb.VK())
	if err := cb.End(); err != nil {
		return err
	}

	if err := r.app.SubmitImage(imageIndex); err != nil {
		return err
	}
	r.pending = true
	r.imageIndex = imageIndex
	return nil
}

// Present displays the most recently submitted frame, it does nothing when
// no frame is waiting
func (r *Renderer) Present() error {
	if !r.pending {
		return nil
	}
	r.pending = false
	return r.app.PresentImage(r.imageIndex)
}

func (r *Renderer) draw(cb *CommandBuffer, imageIndex uint32, slot int, c gfx.DrawCommand) error {
	if slot >= maxDrawsPerFrame {
		return errors.Errorf("more than %d draws in a frame", maxDrawsPerFrame)
	}

	p, err := r.pipelines.Get(c.Pipeline.Handle)
	if err != nil {
		return errors.Wrap(err, "pipeline")
	}
	vb, err := r.buffers.Get(c.Data.VBuf.Handle)
	if err != nil {
		return errors.Wrap(err, "vertex buffer")
	}
	if _, err := r.targets.Get(c.Data.Out.Handle); err != nil {
		return errors.Wrap(err, "render target")
	}

	set, err := r.descriptorSet(imageIndex, c.Pipeline, p, c.Data.Texture)
	if err != nil {
		return err
	}

	offset := uint64(slot) * r.uniformStride
	ubo := newUniformBlock(c.Data)
	ubo.write(r.uniforms[imageIndex].Bytes()[offset : offset+uniformBlockSize])

	vk.CmdBindPipeline(cb.VK(), vk.PipelineBindPointGraphics, p.pipeline)
	cb.CmdBindDescriptorSets(vk.PipelineBindPointGraphics, p.layout, 0, []uint32{uint32(offset)}, set)
	vk.CmdBindVertexBuffers(cb.VK(), 0, 1, []vk.Buffer{vb.VKBuffer}, []vk.DeviceSize{0})

	slice := c.Slice
	switch slice.Buffer.Kind {
	case gfx.IndexAuto:
		vk.CmdDraw(cb.VK(), slice.Count(), 1, slice.Start+slice.BaseVertex, 0)
	case gfx.Index16, gfx.Index32:
		ib, err := r.buffers.Get(slice.Buffer.Buffer.Handle)
		if err != nil {
			return errors.Wrap(err, "index buffer")
		}
		indexType := vk.IndexTypeUint16
		if slice.Buffer.Kind == gfx.Index32 {
			indexType = vk.IndexTypeUint32
		}
		vk.CmdBindIndexBuffer(cb.VK(), ib.VKBuffer, 0, indexType)
		vk.CmdDrawIndexed(cb.VK(), slice.Count(), 1, slice.Start, int32(slice.BaseVertex), 0)
	}
	return nil
}

// descriptorSet returns the set binding imageIndex's uniform buffer and ts
// for pipeline ph, sets are created on first use and kept until one of
// their resources is destroyed
func (r *Renderer) descriptorSet(imageIndex uint32, ph gfx.PipelineState, p pipelineState, ts gfx.TextureSampler) (*DescriptorSet, error) {
	key := descriptorKey{image: imageIndex, pipeline: ph.Handle, texture: ts.View.Handle, sampler: ts.Sampler.Handle}
	if set, ok := r.descriptorSets[key]; ok {
		return set, nil
	}

	tex, err := r.images.Get(ts.View.Handle)
	if err != nil {
		return nil, errors.Wrap(err, "texture")
	}
	sampler, err := r.samplers.Get(ts.Sampler.Handle)
	if err != nil {
		return nil, errors.Wrap(err, "sampler")
	}

	set, err := r.descriptorPool.Allocate(p.setLayout)
	if err != nil {
		return nil, err
	}
	set.AddBuffer(0, vk.DescriptorTypeUniformBufferDynamic, &r.uniforms[imageIndex].Buffer, 0, uniformBlockSize)
	set.AddCombinedImageSampler(1, vk.ImageLayoutShaderReadOnlyOptimal, tex.view.VKImageView, sampler)
	set.Write()

	r.descriptorSets[key] = set
	return set, nil
}

func (r *Renderer) dropDescriptorSets() {
	for key, set := range r.descriptorSets {
		if err := r.descriptorPool.Free(set); err != nil {
			r.log.Warn("unable to free descriptor set", "error", err)
		}
		delete(r.descriptorSets, key)
	}
}

// Cleanup destroys every resource whose last handle has been released. The
// device is idled first when there is anything to destroy.
func (r *Renderer) Cleanup() {
	idle := false
	wait := func() {
		if idle {
			return
		}
		if err := r.app.Device.WaitIdle(); err != nil {
			r.log.Warn("device wait idle failed", "error", err)
		}
		r.dropDescriptorSets()
		idle = true
	}

	n := r.buffers.Collect(func(b *BufferResource) { wait(); b.Free() })
	n += r.images.Collect(func(t texture) { wait(); r.destroyTexture(t) })
	n += r.samplers.Collect(func(s vk.Sampler) { wait(); r.app.Device.DestroySampler(s) })
	n += r.pipelines.Collect(func(p pipelineState) { wait(); r.destroyPipeline(p) })
	n += r.targets.Collect(nil)
	if n > 0 {
		r.log.Debug("released vulkan resources", "count", n)
	}
}

// Destroy destroys every resource created by the renderer, the device must be idle
func (r *Renderer) Destroy() {
	r.dropDescriptorSets()
	r.buffers.Drain(func(b *BufferResource) { b.Free() })
	r.images.Drain(r.destroyTexture)
	r.samplers.Drain(r.app.Device.DestroySampler)
	r.pipelines.Drain(r.destroyPipeline)
	r.targets.Drain(nil)

	r.freeUniforms()
	if r.descriptorPool != nil {
		r.descriptorPool.Destroy()
		r.descriptorPool = nil
	}
}

func (r *Renderer) freeUniforms() {
	for _, b := range r.uniforms {
		b.Free()
	}
	r.uniforms = nil
}

func (r *Renderer) destroyTexture(t texture) {
	t.view.Destroy()
	t.image.Free()
}

func (r *Renderer) destroyPipeline(p pipelineState) {
	vk.DestroyPipeline(r.app.Device.VKDevice, p.pipeline, nil)
	p.layout.Destroy()
	p.setLayout.Destroy()
}
