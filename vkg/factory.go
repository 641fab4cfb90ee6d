package vkg

import (
	gfx "github.com/jamiltron/gfx-sprite-2d"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// CreateCommandBuffer returns an empty encoder
func (r *Renderer) CreateCommandBuffer() *gfx.Encoder {
	return gfx.NewEncoder()
}

// CreatePipelineSimple builds a pipeline from SPIR-V modules. The vertex
// shader reads the model and projection matrices from a uniform block at
// binding 0 and the fragment shader samples the texture at binding 1.
func (r *Renderer) CreatePipelineSimple(vs, fs []byte, pipe gfx.Pipe) (gfx.PipelineState, error) {
	d := r.app.Device

	binding, attrs, err := vertexInput(pipe.Vertex)
	if err != nil {
		return gfx.PipelineState{}, err
	}

	dsl := &DescriptorSetLayout{}
	dsl.AddBinding(0, vk.DescriptorTypeUniformBufferDynamic, vk.ShaderStageVertexBit).
		AddBinding(1, vk.DescriptorTypeCombinedImageSampler, vk.ShaderStageFragmentBit)
	if _, err := d.CreateDescriptorSetLayout(dsl); err != nil {
		return gfx.PipelineState{}, err
	}

	layout, err := d.CreatePipelineLayout(dsl)
	if err != nil {
		dsl.Destroy()
		return gfx.PipelineState{}, err
	}

	p, err := r.buildPipeline(vs, fs, layout, binding, attrs)
	if err != nil {
		layout.Destroy()
		dsl.Destroy()
		return gfx.PipelineState{}, err
	}

	r.log.Debug("created pipeline", "attributes", len(attrs), "stride", binding.Stride)

	return gfx.PipelineState{Handle: r.pipelines.Insert(pipelineState{
		pipeline:  p,
		layout:    layout,
		setLayout: dsl,
	})}, nil
}

func (r *Renderer) buildPipeline(vs, fs []byte, layout *PipelineLayout, binding vk.VertexInputBindingDescription, attrs []vk.VertexInputAttributeDescription) (vk.Pipeline, error) {
	config := r.app.Device.CreateGraphicsPipelineConfig()
	// the shader modules are only needed until the pipeline exists
	defer config.Destroy()

	if err := config.AddShaderStage(vs, "main", vk.ShaderStageVertexBit); err != nil {
		return vk.NullPipeline, err
	}
	if err := config.AddShaderStage(fs, "main", vk.ShaderStageFragmentBit); err != nil {
		return vk.NullPipeline, err
	}
	config.SetPipelineLayout(layout).AddVertexInput(binding, attrs)

	return r.app.Device.CreateGraphicsPipeline(r.app.PipelineCache, config, r.app.GetScreenExtent(), r.app.VKRenderPass)
}

// CreateVertexBufferWithSlice copies vertices and 16 bit indices into the
// geometry pool, the returned slice covers every index
func (r *Renderer) CreateVertexBufferWithSlice(vertices []gfx.Vertex, indices []uint16) (gfx.Buffer, gfx.Slice, error) {
	if len(vertices) == 0 {
		return gfx.Buffer{}, gfx.Slice{}, errors.New("no vertices")
	}

	vb, err := r.createBuffer(gfx.VertexBytes(vertices), vk.BufferUsageVertexBufferBit)
	if err != nil {
		return gfx.Buffer{}, gfx.Slice{}, errors.Wrap(err, "vertex buffer")
	}
	vbh := gfx.Buffer{Handle: r.buffers.Insert(vb)}

	if len(indices) == 0 {
		return vbh, gfx.Slice{End: uint32(len(vertices)), Buffer: gfx.IndexBuffer{Kind: gfx.IndexAuto}}, nil
	}

	ib, err := r.createBuffer(gfx.IndexBytes(indices), vk.BufferUsageIndexBufferBit)
	if err != nil {
		r.buffers.Release(vbh.Handle)
		return gfx.Buffer{}, gfx.Slice{}, errors.Wrap(err, "index buffer")
	}

	slice := gfx.Slice{
		Start: 0,
		End:   uint32(len(indices)),
		Buffer: gfx.IndexBuffer{
			Kind:   gfx.Index16,
			Buffer: gfx.Buffer{Handle: r.buffers.Insert(ib)},
		},
	}
	return vbh, slice, nil
}

func (r *Renderer) createBuffer(data []byte, usage vk.BufferUsageFlagBits) (*BufferResource, error) {
	b, err := r.geometry.AllocateBuffer(uint64(len(data)), usage)
	if err != nil {
		return nil, err
	}
	copy(b.Bytes(), data)
	return b, nil
}

// CreateTextureConstU8 uploads an immutable single mip RGBA8 texture to device local memory
func (r *Renderer) CreateTextureConstU8(kind gfx.TextureKind, pix []byte) (gfx.ShaderResourceView, error) {
	if kind.Aa != gfx.AaSingle {
		return gfx.ShaderResourceView{}, errors.New("multisampled textures are not supported")
	}
	if len(pix) != kind.Size() {
		return gfx.ShaderResourceView{}, errors.Errorf("texture data is %d bytes, %dx%d needs %d", len(pix), kind.Width, kind.Height, kind.Size())
	}

	extent := vk.Extent2D{Width: uint32(kind.Width), Height: uint32(kind.Height)}
	img, err := r.textures.StageTexture(pix, extent, r.app.GraphicsCommandPool, r.app.GraphicsQueue)
	if err != nil {
		return gfx.ShaderResourceView{}, err
	}

	view, err := img.CreateImageView()
	if err != nil {
		img.Free()
		return gfx.ShaderResourceView{}, err
	}

	return gfx.ShaderResourceView{Handle: r.images.Insert(texture{image: img, view: view, kind: kind})}, nil
}

// CreateSamplerLinear creates a sampler with linear filtering which clamps to the edge
func (r *Renderer) CreateSamplerLinear() (gfx.Sampler, error) {
	s, err := r.app.Device.CreateSampler(vk.FilterLinear, vk.SamplerAddressModeClampToEdge)
	if err != nil {
		return gfx.Sampler{}, err
	}
	return gfx.Sampler{Handle: r.samplers.Insert(s)}, nil
}
