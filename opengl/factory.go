package opengl

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	gfx "github.com/jamiltron/gfx-sprite-2d"
	"github.com/pkg/errors"
)

// CreateCommandBuffer returns an empty encoder
func (d *Device) CreateCommandBuffer() *gfx.Encoder {
	return gfx.NewEncoder()
}

// CreatePipelineSimple compiles and links a GLSL program and resolves the bindings named by pipe
func (d *Device) CreatePipelineSimple(vs, fs []byte, pipe gfx.Pipe) (gfx.PipelineState, error) {
	id, err := linkProgram(vs, fs, pipe.Out)
	if err != nil {
		return gfx.PipelineState{}, err
	}

	p := program{id: id, stride: int32(pipe.Vertex.Stride)}
	for _, a := range pipe.Vertex.Attributes {
		loc, err := attribLocation(id, a.Name)
		if err != nil {
			gl.DeleteProgram(id)
			return gfx.PipelineState{}, err
		}
		p.attribs = append(p.attribs, attribBinding{location: loc, attr: a})
	}

	for name, dst := range map[string]*int32{
		pipe.Model:      &p.model,
		pipe.Projection: &p.projection,
		pipe.Texture:    &p.texture,
	} {
		*dst, err = uniformLocation(id, name)
		if err != nil {
			gl.DeleteProgram(id)
			return gfx.PipelineState{}, err
		}
	}

	gl.GenVertexArrays(1, &p.vao)

	if err := checkError("create pipeline"); err != nil {
		deleteProgram(p)
		return gfx.PipelineState{}, err
	}

	d.log.Debug("created pipeline", "program", id, "attributes", len(p.attribs))

	return gfx.PipelineState{Handle: d.programs.Insert(p)}, nil
}

func (d *Device) createBuffer(target uint32, data []byte) (buffer, error) {
	b := buffer{target: target, size: len(data)}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(target, b.id)
	gl.BufferData(target, len(data), gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(target, 0)
	if err := checkError("create buffer"); err != nil {
		deleteBuffer(b)
		return buffer{}, err
	}
	return b, nil
}

// CreateVertexBufferWithSlice uploads vertices and 16 bit indices, the returned slice covers every index
func (d *Device) CreateVertexBufferWithSlice(vertices []gfx.Vertex, indices []uint16) (gfx.Buffer, gfx.Slice, error) {
	if len(vertices) == 0 {
		return gfx.Buffer{}, gfx.Slice{}, errors.New("no vertices")
	}

	vb, err := d.createBuffer(gl.ARRAY_BUFFER, gfx.VertexBytes(vertices))
	if err != nil {
		return gfx.Buffer{}, gfx.Slice{}, err
	}
	vbh := gfx.Buffer{Handle: d.buffers.Insert(vb)}

	if len(indices) == 0 {
		return vbh, gfx.Slice{End: uint32(len(vertices)), Buffer: gfx.IndexBuffer{Kind: gfx.IndexAuto}}, nil
	}

	ib, err := d.createBuffer(gl.ELEMENT_ARRAY_BUFFER, gfx.IndexBytes(indices))
	if err != nil {
		d.buffers.Release(vbh.Handle)
		return gfx.Buffer{}, gfx.Slice{}, err
	}

	slice := gfx.Slice{
		Start: 0,
		End:   uint32(len(indices)),
		Buffer: gfx.IndexBuffer{
			Kind:   gfx.Index16,
			Buffer: gfx.Buffer{Handle: d.buffers.Insert(ib)},
		},
	}
	return vbh, slice, nil
}

// CreateTextureConstU8 creates an immutable single mip RGBA8 texture
func (d *Device) CreateTextureConstU8(kind gfx.TextureKind, pix []byte) (gfx.ShaderResourceView, error) {
	if kind.Aa != gfx.AaSingle {
		return gfx.ShaderResourceView{}, errors.New("multisampled textures are not supported")
	}
	if len(pix) != kind.Size() {
		return gfx.ShaderResourceView{}, errors.Errorf("texture data is %d bytes, %dx%d needs %d", len(pix), kind.Width, kind.Height, kind.Size())
	}

	t := texture{kind: kind}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_BASE_LEVEL, 0)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(kind.Width), int32(kind.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := checkError("create texture"); err != nil {
		deleteTexture(t)
		return gfx.ShaderResourceView{}, err
	}
	return gfx.ShaderResourceView{Handle: d.textures.Insert(t)}, nil
}

// CreateSamplerLinear creates a sampler with linear filtering which clamps to the edge
func (d *Device) CreateSamplerLinear() (gfx.Sampler, error) {
	var s uint32
	gl.GenSamplers(1, &s)
	gl.SamplerParameteri(s, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.SamplerParameteri(s, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.SamplerParameteri(s, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.SamplerParameteri(s, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	if err := checkError("create sampler"); err != nil {
		deleteSampler(s)
		return gfx.Sampler{}, err
	}
	return gfx.Sampler{Handle: d.samplers.Insert(s)}, nil
}
