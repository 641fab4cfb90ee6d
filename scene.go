package gfx

import (
	"fmt"
)

// Sprite is everything needed to draw the textured quad
type Sprite struct {
	Pipeline PipelineState
	Slice    Slice
	Data     PipeData
}

// NewSprite builds the pipeline, the quad geometry and the texture, and
// places a SpriteSize square at the center of a width by height target.
func NewSprite(f Factory, target RenderTargetView, shaders ShaderSource, texture []byte, width, height int) (*Sprite, error) {
	pso, err := f.CreatePipelineSimple(shaders.Vertex, shaders.Fragment, NewPipe())
	if err != nil {
		return nil, fmt.Errorf("creating pipeline: %w", err)
	}

	vbuf, slice, err := f.CreateVertexBufferWithSlice(TexQuad[:], TexIndices[:])
	if err != nil {
		return nil, fmt.Errorf("creating quad buffers: %w", err)
	}

	view, err := LoadTexture(f, texture)
	if err != nil {
		return nil, fmt.Errorf("loading texture: %w", err)
	}

	sampler, err := f.CreateSamplerLinear()
	if err != nil {
		return nil, fmt.Errorf("creating sampler: %w", err)
	}

	s := &Sprite{
		Pipeline: pso,
		Slice:    slice,
		Data: PipeData{
			VBuf:       vbuf,
			Projection: Projection(width, height, Near, Far),
			Model:      SpriteModel(float32(width)/2, float32(height)/2, SpriteSize, SpriteSize),
			Texture:    TextureSampler{View: view, Sampler: sampler},
			Out:        target,
		},
	}
	return s, nil
}
