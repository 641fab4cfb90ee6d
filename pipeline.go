package gfx

import (
	lin "github.com/xlab/linmath"
)

// Pipe describes the bindings of the sprite pipeline by the names used in the shaders
type Pipe struct {
	Vertex     VertexFormat
	Model      string
	Projection string
	Texture    string
	Out        string
}

// NewPipe returns the description of the sprite pipeline
func NewPipe() Pipe {
	return Pipe{
		Vertex:     SpriteVertexFormat(),
		Model:      "model",
		Projection: "projection",
		Texture:    "ourTexture",
		Out:        "color",
	}
}

// Globals returns the names of the uniform matrices in upload order
func (p Pipe) Globals() []string {
	return []string{p.Model, p.Projection}
}

// TextureSampler pairs a texture view with the sampler used to read it
type TextureSampler struct {
	View    ShaderResourceView
	Sampler Sampler
}

// PipeData is the set of resources bound for a draw with the sprite pipeline
type PipeData struct {
	VBuf       Buffer
	Model      lin.Mat4x4
	Projection lin.Mat4x4
	Texture    TextureSampler
	Out        RenderTargetView
}

// ShaderLanguage identifies the shader dialect a backend consumes
type ShaderLanguage int

const (
	GLSL330 ShaderLanguage = iota
	SPIRV
)

func (l ShaderLanguage) String() string {
	switch l {
	case GLSL330:
		return "glsl330"
	case SPIRV:
		return "spirv"
	}
	return "unknown"
}

// ShaderSource is a vertex and fragment shader pair
type ShaderSource struct {
	Vertex   []byte
	Fragment []byte
}
