package gfx

import (
	"unsafe"
)

// Vertex is the per vertex input of the sprite pipeline
type Vertex struct {
	Position [2]float32
	TexCoord [2]float32
}

// VertexStride is the size in bytes of a single Vertex
const VertexStride = int(unsafe.Sizeof(Vertex{}))

// TexQuad is the unit quad centered on the origin, every corner carries the
// texture coordinate of the matching image corner.
var TexQuad = [4]Vertex{
	{Position: [2]float32{0.5, 0.5}, TexCoord: [2]float32{1.0, 1.0}},
	{Position: [2]float32{0.5, -0.5}, TexCoord: [2]float32{1.0, 0.0}},
	{Position: [2]float32{-0.5, -0.5}, TexCoord: [2]float32{0.0, 0.0}},
	{Position: [2]float32{-0.5, 0.5}, TexCoord: [2]float32{0.0, 1.0}},
}

// TexIndices splits TexQuad into two counter clockwise triangles
var TexIndices = [6]uint16{0, 3, 1, 1, 3, 2}

// VertexBytes returns the raw bytes of vertices, laid out as uploaded to the GPU
func VertexBytes(vertices []Vertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), len(vertices)*VertexStride)
}

// IndexBytes returns the raw bytes of 16 bit indices
func IndexBytes(indices []uint16) []byte {
	if len(indices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&indices[0])), len(indices)*2)
}

// AttributeFormat describes the component layout of a vertex attribute
type AttributeFormat int

const (
	Float32x2 AttributeFormat = iota
	Float32x3
	Float32x4
)

// Components returns the number of float components
func (f AttributeFormat) Components() int {
	switch f {
	case Float32x3:
		return 3
	case Float32x4:
		return 4
	default:
		return 2
	}
}

// Attribute binds a named shader input to an offset in the vertex
type Attribute struct {
	Name   string
	Offset int
	Format AttributeFormat
}

// VertexFormat describes the vertex buffer layout a pipeline consumes
type VertexFormat struct {
	Stride     int
	Attributes []Attribute
}

// SpriteVertexFormat is the layout of Vertex
func SpriteVertexFormat() VertexFormat {
	return VertexFormat{
		Stride: VertexStride,
		Attributes: []Attribute{
			{Name: "position", Offset: int(unsafe.Offsetof(Vertex{}.Position)), Format: Float32x2},
			{Name: "texCoord", Offset: int(unsafe.Offsetof(Vertex{}.TexCoord)), Format: Float32x2},
		},
	}
}

// IndexKind is the element type of an index buffer
type IndexKind int

const (
	// IndexAuto draws vertices in order without an index buffer
	IndexAuto IndexKind = iota
	Index16
	Index32
)

// IndexBuffer selects the indices used by a Slice
type IndexBuffer struct {
	Kind   IndexKind
	Buffer Buffer
}

// Slice is a range of elements of a vertex buffer to draw
type Slice struct {
	Start      uint32
	End        uint32
	BaseVertex uint32
	Buffer     IndexBuffer
}

// Count returns the number of elements covered by the slice
func (s Slice) Count() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// AaMode is the multisampling mode of a texture
type AaMode int

const (
	AaSingle AaMode = iota
	AaMulti
)

// TextureKind describes the shape of a texture
type TextureKind struct {
	Width  int
	Height int
	Aa     AaMode
}

// D2 returns a single sampled two dimensional texture kind
func D2(width, height int) TextureKind {
	return TextureKind{Width: width, Height: height, Aa: AaSingle}
}

// Size returns the number of bytes of RGBA8 data the kind holds
func (k TextureKind) Size() int {
	return k.Width * k.Height * 4
}
