package vkg

import (
	"unsafe"

	gfx "github.com/jamiltron/gfx-sprite-2d"
	lin "github.com/xlab/linmath"
)

// maxDrawsPerFrame bounds the uniform slots reserved for each swapchain image
const maxDrawsPerFrame = 16

// clipCorrection turns OpenGL clip space into Vulkan's, y points down and
// depth runs from 0 to 1 instead of -1 to 1.
var clipCorrection = lin.Mat4x4{
	{1, 0, 0, 0},
	{0, -1, 0, 0},
	{0, 0, 0.5, 0},
	{0, 0, 0.5, 1},
}

// uniformBlock matches the std140 layout of the vertex shader's uniform block
type uniformBlock struct {
	Model      lin.Mat4x4
	Projection lin.Mat4x4
}

const uniformBlockSize = uint64(unsafe.Sizeof(uniformBlock{}))

func newUniformBlock(data gfx.PipeData) uniformBlock {
	return uniformBlock{
		Model:      data.Model,
		Projection: gfx.Mul(clipCorrection, data.Projection),
	}
}

func (u *uniformBlock) write(dst []byte) {
	copy(dst, unsafe.Slice((*byte)(unsafe.Pointer(u)), uniformBlockSize))
}

// uniformStride is the distance between draw slots in a uniform buffer
func uniformStride(minAlignment uint64) uint64 {
	return makeAlignUp(uniformBlockSize, minAlignment)
}
