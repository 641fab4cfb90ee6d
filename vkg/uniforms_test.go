package vkg

import (
	"encoding/binary"
	"math"
	"testing"

	gfx "github.com/jamiltron/gfx-sprite-2d"
	"github.com/stretchr/testify/assert"
	lin "github.com/xlab/linmath"
)

const eps = 1e-4

func TestClipCorrectionFlipsYAndHalvesDepth(t *testing.T) {
	proj := gfx.Mul(clipCorrection, gfx.Projection(640, 480, gfx.Near, gfx.Far))

	// pixel rows count up from the bottom, Vulkan's NDC y points down
	top := gfx.TransformPoint(proj, lin.Vec4{0, 480, 0, 1})
	assert.InDelta(t, -1, top[0], eps)
	assert.InDelta(t, -1, top[1], eps)

	bottom := gfx.TransformPoint(proj, lin.Vec4{640, 0, 0, 1})
	assert.InDelta(t, 1, bottom[0], eps)
	assert.InDelta(t, 1, bottom[1], eps)

	near := gfx.TransformPoint(proj, lin.Vec4{0, 0, -gfx.Near, 1})
	assert.InDelta(t, 0, near[2], eps)

	far := gfx.TransformPoint(proj, lin.Vec4{0, 0, -gfx.Far, 1})
	assert.InDelta(t, 1, far[2], eps)
}

func TestUniformBlockLayout(t *testing.T) {
	assert.Equal(t, uint64(128), uniformBlockSize)

	data := gfx.PipeData{
		Model:      gfx.SpriteModel(320, 240, gfx.SpriteSize, gfx.SpriteSize),
		Projection: gfx.Projection(640, 480, gfx.Near, gfx.Far),
	}
	ubo := newUniformBlock(data)
	assert.Equal(t, data.Model, ubo.Model)

	buf := make([]byte, uniformBlockSize)
	ubo.write(buf)

	at := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	// column major, the translation sits in the last column
	assert.InDelta(t, 320, at(12*4), eps)
	assert.InDelta(t, 240, at(13*4), eps)
	assert.InDelta(t, gfx.SpriteSize, at(0), eps)
	// y scale of the projection is negated
	assert.InDelta(t, -2.0/480, at(64+5*4), eps)
}

func TestUniformStride(t *testing.T) {
	assert.Equal(t, uint64(128), uniformStride(0))
	assert.Equal(t, uint64(128), uniformStride(64))
	assert.Equal(t, uint64(256), uniformStride(256))
}
