package gfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	lin "github.com/xlab/linmath"
)

const eps = 1e-4

func toPixels(clip lin.Vec4, width, height float32) (float32, float32) {
	return (clip[0]/clip[3] + 1) / 2 * width, (clip[1]/clip[3] + 1) / 2 * height
}

func TestSpriteCornersLandOnPixelSquare(t *testing.T) {
	proj := Projection(640, 480, Near, Far)
	model := SpriteModel(320, 240, SpriteSize, SpriteSize)
	mvp := Mul(proj, model)

	want := map[[2]float32][2]float32{
		{0.5, 0.5}:   {352, 272},
		{0.5, -0.5}:  {352, 208},
		{-0.5, -0.5}: {288, 208},
		{-0.5, 0.5}:  {288, 272},
	}

	for _, v := range TexQuad {
		clip := TransformPoint(mvp, lin.Vec4{v.Position[0], v.Position[1], 0, 1})
		x, y := toPixels(clip, 640, 480)
		exp := want[v.Position]
		assert.InDelta(t, exp[0], x, eps, "x of %v", v.Position)
		assert.InDelta(t, exp[1], y, eps, "y of %v", v.Position)
	}
}

func TestSpriteModelCenterAndSize(t *testing.T) {
	model := SpriteModel(320, 240, 64, 64)

	center := TransformPoint(model, lin.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 320, center[0], eps)
	assert.InDelta(t, 240, center[1], eps)

	corner := TransformPoint(model, lin.Vec4{0.5, 0.5, 0, 1})
	assert.InDelta(t, 32, corner[0]-center[0], eps)
	assert.InDelta(t, 32, corner[1]-center[1], eps)
}

func TestProjectionBounds(t *testing.T) {
	proj := Projection(640, 480, Near, Far)

	lo := TransformPoint(proj, lin.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -1, lo[0], eps)
	assert.InDelta(t, -1, lo[1], eps)

	hi := TransformPoint(proj, lin.Vec4{640, 480, 0, 1})
	assert.InDelta(t, 1, hi[0], eps)
	assert.InDelta(t, 1, hi[1], eps)

	near := TransformPoint(proj, lin.Vec4{0, 0, -Near, 1})
	assert.InDelta(t, -1, near[2], eps)

	far := TransformPoint(proj, lin.Vec4{0, 0, -Far, 1})
	assert.InDelta(t, 1, far[2], eps)
}

func TestTransformPointIdentity(t *testing.T) {
	var m lin.Mat4x4
	m.Identity()
	p := lin.Vec4{1, 2, 3, 1}
	assert.Equal(t, p, TransformPoint(m, p))
}
