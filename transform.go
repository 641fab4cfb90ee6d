package gfx

import (
	lin "github.com/xlab/linmath"
)

const (
	// Near and Far bound the orthographic view volume
	Near float32 = -1.0
	Far  float32 = 10.0

	// SpriteSize is the edge length of the sprite in pixels
	SpriteSize float32 = 64.0
)

// Projection maps pixel coordinates, origin bottom left, onto clip space
func Projection(width, height int, near, far float32) lin.Mat4x4 {
	var m lin.Mat4x4
	m.Ortho(0, float32(width), 0, float32(height), near, far)
	return m
}

// SpriteModel places the unit quad centered at (x, y) scaled to w by h pixels
func SpriteModel(x, y, w, h float32) lin.Mat4x4 {
	var t, m lin.Mat4x4
	t.Translate(x, y, 0)
	m.ScaleAniso(&t, w, h, 1)
	return m
}

// Mul returns a * b
func Mul(a, b lin.Mat4x4) lin.Mat4x4 {
	var m lin.Mat4x4
	m.Mult(&a, &b)
	return m
}

// TransformPoint applies the column major matrix m to p
func TransformPoint(m lin.Mat4x4, p lin.Vec4) lin.Vec4 {
	var r lin.Vec4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			r[row] += m[col][row] * p[col]
		}
	}
	return r
}
