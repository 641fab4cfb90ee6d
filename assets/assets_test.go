package assets

import (
	"bytes"
	"encoding/binary"
	"testing"

	gfx "github.com/jamiltron/gfx-sprite-2d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSPIRVHeader(t *testing.T) {
	src, err := Shaders(gfx.SPIRV)
	require.NoError(t, err)

	for _, code := range [][]byte{src.Vertex, src.Fragment} {
		require.Greater(t, len(code), 20)
		assert.Zero(t, len(code)%4)
		assert.Equal(t, uint32(0x07230203), binary.LittleEndian.Uint32(code))
		assert.Equal(t, uint32(0x00010000), binary.LittleEndian.Uint32(code[4:]))
	}
}

func TestGLSLSources(t *testing.T) {
	src, err := Shaders(gfx.GLSL330)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(src.Vertex, []byte("#version 330 core")))
	assert.True(t, bytes.HasPrefix(src.Fragment, []byte("#version 330 core")))

	pipe := gfx.NewPipe()
	for _, name := range pipe.Globals() {
		assert.Contains(t, string(src.Vertex), "uniform mat4 "+name+";")
	}
	assert.Contains(t, string(src.Fragment), "uniform sampler2D "+pipe.Texture+";")
	assert.Contains(t, string(src.Fragment), "out vec4 "+pipe.Out+";")
	for _, attr := range pipe.Vertex.Attributes {
		assert.Contains(t, string(src.Vertex), "in vec2 "+attr.Name+";")
	}
}

func TestUnknownLanguage(t *testing.T) {
	_, err := Shaders(gfx.ShaderLanguage(42))
	assert.Error(t, err)
}

func TestSmileDecodes(t *testing.T) {
	img, err := gfx.DecodeRGBA(SmilePNG())
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())
}
