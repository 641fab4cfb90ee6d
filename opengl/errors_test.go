package opengl

import (
	"testing"

	"github.com/go-gl/gl/v3.3-core/gl"
	gfx "github.com/jamiltron/gfx-sprite-2d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorName(t *testing.T) {
	assert.Equal(t, "GL_INVALID_ENUM", errorName(gl.INVALID_ENUM))
	assert.Equal(t, "GL_OUT_OF_MEMORY", errorName(gl.OUT_OF_MEMORY))
	assert.Equal(t, "GL error 0x1234", errorName(0x1234))
}

func TestShaderTypeName(t *testing.T) {
	assert.Equal(t, "vertex", shaderTypeName(gl.VERTEX_SHADER))
	assert.Equal(t, "fragment", shaderTypeName(gl.FRAGMENT_SHADER))
}

func TestBackendRegistered(t *testing.T) {
	b, err := gfx.Lookup(Name)
	require.NoError(t, err)
	assert.Equal(t, gfx.GLSL330, b.ShaderLanguage())
}
