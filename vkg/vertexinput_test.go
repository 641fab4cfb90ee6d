package vkg

import (
	"testing"

	gfx "github.com/jamiltron/gfx-sprite-2d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestVertexInputSpriteFormat(t *testing.T) {
	binding, attrs, err := vertexInput(gfx.SpriteVertexFormat())
	require.NoError(t, err)

	assert.Equal(t, uint32(0), binding.Binding)
	assert.Equal(t, uint32(gfx.VertexStride), binding.Stride)
	assert.Equal(t, vk.VertexInputRateVertex, binding.InputRate)

	require.Len(t, attrs, 2)
	assert.Equal(t, vk.VertexInputAttributeDescription{Location: 0, Binding: 0, Format: vk.FormatR32g32Sfloat, Offset: 0}, attrs[0])
	assert.Equal(t, vk.VertexInputAttributeDescription{Location: 1, Binding: 0, Format: vk.FormatR32g32Sfloat, Offset: 8}, attrs[1])
}

func TestVertexFormat(t *testing.T) {
	f, err := vertexFormat(gfx.Float32x3)
	require.NoError(t, err)
	assert.Equal(t, vk.FormatR32g32b32Sfloat, f)

	f, err = vertexFormat(gfx.Float32x4)
	require.NoError(t, err)
	assert.Equal(t, vk.FormatR32g32b32a32Sfloat, f)

	_, _, err = vertexInput(gfx.VertexFormat{Stride: 4, Attributes: []gfx.Attribute{{Name: "bad", Format: gfx.AttributeFormat(99)}}})
	assert.Error(t, err)
}
