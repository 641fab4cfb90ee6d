package vkg

import (
	"testing"

	gfx "github.com/jamiltron/gfx-sprite-2d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendRegistered(t *testing.T) {
	b, err := gfx.Lookup(Name)
	require.NoError(t, err)
	assert.Equal(t, Name, b.Name())
	assert.Equal(t, gfx.SPIRV, b.ShaderLanguage())
}

func TestPresentWithoutSubmittedFrame(t *testing.T) {
	r := &Renderer{}
	assert.NoError(t, r.Present())
}
