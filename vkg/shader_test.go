package vkg

import (
	"encoding/binary"
	"testing"

	gfx "github.com/jamiltron/gfx-sprite-2d"
	"github.com/jamiltron/gfx-sprite-2d/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpirvWordsEmbeddedShaders(t *testing.T) {
	src, err := assets.Shaders(gfx.SPIRV)
	require.NoError(t, err)

	for name, code := range map[string][]byte{"vertex": src.Vertex, "fragment": src.Fragment} {
		words, err := spirvWords(code)
		require.NoError(t, err, name)
		assert.Equal(t, uint32(spirvMagic), words[0], name)
		assert.Len(t, words, len(code)/4, name)
	}
}

func TestSpirvWordsUnaligned(t *testing.T) {
	code := make([]byte, 21)
	binary.LittleEndian.PutUint32(code[1:], spirvMagic)
	binary.LittleEndian.PutUint32(code[5:], 0x00010000)

	words, err := spirvWords(code[1:])
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00010000), words[1])
}

func TestSpirvWordsRejects(t *testing.T) {
	_, err := spirvWords(nil)
	assert.Error(t, err)

	_, err = spirvWords(make([]byte, 22))
	assert.Error(t, err, "length not a multiple of 4")

	_, err = spirvWords(make([]byte, 20))
	assert.Error(t, err, "zero magic")
}
