package gfx

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTexture(t *testing.T) {
	r := newRecorder()

	view, err := LoadTexture(r, testPNG(t, 32, 16))
	require.NoError(t, err)

	kind, err := r.textures.Get(view.Handle)
	require.NoError(t, err)
	assert.Equal(t, TextureKind{Width: 32, Height: 16, Aa: AaSingle}, kind)
}

func TestDecodeRGBAKeepsPixels(t *testing.T) {
	img, err := DecodeRGBA(testPNG(t, 4, 4))
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())
	assert.Len(t, img.Pix, 4*4*4)
	assert.Equal(t, color.RGBA{R: 0, G: 0, B: 128, A: 255}, img.RGBAAt(0, 0))
}

func TestLoadTextureRejectsGarbage(t *testing.T) {
	r := newRecorder()

	_, err := LoadTexture(r, []byte("definitely not an image"))
	require.Error(t, err)
	assert.NotContains(t, r.ops, "texture")
}

func TestLoadTextureRejectsOtherFormats(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White})
	require.NoError(t, gif.Encode(&buf, img, nil))

	_, err := LoadTexture(newRecorder(), buf.Bytes())
	require.Error(t, err)
}

func TestLoadTextureUploadFailure(t *testing.T) {
	r := newRecorder()
	r.textureErr = fmt.Errorf("out of memory")

	_, err := LoadTexture(r, testPNG(t, 2, 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, r.textureErr)
}
