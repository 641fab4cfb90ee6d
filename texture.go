package gfx

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// DecodeRGBA decodes PNG data into a tightly packed RGBA image whose origin is (0, 0)
func DecodeRGBA(data []byte) (*image.RGBA, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding png: %w", err)
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("decoding png: empty image %v", b)
	}
	m := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(m, m.Bounds(), src, b.Min, draw.Src)
	return m, nil
}

// LoadTexture decodes PNG data and uploads it as a single mip RGBA8 texture of the image's size
func LoadTexture(f Factory, data []byte) (ShaderResourceView, error) {
	img, err := DecodeRGBA(data)
	if err != nil {
		return ShaderResourceView{}, err
	}
	b := img.Bounds()
	view, err := f.CreateTextureConstU8(D2(b.Dx(), b.Dy()), img.Pix)
	if err != nil {
		return ShaderResourceView{}, fmt.Errorf("uploading %dx%d texture: %w", b.Dx(), b.Dy(), err)
	}
	return view, nil
}
