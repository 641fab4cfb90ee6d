// Package assets holds the shaders and images compiled into the sprite program.
package assets

import (
	"embed"
	"fmt"

	gfx "github.com/jamiltron/gfx-sprite-2d"
)

//go:generate glslc -o shaders/sprite.vert.spv shaders/sprite.vert
//go:generate glslc -o shaders/sprite.frag.spv shaders/sprite.frag

//go:embed shaders images
var files embed.FS

// SmilePNG returns the sprite's texture
func SmilePNG() []byte {
	return mustRead("images/smile.png")
}

// Shaders returns the sprite shader pair in the given language
func Shaders(lang gfx.ShaderLanguage) (gfx.ShaderSource, error) {
	var vs, fs string
	switch lang {
	case gfx.GLSL330:
		vs, fs = "shaders/sprite.vs", "shaders/sprite.fs"
	case gfx.SPIRV:
		vs, fs = "shaders/sprite.vert.spv", "shaders/sprite.frag.spv"
	default:
		return gfx.ShaderSource{}, fmt.Errorf("no shaders for language %s", lang)
	}
	return gfx.ShaderSource{Vertex: mustRead(vs), Fragment: mustRead(fs)}, nil
}

func mustRead(name string) []byte {
	data, err := files.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("assets: %v", err))
	}
	return data
}
