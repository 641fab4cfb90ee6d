package gfx

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSprite(t *testing.T) {
	r := newRecorder()
	target := r.target()

	s, err := NewSprite(r, target, testShaders(), testPNG(t, 64, 64), 640, 480)
	require.NoError(t, err)

	assert.Equal(t, []string{"pipeline", "vbuf", "texture", "sampler"}, r.ops)

	pipe, err := r.pipes.Get(s.Pipeline.Handle)
	require.NoError(t, err)
	assert.Equal(t, NewPipe(), pipe)

	assert.Equal(t, uint32(0), s.Slice.Start)
	assert.Equal(t, uint32(6), s.Slice.End)
	assert.Equal(t, Index16, s.Slice.Buffer.Kind)

	vb, err := r.buffers.Get(s.Data.VBuf.Handle)
	require.NoError(t, err)
	assert.Equal(t, VertexBytes(TexQuad[:]), vb)

	assert.Equal(t, target, s.Data.Out)
	assert.Equal(t, Projection(640, 480, Near, Far), s.Data.Projection)
	assert.Equal(t, SpriteModel(320, 240, 64, 64), s.Data.Model)
}

func TestNewSpriteFailsOnBadShaders(t *testing.T) {
	r := newRecorder()

	_, err := NewSprite(r, r.target(), ShaderSource{}, testPNG(t, 2, 2), 640, 480)
	require.Error(t, err)
	assert.Equal(t, []string{"pipeline"}, r.ops)
}

func TestNewSpriteFailsOnBadTexture(t *testing.T) {
	r := newRecorder()

	_, err := NewSprite(r, r.target(), testShaders(), []byte{0x89, 'P', 'N', 'G'}, 640, 480)
	require.Error(t, err)
	assert.NotContains(t, r.ops, "sampler")
}

func TestPipeNames(t *testing.T) {
	p := NewPipe()
	assert.Equal(t, []string{"model", "projection"}, p.Globals())
	assert.Equal(t, "ourTexture", p.Texture)
	assert.Equal(t, "color", p.Out)
}

func TestConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "GFX-SPRITE-2D", cfg.Title)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
	assert.Equal(t, Version{Major: 3, Minor: 3}, cfg.APIVersion)
	assert.True(t, cfg.CoreProfile)
	assert.True(t, cfg.VSync)

	cfg.Width = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Backend = ""
	assert.Error(t, cfg.Validate())
}

type stubBackend struct{ name string }

func (s stubBackend) Name() string {
	return s.name
}

func (s stubBackend) ShaderLanguage() ShaderLanguage {
	return GLSL330
}

func (s stubBackend) Init(Config, *slog.Logger) (*Context, error) {
	return nil, nil
}

func TestRegistry(t *testing.T) {
	Register(stubBackend{name: "stub-registry"})

	b, err := Lookup("stub-registry")
	require.NoError(t, err)
	assert.Equal(t, "stub-registry", b.Name())
	assert.Contains(t, Backends(), "stub-registry")

	_, err = Lookup("missing")
	assert.Error(t, err)

	assert.Panics(t, func() { Register(stubBackend{name: "stub-registry"}) })
}

func TestContextDestroyOnce(t *testing.T) {
	calls := 0
	ctx := NewContext(nil, nil, nil, RenderTargetView{}, func() { calls++ })
	ctx.Destroy()
	ctx.Destroy()
	assert.Equal(t, 1, calls)
}
