package gfx

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

// recorder is an in memory backend which logs every call in order
type recorder struct {
	ops       []string
	submitted [][]Command
	events    [][]Event

	buffers  Arena[[]byte]
	textures Arena[TextureKind]
	samplers Arena[string]
	pipes    Arena[Pipe]
	targets  Arena[string]

	submitErr  error
	textureErr error
}

func newRecorder() *recorder {
	return &recorder{}
}

func (r *recorder) target() RenderTargetView {
	return RenderTargetView{r.targets.Insert("main")}
}

func (r *recorder) PollEvents() []Event {
	r.ops = append(r.ops, "poll")
	if len(r.events) == 0 {
		return nil
	}
	ev := r.events[0]
	r.events = r.events[1:]
	return ev
}

func (r *recorder) SwapBuffers() error {
	r.ops = append(r.ops, "swap")
	return nil
}

func (r *recorder) Submit(commands []Command) error {
	r.ops = append(r.ops, "submit")
	if r.submitErr != nil {
		return r.submitErr
	}
	cp := make([]Command, len(commands))
	copy(cp, commands)
	r.submitted = append(r.submitted, cp)
	return nil
}

func (r *recorder) Cleanup() {
	r.ops = append(r.ops, "cleanup")
	r.buffers.Collect(nil)
	r.textures.Collect(nil)
}

func (r *recorder) CreateCommandBuffer() *Encoder {
	r.ops = append(r.ops, "encoder")
	return NewEncoder()
}

func (r *recorder) CreatePipelineSimple(vs, fs []byte, pipe Pipe) (PipelineState, error) {
	r.ops = append(r.ops, "pipeline")
	if len(vs) == 0 || len(fs) == 0 {
		return PipelineState{}, fmt.Errorf("empty shader")
	}
	return PipelineState{r.pipes.Insert(pipe)}, nil
}

func (r *recorder) CreateVertexBufferWithSlice(vertices []Vertex, indices []uint16) (Buffer, Slice, error) {
	r.ops = append(r.ops, "vbuf")
	vb := Buffer{r.buffers.Insert(append([]byte(nil), VertexBytes(vertices)...))}
	ib := Buffer{r.buffers.Insert(append([]byte(nil), IndexBytes(indices)...))}
	return vb, Slice{Start: 0, End: uint32(len(indices)), Buffer: IndexBuffer{Kind: Index16, Buffer: ib}}, nil
}

func (r *recorder) CreateTextureConstU8(kind TextureKind, pix []byte) (ShaderResourceView, error) {
	r.ops = append(r.ops, "texture")
	if r.textureErr != nil {
		return ShaderResourceView{}, r.textureErr
	}
	if len(pix) != kind.Size() {
		return ShaderResourceView{}, fmt.Errorf("texture data is %d bytes, want %d", len(pix), kind.Size())
	}
	return ShaderResourceView{r.textures.Insert(kind)}, nil
}

func (r *recorder) CreateSamplerLinear() (Sampler, error) {
	r.ops = append(r.ops, "sampler")
	return Sampler{r.samplers.Insert("linear")}, nil
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testShaders() ShaderSource {
	return ShaderSource{Vertex: []byte("vs"), Fragment: []byte("fs")}
}
