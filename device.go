package gfx

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Device executes recorded commands on the GPU
type Device interface {
	// Submit executes the commands in order
	Submit(commands []Command) error
	// Cleanup destroys resources whose last handle has been released
	Cleanup()
}

// Factory creates GPU resources and command encoders
type Factory interface {
	CreateCommandBuffer() *Encoder
	CreatePipelineSimple(vs, fs []byte, pipe Pipe) (PipelineState, error)
	CreateVertexBufferWithSlice(vertices []Vertex, indices []uint16) (Buffer, Slice, error)
	CreateTextureConstU8(kind TextureKind, pix []byte) (ShaderResourceView, error)
	CreateSamplerLinear() (Sampler, error)
}

// Window delivers input events and presents rendered frames
type Window interface {
	// PollEvents returns the events received since the last call, it does not block
	PollEvents() []Event
	// SwapBuffers presents the frame most recently submitted to the device
	SwapBuffers() error
}

// Context bundles everything a backend creates on initialization
type Context struct {
	Window  Window
	Device  Device
	Factory Factory
	// Target is the view of the window's color buffer
	Target RenderTargetView

	destroy func()
}

// NewContext is used by backends to assemble a Context, destroy is run once by Destroy
func NewContext(w Window, d Device, f Factory, target RenderTargetView, destroy func()) *Context {
	return &Context{Window: w, Device: d, Factory: f, Target: target, destroy: destroy}
}

// Destroy releases every GPU resource and the window
func (c *Context) Destroy() {
	if c.destroy != nil {
		c.destroy()
		c.destroy = nil
	}
}

// Backend is a graphics API implementation which can be selected by name
type Backend interface {
	Name() string
	ShaderLanguage() ShaderLanguage
	Init(cfg Config, log *slog.Logger) (*Context, error)
}

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]Backend)
)

// Register makes a backend available by name, it panics if the name is taken
func Register(b Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	if b == nil {
		panic("gfx: Register backend is nil")
	}
	if _, dup := backends[b.Name()]; dup {
		panic("gfx: Register called twice for backend " + b.Name())
	}
	backends[b.Name()] = b
}

// Lookup returns the backend registered under name
func Lookup(name string) (Backend, error) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	b, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (registered: %v)", name, backendNames())
	}
	return b, nil
}

// Backends returns the sorted names of the registered backends
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	return backendNames()
}

func backendNames() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
