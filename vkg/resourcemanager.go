package vkg

import (
	"log/slog"

	units "github.com/docker/go-units"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Names of the pools created by the backend
const (
	StagingPoolName  = "staging"
	GeometryPoolName = "geometry"
	UniformPoolName  = "uniforms"
	TexturePoolName  = "textures"
)

// BufferResourcePool is one block of device memory which buffers are
// sub-allocated from. Vulkan limits the number of memory allocations an
// application may make, so resources share pools.
type BufferResourcePool struct {
	Device           *Device
	Name             string
	Usage            vk.BufferUsageFlagBits
	MemoryProperties vk.MemoryPropertyFlagBits
	Size             uint64
	Allocator        IAllocator
	Memory           *DeviceMemory
	ResourceManager  *ResourceManager
}

// ImageResourcePool is one block of device memory which images are bound into
type ImageResourcePool struct {
	Device           *Device
	Name             string
	MemoryProperties vk.MemoryPropertyFlagBits
	Size             uint64
	Allocator        IAllocator
	Memory           *DeviceMemory
	ResourceManager  *ResourceManager
}

// HostVisible reports whether the pool's memory can be mapped
func (p *BufferResourcePool) HostVisible() bool {
	return p.MemoryProperties&vk.MemoryPropertyHostVisibleBit != 0
}

// AllocateBuffer creates a buffer of size bytes and binds it to a range of the pool
func (p *BufferResourcePool) AllocateBuffer(size uint64, usage vk.BufferUsageFlagBits) (*BufferResource, error) {
	if usage&p.Usage != usage {
		return nil, errors.Errorf("pool %q does not support buffer usage %#x", p.Name, uint32(usage))
	}

	buffer, err := p.Device.CreateBufferWithOptions(size, usage, vk.SharingModeExclusive)
	if err != nil {
		return nil, err
	}

	mr := buffer.VKMemoryRequirements()
	allocation := p.Allocator.Allocate(uint64(mr.Size), uint64(mr.Alignment))
	if allocation == nil {
		buffer.Destroy()
		return nil, errors.Wrapf(errInsufficientPoolSpace, "pool %q allocating %d bytes", p.Name, mr.Size)
	}

	if err := buffer.Bind(p.Memory, allocation.Offset); err != nil {
		p.Allocator.Free(allocation)
		buffer.Destroy()
		return nil, err
	}

	return &BufferResource{Buffer: *buffer, ResourcePool: p, Allocation: allocation}, nil
}

// AllocateImage creates a single mip 2D image and binds it to a range of the pool
func (p *ImageResourcePool) AllocateImage(extent vk.Extent2D, format vk.Format, tiling vk.ImageTiling, usage vk.ImageUsageFlagBits) (*ImageResource, error) {
	img, err := p.Device.CreateImageWithOptions(extent, format, tiling, usage)
	if err != nil {
		return nil, err
	}

	mr := img.VKMemoryRequirements()
	allocation := p.Allocator.Allocate(uint64(mr.Size), uint64(mr.Alignment))
	if allocation == nil {
		img.Destroy()
		return nil, errors.Wrapf(errInsufficientPoolSpace, "pool %q allocating %d bytes", p.Name, mr.Size)
	}

	res := vk.BindImageMemory(p.Device.VKDevice, img.VKImage, p.Memory.VKDeviceMemory, vk.DeviceSize(allocation.Offset))
	if err := checkResult(res, "bind image memory"); err != nil {
		p.Allocator.Free(allocation)
		img.Destroy()
		return nil, err
	}

	return &ImageResource{Image: *img, ResourcePool: p, Allocation: allocation}, nil
}

func (p *BufferResourcePool) destroy() {
	if p.Memory != nil {
		p.Memory.Destroy()
		p.Memory = nil
	}
	p.Allocator = nil
}

func (p *ImageResourcePool) destroy() {
	if p.Memory != nil {
		p.Memory.Destroy()
		p.Memory = nil
	}
	p.Allocator = nil
}

// ResourceManager owns the memory pools resources are allocated from
type ResourceManager struct {
	Device      *Device
	log         *slog.Logger
	bufferPools map[string]*BufferResourcePool
	imagePools  map[string]*ImageResourcePool
}

func (d *Device) CreateResourceManager(log *slog.Logger) *ResourceManager {
	return &ResourceManager{
		Device:      d,
		log:         log,
		bufferPools: make(map[string]*BufferResourcePool),
		imagePools:  make(map[string]*ImageResourcePool),
	}
}

// AllocateStagingPool creates the host visible pool used to upload textures
func (r *ResourceManager) AllocateStagingPool(size uint64) (*BufferResourcePool, error) {
	return r.AllocateBufferPoolWithOptions(StagingPoolName, size,
		vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit,
		vk.BufferUsageTransferSrcBit)
}

// AllocateHostVertexAndIndexBufferPool creates a host visible pool for vertex and index buffers
func (r *ResourceManager) AllocateHostVertexAndIndexBufferPool(name string, size uint64) (*BufferResourcePool, error) {
	return r.AllocateBufferPoolWithOptions(name, size,
		vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit,
		vk.BufferUsageVertexBufferBit|vk.BufferUsageIndexBufferBit)
}

// AllocateHostUniformBufferPool creates a host visible pool for uniform buffers
func (r *ResourceManager) AllocateHostUniformBufferPool(name string, size uint64) (*BufferResourcePool, error) {
	return r.AllocateBufferPoolWithOptions(name, size,
		vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit,
		vk.BufferUsageUniformBufferBit)
}

// AllocateBufferPoolWithOptions creates a pool of size bytes whose memory
// type suits buffers with usage. Host visible pools stay mapped until the
// pool is destroyed.
func (r *ResourceManager) AllocateBufferPoolWithOptions(name string, size uint64, mprops vk.MemoryPropertyFlagBits, usage vk.BufferUsageFlagBits) (*BufferResourcePool, error) {
	if _, ok := r.bufferPools[name]; ok {
		return nil, errors.Errorf("buffer pool %q already exists", name)
	}

	// a throwaway buffer reports which memory types suit this usage
	probe, err := r.Device.CreateBufferWithOptions(size, usage, vk.SharingModeExclusive)
	if err != nil {
		return nil, err
	}
	mr := probe.VKMemoryRequirements()
	probe.Destroy()

	memory, err := r.Device.Allocate(size, mr.MemoryTypeBits, mprops)
	if err != nil {
		return nil, errors.Wrapf(err, "buffer pool %q", name)
	}

	p := &BufferResourcePool{
		Device:           r.Device,
		Name:             name,
		Usage:            usage,
		MemoryProperties: mprops,
		Size:             size,
		Allocator:        &LinearAllocator{Size: size},
		Memory:           memory,
		ResourceManager:  r,
	}
	if p.HostVisible() {
		if _, err := memory.Map(); err != nil {
			memory.Destroy()
			return nil, err
		}
	}

	r.bufferPools[name] = p
	r.log.Debug("allocated buffer pool", "name", name, "size", units.BytesSize(float64(size)))
	return p, nil
}

// AllocateDeviceTexturePool creates a device local pool for sampled RGBA8 textures
func (r *ResourceManager) AllocateDeviceTexturePool(name string, size uint64) (*ImageResourcePool, error) {
	if _, ok := r.imagePools[name]; ok {
		return nil, errors.Errorf("image pool %q already exists", name)
	}

	probe, err := r.Device.CreateImageWithOptions(vk.Extent2D{Width: 64, Height: 64}, vk.FormatR8g8b8a8Unorm,
		vk.ImageTilingOptimal, vk.ImageUsageTransferDstBit|vk.ImageUsageSampledBit)
	if err != nil {
		return nil, err
	}
	mr := probe.VKMemoryRequirements()
	probe.Destroy()

	memory, err := r.Device.Allocate(size, mr.MemoryTypeBits, vk.MemoryPropertyDeviceLocalBit)
	if err != nil {
		return nil, errors.Wrapf(err, "image pool %q", name)
	}

	p := &ImageResourcePool{
		Device:           r.Device,
		Name:             name,
		MemoryProperties: vk.MemoryPropertyDeviceLocalBit,
		Size:             size,
		Allocator:        &LinearAllocator{Size: size},
		Memory:           memory,
		ResourceManager:  r,
	}
	r.imagePools[name] = p
	r.log.Debug("allocated image pool", "name", name, "size", units.BytesSize(float64(size)))
	return p, nil
}

func (r *ResourceManager) BufferPool(name string) *BufferResourcePool {
	return r.bufferPools[name]
}

func (r *ResourceManager) ImagePool(name string) *ImageResourcePool {
	return r.imagePools[name]
}

// StagingPool returns the pool created by AllocateStagingPool
func (r *ResourceManager) StagingPool() *BufferResourcePool {
	return r.bufferPools[StagingPoolName]
}

// Destroy frees every pool, resources allocated from them must already be destroyed
func (r *ResourceManager) Destroy() {
	for name, p := range r.bufferPools {
		p.destroy()
		delete(r.bufferPools, name)
	}
	for name, p := range r.imagePools {
		p.destroy()
		delete(r.imagePools, name)
	}
}
