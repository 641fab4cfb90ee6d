package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

// BufferResource is a buffer, for example a vertex buffer, index buffer or
// UBO, bound to a range of a BufferResourcePool
type BufferResource struct {
	Buffer
	ResourcePool *BufferResourcePool
	Allocation   *Allocation
}

// Bytes returns the mapped memory backing the buffer, nil when the pool is not host visible
func (r *BufferResource) Bytes() []byte {
	if r.Allocation == nil {
		return nil
	}
	return r.ResourcePool.Memory.Bytes(r.Allocation.Offset, r.Size)
}

// Free destroys the buffer and returns its range to the pool
func (r *BufferResource) Free() {
	if r.Allocation != nil {
		r.ResourcePool.Allocator.Free(r.Allocation)
		r.Allocation = nil
	}
	if r.VKBuffer != vk.NullBuffer {
		r.Buffer.Destroy()
		r.VKBuffer = vk.NullBuffer
	}
}

// ImageResource is an image bound to a range of an ImageResourcePool
type ImageResource struct {
	Image
	ResourcePool *ImageResourcePool
	Allocation   *Allocation
}

// Free destroys the image and returns its range to the pool
func (r *ImageResource) Free() {
	if r.Allocation != nil {
		r.ResourcePool.Allocator.Free(r.Allocation)
		r.Allocation = nil
	}
	if r.VKImage != vk.NullImage {
		r.Image.Destroy()
		r.VKImage = vk.NullImage
	}
}
