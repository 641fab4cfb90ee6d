package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

// Buffer are used to map hunks of data that are then bound to resources used by the pipeline
// and command buffers to render data.
type Buffer struct {
	Device   *Device
	VKBuffer vk.Buffer
	Size     uint64
	Usage    vk.BufferUsageFlagBits
}

func (d *Device) CreateBufferWithOptions(size uint64, usage vk.BufferUsageFlagBits, sharing vk.SharingMode) (*Buffer, error) {
	createInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(size),
		Usage:       vk.BufferUsageFlags(usage),
		SharingMode: sharing,
	}

	var buffer vk.Buffer
	if err := checkResult(vk.CreateBuffer(d.VKDevice, &createInfo, nil, &buffer), "create buffer"); err != nil {
		return nil, err
	}

	return &Buffer{Device: d, VKBuffer: buffer, Size: size, Usage: usage}, nil
}

func (b *Buffer) VKMemoryRequirements() vk.MemoryRequirements {
	var mr vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(b.Device.VKDevice, b.VKBuffer, &mr)
	mr.Deref()
	return mr
}

func (b *Buffer) Bind(memory *DeviceMemory, offset uint64) error {
	return checkResult(vk.BindBufferMemory(b.Device.VKDevice, b.VKBuffer, memory.VKDeviceMemory, vk.DeviceSize(offset)), "bind buffer memory")
}

func (b *Buffer) Destroy() {
	vk.DestroyBuffer(b.Device.VKDevice, b.VKBuffer, nil)
}
