package vkg

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// DeviceMemory maps to Vulkan DeviceMemory and can either be memory on the host or on the device
type DeviceMemory struct {
	Device         *Device
	VKDeviceMemory vk.DeviceMemory
	Size           uint64
	// Ptr is the host address of the memory while it is mapped
	Ptr unsafe.Pointer
}

// IsMapped returns true if the device memory is currently mapped
func (d *DeviceMemory) IsMapped() bool {
	return d.Ptr != nil
}

// Map maps the entirety of this memory, mapping twice returns the existing mapping
func (d *DeviceMemory) Map() (unsafe.Pointer, error) {
	if d.Ptr != nil {
		return d.Ptr, nil
	}
	var ptr unsafe.Pointer
	if err := checkResult(vk.MapMemory(d.Device.VKDevice, d.VKDeviceMemory, 0, vk.DeviceSize(d.Size), 0, &ptr), "map memory"); err != nil {
		return nil, err
	}
	d.Ptr = ptr
	return ptr, nil
}

// Bytes returns the mapped range [offset, offset+size) or nil when unmapped
func (d *DeviceMemory) Bytes(offset, size uint64) []byte {
	if d.Ptr == nil || offset+size > d.Size {
		return nil
	}
	return unsafe.Slice((*byte)(d.Ptr), d.Size)[offset : offset+size]
}

// Unmap this memory
func (d *DeviceMemory) Unmap() {
	if d.Ptr == nil {
		return
	}
	vk.UnmapMemory(d.Device.VKDevice, d.VKDeviceMemory)
	d.Ptr = nil
}

// Destroy unmaps and frees this memory
func (d *DeviceMemory) Destroy() {
	d.Unmap()
	vk.FreeMemory(d.Device.VKDevice, d.VKDeviceMemory, nil)
}
