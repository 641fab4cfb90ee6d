package vkg

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Device is a logical Vulkan device
type Device struct {
	PhysicalDevice *PhysicalDevice
	VKDevice       vk.Device
}

func (d *Device) Destroy() {
	vk.DestroyDevice(d.VKDevice, nil)
}

func (d *Device) String() string {
	return fmt.Sprintf("{ PhysicalDevice: %s }", d.PhysicalDevice)
}

func (d *Device) WaitIdle() error {
	return checkResult(vk.DeviceWaitIdle(d.VKDevice), "device wait idle")
}

// GetQueue returns the first queue of qf
func (d *Device) GetQueue(qf *QueueFamily) *Queue {
	var vkq vk.Queue
	vk.GetDeviceQueue(d.VKDevice, uint32(qf.Index), 0, &vkq)
	return &Queue{Device: d, QueueFamily: qf, VKQueue: vkq}
}

// Allocate allocates size bytes of device memory of a type allowed by
// memoryTypeBits which has all of properties
func (d *Device) Allocate(size uint64, memoryTypeBits uint32, properties vk.MemoryPropertyFlagBits) (*DeviceMemory, error) {
	typeIndex, err := d.PhysicalDevice.FindMemoryType(memoryTypeBits, properties)
	if err != nil {
		return nil, err
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  vk.DeviceSize(size),
		MemoryTypeIndex: typeIndex,
	}

	var memory vk.DeviceMemory
	if err := checkResult(vk.AllocateMemory(d.VKDevice, &allocateInfo, nil, &memory), "allocate memory"); err != nil {
		return nil, err
	}

	return &DeviceMemory{Device: d, VKDeviceMemory: memory, Size: size}, nil
}
