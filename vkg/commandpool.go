package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

type CommandPool struct {
	Device        *Device
	QueueFamily   *QueueFamily
	VKCommandPool vk.CommandPool
}

// CreateCommandPool creates a pool whose buffers may be reset individually
func (d *Device) CreateCommandPool(q *QueueFamily) (*CommandPool, error) {
	createInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
		QueueFamilyIndex: uint32(q.Index),
	}

	var pool vk.CommandPool
	if err := checkResult(vk.CreateCommandPool(d.VKDevice, &createInfo, nil, &pool), "create command pool"); err != nil {
		return nil, err
	}
	return &CommandPool{Device: d, QueueFamily: q, VKCommandPool: pool}, nil
}

func (c *CommandPool) AllocateBuffers(level vk.CommandBufferLevel, count int) ([]*CommandBuffer, error) {
	allocateInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        c.VKCommandPool,
		Level:              level,
		CommandBufferCount: uint32(count),
	}

	buffers := make([]vk.CommandBuffer, count)
	if err := checkResult(vk.AllocateCommandBuffers(c.Device.VKDevice, &allocateInfo, buffers), "allocate command buffers"); err != nil {
		return nil, err
	}

	ret := make([]*CommandBuffer, count)
	for i := range ret {
		ret[i] = &CommandBuffer{VKCommandBuffer: buffers[i]}
	}
	return ret, nil
}

func (c *CommandPool) AllocateBuffer(level vk.CommandBufferLevel) (*CommandBuffer, error) {
	ret, err := c.AllocateBuffers(level, 1)
	if err != nil {
		return nil, err
	}
	return ret[0], nil
}

func (c *CommandPool) FreeBuffers(bs []*CommandBuffer) {
	if len(bs) == 0 {
		return
	}
	b := make([]vk.CommandBuffer, len(bs))
	for i := range bs {
		b[i] = bs[i].VKCommandBuffer
	}
	vk.FreeCommandBuffers(c.Device.VKDevice, c.VKCommandPool, uint32(len(b)), b)
}

func (c *CommandPool) FreeBuffer(b *CommandBuffer) {
	c.FreeBuffers([]*CommandBuffer{b})
}

func (c *CommandPool) Destroy() {
	vk.DestroyCommandPool(c.Device.VKDevice, c.VKCommandPool, nil)
}
