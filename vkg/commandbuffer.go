package vkg

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// CommandBuffer records a sequence of commands which are executed once the
// buffer is submitted to a queue. Only the commands this package needs are
// wrapped, use VK with the native vulkan command APIs for the rest.
type CommandBuffer struct {
	VKCommandBuffer vk.CommandBuffer
}

// Reset this command buffer
func (c *CommandBuffer) Reset() error {
	return checkResult(vk.ResetCommandBuffer(c.VKCommandBuffer, 0), "reset command buffer")
}

// VK is a utility function for accessing the native vulkan command buffer
func (c *CommandBuffer) VK() vk.CommandBuffer {
	return c.VKCommandBuffer
}

// Begin capturing work for this command buffer
func (c *CommandBuffer) Begin() error {
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	}
	return checkResult(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo), "begin command buffer")
}

// BeginOneTime begins capturing work which will be submitted exactly once
func (c *CommandBuffer) BeginOneTime() error {
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	return checkResult(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo), "begin command buffer")
}

// End describing work for this command buffer
func (c *CommandBuffer) End() error {
	return checkResult(vk.EndCommandBuffer(c.VKCommandBuffer), "end command buffer")
}

// TransitionImageLayout records a barrier moving img from oldLayout to newLayout
func (c *CommandBuffer) TransitionImageLayout(img *Image, oldLayout, newLayout vk.ImageLayout) error {
	t, ok := transitionFor(oldLayout, newLayout)
	if !ok {
		return errors.Errorf("unsupported image layout transition %d -> %d", oldLayout, newLayout)
	}

	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		OldLayout:           oldLayout,
		NewLayout:           newLayout,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               img.VKImage,
		SubresourceRange:    colorSubresourceRange(),
		SrcAccessMask:       vk.AccessFlags(t.srcAccess),
		DstAccessMask:       vk.AccessFlags(t.dstAccess),
	}

	vk.CmdPipelineBarrier(c.VKCommandBuffer,
		vk.PipelineStageFlags(t.srcStage), vk.PipelineStageFlags(t.dstStage),
		0, 0, nil, 0, nil, 1, []vk.ImageMemoryBarrier{barrier})
	return nil
}

// CopyBufferToImage copies tightly packed pixels from src into the whole of
// dst, which must be in the transfer destination layout
func (c *CommandBuffer) CopyBufferToImage(src *Buffer, dst *Image) {
	vk.CmdCopyBufferToImage(c.VKCommandBuffer, src.VKBuffer, dst.VKImage, vk.ImageLayoutTransferDstOptimal, 1, []vk.BufferImageCopy{{
		ImageSubresource: vk.ImageSubresourceLayers{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LayerCount: 1,
		},
		ImageExtent: vk.Extent3D{
			Width:  dst.Extent.Width,
			Height: dst.Extent.Height,
			Depth:  1,
		},
	}})
}

// CmdBindDescriptorSets binds sets starting at firstSet, dynamicOffsets
// supplies one offset per dynamic buffer descriptor in binding order
func (c *CommandBuffer) CmdBindDescriptorSets(bindPoint vk.PipelineBindPoint, layout *PipelineLayout, firstSet int, dynamicOffsets []uint32, descriptorSets ...*DescriptorSet) {
	sets := make([]vk.DescriptorSet, len(descriptorSets))
	for i := range descriptorSets {
		sets[i] = descriptorSets[i].VKDescriptorSet
	}

	vk.CmdBindDescriptorSets(c.VKCommandBuffer, bindPoint,
		layout.VKPipelineLayout, uint32(firstSet), uint32(len(sets)), sets,
		uint32(len(dynamicOffsets)), dynamicOffsets)
}

// CmdClearColor clears the whole of the first color attachment of the
// current subpass to color
func (c *CommandBuffer) CmdClearColor(extent vk.Extent2D, color [4]float32) {
	attachment := vk.ClearAttachment{
		AspectMask:      vk.ImageAspectFlags(vk.ImageAspectColorBit),
		ColorAttachment: 0,
		ClearValue:      vk.NewClearValue(color[:]),
	}
	rect := vk.ClearRect{
		Rect: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: extent,
		},
		BaseArrayLayer: 0,
		LayerCount:     1,
	}
	vk.CmdClearAttachments(c.VKCommandBuffer, 1, []vk.ClearAttachment{attachment}, 1, []vk.ClearRect{rect})
}
