package vkg

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type Queue struct {
	Device      *Device
	QueueFamily *QueueFamily
	VKQueue     vk.Queue
}

func (q *Queue) WaitIdle() error {
	return checkResult(vk.QueueWaitIdle(q.VKQueue), "queue wait idle")
}

// SubmitWithFence submits buffers without any semaphores, fence is signaled on completion
func (q *Queue) SubmitWithFence(fence *Fence, buffers ...*CommandBuffer) error {
	return q.Submit(fence.VKFence, nil, nil, buffers...)
}

// Submit submits buffers for execution once wait is signaled, signal is
// signaled and fence is set when they complete. Either semaphore may be nil.
func (q *Queue) Submit(fence vk.Fence, wait, signal []vk.Semaphore, buffers ...*CommandBuffer) error {
	b := make([]vk.CommandBuffer, len(buffers))
	for i := range buffers {
		b[i] = buffers[i].VKCommandBuffer
	}

	submitInfo := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		CommandBufferCount:   uint32(len(b)),
		PCommandBuffers:      b,
		WaitSemaphoreCount:   uint32(len(wait)),
		PWaitSemaphores:      wait,
		SignalSemaphoreCount: uint32(len(signal)),
		PSignalSemaphores:    signal,
	}
	if len(wait) > 0 {
		stages := make([]vk.PipelineStageFlags, len(wait))
		for i := range stages {
			stages[i] = vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)
		}
		submitInfo.PWaitDstStageMask = stages
	}

	return checkResult(vk.QueueSubmit(q.VKQueue, 1, []vk.SubmitInfo{submitInfo}, fence), "queue submit")
}

// Present queues imageIndex of swapchain for presentation once wait is signaled
func (q *Queue) Present(swapchain *Swapchain, imageIndex uint32, wait ...vk.Semaphore) error {
	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: uint32(len(wait)),
		PWaitSemaphores:    wait,
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{swapchain.VKSwapchain},
		PImageIndices:      []uint32{imageIndex},
	}
	res := vk.QueuePresent(q.VKQueue, &presentInfo)
	if res == vk.Suboptimal {
		// the window is not resizable, a suboptimal swapchain still presents correctly
		return nil
	}
	return checkResult(res, "queue present")
}

func (q *Queue) String() string {
	return fmt.Sprintf("{Device: %s QueueFamily: %s}", q.Device.String(), q.QueueFamily.String())
}
