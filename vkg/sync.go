package vkg

import (
	"time"

	vk "github.com/vulkan-go/vulkan"
)

// Fence lets the host wait for submitted work
type Fence struct {
	Device  *Device
	VKFence vk.Fence
}

// CreateFence creates a fence, signaled creates it in the signaled state
func (d *Device) CreateFence(signaled bool) (*Fence, error) {
	createInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}
	if signaled {
		createInfo.Flags = vk.FenceCreateFlags(vk.FenceCreateSignaledBit)
	}

	var fence vk.Fence
	if err := checkResult(vk.CreateFence(d.VKDevice, &createInfo, nil, &fence), "create fence"); err != nil {
		return nil, err
	}
	return &Fence{Device: d, VKFence: fence}, nil
}

// Wait blocks until the fence is signaled or timeout passes, a negative
// timeout waits forever
func (f *Fence) Wait(timeout time.Duration) error {
	t := uint64(vk.MaxUint64)
	if timeout >= 0 {
		t = uint64(timeout.Nanoseconds())
	}
	res := vk.WaitForFences(f.Device.VKDevice, 1, []vk.Fence{f.VKFence}, vk.True, t)
	return checkResult(res, "wait for fence")
}

// Signaled reports whether the fence is currently signaled
func (f *Fence) Signaled() bool {
	return vk.GetFenceStatus(f.Device.VKDevice, f.VKFence) == vk.Success
}

func (f *Fence) Reset() error {
	return checkResult(vk.ResetFences(f.Device.VKDevice, 1, []vk.Fence{f.VKFence}), "reset fence")
}

func (f *Fence) Destroy() {
	vk.DestroyFence(f.Device.VKDevice, f.VKFence, nil)
}

// VKCreateSemaphore creates a native vulkan semaphore object
func (d *Device) VKCreateSemaphore() (vk.Semaphore, error) {
	createInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	var sema vk.Semaphore
	err := checkResult(vk.CreateSemaphore(d.VKDevice, &createInfo, nil, &sema), "create semaphore")
	return sema, err
}

func (d *Device) VKDestroySemaphore(s vk.Semaphore) {
	vk.DestroySemaphore(d.VKDevice, s, nil)
}
