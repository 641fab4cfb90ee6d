package vkg

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

type Swapchain struct {
	Extent      vk.Extent2D
	Format      vk.Format
	PresentMode vk.PresentMode
	Device      *Device
	VKSwapchain vk.Swapchain
}

func (s *Swapchain) Destroy() {
	vk.DestroySwapchain(s.Device.VKDevice, s.VKSwapchain, nil)
}

// GetImages returns the images owned by the swapchain, they must not be destroyed
func (s *Swapchain) GetImages() ([]*Image, error) {
	var count uint32
	if err := checkResult(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &count, nil), "get swapchain images"); err != nil {
		return nil, err
	}
	images := make([]vk.Image, count)
	if err := checkResult(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &count, images), "get swapchain images"); err != nil {
		return nil, err
	}

	ret := make([]*Image, count)
	for i := range images {
		ret[i] = &Image{Device: s.Device, VKImage: images[i], VKFormat: s.Format, Extent: s.Extent}
	}
	return ret, nil
}

type CreateSwapchainOptions struct {
	// ActualSize is used when the surface lets the swapchain pick its extent
	ActualSize                vk.Extent2D
	DesiredNumSwapchainImages int
	// VSync selects FIFO presentation
	VSync bool
}

// choosePresentMode returns FIFO when vsync is wanted, which every device
// supports, otherwise the first of mailbox or immediate that is available
func choosePresentMode(modes VKPresentModes, vsync bool) vk.PresentMode {
	if !vsync {
		for _, m := range []vk.PresentMode{vk.PresentModeMailbox, vk.PresentModeImmediate} {
			if modes.Contains(m) {
				return m
			}
		}
	}
	return vk.PresentModeFifo
}

// chooseSurfaceFormat prefers an sRGB BGRA8 format so shaders write linear
// color, falling back to the first format reported
func chooseSurfaceFormat(formats VKSurfaceFormats) (vk.SurfaceFormat, error) {
	if len(formats) == 0 {
		return vk.SurfaceFormat{}, errors.New("surface reports no formats")
	}
	for i := range formats {
		formats[i].Deref()
	}
	preferred := vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear}

	// a single undefined format means the surface has no preference
	if len(formats) == 1 && formats[0].Format == vk.FormatUndefined {
		return preferred, nil
	}
	for _, want := range []vk.Format{vk.FormatB8g8r8a8Srgb, vk.FormatR8g8b8a8Srgb} {
		m := formats.Filter(func(f vk.SurfaceFormat) bool {
			return f.Format == want && f.ColorSpace == vk.ColorSpaceSrgbNonlinear
		})
		if len(m) > 0 {
			return m[0], nil
		}
	}
	return formats[0], nil
}

// swapchainExtent returns the surface's current extent unless the surface
// leaves it to the swapchain, then actual clamped to the supported range
func swapchainExtent(caps *vk.SurfaceCapabilities, actual vk.Extent2D) vk.Extent2D {
	if caps.CurrentExtent.Width != vk.MaxUint32 {
		return caps.CurrentExtent
	}
	return vk.Extent2D{
		Width:  clampUint32(actual.Width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clampUint32(actual.Height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

func clampUint32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if hi != 0 && v > hi {
		return hi
	}
	return v
}

// DefaultNumSwapchainImages is one more than the surface minimum, bounded by its maximum
func (d *Device) DefaultNumSwapchainImages(surface vk.Surface) (int, error) {
	caps, err := d.PhysicalDevice.GetSurfaceCapabilities(surface)
	if err != nil {
		return 0, err
	}
	n := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && n > caps.MaxImageCount {
		n = caps.MaxImageCount
	}
	return int(n), nil
}

func (d *Device) CreateSwapchain(surface vk.Surface, graphicsQueue, presentQueue *Queue, options CreateSwapchainOptions) (*Swapchain, error) {
	modes, err := d.PhysicalDevice.GetSurfacePresentModes(surface)
	if err != nil {
		return nil, err
	}
	presentMode := choosePresentMode(modes, options.VSync)

	formats, err := d.PhysicalDevice.GetSurfaceFormats(surface)
	if err != nil {
		return nil, err
	}
	format, err := chooseSurfaceFormat(formats)
	if err != nil {
		return nil, err
	}

	caps, err := d.PhysicalDevice.GetSurfaceCapabilities(surface)
	if err != nil {
		return nil, err
	}
	extent := swapchainExtent(caps, options.ActualSize)

	numImages := options.DesiredNumSwapchainImages
	if numImages == 0 {
		numImages, err = d.DefaultNumSwapchainImages(surface)
		if err != nil {
			return nil, err
		}
	}

	createInfo := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          surface,
		MinImageCount:    uint32(numImages),
		ImageFormat:      format.Format,
		ImageColorSpace:  format.ColorSpace,
		ImageExtent:      extent,
		PresentMode:      presentMode,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageArrayLayers: 1,
		Clipped:          vk.True,
		PreTransform:     caps.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		OldSwapchain:     vk.NullSwapchain,
		ImageSharingMode: vk.SharingModeExclusive,
	}

	if graphicsQueue.QueueFamily.Index != presentQueue.QueueFamily.Index {
		createInfo.QueueFamilyIndexCount = 2
		createInfo.PQueueFamilyIndices = []uint32{uint32(graphicsQueue.QueueFamily.Index), uint32(presentQueue.QueueFamily.Index)}
		createInfo.ImageSharingMode = vk.SharingModeConcurrent
	}

	var swapchain vk.Swapchain
	if err := checkResult(vk.CreateSwapchain(d.VKDevice, &createInfo, nil, &swapchain), "create swapchain"); err != nil {
		return nil, err
	}

	return &Swapchain{
		VKSwapchain: swapchain,
		Device:      d,
		Extent:      extent,
		Format:      format.Format,
		PresentMode: presentMode,
	}, nil
}
