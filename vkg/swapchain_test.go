package vkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestChoosePresentMode(t *testing.T) {
	all := VKPresentModes{vk.PresentModeImmediate, vk.PresentModeMailbox, vk.PresentModeFifo}

	assert.Equal(t, vk.PresentModeFifo, choosePresentMode(all, true))
	assert.Equal(t, vk.PresentModeMailbox, choosePresentMode(all, false))
	assert.Equal(t, vk.PresentModeImmediate, choosePresentMode(VKPresentModes{vk.PresentModeFifo, vk.PresentModeImmediate}, false))
	assert.Equal(t, vk.PresentModeFifo, choosePresentMode(VKPresentModes{vk.PresentModeFifo}, false))
}

func TestChooseSurfaceFormat(t *testing.T) {
	srgb := vk.ColorSpaceSrgbNonlinear

	_, err := chooseSurfaceFormat(nil)
	assert.Error(t, err)

	f, err := chooseSurfaceFormat(VKSurfaceFormats{{Format: vk.FormatUndefined, ColorSpace: srgb}})
	require.NoError(t, err)
	assert.Equal(t, vk.FormatB8g8r8a8Srgb, f.Format)

	f, err = chooseSurfaceFormat(VKSurfaceFormats{
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: srgb},
		{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: srgb},
		{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: srgb},
	})
	require.NoError(t, err)
	assert.Equal(t, vk.FormatB8g8r8a8Srgb, f.Format)

	f, err = chooseSurfaceFormat(VKSurfaceFormats{
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: srgb},
		{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: srgb},
	})
	require.NoError(t, err)
	assert.Equal(t, vk.FormatR8g8b8a8Srgb, f.Format)

	f, err = chooseSurfaceFormat(VKSurfaceFormats{{Format: vk.FormatR16g16b16a16Sfloat, ColorSpace: srgb}})
	require.NoError(t, err)
	assert.Equal(t, vk.FormatR16g16b16a16Sfloat, f.Format)
}

func TestSwapchainExtent(t *testing.T) {
	caps := &vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: 640, Height: 480},
		MinImageExtent: vk.Extent2D{Width: 1, Height: 1},
		MaxImageExtent: vk.Extent2D{Width: 4096, Height: 4096},
	}
	assert.Equal(t, vk.Extent2D{Width: 640, Height: 480}, swapchainExtent(caps, vk.Extent2D{Width: 800, Height: 600}))

	// the surface leaves the extent to the swapchain
	caps.CurrentExtent = vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32}
	assert.Equal(t, vk.Extent2D{Width: 800, Height: 600}, swapchainExtent(caps, vk.Extent2D{Width: 800, Height: 600}))
	assert.Equal(t, vk.Extent2D{Width: 4096, Height: 1}, swapchainExtent(caps, vk.Extent2D{Width: 5000, Height: 0}))
}
