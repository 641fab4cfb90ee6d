package vkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestCheckResult(t *testing.T) {
	assert.NoError(t, checkResult(vk.Success, "create buffer"))

	err := checkResult(vk.ErrorOutOfDeviceMemory, "create buffer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create buffer")
}

func TestSafeStrings(t *testing.T) {
	assert.Nil(t, safeStrings(nil))

	in := []string{"VK_KHR_surface", "VK_KHR_swapchain\x00"}
	out := safeStrings(in)
	assert.Equal(t, []string{"VK_KHR_surface\x00", "VK_KHR_swapchain\x00"}, out)
	assert.Equal(t, "VK_KHR_surface", in[0], "input is left untouched")
}
