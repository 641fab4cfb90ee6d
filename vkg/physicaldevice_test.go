package vkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestMatchMemoryType(t *testing.T) {
	types := []vk.MemoryPropertyFlagBits{
		vk.MemoryPropertyDeviceLocalBit,
		vk.MemoryPropertyHostVisibleBit,
		vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit,
		vk.MemoryPropertyDeviceLocalBit | vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit,
	}
	hostCoherent := vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit

	i, ok := matchMemoryType(types, 0xf, hostCoherent)
	assert.True(t, ok)
	assert.Equal(t, uint32(2), i)

	// type 2 is not allowed by the resource
	i, ok = matchMemoryType(types, 0b1001, hostCoherent)
	assert.True(t, ok)
	assert.Equal(t, uint32(3), i)

	i, ok = matchMemoryType(types, 0xf, vk.MemoryPropertyDeviceLocalBit)
	assert.True(t, ok)
	assert.Equal(t, uint32(0), i)

	_, ok = matchMemoryType(types, 0b0011, hostCoherent)
	assert.False(t, ok)

	_, ok = matchMemoryType(types, 0xf, vk.MemoryPropertyLazilyAllocatedBit)
	assert.False(t, ok)
}

func TestPresentModesContains(t *testing.T) {
	modes := VKPresentModes{vk.PresentModeFifo, vk.PresentModeMailbox}
	assert.True(t, modes.Contains(vk.PresentModeMailbox))
	assert.False(t, modes.Contains(vk.PresentModeImmediate))
}
