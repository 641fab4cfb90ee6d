package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

// CreateSampler creates a single mip sampler using filter for magnification
// and minification and addressMode on every axis
func (d *Device) CreateSampler(filter vk.Filter, addressMode vk.SamplerAddressMode) (vk.Sampler, error) {
	var sampler vk.Sampler
	res := vk.CreateSampler(d.VKDevice, &vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		MagFilter:               filter,
		MinFilter:               filter,
		MipmapMode:              vk.SamplerMipmapModeLinear,
		AddressModeU:            addressMode,
		AddressModeV:            addressMode,
		AddressModeW:            addressMode,
		AnisotropyEnable:        vk.False,
		MaxAnisotropy:           1,
		CompareOp:               vk.CompareOpAlways,
		BorderColor:             vk.BorderColorIntOpaqueBlack,
		UnnormalizedCoordinates: vk.False,
	}, nil, &sampler)
	return sampler, checkResult(res, "create sampler")
}

func (d *Device) DestroySampler(s vk.Sampler) {
	vk.DestroySampler(d.VKDevice, s, nil)
}
