package vkg

import (
	"encoding/binary"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

const spirvMagic = 0x07230203

type ShaderModule struct {
	Device         *Device
	Description    string
	VKShaderModule vk.ShaderModule
}

// CreateShaderModule creates a shader module from a SPIR-V binary
func (d *Device) CreateShaderModule(description string, code []byte) (*ShaderModule, error) {
	words, err := spirvWords(code)
	if err != nil {
		return nil, errors.Wrap(err, description)
	}

	var module vk.ShaderModule
	res := vk.CreateShaderModule(d.VKDevice, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint64(len(code)),
		PCode:    words,
	}, nil, &module)
	if err := checkResult(res, "create "+description+" shader module"); err != nil {
		return nil, err
	}

	return &ShaderModule{Device: d, Description: description, VKShaderModule: module}, nil
}

func (s *ShaderModule) VKPipelineShaderStageCreateInfo(stage vk.ShaderStageFlagBits, entryPoint string) vk.PipelineShaderStageCreateInfo {
	return vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  stage,
		Module: s.VKShaderModule,
		PName:  safeString(entryPoint),
	}
}

func (s *ShaderModule) Destroy() {
	vk.DestroyShaderModule(s.Device.VKDevice, s.VKShaderModule, nil)
}

// spirvWords copies a little endian SPIR-V binary into words, the input
// may not be aligned for uint32 access
func spirvWords(code []byte) ([]uint32, error) {
	if len(code) < 20 || len(code)%4 != 0 {
		return nil, errors.Errorf("SPIR-V binary has invalid length %d", len(code))
	}
	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(code[i*4:])
	}
	if words[0] != spirvMagic {
		return nil, errors.Errorf("bad SPIR-V magic %#08x", words[0])
	}
	return words, nil
}
