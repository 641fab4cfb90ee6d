package vkg

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// VKPresentModes is a list of present modes supported by a surface
type VKPresentModes []vk.PresentMode

// Contains reports whether mode is in the list
func (v VKPresentModes) Contains(mode vk.PresentMode) bool {
	for _, m := range v {
		if m == mode {
			return true
		}
	}
	return false
}

// VKSurfaceFormats is a list of formats supported by a surface
type VKSurfaceFormats []vk.SurfaceFormat

// Filter returns the formats for which f returns true
func (v VKSurfaceFormats) Filter(f func(f vk.SurfaceFormat) bool) VKSurfaceFormats {
	ret := make(VKSurfaceFormats, 0)
	for _, s := range v {
		s.Deref()
		if f(s) {
			ret = append(ret, s)
		}
	}
	return ret
}

// PhysicalDevice is a GPU as reported by the instance
type PhysicalDevice struct {
	DeviceName                 string
	VKPhysicalDevice           vk.PhysicalDevice
	VKPhysicalDeviceProperties vk.PhysicalDeviceProperties
}

func (p *PhysicalDevice) String() string {
	return p.DeviceName
}

// APIVersion returns the Vulkan version implemented by the driver
func (p *PhysicalDevice) APIVersion() Version {
	v := p.VKPhysicalDeviceProperties.ApiVersion
	return Version{Major: int(v >> 22), Minor: int((v >> 12) & 0x3ff), Patch: int(v & 0xfff)}
}

// MinUniformBufferOffsetAlignment is the alignment required for dynamic uniform buffer offsets
func (p *PhysicalDevice) MinUniformBufferOffsetAlignment() uint64 {
	a := uint64(p.VKPhysicalDeviceProperties.Limits.MinUniformBufferOffsetAlignment)
	if a == 0 {
		return 1
	}
	return a
}

func (p *PhysicalDevice) GetSurfacePresentModes(surface vk.Surface) (VKPresentModes, error) {
	var count uint32
	if err := checkResult(vk.GetPhysicalDeviceSurfacePresentModes(p.VKPhysicalDevice, surface, &count, nil), "get surface present modes"); err != nil {
		return nil, err
	}
	modes := make([]vk.PresentMode, count)
	if err := checkResult(vk.GetPhysicalDeviceSurfacePresentModes(p.VKPhysicalDevice, surface, &count, modes), "get surface present modes"); err != nil {
		return nil, err
	}
	return modes, nil
}

func (p *PhysicalDevice) GetSurfaceFormats(surface vk.Surface) (VKSurfaceFormats, error) {
	var count uint32
	if err := checkResult(vk.GetPhysicalDeviceSurfaceFormats(p.VKPhysicalDevice, surface, &count, nil), "get surface formats"); err != nil {
		return nil, err
	}
	formats := make([]vk.SurfaceFormat, count)
	if err := checkResult(vk.GetPhysicalDeviceSurfaceFormats(p.VKPhysicalDevice, surface, &count, formats), "get surface formats"); err != nil {
		return nil, err
	}
	return formats, nil
}

func (p *PhysicalDevice) GetSurfaceCapabilities(surface vk.Surface) (*vk.SurfaceCapabilities, error) {
	var caps vk.SurfaceCapabilities
	if err := checkResult(vk.GetPhysicalDeviceSurfaceCapabilities(p.VKPhysicalDevice, surface, &caps), "get surface capabilities"); err != nil {
		return nil, err
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()
	return &caps, nil
}

// QueueFamilies returns the queue families exposed by the device
func (p *PhysicalDevice) QueueFamilies() QueueFamilySlice {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &count, nil)
	if count == 0 {
		return nil
	}

	props := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &count, props)

	ret := make(QueueFamilySlice, count)
	for i, prop := range props {
		prop.Deref()
		ret[i] = &QueueFamily{Index: i, PhysicalDevice: p, VKQueueFamilyProperties: prop}
	}
	return ret
}

type CreateDeviceOptions struct {
	EnabledExtensions []string
	EnabledLayers     []string
}

// CreateLogicalDeviceWithOptions creates a logical device with one queue from each of qfs
func (p *PhysicalDevice) CreateLogicalDeviceWithOptions(qfs QueueFamilySlice, options *CreateDeviceOptions) (*Device, error) {
	queueCreateInfos := make([]vk.DeviceQueueCreateInfo, len(qfs))
	for j, q := range qfs {
		queueCreateInfos[j] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: uint32(q.Index),
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}
	}

	var features vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(p.VKPhysicalDevice, &features)

	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: uint32(len(queueCreateInfos)),
		PQueueCreateInfos:    queueCreateInfos,
		PEnabledFeatures:     []vk.PhysicalDeviceFeatures{features},
	}

	if options != nil {
		if len(options.EnabledExtensions) > 0 {
			deviceCreateInfo.EnabledExtensionCount = uint32(len(options.EnabledExtensions))
			deviceCreateInfo.PpEnabledExtensionNames = safeStrings(options.EnabledExtensions)
		}
		if len(options.EnabledLayers) > 0 {
			deviceCreateInfo.EnabledLayerCount = uint32(len(options.EnabledLayers))
			deviceCreateInfo.PpEnabledLayerNames = safeStrings(options.EnabledLayers)
		}
	}

	var ldevice vk.Device
	if err := checkResult(vk.CreateDevice(p.VKPhysicalDevice, &deviceCreateInfo, nil, &ldevice), "create device"); err != nil {
		return nil, err
	}

	return &Device{PhysicalDevice: p, VKDevice: ldevice}, nil
}

// VKPhysicalDeviceMemoryProperties returns the memory types and heaps of the device
func (p *PhysicalDevice) VKPhysicalDeviceMemoryProperties() vk.PhysicalDeviceMemoryProperties {
	var mp vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(p.VKPhysicalDevice, &mp)
	mp.Deref()
	return mp
}

// FindMemoryType returns the index of the first memory type allowed by
// memoryTypeBits which has all of properties
func (p *PhysicalDevice) FindMemoryType(memoryTypeBits uint32, properties vk.MemoryPropertyFlagBits) (uint32, error) {
	mp := p.VKPhysicalDeviceMemoryProperties()

	flags := make([]vk.MemoryPropertyFlagBits, mp.MemoryTypeCount)
	for i := range flags {
		mt := mp.MemoryTypes[i]
		mt.Deref()
		flags[i] = vk.MemoryPropertyFlagBits(mt.PropertyFlags)
	}

	if i, ok := matchMemoryType(flags, memoryTypeBits, properties); ok {
		return i, nil
	}
	return 0, errors.Errorf("no memory type matches bits %#x with properties %#x", memoryTypeBits, uint32(properties))
}

// matchMemoryType searches types, the property flags of each memory type in
// order, see the documentation of VkPhysicalDeviceMemoryProperties
func matchMemoryType(types []vk.MemoryPropertyFlagBits, memoryTypeBits uint32, properties vk.MemoryPropertyFlagBits) (uint32, bool) {
	for i, flags := range types {
		if memoryTypeBits&(1<<uint(i)) != 0 && flags&properties == properties {
			return uint32(i), true
		}
	}
	return 0, false
}
