package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorSetLayout describes the bindings of a descriptor set
type DescriptorSetLayout struct {
	Device                        *Device
	VKDescriptorSetLayout         vk.DescriptorSetLayout
	VKDescriptorSetLayoutBindings []vk.DescriptorSetLayoutBinding
}

// AddBinding adds a single descriptor binding visible to stages
func (d *DescriptorSetLayout) AddBinding(binding int, dtype vk.DescriptorType, stages vk.ShaderStageFlagBits) *DescriptorSetLayout {
	d.VKDescriptorSetLayoutBindings = append(d.VKDescriptorSetLayoutBindings, vk.DescriptorSetLayoutBinding{
		Binding:         uint32(binding),
		DescriptorType:  dtype,
		DescriptorCount: 1,
		StageFlags:      vk.ShaderStageFlags(stages),
	})
	return d
}

// CreateDescriptorSetLayout creates the layout described by layout
func (d *Device) CreateDescriptorSetLayout(layout *DescriptorSetLayout) (*DescriptorSetLayout, error) {
	createInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(layout.VKDescriptorSetLayoutBindings)),
		PBindings:    layout.VKDescriptorSetLayoutBindings,
	}

	var dsl vk.DescriptorSetLayout
	if err := checkResult(vk.CreateDescriptorSetLayout(d.VKDevice, &createInfo, nil, &dsl), "create descriptor set layout"); err != nil {
		return nil, err
	}
	layout.Device = d
	layout.VKDescriptorSetLayout = dsl
	return layout, nil
}

func (d *DescriptorSetLayout) Destroy() {
	vk.DestroyDescriptorSetLayout(d.Device.VKDevice, d.VKDescriptorSetLayout, nil)
}

// DescriptorPool is what descriptor sets are allocated from
type DescriptorPool struct {
	Device               *Device
	VKDescriptorPool     vk.DescriptorPool
	VKDescriptorPoolSize []vk.DescriptorPoolSize
}

// AddPoolSize informs the descriptor pool how many of a certain descriptor type it will contain
func (d *DescriptorPool) AddPoolSize(dtype vk.DescriptorType, count int) *DescriptorPool {
	d.VKDescriptorPoolSize = append(d.VKDescriptorPoolSize, vk.DescriptorPoolSize{
		Type:            dtype,
		DescriptorCount: uint32(count),
	})
	return d
}

// CreateDescriptorPool creates pool with room for maxSets sets which may be freed individually
func (d *Device) CreateDescriptorPool(pool *DescriptorPool, maxSets int) (*DescriptorPool, error) {
	createInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       uint32(maxSets),
		Flags:         vk.DescriptorPoolCreateFlags(vk.DescriptorPoolCreateFreeDescriptorSetBit),
		PoolSizeCount: uint32(len(pool.VKDescriptorPoolSize)),
		PPoolSizes:    pool.VKDescriptorPoolSize,
	}

	var dp vk.DescriptorPool
	if err := checkResult(vk.CreateDescriptorPool(d.VKDevice, &createInfo, nil, &dp), "create descriptor pool"); err != nil {
		return nil, err
	}
	pool.Device = d
	pool.VKDescriptorPool = dp
	return pool, nil
}

// Allocate allocates a descriptor set with layout from the pool
func (d *DescriptorPool) Allocate(layout *DescriptorSetLayout) (*DescriptorSet, error) {
	allocateInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     d.VKDescriptorPool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{layout.VKDescriptorSetLayout},
	}

	var set vk.DescriptorSet
	if err := checkResult(vk.AllocateDescriptorSets(d.Device.VKDevice, &allocateInfo, &set), "allocate descriptor set"); err != nil {
		return nil, err
	}
	return &DescriptorSet{Device: d.Device, DescriptorPool: d, VKDescriptorSet: set}, nil
}

func (d *DescriptorPool) Free(ds *DescriptorSet) error {
	set := ds.VKDescriptorSet
	return checkResult(vk.FreeDescriptorSets(d.Device.VKDevice, d.VKDescriptorPool, 1, &set), "free descriptor set")
}

func (d *DescriptorPool) Destroy() {
	vk.DestroyDescriptorPool(d.Device.VKDevice, d.VKDescriptorPool, nil)
}

// DescriptorSet is a binding of resources to a descriptor, per a specific DescriptorSetLayout
type DescriptorSet struct {
	Device          *Device
	DescriptorPool  *DescriptorPool
	VKDescriptorSet vk.DescriptorSet

	writes []vk.WriteDescriptorSet
}

// AddBuffer queues a write of size bytes of b starting at offset to dstBinding
func (du *DescriptorSet) AddBuffer(dstBinding int, dtype vk.DescriptorType, b *Buffer, offset, size uint64) {
	du.writes = append(du.writes, vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstBinding:      uint32(dstBinding),
		DescriptorCount: 1,
		DescriptorType:  dtype,
		PBufferInfo: []vk.DescriptorBufferInfo{{
			Buffer: b.VKBuffer,
			Offset: vk.DeviceSize(offset),
			Range:  vk.DeviceSize(size),
		}},
	})
}

// AddCombinedImageSampler queues a write of an image view and sampler to dstBinding
func (du *DescriptorSet) AddCombinedImageSampler(dstBinding int, layout vk.ImageLayout, imageView vk.ImageView, sampler vk.Sampler) {
	du.writes = append(du.writes, vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstBinding:      uint32(dstBinding),
		DescriptorCount: 1,
		DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
		PImageInfo: []vk.DescriptorImageInfo{{
			Sampler:     sampler,
			ImageView:   imageView,
			ImageLayout: layout,
		}},
	})
}

// Write applies the queued writes to the descriptor set
func (du *DescriptorSet) Write() {
	for i := range du.writes {
		du.writes[i].DstSet = du.VKDescriptorSet
	}
	vk.UpdateDescriptorSets(du.Device.VKDevice, uint32(len(du.writes)), du.writes, 0, nil)
	du.writes = nil
}
