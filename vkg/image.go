package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

// Image is a single mip 2D image
type Image struct {
	Device   *Device
	VKImage  vk.Image
	VKFormat vk.Format
	Extent   vk.Extent2D
}

// CreateImageWithOptions creates an image without memory bound to it
func (d *Device) CreateImageWithOptions(extent vk.Extent2D, format vk.Format, tiling vk.ImageTiling, usage vk.ImageUsageFlagBits) (*Image, error) {
	imageInfo := vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: vk.ImageType2d,
		Extent: vk.Extent3D{
			Width:  extent.Width,
			Height: extent.Height,
			Depth:  1,
		},
		MipLevels:     1,
		ArrayLayers:   1,
		Format:        format,
		Tiling:        tiling,
		InitialLayout: vk.ImageLayoutUndefined,
		Usage:         vk.ImageUsageFlags(usage),
		Samples:       vk.SampleCount1Bit,
		SharingMode:   vk.SharingModeExclusive,
	}

	var image vk.Image
	if err := checkResult(vk.CreateImage(d.VKDevice, &imageInfo, nil, &image), "create image"); err != nil {
		return nil, err
	}

	return &Image{Device: d, VKImage: image, VKFormat: format, Extent: extent}, nil
}

func (i *Image) VKMemoryRequirements() vk.MemoryRequirements {
	var mr vk.MemoryRequirements
	vk.GetImageMemoryRequirements(i.Device.VKDevice, i.VKImage, &mr)
	mr.Deref()
	return mr
}

func (i *Image) Destroy() {
	vk.DestroyImage(i.Device.VKDevice, i.VKImage, nil)
}

// ImageView describes how an image is read or rendered to
type ImageView struct {
	Device      *Device
	VKImageView vk.ImageView
}

// CreateImageView creates a 2D color view of the whole image
func (i *Image) CreateImageView() (*ImageView, error) {
	createInfo := &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    i.VKImage,
		ViewType: vk.ImageViewType2d,
		Format:   i.VKFormat,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleR,
			G: vk.ComponentSwizzleG,
			B: vk.ComponentSwizzleB,
			A: vk.ComponentSwizzleA,
		},
		SubresourceRange: colorSubresourceRange(),
	}

	var view vk.ImageView
	if err := checkResult(vk.CreateImageView(i.Device.VKDevice, createInfo, nil, &view), "create image view"); err != nil {
		return nil, err
	}
	return &ImageView{Device: i.Device, VKImageView: view}, nil
}

func (i *ImageView) Destroy() {
	vk.DestroyImageView(i.Device.VKDevice, i.VKImageView, nil)
}

func colorSubresourceRange() vk.ImageSubresourceRange {
	return vk.ImageSubresourceRange{
		AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
		LevelCount: 1,
		LayerCount: 1,
	}
}

// layoutTransition holds the access masks and stages of an image layout change
type layoutTransition struct {
	srcAccess, dstAccess vk.AccessFlagBits
	srcStage, dstStage   vk.PipelineStageFlagBits
}

// transitionFor returns the barrier parameters for the layout changes used
// when uploading a texture, ok is false for any other change
func transitionFor(oldLayout, newLayout vk.ImageLayout) (layoutTransition, bool) {
	switch {
	case oldLayout == vk.ImageLayoutUndefined && newLayout == vk.ImageLayoutTransferDstOptimal:
		return layoutTransition{
			dstAccess: vk.AccessTransferWriteBit,
			srcStage:  vk.PipelineStageTopOfPipeBit,
			dstStage:  vk.PipelineStageTransferBit,
		}, true
	case oldLayout == vk.ImageLayoutTransferDstOptimal && newLayout == vk.ImageLayoutShaderReadOnlyOptimal:
		return layoutTransition{
			srcAccess: vk.AccessTransferWriteBit,
			dstAccess: vk.AccessShaderReadBit,
			srcStage:  vk.PipelineStageTransferBit,
			dstStage:  vk.PipelineStageFragmentShaderBit,
		}, true
	}
	return layoutTransition{}, false
}
