package vkg

import (
	"time"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// uploadTimeout bounds the wait for a texture upload to finish
const uploadTimeout = 10 * time.Second

// StageTexture creates an RGBA8 texture of extent from tightly packed pix.
// The pixels are copied into a buffer from the staging pool and transferred
// on a one time command buffer, the call returns once the copy completed and
// the image is ready to be sampled.
func (p *ImageResourcePool) StageTexture(pix []byte, extent vk.Extent2D, pool *CommandPool, queue *Queue) (*ImageResource, error) {
	if want := int(extent.Width) * int(extent.Height) * 4; len(pix) != want {
		return nil, errors.Errorf("texture data is %d bytes, %dx%d needs %d", len(pix), extent.Width, extent.Height, want)
	}

	staging := p.ResourceManager.StagingPool()
	if staging == nil {
		return nil, errors.New("no 'staging' pool, it must be created before textures are uploaded")
	}

	src, err := staging.AllocateBuffer(uint64(len(pix)), vk.BufferUsageTransferSrcBit)
	if err != nil {
		return nil, errors.Wrap(err, "staging buffer")
	}
	defer src.Free()

	dst := src.Bytes()
	if dst == nil {
		return nil, errors.New("staging buffer is not mapped")
	}
	copy(dst, pix)

	img, err := p.AllocateImage(extent, vk.FormatR8g8b8a8Unorm, vk.ImageTilingOptimal, vk.ImageUsageTransferDstBit|vk.ImageUsageSampledBit)
	if err != nil {
		return nil, err
	}

	if err := p.upload(src, img, pool, queue); err != nil {
		img.Free()
		return nil, err
	}
	return img, nil
}

func (p *ImageResourcePool) upload(src *BufferResource, img *ImageResource, pool *CommandPool, queue *Queue) error {
	cmd, err := pool.AllocateBuffer(vk.CommandBufferLevelPrimary)
	if err != nil {
		return err
	}
	defer pool.FreeBuffer(cmd)

	if err := cmd.BeginOneTime(); err != nil {
		return err
	}
	if err := cmd.TransitionImageLayout(&img.Image, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal); err != nil {
		return err
	}
	cmd.CopyBufferToImage(&src.Buffer, &img.Image)
	if err := cmd.TransitionImageLayout(&img.Image, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal); err != nil {
		return err
	}
	if err := cmd.End(); err != nil {
		return err
	}

	fence, err := p.Device.CreateFence(false)
	if err != nil {
		return err
	}
	defer fence.Destroy()

	if err := queue.SubmitWithFence(fence, cmd); err != nil {
		return err
	}
	return errors.Wrap(fence.Wait(uploadTimeout), "texture upload")
}
