package vkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestTransitionForUpload(t *testing.T) {
	tr, ok := transitionFor(vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal)
	assert.True(t, ok)
	assert.Equal(t, vk.AccessFlagBits(0), tr.srcAccess)
	assert.Equal(t, vk.AccessTransferWriteBit, tr.dstAccess)
	assert.Equal(t, vk.PipelineStageTopOfPipeBit, tr.srcStage)
	assert.Equal(t, vk.PipelineStageTransferBit, tr.dstStage)

	tr, ok = transitionFor(vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal)
	assert.True(t, ok)
	assert.Equal(t, vk.AccessTransferWriteBit, tr.srcAccess)
	assert.Equal(t, vk.AccessShaderReadBit, tr.dstAccess)
	assert.Equal(t, vk.PipelineStageFragmentShaderBit, tr.dstStage)
}

func TestTransitionForUnsupported(t *testing.T) {
	_, ok := transitionFor(vk.ImageLayoutUndefined, vk.ImageLayoutShaderReadOnlyOptimal)
	assert.False(t, ok)

	_, ok = transitionFor(vk.ImageLayoutShaderReadOnlyOptimal, vk.ImageLayoutTransferDstOptimal)
	assert.False(t, ok)
}
