package vkg

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

type PipelineLayout struct {
	Device           *Device
	VKPipelineLayout vk.PipelineLayout
}

func (d *Device) CreatePipelineLayout(descriptorSetLayouts ...*DescriptorSetLayout) (*PipelineLayout, error) {
	layouts := make([]vk.DescriptorSetLayout, len(descriptorSetLayouts))
	for i, dsl := range descriptorSetLayouts {
		layouts[i] = dsl.VKDescriptorSetLayout
	}

	createInfo := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: uint32(len(layouts)),
		PSetLayouts:    layouts,
	}

	var layout vk.PipelineLayout
	if err := checkResult(vk.CreatePipelineLayout(d.VKDevice, &createInfo, nil, &layout), "create pipeline layout"); err != nil {
		return nil, err
	}
	return &PipelineLayout{Device: d, VKPipelineLayout: layout}, nil
}

func (p *PipelineLayout) Destroy() {
	vk.DestroyPipelineLayout(p.Device.VKDevice, p.VKPipelineLayout, nil)
}

type PipelineCache struct {
	Device          *Device
	VKPipelineCache vk.PipelineCache
}

func (d *Device) CreatePipelineCache() (*PipelineCache, error) {
	createInfo := vk.PipelineCacheCreateInfo{
		SType: vk.StructureTypePipelineCacheCreateInfo,
	}
	var cache vk.PipelineCache
	if err := checkResult(vk.CreatePipelineCache(d.VKDevice, &createInfo, nil, &cache), "create pipeline cache"); err != nil {
		return nil, err
	}
	return &PipelineCache{Device: d, VKPipelineCache: cache}, nil
}

func (c *PipelineCache) Destroy() {
	vk.DestroyPipelineCache(c.Device.VKDevice, c.VKPipelineCache, nil)
}

// GraphicsPipelineConfig is a utility object to ease construction of graphics pipelines
type GraphicsPipelineConfig struct {
	Device         *Device
	ShaderStages   []vk.PipelineShaderStageCreateInfo
	PipelineLayout *PipelineLayout

	// PrimitiveTopology defaults to VK_PRIMITIVE_TOPOLOGY_TRIANGLE_LIST
	PrimitiveTopology vk.PrimitiveTopology

	// PolygonMode defaults to VK_POLYGON_MODE_FILL
	PolygonMode vk.PolygonMode

	// LineWidth of rasterized lines, defaults to 1.0
	LineWidth float32

	// CullMode specifies which triangles will be culled, defaults to none
	CullMode vk.CullModeFlagBits

	// FrontFace defaults to vk.FrontFaceCounterClockwise
	FrontFace vk.FrontFace

	// BlendAttachments defaults to a single attachment writing all channels without blending
	BlendAttachments []vk.PipelineColorBlendAttachmentState

	// DepthTestEnable requires a render pass with a depth attachment, defaults to false
	DepthTestEnable bool

	VertexInputBindingDescriptions   []vk.VertexInputBindingDescription
	VertexInputAttributeDescriptions []vk.VertexInputAttributeDescription

	modules []*ShaderModule
}

// CreateGraphicsPipelineConfig creates a new config object
func (d *Device) CreateGraphicsPipelineConfig() *GraphicsPipelineConfig {
	return &GraphicsPipelineConfig{
		Device:            d,
		PrimitiveTopology: vk.PrimitiveTopologyTriangleList,
		PolygonMode:       vk.PolygonModeFill,
		LineWidth:         1.0,
		CullMode:          vk.CullModeNone,
		FrontFace:         vk.FrontFaceCounterClockwise,
	}
}

// AddShaderStage creates a module from SPIR-V code and adds it as stage,
// the module is destroyed with the config
func (g *GraphicsPipelineConfig) AddShaderStage(code []byte, entryPoint string, stage vk.ShaderStageFlagBits) error {
	module, err := g.Device.CreateShaderModule(stageName(stage), code)
	if err != nil {
		return err
	}
	g.modules = append(g.modules, module)
	g.ShaderStages = append(g.ShaderStages, module.VKPipelineShaderStageCreateInfo(stage, entryPoint))
	return nil
}

func stageName(stage vk.ShaderStageFlagBits) string {
	switch stage {
	case vk.ShaderStageVertexBit:
		return "vertex"
	case vk.ShaderStageFragmentBit:
		return "fragment"
	}
	return "shader"
}

// SetPipelineLayout sets the pipeline layout
func (g *GraphicsPipelineConfig) SetPipelineLayout(layout *PipelineLayout) *GraphicsPipelineConfig {
	g.PipelineLayout = layout
	return g
}

// AddVertexInput adds one interleaved vertex binding and its attributes
func (g *GraphicsPipelineConfig) AddVertexInput(binding vk.VertexInputBindingDescription, attributes []vk.VertexInputAttributeDescription) *GraphicsPipelineConfig {
	g.VertexInputBindingDescriptions = append(g.VertexInputBindingDescriptions, binding)
	g.VertexInputAttributeDescriptions = append(g.VertexInputAttributeDescriptions, attributes...)
	return g
}

// Destroy destroys the shader modules created for the config, they are no
// longer needed once the pipeline exists
func (g *GraphicsPipelineConfig) Destroy() {
	for _, m := range g.modules {
		m.Destroy()
	}
	g.modules = nil
	g.ShaderStages = nil
}

// VKGraphicsPipelineCreateInfo builds the create info for a pipeline with a
// fixed viewport and scissor covering extent
func (g *GraphicsPipelineConfig) VKGraphicsPipelineCreateInfo(extent vk.Extent2D, renderPass vk.RenderPass) (vk.GraphicsPipelineCreateInfo, error) {
	if len(g.ShaderStages) == 0 {
		return vk.GraphicsPipelineCreateInfo{}, errors.New("graphics pipeline has no shader stages")
	}
	if g.PipelineLayout == nil {
		return vk.GraphicsPipelineCreateInfo{}, errors.New("graphics pipeline has no layout")
	}

	vertexInputState := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   uint32(len(g.VertexInputBindingDescriptions)),
		PVertexBindingDescriptions:      g.VertexInputBindingDescriptions,
		VertexAttributeDescriptionCount: uint32(len(g.VertexInputAttributeDescriptions)),
		PVertexAttributeDescriptions:    g.VertexInputAttributeDescriptions,
	}

	inputAssemblyState := vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               g.PrimitiveTopology,
		PrimitiveRestartEnable: vk.False,
	}

	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		PViewports: []vk.Viewport{{
			Width:    float32(extent.Width),
			Height:   float32(extent.Height),
			MinDepth: 0.0,
			MaxDepth: 1.0,
		}},
		ScissorCount: 1,
		PScissors: []vk.Rect2D{{
			Extent: extent,
		}},
	}

	rasterState := vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vk.False,
		RasterizerDiscardEnable: vk.False,
		PolygonMode:             g.PolygonMode,
		LineWidth:               g.LineWidth,
		CullMode:                vk.CullModeFlags(g.CullMode),
		FrontFace:               g.FrontFace,
		DepthBiasEnable:         vk.False,
	}

	multisampleState := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		SampleShadingEnable:  vk.False,
		RasterizationSamples: vk.SampleCount1Bit,
	}

	blendAttachments := g.BlendAttachments
	if blendAttachments == nil {
		blendAttachments = []vk.PipelineColorBlendAttachmentState{{
			ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit),
			BlendEnable:    vk.False,
		}}
	}
	colorBlendState := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: uint32(len(blendAttachments)),
		PAttachments:    blendAttachments,
	}

	createInfo := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(g.ShaderStages)),
		PStages:             g.ShaderStages,
		PVertexInputState:   &vertexInputState,
		PInputAssemblyState: &inputAssemblyState,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterState,
		PMultisampleState:   &multisampleState,
		PColorBlendState:    &colorBlendState,
		Layout:              g.PipelineLayout.VKPipelineLayout,
		RenderPass:          renderPass,
		Subpass:             0,
	}

	if g.DepthTestEnable {
		createInfo.PDepthStencilState = &vk.PipelineDepthStencilStateCreateInfo{
			SType:            vk.StructureTypePipelineDepthStencilStateCreateInfo,
			DepthTestEnable:  vk.True,
			DepthWriteEnable: vk.True,
			DepthCompareOp:   vk.CompareOpLess,
			MaxDepthBounds:   1.0,
		}
	}

	return createInfo, nil
}

// CreateGraphicsPipeline creates the pipeline described by config for renderPass
func (d *Device) CreateGraphicsPipeline(cache *PipelineCache, config *GraphicsPipelineConfig, extent vk.Extent2D, renderPass vk.RenderPass) (vk.Pipeline, error) {
	createInfo, err := config.VKGraphicsPipelineCreateInfo(extent, renderPass)
	if err != nil {
		return vk.NullPipeline, err
	}

	var vkCache vk.PipelineCache
	if cache != nil {
		vkCache = cache.VKPipelineCache
	}

	pipelines := make([]vk.Pipeline, 1)
	res := vk.CreateGraphicsPipelines(d.VKDevice, vkCache, 1, []vk.GraphicsPipelineCreateInfo{createInfo}, nil, pipelines)
	if err := checkResult(res, "create graphics pipeline"); err != nil {
		return vk.NullPipeline, err
	}
	return pipelines[0], nil
}
