package vkquad

import (
	vk "github.com/vulkan-go/vulkan"
)

type PipelineBuilder struct {
	_shaderStages         []vk.PipelineShaderStageCreateInfo
	_bindings             []vk.VertexInputBindingDescription
	_attributes           []vk.VertexInputAttributeDescription
	_vertexInputInfo      vk.PipelineVertexInputStateCreateInfo
	_inputAssembly        vk.PipelineInputAssemblyStateCreateInfo
	_viewport             vk.Viewport
	_scissor              vk.Rect2D
	_rasterizer           vk.PipelineRasterizationStateCreateInfo
	_colorBlendAttachment vk.PipelineColorBlendAttachmentState
	_multisampling        vk.PipelineMultisampleStateCreateInfo
}

//Quad pipeline: one vertex binding, no depth, no blending
func NewPipelineBuilder(vert, frag vk.ShaderModule, extent vk.Extent2D) *PipelineBuilder {

	pb := PipelineBuilder{}

	//Shader Stages
	pb._shaderStages = []vk.PipelineShaderStageCreateInfo{
		{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageVertexBit,
			Module: vert,
			PName:  safeString("main"),
		},
		{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageFragmentBit,
			Module: frag,
			PName:  safeString("main"),
		},
	}

	//Vertex Info
	pb._bindings = []vk.VertexInputBindingDescription{VertexBindingDescription()}
	pb._attributes = VertexAttributeDescriptions()
	pb._vertexInputInfo = vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   uint32(len(pb._bindings)),
		PVertexBindingDescriptions:      pb._bindings,
		VertexAttributeDescriptionCount: uint32(len(pb._attributes)),
		PVertexAttributeDescriptions:    pb._attributes,
	}

	//Input Assembly
	pb._inputAssembly = vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               vk.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: vk.False,
	}

	pb._viewport = vk.Viewport{
		X:        0.0,
		Y:        0.0,
		Width:    float32(extent.Width),
		Height:   float32(extent.Height),
		MinDepth: 0.0,
		MaxDepth: 1.0,
	}
	pb._scissor = vk.Rect2D{Offset: vk.Offset2D{}, Extent: extent}

	//Rasterization CreatInfo
	rasterizer := vk.PipelineRasterizationStateCreateInfo{}
	rasterizer.SType = vk.StructureTypePipelineRasterizationStateCreateInfo
	rasterizer.DepthClampEnable = vk.False
	rasterizer.RasterizerDiscardEnable = vk.False
	rasterizer.PolygonMode = vk.PolygonModeFill
	rasterizer.CullMode = vk.CullModeFlags(vk.CullModeBackBit)
	rasterizer.FrontFace = vk.FrontFaceClockwise
	rasterizer.DepthBiasEnable = vk.False
	rasterizer.LineWidth = 1.0

	pb._rasterizer = rasterizer

	//Multisample State
	mss := vk.PipelineMultisampleStateCreateInfo{}
	mss.SType = vk.StructureTypePipelineMultisampleStateCreateInfo
	mss.SampleShadingEnable = vk.False
	mss.RasterizationSamples = vk.SampleCount1Bit
	mss.MinSampleShading = 1.0
	mss.AlphaToCoverageEnable = vk.False
	mss.AlphaToOneEnable = vk.False

	pb._multisampling = mss

	//Color Blend
	cbb := vk.PipelineColorBlendAttachmentState{}
	cbb.ColorWriteMask = vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit)
	cbb.BlendEnable = vk.False

	pb._colorBlendAttachment = cbb

	return &pb
}

// pipelineState keeps every slice referenced by a create info alive until the
// pipeline has been created.
type pipelineState struct {
	viewports   []vk.Viewport
	scissors    []vk.Rect2D
	attachments []vk.PipelineColorBlendAttachmentState
	viewport    vk.PipelineViewportStateCreateInfo
	blend       vk.PipelineColorBlendStateCreateInfo
	info        vk.GraphicsPipelineCreateInfo
}

func (p *PipelineBuilder) describe(renderPass vk.RenderPass, layout vk.PipelineLayout) *pipelineState {
	s := &pipelineState{
		viewports:   []vk.Viewport{p._viewport},
		scissors:    []vk.Rect2D{p._scissor},
		attachments: []vk.PipelineColorBlendAttachmentState{p._colorBlendAttachment},
	}

	s.viewport = vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		PViewports:    s.viewports,
		ScissorCount:  1,
		PScissors:     s.scissors,
	}

	// Blending is off, colour is written straight through.
	s.blend = vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOpEnable:   vk.False,
		LogicOp:         vk.LogicOpCopy,
		AttachmentCount: uint32(len(s.attachments)),
		PAttachments:    s.attachments,
	}

	s.info = vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(p._shaderStages)),
		PStages:             p._shaderStages,
		PVertexInputState:   &p._vertexInputInfo,
		PInputAssemblyState: &p._inputAssembly,
		PViewportState:      &s.viewport,
		PRasterizationState: &p._rasterizer,
		PMultisampleState:   &p._multisampling,
		PColorBlendState:    &s.blend,
		Layout:              layout,
		RenderPass:          renderPass,
		Subpass:             0,
		BasePipelineIndex:   -1,
	}
	return s
}

func (p *PipelineBuilder) Build(device vk.Device, renderPass vk.RenderPass, layout vk.PipelineLayout) (vk.Pipeline, error) {
	state := p.describe(renderPass, layout)
	pipelines := []vk.Pipeline{vk.NullPipeline}
	ret := vk.CreateGraphicsPipelines(device, vk.PipelineCache(vk.NullHandle), 1,
		[]vk.GraphicsPipelineCreateInfo{state.info}, nil, pipelines)
	if err := checkResult(ErrPipelineBuild, ret, "creating graphics pipeline"); err != nil {
		return vk.NullPipeline, err
	}
	return pipelines[0], nil
}

// NewPipelineLayout creates a layout with no descriptor sets and no push
// constants.
func NewPipelineLayout(device vk.Device) (vk.PipelineLayout, error) {
	var layout vk.PipelineLayout
	ret := vk.CreatePipelineLayout(device, &vk.PipelineLayoutCreateInfo{
		SType: vk.StructureTypePipelineLayoutCreateInfo,
	}, nil, &layout)
	if err := checkResult(ErrPipelineBuild, ret, "creating pipeline layout"); err != nil {
		return vk.NullPipelineLayout, err
	}
	return layout, nil
}

// BuildPipeline compiles program into the quad pipeline. The shader modules
// only live for the duration of the call.
func BuildPipeline(device vk.Device, renderPass vk.RenderPass, layout vk.PipelineLayout,
	extent vk.Extent2D, program *ShaderProgram) (vk.Pipeline, error) {

	vert, err := LoadShaderModule(device, program.Vertex)
	if err != nil {
		return vk.NullPipeline, markf(ErrPipelineBuild, err, "vertex stage")
	}
	defer vk.DestroyShaderModule(device, vert, nil)

	frag, err := LoadShaderModule(device, program.Fragment)
	if err != nil {
		return vk.NullPipeline, markf(ErrPipelineBuild, err, "fragment stage")
	}
	defer vk.DestroyShaderModule(device, frag, nil)

	return NewPipelineBuilder(vert, frag, extent).Build(device, renderPass, layout)
}
