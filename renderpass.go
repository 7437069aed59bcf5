package vkquad

import (
	vk "github.com/vulkan-go/vulkan"
)

type CoreRenderPass struct {
	device     vk.Device
	renderPass vk.RenderPass
}

// renderPassDescription is the single colour attachment pass. The attachment
// is cleared, stored and handed to the presentation engine.
type renderPassDescription struct {
	attachments  []vk.AttachmentDescription
	colorRefs    []vk.AttachmentReference
	subpasses    []vk.SubpassDescription
	dependencies []vk.SubpassDependency
}

func describeRenderPass(format vk.Format) *renderPassDescription {
	d := &renderPassDescription{}
	d.attachments = []vk.AttachmentDescription{{
		Flags:          vk.AttachmentDescriptionFlags(0),
		Format:         format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}}

	//Setup Subpass Attachment References
	d.colorRefs = []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	d.subpasses = []vk.SubpassDescription{{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: uint32(len(d.colorRefs)),
		PColorAttachments:    d.colorRefs,
	}}

	// Writes to the attachment wait until the acquired image is released by
	// the presentation engine.
	d.dependencies = []vk.SubpassDependency{{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
	}}
	return d
}

func (d *renderPassDescription) createInfo() vk.RenderPassCreateInfo {
	return vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(d.attachments)),
		PAttachments:    d.attachments,
		SubpassCount:    uint32(len(d.subpasses)),
		PSubpasses:      d.subpasses,
		DependencyCount: uint32(len(d.dependencies)),
		PDependencies:   d.dependencies,
	}
}

func NewCoreRenderPass(device vk.Device, format vk.Format) (*CoreRenderPass, error) {
	core := &CoreRenderPass{device: device}
	info := describeRenderPass(format).createInfo()
	ret := vk.CreateRenderPass(device, &info, nil, &core.renderPass)
	if err := checkResult(ErrPipelineBuild, ret, "creating render pass"); err != nil {
		return nil, err
	}
	return core, nil
}

func (c *CoreRenderPass) Handle() vk.RenderPass {
	return c.renderPass
}

func (c *CoreRenderPass) Destroy() {
	if c.renderPass != vk.NullRenderPass {
		vk.DestroyRenderPass(c.device, c.renderPass, nil)
		c.renderPass = vk.NullRenderPass
	}
}
