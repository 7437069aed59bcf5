package vkquad

import vk "github.com/vulkan-go/vulkan"

// frameContext records and submits the quad draw through Vulkan. It is the
// frameBackend used by a render instance.
type frameContext struct {
	device       vk.Device
	graphics     vk.Queue
	present      vk.Queue
	swapchain    *CoreSwapchain
	framebuffers []vk.Framebuffer
	renderPass   vk.RenderPass
	pipeline     vk.Pipeline
	vertices     *GeometryBuffer
	indices      *GeometryBuffer
	indexCount   uint32
	slots        *FrameSlots
}

func (c *frameContext) WaitForFence(slot int) error {
	fences := []vk.Fence{c.slots.Slot(slot).InFlight}
	ret := vk.WaitForFences(c.device, 1, fences, vk.True, vk.MaxUint64)
	return checkResult(ErrRecording, ret, "waiting for fence of slot %d", slot)
}

func (c *frameContext) ResetFence(slot int) error {
	fences := []vk.Fence{c.slots.Slot(slot).InFlight}
	ret := vk.ResetFences(c.device, 1, fences)
	return checkResult(ErrRecording, ret, "resetting fence of slot %d", slot)
}

func (c *frameContext) AcquireImage(slot int) (uint32, error) {
	var image uint32
	ret := vk.AcquireNextImage(c.device, c.swapchain.Handle(), vk.MaxUint64,
		c.slots.Slot(slot).ImageAvailable, vk.NullFence, &image)
	return acquireResult(ret, image)
}

// acquireResult accepts a suboptimal swapchain; presentation reports it.
func acquireResult(ret vk.Result, image uint32) (uint32, error) {
	if ret == vk.Success || ret == vk.Suboptimal {
		return image, nil
	}
	return 0, checkResult(ErrPresent, ret, "acquiring swapchain image")
}

func (c *frameContext) Record(slot int, image uint32) error {
	cmd := c.slots.Slot(slot).CommandBuffer
	ret := vk.ResetCommandBuffer(cmd, 0)
	if err := checkResult(ErrRecording, ret, "resetting command buffer of slot %d", slot); err != nil {
		return err
	}

	ret = vk.BeginCommandBuffer(cmd, &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	})
	if err := checkResult(ErrRecording, ret, "beginning command buffer of slot %d", slot); err != nil {
		return err
	}

	clearValues := []vk.ClearValue{
		vk.NewClearValue([]float32{0.0, 0.0, 0.0, 1.0}),
	}
	vk.CmdBeginRenderPass(cmd, &vk.RenderPassBeginInfo{
		SType:           vk.StructureTypeRenderPassBeginInfo,
		RenderPass:      c.renderPass,
		Framebuffer:     c.framebuffers[image],
		RenderArea:      c.swapchain.Rect(),
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}, vk.SubpassContentsInline)

	vk.CmdBindPipeline(cmd, vk.PipelineBindPointGraphics, c.pipeline)
	vk.CmdBindVertexBuffers(cmd, 0, 1, []vk.Buffer{c.vertices.Buffer}, []vk.DeviceSize{0})
	vk.CmdBindIndexBuffer(cmd, c.indices.Buffer, 0, vk.IndexTypeUint16)
	vk.CmdDrawIndexed(cmd, c.indexCount, 1, 0, 0, 0)

	vk.CmdEndRenderPass(cmd)
	ret = vk.EndCommandBuffer(cmd)
	return checkResult(ErrRecording, ret, "ending command buffer of slot %d", slot)
}

func (c *frameContext) Submit(slot int) error {
	s := c.slots.Slot(slot)
	submitInfos := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{s.ImageAvailable},
		// PWaitDstStageMask is a pointer to an array of pipeline
		// stages at which each corresponding semaphore wait will occur.
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{s.CommandBuffer},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{s.RenderFinished},
	}}
	ret := vk.QueueSubmit(c.graphics, 1, submitInfos, s.InFlight)
	return checkResult(ErrRecording, ret, "submitting slot %d", slot)
}

func (c *frameContext) Present(slot int, image uint32) error {
	ret := vk.QueuePresent(c.present, &vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{c.slots.Slot(slot).RenderFinished},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{c.swapchain.Handle()},
		PImageIndices:      []uint32{image},
	})
	return presentResult(ret, image)
}

// presentResult treats every result other than success as fatal, suboptimal
// included, since the swapchain is never recreated.
func presentResult(ret vk.Result, image uint32) error {
	switch ret {
	case vk.Success:
		return nil
	case vk.Suboptimal:
		return markf(ErrPresent, nil, "presenting image %d: swapchain suboptimal", image)
	}
	return checkResult(ErrPresent, ret, "presenting image %d", image)
}

func (c *frameContext) WaitIdle() error {
	return checkResult(ErrRecording, vk.DeviceWaitIdle(c.device), "waiting for device idle")
}
