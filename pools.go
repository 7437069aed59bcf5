package vkquad

import (
	vk "github.com/vulkan-go/vulkan"
)

type CorePool struct {
	device vk.Device
	pool   vk.CommandPool
}

// NewCorePool creates a pool on family_index whose buffers can be reset
// individually.
func NewCorePool(device vk.Device, family_index uint32) (*CorePool, error) {
	core := &CorePool{device: device}
	ret := vk.CreateCommandPool(device, &vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: family_index,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	}, nil, &core.pool)
	if err := checkResult(ErrInitialization, ret, "creating command pool for family %d", family_index); err != nil {
		return nil, err
	}
	return core, nil
}

// AllocatePrimary allocates count primary command buffers.
func (c *CorePool) AllocatePrimary(count int) ([]vk.CommandBuffer, error) {
	buffers := make([]vk.CommandBuffer, count)
	ret := vk.AllocateCommandBuffers(c.device, &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        c.pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: uint32(count),
	}, buffers)
	if err := checkResult(ErrInitialization, ret, "allocating %d command buffers", count); err != nil {
		return nil, err
	}
	return buffers, nil
}

// Destroy frees the pool and every command buffer allocated from it.
func (c *CorePool) Destroy() {
	if c.device != nil {
		vk.DestroyCommandPool(c.device, c.pool, nil)
		c.device = nil
	}
}
