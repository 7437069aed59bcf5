package vkquad

import vk "github.com/vulkan-go/vulkan"

// MaxFramesInFlight bounds how many frames' GPU work may be outstanding.
const MaxFramesInFlight = 2

// FrameSlot owns the recording and synchronization objects of one frame in
// flight. Nothing in a slot is shared with another slot.
type FrameSlot struct {
	CommandBuffer  vk.CommandBuffer
	ImageAvailable vk.Semaphore
	RenderFinished vk.Semaphore
	InFlight       vk.Fence
}

// FrameSlots creates and destroys the fixed set of frame slots. It is not
// thread-safe; the frame loop is its only user.
type FrameSlots struct {
	device vk.Device
	slots  []FrameSlot
}

// NewFrameSlots allocates count slots. Fences start signaled so the first
// wait on each slot returns immediately.
func NewFrameSlots(device vk.Device, pool *CorePool, count int) (*FrameSlots, error) {
	buffers, err := pool.AllocatePrimary(count)
	if err != nil {
		return nil, err
	}
	m := &FrameSlots{device: device}
	for i := 0; i < count; i++ {
		slot := FrameSlot{CommandBuffer: buffers[i]}
		if slot.ImageAvailable, err = m.newSemaphore(); err == nil {
			if slot.RenderFinished, err = m.newSemaphore(); err == nil {
				slot.InFlight, err = m.newFence()
			}
		}
		m.slots = append(m.slots, slot)
		if err != nil {
			m.Destroy()
			return nil, markf(ErrInitialization, err, "creating sync objects for frame slot %d", i)
		}
	}
	return m, nil
}

func (m *FrameSlots) newSemaphore() (vk.Semaphore, error) {
	var semaphore vk.Semaphore
	ret := vk.CreateSemaphore(m.device, &vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}, nil, &semaphore)
	if isError(ret) {
		return vk.NullSemaphore, NewError(ret)
	}
	return semaphore, nil
}

func (m *FrameSlots) newFence() (vk.Fence, error) {
	var fence vk.Fence
	ret := vk.CreateFence(m.device, &vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
	}, nil, &fence)
	if isError(ret) {
		return vk.NullFence, NewError(ret)
	}
	return fence, nil
}

func (m *FrameSlots) Slot(index int) *FrameSlot {
	return &m.slots[index]
}

// Destroy releases the semaphores and fences. Command buffers go with their
// pool.
func (m *FrameSlots) Destroy() {
	for i := range m.slots {
		slot := &m.slots[i]
		if slot.ImageAvailable != vk.NullSemaphore {
			vk.DestroySemaphore(m.device, slot.ImageAvailable, nil)
		}
		if slot.RenderFinished != vk.NullSemaphore {
			vk.DestroySemaphore(m.device, slot.RenderFinished, nil)
		}
		if slot.InFlight != vk.NullFence {
			vk.DestroyFence(m.device, slot.InFlight, nil)
		}
	}
	m.slots = nil
}
