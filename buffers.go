package vkquad

import (
	"bytes"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

const hostVisibleCoherent = vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)

// FindMemoryType returns the first memory type allowed by filter whose
// property flags include every flag in props.
func FindMemoryType(types []vk.MemoryType, filter uint32, props vk.MemoryPropertyFlags) (uint32, error) {
	for i, memoryType := range types {
		if i >= 32 {
			break
		}
		if filter&(1<<uint(i)) != 0 && memoryType.PropertyFlags&props == props {
			return uint32(i), nil
		}
	}
	return 0, markf(ErrNoSuitableMemory, nil, "no memory type in filter %#b with properties %#x", filter, props)
}

// fillMapped copies src into the mapped range dst and reads it back.
func fillMapped(dst, src []byte) error {
	if len(dst) < len(src) {
		return markf(ErrInitialization, nil, "mapped range of %d bytes is smaller than %d bytes of data", len(dst), len(src))
	}
	n := copy(dst, src)
	if n != len(src) || !bytes.Equal(dst[:n], src) {
		return markf(ErrInitialization, nil, "mapped memory read back differs from uploaded data")
	}
	return nil
}

// GeometryBuffer is an immutable vertex or index buffer in host-visible,
// host-coherent memory.
type GeometryBuffer struct {
	// device for destroy purposes.
	device vk.Device
	Usage  vk.BufferUsageFlagBits
	Size   vk.DeviceSize
	Buffer vk.Buffer
	Memory vk.DeviceMemory
}

// NewGeometryBuffer creates a buffer of exactly len(data) bytes, backs it with
// host-visible coherent memory and fills it once.
func NewGeometryBuffer(device vk.Device, memoryTypes []vk.MemoryType, usage vk.BufferUsageFlagBits, data []byte) (*GeometryBuffer, error) {
	if len(data) == 0 {
		return nil, markf(ErrInitialization, nil, "empty geometry buffer")
	}
	b := &GeometryBuffer{
		device: device,
		Usage:  usage,
		Size:   vk.DeviceSize(len(data)),
	}

	ret := vk.CreateBuffer(device, &vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        b.Size,
		Usage:       vk.BufferUsageFlags(usage),
		SharingMode: vk.SharingModeExclusive,
	}, nil, &b.Buffer)
	if err := checkResult(ErrInitialization, ret, "creating buffer of %d bytes", len(data)); err != nil {
		return nil, err
	}

	// Ask device about its memory requirements.
	var memReqs vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(device, b.Buffer, &memReqs)
	memReqs.Deref()

	memType, err := FindMemoryType(memoryTypes, memReqs.MemoryTypeBits, hostVisibleCoherent)
	if err != nil {
		b.Destroy()
		return nil, err
	}

	ret = vk.AllocateMemory(device, &vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  memReqs.Size,
		MemoryTypeIndex: memType,
	}, nil, &b.Memory)
	if err := checkResult(ErrInitialization, ret, "allocating %d bytes of buffer memory", memReqs.Size); err != nil {
		b.Destroy()
		return nil, err
	}

	ret = vk.BindBufferMemory(device, b.Buffer, b.Memory, 0)
	if err := checkResult(ErrInitialization, ret, "binding buffer memory"); err != nil {
		b.Destroy()
		return nil, err
	}

	// Map the memory and dump data in there.
	var pData unsafe.Pointer
	ret = vk.MapMemory(device, b.Memory, 0, b.Size, 0, &pData)
	if err := checkResult(ErrInitialization, ret, "mapping buffer memory"); err != nil {
		b.Destroy()
		return nil, err
	}
	err = fillMapped(unsafe.Slice((*byte)(pData), len(data)), data)
	vk.UnmapMemory(device, b.Memory)
	if err != nil {
		b.Destroy()
		return nil, err
	}
	return b, nil
}

func (b *GeometryBuffer) Destroy() {
	if b.device == nil {
		return
	}
	if b.Buffer != vk.NullBuffer {
		vk.DestroyBuffer(b.device, b.Buffer, nil)
		b.Buffer = vk.NullBuffer
	}
	if b.Memory != vk.NullDeviceMemory {
		vk.FreeMemory(b.device, b.Memory, nil)
		b.Memory = vk.NullDeviceMemory
	}
	b.device = nil
}
