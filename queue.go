package vkquad

import (
	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// QueueFamily describes one queue family of an adapter as seen against the
// window surface.
type QueueFamily struct {
	Index   uint32
	Flags   vk.QueueFlags
	Count   uint32
	Present bool
}

func (f QueueFamily) Graphics() bool {
	return f.Flags&vk.QueueFlags(vk.QueueGraphicsBit) != 0
}

// QueueFamilyPolicy decides which family wins when several satisfy the same
// criterion.
type QueueFamilyPolicy int

const (
	// LastMatch keeps the last matching family in enumeration order.
	LastMatch QueueFamilyPolicy = iota
	// FirstMatch keeps the first matching family.
	FirstMatch
)

func (p QueueFamilyPolicy) String() string {
	switch p {
	case FirstMatch:
		return "first"
	default:
		return "last"
	}
}

func ParseQueueFamilyPolicy(s string) (QueueFamilyPolicy, error) {
	switch s {
	case "", "last":
		return LastMatch, nil
	case "first":
		return FirstMatch, nil
	}
	return LastMatch, errors.Newf("unknown queue family policy %q", s)
}

// QueueFamilyIndices are the graphics and presentation families chosen on
// one adapter. The two may be the same family.
type QueueFamilyIndices struct {
	Graphics    uint32
	Present     uint32
	HasGraphics bool
	HasPresent  bool
}

func (q QueueFamilyIndices) IsComplete() bool {
	return q.HasGraphics && q.HasPresent
}

// Separate reports whether graphics and presentation use different families.
func (q QueueFamilyIndices) Separate() bool {
	return q.Graphics != q.Present
}

// Unique lists the distinct family indices, graphics first.
func (q QueueFamilyIndices) Unique() []uint32 {
	if !q.Separate() {
		return []uint32{q.Graphics}
	}
	return []uint32{q.Graphics, q.Present}
}

// FindQueueFamilies scans every family and resolves graphics and
// presentation independently under policy.
func FindQueueFamilies(families []QueueFamily, policy QueueFamilyPolicy) QueueFamilyIndices {
	var indices QueueFamilyIndices
	for _, family := range families {
		if family.Graphics() && (policy == LastMatch || !indices.HasGraphics) {
			indices.Graphics = family.Index
			indices.HasGraphics = true
		}
		if family.Present && (policy == LastMatch || !indices.HasPresent) {
			indices.Present = family.Index
			indices.HasPresent = true
		}
	}
	return indices
}

func queryQueueFamilies(gpu vk.PhysicalDevice, surface vk.Surface) ([]QueueFamily, error) {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, nil)
	properties := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, properties)

	families := make([]QueueFamily, 0, count)
	for index := uint32(0); index < count; index++ {
		properties[index].Deref()
		var supportsPresent vk.Bool32
		ret := vk.GetPhysicalDeviceSurfaceSupport(gpu, index, surface, &supportsPresent)
		if isError(ret) {
			return nil, errors.Wrapf(NewError(ret), "surface support for queue family %d", index)
		}
		families = append(families, QueueFamily{
			Index:   index,
			Flags:   properties[index].QueueFlags,
			Count:   properties[index].QueueCount,
			Present: supportsPresent.B(),
		})
	}
	return families, nil
}

// CoreQueue holds the device queues retrieved for the chosen families.
type CoreQueue struct {
	indices  QueueFamilyIndices
	graphics vk.Queue
	present  vk.Queue
}

func NewCoreQueue(indices QueueFamilyIndices) *CoreQueue {
	return &CoreQueue{indices: indices}
}

// GetCreateInfos returns one create info per unique family, each asking for a
// single queue at priority 1.0.
func (q *CoreQueue) GetCreateInfos() []vk.DeviceQueueCreateInfo {
	unique := q.indices.Unique()
	infos := make([]vk.DeviceQueueCreateInfo, len(unique))
	for index, family := range unique {
		infos[index] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}
	}
	return infos
}

//Must call after the logical device is established
func (q *CoreQueue) CreateQueues(device vk.Device) {
	vk.GetDeviceQueue(device, q.indices.Graphics, 0, &q.graphics)
	if q.indices.Separate() {
		vk.GetDeviceQueue(device, q.indices.Present, 0, &q.present)
	} else {
		q.present = q.graphics
	}
}

func (q *CoreQueue) Graphics() vk.Queue {
	return q.graphics
}

func (q *CoreQueue) Present() vk.Queue {
	return q.present
}
