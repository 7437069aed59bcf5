package vkquad

import (
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	vk "github.com/vulkan-go/vulkan"
)

// Adapter is a snapshot of one physical device and what it can do with the
// window surface. It is never mutated after QueryAdapters returns it.
type Adapter struct {
	Handle        vk.PhysicalDevice
	Name          string
	Type          vk.PhysicalDeviceType
	CacheID       uuid.UUID
	QueueFamilies []QueueFamily
	Formats       []vk.SurfaceFormat
	PresentModes  []vk.PresentMode
	Capabilities  vk.SurfaceCapabilities
	MemoryTypes   []vk.MemoryType
	Extensions    []string
}

func (a *Adapter) HasExtension(name string) bool {
	for _, ext := range a.Extensions {
		if ext == name {
			return true
		}
	}
	return false
}

func (a *Adapter) String() string {
	return a.Name + " (" + deviceTypeName(a.Type) + ", " + a.CacheID.String() + ")"
}

func deviceTypeName(t vk.PhysicalDeviceType) string {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual"
	case vk.PhysicalDeviceTypeCpu:
		return "cpu"
	}
	return "other"
}

// QueryAdapters enumerates every physical device of instance and captures
// its queue families, surface support and memory types. An adapter whose
// query fails is logged and skipped.
func QueryAdapters(instance vk.Instance, surface vk.Surface, log *Logger) (adapters []Adapter, err error) {
	defer checkErr(&err)

	var gpuCount uint32
	ret := vk.EnumeratePhysicalDevices(instance, &gpuCount, nil)
	if isError(ret) {
		return nil, markf(ErrNoSuitableDevice, NewError(ret), "enumerating physical devices")
	}
	if gpuCount == 0 {
		return nil, markf(ErrNoSuitableDevice, nil, "no physical devices found")
	}
	gpus := make([]vk.PhysicalDevice, gpuCount)
	ret = vk.EnumeratePhysicalDevices(instance, &gpuCount, gpus)
	if isError(ret) {
		return nil, markf(ErrNoSuitableDevice, NewError(ret), "enumerating physical devices")
	}

	return collectAdapters(gpus[:gpuCount], func(gpu vk.PhysicalDevice) (Adapter, error) {
		return queryAdapter(gpu, surface)
	}, log)
}

// collectAdapters keeps enumeration order and drops adapters whose query
// fails. It fails only when no adapter could be queried.
func collectAdapters(gpus []vk.PhysicalDevice, query func(vk.PhysicalDevice) (Adapter, error), log *Logger) ([]Adapter, error) {
	adapters := make([]Adapter, 0, len(gpus))
	var failures error
	for index, gpu := range gpus {
		adapter, err := query(gpu)
		if err != nil {
			log.Warn.Printf("skipping adapter %d: %v", index, err)
			failures = errors.CombineErrors(failures, err)
			continue
		}
		adapters = append(adapters, adapter)
	}
	if len(adapters) == 0 {
		return nil, markf(ErrNoSuitableDevice, failures, "querying %d physical devices", len(gpus))
	}
	return adapters, nil
}

func queryAdapter(gpu vk.PhysicalDevice, surface vk.Surface) (Adapter, error) {
	adapter := Adapter{Handle: gpu}

	var properties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(gpu, &properties)
	properties.Deref()
	adapter.Name = vk.ToString(properties.DeviceName[:])
	adapter.Type = properties.DeviceType
	adapter.CacheID = uuid.UUID(properties.PipelineCacheUUID)

	var err error
	if adapter.QueueFamilies, err = queryQueueFamilies(gpu, surface); err != nil {
		return adapter, errors.Wrapf(err, "adapter %s", adapter.Name)
	}
	if adapter.Extensions, err = DeviceExtensions(gpu); err != nil {
		return adapter, errors.Wrapf(err, "adapter %s", adapter.Name)
	}

	ret := vk.GetPhysicalDeviceSurfaceCapabilities(gpu, surface, &adapter.Capabilities)
	if isError(ret) {
		return adapter, errors.Wrapf(NewError(ret), "surface capabilities of %s", adapter.Name)
	}
	adapter.Capabilities.Deref()
	adapter.Capabilities.CurrentExtent.Deref()
	adapter.Capabilities.MinImageExtent.Deref()
	adapter.Capabilities.MaxImageExtent.Deref()

	// Get available surface pixel formats
	var formatCount uint32
	ret = vk.GetPhysicalDeviceSurfaceFormats(gpu, surface, &formatCount, nil)
	if isError(ret) {
		return adapter, errors.Wrapf(NewError(ret), "surface formats of %s", adapter.Name)
	}
	adapter.Formats = make([]vk.SurfaceFormat, formatCount)
	ret = vk.GetPhysicalDeviceSurfaceFormats(gpu, surface, &formatCount, adapter.Formats)
	if isError(ret) {
		return adapter, errors.Wrapf(NewError(ret), "surface formats of %s", adapter.Name)
	}
	adapter.Formats = adapter.Formats[:formatCount]
	for i := range adapter.Formats {
		adapter.Formats[i].Deref()
	}

	var modeCount uint32
	ret = vk.GetPhysicalDeviceSurfacePresentModes(gpu, surface, &modeCount, nil)
	if isError(ret) {
		return adapter, errors.Wrapf(NewError(ret), "present modes of %s", adapter.Name)
	}
	adapter.PresentModes = make([]vk.PresentMode, modeCount)
	ret = vk.GetPhysicalDeviceSurfacePresentModes(gpu, surface, &modeCount, adapter.PresentModes)
	if isError(ret) {
		return adapter, errors.Wrapf(NewError(ret), "present modes of %s", adapter.Name)
	}
	adapter.PresentModes = adapter.PresentModes[:modeCount]

	var memory vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(gpu, &memory)
	memory.Deref()
	adapter.MemoryTypes = make([]vk.MemoryType, memory.MemoryTypeCount)
	for i := uint32(0); i < memory.MemoryTypeCount; i++ {
		memory.MemoryTypes[i].Deref()
		adapter.MemoryTypes[i] = memory.MemoryTypes[i]
	}

	return adapter, nil
}
