package vkquad

import (
	vk "github.com/vulkan-go/vulkan"
)

// IsAdapterSuitable reports whether a can drive the quad: both queue
// families resolve and the surface exposes at least one format and one
// present mode.
func IsAdapterSuitable(a *Adapter, policy QueueFamilyPolicy) bool {
	indices := FindQueueFamilies(a.QueueFamilies, policy)
	return indices.IsComplete() && len(a.Formats) > 0 && len(a.PresentModes) > 0
}

// SelectAdapter returns the first suitable adapter in enumeration order
// along with its resolved queue families.
func SelectAdapter(adapters []Adapter, policy QueueFamilyPolicy) (*Adapter, QueueFamilyIndices, error) {
	for i := range adapters {
		if IsAdapterSuitable(&adapters[i], policy) {
			return &adapters[i], FindQueueFamilies(adapters[i].QueueFamilies, policy), nil
		}
	}
	return nil, QueueFamilyIndices{}, markf(ErrNoSuitableDevice, nil,
		"none of %d adapters has graphics and present queues with surface formats and present modes", len(adapters))
}

// requiredDeviceExtensions lists the extensions enabled on the logical
// device. The swapchain is mandatory; portability subset must be enabled
// whenever the adapter advertises it.
func requiredDeviceExtensions(a *Adapter) ([]string, error) {
	if missing := missingExtensions(a.Extensions, []string{swapchainExtension}); len(missing) > 0 {
		return nil, markf(ErrMissingExtension, nil, "adapter %s lacks %v", a.Name, missing)
	}
	names := []string{swapchainExtension}
	if a.HasExtension(portabilitySubsetExtension) {
		names = append(names, portabilitySubsetExtension)
	}
	return names, nil
}

// CoreDevice is the execution context: the logical device and the queues
// taken from it.
type CoreDevice struct {
	handle vk.Device
	queues *CoreQueue
}

func NewCoreDevice(adapter *Adapter, indices QueueFamilyIndices, layers []string) (*CoreDevice, error) {
	extensions, err := requiredDeviceExtensions(adapter)
	if err != nil {
		return nil, err
	}

	queues := NewCoreQueue(indices)
	queue_infos := queues.GetCreateInfos()

	var device vk.Device
	ret := vk.CreateDevice(adapter.Handle, &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queue_infos)),
		PQueueCreateInfos:       queue_infos,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: safeStrings(extensions),
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     safeStrings(layers),
	}, nil, &device)
	if ret == vk.ErrorExtensionNotPresent {
		return nil, checkResult(ErrMissingExtension, ret, "creating device on %s with %v", adapter.Name, extensions)
	}
	if err := checkResult(ErrInitialization, ret, "creating device on %s", adapter.Name); err != nil {
		return nil, err
	}

	queues.CreateQueues(device)
	return &CoreDevice{
		handle: device,
		queues: queues,
	}, nil
}

func (d *CoreDevice) Handle() vk.Device {
	return d.handle
}

func (d *CoreDevice) Queues() *CoreQueue {
	return d.queues
}

// WaitIdle blocks until every queue of the device has drained.
func (d *CoreDevice) WaitIdle() error {
	if d.handle == nil {
		return nil
	}
	return checkResult(ErrRecording, vk.DeviceWaitIdle(d.handle), "waiting for device idle")
}

func (d *CoreDevice) Destroy() {
	if d.handle != nil {
		vk.DestroyDevice(d.handle, nil)
		d.handle = nil
	}
}
