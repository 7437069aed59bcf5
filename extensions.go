package vkquad

import (
	vk "github.com/vulkan-go/vulkan"
)

const (
	swapchainExtension         = "VK_KHR_swapchain"
	portabilitySubsetExtension = "VK_KHR_portability_subset"
	debugReportExtension       = "VK_EXT_debug_report"
	portabilityEnumeration     = "VK_KHR_portability_enumeration"
)

// InstanceExtensions gets a list of instance extensions available on the platform.
func InstanceExtensions() (names []string, err error) {
	defer checkErr(&err)

	var count uint32
	ret := vk.EnumerateInstanceExtensionProperties("", &count, nil)
	if isError(ret) {
		return nil, NewError(ret)
	}
	list := make([]vk.ExtensionProperties, count)
	ret = vk.EnumerateInstanceExtensionProperties("", &count, list)
	if isError(ret) {
		return nil, NewError(ret)
	}
	for _, ext := range list[:count] {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, err
}

// DeviceExtensions gets a list of device extensions available on the provided physical device.
func DeviceExtensions(gpu vk.PhysicalDevice) (names []string, err error) {
	defer checkErr(&err)

	var count uint32
	ret := vk.EnumerateDeviceExtensionProperties(gpu, "", &count, nil)
	if isError(ret) {
		return nil, NewError(ret)
	}
	list := make([]vk.ExtensionProperties, count)
	ret = vk.EnumerateDeviceExtensionProperties(gpu, "", &count, list)
	if isError(ret) {
		return nil, NewError(ret)
	}
	for _, ext := range list[:count] {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, err
}

// ValidationLayers gets a list of validation layers available on the platform.
func ValidationLayers() (names []string, err error) {
	defer checkErr(&err)

	var count uint32
	ret := vk.EnumerateInstanceLayerProperties(&count, nil)
	if isError(ret) {
		return nil, NewError(ret)
	}
	list := make([]vk.LayerProperties, count)
	ret = vk.EnumerateInstanceLayerProperties(&count, list)
	if isError(ret) {
		return nil, NewError(ret)
	}
	for _, layer := range list[:count] {
		layer.Deref()
		names = append(names, vk.ToString(layer.LayerName[:]))
	}
	return names, err
}

func hasName(list []string, name string) bool {
	for _, item := range list {
		if item == name {
			return true
		}
	}
	return false
}

// missingExtensions lists the required names absent from actual, in the
// order they were required.
func missingExtensions(actual, required []string) []string {
	missing := []string{}
	for _, req := range required {
		if !hasName(actual, req) {
			missing = append(missing, req)
		}
	}
	return missing
}

// checkExisting keeps the wanted names that are present in actual and counts
// the ones that are not.
func checkExisting(actual, wanted []string) (existing []string, missing int) {
	for _, name := range wanted {
		if hasName(actual, name) {
			existing = append(existing, name)
		} else {
			missing++
		}
	}
	return existing, missing
}
