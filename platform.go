package vkquad

import (
	"runtime"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

var PlatformOS = runtime.GOOS

// VK_INSTANCE_CREATE_ENUMERATE_PORTABILITY_BIT_KHR
const instanceCreateEnumeratePortability = vk.InstanceCreateFlags(0x00000001)

var validationLayerNames = []string{
	"VK_LAYER_KHRONOS_validation",
}

// initLoader points vulkan-go at the window system's loader.
func initLoader(display Display) error {
	vk.SetGetInstanceProcAddr(display.ProcAddr())
	if err := vk.Init(); err != nil {
		return markf(ErrInitialization, err, "initializing vulkan loader")
	}
	return nil
}

// instanceSetup is the extension and layer set an instance is created with.
type instanceSetup struct {
	extensions []string
	layers     []string
	flags      vk.InstanceCreateFlags
	debug      bool
}

// planInstance checks the window's required extensions against what the
// loader offers and adds debug reporting, validation and portability
// enumeration when asked for and available.
func planInstance(available, availableLayers, required []string, debug bool, log *Logger) (instanceSetup, error) {
	var setup instanceSetup
	if missing := missingExtensions(available, required); len(missing) > 0 {
		return setup, markf(ErrMissingExtension, nil, "instance extensions %v required by the window are not available", missing)
	}
	setup.extensions = append(setup.extensions, required...)

	if PlatformOS == "darwin" && hasName(available, portabilityEnumeration) {
		setup.extensions = append(setup.extensions, portabilityEnumeration)
		setup.flags = instanceCreateEnumeratePortability
	}

	if debug {
		if hasName(available, debugReportExtension) {
			setup.extensions = append(setup.extensions, debugReportExtension)
			setup.debug = true
		} else {
			log.Warn.Printf("%s not available, validation messages will not be reported", debugReportExtension)
		}
		var missing int
		setup.layers, missing = checkExisting(availableLayers, validationLayerNames)
		if missing > 0 {
			log.Warn.Printf("missing %d of %d validation layers", missing, len(validationLayerNames))
		}
	}
	return setup, nil
}

func createInstance(name string, setup instanceSetup) (vk.Instance, error) {
	var instance vk.Instance
	ret := vk.CreateInstance(&vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
			ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
			PApplicationName:   safeString(name),
			PEngineName:        "vkquad\x00",
		},
		EnabledExtensionCount:   uint32(len(setup.extensions)),
		PpEnabledExtensionNames: safeStrings(setup.extensions),
		EnabledLayerCount:       uint32(len(setup.layers)),
		PpEnabledLayerNames:     safeStrings(setup.layers),
		Flags:                   setup.flags,
	}, nil, &instance)
	if err := checkResult(ErrInitialization, ret, "creating instance with %v", setup.extensions); err != nil {
		return nil, err
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, markf(ErrInitialization, err, "loading instance functions")
	}
	return instance, nil
}

func createDebugCallback(instance vk.Instance, log *Logger) (vk.DebugReportCallback, error) {
	var callback vk.DebugReportCallback
	ret := vk.CreateDebugReportCallback(instance, &vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit | vk.DebugReportPerformanceWarningBit),
		PfnCallback: log.debugReport,
	}, nil, &callback)
	if err := checkResult(ErrInitialization, ret, "creating debug report callback"); err != nil {
		return vk.NullDebugReportCallback, err
	}
	return callback, nil
}

func (l *Logger) debugReport(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, pLayerPrefix string,
	pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		l.Error.Printf("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		l.Warn.Printf("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		l.Warn.Printf("PERFORMANCE [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	default:
		l.Info.Printf("[%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	}
	return vk.Bool32(vk.False)
}
