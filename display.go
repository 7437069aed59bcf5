package vkquad

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// Display is the window a render instance presents to.
type Display interface {
	// ProcAddr returns vkGetInstanceProcAddr as loaded by the window system.
	ProcAddr() unsafe.Pointer
	// RequiredInstanceExtensions lists the instance extensions needed to
	// present onto the window.
	RequiredInstanceExtensions() []string
	CreateSurface(instance vk.Instance) (vk.Surface, error)
	// FramebufferSize is the drawable size in pixels.
	FramebufferSize() (int, int)
	// PollQuit pumps pending window events and reports whether the user asked
	// to quit.
	PollQuit() bool
	Destroy()
}
