package display

import (
	"unsafe"

	"github.com/andewx/vkquad"
	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
	"github.com/veandco/go-sdl2/sdl"
)

// SDL2 is a fixed size SDL window created with Vulkan support.
type SDL2 struct {
	window *sdl.Window
	quit   bool
}

func NewSDL2(title string, width, height int) (*SDL2, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "initializing sdl"), vkquad.ErrInitialization)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width), int32(height), sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN)
	if err != nil {
		sdl.Quit()
		return nil, errors.Mark(errors.Wrap(err, "creating sdl window"), vkquad.ErrInitialization)
	}
	return &SDL2{window: window}, nil
}

func (d *SDL2) ProcAddr() unsafe.Pointer {
	return sdl.VulkanGetVkGetInstanceProcAddr()
}

func (d *SDL2) RequiredInstanceExtensions() []string {
	return d.window.VulkanGetInstanceExtensions()
}

func (d *SDL2) CreateSurface(instance vk.Instance) (vk.Surface, error) {
	surfPtr, err := d.window.VulkanCreateSurface(instance)
	if err != nil {
		return vk.NullSurface, errors.Wrap(err, "sdl window surface")
	}
	return vk.SurfaceFromPointer(uintptr(surfPtr)), nil
}

func (d *SDL2) FramebufferSize() (int, int) {
	width, height := d.window.VulkanGetDrawableSize()
	return int(width), int(height)
}

// PollQuit drains the event queue. Once a quit has been seen it stays set.
func (d *SDL2) PollQuit() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			d.quit = true
		case *sdl.WindowEvent:
			if ev.Event == sdl.WINDOWEVENT_CLOSE {
				d.quit = true
			}
		}
	}
	return d.quit
}

func (d *SDL2) Destroy() {
	if d.window != nil {
		d.window.Destroy()
		d.window = nil
		sdl.Quit()
	}
}
