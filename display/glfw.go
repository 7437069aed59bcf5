package display

import (
	"unsafe"

	"github.com/andewx/vkquad"
	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// GLFW is a non-resizable GLFW window without a client API. GLFW must be
// driven from the main thread.
type GLFW struct {
	window *glfw.Window
}

func NewGLFW(title string, width, height int) (*GLFW, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "initializing glfw"), vkquad.ErrInitialization)
	}
	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return nil, errors.Mark(errors.New("glfw reports no vulkan loader"), vkquad.ErrInitialization)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Mark(errors.Wrap(err, "creating glfw window"), vkquad.ErrInitialization)
	}
	return &GLFW{window: window}, nil
}

func (d *GLFW) ProcAddr() unsafe.Pointer {
	return glfw.GetVulkanGetInstanceProcAddress()
}

func (d *GLFW) RequiredInstanceExtensions() []string {
	return d.window.GetRequiredInstanceExtensions()
}

func (d *GLFW) CreateSurface(instance vk.Instance) (vk.Surface, error) {
	surfPtr, err := d.window.CreateWindowSurface(instance, nil)
	if err != nil {
		return vk.NullSurface, errors.Wrap(err, "glfw window surface")
	}
	return vk.SurfaceFromPointer(surfPtr), nil
}

func (d *GLFW) FramebufferSize() (int, int) {
	return d.window.GetFramebufferSize()
}

func (d *GLFW) PollQuit() bool {
	glfw.PollEvents()
	return d.window.ShouldClose()
}

func (d *GLFW) Destroy() {
	if d.window != nil {
		d.window.Destroy()
		d.window = nil
		glfw.Terminate()
	}
}
