package vkquad

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	vk "github.com/vulkan-go/vulkan"
)

// CoreRenderInstance owns every Vulkan object needed to draw the quad, from
// the instance down to the frame slots.
type CoreRenderInstance struct {
	id      uuid.UUID
	name    string
	log     *Logger
	usage   *Usage
	display Display

	instance       vk.Instance
	debug_callback vk.DebugReportCallback
	surface        vk.Surface
	layers         []string

	//Single Logical Device for the instance
	adapter *Adapter
	device  *CoreDevice

	vertices *GeometryBuffer
	indices  *GeometryBuffer

	swapchain    *CoreSwapchain
	renderpass   *CoreRenderPass
	layout       vk.PipelineLayout
	pipeline     vk.Pipeline
	framebuffers []vk.Framebuffer

	pool   *CorePool
	slots  *FrameSlots
	frames *FrameOrchestrator

	release releaseStack
}

// NewCoreRenderInstance builds the whole chain in dependency order. The first
// failing step aborts construction and everything built before it is
// released in reverse order.
func NewCoreRenderInstance(display Display, program *ShaderProgram, usage *Usage, log *Logger) (*CoreRenderInstance, error) {
	if log == nil {
		log = NewStderrLogger()
	}
	core := &CoreRenderInstance{
		id:      uuid.New(),
		name:    usage.Name,
		log:     log,
		usage:   usage,
		display: display,
	}
	if err := core.init(program); err != nil {
		core.Destroy()
		return nil, err
	}
	return core, nil
}

func (core *CoreRenderInstance) init(program *ShaderProgram) error {
	if err := initLoader(core.display); err != nil {
		return err
	}

	available, err := InstanceExtensions()
	if err != nil {
		return markf(ErrInitialization, err, "listing instance extensions")
	}
	var availableLayers []string
	if core.usage.Debug {
		if availableLayers, err = ValidationLayers(); err != nil {
			return markf(ErrInitialization, err, "listing validation layers")
		}
	}
	setup, err := planInstance(available, availableLayers, core.display.RequiredInstanceExtensions(), core.usage.Debug, core.log)
	if err != nil {
		return err
	}
	core.layers = setup.layers

	if core.instance, err = createInstance(core.name, setup); err != nil {
		return err
	}
	core.release.push("instance", func() {
		vk.DestroyInstance(core.instance, nil)
		core.instance = nil
	})
	core.log.Info.Printf("%s: instance created with extensions %v layers %v", core.id, setup.extensions, setup.layers)

	if setup.debug {
		if core.debug_callback, err = createDebugCallback(core.instance, core.log); err != nil {
			return err
		}
		core.release.push("debug callback", func() {
			vk.DestroyDebugReportCallback(core.instance, core.debug_callback, nil)
		})
	}

	if core.surface, err = core.display.CreateSurface(core.instance); err != nil {
		return markf(ErrInitialization, err, "creating window surface")
	}
	core.release.push("surface", func() {
		vk.DestroySurface(core.instance, core.surface, nil)
		core.surface = vk.NullSurface
	})

	adapters, err := QueryAdapters(core.instance, core.surface, core.log)
	if err != nil {
		return err
	}
	var indices QueueFamilyIndices
	if core.adapter, indices, err = SelectAdapter(adapters, core.usage.Policy()); err != nil {
		return err
	}
	core.log.Info.Printf("%s: selected %s graphics family %d present family %d",
		core.id, core.adapter, indices.Graphics, indices.Present)

	if core.device, err = NewCoreDevice(core.adapter, indices, core.layers); err != nil {
		return err
	}
	core.release.push("device", core.device.Destroy)
	device := core.device.Handle()

	if core.vertices, err = NewGeometryBuffer(device, core.adapter.MemoryTypes,
		vk.BufferUsageVertexBufferBit, VertexBytes(QuadVertices)); err != nil {
		return errors.Wrap(err, "vertex buffer")
	}
	core.release.push("vertex buffer", core.vertices.Destroy)

	if core.indices, err = NewGeometryBuffer(device, core.adapter.MemoryTypes,
		vk.BufferUsageIndexBufferBit, IndexBytes(QuadIndices)); err != nil {
		return errors.Wrap(err, "index buffer")
	}
	core.release.push("index buffer", core.indices.Destroy)

	width, height := core.display.FramebufferSize()
	config := PlanSwapchain(core.adapter, indices, width, height)
	if core.swapchain, err = NewCoreSwapchain(device, core.surface, config); err != nil {
		return err
	}
	core.release.push("swapchain", core.swapchain.Destroy)
	core.log.Info.Printf("%s: swapchain %dx%d with %d images, format %d, present mode %d",
		core.id, config.Extent.Width, config.Extent.Height, core.swapchain.ImageCount(), config.Format.Format, config.PresentMode)

	if core.renderpass, err = NewCoreRenderPass(device, config.Format.Format); err != nil {
		return err
	}
	core.release.push("render pass", core.renderpass.Destroy)

	if core.layout, err = NewPipelineLayout(device); err != nil {
		return err
	}
	core.release.push("pipeline layout", func() {
		vk.DestroyPipelineLayout(device, core.layout, nil)
	})

	if core.pipeline, err = BuildPipeline(device, core.renderpass.Handle(), core.layout, config.Extent, program); err != nil {
		return err
	}
	core.release.push("pipeline", func() {
		vk.DestroyPipeline(device, core.pipeline, nil)
	})

	if core.framebuffers, err = core.swapchain.CreateFramebuffers(core.renderpass.Handle()); err != nil {
		return err
	}
	core.release.push("framebuffers", func() {
		DestroyFramebuffers(device, core.framebuffers)
		core.framebuffers = nil
	})

	if core.pool, err = NewCorePool(device, indices.Graphics); err != nil {
		return err
	}
	core.release.push("command pool", core.pool.Destroy)

	if core.slots, err = NewFrameSlots(device, core.pool, MaxFramesInFlight); err != nil {
		return err
	}
	core.release.push("sync objects", core.slots.Destroy)

	core.frames = newFrameOrchestrator(&frameContext{
		device:       device,
		graphics:     core.device.Queues().Graphics(),
		present:      core.device.Queues().Present(),
		swapchain:    core.swapchain,
		framebuffers: core.framebuffers,
		renderPass:   core.renderpass.Handle(),
		pipeline:     core.pipeline,
		vertices:     core.vertices,
		indices:      core.indices,
		indexCount:   uint32(len(QuadIndices)),
		slots:        core.slots,
	})
	return nil
}

// Run draws frames until the window asks to quit or the configured frame
// limit is reached, then drains the device.
func (core *CoreRenderInstance) Run() error {
	limit := uint64(core.usage.Frames)
	keepRunning := func() bool {
		if core.display.PollQuit() {
			return false
		}
		return limit == 0 || core.frames.Stats().Frames < limit
	}
	err := core.frames.Run(keepRunning)
	stats := core.frames.Stats()
	core.log.Info.Printf("%s: %d frames, mean %v, worst %v", core.id, stats.Frames, stats.Mean(), stats.Worst)
	return err
}

// Stats reports the frames drawn so far.
func (core *CoreRenderInstance) Stats() FrameStats {
	if core.frames == nil {
		return FrameStats{}
	}
	return core.frames.Stats()
}

// Destroy waits for the device to go idle and releases everything in reverse
// creation order. It is safe to call more than once.
func (core *CoreRenderInstance) Destroy() {
	if core.release.len() == 0 {
		return
	}
	if core.device != nil {
		if err := core.device.WaitIdle(); err != nil {
			core.log.Warn.Printf("%s: %v", core.id, err)
		}
	}
	order := core.release.unwind()
	core.device = nil
	core.log.Info.Printf("%s: released %s", core.id, strings.Join(order, ", "))
}
