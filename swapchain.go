package vkquad

import (
	vk "github.com/vulkan-go/vulkan"
)

// ChooseSurfaceFormat prefers B8G8R8A8 sRGB with the sRGB non-linear colour
// space and otherwise takes the first reported format.
func ChooseSurfaceFormat(formats []vk.SurfaceFormat) vk.SurfaceFormat {
	for _, format := range formats {
		if format.Format == vk.FormatB8g8r8a8Srgb && format.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return format
		}
	}
	if len(formats) == 0 {
		return vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	}
	return formats[0]
}

// ChoosePresentMode prefers mailbox. FIFO is always available.
func ChoosePresentMode(modes []vk.PresentMode) vk.PresentMode {
	for _, mode := range modes {
		if mode == vk.PresentModeMailbox {
			return mode
		}
	}
	return vk.PresentModeFifo
}

// ChooseExtent uses the surface's current extent unless it carries the
// undefined sentinel, in which case the window size is clamped into the
// supported range.
func ChooseExtent(caps vk.SurfaceCapabilities, width, height int) vk.Extent2D {
	if caps.CurrentExtent.Width != vk.MaxUint32 {
		return caps.CurrentExtent
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return vk.Extent2D{
		Width:  clampUint32(uint32(width), caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clampUint32(uint32(height), caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// ChooseImageCount asks for one image over the minimum, capped by a non-zero
// maximum.
func ChooseImageCount(caps vk.SurfaceCapabilities) uint32 {
	count := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

func choosePreTransform(caps vk.SurfaceCapabilities) vk.SurfaceTransformFlagBits {
	req_transform := vk.SurfaceTransformIdentityBit
	if vk.SurfaceTransformFlagBits(caps.SupportedTransforms)&req_transform != 0 {
		return req_transform
	}
	return caps.CurrentTransform
}

// Find a supported composite alpha mode - one of these is guaranteed to be set
func chooseCompositeAlpha(caps vk.SurfaceCapabilities) vk.CompositeAlphaFlagBits {
	compositeAlphaFlags := []vk.CompositeAlphaFlagBits{
		vk.CompositeAlphaOpaqueBit,
		vk.CompositeAlphaPreMultipliedBit,
		vk.CompositeAlphaPostMultipliedBit,
		vk.CompositeAlphaInheritBit,
	}
	for _, flag := range compositeAlphaFlags {
		if caps.SupportedCompositeAlpha&vk.CompositeAlphaFlags(flag) != 0 {
			return flag
		}
	}
	return vk.CompositeAlphaOpaqueBit
}

// SwapchainConfig is every decision taken before the swapchain is created.
type SwapchainConfig struct {
	Format         vk.SurfaceFormat
	PresentMode    vk.PresentMode
	Extent         vk.Extent2D
	ImageCount     uint32
	PreTransform   vk.SurfaceTransformFlagBits
	CompositeAlpha vk.CompositeAlphaFlagBits
	SharingMode    vk.SharingMode
	QueueFamilies  []uint32
}

// PlanSwapchain derives the chain configuration for adapter a and a window of
// the given pixel size.
func PlanSwapchain(a *Adapter, indices QueueFamilyIndices, width, height int) SwapchainConfig {
	config := SwapchainConfig{
		Format:         ChooseSurfaceFormat(a.Formats),
		PresentMode:    ChoosePresentMode(a.PresentModes),
		Extent:         ChooseExtent(a.Capabilities, width, height),
		ImageCount:     ChooseImageCount(a.Capabilities),
		PreTransform:   choosePreTransform(a.Capabilities),
		CompositeAlpha: chooseCompositeAlpha(a.Capabilities),
		SharingMode:    vk.SharingModeExclusive,
	}
	if indices.Separate() {
		config.SharingMode = vk.SharingModeConcurrent
		config.QueueFamilies = indices.Unique()
	}
	return config
}

func (c SwapchainConfig) createInfo(surface vk.Surface) vk.SwapchainCreateInfo {
	return vk.SwapchainCreateInfo{
		SType:                 vk.StructureTypeSwapchainCreateInfo,
		Surface:               surface,
		MinImageCount:         c.ImageCount,
		ImageFormat:           c.Format.Format,
		ImageColorSpace:       c.Format.ColorSpace,
		ImageExtent:           c.Extent,
		ImageArrayLayers:      1,
		ImageUsage:            vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode:      c.SharingMode,
		QueueFamilyIndexCount: uint32(len(c.QueueFamilies)),
		PQueueFamilyIndices:   c.QueueFamilies,
		PreTransform:          c.PreTransform,
		CompositeAlpha:        c.CompositeAlpha,
		PresentMode:           c.PresentMode,
		Clipped:               vk.True,
		OldSwapchain:          vk.NullSwapchain,
	}
}

// CoreSwapchain is the presentation chain: the swapchain, its images in
// index order and one colour view per image.
type CoreSwapchain struct {
	device      vk.Device
	swapchain   vk.Swapchain
	config      SwapchainConfig
	images      []vk.Image
	image_views []vk.ImageView
	rect        vk.Rect2D
}

// NewCoreSwapchain creates the swapchain and its image views. On failure
// everything it created is destroyed before the error is returned.
func NewCoreSwapchain(device vk.Device, surface vk.Surface, config SwapchainConfig) (*CoreSwapchain, error) {
	core := &CoreSwapchain{
		device: device,
		config: config,
		rect:   vk.Rect2D{Offset: vk.Offset2D{}, Extent: config.Extent},
	}

	info := config.createInfo(surface)
	ret := vk.CreateSwapchain(device, &info, nil, &core.swapchain)
	if err := checkResult(ErrPresentationChain, ret, "creating swapchain"); err != nil {
		return nil, err
	}

	//Creates handles for the swapchain images
	var imageCount uint32
	ret = vk.GetSwapchainImages(device, core.swapchain, &imageCount, nil)
	if err := checkResult(ErrPresentationChain, ret, "counting swapchain images"); err != nil {
		core.Destroy()
		return nil, err
	}
	core.images = make([]vk.Image, imageCount)
	ret = vk.GetSwapchainImages(device, core.swapchain, &imageCount, core.images)
	if err := checkResult(ErrPresentationChain, ret, "getting swapchain images"); err != nil {
		core.Destroy()
		return nil, err
	}
	core.images = core.images[:imageCount]

	core.image_views = make([]vk.ImageView, 0, imageCount)
	for index := range core.images {
		view, err := core.createImageView(index)
		if err != nil {
			core.Destroy()
			return nil, err
		}
		core.image_views = append(core.image_views, view)
	}
	return core, nil
}

func imageViewInfo(image vk.Image, format vk.Format) vk.ImageViewCreateInfo {
	return vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Flags:    vk.ImageViewCreateFlags(0),
		Image:    image,
		ViewType: vk.ImageViewType2d,
		Format:   format,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleIdentity,
			G: vk.ComponentSwizzleIdentity,
			B: vk.ComponentSwizzleIdentity,
			A: vk.ComponentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	}
}

func (core *CoreSwapchain) createImageView(index int) (vk.ImageView, error) {
	var view vk.ImageView
	info := imageViewInfo(core.images[index], core.config.Format.Format)
	ret := vk.CreateImageView(core.device, &info, nil, &view)
	if err := checkResult(ErrPresentationChain, ret, "creating view for swapchain image %d", index); err != nil {
		return vk.NullImageView, err
	}
	return view, nil
}

// CreateFramebuffers builds one framebuffer per image view for renderPass.
// A failure destroys the framebuffers already built.
func (core *CoreSwapchain) CreateFramebuffers(renderPass vk.RenderPass) ([]vk.Framebuffer, error) {
	framebuffers := make([]vk.Framebuffer, 0, len(core.image_views))
	for index, view := range core.image_views {
		var framebuffer vk.Framebuffer
		ret := vk.CreateFramebuffer(core.device, &vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      renderPass,
			AttachmentCount: 1,
			PAttachments:    []vk.ImageView{view},
			Width:           core.config.Extent.Width,
			Height:          core.config.Extent.Height,
			Layers:          1,
		}, nil, &framebuffer)
		if err := checkResult(ErrPresentationChain, ret, "creating framebuffer %d", index); err != nil {
			DestroyFramebuffers(core.device, framebuffers)
			return nil, err
		}
		framebuffers = append(framebuffers, framebuffer)
	}
	return framebuffers, nil
}

func DestroyFramebuffers(device vk.Device, framebuffers []vk.Framebuffer) {
	for _, framebuffer := range framebuffers {
		vk.DestroyFramebuffer(device, framebuffer, nil)
	}
}

func (core *CoreSwapchain) Handle() vk.Swapchain {
	return core.swapchain
}

func (core *CoreSwapchain) Rect() vk.Rect2D {
	return core.rect
}

func (core *CoreSwapchain) ImageCount() int {
	return len(core.images)
}

// Destroy releases the image views and then the swapchain, which owns the
// images.
func (core *CoreSwapchain) Destroy() {
	for _, view := range core.image_views {
		vk.DestroyImageView(core.device, view, nil)
	}
	core.image_views = nil
	if core.swapchain != vk.NullSwapchain {
		vk.DestroySwapchain(core.device, core.swapchain, nil)
		core.swapchain = vk.NullSwapchain
	}
	core.images = nil
}
