package vkquad

import (
	"reflect"
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestChooseImageCount(t *testing.T) {
	tests := []struct {
		name     string
		min, max uint32
		want     uint32
	}{
		{"unbounded", 2, 0, 3},
		{"room above min", 2, 8, 3},
		{"capped at max", 3, 3, 3},
		{"single image", 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := vk.SurfaceCapabilities{MinImageCount: tt.min, MaxImageCount: tt.max}
			if got := ChooseImageCount(caps); got != tt.want {
				t.Errorf("ChooseImageCount(min %d, max %d) = %d, want %d", tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestChoosePresentMode(t *testing.T) {
	tests := []struct {
		name  string
		modes []vk.PresentMode
		want  vk.PresentMode
	}{
		{"fifo only", []vk.PresentMode{vk.PresentModeFifo}, vk.PresentModeFifo},
		{"mailbox preferred", []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeImmediate, vk.PresentModeMailbox}, vk.PresentModeMailbox},
		{"immediate ignored", []vk.PresentMode{vk.PresentModeImmediate, vk.PresentModeFifo}, vk.PresentModeFifo},
		{"empty falls back to fifo", nil, vk.PresentModeFifo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChoosePresentMode(tt.modes); got != tt.want {
				t.Errorf("ChoosePresentMode(%v) = %v, want %v", tt.modes, got, tt.want)
			}
		})
	}
}

func TestChooseSurfaceFormat(t *testing.T) {
	unorm := vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	rgba := vk.SurfaceFormat{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	tests := []struct {
		name    string
		formats []vk.SurfaceFormat
		want    vk.SurfaceFormat
	}{
		{"preferred present", []vk.SurfaceFormat{unorm, srgb}, srgb},
		{"first when preferred absent", []vk.SurfaceFormat{rgba, unorm}, rgba},
		{"default when empty", nil, srgb},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseSurfaceFormat(tt.formats); got != tt.want {
				t.Errorf("ChooseSurfaceFormat() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestChooseExtent(t *testing.T) {
	bounded := vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32},
		MinImageExtent: vk.Extent2D{Width: 64, Height: 64},
		MaxImageExtent: vk.Extent2D{Width: 1024, Height: 768},
	}
	tests := []struct {
		name          string
		caps          vk.SurfaceCapabilities
		width, height int
		want          vk.Extent2D
	}{
		{
			name:   "current extent wins",
			caps:   vk.SurfaceCapabilities{CurrentExtent: vk.Extent2D{Width: 800, Height: 600}},
			width:  1920,
			height: 1080,
			want:   vk.Extent2D{Width: 800, Height: 600},
		},
		{"window size inside range", bounded, 800, 600, vk.Extent2D{Width: 800, Height: 600}},
		{"clamped to max", bounded, 4000, 3000, vk.Extent2D{Width: 1024, Height: 768}},
		{"clamped to min", bounded, 10, 0, vk.Extent2D{Width: 64, Height: 64}},
		{"negative size clamped", bounded, -5, 100, vk.Extent2D{Width: 64, Height: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseExtent(tt.caps, tt.width, tt.height); got != tt.want {
				t.Errorf("ChooseExtent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestChoosePreTransformAndAlpha(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		SupportedTransforms:     vk.SurfaceTransformFlags(vk.SurfaceTransformIdentityBit | vk.SurfaceTransformRotate90Bit),
		CurrentTransform:        vk.SurfaceTransformRotate90Bit,
		SupportedCompositeAlpha: vk.CompositeAlphaFlags(vk.CompositeAlphaInheritBit | vk.CompositeAlphaOpaqueBit),
	}
	if got := choosePreTransform(caps); got != vk.SurfaceTransformIdentityBit {
		t.Errorf("choosePreTransform() = %v, want identity", got)
	}
	if got := chooseCompositeAlpha(caps); got != vk.CompositeAlphaOpaqueBit {
		t.Errorf("chooseCompositeAlpha() = %v, want opaque", got)
	}

	caps.SupportedTransforms = vk.SurfaceTransformFlags(vk.SurfaceTransformRotate90Bit)
	caps.SupportedCompositeAlpha = vk.CompositeAlphaFlags(vk.CompositeAlphaInheritBit)
	if got := choosePreTransform(caps); got != vk.SurfaceTransformRotate90Bit {
		t.Errorf("choosePreTransform() = %v, want current transform", got)
	}
	if got := chooseCompositeAlpha(caps); got != vk.CompositeAlphaInheritBit {
		t.Errorf("chooseCompositeAlpha() = %v, want inherit", got)
	}
}

func TestPlanSwapchain(t *testing.T) {
	a := testAdapter("gpu")
	a.PresentModes = []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeMailbox}
	a.Capabilities = vk.SurfaceCapabilities{
		MinImageCount:           2,
		MaxImageCount:           0,
		CurrentExtent:           vk.Extent2D{Width: 800, Height: 600},
		SupportedTransforms:     vk.SurfaceTransformFlags(vk.SurfaceTransformIdentityBit),
		CurrentTransform:        vk.SurfaceTransformIdentityBit,
		SupportedCompositeAlpha: vk.CompositeAlphaFlags(vk.CompositeAlphaOpaqueBit),
	}

	shared := QueueFamilyIndices{Graphics: 0, Present: 0, HasGraphics: true, HasPresent: true}
	config := PlanSwapchain(&a, shared, 800, 600)
	if config.Format != srgb {
		t.Errorf("Format = %+v", config.Format)
	}
	if config.PresentMode != vk.PresentModeMailbox {
		t.Errorf("PresentMode = %v, want mailbox", config.PresentMode)
	}
	if config.ImageCount != 3 {
		t.Errorf("ImageCount = %d, want 3", config.ImageCount)
	}
	if config.Extent != (vk.Extent2D{Width: 800, Height: 600}) {
		t.Errorf("Extent = %+v", config.Extent)
	}
	if config.SharingMode != vk.SharingModeExclusive || len(config.QueueFamilies) != 0 {
		t.Errorf("shared family: sharing %v families %v, want exclusive with none", config.SharingMode, config.QueueFamilies)
	}

	split := QueueFamilyIndices{Graphics: 0, Present: 2, HasGraphics: true, HasPresent: true}
	config = PlanSwapchain(&a, split, 800, 600)
	if config.SharingMode != vk.SharingModeConcurrent {
		t.Errorf("split families: sharing %v, want concurrent", config.SharingMode)
	}
	if !reflect.DeepEqual(config.QueueFamilies, []uint32{0, 2}) {
		t.Errorf("split families: %v, want [0 2]", config.QueueFamilies)
	}

	info := config.createInfo(vk.NullSurface)
	if info.QueueFamilyIndexCount != 2 || info.ImageArrayLayers != 1 || info.Clipped != vk.True {
		t.Errorf("createInfo() = %+v", info)
	}
	if info.ImageUsage != vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit) {
		t.Errorf("ImageUsage = %v, want colour attachment", info.ImageUsage)
	}
}

func TestImageViewInfo(t *testing.T) {
	info := imageViewInfo(vk.NullImage, vk.FormatB8g8r8a8Srgb)
	if info.ViewType != vk.ImageViewType2d || info.Format != vk.FormatB8g8r8a8Srgb {
		t.Errorf("view type %v format %v", info.ViewType, info.Format)
	}
	identity := vk.ComponentMapping{
		R: vk.ComponentSwizzleIdentity,
		G: vk.ComponentSwizzleIdentity,
		B: vk.ComponentSwizzleIdentity,
		A: vk.ComponentSwizzleIdentity,
	}
	if info.Components != identity {
		t.Errorf("Components = %+v, want identity swizzle", info.Components)
	}
	r := info.SubresourceRange
	if r.AspectMask != vk.ImageAspectFlags(vk.ImageAspectColorBit) || r.LevelCount != 1 || r.LayerCount != 1 {
		t.Errorf("SubresourceRange = %+v", r)
	}
}
