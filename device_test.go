package vkquad

import (
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

var srgb = vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear}

func testAdapter(name string, families ...QueueFamily) Adapter {
	return Adapter{
		Name:          name,
		Type:          vk.PhysicalDeviceTypeDiscreteGpu,
		QueueFamilies: families,
		Formats:       []vk.SurfaceFormat{srgb},
		PresentModes:  []vk.PresentMode{vk.PresentModeFifo},
		Extensions:    []string{swapchainExtension},
	}
}

func TestSelectAdapter(t *testing.T) {
	complete := QueueFamily{Index: 0, Flags: graphicsFlags, Count: 1, Present: true}
	graphicsOnly := QueueFamily{Index: 0, Flags: graphicsFlags, Count: 1}
	presentOnly := QueueFamily{Index: 1, Flags: computeFlags, Count: 1, Present: true}

	noFormats := testAdapter("no formats", complete)
	noFormats.Formats = nil
	noModes := testAdapter("no modes", complete)
	noModes.PresentModes = nil

	tests := []struct {
		name     string
		adapters []Adapter
		want     string
		wantErr  bool
	}{
		{
			name:     "first suitable in enumeration order",
			adapters: []Adapter{testAdapter("a", complete), testAdapter("b", complete)},
			want:     "a",
		},
		{
			name:     "skips adapter without present",
			adapters: []Adapter{testAdapter("headless", graphicsOnly), testAdapter("b", complete)},
			want:     "b",
		},
		{
			name:     "split families are suitable",
			adapters: []Adapter{testAdapter("split", graphicsOnly, presentOnly)},
			want:     "split",
		},
		{
			name:     "skips adapters without formats or modes",
			adapters: []Adapter{noFormats, noModes, testAdapter("c", complete)},
			want:     "c",
		},
		{
			name:     "nothing suitable",
			adapters: []Adapter{testAdapter("headless", graphicsOnly), testAdapter("compute", presentOnly)},
			wantErr:  true,
		},
		{
			name:    "no adapters",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, indices, err := SelectAdapter(tt.adapters, LastMatch)
			if tt.wantErr {
				if !errors.Is(err, ErrNoSuitableDevice) {
					t.Fatalf("SelectAdapter() error = %v, want ErrNoSuitableDevice", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectAdapter() error = %v", err)
			}
			if got.Name != tt.want {
				t.Errorf("SelectAdapter() = %s, want %s", got.Name, tt.want)
			}
			if !indices.IsComplete() {
				t.Errorf("SelectAdapter() indices %+v are incomplete", indices)
			}
		})
	}
}

func TestSelectAdapterReturnsPolicyIndices(t *testing.T) {
	adapters := []Adapter{testAdapter("multi",
		QueueFamily{Index: 0, Flags: graphicsFlags, Count: 16, Present: true},
		QueueFamily{Index: 1, Flags: graphicsFlags, Count: 1, Present: true},
	)}
	_, last, err := SelectAdapter(adapters, LastMatch)
	if err != nil {
		t.Fatal(err)
	}
	_, first, err := SelectAdapter(adapters, FirstMatch)
	if err != nil {
		t.Fatal(err)
	}
	if last.Graphics != 1 || last.Present != 1 {
		t.Errorf("last match picked %+v", last)
	}
	if first.Graphics != 0 || first.Present != 0 {
		t.Errorf("first match picked %+v", first)
	}
}

func TestRequiredDeviceExtensions(t *testing.T) {
	a := testAdapter("gpu")
	got, err := requiredDeviceExtensions(&a)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{swapchainExtension}) {
		t.Errorf("extensions = %v", got)
	}

	a.Extensions = append(a.Extensions, portabilitySubsetExtension)
	got, err = requiredDeviceExtensions(&a)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{swapchainExtension, portabilitySubsetExtension}) {
		t.Errorf("extensions with portability = %v", got)
	}

	a.Extensions = []string{portabilitySubsetExtension}
	if _, err := requiredDeviceExtensions(&a); !errors.Is(err, ErrMissingExtension) {
		t.Errorf("error without swapchain = %v, want ErrMissingExtension", err)
	}
}

func TestAdapterString(t *testing.T) {
	a := testAdapter("Test GPU")
	a.Type = vk.PhysicalDeviceTypeIntegratedGpu
	want := "Test GPU (integrated, 00000000-0000-0000-0000-000000000000)"
	if got := a.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
