package vkquad

import (
	"testing"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

func TestFindMemoryType(t *testing.T) {
	deviceLocal := vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
	hostVisible := vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)
	types := []vk.MemoryType{
		{PropertyFlags: deviceLocal},
		{PropertyFlags: hostVisible},
		{PropertyFlags: hostVisibleCoherent},
		{PropertyFlags: hostVisibleCoherent | vk.MemoryPropertyFlags(vk.MemoryPropertyHostCachedBit)},
	}
	tests := []struct {
		name    string
		filter  uint32
		props   vk.MemoryPropertyFlags
		want    uint32
		wantErr bool
	}{
		{"first coherent", 0xF, hostVisibleCoherent, 2, false},
		{"filter skips type 2", 0x9, hostVisibleCoherent, 3, false},
		{"superset flags accepted", 0x8, hostVisibleCoherent, 3, false},
		{"device local", 0xF, deviceLocal, 0, false},
		{"filter excludes all matches", 0x3, hostVisibleCoherent, 0, true},
		{"empty filter", 0, hostVisible, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindMemoryType(types, tt.filter, tt.props)
			if tt.wantErr {
				if !errors.Is(err, ErrNoSuitableMemory) {
					t.Fatalf("FindMemoryType() error = %v, want ErrNoSuitableMemory", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindMemoryType() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FindMemoryType() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFillMapped(t *testing.T) {
	data := VertexBytes(QuadVertices)
	mapped := make([]byte, len(data)+12)
	if err := fillMapped(mapped, data); err != nil {
		t.Fatal(err)
	}
	for i := range data {
		if mapped[i] != data[i] {
			t.Fatalf("byte %d = %#x, want %#x", i, mapped[i], data[i])
		}
	}

	short := make([]byte, len(data)-1)
	if err := fillMapped(short, data); !errors.Is(err, ErrInitialization) {
		t.Errorf("short mapping error = %v, want ErrInitialization", err)
	}
}

func TestNewGeometryBufferRejectsEmptyData(t *testing.T) {
	_, err := NewGeometryBuffer(nil, nil, vk.BufferUsageVertexBufferBit, nil)
	if !errors.Is(err, ErrInitialization) {
		t.Errorf("NewGeometryBuffer(empty) error = %v, want ErrInitialization", err)
	}
}

func TestGeometryBufferDestroyWithoutDevice(t *testing.T) {
	b := &GeometryBuffer{}
	b.Destroy()
	b.Destroy()
}
