package vkquad

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	vk "github.com/vulkan-go/vulkan"
)

// Vertex is the interleaved record read by the vertex shader.
type Vertex struct {
	Position mgl32.Vec2
	Color    mgl32.Vec3
}

var red = mgl32.Vec3{1, 0, 0}

// QuadVertices is a unit square centred on the origin.
var QuadVertices = []Vertex{
	{Position: mgl32.Vec2{-0.5, -0.5}, Color: red},
	{Position: mgl32.Vec2{0.5, -0.5}, Color: red},
	{Position: mgl32.Vec2{0.5, 0.5}, Color: red},
	{Position: mgl32.Vec2{-0.5, 0.5}, Color: red},
}

// QuadIndices splits the square into two triangles sharing the 0-2 diagonal.
var QuadIndices = []uint16{0, 1, 2, 2, 3, 0}

func VertexBindingDescription() vk.VertexInputBindingDescription {
	return vk.VertexInputBindingDescription{
		Binding:   0,
		Stride:    uint32(unsafe.Sizeof(Vertex{})),
		InputRate: vk.VertexInputRateVertex,
	}
}

func VertexAttributeDescriptions() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{
			Binding:  0,
			Location: 0,
			Format:   vk.FormatR32g32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Position)),
		},
		{
			Binding:  0,
			Location: 1,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   uint32(unsafe.Offsetof(Vertex{}.Color)),
		},
	}
}

// VertexBytes returns a copy of vertices as raw bytes.
func VertexBytes(vertices []Vertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	size := len(vertices) * int(unsafe.Sizeof(Vertex{}))
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), size))
	return out
}

// IndexBytes returns a copy of indices as raw bytes.
func IndexBytes(indices []uint16) []byte {
	if len(indices) == 0 {
		return nil
	}
	size := len(indices) * int(unsafe.Sizeof(indices[0]))
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(&indices[0])), size))
	return out
}
