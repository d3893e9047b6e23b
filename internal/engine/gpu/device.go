// Package gpu defines the mesh and texture upload service used by the model pipeline.
package gpu

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the interleaved layout of every uploaded mesh:
// location 0 position, location 1 normal, location 2 texture coordinate.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
}

// TextureID is an opaque texture handle. Zero is never a valid texture.
type TextureID uint32

// MeshBuffers holds the handles of one uploaded indexed mesh.
type MeshBuffers struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// Wrap is a texture coordinate wrapping mode.
type Wrap int

const (
	Repeat Wrap = iota
	ClampToEdge
	MirroredRepeat
)

// Filter is a texture sampling filter.
type Filter int

const (
	Nearest Filter = iota
	Linear
	NearestMipmapNearest
	LinearMipmapNearest
	NearestMipmapLinear
	LinearMipmapLinear
)

// SamplerParams are fixed at upload time.
type SamplerParams struct {
	WrapS, WrapT Wrap
	Min, Mag     Filter
	Mipmaps      bool
}

// DefaultSampler repeats in both directions with trilinear minification.
func DefaultSampler() SamplerParams {
	return SamplerParams{
		WrapS:   Repeat,
		WrapT:   Repeat,
		Min:     LinearMipmapLinear,
		Mag:     Linear,
		Mipmaps: true,
	}
}

// Device creates and draws GPU resources. Implementations are bound to the
// thread that owns the graphics context.
type Device interface {
	CreateMesh(vertices []Vertex, indices []uint32) MeshBuffers
	DeleteMesh(m MeshBuffers)
	UploadTexture(img *image.RGBA, params SamplerParams) TextureID
	DeleteTexture(id TextureID)
	ActiveTextureUnit(unit int)
	BindTexture(id TextureID)
	DrawIndexed(m MeshBuffers)
}
