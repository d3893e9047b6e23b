// Package model flattens imported scenes into drawable meshes and draws them.
package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/glchapters/internal/engine/gpu"
	"github.com/Faultbox/glchapters/internal/engine/importer"
)

// Texture is an uploaded texture bound to a material role.
type Texture struct {
	ID   gpu.TextureID
	Type importer.TextureType
	Path string // as written in the material, also the cache key
}

// Mesh is one drawable unit. Its GPU buffers are created once and never changed.
type Mesh struct {
	Name     string
	Vertices []gpu.Vertex
	Indices  []uint32
	Textures []Texture
	Bounds   Bounds

	buffers gpu.MeshBuffers
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds holds an axis-aligned bounding box. The zero value is empty.
type Bounds struct {
	Min, Max mgl32.Vec3
	valid    bool
}

// Extend grows b to contain p.
func (b *Bounds) Extend(p mgl32.Vec3) {
	if !b.valid {
		b.Min, b.Max, b.valid = p, p, true
		return
	}
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union grows b to contain o.
func (b *Bounds) Union(o Bounds) {
	if !o.valid {
		return
	}
	b.Extend(o.Min)
	b.Extend(o.Max)
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool {
	return !b.valid
}

// Center returns the box center.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extent per axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Radius returns half the box diagonal.
func (b Bounds) Radius() float32 {
	return b.Size().Len() / 2
}

// Stats summarises a loaded model for logging.
type Stats struct {
	Meshes         int
	Vertices       int
	Triangles      int
	Textures       int
	FailedTextures int
}
