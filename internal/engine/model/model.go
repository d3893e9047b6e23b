package model

import (
	"fmt"

	"github.com/Faultbox/glchapters/internal/engine/gpu"
	"github.com/Faultbox/glchapters/internal/engine/importer"
)

// SamplerBinder assigns sampler uniforms to texture units. shader.Program implements it.
type SamplerBinder interface {
	SetInt(name string, v int32)
}

// Model is the result of one Load call. It is read-only after loading.
type Model struct {
	device    gpu.Device
	directory string
	meshes    []*Mesh

	// textures caches uploads by the exact path string of the material slot.
	textures     map[string]Texture
	textureOrder []string
	failed       map[string]error
	textureErr   error
}

func newModel(device gpu.Device, directory string) *Model {
	return &Model{
		device:    device,
		directory: directory,
		textures:  make(map[string]Texture),
		failed:    make(map[string]error),
	}
}

// Meshes returns the meshes in depth-first pre-order of the scene tree.
func (m *Model) Meshes() []*Mesh {
	return m.meshes
}

// TextureErrors returns every *TextureDecodeError of the load combined with
// multierr, or nil. Use multierr.Errors to list them.
func (m *Model) TextureErrors() error {
	return m.textureErr
}

// Draw binds each mesh's textures to consecutive units starting at 0, points
// the material.<role><n> samplers at them and issues an indexed draw.
func (m *Model) Draw(binder SamplerBinder) {
	for _, mesh := range m.meshes {
		mesh.draw(m.device, binder)
	}
}

func (mesh *Mesh) draw(device gpu.Device, binder SamplerBinder) {
	var diffuse, specular int
	for i, tex := range mesh.Textures {
		device.ActiveTextureUnit(i)

		var n int
		switch tex.Type {
		case importer.TextureDiffuse:
			diffuse++
			n = diffuse
		case importer.TextureSpecular:
			specular++
			n = specular
		}
		binder.SetInt(fmt.Sprintf("material.%s%d", tex.Type, n), int32(i))
		device.BindTexture(tex.ID)
	}

	device.DrawIndexed(mesh.buffers)
	device.ActiveTextureUnit(0)
}

// Release deletes the mesh buffers and every uploaded texture once.
// The model is empty afterwards, texture failures included.
func (m *Model) Release() {
	for _, mesh := range m.meshes {
		m.device.DeleteMesh(mesh.buffers)
	}
	for _, path := range m.textureOrder {
		m.device.DeleteTexture(m.textures[path].ID)
	}
	m.meshes = nil
	m.textureOrder = nil
	m.textures = make(map[string]Texture)
	m.failed = make(map[string]error)
	m.textureErr = nil
}

// Bounds returns the bounds of all mesh vertices.
func (m *Model) Bounds() Bounds {
	var b Bounds
	for _, mesh := range m.meshes {
		b.Union(mesh.Bounds)
	}
	return b
}

// Stats returns mesh, vertex, triangle and texture counts.
func (m *Model) Stats() Stats {
	s := Stats{
		Meshes:         len(m.meshes),
		Textures:       len(m.textureOrder),
		FailedTextures: len(m.failed),
	}
	for _, mesh := range m.meshes {
		s.Vertices += len(mesh.Vertices)
		s.Triangles += mesh.TriangleCount()
	}
	return s
}
