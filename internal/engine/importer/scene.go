// Package importer reads 3D scene files into a format-neutral node tree.
package importer

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// Importer errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported scene format")
)

// Options controls post-processing applied while importing.
type Options struct {
	// Triangulate splits polygons into triangles.
	Triangulate bool
	// FlipUVs maps every texture coordinate v to 1-v.
	FlipUVs bool
}

// Importer loads a scene file.
type Importer interface {
	Import(path string, opts Options) (*Scene, error)
}

// TextureType is the semantic role of a material texture.
type TextureType int

const (
	TextureDiffuse TextureType = iota
	TextureSpecular
)

// TextureTypes lists the roles in the order materials are resolved.
var TextureTypes = []TextureType{TextureDiffuse, TextureSpecular}

// String returns the role name used in sampler uniforms.
func (t TextureType) String() string {
	switch t {
	case TextureDiffuse:
		return "diffuse"
	case TextureSpecular:
		return "specular"
	default:
		return "unknown"
	}
}

// Scene is an imported scene. It is read-only once returned.
type Scene struct {
	Root      *Node
	Meshes    []*Mesh
	Materials []*Material

	// Incomplete is set when the importer could not represent part of the file.
	Incomplete bool
}

// Node is one element of the scene hierarchy.
type Node struct {
	Name     string
	Meshes   []int // indices into Scene.Meshes
	Children []*Node
}

// Mesh holds per-vertex attributes and polygon faces.
type Mesh struct {
	Name      string
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3   // empty, or one per position
	TexCoords [][]mgl32.Vec2 // channels; each channel has one entry per position
	Faces     [][]uint32     // indices into Positions
	Material  int            // index into Scene.Materials, -1 for none
}

// NumVertices returns the vertex count.
func (m *Mesh) NumVertices() int {
	return len(m.Positions)
}

// HasNormals reports whether the mesh carries per-vertex normals.
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) == len(m.Positions) && len(m.Normals) > 0
}

// HasTexCoords reports whether texture coordinate channel ch is present.
func (m *Mesh) HasTexCoords(ch int) bool {
	return ch < len(m.TexCoords) && len(m.TexCoords[ch]) == len(m.Positions)
}

// Material references textures by role.
type Material struct {
	Name     string
	textures map[TextureType][]string
}

// NewMaterial creates an empty material.
func NewMaterial(name string) *Material {
	return &Material{Name: name, textures: make(map[TextureType][]string)}
}

// AddTexture appends a texture path for role t.
func (m *Material) AddTexture(t TextureType, path string) {
	if m.textures == nil {
		m.textures = make(map[TextureType][]string)
	}
	m.textures[t] = append(m.textures[t], path)
}

// TexturePaths returns the texture paths for role t, as written in the source file.
func (m *Material) TexturePaths(t TextureType) []string {
	if m == nil {
		return nil
	}
	return m.textures[t]
}

// TextureCount returns the number of texture slots for role t.
func (m *Material) TextureCount(t TextureType) int {
	return len(m.TexturePaths(t))
}

// Walk visits the node tree depth-first in pre-order, skipping nil children.
// It stops at and returns the first error fn returns.
func (s *Scene) Walk(fn func(n *Node, depth int) error) error {
	if s == nil || s.Root == nil {
		return nil
	}
	type entry struct {
		node  *Node
		depth int
	}
	stack := []entry{{s.Root, 0}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := fn(e.node, e.depth); err != nil {
			return err
		}
		for i := len(e.node.Children) - 1; i >= 0; i-- {
			if ch := e.node.Children[i]; ch != nil {
				stack = append(stack, entry{ch, e.depth + 1})
			}
		}
	}
	return nil
}

// flipUVs maps v to 1-v on every channel.
func flipUVs(channels [][]mgl32.Vec2) {
	for _, ch := range channels {
		for i := range ch {
			ch[i][1] = 1 - ch[i][1]
		}
	}
}

// triangulateFan splits a convex polygon into a triangle fan around its first corner.
func triangulateFan(face []uint32) [][]uint32 {
	if len(face) <= 3 {
		return [][]uint32{face}
	}
	tris := make([][]uint32, 0, len(face)-2)
	for i := 1; i+1 < len(face); i++ {
		tris = append(tris, []uint32{face[0], face[i], face[i+1]})
	}
	return tris
}
