package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/glchapters/internal/logger"
	"github.com/Faultbox/glchapters/pkg/formats"
)

// OBJ imports Wavefront .obj files and their .mtl material libraries.
type OBJ struct {
	log *zap.Logger
}

// NewOBJ creates an OBJ importer. A nil logger uses the global one.
func NewOBJ(log *zap.Logger) *OBJ {
	if log == nil {
		log = logger.L()
	}
	return &OBJ{log: log.Named("obj")}
}

// Import parses path and builds a root node with one child per object.
func (imp *OBJ) Import(path string, opts Options) (*Scene, error) {
	obj, err := formats.ParseOBJFile(path)
	if err != nil {
		return nil, err
	}
	for _, w := range obj.Warnings {
		imp.log.Debug("unsupported OBJ content", zap.String("path", path), zap.String("detail", w))
	}

	scene := &Scene{
		Root:       &Node{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))},
		Incomplete: obj.Incomplete,
	}
	if obj.Incomplete {
		return scene, nil
	}

	materials := imp.loadMaterials(filepath.Dir(path), obj.MaterialLibs)
	matIndex := make(map[string]int)
	materialFor := func(name string) int {
		if name == "" {
			return -1
		}
		if idx, ok := matIndex[name]; ok {
			return idx
		}
		mat := NewMaterial(name)
		if m := materials.find(name); m != nil {
			if m.DiffuseMap != "" {
				mat.AddTexture(TextureDiffuse, m.DiffuseMap)
			}
			if m.SpecularMap != "" {
				mat.AddTexture(TextureSpecular, m.SpecularMap)
			}
		} else {
			imp.log.Warn("material not found in any library", zap.String("material", name))
		}
		matIndex[name] = len(scene.Materials)
		scene.Materials = append(scene.Materials, mat)
		return matIndex[name]
	}

	for _, o := range obj.Objects {
		node := &Node{Name: o.Name}
		for gi, g := range o.Groups {
			mesh := buildOBJMesh(obj, g, opts)
			mesh.Name = o.Name
			if len(o.Groups) > 1 {
				mesh.Name = fmt.Sprintf("%s.%d", o.Name, gi)
			}
			mesh.Material = materialFor(g.Material)

			node.Meshes = append(node.Meshes, len(scene.Meshes))
			scene.Meshes = append(scene.Meshes, mesh)
		}
		scene.Root.Children = append(scene.Root.Children, node)
	}

	imp.log.Debug("imported OBJ",
		zap.String("path", path),
		zap.Int("objects", len(obj.Objects)),
		zap.Int("meshes", len(scene.Meshes)),
		zap.Int("materials", len(scene.Materials)))

	return scene, nil
}

// mtlSet is the union of all material libraries an OBJ references, first definition wins.
type mtlSet []*formats.MTL

func (s mtlSet) find(name string) *formats.OBJMaterial {
	for _, lib := range s {
		if m := lib.Lookup(name); m != nil {
			return m
		}
	}
	return nil
}

func (imp *OBJ) loadMaterials(dir string, libs []string) mtlSet {
	var set mtlSet
	for _, lib := range libs {
		libPath := lib
		if !filepath.IsAbs(libPath) {
			libPath = filepath.Join(dir, lib)
		}
		mtl, err := formats.ParseMTLFile(libPath)
		if err != nil {
			imp.log.Warn("skipping material library", zap.String("path", libPath), zap.Error(err))
			continue
		}
		for _, w := range mtl.Warnings {
			imp.log.Debug("unsupported MTL content", zap.String("path", libPath), zap.String("detail", w))
		}
		set = append(set, mtl)
	}
	return set
}

// buildOBJMesh turns a face group into an indexed mesh with one vertex per
// distinct position/texcoord/normal corner.
func buildOBJMesh(obj *formats.OBJ, g *formats.OBJGroup, opts Options) *Mesh {
	mesh := &Mesh{Material: -1}

	hasUV, hasNormal := false, false
	for _, f := range g.Faces {
		for _, c := range f.Corners {
			hasUV = hasUV || c.TexCoord != formats.NoIndex
			hasNormal = hasNormal || c.Normal != formats.NoIndex
		}
	}
	var uvs []mgl32.Vec2

	seen := make(map[formats.OBJCorner]uint32)
	for _, f := range g.Faces {
		face := make([]uint32, len(f.Corners))
		for i, c := range f.Corners {
			idx, ok := seen[c]
			if !ok {
				idx = uint32(len(mesh.Positions))
				seen[c] = idx
				mesh.Positions = append(mesh.Positions, mgl32.Vec3(obj.Positions[c.Position]))
				if hasNormal {
					var n mgl32.Vec3
					if c.Normal != formats.NoIndex {
						n = obj.Normals[c.Normal]
					}
					mesh.Normals = append(mesh.Normals, n)
				}
				if hasUV {
					var uv mgl32.Vec2
					if c.TexCoord != formats.NoIndex {
						uv = obj.TexCoords[c.TexCoord]
					}
					uvs = append(uvs, uv)
				}
			}
			face[i] = idx
		}

		if opts.Triangulate {
			mesh.Faces = append(mesh.Faces, triangulateFan(face)...)
		} else {
			mesh.Faces = append(mesh.Faces, face)
		}
	}

	if hasUV {
		mesh.TexCoords = [][]mgl32.Vec2{uvs}
		if opts.FlipUVs {
			flipUVs(mesh.TexCoords)
		}
	}
	return mesh
}
