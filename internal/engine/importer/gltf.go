package importer

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/glchapters/internal/logger"
)

// GLTF imports .gltf and .glb files. Node transforms and animations are not applied.
type GLTF struct {
	log *zap.Logger
}

// NewGLTF creates a glTF importer. A nil logger uses the global one.
func NewGLTF(log *zap.Logger) *GLTF {
	if log == nil {
		log = logger.L()
	}
	return &GLTF{log: log.Named("gltf")}
}

// Import opens path and converts its default scene.
func (imp *GLTF) Import(path string, opts Options) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening glTF %s: %w", path, err)
	}
	scene := (&gltfConverter{doc: doc, opts: opts, log: imp.log, name: filepath.Base(path)}).convert()
	imp.log.Debug("imported glTF",
		zap.String("path", path),
		zap.Int("meshes", len(scene.Meshes)),
		zap.Int("materials", len(scene.Materials)),
		zap.Bool("incomplete", scene.Incomplete))
	return scene, nil
}

type gltfConverter struct {
	doc  *gltf.Document
	opts Options
	log  *zap.Logger
	name string

	scene *Scene
	// meshes maps a glTF mesh index to the importer meshes built from its primitives.
	meshes map[int][]int
}

func (c *gltfConverter) convert() *Scene {
	c.scene = &Scene{}
	c.meshes = make(map[int][]int)

	for _, m := range c.doc.Materials {
		c.scene.Materials = append(c.scene.Materials, c.material(m))
	}

	roots := c.rootNodes()
	if len(roots) == 0 {
		return c.scene
	}

	visited := make(map[int]bool)
	if len(roots) == 1 {
		c.scene.Root = c.node(roots[0], visited)
		return c.scene
	}
	c.scene.Root = &Node{Name: c.name}
	for _, r := range roots {
		if n := c.node(r, visited); n != nil {
			c.scene.Root.Children = append(c.scene.Root.Children, n)
		}
	}
	return c.scene
}

// rootNodes returns the root nodes of the default scene, or every
// unreferenced node when the document declares no scenes.
func (c *gltfConverter) rootNodes() []int {
	doc := c.doc
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil {
			idx = int(*doc.Scene)
		}
		if idx < 0 || idx >= len(doc.Scenes) {
			c.scene.Incomplete = true
			return nil
		}
		roots := make([]int, 0, len(doc.Scenes[idx].Nodes))
		for _, n := range doc.Scenes[idx].Nodes {
			roots = append(roots, int(n))
		}
		return roots
	}

	child := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, ch := range n.Children {
			child[int(ch)] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// node converts node idx and its subtree with an explicit stack.
func (c *gltfConverter) node(idx int, visited map[int]bool) *Node {
	type pending struct {
		idx    int
		parent *Node
	}

	var root *Node
	stack := []pending{{idx: idx}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.idx < 0 || p.idx >= len(c.doc.Nodes) || visited[p.idx] {
			c.scene.Incomplete = true
			continue
		}
		visited[p.idx] = true

		src := c.doc.Nodes[p.idx]
		n := &Node{Name: src.Name}
		if n.Name == "" {
			n.Name = fmt.Sprintf("node%d", p.idx)
		}
		if src.Mesh != nil {
			n.Meshes = c.mesh(int(*src.Mesh))
		}

		if p.parent == nil {
			root = n
		} else {
			p.parent.Children = append(p.parent.Children, n)
		}

		// Push in reverse so children are appended in document order.
		for i := len(src.Children) - 1; i >= 0; i-- {
			stack = append(stack, pending{idx: int(src.Children[i]), parent: n})
		}
	}
	return root
}

// mesh returns the importer mesh indices for glTF mesh idx, converting it on first use.
func (c *gltfConverter) mesh(idx int) []int {
	if ids, ok := c.meshes[idx]; ok {
		return ids
	}
	if idx < 0 || idx >= len(c.doc.Meshes) {
		c.scene.Incomplete = true
		return nil
	}

	src := c.doc.Meshes[idx]
	var ids []int
	for pi, prim := range src.Primitives {
		m, err := c.primitive(prim)
		if err != nil {
			c.log.Warn("skipping primitive",
				zap.String("mesh", src.Name),
				zap.Int("primitive", pi),
				zap.Error(err))
			c.scene.Incomplete = true
			continue
		}
		m.Name = src.Name
		if len(src.Primitives) > 1 {
			m.Name = fmt.Sprintf("%s.%d", src.Name, pi)
		}
		ids = append(ids, len(c.scene.Meshes))
		c.scene.Meshes = append(c.scene.Meshes, m)
	}
	c.meshes[idx] = ids
	return ids
}

func (c *gltfConverter) primitive(prim *gltf.Primitive) (*Mesh, error) {
	doc := c.doc
	mesh := &Mesh{Material: -1}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	acr, err := c.accessor(int(posIdx))
	if err != nil {
		return nil, fmt.Errorf("POSITION: %w", err)
	}
	positions, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}
	mesh.Positions = make([]mgl32.Vec3, len(positions))
	for i, p := range positions {
		mesh.Positions[i] = p
	}

	if nIdx, ok := prim.Attributes["NORMAL"]; ok {
		acr, err := c.accessor(int(nIdx))
		if err != nil {
			return nil, fmt.Errorf("NORMAL: %w", err)
		}
		normals, err := modeler.ReadNormal(doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
		mesh.Normals = make([]mgl32.Vec3, len(normals))
		for i, n := range normals {
			mesh.Normals[i] = n
		}
	}

	for ch := 0; ; ch++ {
		uvIdx, ok := prim.Attributes[fmt.Sprintf("TEXCOORD_%d", ch)]
		if !ok {
			break
		}
		acr, err := c.accessor(int(uvIdx))
		if err != nil {
			return nil, fmt.Errorf("TEXCOORD_%d: %w", ch, err)
		}
		uvs, err := modeler.ReadTextureCoord(doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("reading TEXCOORD_%d: %w", ch, err)
		}
		channel := make([]mgl32.Vec2, len(uvs))
		for i, uv := range uvs {
			channel[i] = uv
		}
		mesh.TexCoords = append(mesh.TexCoords, channel)
	}
	if c.opts.FlipUVs {
		flipUVs(mesh.TexCoords)
	}

	var indices []uint32
	if prim.Indices != nil {
		acr, err := c.accessor(int(*prim.Indices))
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		indices, err = modeler.ReadIndices(doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	faces, err := c.faces(prim.Mode, indices)
	if err != nil {
		return nil, err
	}
	mesh.Faces = faces

	if prim.Material != nil {
		if mi := int(*prim.Material); mi >= 0 && mi < len(c.scene.Materials) {
			mesh.Material = mi
		}
	}
	return mesh, nil
}

// accessor resolves an accessor index, rejecting references the document does not hold.
func (c *gltfConverter) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(c.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range (%d accessors)", idx, len(c.doc.Accessors))
	}
	acr := c.doc.Accessors[idx]
	if acr == nil {
		return nil, fmt.Errorf("accessor %d is empty", idx)
	}
	if acr.BufferView != nil {
		bv := int(*acr.BufferView)
		if bv < 0 || bv >= len(c.doc.BufferViews) {
			return nil, fmt.Errorf("accessor %d: buffer view %d out of range", idx, bv)
		}
		view := c.doc.BufferViews[bv]
		if view == nil {
			return nil, fmt.Errorf("accessor %d: buffer view %d is empty", idx, bv)
		}
		if b := int(view.Buffer); b < 0 || b >= len(c.doc.Buffers) {
			return nil, fmt.Errorf("accessor %d: buffer %d out of range", idx, b)
		}
	}
	return acr, nil
}

// faces groups a primitive's index stream into triangles.
func (c *gltfConverter) faces(mode gltf.PrimitiveMode, idx []uint32) ([][]uint32, error) {
	var faces [][]uint32
	switch mode {
	case gltf.PrimitiveTriangles:
		for i := 0; i+2 < len(idx); i += 3 {
			faces = append(faces, []uint32{idx[i], idx[i+1], idx[i+2]})
		}
	case gltf.PrimitiveTriangleStrip:
		if !c.opts.Triangulate {
			return nil, fmt.Errorf("triangle strip needs triangulation")
		}
		for i := 0; i+2 < len(idx); i++ {
			// Alternate winding to keep faces consistently oriented.
			if i%2 == 0 {
				faces = append(faces, []uint32{idx[i], idx[i+1], idx[i+2]})
			} else {
				faces = append(faces, []uint32{idx[i+1], idx[i], idx[i+2]})
			}
		}
	case gltf.PrimitiveTriangleFan:
		if !c.opts.Triangulate {
			return nil, fmt.Errorf("triangle fan needs triangulation")
		}
		if len(idx) >= 3 {
			faces = triangulateFan(idx)
		}
	default:
		return nil, fmt.Errorf("primitive mode %v is not a triangle mode", mode)
	}
	return faces, nil
}

// material keeps the base colour texture as the diffuse slot.
func (c *gltfConverter) material(m *gltf.Material) *Material {
	mat := NewMaterial(m.Name)
	if m.PBRMetallicRoughness == nil || m.PBRMetallicRoughness.BaseColorTexture == nil {
		return mat
	}
	if path, ok := c.texturePath(int(m.PBRMetallicRoughness.BaseColorTexture.Index)); ok {
		mat.AddTexture(TextureDiffuse, path)
	}
	return mat
}

// texturePath resolves a texture to the relative URI of its image.
func (c *gltfConverter) texturePath(texIdx int) (string, bool) {
	doc := c.doc
	if texIdx < 0 || texIdx >= len(doc.Textures) || doc.Textures[texIdx].Source == nil {
		return "", false
	}
	imgIdx := int(*doc.Textures[texIdx].Source)
	if imgIdx < 0 || imgIdx >= len(doc.Images) {
		return "", false
	}
	img := doc.Images[imgIdx]
	if img.URI == "" || strings.HasPrefix(img.URI, "data:") {
		c.log.Warn("embedded images are not supported", zap.Int("image", imgIdx), zap.String("name", img.Name))
		return "", false
	}
	uri, err := url.PathUnescape(img.URI)
	if err != nil {
		uri = img.URI
	}
	return filepath.FromSlash(uri), true
}
