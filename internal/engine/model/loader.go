package model

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/glchapters/internal/engine/gpu"
	"github.com/Faultbox/glchapters/internal/engine/importer"
	"github.com/Faultbox/glchapters/internal/logger"
)

var errNoImage = errors.New("decoder returned no image")

// ImageDecoder turns an image file into RGBA pixels.
type ImageDecoder interface {
	Decode(path string) (*image.RGBA, error)
}

// Loader imports scene files and uploads them through a gpu.Device.
type Loader struct {
	importer importer.Importer
	decoder  ImageDecoder
	device   gpu.Device
	log      *zap.Logger

	// Options are passed to the importer. Triangulation is required for indexed drawing.
	Options importer.Options
	// Sampler is applied to every uploaded texture.
	Sampler gpu.SamplerParams
}

// NewLoader creates a loader that triangulates and flips texture coordinates.
// A nil logger uses the global one.
func NewLoader(imp importer.Importer, dec ImageDecoder, dev gpu.Device, log *zap.Logger) *Loader {
	if log == nil {
		log = logger.L()
	}
	return &Loader{
		importer: imp,
		decoder:  dec,
		device:   dev,
		log:      log.Named("model"),
		Options:  importer.Options{Triangulate: true, FlipUVs: true},
		Sampler:  gpu.DefaultSampler(),
	}
}

// Load imports path into a new Model.
//
// If the scene cannot be imported, is incomplete or has no root, or a face
// references a missing vertex, Load returns an empty Model together with an
// *ImportError. Texture decode failures do not fail the load; they are
// available from Model.TextureErrors.
func (l *Loader) Load(path string) (*Model, error) {
	m := newModel(l.device, filepath.Dir(path))

	scene, err := l.importer.Import(path, l.Options)
	switch {
	case err != nil:
	case scene == nil || scene.Incomplete:
		err = ErrIncompleteScene
	case scene.Root == nil:
		err = ErrNoRootNode
	}
	if err != nil {
		return m, l.fail(path, err)
	}

	b := &builder{loader: l, model: m, scene: scene}
	if err := b.walk(); err != nil {
		m.Release()
		return m, l.fail(path, err)
	}

	st := m.Stats()
	l.log.Info("model loaded",
		zap.String("path", path),
		zap.Int("meshes", st.Meshes),
		zap.Int("vertices", st.Vertices),
		zap.Int("triangles", st.Triangles),
		zap.Int("textures", st.Textures),
		zap.Int("failed_textures", st.FailedTextures))
	return m, nil
}

func (l *Loader) fail(path string, err error) error {
	ierr := &ImportError{Path: path, Err: err}
	l.log.Error("model import failed", zap.String("path", path), zap.Error(err))
	return ierr
}

// builder holds the state of one Load call.
type builder struct {
	loader *Loader
	model  *Model
	scene  *importer.Scene
}

// walk flattens the node tree depth-first in pre-order: a node's own meshes
// in importer order, then its children in importer order.
func (b *builder) walk() error {
	return b.scene.Walk(func(node *importer.Node, _ int) error {
		for _, idx := range node.Meshes {
			if idx < 0 || idx >= len(b.scene.Meshes) {
				return fmt.Errorf("%w: node %q references mesh %d of %d", ErrIndexOutOfRange, node.Name, idx, len(b.scene.Meshes))
			}
			mesh, err := b.mesh(b.scene.Meshes[idx])
			if err != nil {
				return err
			}
			b.model.meshes = append(b.model.meshes, mesh)
		}
		return nil
	})
}

// mesh copies vertex attributes and face indices, resolves textures and
// uploads the buffers.
func (b *builder) mesh(src *importer.Mesh) (*Mesh, error) {
	n := src.NumVertices()
	mesh := &Mesh{
		Name:     src.Name,
		Vertices: make([]gpu.Vertex, n),
	}

	hasNormals := src.HasNormals()
	hasUVs := src.HasTexCoords(0)
	for i := 0; i < n; i++ {
		v := gpu.Vertex{Position: src.Positions[i]}
		if hasNormals {
			v.Normal = src.Normals[i]
		}
		if hasUVs {
			v.TexCoord = src.TexCoords[0][i]
		}
		mesh.Vertices[i] = v
		mesh.Bounds.Extend(v.Position)
	}

	for fi, face := range src.Faces {
		for _, idx := range face {
			if int(idx) >= n {
				return nil, fmt.Errorf("%w: mesh %q face %d index %d, %d vertices", ErrIndexOutOfRange, src.Name, fi, idx, n)
			}
			mesh.Indices = append(mesh.Indices, idx)
		}
	}

	if src.Material >= 0 && src.Material < len(b.scene.Materials) {
		mat := b.scene.Materials[src.Material]
		for _, role := range importer.TextureTypes {
			for _, path := range mat.TexturePaths(role) {
				if tex, ok := b.texture(path, role); ok {
					mesh.Textures = append(mesh.Textures, tex)
				}
			}
		}
	}

	mesh.buffers = b.loader.device.CreateMesh(mesh.Vertices, mesh.Indices)
	return mesh, nil
}

// texture returns the cached texture for path or decodes and uploads it.
// Paths that failed once are not decoded again.
func (b *builder) texture(path string, role importer.TextureType) (Texture, bool) {
	m := b.model
	if tex, ok := m.textures[path]; ok {
		return tex, true
	}
	if _, failed := m.failed[path]; failed {
		return Texture{}, false
	}

	img, err := b.loader.decoder.Decode(m.resolve(path))
	if err == nil && img == nil {
		err = errNoImage
	}
	if err != nil {
		terr := &TextureDecodeError{Path: path, Err: err}
		m.failed[path] = terr
		m.textureErr = multierr.Append(m.textureErr, terr)
		b.loader.log.Warn("texture skipped", zap.String("path", path), zap.Error(err))
		return Texture{}, false
	}

	tex := Texture{
		ID:   b.loader.device.UploadTexture(img, b.loader.Sampler),
		Type: role,
		Path: path,
	}
	m.textures[path] = tex
	m.textureOrder = append(m.textureOrder, path)
	b.loader.log.Debug("texture uploaded",
		zap.String("path", path),
		zap.Stringer("type", role),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return tex, true
}

// resolve makes a material texture path usable from the working directory.
// Backslash separators from Windows-authored files are accepted.
func (m *Model) resolve(path string) string {
	p := filepath.FromSlash(strings.ReplaceAll(path, `\`, "/"))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.directory, p)
}
