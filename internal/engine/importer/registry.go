package importer

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Registry dispatches imports to a backend chosen by file extension.
type Registry struct {
	backends map[string]Importer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Importer)}
}

// NewDefaultRegistry registers the OBJ and glTF backends.
func NewDefaultRegistry(log *zap.Logger) *Registry {
	r := NewRegistry()
	r.Register(NewOBJ(log), ".obj")
	r.Register(NewGLTF(log), ".gltf", ".glb")
	return r
}

// Register maps extensions (with or without the leading dot) to imp.
func (r *Registry) Register(imp Importer, exts ...string) {
	for _, ext := range exts {
		r.backends[normalizeExt(ext)] = imp
	}
}

// Extensions returns the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.backends))
	for ext := range r.backends {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Supports reports whether path has a registered extension.
func (r *Registry) Supports(path string) bool {
	_, ok := r.backends[normalizeExt(filepath.Ext(path))]
	return ok
}

// Import implements Importer.
func (r *Registry) Import(path string, opts Options) (*Scene, error) {
	ext := normalizeExt(filepath.Ext(path))
	imp, ok := r.backends[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return imp.Import(path, opts)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
