package renderer

import (
	"embed"
	"fmt"

	"github.com/Faultbox/glchapters/internal/engine/shader"
)

//go:embed shaders/*.vert shaders/*.frag
var shaderFS embed.FS

// Built-in shader programs as vertex/fragment file pairs.
var builtinShaders = map[string][2]string{
	"triangle": {"triangle.vert", "color.frag"},
	"flat":     {"flat.vert", "flat.frag"},
	"pulse":    {"flat.vert", "pulse.frag"},
	"model":    {"model.vert", "model.frag"},
	"lines":    {"lines.vert", "flat.frag"},
}

// ShaderSource returns a built-in shader pair by name.
func ShaderSource(name string) (shader.Source, error) {
	files, ok := builtinShaders[name]
	if !ok {
		return shader.Source{}, fmt.Errorf("unknown built-in shader %q", name)
	}
	vs, err := shaderFS.ReadFile("shaders/" + files[0])
	if err != nil {
		return shader.Source{}, err
	}
	fs, err := shaderFS.ReadFile("shaders/" + files[1])
	if err != nil {
		return shader.Source{}, err
	}
	return shader.Source{Vertex: string(vs), Fragment: string(fs)}, nil
}
