package shader

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/glchapters/internal/logger"
)

// Source is a vertex/fragment shader pair.
type Source struct {
	Vertex   string
	Fragment string
}

// ReadSource loads a shader pair from disk.
func ReadSource(vertexPath, fragmentPath string) (Source, error) {
	vs, err := os.ReadFile(vertexPath)
	if err != nil {
		return Source{}, fmt.Errorf("reading vertex shader: %w", err)
	}
	fs, err := os.ReadFile(fragmentPath)
	if err != nil {
		return Source{}, fmt.Errorf("reading fragment shader: %w", err)
	}
	return Source{Vertex: string(vs), Fragment: string(fs)}, nil
}

// Program is a linked GL program with cached uniform locations.
type Program struct {
	name      string
	id        uint32
	locations map[string]int32
	log       *zap.Logger
}

// NewProgram compiles and links src. Build failures are logged and returned.
func NewProgram(name string, src Source) (*Program, error) {
	p := &Program{
		name:      name,
		locations: make(map[string]int32),
		log:       logger.Named("shader").With(zap.String("program", name)),
	}
	if err := p.Reload(src); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload rebuilds the program from src. On failure the previous program stays active.
func (p *Program) Reload(src Source) error {
	id, err := CompileProgram(src.Vertex, src.Fragment)
	if err != nil {
		p.log.Error("shader build failed", zap.Error(err))
		return err
	}
	if p.id != 0 {
		gl.DeleteProgram(p.id)
	}
	p.id = id
	p.locations = make(map[string]int32)
	p.log.Debug("shader program built", zap.Uint32("id", id))
	return nil
}

// ID returns the GL program name.
func (p *Program) ID() uint32 { return p.id }

// Name returns the program's label.
func (p *Program) Name() string { return p.name }

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// location looks up and caches a uniform location. Missing uniforms are
// logged once and cached as -1, which GL ignores.
func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := GetUniform(p.id, name)
	if loc < 0 {
		p.log.Debug("uniform not active", zap.String("uniform", name))
	}
	p.locations[name] = loc
	return loc
}

// SetInt sets an int or sampler uniform. The program must be in use.
func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.location(name), v)
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.location(name), v)
}

// SetVec2 sets a vec2 uniform.
func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	gl.Uniform2f(p.location(name), v[0], v[1])
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.location(name), v[0], v[1], v[2])
}

// SetVec4 sets a vec4 uniform.
func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4f(p.location(name), v[0], v[1], v[2], v[3])
}

// SetMat4 sets a mat4 uniform.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, &m[0])
}
