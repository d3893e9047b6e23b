package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/glchapters/internal/logger"
)

// Primitive is uploaded Geometry drawn with glDrawElements.
type Primitive struct {
	name  string
	vao   uint32
	vbo   uint32
	ebo   uint32
	count int32
}

// NewPrimitive uploads g. The element buffer stays bound to the VAO.
func NewPrimitive(name string, g Geometry) (*Primitive, error) {
	if len(g.Vertices) == 0 || len(g.Indices) == 0 {
		return nil, fmt.Errorf("primitive %s: empty geometry", name)
	}
	stride := g.Stride()
	if stride == 0 || len(g.Vertices)%int(stride) != 0 {
		return nil, fmt.Errorf("primitive %s: %d floats do not divide into stride %d", name, len(g.Vertices), stride)
	}

	p := &Primitive{name: name, count: int32(len(g.Indices))}

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)

	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*4, unsafe.Pointer(&g.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &p.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, p.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, unsafe.Pointer(&g.Indices[0]), gl.STATIC_DRAW)

	var offset int32
	for loc, n := range g.Components {
		gl.VertexAttribPointerWithOffset(uint32(loc), n, gl.FLOAT, false, stride*4, uintptr(offset*4))
		gl.EnableVertexAttribArray(uint32(loc))
		offset += n
	}

	// Unbind the VAO first so the element buffer binding is kept.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	logger.Debug("primitive created",
		zap.String("name", name),
		zap.Uint32("vao", p.vao),
		zap.Int32("indices", p.count),
	)
	return p, nil
}

// Draw issues the indexed draw. The caller binds the program.
func (p *Primitive) Draw() {
	gl.BindVertexArray(p.vao)
	gl.DrawElements(gl.TRIANGLES, p.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Delete releases the GL objects.
func (p *Primitive) Delete() {
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
	}
	if p.vbo != 0 {
		gl.DeleteBuffers(1, &p.vbo)
	}
	if p.ebo != 0 {
		gl.DeleteBuffers(1, &p.ebo)
	}
	p.vao, p.vbo, p.ebo = 0, 0, 0
}
