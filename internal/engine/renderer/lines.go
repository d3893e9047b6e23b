package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Lines is a position-only vertex buffer drawn as GL_LINES.
type Lines struct {
	vao   uint32
	vbo   uint32
	count int32
}

// NewLines uploads vertices given as [x, y, z] triples, two per segment.
func NewLines(vertices []float32) (*Lines, error) {
	if len(vertices) == 0 || len(vertices)%6 != 0 {
		return nil, fmt.Errorf("lines: %d floats is not a whole number of segments", len(vertices))
	}
	l := &Lines{count: int32(len(vertices) / 3)}

	gl.GenVertexArrays(1, &l.vao)
	gl.BindVertexArray(l.vao)

	gl.GenBuffers(1, &l.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return l, nil
}

// Draw issues the line draw. The caller binds the program.
func (l *Lines) Draw() {
	gl.BindVertexArray(l.vao)
	gl.DrawArrays(gl.LINES, 0, l.count)
	gl.BindVertexArray(0)
}

// Delete releases the GL objects.
func (l *Lines) Delete() {
	if l.vao != 0 {
		gl.DeleteVertexArrays(1, &l.vao)
	}
	if l.vbo != 0 {
		gl.DeleteBuffers(1, &l.vbo)
	}
	l.vao, l.vbo = 0, 0
}
