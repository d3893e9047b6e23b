package gpu

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLDevice implements Device on an OpenGL 4.1 core context. gl.Init must
// have been called on the current thread.
type GLDevice struct{}

// NewGLDevice returns a device for the current GL context.
func NewGLDevice() *GLDevice {
	return &GLDevice{}
}

// CreateMesh uploads interleaved vertices and 32-bit indices into a new VAO.
func (d *GLDevice) CreateMesh(vertices []Vertex, indices []uint32) MeshBuffers {
	var m MeshBuffers
	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)

	stride := int32(unsafe.Sizeof(Vertex{}))

	gl.GenBuffers(1, &m.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(stride), unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	}

	gl.GenBuffers(1, &m.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.EBO)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	}

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, unsafe.Offsetof(Vertex{}.Position))
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, unsafe.Offsetof(Vertex{}.Normal))
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, unsafe.Offsetof(Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	m.IndexCount = int32(len(indices))
	return m
}

// DeleteMesh releases the mesh buffers.
func (d *GLDevice) DeleteMesh(m MeshBuffers) {
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
	}
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
	}
	if m.EBO != 0 {
		gl.DeleteBuffers(1, &m.EBO)
	}
}

// UploadTexture creates a 2D RGBA texture.
func (d *GLDevice) UploadTexture(img *image.RGBA, params SamplerParams) TextureID {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	w, h := int32(img.Bounds().Dx()), int32(img.Bounds().Dy())
	var pix unsafe.Pointer
	if len(img.Pix) > 0 {
		pix = unsafe.Pointer(&img.Pix[0])
	}
	// Sub-images have a stride wider than the visible row.
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, pix)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	if params.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(params.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(params.WrapT))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(params.Min))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(params.Mag))

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return TextureID(id)
}

// DeleteTexture releases a texture.
func (d *GLDevice) DeleteTexture(id TextureID) {
	if id == 0 {
		return
	}
	tex := uint32(id)
	gl.DeleteTextures(1, &tex)
}

// ActiveTextureUnit selects texture unit n.
func (d *GLDevice) ActiveTextureUnit(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
}

// BindTexture binds a 2D texture to the active unit.
func (d *GLDevice) BindTexture(id TextureID) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(id))
}

// DrawIndexed draws the mesh as indexed triangles.
func (d *GLDevice) DrawIndexed(m MeshBuffers) {
	if m.IndexCount == 0 {
		return
	}
	gl.BindVertexArray(m.VAO)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.IndexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

func glWrap(w Wrap) int32 {
	switch w {
	case ClampToEdge:
		return gl.CLAMP_TO_EDGE
	case MirroredRepeat:
		return gl.MIRRORED_REPEAT
	default:
		return gl.REPEAT
	}
}

func glFilter(f Filter) int32 {
	switch f {
	case Nearest:
		return gl.NEAREST
	case NearestMipmapNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	case LinearMipmapNearest:
		return gl.LINEAR_MIPMAP_NEAREST
	case NearestMipmapLinear:
		return gl.NEAREST_MIPMAP_LINEAR
	case LinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		return gl.LINEAR
	}
}
