package renderer

// Geometry is interleaved float32 vertex data with an index list.
// Each vertex starts with a 3-component position; Components lists the size
// of every attribute in location order.
type Geometry struct {
	Vertices   []float32
	Indices    []uint32
	Components []int32
}

// Stride returns the vertex size in floats.
func (g Geometry) Stride() int32 {
	var n int32
	for _, c := range g.Components {
		n += c
	}
	return n
}

// VertexCount returns the number of vertices.
func (g Geometry) VertexCount() int {
	s := int(g.Stride())
	if s == 0 {
		return 0
	}
	return len(g.Vertices) / s
}

// TriangleGeometry is a triangle with a colour per corner.
func TriangleGeometry() Geometry {
	return Geometry{
		Vertices: []float32{
			// position        // colour
			0.5, -0.5, 0.0, 1.0, 0.0, 0.0, // bottom right
			-0.5, -0.5, 0.0, 0.0, 1.0, 0.0, // bottom left
			0.0, 0.5, 0.0, 0.0, 0.0, 1.0, // top
		},
		Indices:    []uint32{0, 1, 2},
		Components: []int32{3, 3},
	}
}

// RectangleGeometry is two triangles sharing four corners.
func RectangleGeometry() Geometry {
	return Geometry{
		Vertices: []float32{
			0.5, 0.5, 0.0, // top right
			0.5, -0.5, 0.0, // bottom right
			-0.5, -0.5, 0.0, // bottom left
			-0.5, 0.5, 0.0, // top left
		},
		Indices:    []uint32{0, 1, 3, 1, 2, 3},
		Components: []int32{3},
	}
}

// ShapesGeometry returns two triangles side by side, each drawn with its own program.
func ShapesGeometry() (left, right Geometry) {
	left = Geometry{
		Vertices: []float32{
			-0.9, -0.5, 0.0,
			-0.0, -0.5, 0.0,
			-0.45, 0.5, 0.0,
		},
		Indices:    []uint32{0, 1, 2},
		Components: []int32{3},
	}
	right = Geometry{
		Vertices: []float32{
			0.0, -0.5, 0.0,
			0.9, -0.5, 0.0,
			0.45, 0.5, 0.0,
		},
		Indices:    []uint32{0, 1, 2},
		Components: []int32{3},
	}
	return left, right
}
