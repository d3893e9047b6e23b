// Package debug provides debug visualization and capture utilities.
package debug

import "github.com/go-gl/mathgl/mgl32"

// BoxLineVertexCount is the number of vertices in a box outline (12 edges × 2).
const BoxLineVertexCount = 24

// boxEdges indexes the corners produced by boxCorners.
// Bottom face, top face, then the vertical edges.
var boxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func boxCorners(lo, hi mgl32.Vec3) [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{lo[0], lo[1], lo[2]},
		{hi[0], lo[1], lo[2]},
		{hi[0], lo[1], hi[2]},
		{lo[0], lo[1], hi[2]},
		{lo[0], hi[1], lo[2]},
		{hi[0], hi[1], lo[2]},
		{hi[0], hi[1], hi[2]},
		{lo[0], hi[1], hi[2]},
	}
}

// BoxLines returns GL_LINES vertices, [x, y, z] each, outlining the box
// spanned by a and b grown by padding on every side. The corners may be
// given in any order.
func BoxLines(a, b mgl32.Vec3, padding float32) []float32 {
	var lo, hi mgl32.Vec3
	for i := 0; i < 3; i++ {
		lo[i], hi[i] = a[i], b[i]
		if lo[i] > hi[i] {
			lo[i], hi[i] = hi[i], lo[i]
		}
		lo[i] -= padding
		hi[i] += padding
	}

	corners := boxCorners(lo, hi)
	out := make([]float32, 0, BoxLineVertexCount*3)
	for _, e := range boxEdges {
		p, q := corners[e[0]], corners[e[1]]
		out = append(out, p[0], p[1], p[2], q[0], q[1], q[2])
	}
	return out
}
