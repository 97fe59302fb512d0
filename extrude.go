package meshedit

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ExtrudeResult is the outcome of ExtrudeFace.
type ExtrudeResult struct {
	Geometry *Geometry

	// ExtrudedVertexBufferIndices are the raw indices of the three new
	// vertices, in the order of the source face's corners.
	ExtrudedVertexBufferIndices [3]int

	// ExtrudedFaceIndex is the triangle index of the new top face. It equals
	// the triangle count of the source geometry.
	ExtrudedFaceIndex int
}

// ExtrudeFace pushes a copy of faces[faceIndex] out along its normal by
// distance and joins it to the original edges with three quads. The source
// geometry is left untouched.
//
// The new geometry appends three vertices, then the top triangle, then two
// triangles per side. Side winding follows the source face and is not checked
// against neighbouring faces.
func ExtrudeFace(g *Geometry, faceIndex int, distance float64, vertices []UniqueVertex, faces []Face) (*ExtrudeResult, error) {
	if faceIndex < 0 || faceIndex >= len(faces) {
		return nil, fmt.Errorf("extrude face %d: %w", faceIndex, ErrFaceNotFound)
	}
	if !g.HasPositions() {
		return nil, fmt.Errorf("extrude face %d: %w", faceIndex, ErrNoPositionData)
	}

	face := faces[faceIndex]
	var orig [3]int
	var corners [3]mgl64.Vec3
	for i, u := range face.VertexIndices {
		if u < 0 || u >= len(vertices) {
			return nil, fmt.Errorf("extrude face %d: vertex %d: %w", faceIndex, u, ErrFaceNotFound)
		}
		orig[i] = vertices[u].OriginalIndices[0]
		corners[i] = vertices[u].Position
	}

	normal := triangleNormal(corners[0], corners[1], corners[2])
	if normal.Len() == 0 {
		Logger().Warn("meshedit: extruding degenerate face", "face", faceIndex)
	}
	offset := normal.Mul(distance)

	base := g.VertexCount()
	positions := make([]float64, len(g.Positions), len(g.Positions)+9)
	copy(positions, g.Positions)
	var top [3]int
	for i, c := range corners {
		p := c.Add(offset)
		positions = append(positions, p[0], p[1], p[2])
		top[i] = base + i
	}

	oldTriangles := g.TriangleCount()
	indices := g.indexBuffer(7 * 3)
	indices = append(indices, uint32(top[0]), uint32(top[1]), uint32(top[2]))
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		a, b := uint32(orig[i]), uint32(orig[j])
		na, nb := uint32(top[i]), uint32(top[j])
		indices = append(indices,
			a, b, nb,
			a, nb, na,
		)
	}

	out := NewGeometry(positions, indices)
	Logger().Debug("meshedit: face extruded",
		"face", faceIndex,
		"distance", distance,
		"triangles", out.TriangleCount())

	return &ExtrudeResult{
		Geometry:                    out,
		ExtrudedVertexBufferIndices: top,
		ExtrudedFaceIndex:           oldTriangles,
	}, nil
}
