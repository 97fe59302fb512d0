package meshedit

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// EdgeKey is the canonical, order independent key of an edge: the smaller
// unique vertex index first.
type EdgeKey [2]int

func MakeEdgeKey(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{a, b}
}

// FaceKey is the canonical key of a face: its three unique vertex indices in
// ascending order.
type FaceKey [3]int

func MakeFaceKey(a, b, c int) FaceKey {
	k := FaceKey{a, b, c}
	slices.Sort(k[:])
	return k
}

// Edge joins two unique vertices. VertexIndices keeps the order in which the
// edge was first seen; use Key for comparisons.
type Edge struct {
	Index         int
	VertexIndices [2]int
}

func (e Edge) Key() EdgeKey {
	return MakeEdgeKey(e.VertexIndices[0], e.VertexIndices[1])
}

// Other returns the endpoint of e that is not v.
func (e Edge) Other(v int) int {
	if e.VertexIndices[0] == v {
		return e.VertexIndices[1]
	}
	return e.VertexIndices[0]
}

// Face is a triangle over unique vertices, in the winding of the first raw
// triangle that produced it.
type Face struct {
	Index         int
	VertexIndices [3]int
}

func (f Face) Key() FaceKey {
	return MakeFaceKey(f.VertexIndices[0], f.VertexIndices[1], f.VertexIndices[2])
}

// EdgeKeys returns the keys of the three sides (v0,v1), (v1,v2), (v2,v0).
func (f Face) EdgeKeys() [3]EdgeKey {
	v := f.VertexIndices
	return [3]EdgeKey{
		MakeEdgeKey(v[0], v[1]),
		MakeEdgeKey(v[1], v[2]),
		MakeEdgeKey(v[2], v[0]),
	}
}

// Normal is the unit normal of the face. Degenerate faces yield a zero vector.
func (f Face) Normal(vertices []UniqueVertex) mgl64.Vec3 {
	v := f.VertexIndices
	return triangleNormal(vertices[v[0]].Position, vertices[v[1]].Position, vertices[v[2]].Position)
}

// Midpoint is the centroid of the face.
func (f Face) Midpoint(vertices []UniqueVertex) mgl64.Vec3 {
	sum := mgl64.Vec3{}
	for _, v := range f.VertexIndices {
		sum = sum.Add(vertices[v].Position)
	}
	return sum.Mul(1.0 / 3.0)
}
