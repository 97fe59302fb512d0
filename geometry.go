package meshedit

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Geometry is a triangle mesh held as flat buffers.
//
// Positions has stride 3. A nil Positions slice means the geometry has no
// position attribute at all. Indices has stride 3 and lists triangles by raw
// vertex index; when Indices is nil the triangles are the consecutive triples
// of the position buffer.
//
// Normals and Bounds are derived from Positions and Indices and are rebuilt by
// Refresh. Every operation in this package that mutates a Geometry refreshes it
// before returning.
type Geometry struct {
	ID        uuid.UUID
	Positions []float64
	Indices   []uint32
	Normals   []float64
	Bounds    Box

	version uint64
}

// NewGeometry takes ownership of the given buffers and computes the derived
// normals and bounds.
func NewGeometry(positions []float64, indices []uint32) *Geometry {
	g := &Geometry{
		ID:        uuid.New(),
		Positions: positions,
		Indices:   indices,
	}
	g.ComputeVertexNormals()
	g.ComputeBoundingBox()
	return g
}

// HasPositions reports whether the geometry carries a position attribute.
func (g *Geometry) HasPositions() bool {
	return g != nil && g.Positions != nil
}

// IsIndexed reports whether triangles come from an explicit index buffer.
func (g *Geometry) IsIndexed() bool {
	return g.Indices != nil
}

func (g *Geometry) VertexCount() int {
	if !g.HasPositions() {
		return 0
	}
	return len(g.Positions) / 3
}

func (g *Geometry) TriangleCount() int {
	if g.Indices != nil {
		return len(g.Indices) / 3
	}
	return g.VertexCount() / 3
}

// Triangle returns the raw vertex indices of triangle i.
func (g *Geometry) Triangle(i int) [3]int {
	if g.Indices != nil {
		return [3]int{int(g.Indices[i*3]), int(g.Indices[i*3+1]), int(g.Indices[i*3+2])}
	}
	return [3]int{i * 3, i*3 + 1, i*3 + 2}
}

// Position returns raw vertex i.
func (g *Geometry) Position(i int) mgl64.Vec3 {
	return readVec3(g.Positions, i)
}

// SetPosition writes raw vertex i without refreshing derived data. Call
// Refresh once a batch of writes is done.
func (g *Geometry) SetPosition(i int, p mgl64.Vec3) {
	writeVec3(g.Positions, i, p)
}

// Version is bumped by every Refresh. Together with ID it tells caches when
// extracted topology is stale.
func (g *Geometry) Version() uint64 {
	return g.version
}

// Refresh recomputes normals and bounds and bumps the version.
func (g *Geometry) Refresh() {
	g.ComputeVertexNormals()
	g.ComputeBoundingBox()
	g.version++
}

// Clone returns a deep copy with a fresh ID.
func (g *Geometry) Clone() *Geometry {
	c := &Geometry{
		ID:      uuid.New(),
		Bounds:  g.Bounds,
		version: g.version,
	}
	if g.Positions != nil {
		c.Positions = append(make([]float64, 0, len(g.Positions)), g.Positions...)
	}
	if g.Indices != nil {
		c.Indices = append(make([]uint32, 0, len(g.Indices)), g.Indices...)
	}
	if g.Normals != nil {
		c.Normals = append(make([]float64, 0, len(g.Normals)), g.Normals...)
	}
	return c
}

// indexBuffer returns a fresh copy of the triangle list as an index buffer,
// synthesising sequential indices for non-indexed geometry. extra reserves
// room for appended triangles.
func (g *Geometry) indexBuffer(extra int) []uint32 {
	count := g.TriangleCount() * 3
	out := make([]uint32, 0, count+extra)
	if g.Indices != nil {
		return append(out, g.Indices[:count]...)
	}
	for i := 0; i < count; i++ {
		out = append(out, uint32(i))
	}
	return out
}

// validTriangle reports whether every corner of tri addresses a vertex.
func (g *Geometry) validTriangle(tri [3]int) bool {
	n := g.VertexCount()
	for _, v := range tri {
		if v < 0 || v >= n {
			return false
		}
	}
	return true
}

// ComputeVertexNormals rebuilds per raw vertex normals by summing the area
// weighted normals of every triangle using the vertex.
func (g *Geometry) ComputeVertexNormals() {
	if !g.HasPositions() {
		g.Normals = nil
		return
	}
	if len(g.Normals) != len(g.Positions) {
		g.Normals = make([]float64, len(g.Positions))
	} else {
		clear(g.Normals)
	}

	for t := 0; t < g.TriangleCount(); t++ {
		tri := g.Triangle(t)
		if !g.validTriangle(tri) {
			continue
		}
		a, b, c := g.Position(tri[0]), g.Position(tri[1]), g.Position(tri[2])
		// un-normalised cross product, so larger faces weigh more
		n := b.Sub(a).Cross(c.Sub(a))
		for _, v := range tri {
			writeVec3(g.Normals, v, readVec3(g.Normals, v).Add(n))
		}
	}

	for i := 0; i < g.VertexCount(); i++ {
		writeVec3(g.Normals, i, normalize(readVec3(g.Normals, i)))
	}
}

// ComputeBoundingBox rebuilds Bounds from the position buffer.
func (g *Geometry) ComputeBoundingBox() {
	box := EmptyBox()
	for i := 0; i < g.VertexCount(); i++ {
		box.Extend(g.Position(i))
	}
	g.Bounds = box
}
