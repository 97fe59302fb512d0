package meshedit

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// UniqueVertex is one logical mesh vertex standing for every raw buffer entry
// that shares its position. OriginalIndices is never empty and is ascending.
type UniqueVertex struct {
	Index           int
	Position        mgl64.Vec3
	OriginalIndices []int
}

// Topology is the deduplicated view of a Geometry.
type Topology struct {
	Vertices []UniqueVertex
	Edges    []Edge
	Faces    []Face

	// RawToUnique maps every raw vertex to its unique vertex.
	RawToUnique []int

	edgeByKey map[EdgeKey]int
}

// EdgeIndex returns the index of the edge joining unique vertices a and b.
func (t *Topology) EdgeIndex(a, b int) (int, bool) {
	i, ok := t.edgeByKey[MakeEdgeKey(a, b)]
	return i, ok
}

// ExtractVertices deduplicates the raw vertices of g by position. Vertices
// are numbered in order of first appearance in the buffer.
func ExtractVertices(g *Geometry) []UniqueVertex {
	vertices, _ := extractVertices(g)
	return vertices
}

// ExtractEdges returns every distinct edge of the triangle list, numbered in
// order of first appearance. Degenerate edges are dropped.
func ExtractEdges(g *Geometry) []Edge {
	_, rawToUnique := extractVertices(g)
	edges, _ := extractEdges(g, rawToUnique)
	return edges
}

// ExtractFaces returns one face per distinct triangle; triangles over the same
// three vertices in any order collapse into the first one seen.
func ExtractFaces(g *Geometry) []Face {
	_, rawToUnique := extractVertices(g)
	return extractFaces(g, rawToUnique)
}

// Extract builds the whole topology in one pass over the buffers.
func Extract(g *Geometry) *Topology {
	vertices, rawToUnique := extractVertices(g)
	edges, byKey := extractEdges(g, rawToUnique)
	faces := extractFaces(g, rawToUnique)

	Logger().Debug("meshedit: topology extracted",
		"raw", g.VertexCount(),
		"vertices", len(vertices),
		"edges", len(edges),
		"faces", len(faces))

	return &Topology{
		Vertices:    vertices,
		Edges:       edges,
		Faces:       faces,
		RawToUnique: rawToUnique,
		edgeByKey:   byKey,
	}
}

func extractVertices(g *Geometry) ([]UniqueVertex, []int) {
	if !g.HasPositions() {
		return []UniqueVertex{}, []int{}
	}
	n := g.VertexCount()
	index := newVertexIndex(n)
	rawToUnique := make([]int, n)
	for i := 0; i < n; i++ {
		rawToUnique[i] = index.add(i, g.Position(i))
	}
	return index.vertices, rawToUnique
}

// uniqueTriangles calls fn with the unique vertex indices of every triangle
// whose corners are all inside the buffer.
func uniqueTriangles(g *Geometry, rawToUnique []int, fn func(u [3]int)) {
	if !g.HasPositions() {
		return
	}
	for t := 0; t < g.TriangleCount(); t++ {
		tri := g.Triangle(t)
		if !g.validTriangle(tri) {
			continue
		}
		fn([3]int{rawToUnique[tri[0]], rawToUnique[tri[1]], rawToUnique[tri[2]]})
	}
}

func extractEdges(g *Geometry, rawToUnique []int) ([]Edge, map[EdgeKey]int) {
	edges := []Edge{}
	byKey := make(map[EdgeKey]int)
	uniqueTriangles(g, rawToUnique, func(u [3]int) {
		for i := 0; i < 3; i++ {
			a, b := u[i], u[(i+1)%3]
			if a == b {
				continue
			}
			key := MakeEdgeKey(a, b)
			if _, seen := byKey[key]; seen {
				continue
			}
			byKey[key] = len(edges)
			edges = append(edges, Edge{Index: len(edges), VertexIndices: [2]int{a, b}})
		}
	})
	return edges, byKey
}

func extractFaces(g *Geometry, rawToUnique []int) []Face {
	faces := []Face{}
	seen := make(map[FaceKey]struct{})
	uniqueTriangles(g, rawToUnique, func(u [3]int) {
		key := MakeFaceKey(u[0], u[1], u[2])
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		faces = append(faces, Face{Index: len(faces), VertexIndices: u})
	})
	return faces
}

// TopologyCache keeps the extracted topology of the last geometry it saw and
// recomputes it only when the geometry changes identity or version.
type TopologyCache struct {
	id       uuid.UUID
	version  uint64
	topology *Topology
}

// Get returns the topology for g, extracting it when the cache is stale.
func (c *TopologyCache) Get(g *Geometry) *Topology {
	if c.topology != nil && c.id == g.ID && c.version == g.Version() {
		return c.topology
	}
	c.topology = Extract(g)
	c.id = g.ID
	c.version = g.Version()
	return c.topology
}

// Invalidate drops the cached topology.
func (c *TopologyCache) Invalidate() {
	c.topology = nil
}
