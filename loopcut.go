package meshedit

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultLoopCutT places the cut halfway along the start edge.
const DefaultLoopCutT = 0.5

// LoopCutPoint is where the cut ring crosses one mesh edge.
type LoopCutPoint struct {
	Edge     Edge
	Position mgl64.Vec3
	// T is the fraction along Edge from VertexIndices[0] to VertexIndices[1].
	T float64
}

// LoopCutPath is an ordered ring of crossing points.
type LoopCutPath struct {
	Points   []LoopCutPoint
	IsClosed bool
}

// LoopCutResult is the outcome of ExecuteLoopCut.
type LoopCutResult struct {
	Geometry *Geometry
	// NewVertexIndices are the raw indices of the inserted vertices, in path
	// order.
	NewVertexIndices []int
}

// FindLoopCutPath finds the ring of edges crossed by the plane through the
// point at fraction t along startEdge, perpendicular to it. Crossing edges
// are chained through shared faces starting from the first crossing edge in
// the edge list. The path is closed when the chain used every crossing edge.
//
// An empty path means there is nothing to cut.
func FindLoopCutPath(startEdge Edge, edges []Edge, faces []Face, vertices []UniqueVertex, t float64) LoopCutPath {
	path := LoopCutPath{Points: []LoopCutPoint{}}

	a, b := startEdge.VertexIndices[0], startEdge.VertexIndices[1]
	if !inRange(a, len(vertices)) || !inRange(b, len(vertices)) {
		return path
	}
	v1, v2 := vertices[a].Position, vertices[b].Position
	dir := v2.Sub(v1)
	if dir.Len() == 0 {
		Logger().Warn("meshedit: loop cut from zero length edge", "edge", startEdge.Index)
		return path
	}
	plane := NewPlane(lerp(v1, v2, t), dir)

	// crossing points, keyed by position in edges
	crossings := make(map[int]LoopCutPoint)
	var order []int
	edgeByKey := make(map[EdgeKey]int, len(edges))
	for i, e := range edges {
		edgeByKey[e.Key()] = i
		p, q := e.VertexIndices[0], e.VertexIndices[1]
		if !inRange(p, len(vertices)) || !inRange(q, len(vertices)) {
			continue
		}
		pp, qp := vertices[p].Position, vertices[q].Position
		ti, ok := plane.Crossing(pp, qp)
		if !ok {
			continue
		}
		crossings[i] = LoopCutPoint{Edge: e, Position: lerp(pp, qp, ti), T: ti}
		order = append(order, i)
	}
	if len(order) == 0 {
		return path
	}

	adjacent := edgeFaces(faces)

	used := map[int]bool{order[0]: true}
	current := order[0]
	path.Points = append(path.Points, crossings[current])
	for {
		next := nextCrossing(edges[current].Key(), adjacent, faces, edgeByKey, crossings, used)
		if next < 0 {
			break
		}
		used[next] = true
		path.Points = append(path.Points, crossings[next])
		current = next
	}

	path.IsClosed = len(path.Points) == len(order) && len(path.Points) > 2
	Logger().Debug("meshedit: loop cut path",
		"start", startEdge.Index,
		"candidates", len(order),
		"points", len(path.Points),
		"closed", path.IsClosed)
	return path
}

// nextCrossing looks through the faces sharing edge key for an unused
// crossing edge and returns its position in the edge list, or -1.
func nextCrossing(key EdgeKey, adjacent map[EdgeKey][]int, faces []Face, edgeByKey map[EdgeKey]int, crossings map[int]LoopCutPoint, used map[int]bool) int {
	for _, fi := range adjacent[key] {
		for _, side := range faces[fi].EdgeKeys() {
			if side == key {
				continue
			}
			ei, ok := edgeByKey[side]
			if !ok || used[ei] {
				continue
			}
			if _, crossing := crossings[ei]; crossing {
				return ei
			}
		}
	}
	return -1
}

// edgeFaces maps every face side to the faces using it.
func edgeFaces(faces []Face) map[EdgeKey][]int {
	adjacent := make(map[EdgeKey][]int, len(faces)*3/2)
	for i, f := range faces {
		for _, k := range f.EdgeKeys() {
			adjacent[k] = append(adjacent[k], i)
		}
	}
	return adjacent
}

// ExecuteLoopCut inserts one vertex per path point and splits every triangle
// that has cut sides. Triangles with one cut side become two triangles, two
// cut sides become three, winding preserved. Triangles with all three sides
// cut are kept as they are.
//
// The path must come from FindLoopCutPath over the topology of g.
func ExecuteLoopCut(g *Geometry, path LoopCutPath) (*LoopCutResult, error) {
	if !g.HasPositions() {
		return nil, fmt.Errorf("loop cut: %w", ErrNoPositionData)
	}
	_, rawToUnique := extractVertices(g)

	base := g.VertexCount()
	positions := make([]float64, len(g.Positions), len(g.Positions)+len(path.Points)*3)
	copy(positions, g.Positions)

	cut := make(map[EdgeKey]uint32, len(path.Points))
	newVertices := make([]int, 0, len(path.Points))
	for i, p := range path.Points {
		positions = append(positions, p.Position[0], p.Position[1], p.Position[2])
		cut[p.Edge.Key()] = uint32(base + i)
		newVertices = append(newVertices, base+i)
	}

	indices := make([]uint32, 0, g.TriangleCount()*3*2)
	for t := 0; t < g.TriangleCount(); t++ {
		tri := g.Triangle(t)
		if !g.validTriangle(tri) {
			indices = append(indices, uint32(tri[0]), uint32(tri[1]), uint32(tri[2]))
			continue
		}
		indices = splitTriangle(indices, tri, rawToUnique, cut)
	}

	out := NewGeometry(positions, indices)
	Logger().Debug("meshedit: loop cut executed",
		"points", len(path.Points),
		"triangles_before", g.TriangleCount(),
		"triangles_after", out.TriangleCount())

	return &LoopCutResult{Geometry: out, NewVertexIndices: newVertices}, nil
}

// splitTriangle appends the replacement triangles for raw triangle tri.
// Sides are numbered 0=(a,b), 1=(b,c), 2=(c,a).
func splitTriangle(dst []uint32, tri [3]int, rawToUnique []int, cut map[EdgeKey]uint32) []uint32 {
	a, b, c := uint32(tri[0]), uint32(tri[1]), uint32(tri[2])
	ua, ub, uc := rawToUnique[tri[0]], rawToUnique[tri[1]], rawToUnique[tri[2]]

	m0, cut0 := cut[MakeEdgeKey(ua, ub)]
	m1, cut1 := cut[MakeEdgeKey(ub, uc)]
	m2, cut2 := cut[MakeEdgeKey(uc, ua)]

	switch {
	case cut0 && cut1 && cut2:
		// known gap: left whole rather than split into four
		return append(dst, a, b, c)
	case cut0 && cut1:
		return append(dst,
			m0, b, m1,
			a, m0, m1,
			a, m1, c,
		)
	case cut1 && cut2:
		return append(dst,
			m1, c, m2,
			a, b, m1,
			a, m1, m2,
		)
	case cut0 && cut2:
		return append(dst,
			a, m0, m2,
			m0, b, c,
			m0, c, m2,
		)
	case cut0:
		return append(dst,
			a, m0, c,
			m0, b, c,
		)
	case cut1:
		return append(dst,
			a, b, m1,
			a, m1, c,
		)
	case cut2:
		return append(dst,
			a, b, m2,
			m2, b, c,
		)
	}
	return append(dst, a, b, c)
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}
