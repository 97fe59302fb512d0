package meshedit

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rimEdges returns the four edges around the hole of an open cube of size 1,
// in walking order.
func rimEdges(t *testing.T, topo *Topology) []int {
	t.Helper()
	corners := []mgl64.Vec3{
		{-0.5, 0.5, -0.5},
		{0.5, 0.5, -0.5},
		{0.5, 0.5, 0.5},
		{-0.5, 0.5, 0.5},
	}
	edges := make([]int, 0, 4)
	for i := range corners {
		edges = append(edges, findEdge(t, topo, corners[i], corners[(i+1)%4]))
	}
	return edges
}

func TestValidateEdgeLoopRim(t *testing.T) {
	topo := Extract(NewOpenCube(1))
	rim := rimEdges(t, topo)

	for name, selection := range map[string][]int{
		"in order": rim,
		"shuffled": {rim[2], rim[0], rim[3], rim[1]},
	} {
		t.Run(name, func(t *testing.T) {
			v := ValidateEdgeLoop(selection, topo.Edges)
			require.True(t, v.IsValid, v.Error)
			assert.Empty(t, v.Error)
			require.Len(t, v.OrderedVertices, 4)

			for i, a := range v.OrderedVertices {
				b := v.OrderedVertices[(i+1)%4]
				_, ok := topo.EdgeIndex(a, b)
				assert.True(t, ok, "%d and %d are consecutive on the loop", a, b)
				assert.InDelta(t, 0.5, topo.Vertices[a].Position[1], float64EqualityThreshold)
			}
		})
	}
}

func TestValidateEdgeLoopErrors(t *testing.T) {
	topo := Extract(NewOpenCube(1))
	rim := rimEdges(t, topo)

	// a triangle with a spur on vertex 0, and two triangles apart
	spur := []Edge{
		{Index: 0, VertexIndices: [2]int{0, 1}},
		{Index: 1, VertexIndices: [2]int{1, 2}},
		{Index: 2, VertexIndices: [2]int{2, 0}},
		{Index: 3, VertexIndices: [2]int{0, 3}},
	}
	apart := ExtractEdges(NewGeometry([]float64{
		0, 0, 0, 1, 0, 0, 0, 1, 0,
		5, 0, 0, 6, 0, 0, 5, 1, 0,
	}, nil))
	require.Len(t, apart, 6)

	testCases := []struct {
		name      string
		selection []int
		edges     []Edge
		want      string
	}{
		{"nothing selected", nil, topo.Edges, "No edges selected"},
		{"one edge", rim[:1], topo.Edges, "Need at least 3 edges"},
		{"two edges", rim[:2], topo.Edges, "Need at least 3 edges"},
		{"vertex of degree three", []int{0, 1, 2, 3}, spur, "Vertex 0 connected to 3 edges"},
		{"two separate loops", []int{0, 1, 2, 3, 4, 5}, apart, "Edges do not form a closed loop"},
		{"indices outside the edge list", []int{40, 41, 42}, topo.Edges, "Edges do not form a closed loop"},
		{"repeated edge", []int{rim[0], rim[1], rim[2], rim[3], rim[0]}, topo.Edges, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := ValidateEdgeLoop(tc.selection, tc.edges)
			assert.False(t, v.IsValid)
			assert.Empty(t, v.OrderedVertices)
			if tc.want != "" {
				assert.Equal(t, tc.want, v.Error)
			} else {
				assert.NotEmpty(t, v.Error)
			}
		})
	}
}

func TestValidateEdgeLoopOpenChain(t *testing.T) {
	topo := Extract(NewOpenCube(1))
	rim := rimEdges(t, topo)

	v := ValidateEdgeLoop(rim[:3], topo.Edges)
	assert.False(t, v.IsValid)
	// the two chain ends are reached before the walk can fail
	assert.Regexp(t, `^Vertex \d+ connected to 1 edges$`, v.Error)
}

func TestFaceExistsForVertices(t *testing.T) {
	topo := Extract(NewCube(1))
	f := topo.Faces[4].VertexIndices

	assert.True(t, FaceExistsForVertices([]int{f[0], f[1], f[2]}, topo.Faces))
	assert.True(t, FaceExistsForVertices([]int{f[2], f[0], f[1]}, topo.Faces))
	assert.True(t, FaceExistsForVertices([]int{f[1], f[0], f[2]}, topo.Faces), "winding is ignored")
	assert.False(t, FaceExistsForVertices([]int{f[0], f[1]}, topo.Faces))
	assert.False(t, FaceExistsForVertices(nil, topo.Faces))

	// two opposite corners and a third on neither of their faces' triangles
	a := findVertex(t, topo.Vertices, mgl64.Vec3{-0.5, -0.5, -0.5})
	b := findVertex(t, topo.Vertices, mgl64.Vec3{0.5, 0.5, 0.5})
	c := findVertex(t, topo.Vertices, mgl64.Vec3{0.5, -0.5, -0.5})
	assert.False(t, FaceExistsForVertices([]int{a, b, c}, topo.Faces))

	// a square's four corners match no single triangle exactly
	side := []int{f[0], f[1], f[2], otherCorner(t, topo, 4)}
	assert.False(t, FaceExistsForVertices(side, topo.Faces))
	assert.True(t, FaceSpansVertices(side, topo.Faces))
}

// otherCorner returns the fourth corner of the square that face belongs to.
func otherCorner(t *testing.T, topo *Topology, face int) int {
	t.Helper()
	f := topo.Faces[face]
	for _, other := range topo.Faces {
		if other.Index == face {
			continue
		}
		shared := 0
		extra := -1
		for _, v := range other.VertexIndices {
			if v == f.VertexIndices[0] || v == f.VertexIndices[1] || v == f.VertexIndices[2] {
				shared++
			} else {
				extra = v
			}
		}
		if shared == 2 && f.Normal(topo.Vertices).ApproxEqualThreshold(other.Normal(topo.Vertices), float64EqualityThreshold) {
			return extra
		}
	}
	t.Fatalf("face %d has no partner", face)
	return -1
}

func TestFaceSpansVertices(t *testing.T) {
	topo := Extract(NewOpenCube(1))
	rim := ValidateEdgeLoop(rimEdges(t, topo), topo.Edges)
	require.True(t, rim.IsValid)

	assert.False(t, FaceSpansVertices(rim.OrderedVertices, topo.Faces))
	assert.False(t, FaceSpansVertices(rim.OrderedVertices[:2], topo.Faces))
}

func TestCreateFaceFromEdgeLoop(t *testing.T) {
	g := NewOpenCube(1)
	topo := Extract(g)
	v := ValidateEdgeLoop(rimEdges(t, topo), topo.Edges)
	require.True(t, v.IsValid)

	res, err := CreateFaceFromEdgeLoop(g, v.OrderedVertices, topo.Vertices)
	require.NoError(t, err)

	out := res.Geometry
	assert.Equal(t, g.TriangleCount()+2, out.TriangleCount())
	assert.Equal(t, g.Positions, out.Positions, "no vertices added")
	assert.Equal(t, 10, res.NewFaceIndex)
	assert.Equal(t, 10, g.TriangleCount(), "source untouched")

	after := Extract(out)
	require.Len(t, after.Faces, 12)
	ov := v.OrderedVertices
	assert.Equal(t, MakeFaceKey(ov[0], ov[1], ov[2]), after.Faces[res.NewFaceIndex].Key())
	assert.Equal(t, MakeFaceKey(ov[0], ov[2], ov[3]), after.Faces[res.NewFaceIndex+1].Key())
	assert.True(t, FaceSpansVertices(ov, after.Faces))
	assert.True(t, FaceExistsForVertices([]int{ov[0], ov[2], ov[3]}, after.Faces))
	assert.InDelta(t, 0.5, out.Bounds.Max[1], float64EqualityThreshold)
}

func TestCreateFaceFromEdgeLoopTriangle(t *testing.T) {
	// a single cell grid with its second triangle removed
	g := NewPlaneGrid(1, 1, 1, 1)
	g.Indices = g.Indices[:3]
	g.Refresh()
	topo := Extract(g)
	require.Len(t, topo.Faces, 1)

	res, err := CreateFaceFromEdgeLoop(g, []int{0, 3, 1}, topo.Vertices)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Geometry.TriangleCount())
	assert.Equal(t, 1, res.NewFaceIndex)
}

func TestCreateFaceFromEdgeLoopShortLoop(t *testing.T) {
	g := NewCube(1)
	topo := Extract(g)

	res, err := CreateFaceFromEdgeLoop(g, []int{0, 1}, topo.Vertices)
	require.NoError(t, err)
	assert.Equal(t, -1, res.NewFaceIndex)
	assert.Equal(t, g.Indices, res.Geometry.Indices)
}

func TestCreateFaceFromEdgeLoopErrors(t *testing.T) {
	g := NewCube(1)
	topo := Extract(g)

	_, err := CreateFaceFromEdgeLoop(g, []int{0, 1, 99}, topo.Vertices)
	assert.ErrorContains(t, err, "vertex 99 out of range")

	_, err = CreateFaceFromEdgeLoop(&Geometry{}, []int{0, 1, 2}, topo.Vertices)
	assert.ErrorIs(t, err, ErrNoPositionData)
}

func TestBoundaryLoops(t *testing.T) {
	closed := Extract(NewCube(1))
	assert.Empty(t, BoundaryLoops(closed.Edges, closed.Faces))

	open := Extract(NewOpenCube(1))
	loops := BoundaryLoops(open.Edges, open.Faces)
	require.Len(t, loops, 1)
	assert.ElementsMatch(t, rimEdges(t, open), loops[0])
	assert.True(t, ValidateEdgeLoop(loops[0], open.Edges).IsValid)

	// two separate triangles each have their own border
	g := NewGeometry([]float64{
		0, 0, 0, 1, 0, 0, 0, 1, 0,
		5, 0, 0, 6, 0, 0, 5, 1, 0,
	}, nil)
	topo := Extract(g)
	loops = BoundaryLoops(topo.Edges, topo.Faces)
	require.Len(t, loops, 2)
	assert.Equal(t, []int{0, 1, 2}, loops[0])
	assert.Equal(t, []int{3, 4, 5}, loops[1])

	grid := Extract(NewPlaneGrid(1, 1, 2, 2))
	loops = BoundaryLoops(grid.Edges, grid.Faces)
	require.Len(t, loops, 1)
	assert.Len(t, loops[0], 8)
}
