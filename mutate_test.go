package meshedit

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateVertexPositionMovesEveryAlias(t *testing.T) {
	g := NewCube(1)
	vertices := ExtractVertices(g)
	corner := findVertex(t, vertices, mgl64.Vec3{0.5, 0.5, 0.5})
	require.Len(t, vertices[corner].OriginalIndices, 3)

	target := mgl64.Vec3{1, 2, 3}
	UpdateVertexPosition(g, corner, target, vertices)

	for _, r := range vertices[corner].OriginalIndices {
		assertVecInDelta(t, target, g.Position(r))
	}
	assert.InDelta(t, 3, g.Bounds.Max[2], float64EqualityThreshold, "bounds refreshed")
	assert.Len(t, ExtractVertices(g), 8, "aliases stay together")
}

func TestUpdateVertexPositionRawFallback(t *testing.T) {
	g := NewCube(1)
	UpdateVertexPosition(g, 4, mgl64.Vec3{9, 9, 9}, nil)

	assertVecInDelta(t, mgl64.Vec3{9, 9, 9}, g.Position(4))
	assert.Len(t, ExtractVertices(g), 9, "only the raw vertex moved, splitting its corner")
}

func TestMoveVerticesRoundTrip(t *testing.T) {
	g := NewUVSphere(1, 10, 6)
	vertices := ExtractVertices(g)
	original := snapshotBuffer(g)
	selection := []int{0, 3, 7, 11, 3}
	delta := mgl64.Vec3{0.25, -1.5, 3}

	MoveVertices(g, selection, delta, vertices)
	for _, u := range selection {
		for _, r := range vertices[u].OriginalIndices {
			assertVecInDelta(t, readVec3(original, r).Add(delta), g.Position(r), "vertex %d moved once", u)
		}
	}

	MoveVertices(g, selection, delta.Mul(-1), vertices)
	require.Len(t, g.Positions, len(original))
	for i := range original {
		assert.InDelta(t, original[i], g.Positions[i], float64EqualityThreshold)
	}
}

func TestMutatorsNoOp(t *testing.T) {
	empty := &Geometry{}
	assert.NotPanics(t, func() {
		UpdateVertexPosition(empty, 0, mgl64.Vec3{1, 1, 1}, nil)
		MoveVertices(empty, []int{0}, mgl64.Vec3{1, 1, 1}, nil)
		TransformVerticesAroundCenter(empty, []int{0}, mgl64.Vec3{}, mgl64.QuatIdent(), mgl64.Vec3{2, 2, 2}, nil, PositionSnapshot{})
	})

	g := NewCube(1)
	vertices := ExtractVertices(g)
	before := snapshotBuffer(g)
	version := g.Version()

	MoveVertices(g, nil, mgl64.Vec3{1, 0, 0}, vertices)
	MoveVertices(g, []int{-1, 100}, mgl64.Vec3{1, 0, 0}, vertices)
	UpdateVertexPosition(g, 100, mgl64.Vec3{1, 0, 0}, vertices)
	TransformVerticesAroundCenter(g, []int{}, mgl64.Vec3{}, mgl64.QuatIdent(), mgl64.Vec3{2, 2, 2}, vertices, PositionSnapshot{})

	assert.Equal(t, before, g.Positions)
	assert.Equal(t, version, g.Version())
}

func TestTransformIdentityIsNoOp(t *testing.T) {
	g := NewUVSphere(1, 8, 4)
	vertices := ExtractVertices(g)
	before := snapshotBuffer(g)

	all := make([]int, len(vertices))
	for i := range all {
		all[i] = i
	}
	TransformVerticesAroundCenter(g, all, mgl64.Vec3{0.3, -2, 5}, QuatFromXYZW(0, 0, 0, 1), mgl64.Vec3{1, 1, 1}, vertices, PositionSnapshot{})

	for i := range before {
		assert.InDelta(t, before[i], g.Positions[i], float64EqualityThreshold)
	}
}

func TestTransformVerticesAroundCenter(t *testing.T) {
	quarterY := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})

	testCases := []struct {
		name     string
		start    mgl64.Vec3
		center   mgl64.Vec3
		rotation mgl64.Quat
		scale    mgl64.Vec3
		want     mgl64.Vec3
	}{
		{"scale about origin", mgl64.Vec3{1, 2, 3}, mgl64.Vec3{}, mgl64.QuatIdent(), mgl64.Vec3{2, 3, 4}, mgl64.Vec3{2, 6, 12}},
		{"scale about pivot", mgl64.Vec3{2, 2, 2}, mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent(), mgl64.Vec3{3, 3, 3}, mgl64.Vec3{4, 4, 4}},
		{"quarter turn about y", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{}, quarterY, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{0, 0, -1}},
		{"quarter turn about pivot", mgl64.Vec3{2, 5, 0}, mgl64.Vec3{1, 5, 0}, quarterY, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{1, 5, -1}},
		{"scale then rotate", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{}, quarterY, mgl64.Vec3{2, 1, 1}, mgl64.Vec3{0, 0, -2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGeometry([]float64{tc.start[0], tc.start[1], tc.start[2]}, []uint32{})
			TransformVerticesAroundCenter(g, []int{0}, tc.center, tc.rotation, tc.scale, nil, PositionSnapshot{})
			assertVecInDelta(t, tc.want, g.Position(0))
		})
	}
}

func TestTransformFromSnapshotDoesNotDrift(t *testing.T) {
	g := NewCube(1)
	vertices := ExtractVertices(g)
	selection := []int{0, 1, 2}
	center := mgl64.Vec3{0, 0, 0}

	snap := SnapshotPositions(g, selection, vertices)
	require.Equal(t, 3, snap.Len())

	rotation := mgl64.QuatRotate(0.3, mgl64.Vec3{0, 0, 1})
	scale := mgl64.Vec3{1.5, 1.5, 1.5}

	TransformVerticesAroundCenter(g, selection, center, rotation, scale, vertices, snap)
	once := snapshotBuffer(g)

	// a drag calls back repeatedly with the total transform so far
	for i := 0; i < 10; i++ {
		TransformVerticesAroundCenter(g, selection, center, rotation, scale, vertices, snap)
	}
	for i := range once {
		assert.InDelta(t, once[i], g.Positions[i], float64EqualityThreshold)
	}

	// without the snapshot every call compounds
	TransformVerticesAroundCenter(g, selection, center, rotation, scale, vertices, PositionSnapshot{})
	moved := false
	for _, r := range vertices[0].OriginalIndices {
		if !g.Position(r).ApproxEqualThreshold(readVec3(once, r), float64EqualityThreshold) {
			moved = true
		}
	}
	assert.True(t, moved)
}

func TestSnapshotPositions(t *testing.T) {
	g := NewCube(1)
	vertices := ExtractVertices(g)

	snap := SnapshotPositions(g, []int{2, 99}, vertices)
	assert.Equal(t, 1, snap.Len())
	p, ok := snap.Position(2)
	require.True(t, ok)
	assertVecInDelta(t, vertices[2].Position, p)

	_, ok = snap.Position(99)
	assert.False(t, ok)

	MoveVertices(g, []int{2}, mgl64.Vec3{1, 1, 1}, vertices)
	p, _ = snap.Position(2)
	assertVecInDelta(t, vertices[2].Position, p, "snapshot is a copy")

	var zero PositionSnapshot
	_, ok = zero.Position(0)
	assert.False(t, ok)
}
