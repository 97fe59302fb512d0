package meshedit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PositionEpsilon is the grid size used to decide that two raw vertices share
// a position.
const PositionEpsilon = 1e-6

// vertexKey is a position snapped to the PositionEpsilon grid.
type vertexKey [3]int64

func keyFor(p mgl64.Vec3) vertexKey {
	return vertexKey{
		int64(math.Round(p[0] / PositionEpsilon)),
		int64(math.Round(p[1] / PositionEpsilon)),
		int64(math.Round(p[2] / PositionEpsilon)),
	}
}

// vertexIndex collects unique vertices by snapped position, with an average
// O(1) lookup per raw vertex.
type vertexIndex struct {
	vertices []UniqueVertex
	byKey    map[vertexKey]int
}

func newVertexIndex(capacity int) *vertexIndex {
	return &vertexIndex{
		vertices: make([]UniqueVertex, 0, capacity),
		byKey:    make(map[vertexKey]int, capacity),
	}
}

// add registers raw vertex rawIndex at p and returns the index of the unique
// vertex it belongs to.
func (vi *vertexIndex) add(rawIndex int, p mgl64.Vec3) int {
	key := keyFor(p)
	if index, found := vi.byKey[key]; found {
		vi.vertices[index].OriginalIndices = append(vi.vertices[index].OriginalIndices, rawIndex)
		return index
	}

	index := len(vi.vertices)
	vi.vertices = append(vi.vertices, UniqueVertex{
		Index:           index,
		Position:        p,
		OriginalIndices: []int{rawIndex},
	})
	vi.byKey[key] = index
	return index
}
