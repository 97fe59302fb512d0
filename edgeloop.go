package meshedit

import (
	"fmt"
	"slices"
)

// EdgeLoopValidation reports whether a selection of edges is a single closed
// loop. On success OrderedVertices walks the loop once; on failure Error
// holds a message meant for the user.
type EdgeLoopValidation struct {
	IsValid         bool
	OrderedVertices []int
	Error           string
}

// ValidateEdgeLoop checks that the selected edges form one simple cycle: every
// vertex touches exactly two selected edges and walking from any vertex comes
// back to it after using every edge. It never panics; selected indices
// outside edges are ignored and so cannot close a loop.
func ValidateEdgeLoop(selectedEdgeIndices []int, edges []Edge) EdgeLoopValidation {
	switch {
	case len(selectedEdgeIndices) == 0:
		return EdgeLoopValidation{Error: "No edges selected"}
	case len(selectedEdgeIndices) < 3:
		return EdgeLoopValidation{Error: "Need at least 3 edges"}
	}

	selected := make([]Edge, 0, len(selectedEdgeIndices))
	for _, i := range selectedEdgeIndices {
		if inRange(i, len(edges)) {
			selected = append(selected, edges[i])
		}
	}
	if len(selected) == 0 {
		return EdgeLoopValidation{Error: "Edges do not form a closed loop"}
	}

	// vertex -> positions in selected, vertices in first seen order
	incident := make(map[int][]int)
	var order []int
	for i, e := range selected {
		for _, v := range e.VertexIndices {
			if _, seen := incident[v]; !seen {
				order = append(order, v)
			}
			incident[v] = append(incident[v], i)
		}
	}
	for _, v := range order {
		if n := len(incident[v]); n != 2 {
			return EdgeLoopValidation{Error: fmt.Sprintf("Vertex %d connected to %d edges", v, n)}
		}
	}

	start := order[0]
	ordered := []int{start}
	used := make([]bool, len(selected))
	steps := 0
	current := start
	for {
		next := -1
		for _, ei := range incident[current] {
			if !used[ei] {
				next = ei
				break
			}
		}
		if next < 0 {
			break
		}
		used[next] = true
		steps++
		current = selected[next].Other(current)
		if current == start {
			break
		}
		ordered = append(ordered, current)
	}

	if current != start || steps != len(selectedEdgeIndices) {
		return EdgeLoopValidation{Error: "Edges do not form a closed loop"}
	}
	return EdgeLoopValidation{IsValid: true, OrderedVertices: ordered}
}

// FaceExistsForVertices reports whether some face has exactly the vertices
// in vertexSet, ignoring order and winding. Faces are triangles, so a set of
// any other size never matches: after a four-vertex loop is filled with two
// triangles this still returns false for the loop's vertices. Use
// FaceSpansVertices to detect a loop that has already been filled.
func FaceExistsForVertices(vertexSet []int, faces []Face) bool {
	if len(vertexSet) != 3 {
		return false
	}
	key := MakeFaceKey(vertexSet[0], vertexSet[1], vertexSet[2])
	for _, f := range faces {
		if f.Key() == key {
			return true
		}
	}
	return false
}

// FaceSpansVertices reports whether some face is made only of vertices in
// vertexSet. Once a loop has been filled every triangle of its fan passes,
// so this catches a repeat fill that FaceExistsForVertices misses for loops
// longer than three.
func FaceSpansVertices(vertexSet []int, faces []Face) bool {
	if len(vertexSet) < 3 {
		return false
	}
	set := make(map[int]struct{}, len(vertexSet))
	for _, v := range vertexSet {
		set[v] = struct{}{}
	}
	for _, f := range faces {
		covered := true
		for _, v := range f.VertexIndices {
			if _, ok := set[v]; !ok {
				covered = false
				break
			}
		}
		if covered {
			return true
		}
	}
	return false
}

// FaceFillResult is the outcome of CreateFaceFromEdgeLoop.
type FaceFillResult struct {
	Geometry *Geometry
	// NewFaceIndex is the index of the first fan triangle in the face list
	// extracted from Geometry, or -1 when no triangle was added.
	NewFaceIndex int
}

// CreateFaceFromEdgeLoop fan triangulates the loop orderedVertices (unique
// vertex indices) as (v0,v1,v2), (v0,v2,v3), ... and appends the triangles to
// a copy of g. No vertices are added.
//
// It does not validate the loop or look for an existing face; run
// ValidateEdgeLoop and FaceSpansVertices first, or use Editor.FillEdgeLoop.
func CreateFaceFromEdgeLoop(g *Geometry, orderedVertices []int, vertices []UniqueVertex) (*FaceFillResult, error) {
	if !g.HasPositions() {
		return nil, fmt.Errorf("fill edge loop: %w", ErrNoPositionData)
	}

	raw := make([]uint32, 0, len(orderedVertices))
	for _, u := range orderedVertices {
		if !inRange(u, len(vertices)) {
			return nil, fmt.Errorf("fill edge loop: vertex %d out of range", u)
		}
		raw = append(raw, uint32(vertices[u].OriginalIndices[0]))
	}

	fan := max(len(raw)-2, 0)
	indices := g.indexBuffer(fan * 3)
	for i := 1; i+1 < len(raw); i++ {
		indices = append(indices, raw[0], raw[i], raw[i+1])
	}
	out := NewGeometry(slices.Clone(g.Positions), indices)

	result := &FaceFillResult{Geometry: out, NewFaceIndex: -1}
	if fan > 0 {
		key := MakeFaceKey(orderedVertices[0], orderedVertices[1], orderedVertices[2])
		for _, f := range ExtractFaces(out) {
			if f.Key() == key {
				result.NewFaceIndex = f.Index
				break
			}
		}
	}

	Logger().Debug("meshedit: edge loop filled",
		"loop", len(orderedVertices),
		"triangles_added", fan,
		"face", result.NewFaceIndex)
	return result, nil
}

// BoundaryLoops groups the edges used by exactly one face into connected
// chains of edge indices, in edge order within each chain. A chain around a
// simple hole passes ValidateEdgeLoop; other shapes are returned as found.
func BoundaryLoops(edges []Edge, faces []Face) [][]int {
	adjacent := edgeFaces(faces)

	// vertex -> boundary edges touching it
	touching := make(map[int][]int)
	var boundary []int
	for i, e := range edges {
		if len(adjacent[e.Key()]) != 1 {
			continue
		}
		boundary = append(boundary, i)
		for _, v := range e.VertexIndices {
			touching[v] = append(touching[v], i)
		}
	}

	visited := make(map[int]bool, len(boundary))
	var loops [][]int
	for _, first := range boundary {
		if visited[first] {
			continue
		}
		var loop []int
		stack := []int{first}
		visited[first] = true
		for len(stack) > 0 {
			ei := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			loop = append(loop, ei)
			for _, v := range edges[ei].VertexIndices {
				for _, next := range touching[v] {
					if !visited[next] {
						visited[next] = true
						stack = append(stack, next)
					}
				}
			}
		}
		slices.Sort(loop)
		loops = append(loops, loop)
	}
	return loops
}
