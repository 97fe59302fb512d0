package meshedit

import "github.com/go-gl/mathgl/mgl64"

// The mutators below edit the position buffer of g in place. They are called
// continuously while a vertex is being dragged, so they never fail: a missing
// position attribute, an empty selection or an out of range index is silently
// ignored. With a nil vertex table the given indices are raw buffer indices.

// UpdateVertexPosition moves unique vertex uniqueIndex, and every raw vertex
// aliasing it, to pos.
func UpdateVertexPosition(g *Geometry, uniqueIndex int, pos mgl64.Vec3, vertices []UniqueVertex) {
	if !g.HasPositions() {
		return
	}
	raw := rawIndicesFor(g, []int{uniqueIndex}, vertices)
	if len(raw) == 0 {
		return
	}
	for _, r := range raw {
		g.SetPosition(r, pos)
	}
	g.Refresh()
}

// MoveVertices adds delta to every raw vertex aliased by uniqueIndices. A raw
// vertex selected twice still moves once.
func MoveVertices(g *Geometry, uniqueIndices []int, delta mgl64.Vec3, vertices []UniqueVertex) {
	if !g.HasPositions() || len(uniqueIndices) == 0 {
		return
	}
	raw := rawIndicesFor(g, uniqueIndices, vertices)
	if len(raw) == 0 {
		return
	}
	for _, r := range raw {
		g.SetPosition(r, g.Position(r).Add(delta))
	}
	g.Refresh()
}

// TransformVerticesAroundCenter scales then rotates the selected vertices
// about center. Each vertex starts from its position in initial when present,
// otherwise from the live buffer. Passing the snapshot taken when a gesture
// began keeps repeated calls from compounding.
func TransformVerticesAroundCenter(
	g *Geometry,
	uniqueIndices []int,
	center mgl64.Vec3,
	rotation mgl64.Quat,
	scale mgl64.Vec3,
	vertices []UniqueVertex,
	initial PositionSnapshot,
) {
	if !g.HasPositions() || len(uniqueIndices) == 0 {
		return
	}

	changed := false
	for _, u := range uniqueIndices {
		start, fromSnapshot := initial.Position(u)
		for _, r := range rawIndicesFor(g, []int{u}, vertices) {
			p := start
			if !fromSnapshot {
				p = g.Position(r)
			}
			g.SetPosition(r, transformAround(p, center, rotation, scale))
			changed = true
		}
	}
	if changed {
		g.Refresh()
	}
}

// transformAround applies scale then rotation to p relative to center.
func transformAround(p, center mgl64.Vec3, rotation mgl64.Quat, scale mgl64.Vec3) mgl64.Vec3 {
	local := mulComponents(p.Sub(center), scale)
	return rotation.Rotate(local).Add(center)
}

// PositionSnapshot is an immutable copy of vertex positions keyed by unique
// vertex index. The zero value is an empty snapshot.
type PositionSnapshot struct {
	positions map[int]mgl64.Vec3
}

// SnapshotPositions records the current position of each selected vertex. It
// is the first half of a drag gesture; TransformVerticesAroundCenter with the
// snapshot is the second.
func SnapshotPositions(g *Geometry, uniqueIndices []int, vertices []UniqueVertex) PositionSnapshot {
	s := PositionSnapshot{positions: make(map[int]mgl64.Vec3, len(uniqueIndices))}
	if !g.HasPositions() {
		return s
	}
	for _, u := range uniqueIndices {
		raw := rawIndicesFor(g, []int{u}, vertices)
		if len(raw) == 0 {
			continue
		}
		s.positions[u] = g.Position(raw[0])
	}
	return s
}

// Position returns the recorded position of unique vertex u.
func (s PositionSnapshot) Position(u int) (mgl64.Vec3, bool) {
	p, ok := s.positions[u]
	return p, ok
}

func (s PositionSnapshot) Len() int {
	return len(s.positions)
}

// rawIndicesFor resolves unique vertex indices to the deduplicated set of raw
// indices they alias, dropping anything outside the buffer.
func rawIndicesFor(g *Geometry, uniqueIndices []int, vertices []UniqueVertex) []int {
	n := g.VertexCount()
	seen := make(map[int]struct{}, len(uniqueIndices))
	out := make([]int, 0, len(uniqueIndices))
	addRaw := func(r int) {
		if r < 0 || r >= n {
			return
		}
		if _, dup := seen[r]; dup {
			return
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}

	for _, u := range uniqueIndices {
		if vertices == nil {
			addRaw(u)
			continue
		}
		if u < 0 || u >= len(vertices) {
			continue
		}
		for _, r := range vertices[u].OriginalIndices {
			addRaw(r)
		}
	}
	return out
}
