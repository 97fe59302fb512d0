package meshedit

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
)

// Editor holds the geometry being edited and runs the caller side protocols
// around the primitives: cached topology, validate-before-fill and snapshot
// based drag transforms. Like the primitives it is not safe for concurrent
// use.
type Editor struct {
	geometry *Geometry
	cache    TopologyCache
	logger   *slog.Logger

	drag *dragState
}

type dragState struct {
	vertices []int
	center   mgl64.Vec3
	snapshot PositionSnapshot
	topology *Topology
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithLogger sets the logger used for edit summaries. The package logger is
// used by default.
func WithLogger(l *slog.Logger) EditorOption {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewEditor(g *Geometry, opts ...EditorOption) *Editor {
	e := &Editor{geometry: g, logger: Logger()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Geometry returns the current geometry. Structural edits replace it, so do
// not hold on to the result across edits.
func (e *Editor) Geometry() *Geometry {
	return e.geometry
}

// Topology returns the extracted topology of the current geometry.
func (e *Editor) Topology() *Topology {
	return e.cache.Get(e.geometry)
}

// SetGeometry replaces the edited geometry and cancels any drag in progress.
func (e *Editor) SetGeometry(g *Geometry) {
	e.geometry = g
	e.drag = nil
	e.cache.Invalidate()
}

func (e *Editor) SetVertexPosition(vertex int, pos mgl64.Vec3) {
	UpdateVertexPosition(e.geometry, vertex, pos, e.Topology().Vertices)
}

func (e *Editor) MoveVertices(vertices []int, delta mgl64.Vec3) {
	MoveVertices(e.geometry, vertices, delta, e.Topology().Vertices)
}

// BeginTransform starts a drag gesture on vertices around center by taking a
// snapshot of their positions.
func (e *Editor) BeginTransform(vertices []int, center mgl64.Vec3) {
	topo := e.Topology()
	e.drag = &dragState{
		vertices: append([]int(nil), vertices...),
		center:   center,
		snapshot: SnapshotPositions(e.geometry, vertices, topo.Vertices),
		topology: topo,
	}
}

// UpdateTransform applies the total rotation and scale of the gesture so
// far. It always starts from the snapshot, so any number of updates end in
// the same place as a single one.
func (e *Editor) UpdateTransform(rotation mgl64.Quat, scale mgl64.Vec3) {
	if e.drag == nil {
		return
	}
	TransformVerticesAroundCenter(e.geometry, e.drag.vertices, e.drag.center, rotation, scale, e.drag.topology.Vertices, e.drag.snapshot)
}

// EndTransform finishes the gesture.
func (e *Editor) EndTransform() {
	e.drag = nil
}

// Dragging reports whether a transform gesture is in progress.
func (e *Editor) Dragging() bool {
	return e.drag != nil
}

// ExtrudeFace extrudes face by distance and makes the result current.
func (e *Editor) ExtrudeFace(face int, distance float64) (*ExtrudeResult, error) {
	topo := e.Topology()
	res, err := ExtrudeFace(e.geometry, face, distance, topo.Vertices, topo.Faces)
	if err != nil {
		return nil, err
	}
	e.replace(res.Geometry)
	e.logger.Info("face extruded", "face", face, "distance", distance, "top", res.ExtrudedFaceIndex)
	return res, nil
}

// LoopCut cuts a ring across edge at fraction t. It returns false, leaving the
// geometry alone, when the plane crosses no edges.
func (e *Editor) LoopCut(edge int, t float64) (bool, error) {
	topo := e.Topology()
	if !inRange(edge, len(topo.Edges)) {
		return false, fmt.Errorf("loop cut: edge %d out of range", edge)
	}
	path := FindLoopCutPath(topo.Edges[edge], topo.Edges, topo.Faces, topo.Vertices, t)
	if len(path.Points) == 0 {
		return false, nil
	}
	res, err := ExecuteLoopCut(e.geometry, path)
	if err != nil {
		return false, err
	}
	e.replace(res.Geometry)
	e.logger.Info("loop cut", "edge", edge, "points", len(path.Points), "closed", path.IsClosed)
	return true, nil
}

// FillEdgeLoop closes the loop formed by the selected edges with a new face.
// It returns false with an error wrapping ErrInvalidEdgeLoop when the edges
// are not a closed loop, or ErrFaceExists when a face already spans it.
func (e *Editor) FillEdgeLoop(edges []int) (bool, error) {
	topo := e.Topology()
	v := ValidateEdgeLoop(edges, topo.Edges)
	if !v.IsValid {
		return false, fmt.Errorf("%w: %s", ErrInvalidEdgeLoop, v.Error)
	}
	if FaceExistsForVertices(v.OrderedVertices, topo.Faces) || FaceSpansVertices(v.OrderedVertices, topo.Faces) {
		return false, ErrFaceExists
	}
	res, err := CreateFaceFromEdgeLoop(e.geometry, v.OrderedVertices, topo.Vertices)
	if err != nil {
		return false, err
	}
	e.replace(res.Geometry)
	e.logger.Info("edge loop filled", "vertices", len(v.OrderedVertices), "face", res.NewFaceIndex)
	return true, nil
}

func (e *Editor) replace(g *Geometry) {
	e.geometry = g
	e.drag = nil
}
