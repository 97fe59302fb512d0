package main

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/smasonuk/meshedit"
	"github.com/smasonuk/meshedit/internal/config"
)

const (
	screenWidth  = 800
	screenHeight = 600
	orbitStep    = 0.03
	dragScale    = 200.0
)

// Game is the ebiten game driving one Editor.
type Game struct {
	editor  *meshedit.Editor
	initial *meshedit.Geometry
	camera  *orbitCamera
	painter *painter
	cfg     config.Config
	logger  *slog.Logger

	selectedEdge int
	preview      meshedit.LoopCutPath
	previewKey   previewKey
	status       string

	orbiting     bool
	lastX, lastY int
	transforming bool
	startX       int
	startY       int
}

type previewKey struct {
	geometry *meshedit.Geometry
	version  uint64
	edge     int
}

func NewGame(g *meshedit.Geometry, cfg config.Config, logger *slog.Logger) *Game {
	game := &Game{
		initial: g.Clone(),
		cfg:     cfg,
		logger:  logger,
		painter: newPainter(),
	}
	game.reset(g)
	return game
}

func (g *Game) reset(geometry *meshedit.Geometry) {
	g.editor = meshedit.NewEditor(geometry, meshedit.WithLogger(g.logger))
	b := geometry.Bounds
	g.camera = newOrbitCamera(b.Center(), b.Size().Len()/2)
	g.selectedEdge = 0
	g.status = "arrows orbit, E extrude, L loop cut, F fill, N/M edge, right drag twist, R reset"
}

func (g *Game) Update() error {
	g.handleOrbit()
	g.handleTransform()

	topo := g.editor.Topology()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.selectedEdge = cycle(g.selectedEdge, 1, len(topo.Edges))
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.selectedEdge = cycle(g.selectedEdge, -1, len(topo.Edges))
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.extrude()
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		g.loopCut()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.fill()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.reset(g.initial.Clone())
	}
	return nil
}

func (g *Game) handleOrbit() {
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camera.AddAngle(0, -orbitStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camera.AddAngle(0, orbitStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camera.AddAngle(orbitStep, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camera.AddAngle(-orbitStep, 0)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.orbiting = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.orbiting {
		x, y := ebiten.CursorPosition()
		dx := float64(x-g.lastX) / dragScale
		dy := float64(y-g.lastY) / dragScale
		g.camera.AddAngle(dy, -dx)
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.orbiting = false
	}
}

// handleTransform twists the face nearest the camera about its centre while
// the right button is held: horizontal drag rotates about the face normal,
// vertical drag scales.
func (g *Game) handleTransform() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		topo := g.editor.Topology()
		face := nearestFace(topo, g.camera.Position())
		if face < 0 {
			return
		}
		f := topo.Faces[face]
		g.editor.BeginTransform(f.VertexIndices[:], f.Midpoint(topo.Vertices))
		g.transforming = true
		g.startX, g.startY = ebiten.CursorPosition()
		g.status = fmt.Sprintf("twisting face %d", face)
	}
	if g.transforming && g.editor.Dragging() {
		x, y := ebiten.CursorPosition()
		angle := float64(x-g.startX) / dragScale * math.Pi
		s := math.Max(0.05, 1-float64(y-g.startY)/dragScale)
		axis := g.camera.Position().Sub(g.camera.target).Normalize()
		g.editor.UpdateTransform(mgl64.QuatRotate(angle, axis), mgl64.Vec3{s, s, s})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
		g.editor.EndTransform()
		g.transforming = false
	}
}

func (g *Game) extrude() {
	topo := g.editor.Topology()
	face := nearestFace(topo, g.camera.Position())
	if face < 0 {
		g.status = "no face to extrude"
		return
	}
	res, err := g.editor.ExtrudeFace(face, g.cfg.ExtrudeDistance)
	if err != nil {
		g.fail("extrude", err)
		return
	}
	g.status = fmt.Sprintf("extruded face %d, new face %d", face, res.ExtrudedFaceIndex)
}

func (g *Game) loopCut() {
	ok, err := g.editor.LoopCut(g.selectedEdge, g.cfg.LoopCutT)
	switch {
	case err != nil:
		g.fail("loop cut", err)
	case !ok:
		g.status = fmt.Sprintf("nothing to cut from edge %d", g.selectedEdge)
	default:
		g.status = fmt.Sprintf("loop cut from edge %d", g.selectedEdge)
	}
}

func (g *Game) fill() {
	topo := g.editor.Topology()
	loops := meshedit.BoundaryLoops(topo.Edges, topo.Faces)
	if len(loops) == 0 {
		g.status = "no open boundary"
		return
	}
	ok, err := g.editor.FillEdgeLoop(loops[0])
	switch {
	case errors.Is(err, meshedit.ErrFaceExists):
		g.status = "hole already filled"
	case err != nil:
		g.fail("fill", err)
	case ok:
		g.status = fmt.Sprintf("filled a loop of %d edges", len(loops[0]))
	}
}

func (g *Game) fail(op string, err error) {
	g.logger.Warn(op+" failed", "error", err)
	g.status = fmt.Sprintf("%s: %v", op, err)
}

// loopPreview returns the cut ring for the selected edge, recomputing it only
// when the geometry or selection changes.
func (g *Game) loopPreview(topo *meshedit.Topology) meshedit.LoopCutPath {
	geometry := g.editor.Geometry()
	key := previewKey{geometry: geometry, version: geometry.Version(), edge: g.selectedEdge}
	if key == g.previewKey {
		return g.preview
	}
	g.previewKey = key
	g.preview = meshedit.LoopCutPath{}
	if g.selectedEdge < len(topo.Edges) {
		g.preview = meshedit.FindLoopCutPath(topo.Edges[g.selectedEdge], topo.Edges, topo.Faces, topo.Vertices, g.cfg.LoopCutT)
	}
	return g.preview
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 235, G: 235, B: 240, A: 255})

	topo := g.editor.Topology()
	proj := g.camera.projector(screenWidth, screenHeight)
	g.painter.drawMesh(screen, proj, g.camera.Position(), topo)

	if g.selectedEdge < len(topo.Edges) {
		e := topo.Edges[g.selectedEdge]
		drawSegment(screen, proj, topo.Vertices[e.VertexIndices[0]].Position, topo.Vertices[e.VertexIndices[1]].Position, 3, selectedColor)
	}
	drawPath(screen, proj, g.loopPreview(topo))

	geometry := g.editor.Geometry()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %0.2f  vertices %d  edges %d  faces %d  triangles %d  edge %d\n%s",
		ebiten.ActualFPS(), len(topo.Vertices), len(topo.Edges), len(topo.Faces), geometry.TriangleCount(), g.selectedEdge, g.status))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// nearestFace returns the face whose midpoint is closest to eye, or -1.
func nearestFace(topo *meshedit.Topology, eye mgl64.Vec3) int {
	best, bestDist := -1, math.Inf(1)
	for i, f := range topo.Faces {
		if d := f.Midpoint(topo.Vertices).Sub(eye).Len(); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func cycle(i, step, n int) int {
	if n == 0 {
		return 0
	}
	return ((i+step)%n + n) % n
}
