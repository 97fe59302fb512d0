package main

import (
	"image"
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/smasonuk/meshedit"
)

var (
	faceColor     = color.RGBA{R: 90, G: 140, B: 220, A: 255}
	wireColor     = color.RGBA{R: 20, G: 20, B: 30, A: 255}
	selectedColor = color.RGBA{R: 255, G: 210, B: 0, A: 255}
	previewColor  = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	lightDir      = mgl64.Vec3{0.4, 0.8, 0.6}.Normalize()
)

// painter draws solid triangles through a 1x1 white source image.
type painter struct {
	white *ebiten.Image
}

func newPainter() *painter {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return &painter{white: img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)}
}

type screenTriangle struct {
	xp, yp [3]float32
	depth  float64
	shade  float64
}

// drawMesh paints the faces back to front with flat shading, then the
// wireframe on top.
func (pt *painter) drawMesh(screen *ebiten.Image, proj projector, eye mgl64.Vec3, topo *meshedit.Topology) {
	tris := make([]screenTriangle, 0, len(topo.Faces))
	for _, f := range topo.Faces {
		var tri screenTriangle
		visible := true
		for i, u := range f.VertexIndices {
			x, y, d, ok := proj.Project(topo.Vertices[u].Position)
			if !ok {
				visible = false
				break
			}
			tri.xp[i], tri.yp[i] = float32(x), float32(y)
			tri.depth += d / 3
		}
		if !visible {
			continue
		}
		n := f.Normal(topo.Vertices)
		// faces are drawn from both sides since synthesized faces may be wound either way
		if n.Dot(eye.Sub(f.Midpoint(topo.Vertices))) < 0 {
			n = n.Mul(-1)
		}
		tri.shade = 0.35 + 0.65*max(n.Dot(lightDir), 0)
		tris = append(tris, tri)
	}
	sort.Slice(tris, func(i, j int) bool { return tris[i].depth > tris[j].depth })
	pt.fillTriangles(screen, tris)

	for _, e := range topo.Edges {
		drawSegment(screen, proj, topo.Vertices[e.VertexIndices[0]].Position, topo.Vertices[e.VertexIndices[1]].Position, 1, wireColor)
	}
}

// maxBatchVertices keeps batch indices within uint16.
const maxBatchVertices = 65535 / 3 * 3

type triangleBatch struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

// batchTriangles packs tris, in order, into as few batches as uint16 indices
// allow. Each triangle is coloured by its shade.
func batchTriangles(tris []screenTriangle) []triangleBatch {
	var batches []triangleBatch
	var cur triangleBatch
	for _, tri := range tris {
		if len(cur.vertices)+3 > maxBatchVertices {
			batches = append(batches, cur)
			cur = triangleBatch{}
		}
		r := float32(float64(faceColor.R) / 255 * tri.shade)
		g := float32(float64(faceColor.G) / 255 * tri.shade)
		b := float32(float64(faceColor.B) / 255 * tri.shade)
		for i := range tri.xp {
			cur.indices = append(cur.indices, uint16(len(cur.vertices)))
			cur.vertices = append(cur.vertices, ebiten.Vertex{
				DstX:   tri.xp[i],
				DstY:   tri.yp[i],
				SrcX:   1,
				SrcY:   1,
				ColorR: r,
				ColorG: g,
				ColorB: b,
				ColorA: 1,
			})
		}
	}
	if len(cur.vertices) > 0 {
		batches = append(batches, cur)
	}
	return batches
}

// fillTriangles draws tris in order. Later triangles cover earlier ones, so
// the slice must be sorted far to near.
func (pt *painter) fillTriangles(screen *ebiten.Image, tris []screenTriangle) {
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	for _, b := range batchTriangles(tris) {
		screen.DrawTriangles(b.vertices, b.indices, pt.white, op)
	}
}

func drawSegment(screen *ebiten.Image, proj projector, a, b mgl64.Vec3, width float32, clr color.Color) {
	x1, y1, _, ok1 := proj.Project(a)
	x2, y2, _, ok2 := proj.Project(b)
	if !ok1 || !ok2 {
		return
	}
	vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), width, clr, true)
}

// drawPath outlines a loop cut preview.
func drawPath(screen *ebiten.Image, proj projector, path meshedit.LoopCutPath) {
	n := len(path.Points)
	for i := 0; i+1 < n; i++ {
		drawSegment(screen, proj, path.Points[i].Position, path.Points[i+1].Position, 2, previewColor)
	}
	if path.IsClosed {
		drawSegment(screen, proj, path.Points[n-1].Position, path.Points[0].Position, 2, previewColor)
	}
}
