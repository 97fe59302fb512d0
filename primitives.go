package meshedit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// cubeFaces lists each side of a unit cube as four corners, counter-clockwise
// seen from outside, in +X, -X, +Y, -Y, +Z, -Z order.
var cubeFaces = [6][4]mgl64.Vec3{
	{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}},
	{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}},
	{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}},
	{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}},
	{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},
	{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}},
}

const cubeTop = 2

// NewCube builds an axis aligned cube of edge length size centred on the
// origin. Every side has its own four vertices, so the buffer holds 24
// vertices and 12 triangles over 8 distinct positions.
func NewCube(size float64) *Geometry {
	return newBox(size, -1)
}

// NewOpenCube is NewCube without its +Y side: 20 vertices, 10 triangles and a
// square hole bounded by four edges.
func NewOpenCube(size float64) *Geometry {
	return newBox(size, cubeTop)
}

func newBox(size float64, skip int) *Geometry {
	h := size / 2
	positions := make([]float64, 0, 6*4*3)
	indices := make([]uint32, 0, 6*6)
	for side, corners := range cubeFaces {
		if side == skip {
			continue
		}
		base := uint32(len(positions) / 3)
		for _, c := range corners {
			p := c.Mul(h)
			positions = append(positions, p[0], p[1], p[2])
		}
		indices = append(indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return NewGeometry(positions, indices)
}

// NewUVSphere builds a latitude/longitude sphere. rings counts the bands from
// pole to pole and segments the slices around the Y axis. Pole and seam
// vertices are duplicated in the buffer and merge on extraction.
func NewUVSphere(radius float64, segments, rings int) *Geometry {
	segments = max(segments, 3)
	rings = max(rings, 2)

	positions := make([]float64, 0, (rings+1)*(segments+1)*3)
	for r := 0; r <= rings; r++ {
		theta := float64(r) * math.Pi / float64(rings)
		for s := 0; s <= segments; s++ {
			phi := float64(s) * 2 * math.Pi / float64(segments)
			positions = append(positions,
				radius*math.Sin(theta)*math.Cos(phi),
				radius*math.Cos(theta),
				radius*math.Sin(theta)*math.Sin(phi),
			)
		}
	}

	at := func(r, s int) uint32 { return uint32(r*(segments+1) + s) }
	indices := make([]uint32, 0, rings*segments*6)
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a, b, c, d := at(r, s), at(r+1, s), at(r+1, s+1), at(r, s+1)
			if r != 0 {
				indices = append(indices, a, d, b)
			}
			if r != rings-1 {
				indices = append(indices, b, d, c)
			}
		}
	}
	return NewGeometry(positions, indices)
}

// NewPlaneGrid builds a flat grid on the XZ plane facing +Y with nx by nz
// cells, sharing vertices between cells.
func NewPlaneGrid(width, depth float64, nx, nz int) *Geometry {
	nx = max(nx, 1)
	nz = max(nz, 1)

	positions := make([]float64, 0, (nx+1)*(nz+1)*3)
	for z := 0; z <= nz; z++ {
		for x := 0; x <= nx; x++ {
			positions = append(positions,
				-width/2+width*float64(x)/float64(nx),
				0,
				-depth/2+depth*float64(z)/float64(nz),
			)
		}
	}

	at := func(x, z int) uint32 { return uint32(z*(nx+1) + x) }
	indices := make([]uint32, 0, nx*nz*6)
	for z := 0; z < nz; z++ {
		for x := 0; x < nx; x++ {
			a, b, c, d := at(x, z), at(x+1, z), at(x+1, z+1), at(x, z+1)
			indices = append(indices,
				a, d, c,
				a, c, b,
			)
		}
	}
	return NewGeometry(positions, indices)
}
