package meshedit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// planeThickness is how far from the plane a point must be before it counts
// as being on one side.
const planeThickness = 1e-4

// Plane is an infinite plane through Point with unit normal Normal.
type Plane struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

func NewPlane(point, normal mgl64.Vec3) Plane {
	return Plane{Point: point, Normal: normalize(normal)}
}

// Distance is the signed distance from p to the plane, positive on the side
// the normal points to.
func (p Plane) Distance(q mgl64.Vec3) float64 {
	return q.Sub(p.Point).Dot(p.Normal)
}

// Crossing reports whether segment a-b passes through the plane with both
// ends clearly on opposite sides. t is the fraction along a-b where it
// crosses.
func (p Plane) Crossing(a, b mgl64.Vec3) (t float64, ok bool) {
	d1, d2 := p.Distance(a), p.Distance(b)
	if !((d1 > planeThickness && d2 < -planeThickness) || (d1 < -planeThickness && d2 > planeThickness)) {
		return 0, false
	}
	return math.Abs(d1) / (math.Abs(d1) + math.Abs(d2)), true
}
