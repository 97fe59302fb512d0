package meshedit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// normalize returns v scaled to unit length. A zero vector is returned
// unchanged rather than turned into NaNs.
func normalize(v mgl64.Vec3) mgl64.Vec3 {
	length := math.Sqrt(math.Abs(v.Dot(v)))
	if length == 0 {
		return v
	}
	return v.Mul(1 / length)
}

func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// mulComponents multiplies two vectors componentwise.
func mulComponents(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// triangleNormal is the unit normal of (a, b, c) with counter-clockwise
// winding facing the viewer.
func triangleNormal(a, b, c mgl64.Vec3) mgl64.Vec3 {
	return normalize(b.Sub(a).Cross(c.Sub(a)))
}

// QuatFromXYZW builds a rotation from a quaternion stored in x, y, z, w order.
func QuatFromXYZW(x, y, z, w float64) mgl64.Quat {
	return mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}
}

func readVec3(buf []float64, i int) mgl64.Vec3 {
	return mgl64.Vec3{buf[i*3], buf[i*3+1], buf[i*3+2]}
}

func writeVec3(buf []float64, i int, v mgl64.Vec3) {
	buf[i*3] = v[0]
	buf[i*3+1] = v[1]
	buf[i*3+2] = v[2]
}
