package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	fovY      = math.Pi / 4
	nearPlane = 0.05
	farPlane  = 100
	maxPitch  = math.Pi/2 - 0.01
)

// orbitCamera circles target at distance, looking at it.
type orbitCamera struct {
	target   mgl64.Vec3
	distance float64
	yaw      float64
	pitch    float64
}

func newOrbitCamera(target mgl64.Vec3, radius float64) *orbitCamera {
	return &orbitCamera{
		target:   target,
		distance: math.Max(radius*3, 1),
		yaw:      math.Pi / 5,
		pitch:    math.Pi / 7,
	}
}

func (c *orbitCamera) AddAngle(pitch, yaw float64) {
	c.yaw += yaw
	c.pitch = mgl64.Clamp(c.pitch+pitch, -maxPitch, maxPitch)
}

func (c *orbitCamera) Position() mgl64.Vec3 {
	cp := math.Cos(c.pitch)
	offset := mgl64.Vec3{
		c.distance * cp * math.Sin(c.yaw),
		c.distance * math.Sin(c.pitch),
		c.distance * cp * math.Cos(c.yaw),
	}
	return c.target.Add(offset)
}

func (c *orbitCamera) viewProjection(width, height int) mgl64.Mat4 {
	proj := mgl64.Perspective(fovY, float64(width)/float64(height), nearPlane, farPlane)
	view := mgl64.LookAtV(c.Position(), c.target, mgl64.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

// projector maps world points to screen pixels for one frame.
type projector struct {
	m             mgl64.Mat4
	width, height float64
}

func (c *orbitCamera) projector(width, height int) projector {
	return projector{m: c.viewProjection(width, height), width: float64(width), height: float64(height)}
}

// Project returns the screen position of p and its clip depth. ok is false
// for points behind the near plane.
func (p projector) Project(v mgl64.Vec3) (x, y, depth float64, ok bool) {
	clip := p.m.Mul4x1(v.Vec4(1))
	if clip[3] <= nearPlane {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	x = (ndc[0] + 1) / 2 * p.width
	y = (1 - ndc[1]) / 2 * p.height
	return x, y, clip[3], true
}
