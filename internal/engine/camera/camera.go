// Package camera provides the orbit camera used by the model viewer.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OpenEngineDK/extensions-mesh-OBJResource/internal/engine/model"
)

// Orbit orbits around a target point using spherical coordinates.
type Orbit struct {
	Target   mgl32.Vec3
	Distance float32
	Yaw      float32 // horizontal angle, radians
	Pitch    float32 // vertical angle, radians

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32

	FOV  float32 // vertical field of view, degrees
	Near float32
	Far  float32
}

// NewOrbit creates an orbit camera with viewer defaults.
func NewOrbit() *Orbit {
	return &Orbit{
		Distance:        5,
		Pitch:           0.4,
		MinDistance:     0.1,
		MaxDistance:     10000,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FOV:             45,
		Near:            0.05,
		Far:             20000,
	}
}

// Position returns the camera position in world space.
func (c *Orbit) Position() mgl32.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Sin(float64(c.Yaw)))
	y := c.Distance * float32(gomath.Sin(float64(c.Pitch)))
	z := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Cos(float64(c.Yaw)))
	return c.Target.Add(mgl32.Vec3{x, y, z})
}

// View returns the view matrix looking from the camera position at the target.
func (c *Orbit) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective projection for the given aspect ratio.
func (c *Orbit) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// Drag rotates the camera by a mouse delta in pixels.
func (c *Orbit) Drag(dx, dy float32) {
	c.Yaw -= dx * c.DragSensitivity
	c.Pitch += dy * c.DragSensitivity
	c.Pitch = clamp(c.Pitch, c.MinPitch, c.MaxPitch)
}

// Zoom scales the orbit distance by scroll steps.
func (c *Orbit) Zoom(steps float32) {
	c.Distance *= 1 - steps*c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// Frame centers the camera on the bounding box and backs off far
// enough to fit it in view.
func (c *Orbit) Frame(b model.Bounds) {
	center := b.Center()
	c.Target = mgl32.Vec3{center[0], center[1], center[2]}

	size := b.Size()
	radius := float32(gomath.Sqrt(float64(size[0]*size[0]+size[1]*size[1]+size[2]*size[2]))) / 2
	if radius <= 0 {
		radius = 1
	}
	c.Distance = radius / float32(gomath.Tan(float64(mgl32.DegToRad(c.FOV))/2)) * 1.2
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
