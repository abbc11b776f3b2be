package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrbitCamera circles a target point. Right-drag rotates, the wheel zooms.
type OrbitCamera struct {
	Target   rl.Vector3
	Yaw      float32 // degrees around Y
	Pitch    float32 // degrees above the horizon
	Distance float32

	LookSpeed   float32
	ZoomSpeed   float32
	MinDistance float32
	MaxDistance float32
}

func New(target rl.Vector3, distance float32) *OrbitCamera {
	return &OrbitCamera{
		Target:      target,
		Yaw:         -135.0,
		Pitch:       30.0,
		Distance:    distance,
		LookSpeed:   0.3,
		ZoomSpeed:   1.5,
		MinDistance: 2,
		MaxDistance: 80,
	}
}

func (c *OrbitCamera) Update() {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		mouseDelta := rl.GetMouseDelta()
		c.Orbit(mouseDelta.X*c.LookSpeed, mouseDelta.Y*c.LookSpeed)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.Zoom(-wheel * c.ZoomSpeed)
	}
}

// Orbit turns the camera by yaw and pitch degrees.
func (c *OrbitCamera) Orbit(yaw, pitch float32) {
	c.Yaw += yaw
	c.Pitch += pitch

	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
}

func (c *OrbitCamera) Zoom(delta float32) {
	c.Distance += delta
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// Position is the eye point on the orbit sphere.
func (c *OrbitCamera) Position() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180
	d := float64(c.Distance)

	return rl.Vector3{
		X: c.Target.X + float32(d*math.Cos(yawRad)*math.Cos(pitchRad)),
		Y: c.Target.Y + float32(d*math.Sin(pitchRad)),
		Z: c.Target.Z + float32(d*math.Sin(yawRad)*math.Cos(pitchRad)),
	}
}

func (c *OrbitCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}
