package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ForceGenerator adds forces and torques to a body before integration.
type ForceGenerator interface {
	UpdateForce(b *RigidBody, dt float32)
}

// Gravity applies a constant acceleration regardless of mass.
type Gravity struct {
	Acceleration mgl32.Vec3
}

func (g *Gravity) UpdateForce(b *RigidBody, dt float32) {
	if b.IsStatic() {
		return
	}
	b.AddForce(g.Acceleration.Mul(b.Mass()))
}

// Drag slows a body down. Linear is the quadratic coefficient; a tenth of it
// is also applied proportional to speed so slow bodies still lose energy.
// Angular damps rotation with a quadratic torque.
type Drag struct {
	Linear  float32
	Angular float32
}

func (d *Drag) UpdateForce(b *RigidBody, dt float32) {
	if speed := b.Velocity.Len(); speed > 0 {
		magnitude := speed*d.Linear/10 + speed*speed*d.Linear
		b.AddForce(b.Velocity.Mul(-magnitude / speed))
	}
	if spin := b.AngularVelocity.Len(); spin > 0 {
		magnitude := spin * spin * d.Angular
		b.AddTorque(b.AngularVelocity.Mul(-magnitude / spin))
	}
}

// Spring pulls a point on the body toward a fixed world anchor.
type Spring struct {
	Anchor     mgl32.Vec3 // world space
	BodyPoint  mgl32.Vec3 // body space
	Stiffness  float32
	RestLength float32
	Damping    float32
}

func (s *Spring) UpdateForce(b *RigidBody, dt float32) {
	point := b.PointToWorld(s.BodyPoint)
	stretch := point.Sub(s.Anchor)
	length := stretch.Len()
	if length < 1e-6 {
		return
	}
	dir := stretch.Mul(1 / length)

	// Velocity of the attachment point along the spring axis
	pointVelocity := b.Velocity.Add(b.AngularVelocity.Cross(point.Sub(b.Position())))
	closing := pointVelocity.Dot(dir)

	magnitude := -s.Stiffness*(length-s.RestLength) - s.Damping*closing
	b.AddForceAtBodyPoint(dir.Mul(magnitude), s.BodyPoint)
}
