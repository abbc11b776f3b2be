package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Integrate advances one dynamic body by dt using semi-implicit Euler:
// velocities first, then the pose from the new velocities.
// The accumulators are cleared afterwards and the velocity change is kept
// for the next tick's contacts.
func (b *RigidBody) Integrate(dt float32) {
	if b.IsStatic() || b.IsSleeping {
		b.ClearAccumulators()
		return
	}

	// Linear
	deltaV := b.force.Mul(b.InverseMass * dt)
	b.Velocity = b.Velocity.Add(deltaV)
	b.position = b.position.Add(b.Velocity.Mul(dt))

	// Angular, including the gyroscopic term
	inertiaWorld := b.InertiaTensorWorld()
	gyro := b.AngularVelocity.Cross(inertiaWorld.Mul3x1(b.AngularVelocity))
	deltaW := b.InverseInertiaTensorWorld().Mul3x1(b.torque.Sub(gyro)).Mul(dt)
	b.AngularVelocity = b.AngularVelocity.Add(deltaW)

	// q += 0.5 * (0, w) * q * dt
	spin := mgl32.Quat{W: 0, V: b.AngularVelocity}.Mul(b.orientation).Scale(0.5 * dt)
	b.orientation = b.orientation.Add(spin).Normalize()

	b.LastDeltaVelocity = deltaV
	b.LastDeltaAngularVelocity = deltaW

	b.ClearAccumulators()
	b.updateTransform()
}
