package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BodyID identifies a body inside one World. Zero means "not registered".
type BodyID uint64

// Sleep defaults
const (
	SleepLinearThreshold  = 0.3 // units/sec
	SleepAngularThreshold = 0.3 // rad/sec
	SleepTime             = 0.5 // seconds below both thresholds before sleeping
)

// RigidBody is the full simulation state of one body: pose, mass properties,
// velocities, force accumulators and the collider it carries.
type RigidBody struct {
	ID   BodyID
	Name string

	position     mgl32.Vec3
	orientation  mgl32.Quat
	worldMatrix  mgl32.Mat4
	inverseWorld mgl32.Mat4

	InverseMass    float32
	inertia        mgl32.Mat3
	inverseInertia mgl32.Mat3

	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3 // radians per second, world space

	// Velocity change produced by forces during the last integration.
	// Contacts use it to tell resting contacts apart from real impacts.
	LastDeltaVelocity        mgl32.Vec3
	LastDeltaAngularVelocity mgl32.Vec3

	force  mgl32.Vec3
	torque mgl32.Vec3

	Collider *Collider
	Forces   []ForceGenerator

	// Sleep state - sleeping bodies skip forces and integration
	CanSleep   bool
	IsSleeping bool
	sleepTimer float32

	owner   *World
	removed bool
}

// NewRigidBody creates a body at the origin. A mass <= 0 makes the body static.
func NewRigidBody(name string, mass float32) *RigidBody {
	b := &RigidBody{
		Name:        name,
		orientation: mgl32.QuatIdent(),
	}
	b.SetMass(mass)
	b.updateTransform()
	return b
}

// NewStaticBody creates an immovable body at position.
func NewStaticBody(name string, position mgl32.Vec3) *RigidBody {
	b := NewRigidBody(name, 0)
	b.SetPosition(position)
	return b
}

// SetMass sets the inverse mass. Static bodies also lose their inverse inertia.
func (b *RigidBody) SetMass(mass float32) {
	if mass <= 0 {
		b.InverseMass = 0
		b.inertia = mgl32.Mat3{}
		b.inverseInertia = mgl32.Mat3{}
		return
	}
	b.InverseMass = 1 / mass
}

// Mass returns the body mass, or 0 for static bodies.
func (b *RigidBody) Mass() float32 {
	if b.InverseMass == 0 {
		return 0
	}
	return 1 / b.InverseMass
}

func (b *RigidBody) IsStatic() bool {
	return b.InverseMass == 0
}

// SetInertiaTensor sets the body-space inertia tensor and caches its inverse.
// Ignored for static bodies.
func (b *RigidBody) SetInertiaTensor(inertia mgl32.Mat3) {
	if b.IsStatic() {
		return
	}
	b.inertia = inertia
	b.inverseInertia = inertia.Inv()
}

func (b *RigidBody) InertiaTensor() mgl32.Mat3 {
	return b.inertia
}

// InertiaTensorWorld rotates the body tensor into world space for the current orientation.
func (b *RigidBody) InertiaTensorWorld() mgl32.Mat3 {
	r := rotationMatrix(b.orientation)
	return r.Mul3(b.inertia).Mul3(r.Transpose())
}

// InverseInertiaTensorWorld rotates the inverse body tensor into world space.
func (b *RigidBody) InverseInertiaTensorWorld() mgl32.Mat3 {
	r := rotationMatrix(b.orientation)
	return r.Mul3(b.inverseInertia).Mul3(r.Transpose())
}

// --- Pose ---

func (b *RigidBody) Position() mgl32.Vec3 {
	return b.position
}

func (b *RigidBody) SetPosition(p mgl32.Vec3) {
	b.position = p
	b.updateTransform()
}

func (b *RigidBody) Orientation() mgl32.Quat {
	return b.orientation
}

func (b *RigidBody) SetOrientation(q mgl32.Quat) {
	b.orientation = q.Normalize()
	b.updateTransform()
}

// SetEulerAngles sets the orientation from X, Y, Z rotations in degrees,
// applied in X then Y then Z order.
func (b *RigidBody) SetEulerAngles(x, y, z float32) {
	b.SetOrientation(mgl32.AnglesToQuat(mgl32.DegToRad(x), mgl32.DegToRad(y), mgl32.DegToRad(z), mgl32.XYZ))
}

// Translate moves the body by delta.
func (b *RigidBody) Translate(delta mgl32.Vec3) {
	b.position = b.position.Add(delta)
	b.updateTransform()
}

// Rotate applies a small world-space rotation vector (axis * angle).
func (b *RigidBody) Rotate(delta mgl32.Vec3) {
	spin := mgl32.Quat{W: 0, V: delta}.Mul(b.orientation).Scale(0.5)
	b.orientation = b.orientation.Add(spin).Normalize()
	b.updateTransform()
}

func (b *RigidBody) WorldMatrix() mgl32.Mat4 {
	return b.worldMatrix
}

func (b *RigidBody) InverseWorldMatrix() mgl32.Mat4 {
	return b.inverseWorld
}

// PointToWorld transforms a body-space point into world space.
func (b *RigidBody) PointToWorld(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, b.worldMatrix)
}

// PointToLocal transforms a world-space point into body space.
func (b *RigidBody) PointToLocal(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, b.inverseWorld)
}

// Axis returns the body's world-space basis vector (0 = X, 1 = Y, 2 = Z).
func (b *RigidBody) Axis(i int) mgl32.Vec3 {
	return b.worldMatrix.Col(i).Vec3()
}

func (b *RigidBody) updateTransform() {
	b.worldMatrix = mgl32.Translate3D(b.position[0], b.position[1], b.position[2]).Mul4(b.orientation.Mat4())
	b.inverseWorld = b.orientation.Conjugate().Mat4().Mul4(mgl32.Translate3D(-b.position[0], -b.position[1], -b.position[2]))
}

// --- Forces ---

// AddForce adds a force through the center of mass.
func (b *RigidBody) AddForce(f mgl32.Vec3) {
	b.force = b.force.Add(f)
}

func (b *RigidBody) AddTorque(t mgl32.Vec3) {
	b.torque = b.torque.Add(t)
}

// AddForceAtBodyPoint adds a world-space force applied at a body-space point,
// accumulating the resulting torque as well.
func (b *RigidBody) AddForceAtBodyPoint(f, bodyPoint mgl32.Vec3) {
	b.AddForceAtPoint(f, b.PointToWorld(bodyPoint))
}

// AddForceAtPoint adds a world-space force applied at a world-space point.
func (b *RigidBody) AddForceAtPoint(f, worldPoint mgl32.Vec3) {
	arm := worldPoint.Sub(b.position)
	b.AddForce(f)
	b.AddTorque(arm.Cross(f))
}

func (b *RigidBody) Force() mgl32.Vec3 {
	return b.force
}

func (b *RigidBody) Torque() mgl32.Vec3 {
	return b.torque
}

func (b *RigidBody) ClearAccumulators() {
	b.force = mgl32.Vec3{}
	b.torque = mgl32.Vec3{}
}

// AddVelocity changes the linear velocity directly and wakes the body.
func (b *RigidBody) AddVelocity(dv mgl32.Vec3) {
	if b.IsStatic() {
		return
	}
	b.Velocity = b.Velocity.Add(dv)
	b.Wake()
}

// --- Collider ---

// SetCollider attaches c to the body, replacing any previous collider.
func (b *RigidBody) SetCollider(c *Collider) {
	if b.Collider != nil {
		b.Collider.body = nil
	}
	b.Collider = c
	if c != nil {
		c.body = b
		c.Movable = !b.IsStatic()
	}
}

// --- Sleep ---

// Wake forces the body out of sleep state
func (b *RigidBody) Wake() {
	b.IsSleeping = false
	b.sleepTimer = 0
}

// trySleep puts the body to sleep once it has stayed slow for s.Time seconds
func (b *RigidBody) trySleep(dt float32, s SleepSettings) {
	if !b.CanSleep || b.IsStatic() {
		return
	}

	slow := b.Velocity.Len() < s.LinearThreshold && b.AngularVelocity.Len() < s.AngularThreshold
	if b.IsSleeping {
		if !slow {
			b.Wake()
			return
		}
		b.Velocity = mgl32.Vec3{}
		b.AngularVelocity = mgl32.Vec3{}
		return
	}
	if !slow {
		b.sleepTimer = 0
		return
	}

	b.sleepTimer += dt
	if b.sleepTimer >= s.Time {
		b.IsSleeping = true
		b.Velocity = mgl32.Vec3{}
		b.AngularVelocity = mgl32.Vec3{}
	}
}

// --- Inertia tensors ---

// BoxInertia returns the body-space inertia of a solid box with the given half extents.
func BoxInertia(mass float32, halfExtents mgl32.Vec3) mgl32.Mat3 {
	x2 := halfExtents[0] * halfExtents[0]
	y2 := halfExtents[1] * halfExtents[1]
	z2 := halfExtents[2] * halfExtents[2]
	k := mass / 3
	return mgl32.Diag3(mgl32.Vec3{k * (y2 + z2), k * (x2 + z2), k * (x2 + y2)})
}

// SphereInertia returns the body-space inertia of a solid sphere.
func SphereInertia(mass, radius float32) mgl32.Mat3 {
	i := 0.4 * mass * radius * radius
	return mgl32.Diag3(mgl32.Vec3{i, i, i})
}

// --- Constructors for common bodies ---

// NewBoxBody creates a body carrying a box collider with matching solid inertia.
func NewBoxBody(name string, mass float32, halfExtents mgl32.Vec3) *RigidBody {
	b := NewRigidBody(name, mass)
	c := NewBoxCollider(halfExtents)
	b.SetCollider(c)
	b.SetInertiaTensor(c.DefaultInertia(mass))
	return b
}

// NewSphereBody creates a body carrying a sphere collider with matching solid inertia.
func NewSphereBody(name string, mass, radius float32) *RigidBody {
	b := NewRigidBody(name, mass)
	c := NewSphereCollider(radius)
	b.SetCollider(c)
	b.SetInertiaTensor(c.DefaultInertia(mass))
	return b
}

// NewPlaneBody creates a static half-space passing through point.
func NewPlaneBody(name string, normal, point mgl32.Vec3) *RigidBody {
	b := NewStaticBody(name, point)
	b.SetCollider(NewPlaneCollider(normal))
	return b
}
