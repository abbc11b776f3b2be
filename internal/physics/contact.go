package physics

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Material holds the coefficients every contact is created with.
type Material struct {
	Restitution float32 `yaml:"restitution"`
	Friction    float32 `yaml:"friction"`

	// Closing speeds below this are treated as resting and get no bounce.
	RestingVelocity float32 `yaml:"resting_velocity"`
}

func DefaultMaterial() Material {
	return Material{
		Restitution:     0.6,
		Friction:        0.7,
		RestingVelocity: 0.25,
	}
}

// BodyDelta is the change one resolution step made to one body.
// Linear/Angular hold positions and rotations in the penetration pass and
// velocities in the velocity pass.
type BodyDelta struct {
	Body    *RigidBody
	Linear  mgl32.Vec3
	Angular mgl32.Vec3
}

// Contact is a single collision point between body A and an optional body B.
// Normal points from B toward A.
type Contact struct {
	Point       mgl32.Vec3
	Normal      mgl32.Vec3
	Penetration float32
	Bodies      [2]*RigidBody
	Material    Material

	contactToWorld mgl32.Mat3
	worldToContact mgl32.Mat3
	offsets        [2]mgl32.Vec3
	offsetSkews    [2]mgl32.Mat3

	relativeVelocity     mgl32.Vec3 // contact space, A relative to B
	accelerationClosing  float32
	deltaClosingVelocity float32
}

// NewContact builds a contact, moving a lone body into slot A and flipping
// the normal to keep it pointing from B toward A.
func NewContact(point, normal mgl32.Vec3, penetration float32, a, b *RigidBody, m Material) Contact {
	if a == nil {
		a, b = b, nil
		normal = normal.Mul(-1)
	}
	if a == nil {
		panic("physics: contact without bodies")
	}
	return Contact{
		Point:       point,
		Normal:      normal,
		Penetration: penetration,
		Bodies:      [2]*RigidBody{a, b},
		Material:    m,
	}
}

// DeltaClosingVelocity is the change in closing velocity the solver is aiming for.
// Negative values mean the bodies still need to be pushed apart.
func (c *Contact) DeltaClosingVelocity() float32 {
	return c.deltaClosingVelocity
}

// RelativeVelocity returns the contact-space velocity of A relative to B.
func (c *Contact) RelativeVelocity() mgl32.Vec3 {
	return c.relativeVelocity
}

func (c *Contact) ContactToWorld() mgl32.Mat3 {
	return c.contactToWorld
}

func (c *Contact) WorldToContact() mgl32.Mat3 {
	return c.worldToContact
}

// sign is +1 for body A and -1 for body B: impulses on B act against the normal.
func sign(i int) float32 {
	if i == 0 {
		return 1
	}
	return -1
}

func (c *Contact) checkBodies() {
	for _, b := range c.Bodies {
		if b != nil && b.removed {
			panic(fmt.Sprintf("physics: contact references removed body %q", b.Name))
		}
	}
}

// CalculateContactData derives the contact basis, offsets, relative velocity
// and the target delta closing velocity from the current body state.
func (c *Contact) CalculateContactData() {
	c.checkBodies()
	c.calculateBasis()

	var relative, fromAcceleration mgl32.Vec3
	for i, body := range c.Bodies {
		if body == nil {
			continue
		}
		c.offsets[i] = c.Point.Sub(body.Position())
		c.offsetSkews[i] = skew(c.offsets[i])

		v := body.Velocity.Add(body.AngularVelocity.Cross(c.offsets[i]))
		acc := body.LastDeltaVelocity.Add(body.LastDeltaAngularVelocity.Cross(c.offsets[i]))

		relative = relative.Add(v.Mul(sign(i)))
		fromAcceleration = fromAcceleration.Add(acc.Mul(sign(i)))
	}

	c.relativeVelocity = c.worldToContact.Mul3x1(relative)
	c.accelerationClosing = -fromAcceleration.Dot(c.Normal)
	c.updateDeltaClosingVelocity()
}

// calculateBasis builds an orthonormal basis with local Y along the normal.
func (c *Contact) calculateBasis() {
	y := c.Normal
	reference := worldUp
	if absf(y[1]) > 0.999 {
		reference = worldForward
	}
	x := y.Cross(reference).Normalize()
	z := x.Cross(y).Normalize()

	c.contactToWorld = mgl32.Mat3FromCols(x, y, z)
	c.worldToContact = c.contactToWorld.Transpose()
}

// updateDeltaClosingVelocity applies restitution to the closing velocity,
// discounting the part last tick's forces produced so resting contacts do not bounce.
func (c *Contact) updateDeltaClosingVelocity() {
	closing := -c.relativeVelocity[1]
	restitution := c.Material.Restitution
	if math32.Abs(closing) < c.Material.RestingVelocity {
		restitution = 0
	}
	c.deltaClosingVelocity = -(closing-c.accelerationClosing)*restitution - closing
}

// CalculateFrictionlessImpulse returns the world-space impulse on A that
// reaches the target closing velocity along the normal only.
func (c *Contact) CalculateFrictionlessImpulse() mgl32.Vec3 {
	var perUnit float32
	for i, body := range c.Bodies {
		if body == nil {
			continue
		}
		n := c.Normal.Mul(sign(i))
		torque := c.offsets[i].Cross(n)
		angular := body.InverseInertiaTensorWorld().Mul3x1(torque).Cross(c.offsets[i])
		perUnit += n.Mul(body.InverseMass).Add(angular).Dot(n)
	}

	impulse := c.deltaClosingVelocity / -perUnit
	return c.contactToWorld.Mul3x1(mgl32.Vec3{0, impulse, 0})
}

// CalculateFrictionImpulse returns the world-space impulse on A that reaches the
// target closing velocity and removes sliding, limited to the friction cone.
func (c *Contact) CalculateFrictionImpulse() mgl32.Vec3 {
	var angular mgl32.Mat3
	var inverseMass float32
	for i, body := range c.Bodies {
		if body == nil {
			continue
		}
		s := c.offsetSkews[i]
		angular = angular.Add(s.Mul3(body.InverseInertiaTensorWorld()).Mul3(s).Mul(-1))
		inverseMass += body.InverseMass
	}

	k := c.worldToContact.Mul3(angular).Mul3(c.contactToWorld).Add(mgl32.Ident3().Mul(inverseMass))

	target := mgl32.Vec3{-c.relativeVelocity[0], -c.deltaClosingVelocity, -c.relativeVelocity[2]}
	impulse := k.Inv().Mul3x1(target)

	planar := math32.Sqrt(impulse[0]*impulse[0] + impulse[2]*impulse[2])
	friction := c.Material.Friction
	if planar > impulse[1]*friction {
		// Sliding: keep the tangential direction, put the impulse on the cone boundary
		dx := impulse[0] / planar
		dz := impulse[2] / planar

		perUnit := k.At(1, 0)*friction*dx + k.At(1, 1) + k.At(1, 2)*friction*dz
		normal := -c.deltaClosingVelocity / perUnit
		impulse = mgl32.Vec3{dx * friction * normal, normal, dz * friction * normal}
	}

	return c.contactToWorld.Mul3x1(impulse)
}

// ResolveVelocity applies the contact impulse to both bodies and returns the
// velocity change each body received.
func (c *Contact) ResolveVelocity() [2]BodyDelta {
	c.checkBodies()

	var impulse mgl32.Vec3
	if c.Material.Friction != 0 {
		impulse = c.CalculateFrictionImpulse()
	} else {
		impulse = c.CalculateFrictionlessImpulse()
	}

	var deltas [2]BodyDelta
	for i, body := range c.Bodies {
		if body == nil {
			continue
		}
		p := impulse.Mul(sign(i))
		dv := p.Mul(body.InverseMass)
		dw := body.InverseInertiaTensorWorld().Mul3x1(c.offsets[i].Cross(p))

		body.Velocity = body.Velocity.Add(dv)
		body.AngularVelocity = body.AngularVelocity.Add(dw)
		deltas[i] = BodyDelta{Body: body, Linear: dv, Angular: dw}
	}
	return deltas
}

// ResolveInterpenetration moves both bodies apart along the normal, sharing the
// correction by each body's linear and angular inertia, and returns the
// translation and rotation applied to each body.
//
// angularLimit bounds the rotational part to angularLimit*|offset| per body;
// anything above it is moved to the linear part.
func (c *Contact) ResolveInterpenetration(angularLimit float32) [2]BodyDelta {
	c.checkBodies()

	var linearInertia, angularInertia [2]float32
	var total float32
	for i, body := range c.Bodies {
		if body == nil {
			continue
		}
		n := c.Normal.Mul(sign(i))
		torque := c.offsets[i].Cross(n)
		angularInertia[i] = body.InverseInertiaTensorWorld().Mul3x1(torque).Cross(c.offsets[i]).Dot(n)
		linearInertia[i] = body.InverseMass
		total += linearInertia[i] + angularInertia[i]
	}

	var deltas [2]BodyDelta
	if total <= 0 {
		return deltas
	}

	for i, body := range c.Bodies {
		if body == nil {
			continue
		}
		n := c.Normal.Mul(sign(i))
		linearMove := c.Penetration * linearInertia[i] / total
		angularMove := c.Penetration * angularInertia[i] / total

		limit := angularLimit * c.offsets[i].Len()
		if math32.Abs(angularMove) > limit {
			move := linearMove + angularMove
			if angularMove >= 0 {
				angularMove = limit
			} else {
				angularMove = -limit
			}
			linearMove = move - angularMove
		}

		var rotation mgl32.Vec3
		if angularMove != 0 && angularInertia[i] != 0 {
			perMove := body.InverseInertiaTensorWorld().Mul3x1(c.offsets[i].Cross(n)).Mul(1 / angularInertia[i])
			rotation = perMove.Mul(angularMove)
		}
		translation := n.Mul(linearMove)

		body.Translate(translation)
		body.Rotate(rotation)
		deltas[i] = BodyDelta{Body: body, Linear: translation, Angular: rotation}
	}
	return deltas
}

// applyPositionDelta updates the cached penetration after d moved one of this contact's bodies.
func (c *Contact) applyPositionDelta(d BodyDelta) {
	for i, body := range c.Bodies {
		if body == nil || body != d.Body {
			continue
		}
		moved := d.Linear.Add(d.Angular.Cross(c.offsets[i])).Dot(c.Normal)
		c.Penetration -= moved * sign(i)
	}
}

// applyVelocityDelta updates the cached relative velocity after d changed one of this contact's bodies.
func (c *Contact) applyVelocityDelta(d BodyDelta) {
	touched := false
	for i, body := range c.Bodies {
		if body == nil || body != d.Body {
			continue
		}
		dv := d.Linear.Add(d.Angular.Cross(c.offsets[i]))
		c.relativeVelocity = c.relativeVelocity.Add(c.worldToContact.Mul3x1(dv).Mul(sign(i)))
		touched = true
	}
	if touched {
		c.updateDeltaClosingVelocity()
	}
}

// Involves reports whether b takes part in the contact.
func (c *Contact) Involves(b *RigidBody) bool {
	return b != nil && (c.Bodies[0] == b || c.Bodies[1] == b)
}
