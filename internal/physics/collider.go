package physics

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ShapeKind tags which fields of a Collider are meaningful.
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	ShapePlane

	shapeKindCount
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "Box"
	case ShapeSphere:
		return "Sphere"
	case ShapePlane:
		return "Plane"
	}
	return fmt.Sprintf("ShapeKind(%d)", uint8(k))
}

// Collider is the collision geometry attached to a rigid body.
// Box uses HalfExtents, Sphere uses Radius, Plane uses Normal (body space, unit length).
// Offset places the shape relative to the owning body.
type Collider struct {
	Kind        ShapeKind
	HalfExtents mgl32.Vec3
	Radius      float32
	Normal      mgl32.Vec3
	Offset      mgl32.Vec3

	// Pairs where neither collider is movable are never tested.
	Movable bool

	body *RigidBody
}

func NewBoxCollider(halfExtents mgl32.Vec3) *Collider {
	return &Collider{Kind: ShapeBox, HalfExtents: halfExtents, Movable: true}
}

func NewSphereCollider(radius float32) *Collider {
	return &Collider{Kind: ShapeSphere, Radius: radius, Movable: true}
}

// NewPlaneCollider creates a half-space whose solid side is opposite normal.
func NewPlaneCollider(normal mgl32.Vec3) *Collider {
	return &Collider{Kind: ShapePlane, Normal: safeNormalize(normal, worldUp)}
}

// Body returns the owning body. A collider must be attached before it is queried.
func (c *Collider) Body() *RigidBody {
	if c.body == nil {
		panic(fmt.Sprintf("physics: %s collider has no owning body", c.Kind))
	}
	return c.body
}

// Position returns the world-space reference point of the shape.
func (c *Collider) Position() mgl32.Vec3 {
	return c.Body().PointToWorld(c.Offset)
}

// Axis returns the shape's world-space basis vector.
func (c *Collider) Axis(i int) mgl32.Vec3 {
	return c.Body().Axis(i)
}

// WorldMatrix returns the owner's world transform followed by the collider offset.
func (c *Collider) WorldMatrix() mgl32.Mat4 {
	return c.Body().WorldMatrix().Mul4(mgl32.Translate3D(c.Offset[0], c.Offset[1], c.Offset[2]))
}

func (c *Collider) InverseWorldMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(-c.Offset[0], -c.Offset[1], -c.Offset[2]).Mul4(c.Body().InverseWorldMatrix())
}

// PlaneNormal returns the plane normal rotated into world space.
func (c *Collider) PlaneNormal() mgl32.Vec3 {
	return c.Body().Orientation().Rotate(c.Normal)
}

// PlaneOffset returns d in the plane equation n·p = d.
func (c *Collider) PlaneOffset() float32 {
	return c.PlaneNormal().Dot(c.Position())
}

// BoundingRadius returns the radius of a sphere around Position that contains the shape.
func (c *Collider) BoundingRadius() float32 {
	switch c.Kind {
	case ShapeBox:
		return c.HalfExtents.Len()
	case ShapeSphere:
		return c.Radius
	}
	return math32.Inf(1)
}

// Vertices returns the eight world-space box corners.
func (c *Collider) Vertices() [8]mgl32.Vec3 {
	h := c.HalfExtents
	m := c.WorldMatrix()
	local := [8]mgl32.Vec3{
		{h[0], h[1], h[2]},
		{h[0], -h[1], h[2]},
		{-h[0], -h[1], h[2]},
		{-h[0], h[1], h[2]},
		{h[0], h[1], -h[2]},
		{h[0], -h[1], -h[2]},
		{-h[0], -h[1], -h[2]},
		{-h[0], h[1], -h[2]},
	}
	var out [8]mgl32.Vec3
	for i, v := range local {
		out[i] = mgl32.TransformCoordinate(v, m)
	}
	return out
}

// DefaultInertia returns the solid-body inertia tensor for the shape and mass.
// Planes have no meaningful inertia and return the zero matrix.
func (c *Collider) DefaultInertia(mass float32) mgl32.Mat3 {
	switch c.Kind {
	case ShapeBox:
		return BoxInertia(mass, c.HalfExtents)
	case ShapeSphere:
		return SphereInertia(mass, c.Radius)
	}
	return mgl32.Mat3{}
}
