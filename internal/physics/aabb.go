package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// AABB is a world-space axis-aligned box around a collider.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAABBFromCenter creates an AABB from a center point and half extents.
func NewAABBFromCenter(center, half mgl32.Vec3) AABB {
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min[0] <= b.Max[0] && a.Max[0] >= b.Min[0] &&
		a.Min[1] <= b.Max[1] && a.Max[1] >= b.Min[1] &&
		a.Min[2] <= b.Max[2] && a.Max[2] >= b.Min[2]
}

func (a AABB) Center() mgl32.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) Size() mgl32.Vec3 {
	return a.Max.Sub(a.Min)
}

// Bounds returns the collider's world-space AABB. Planes are unbounded.
func (c *Collider) Bounds() AABB {
	switch c.Kind {
	case ShapeSphere:
		r := c.Radius
		return NewAABBFromCenter(c.Position(), mgl32.Vec3{r, r, r})
	case ShapeBox:
		// Projected half extents of the rotated box on each world axis
		var half mgl32.Vec3
		for i := 0; i < 3; i++ {
			axis := c.Axis(i).Mul(c.HalfExtents[i])
			half = half.Add(mgl32.Vec3{absf(axis[0]), absf(axis[1]), absf(axis[2])})
		}
		return NewAABBFromCenter(c.Position(), half)
	}
	inf := math32.Inf(1)
	return AABB{
		Min: mgl32.Vec3{-inf, -inf, -inf},
		Max: mgl32.Vec3{inf, inf, inf},
	}
}
