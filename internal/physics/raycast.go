package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

type RaycastHit struct {
	Body     *RigidBody
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// Raycast checks every collider and returns the closest hit within maxDistance
func (w *World) Raycast(ray Ray, maxDistance float32) (RaycastHit, bool) {
	ray.Direction = ray.Direction.Normalize()
	var closestHit RaycastHit
	closestHit.Distance = maxDistance
	hit := false

	for _, b := range w.bodies {
		if b.Collider == nil {
			continue
		}
		if hitInfo, ok := RaycastCollider(ray, b.Collider, maxDistance); ok {
			if hitInfo.Distance < closestHit.Distance {
				closestHit = hitInfo
				hit = true
			}
		}
	}

	return closestHit, hit
}

// Pick finds the closest body along the ray and nudges it along the ray
// direction. Static bodies and planes are reported but never moved.
func (w *World) Pick(ray Ray) (RaycastHit, bool) {
	hit, ok := w.Raycast(ray, math32.MaxFloat32)
	if !ok {
		return hit, false
	}
	if !hit.Body.IsStatic() {
		hit.Body.AddVelocity(ray.Direction.Normalize().Mul(w.Settings.PickImpulse))
	}
	return hit, true
}

// RaycastCollider intersects a ray with a single collider. ray.Direction must be unit length.
func RaycastCollider(ray Ray, c *Collider, maxDistance float32) (RaycastHit, bool) {
	var hit RaycastHit
	var ok bool
	switch c.Kind {
	case ShapeBox:
		hit, ok = raycastBox(ray, c, maxDistance)
	case ShapeSphere:
		hit, ok = raycastSphere(ray, c, maxDistance)
	case ShapePlane:
		hit, ok = raycastPlane(ray, c, maxDistance)
	}
	if ok {
		hit.Body = c.Body()
	}
	return hit, ok
}

// raycastBox runs the slab test in box space, so rotated boxes are handled exactly
func raycastBox(ray Ray, box *Collider, maxDistance float32) (RaycastHit, bool) {
	inverse := box.InverseWorldMatrix()
	origin := mgl32.TransformCoordinate(ray.Origin, inverse)
	direction := mgl32.TransformNormal(ray.Direction, inverse)
	h := box.HalfExtents

	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)
	for i := 0; i < 3; i++ {
		if direction[i] == 0 {
			if origin[i] < -h[i] || origin[i] > h[i] {
				return RaycastHit{}, false
			}
			continue
		}
		t1 := (-h[i] - origin[i]) / direction[i]
		t2 := (h[i] - origin[i]) / direction[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}

	if tmax < 0 || tmin > maxDistance {
		return RaycastHit{}, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t > maxDistance {
		return RaycastHit{}, false
	}

	// Normal of the face the local hit point lies on
	local := origin.Add(direction.Mul(t))
	axis := 0
	best := absf(absf(local[0]) - h[0])
	for i := 1; i < 3; i++ {
		if d := absf(absf(local[i]) - h[i]); d < best {
			best = d
			axis = i
		}
	}
	normal := box.Axis(axis)
	if local[axis] < 0 {
		normal = normal.Mul(-1)
	}

	point := ray.Origin.Add(ray.Direction.Mul(t))
	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

func raycastSphere(ray Ray, sphere *Collider, maxDistance float32) (RaycastHit, bool) {
	center := sphere.Position()
	radius := sphere.Radius

	oc := ray.Origin.Sub(center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return RaycastHit{}, false
	}

	root := math32.Sqrt(discriminant)
	t := (-b - root) / (2 * a)
	if t < 0 {
		t = (-b + root) / (2 * a)
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := ray.Origin.Add(ray.Direction.Mul(t))
	normal := safeNormalize(point.Sub(center), ray.Direction.Mul(-1))

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

// raycastPlane only reports hits on the open side of the plane
func raycastPlane(ray Ray, plane *Collider, maxDistance float32) (RaycastHit, bool) {
	normal := plane.PlaneNormal()
	denom := normal.Dot(ray.Direction)
	if denom >= 0 {
		return RaycastHit{}, false
	}

	t := (plane.PlaneOffset() - normal.Dot(ray.Origin)) / denom
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := ray.Origin.Add(ray.Direction.Mul(t))
	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}
