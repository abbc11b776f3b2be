package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

func collideSphereSphere(a, b *Collider, m Material, out []Contact) []Contact {
	centerA := a.Position()
	centerB := b.Position()

	offset := centerA.Sub(centerB)
	distance := offset.Len()

	if distance >= a.Radius+b.Radius {
		return out
	}

	point := centerB.Add(offset.Mul(0.5))
	normal := safeNormalize(offset, worldUp)
	penetration := a.Radius + b.Radius - distance

	return append(out, NewContact(point, normal, penetration, a.Body(), b.Body(), m))
}

// collideSpherePlane treats the plane as a half-space; its body never takes part in the contact.
func collideSpherePlane(sphere, plane *Collider, m Material, out []Contact) []Contact {
	center := sphere.Position()
	normal := plane.PlaneNormal()

	distance := normal.Dot(center) - plane.PlaneOffset()
	if distance >= sphere.Radius {
		return out
	}

	penetration := sphere.Radius - distance
	point := center.Sub(normal.Mul(sphere.Radius - penetration/2))

	return append(out, NewContact(point, normal, penetration, sphere.Body(), nil, m))
}

// collideBoxPlane emits one contact for every box corner below the plane.
func collideBoxPlane(box, plane *Collider, m Material, out []Contact) []Contact {
	normal := plane.PlaneNormal()
	d := plane.PlaneOffset()

	if box.BoundingRadius() < normal.Dot(box.Position())-d {
		return out
	}

	for _, vertex := range box.Vertices() {
		distance := normal.Dot(vertex) - d
		if distance >= 0 {
			continue
		}
		out = append(out, NewContact(vertex, normal, -distance, box.Body(), nil, m))
	}
	return out
}

// collideBoxSphere clamps the sphere center into the box to find the closest surface point.
func collideBoxSphere(box, sphere *Collider, m Material, out []Contact) []Contact {
	center := sphere.Position()
	local := mgl32.TransformCoordinate(center, box.InverseWorldMatrix())
	h := box.HalfExtents

	if local.Len() > box.BoundingRadius()+sphere.Radius {
		return out
	}

	closest := mgl32.Vec3{
		clamp(local[0], -h[0], h[0]),
		clamp(local[1], -h[1], h[1]),
		clamp(local[2], -h[2], h[2]),
	}

	distance := closest.Sub(local).Len()
	if distance > sphere.Radius {
		return out
	}

	if distance < 1e-6 {
		return append(out, boxSphereInside(box, sphere, local, m))
	}

	point := mgl32.TransformCoordinate(closest, box.WorldMatrix())
	normal := point.Sub(center).Normalize()
	penetration := sphere.Radius - distance

	return append(out, NewContact(point, normal, penetration, box.Body(), sphere.Body(), m))
}

// boxSphereInside handles a sphere center inside the box: push out through the nearest face.
func boxSphereInside(box, sphere *Collider, local mgl32.Vec3, m Material) Contact {
	h := box.HalfExtents

	axis := 0
	depth := h[0] - absf(local[0])
	for i := 1; i < 3; i++ {
		if d := h[i] - absf(local[i]); d < depth {
			depth = d
			axis = i
		}
	}

	// Face point nearest to the center
	face := local
	if local[axis] < 0 {
		face[axis] = -h[axis]
	} else {
		face[axis] = h[axis]
	}

	// Sphere leaves through that face, so the box is pushed the other way
	outward := box.Axis(axis)
	if local[axis] < 0 {
		outward = outward.Mul(-1)
	}

	point := mgl32.TransformCoordinate(face, box.WorldMatrix())
	return NewContact(point, outward.Mul(-1), sphere.Radius+depth, box.Body(), sphere.Body(), m)
}
