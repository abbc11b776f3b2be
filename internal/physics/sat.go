package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Cross products shorter than this come from near-parallel edges and are skipped
	minAxisLength = 0.01

	// Below this the two edge lines are treated as parallel. For unit axes
	// |den| is |a x b|^2, so the minAxisLength skip already keeps chosen edge
	// axes above minAxisLength^2; this only catches rounding at that boundary.
	edgeParallelEpsilon = minAxisLength * minAxisLength / 2
)

// satAxes returns the 15 candidate separating axes for two boxes:
// box a's face normals, box b's face normals, then a[i] x b[j] for i, j in 0..2.
func satAxes(a, b *Collider) [15]mgl32.Vec3 {
	var axes [15]mgl32.Vec3
	for i := 0; i < 3; i++ {
		axes[i] = a.Axis(i)
		axes[3+i] = b.Axis(i)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axes[6+3*i+j] = axes[i].Cross(axes[3+j])
		}
	}
	return axes
}

// projectBox returns the half-length of the box projected onto a unit axis
func projectBox(c *Collider, axis mgl32.Vec3) float32 {
	h := c.HalfExtents
	return h[0]*absf(axis.Dot(c.Axis(0))) +
		h[1]*absf(axis.Dot(c.Axis(1))) +
		h[2]*absf(axis.Dot(c.Axis(2)))
}

// overlapOnAxis returns how far the two boxes overlap along axis; negative means separated
func overlapOnAxis(a, b *Collider, axis, centerOffset mgl32.Vec3) float32 {
	axis = axis.Normalize()
	distance := absf(centerOffset.Dot(axis))
	return projectBox(a, axis) + projectBox(b, axis) - distance
}

// supportVertex returns the box-local corner selected by the signs of normal
// against each box axis. towards=true picks the corner furthest along normal.
func supportVertex(c *Collider, normal mgl32.Vec3, towards bool) mgl32.Vec3 {
	v := c.HalfExtents
	for i := 0; i < 3; i++ {
		d := normal.Dot(c.Axis(i))
		if (towards && d < 0) || (!towards && d > 0) {
			v[i] = -v[i]
		}
	}
	return v
}

// collideBoxBox runs the separating axis test and emits one contact at the
// deepest point along the axis of least overlap.
func collideBoxBox(a, b *Collider, m Material, out []Contact) []Contact {
	axes := satAxes(a, b)
	centerOffset := a.Position().Sub(b.Position())

	best := -1
	bestFace := -1
	minOverlap := float32(math32.MaxFloat32)
	minFaceOverlap := float32(math32.MaxFloat32)

	for i, axis := range axes {
		if axis.Len() < minAxisLength {
			continue
		}
		overlap := overlapOnAxis(a, b, axis, centerOffset)
		if overlap < 0 {
			return out
		}
		if overlap < minOverlap {
			minOverlap = overlap
			best = i
		}
		if i < 6 && overlap < minFaceOverlap {
			minFaceOverlap = overlap
			bestFace = i
		}
	}
	if best < 0 {
		return out
	}

	if best >= 6 {
		if contact, ok := edgeEdgeContact(a, b, best-6, centerOffset, minOverlap, m); ok {
			return append(out, contact)
		}
		// Parallel edge lines have no unique closest points; use the best face instead
		best = bestFace
	}

	return append(out, faceContact(a, b, best, centerOffset, minOverlap, m))
}

// faceContact handles the face-vertex case for axis index 0..5.
func faceContact(a, b *Collider, axisIndex int, centerOffset mgl32.Vec3, penetration float32, m Material) Contact {
	var normal mgl32.Vec3
	if axisIndex < 3 {
		normal = a.Axis(axisIndex)
	} else {
		normal = b.Axis(axisIndex - 3)
	}
	normal = normal.Normalize()
	if normal.Dot(centerOffset) < 0 {
		normal = normal.Mul(-1)
	}

	var point mgl32.Vec3
	if axisIndex < 3 {
		// Face of a against the vertex of b that reaches furthest toward a
		point = mgl32.TransformCoordinate(supportVertex(b, normal, true), b.WorldMatrix())
	} else {
		point = mgl32.TransformCoordinate(supportVertex(a, normal, false), a.WorldMatrix())
	}

	return NewContact(point, normal, penetration, a.Body(), b.Body(), m)
}

// edgeEdgeContact handles the edge-edge case. edgeIndex is 3*i+j for a's axis i and b's axis j.
// Returns false when the two edges are parallel.
func edgeEdgeContact(a, b *Collider, edgeIndex int, centerOffset mgl32.Vec3, penetration float32, m Material) (Contact, bool) {
	ia := edgeIndex / 3
	ib := edgeIndex % 3

	axisA := a.Axis(ia)
	axisB := b.Axis(ib)

	lenA := axisA.LenSqr()
	lenB := axisB.LenSqr()
	dot := axisA.Dot(axisB)
	den := dot*dot - lenA*lenB
	if absf(den) < edgeParallelEpsilon {
		return Contact{}, false
	}

	normal := axisA.Cross(axisB).Normalize()
	if normal.Dot(centerOffset) < 0 {
		normal = normal.Mul(-1)
	}

	// Mid-point of the touching edge on each box: zero along the edge direction,
	// the other two coordinates picked by the normal's side
	midA := a.HalfExtents
	midB := b.HalfExtents
	midA[ia] = 0
	midB[ib] = 0
	for i := 0; i < 3; i++ {
		if i != ia && normal.Dot(a.Axis(i)) > 0 {
			midA[i] = -midA[i]
		}
		if i != ib && normal.Dot(b.Axis(i)) < 0 {
			midB[i] = -midB[i]
		}
	}
	midA = mgl32.TransformCoordinate(midA, a.WorldMatrix())
	midB = mgl32.TransformCoordinate(midB, b.WorldMatrix())

	// Closest points between the lines midA + s*axisA and midB + t*axisB
	mid := midA.Sub(midB)
	projA := mid.Dot(axisA)
	projB := mid.Dot(axisB)

	s := (lenB*projA - projB*dot) / den
	t := (projA*dot - lenA*projB) / den

	closestA := midA.Add(axisA.Mul(s))
	closestB := midB.Add(axisB.Mul(t))
	point := closestA.Add(closestB).Mul(0.5)

	return NewContact(point, normal, penetration, a.Body(), b.Body(), m), true
}
