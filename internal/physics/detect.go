package physics

// collideFunc appends the contacts between a and b to out.
// Contacts are built with a in slot A, so normals point from b toward a.
type collideFunc func(a, b *Collider, m Material, out []Contact) []Contact

// swapped reuses fn for the reverse pair order
func swapped(fn collideFunc) collideFunc {
	return func(a, b *Collider, m Material, out []Contact) []Contact {
		return fn(b, a, m, out)
	}
}

// collisionTable dispatches on [a.Kind][b.Kind]. Plane-plane has no routine.
var collisionTable = [shapeKindCount][shapeKindCount]collideFunc{
	ShapeBox: {
		ShapeBox:    collideBoxBox,
		ShapeSphere: collideBoxSphere,
		ShapePlane:  collideBoxPlane,
	},
	ShapeSphere: {
		ShapeBox:    swapped(collideBoxSphere),
		ShapeSphere: collideSphereSphere,
		ShapePlane:  collideSpherePlane,
	},
	ShapePlane: {
		ShapeBox:    swapped(collideBoxPlane),
		ShapeSphere: swapped(collideSpherePlane),
	},
}

// Collide runs the narrow phase for one collider pair and appends the result to out.
func Collide(a, b *Collider, m Material, out []Contact) []Contact {
	if a == nil || b == nil || a.Kind >= shapeKindCount || b.Kind >= shapeKindCount {
		return out
	}
	if !a.Movable && !b.Movable {
		return out
	}
	fn := collisionTable[a.Kind][b.Kind]
	if fn == nil {
		return out
	}
	return fn(a, b, m, out)
}
