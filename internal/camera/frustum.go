package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	nearClip float32 = 0.1
	farClip  float32 = 1000.0
)

// Frustum holds the six view planes used to skip off-screen bodies.
type Frustum struct {
	planes [6]plane // left, right, bottom, top, near, far
}

// plane is n·p + d = 0 with n pointing into the frustum
type plane struct {
	normal   mgl32.Vec3
	distance float32
}

// FrustumFromMatrix extracts the planes of a combined projection*view matrix
// (Gribb/Hartmann).
func FrustumFromMatrix(vp mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := vp.Row(0), vp.Row(1), vp.Row(2), vp.Row(3)

	var f Frustum
	f.planes[0] = makePlane(r3.Add(r0))
	f.planes[1] = makePlane(r3.Sub(r0))
	f.planes[2] = makePlane(r3.Add(r1))
	f.planes[3] = makePlane(r3.Sub(r1))
	f.planes[4] = makePlane(r3.Add(r2))
	f.planes[5] = makePlane(r3.Sub(r2))
	return f
}

// Frustum returns the camera's view frustum for the given aspect ratio.
func (c *OrbitCamera) Frustum(aspect float32) Frustum {
	proj := mgl32.Perspective(mgl32.DegToRad(45), aspect, nearClip, farClip)
	p := c.Position()
	view := mgl32.LookAtV(
		mgl32.Vec3{p.X, p.Y, p.Z},
		mgl32.Vec3{c.Target.X, c.Target.Y, c.Target.Z},
		mgl32.Vec3{0, 1, 0},
	)
	return FrustumFromMatrix(proj.Mul4(view))
}

func makePlane(v mgl32.Vec4) plane {
	n := v.Vec3()
	length := n.Len()
	if length == 0 {
		return plane{normal: n, distance: v.W()}
	}
	return plane{normal: n.Mul(1 / length), distance: v.W() / length}
}

// ContainsSphere reports whether a sphere is at least partly inside.
func (f *Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for i := range f.planes {
		if f.planes[i].normal.Dot(center)+f.planes[i].distance < -radius {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsPoint(point mgl32.Vec3) bool {
	return f.ContainsSphere(point, 0)
}
