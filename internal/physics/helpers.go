package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	worldUp      = mgl32.Vec3{0, 1, 0}
	worldForward = mgl32.Vec3{0, 0, 1}
)

// skew returns the matrix S with S*v == r.Cross(v)
func skew(r mgl32.Vec3) mgl32.Mat3 {
	return mgl32.Mat3FromRows(
		mgl32.Vec3{0, -r[2], r[1]},
		mgl32.Vec3{r[2], 0, -r[0]},
		mgl32.Vec3{-r[1], r[0], 0},
	)
}

// safeNormalize returns v normalized, or fallback when v is too short to have a direction
func safeNormalize(v, fallback mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < 1e-6 {
		return fallback
	}
	return v.Mul(1 / l)
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func absf(x float32) float32 {
	return math32.Abs(x)
}

// rotationMatrix extracts the 3x3 rotation of a unit quaternion
func rotationMatrix(q mgl32.Quat) mgl32.Mat3 {
	return q.Mat4().Mat3()
}
