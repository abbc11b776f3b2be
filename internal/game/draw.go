package game

import (
	"math"

	"rigid3d/internal/camera"
	"rigid3d/internal/engine"
	"rigid3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

func lookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.White
}

// drawObjects draws every visible body and returns how many were drawn.
func drawObjects(objects []*engine.GameObject, frustum *camera.Frustum, picked *engine.GameObject) int {
	drawn := 0
	for _, g := range objects {
		if !g.Active || g.Body == nil || g.Body.Collider == nil {
			continue
		}
		c := g.Body.Collider
		if !frustum.ContainsSphere(c.Position(), c.BoundingRadius()) {
			continue
		}

		color := lookupColor(g.Color)
		if g.Body.IsSleeping {
			color = rl.ColorBrightness(color, -0.4)
		}
		wire := rl.DarkGray
		if g == picked {
			wire = rl.Yellow
		}

		switch c.Kind {
		case physics.ShapeBox:
			drawBox(c, color, wire)
		case physics.ShapeSphere:
			center := toVector3(c.Position())
			rl.DrawSphere(center, c.Radius, color)
			rl.DrawSphereWires(center, c.Radius*1.01, 8, 12, wire)
		case physics.ShapePlane:
			drawPlane(c, color)
		}
		drawn++
	}
	return drawn
}

func drawBox(c *physics.Collider, color, wire rl.Color) {
	size := c.HalfExtents.Mul(2)
	center := c.Position()

	rl.PushMatrix()
	rl.Translatef(center[0], center[1], center[2])
	angle, axis := axisAngle(c.Body().Orientation())
	rl.Rotatef(angle, axis[0], axis[1], axis[2])
	rl.DrawCube(rl.Vector3{}, size[0], size[1], size[2], color)
	rl.DrawCubeWires(rl.Vector3{}, size[0], size[1], size[2], wire)
	rl.PopMatrix()
}

// drawPlane draws a finite patch of the plane around its reference point.
func drawPlane(c *physics.Collider, color rl.Color) {
	n := c.PlaneNormal()
	center := c.Position()

	rl.PushMatrix()
	rl.Translatef(center[0], center[1], center[2])
	up := mgl32.Vec3{0, 1, 0}
	if axis := up.Cross(n); axis.Len() > 1e-6 {
		angle := mgl32.RadToDeg(float32(math.Acos(float64(mgl32.Clamp(up.Dot(n), -1, 1)))))
		axis = axis.Normalize()
		rl.Rotatef(angle, axis[0], axis[1], axis[2])
	} else if up.Dot(n) < 0 {
		rl.Rotatef(180, 1, 0, 0)
	}
	rl.DrawPlane(rl.Vector3{Y: -0.01}, rl.Vector2{X: 40, Y: 40}, rl.ColorAlpha(color, 0.6))
	rl.PopMatrix()
}

// axisAngle converts q to degrees about a unit axis for rlgl.
func axisAngle(q mgl32.Quat) (float32, mgl32.Vec3) {
	q = q.Normalize()
	w := mgl32.Clamp(q.W, -1, 1)
	s := float32(math.Sqrt(float64(1 - w*w)))
	if s < 1e-4 {
		return 0, mgl32.Vec3{1, 0, 0}
	}
	angle := 2 * float32(math.Acos(float64(w)))
	return mgl32.RadToDeg(angle), q.V.Mul(1 / s)
}

func drawContacts(contacts []physics.Contact) {
	for i := range contacts {
		ct := &contacts[i]
		p := toVector3(ct.Point)
		rl.DrawSphere(p, 0.05, rl.Red)
		rl.DrawLine3D(p, toVector3(ct.Point.Add(ct.Normal.Mul(0.5))), rl.Yellow)
	}
}
