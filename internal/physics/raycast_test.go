package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRaycastNearestHit(t *testing.T) {
	w := NewWorld(DefaultSettings())
	near := sphereAt("Near", 1, mgl32.Vec3{0, 0, 5})
	far := sphereAt("Far", 1, mgl32.Vec3{0, 0, 10})
	w.AddBody(far)
	w.AddBody(near)

	hit, ok := w.Raycast(Ray{Origin: mgl32.Vec3{}, Direction: mgl32.Vec3{0, 0, 2}}, 100)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.Body != near {
		t.Errorf("Expected to hit 'Near', got '%s'", hit.Body.Name)
	}
	if !floatNear(hit.Distance, 4, 1e-5) {
		t.Errorf("Expected distance 4, got %f", hit.Distance)
	}
	if !vecNear(hit.Normal, mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("Expected normal (0,0,-1), got %v", hit.Normal)
	}

	if _, ok := w.Raycast(Ray{Origin: mgl32.Vec3{}, Direction: mgl32.Vec3{0, 0, 1}}, 3); ok {
		t.Error("Expected no hit within 3 units")
	}
	if _, ok := w.Raycast(Ray{Origin: mgl32.Vec3{}, Direction: mgl32.Vec3{0, 0, -1}}, 100); ok {
		t.Error("Expected no hit behind the origin")
	}
}

func TestRaycastRotatedBox(t *testing.T) {
	box := boxAt("Box", 1, mgl32.Vec3{0, 0, 5})
	box.SetOrientation(mgl32.QuatRotate(math.Pi/4, mgl32.Vec3{0, 1, 0}))

	ray := Ray{Origin: mgl32.Vec3{}, Direction: mgl32.Vec3{0, 0, 1}}
	hit, ok := RaycastCollider(ray, box.Collider, 100)
	if !ok {
		t.Fatal("Expected a hit")
	}

	want := float32(5 - math.Sqrt2)
	if !floatNear(hit.Distance, want, 1e-4) {
		t.Errorf("Expected distance %f to the leading edge, got %f", want, hit.Distance)
	}
	if hit.Body != box {
		t.Error("Expected the hit to report the box")
	}

	// Passes beside the box
	miss := Ray{Origin: mgl32.Vec3{2, 0, 0}, Direction: mgl32.Vec3{0, 0, 1}}
	if _, ok := RaycastCollider(miss, box.Collider, 100); ok {
		t.Error("Expected the ray beside the box to miss")
	}
}

func TestRaycastBoxFaceNormal(t *testing.T) {
	box := boxAt("Box", 0.5, mgl32.Vec3{0, 0, 0})

	ray := Ray{Origin: mgl32.Vec3{0, 5, 0}, Direction: mgl32.Vec3{0, -1, 0}}
	hit, ok := RaycastCollider(ray, box.Collider, 100)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if !floatNear(hit.Distance, 4.5, 1e-5) {
		t.Errorf("Expected distance 4.5, got %f", hit.Distance)
	}
	if !vecNear(hit.Normal, mgl32.Vec3{0, 1, 0}, 1e-5) {
		t.Errorf("Expected top face normal, got %v", hit.Normal)
	}
}

func TestRaycastPlane(t *testing.T) {
	ground := floor()

	down := Ray{Origin: mgl32.Vec3{1, 5, 1}, Direction: mgl32.Vec3{0, -1, 0}}
	hit, ok := RaycastCollider(down, ground.Collider, 100)
	if !ok {
		t.Fatal("Expected to hit the floor")
	}
	if !floatNear(hit.Distance, 5, 1e-5) {
		t.Errorf("Expected distance 5, got %f", hit.Distance)
	}
	if !vecNear(hit.Point, mgl32.Vec3{1, 0, 1}, 1e-5) {
		t.Errorf("Expected point (1,0,1), got %v", hit.Point)
	}

	up := Ray{Origin: mgl32.Vec3{0, -1, 0}, Direction: mgl32.Vec3{0, 1, 0}}
	if _, ok := RaycastCollider(up, ground.Collider, 100); ok {
		t.Error("Expected no hit from below the floor")
	}
}

func TestPickNudgesBody(t *testing.T) {
	w := NewWorld(DefaultSettings())
	ground := floor()
	ball := sphereAt("Ball", 0.5, mgl32.Vec3{0, 0.5, 0})
	ball.IsSleeping = true
	w.AddBody(ground)
	w.AddBody(ball)

	hit, ok := w.Pick(Ray{Origin: mgl32.Vec3{0, 5, 0}, Direction: mgl32.Vec3{0, -1, 0}})
	if !ok {
		t.Fatal("Expected a pick")
	}
	if hit.Body != ball {
		t.Errorf("Expected to pick the ball, got '%s'", hit.Body.Name)
	}
	if !floatNear(hit.Distance, 4, 1e-5) {
		t.Errorf("Expected distance 4, got %f", hit.Distance)
	}
	if !vecNear(ball.Velocity, mgl32.Vec3{0, -3, 0}, 1e-5) {
		t.Errorf("Expected nudge (0,-3,0), got %v", ball.Velocity)
	}
	if ball.IsSleeping {
		t.Error("Expected the pick to wake the ball")
	}
}

func TestPickStaticIsNotMoved(t *testing.T) {
	w := NewWorld(DefaultSettings())
	ground := floor()
	w.AddBody(ground)

	hit, ok := w.Pick(Ray{Origin: mgl32.Vec3{0, 5, 0}, Direction: mgl32.Vec3{0, -1, 0}})
	if !ok {
		t.Fatal("Expected to pick the floor")
	}
	if hit.Body != ground {
		t.Error("Expected the floor to be reported")
	}
	if ground.Velocity != (mgl32.Vec3{}) {
		t.Errorf("Expected the floor not to move, got %v", ground.Velocity)
	}

	if _, ok := w.Pick(Ray{Origin: mgl32.Vec3{0, 5, 0}, Direction: mgl32.Vec3{0, 1, 0}}); ok {
		t.Error("Expected no pick pointing at the sky")
	}
}
