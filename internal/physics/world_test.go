package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type recordingListener struct {
	entered []BodyPair
	exited  []BodyPair
}

func (l *recordingListener) OnCollisionEnter(a, b *RigidBody) {
	l.entered = append(l.entered, BodyPair{A: a, B: b})
}

func (l *recordingListener) OnCollisionExit(a, b *RigidBody) {
	l.exited = append(l.exited, BodyPair{A: a, B: b})
}

func zeroGravity() Settings {
	s := DefaultSettings()
	s.Gravity = mgl32.Vec3{}
	return s
}

func TestAddBodyAssignsIDs(t *testing.T) {
	w := NewWorld(DefaultSettings())
	a := NewSphereBody("A", 1, 1)
	b := NewSphereBody("B", 1, 1)
	w.AddBody(a)
	w.AddBody(b)

	if a.ID == 0 || b.ID == 0 {
		t.Error("Expected non-zero IDs")
	}
	if a.ID == b.ID {
		t.Error("Expected unique IDs")
	}
	if len(w.Bodies()) != 2 {
		t.Errorf("Expected 2 bodies, got %d", len(w.Bodies()))
	}
}

func TestAddBodyTwicePanics(t *testing.T) {
	w := NewWorld(DefaultSettings())
	b := NewSphereBody("A", 1, 1)
	w.AddBody(b)

	defer func() {
		if recover() == nil {
			t.Error("Expected a panic when adding a body twice")
		}
	}()
	w.AddBody(b)
}

func TestRemoveBody(t *testing.T) {
	w := NewWorld(DefaultSettings())
	a := NewSphereBody("A", 1, 1)
	b := NewSphereBody("B", 1, 1)
	w.AddBody(a)
	w.AddBody(b)

	w.RemoveBody(a)

	if len(w.Bodies()) != 1 || w.Bodies()[0] != b {
		t.Error("Expected only B to remain")
	}

	// Removed bodies can be registered again
	w.AddBody(a)
	if len(w.Bodies()) != 2 {
		t.Errorf("Expected 2 bodies after re-adding, got %d", len(w.Bodies()))
	}
}

func TestStepAppliesGravity(t *testing.T) {
	w := NewWorld(DefaultSettings())
	ball := NewSphereBody("Ball", 2, 0.5)
	ball.SetPosition(mgl32.Vec3{0, 10, 0})
	w.AddBody(ball)

	w.Step(0.1)

	if !floatNear(ball.Velocity.Y(), -0.981, 1e-4) {
		t.Errorf("Expected velocity -0.981, got %f", ball.Velocity.Y())
	}
	if !floatNear(ball.Position().Y(), 10-0.0981, 1e-4) {
		t.Errorf("Expected y %f, got %f", 10-0.0981, ball.Position().Y())
	}

	// Gravity follows the settings
	w.Settings.Gravity = mgl32.Vec3{}
	before := ball.Velocity
	w.Step(0.1)
	if !vecNear(ball.Velocity, before, 1e-6) {
		t.Errorf("Expected no acceleration with zero gravity, got %v", ball.Velocity)
	}
}

func TestBodyForcesApplyOnlyToTheirBody(t *testing.T) {
	w := NewWorld(zeroGravity())
	pushed := NewSphereBody("Pushed", 1, 0.5)
	pushed.Forces = append(pushed.Forces, &Gravity{Acceleration: mgl32.Vec3{1, 0, 0}})
	idle := NewSphereBody("Idle", 1, 0.5)
	idle.SetPosition(mgl32.Vec3{0, 0, 10})
	w.AddBody(pushed)
	w.AddBody(idle)

	w.Step(1)

	if !vecNear(pushed.Velocity, mgl32.Vec3{1, 0, 0}, 1e-6) {
		t.Errorf("Expected pushed velocity (1,0,0), got %v", pushed.Velocity)
	}
	if idle.Velocity != (mgl32.Vec3{}) {
		t.Errorf("Expected idle body untouched, got %v", idle.Velocity)
	}
}

func TestWorldForcesApplyToEveryBody(t *testing.T) {
	w := NewWorld(zeroGravity())
	w.AddForce(&Drag{Linear: 1})
	a := NewSphereBody("A", 1, 0.5)
	a.Velocity = mgl32.Vec3{1, 0, 0}
	b := NewSphereBody("B", 1, 0.5)
	b.SetPosition(mgl32.Vec3{0, 0, 10})
	b.Velocity = mgl32.Vec3{0, 0, 1}
	w.AddBody(a)
	w.AddBody(b)

	w.Step(0.1)

	if a.Velocity.X() >= 1 || b.Velocity.Z() >= 1 {
		t.Errorf("Expected drag to slow both bodies, got %v and %v", a.Velocity, b.Velocity)
	}
}

func TestSphereRestsOnPlane(t *testing.T) {
	w := NewWorld(DefaultSettings())
	w.AddBody(floor())
	ball := NewSphereBody("Ball", 1, 0.5)
	ball.SetPosition(mgl32.Vec3{0, 0.5, 0})
	w.AddBody(ball)

	for i := 0; i < 600; i++ {
		w.Step(1.0 / 60)
		if y := ball.Position().Y(); i > 60 && (y < 0.48 || y > 0.51) {
			t.Fatalf("Step %d: Expected the ball to rest near y=0.5, got %f", i, y)
		}
	}
	if ball.Velocity.Len() > 0.05 {
		t.Errorf("Expected the ball at rest, got velocity %v", ball.Velocity)
	}
}

func TestBoxRestsOnPlane(t *testing.T) {
	w := NewWorld(DefaultSettings())
	w.AddBody(floor())
	box := NewBoxBody("Box", 1, mgl32.Vec3{0.5, 0.5, 0.5})
	box.SetPosition(mgl32.Vec3{0, 0.5, 0})
	w.AddBody(box)

	var stats StepStats
	for i := 0; i < 600; i++ {
		stats = w.Step(1.0 / 60)
		if y := box.Position().Y(); i > 60 && (y < 0.46 || y > 0.52) {
			t.Fatalf("Step %d: Expected the box to rest near y=0.5, got %f", i, y)
		}
	}

	p := box.Position()
	if mgl32.Abs(p.X()) > 0.05 || mgl32.Abs(p.Z()) > 0.05 {
		t.Errorf("Expected the box to stay in place, got %v", p)
	}
	if box.Velocity.Len() > 0.1 {
		t.Errorf("Expected the box at rest, got velocity %v", box.Velocity)
	}
	if box.Axis(1).Dot(mgl32.Vec3{0, 1, 0}) < 0.99 {
		t.Errorf("Expected the box to stay upright, got up axis %v", box.Axis(1))
	}
	if stats.Contacts < 3 || stats.Contacts > 4 {
		t.Errorf("Expected the bottom corners in contact, got %d contacts", stats.Contacts)
	}
	if len(w.Contacts()) != stats.Contacts {
		t.Errorf("Expected Contacts() to hold the last step's %d contacts, got %d", stats.Contacts, len(w.Contacts()))
	}
}

func TestDroppedBoxSettles(t *testing.T) {
	w := NewWorld(DefaultSettings())
	w.AddBody(floor())
	box := NewBoxBody("Box", 1, mgl32.Vec3{0.5, 0.5, 0.5})
	box.SetPosition(mgl32.Vec3{0, 2, 0})
	box.SetOrientation(mgl32.QuatRotate(0.3, mgl32.Vec3{1, 0, 1}.Normalize()))
	w.AddBody(box)

	for i := 0; i < 900; i++ {
		w.Step(1.0 / 60)
	}

	if y := box.Position().Y(); y < 0.45 || y > 0.55 {
		t.Errorf("Expected the box to settle on a face near y=0.5, got %f", y)
	}
	if box.Velocity.Len() > 0.1 {
		t.Errorf("Expected the box at rest, got velocity %v", box.Velocity)
	}
}

func TestCollisionEnterExit(t *testing.T) {
	w := NewWorld(zeroGravity())
	listener := &recordingListener{}
	w.SetListener(listener)

	ground := floor()
	ball := NewSphereBody("Ball", 1, 0.5)
	ball.SetPosition(mgl32.Vec3{0, 0.45, 0})
	w.AddBody(ground)
	w.AddBody(ball)

	stats := w.Step(1.0 / 60)
	if len(listener.entered) != 1 || len(stats.Started) != 1 {
		t.Fatalf("Expected 1 enter, got %d (stats %d)", len(listener.entered), len(stats.Started))
	}
	if listener.entered[0].A != ground || listener.entered[0].B != ball {
		t.Error("Expected the pair ordered by ID: floor then ball")
	}

	// Still touching: no new events
	ball.SetPosition(mgl32.Vec3{0, 0.45, 0})
	ball.Velocity = mgl32.Vec3{}
	w.Step(1.0 / 60)
	if len(listener.entered) != 1 || len(listener.exited) != 0 {
		t.Errorf("Expected no new events, got %d enters and %d exits", len(listener.entered), len(listener.exited))
	}

	ball.SetPosition(mgl32.Vec3{0, 10, 0})
	ball.Velocity = mgl32.Vec3{}
	stats = w.Step(1.0 / 60)
	if len(listener.exited) != 1 || len(stats.Ended) != 1 {
		t.Fatalf("Expected 1 exit, got %d (stats %d)", len(listener.exited), len(stats.Ended))
	}
	if listener.exited[0].B != ball {
		t.Error("Expected the exit to name the ball")
	}
}

func TestCollisionEventsOrderedByID(t *testing.T) {
	w := NewWorld(zeroGravity())
	listener := &recordingListener{}
	w.SetListener(listener)

	w.AddBody(floor())
	var balls []*RigidBody
	for i := 0; i < 8; i++ {
		ball := sphereAt("Ball", 0.5, mgl32.Vec3{float32(i) * 2, 0.45, 0})
		w.AddBody(ball)
		balls = append(balls, ball)
	}

	sorted := func(pairs []BodyPair) bool {
		for i := 1; i < len(pairs); i++ {
			if comparePairs(pairs[i-1], pairs[i]) >= 0 {
				return false
			}
		}
		return true
	}

	stats := w.Step(1.0 / 60)
	if len(stats.Started) != len(balls) {
		t.Fatalf("Expected %d enters, got %d", len(balls), len(stats.Started))
	}
	if !sorted(stats.Started) || !sorted(listener.entered) {
		t.Errorf("Expected enters in ID order, got %v", listener.entered)
	}

	for _, ball := range balls {
		ball.SetPosition(ball.Position().Add(mgl32.Vec3{0, 10, 0}))
		ball.Velocity = mgl32.Vec3{}
	}
	stats = w.Step(1.0 / 60)
	if len(stats.Ended) != len(balls) {
		t.Fatalf("Expected %d exits, got %d", len(balls), len(stats.Ended))
	}
	if !sorted(stats.Ended) || !sorted(listener.exited) {
		t.Errorf("Expected exits in ID order, got %v", listener.exited)
	}
}

func TestSleepingBodyStaysPut(t *testing.T) {
	s := DefaultSettings()
	s.Sleep.Enabled = true
	w := NewWorld(s)
	w.AddBody(floor())
	ball := NewSphereBody("Ball", 1, 0.5)
	ball.SetPosition(mgl32.Vec3{0, 0.5, 0})
	ball.CanSleep = true
	w.AddBody(ball)

	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60)
	}
	if !ball.IsSleeping {
		t.Fatal("Expected the resting ball to fall asleep")
	}

	before := ball.Position()
	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60)
	}
	if !vecNear(ball.Position(), before, 1e-5) {
		t.Errorf("Expected a sleeping ball not to move, got %v from %v", ball.Position(), before)
	}
	if !ball.IsSleeping {
		t.Error("Expected the ball to stay asleep")
	}
}

func TestSleepingBodyWakesOnImpact(t *testing.T) {
	s := zeroGravity()
	s.Sleep.Enabled = true
	w := NewWorld(s)

	sleeper := NewSphereBody("Sleeper", 1, 0.5)
	sleeper.CanSleep = true
	sleeper.IsSleeping = true
	striker := NewSphereBody("Striker", 1, 0.5)
	striker.SetPosition(mgl32.Vec3{1.1, 0, 0})
	striker.Velocity = mgl32.Vec3{-10, 0, 0}
	w.AddBody(sleeper)
	w.AddBody(striker)

	w.Step(1.0 / 60)

	if sleeper.IsSleeping {
		t.Error("Expected the struck body to wake")
	}
	if sleeper.Velocity.X() >= 0 {
		t.Errorf("Expected the struck body pushed along -X, got %v", sleeper.Velocity)
	}
}

func TestSleepDisabledByDefault(t *testing.T) {
	w := NewWorld(DefaultSettings())
	w.AddBody(floor())
	ball := NewSphereBody("Ball", 1, 0.5)
	ball.SetPosition(mgl32.Vec3{0, 0.5, 0})
	ball.CanSleep = true
	w.AddBody(ball)

	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60)
	}
	if ball.IsSleeping {
		t.Error("Expected no sleeping when sleep is disabled")
	}
}

func TestIndependentWorlds(t *testing.T) {
	a := NewWorld(DefaultSettings())
	b := NewWorld(zeroGravity())
	ballA := NewSphereBody("A", 1, 0.5)
	ballB := NewSphereBody("B", 1, 0.5)
	a.AddBody(ballA)
	b.AddBody(ballB)

	a.Step(0.1)
	b.Step(0.1)

	if ballA.Velocity.Y() >= 0 {
		t.Error("Expected world A to apply gravity")
	}
	if ballB.Velocity != (mgl32.Vec3{}) {
		t.Errorf("Expected world B to leave its ball alone, got %v", ballB.Velocity)
	}
}
