package physics

import (
	"cmp"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// SleepSettings controls when slow bodies stop being simulated.
type SleepSettings struct {
	Enabled          bool    `yaml:"enabled"`
	LinearThreshold  float32 `yaml:"linear_threshold"`
	AngularThreshold float32 `yaml:"angular_threshold"`
	Time             float32 `yaml:"time"`
}

func DefaultSleepSettings() SleepSettings {
	return SleepSettings{
		Enabled:          false,
		LinearThreshold:  SleepLinearThreshold,
		AngularThreshold: SleepAngularThreshold,
		Time:             SleepTime,
	}
}

// Settings is everything a World needs to step.
type Settings struct {
	Gravity     mgl32.Vec3
	Material    Material
	Solver      SolverSettings
	Sleep       SleepSettings
	PickImpulse float32
	Debug       bool
}

func DefaultSettings() Settings {
	return Settings{
		Gravity:     mgl32.Vec3{0, -9.81, 0},
		Material:    DefaultMaterial(),
		Solver:      DefaultSolverSettings(),
		Sleep:       DefaultSleepSettings(),
		PickImpulse: 3,
	}
}

// BodyPair identifies two touching bodies, lower ID first.
type BodyPair struct {
	A, B *RigidBody
}

func makePair(a, b *RigidBody) BodyPair {
	if a.ID > b.ID {
		return BodyPair{A: b, B: a}
	}
	return BodyPair{A: a, B: b}
}

func comparePairs(x, y BodyPair) int {
	if c := cmp.Compare(x.A.ID, y.A.ID); c != 0 {
		return c
	}
	return cmp.Compare(x.B.ID, y.B.ID)
}

// CollisionListener is told when two bodies start and stop touching.
type CollisionListener interface {
	OnCollisionEnter(a, b *RigidBody)
	OnCollisionExit(a, b *RigidBody)
}

// StepStats reports what one Step did.
type StepStats struct {
	Bodies             int
	Contacts           int
	PositionIterations int
	VelocityIterations int
	MaxPenetration     float32
	Started            []BodyPair
	Ended              []BodyPair
}

// World owns a set of bodies and advances them together.
type World struct {
	Settings Settings

	bodies   []*RigidBody
	forces   []ForceGenerator
	gravity  *Gravity
	contacts []Contact
	bounds   []AABB
	resolver *Resolver
	nextID   BodyID

	// Collision tracking for callbacks
	listener          CollisionListener
	activeCollisions  map[BodyPair]bool // pairs touching after the last step
	currentCollisions map[BodyPair]bool // pairs touching this step

	lastLogTime time.Time // rate-limit debug logs
}

func NewWorld(s Settings) *World {
	w := &World{
		Settings:          s,
		bodies:            make([]*RigidBody, 0),
		contacts:          make([]Contact, 0, 64),
		resolver:          NewResolver(s.Solver),
		activeCollisions:  make(map[BodyPair]bool),
		currentCollisions: make(map[BodyPair]bool),
	}
	w.gravity = &Gravity{Acceleration: s.Gravity}
	w.forces = append(w.forces, w.gravity)
	return w
}

// AddBody registers b and assigns its ID. Adding a body that already
// belongs to a world is a programmer error.
func (w *World) AddBody(b *RigidBody) {
	if b.owner != nil {
		panic(fmt.Sprintf("physics: body %q added twice", b.Name))
	}
	w.nextID++
	b.ID = w.nextID
	b.owner = w
	b.removed = false
	w.bodies = append(w.bodies, b)
}

// RemoveBody unregisters b. Any contact still holding it must not be resolved again.
func (w *World) RemoveBody(b *RigidBody) {
	if b.owner != w {
		return
	}
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	b.owner = nil
	b.removed = true
}

func (w *World) Bodies() []*RigidBody {
	return w.bodies
}

// AddForce registers a generator applied to every dynamic body each step.
func (w *World) AddForce(f ForceGenerator) {
	w.forces = append(w.forces, f)
}

// Contacts returns the contacts found by the last Step. They are only valid until the next one.
func (w *World) Contacts() []Contact {
	return w.contacts
}

func (w *World) SetListener(l CollisionListener) {
	w.listener = l
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float32) StepStats {
	w.contacts = w.contacts[:0]
	w.currentCollisions = make(map[BodyPair]bool)
	w.gravity.Acceleration = w.Settings.Gravity
	w.resolver.Settings = w.Settings.Solver

	// 1. Accumulate forces
	for _, b := range w.bodies {
		if b.IsStatic() || b.IsSleeping {
			continue
		}
		for _, f := range w.forces {
			f.UpdateForce(b, dt)
		}
		for _, f := range b.Forces {
			f.UpdateForce(b, dt)
		}
	}

	// 2. Integrate
	for _, b := range w.bodies {
		b.Integrate(dt)
	}

	// 3. Narrow phase over every pair
	w.detect()

	// 4. Resolve
	result := w.resolver.Resolve(w.contacts)

	// 5. Wake sleeping bodies hit hard enough, then notify listeners
	if w.Settings.Sleep.Enabled {
		w.wakeOnImpact()
	}
	stats := StepStats{
		Bodies:             len(w.bodies),
		Contacts:           len(w.contacts),
		PositionIterations: result.PositionIterations,
		VelocityIterations: result.VelocityIterations,
		MaxPenetration:     result.MaxPenetration,
	}
	stats.Started, stats.Ended = w.dispatchCollisionCallbacks()

	// 6. Sleep bookkeeping
	if w.Settings.Sleep.Enabled {
		for _, b := range w.bodies {
			b.trySleep(dt, w.Settings.Sleep)
		}
	}

	if w.Settings.Debug && time.Since(w.lastLogTime) >= time.Second {
		w.lastLogTime = time.Now()
		log.Printf("Physics: %d bodies, %d contacts, %d/%d iterations, max penetration %.4f",
			stats.Bodies, stats.Contacts, stats.PositionIterations, stats.VelocityIterations, stats.MaxPenetration)
	}

	return stats
}

// detect fills the contact buffer and records which pairs touch.
// Every pair is visited; the bounds check only skips the narrow phase.
func (w *World) detect() {
	if cap(w.bounds) < len(w.bodies) {
		w.bounds = make([]AABB, len(w.bodies))
	}
	w.bounds = w.bounds[:len(w.bodies)]
	for i, b := range w.bodies {
		if b.Collider != nil {
			w.bounds[i] = b.Collider.Bounds()
		}
	}

	for i := 0; i < len(w.bodies); i++ {
		a := w.bodies[i]
		if a.Collider == nil {
			continue
		}
		for j := i + 1; j < len(w.bodies); j++ {
			b := w.bodies[j]
			if b.Collider == nil || !w.bounds[i].Intersects(w.bounds[j]) {
				continue
			}
			before := len(w.contacts)
			w.contacts = Collide(a.Collider, b.Collider, w.Settings.Material, w.contacts)
			if len(w.contacts) > before {
				w.currentCollisions[makePair(a, b)] = true
			}
		}
	}
}

// wakeOnImpact wakes sleeping bodies in contacts with significant relative velocity.
// Settled stacks stay asleep because their contacts are slow.
func (w *World) wakeOnImpact() {
	wakeThreshold := w.Settings.Sleep.LinearThreshold * 2
	for i := range w.contacts {
		a, b := w.contacts[i].Bodies[0], w.contacts[i].Bodies[1]
		if b == nil {
			continue
		}
		if !a.IsSleeping && !b.IsSleeping {
			continue
		}
		if a.Velocity.Sub(b.Velocity).Len() > wakeThreshold {
			a.Wake()
			b.Wake()
		}
	}
}

// dispatchCollisionCallbacks compares this step's pairs with the last step's.
// Pairs are reported in (A.ID, B.ID) order.
func (w *World) dispatchCollisionCallbacks() (started, ended []BodyPair) {
	for pair := range w.currentCollisions {
		if !w.activeCollisions[pair] {
			started = append(started, pair)
		}
	}
	for pair := range w.activeCollisions {
		if !w.currentCollisions[pair] {
			ended = append(ended, pair)
		}
	}
	slices.SortFunc(started, comparePairs)
	slices.SortFunc(ended, comparePairs)

	if w.listener != nil {
		for _, pair := range started {
			w.listener.OnCollisionEnter(pair.A, pair.B)
		}
		for _, pair := range ended {
			w.listener.OnCollisionExit(pair.A, pair.B)
		}
	}

	// Swap buffers
	w.activeCollisions = w.currentCollisions
	return started, ended
}
