package engine

import (
	"log"

	"rigid3d/internal/physics"
)

// PickEvent is published when a ray pick hits something.
type PickEvent struct {
	Object *GameObject // nil when the body has no object
	Hit    physics.RaycastHit
}

// Scene groups game objects around one physics world and routes the
// world's collision notifications back to them.
type Scene struct {
	Name        string
	GameObjects []*GameObject
	World       *physics.World

	OnStep  EventWithArg[physics.StepStats]
	OnPick  EventWithArg[PickEvent]
	OnClear Event

	uidMap  map[uint64]*GameObject
	bodyMap map[*physics.RigidBody]*GameObject
}

func NewScene(name string, settings physics.Settings) *Scene {
	s := &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		World:       physics.NewWorld(settings),
		uidMap:      make(map[uint64]*GameObject),
		bodyMap:     make(map[*physics.RigidBody]*GameObject),
	}
	s.World.SetListener(s)
	return s
}

// AddGameObject adds g and registers its body with the world when g is active.
func (s *Scene) AddGameObject(g *GameObject) {
	if g.Scene == s {
		return
	}
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	if s.bodyMap == nil {
		s.bodyMap = make(map[*physics.RigidBody]*GameObject)
	}
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
	s.uidMap[g.UID] = g
	if g.Body != nil {
		s.bodyMap[g.Body] = g
		if g.Active {
			s.World.AddBody(g.Body)
		}
	}
}

func (s *Scene) RemoveGameObject(g *GameObject) {
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			delete(s.uidMap, g.UID)
			if g.Body != nil {
				delete(s.bodyMap, g.Body)
				s.World.RemoveBody(g.Body)
			}
			g.Scene = nil
			return
		}
	}
}

// Clear removes every object and fires OnClear.
func (s *Scene) Clear() {
	for len(s.GameObjects) > 0 {
		s.RemoveGameObject(s.GameObjects[len(s.GameObjects)-1])
	}
	s.OnClear.Invoke()
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

// FindByBody returns the object owning b, or nil.
func (s *Scene) FindByBody(b *physics.RigidBody) *GameObject {
	if b == nil {
		return nil
	}
	return s.bodyMap[b]
}

// Step advances the world by dt and publishes the result.
func (s *Scene) Step(dt float32) physics.StepStats {
	stats := s.World.Step(dt)
	s.OnStep.Invoke(stats)
	return stats
}

// Pick casts ray into the world, nudging whatever it hits.
func (s *Scene) Pick(ray physics.Ray) (PickEvent, bool) {
	hit, ok := s.World.Pick(ray)
	if !ok {
		return PickEvent{}, false
	}
	ev := PickEvent{Object: s.FindByBody(hit.Body), Hit: hit}
	if s.World.Settings.Debug {
		log.Printf("Scene: picked '%s' at distance %.2f", hit.Body.Name, hit.Distance)
	}
	s.OnPick.Invoke(ev)
	return ev, true
}

func (s *Scene) OnCollisionEnter(a, b *physics.RigidBody) {
	ga, gb := s.FindByBody(a), s.FindByBody(b)
	if ga != nil {
		ga.OnCollisionEnter.Invoke(gb)
	}
	if gb != nil {
		gb.OnCollisionEnter.Invoke(ga)
	}
}

func (s *Scene) OnCollisionExit(a, b *physics.RigidBody) {
	ga, gb := s.FindByBody(a), s.FindByBody(b)
	if ga != nil {
		ga.OnCollisionExit.Invoke(gb)
	}
	if gb != nil {
		gb.OnCollisionExit.Invoke(ga)
	}
}
