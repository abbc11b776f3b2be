package engine

import (
	"sync/atomic"

	"rigid3d/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
)

var lastUID atomic.Uint64

// GameObject is a named, tagged thing in a scene. Objects with a Body take
// part in the simulation; objects without one are markers.
type GameObject struct {
	UID    uint64
	Name   string
	Tags   []string
	Color  string // palette name, resolved by the renderer
	Active bool
	Body   *physics.RigidBody
	Scene  *Scene

	// Fired with the other object, which is nil when the other body has no object.
	OnCollisionEnter EventWithArg[*GameObject]
	OnCollisionExit  EventWithArg[*GameObject]
}

func NewGameObject(name string, body *physics.RigidBody) *GameObject {
	if body != nil && body.Name == "" {
		body.Name = name
	}
	return &GameObject{
		UID:    lastUID.Add(1),
		Name:   name,
		Active: true,
		Body:   body,
	}
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (g *GameObject) AddTag(tag string) {
	if !g.HasTag(tag) {
		g.Tags = append(g.Tags, tag)
	}
}

// Position is the body's position, or the origin for a marker.
func (g *GameObject) Position() mgl32.Vec3 {
	if g.Body == nil {
		return mgl32.Vec3{}
	}
	return g.Body.Position()
}

// SetActive takes the object's body out of the simulation or puts it back.
func (g *GameObject) SetActive(active bool) {
	if g.Active == active {
		return
	}
	g.Active = active
	if g.Scene == nil || g.Body == nil {
		return
	}
	if active {
		g.Scene.World.AddBody(g.Body)
	} else {
		g.Scene.World.RemoveBody(g.Body)
	}
}
