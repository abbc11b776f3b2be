package world

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"rigid3d/internal/engine"
	"rigid3d/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
)

// --- JSON types ---

type SceneFile struct {
	Name    string      `json:"name,omitempty"`
	Objects []ObjectDef `json:"objects"`
}

type ObjectDef struct {
	Name     string     `json:"name"`
	Tags     []string   `json:"tags,omitempty"`
	Color    string     `json:"color,omitempty"`
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation"` // Euler degrees, X then Y then Z
	// W, X, Y, Z. Takes precedence over Rotation when present.
	Orientation *[4]float32       `json:"orientation,omitempty"`
	Components  []json.RawMessage `json:"components"`
}

type componentHeader struct {
	Type string `json:"type"`
}

type boxColliderDef struct {
	Type   string     `json:"type"`
	Size   [3]float32 `json:"size"` // full edge lengths
	Offset [3]float32 `json:"offset,omitzero"`
}

type sphereColliderDef struct {
	Type   string     `json:"type"`
	Radius float32    `json:"radius"`
	Offset [3]float32 `json:"offset,omitzero"`
}

type planeColliderDef struct {
	Type   string     `json:"type"`
	Normal [3]float32 `json:"normal"`
	Offset [3]float32 `json:"offset,omitzero"`
}

type rigidbodyDef struct {
	Type            string     `json:"type"`
	Mass            float32    `json:"mass,omitempty"`
	Velocity        [3]float32 `json:"velocity,omitzero"`
	AngularVelocity [3]float32 `json:"angularVelocity,omitzero"`
	Static          bool       `json:"static,omitempty"`
	CanSleep        bool       `json:"canSleep,omitempty"`
	Drag            float32    `json:"drag,omitempty"`
	AngularDrag     float32    `json:"angularDrag,omitempty"`
}

type springDef struct {
	Type       string     `json:"type"`
	Anchor     [3]float32 `json:"anchor"`
	BodyPoint  [3]float32 `json:"bodyPoint,omitzero"`
	Stiffness  float32    `json:"stiffness"`
	RestLength float32    `json:"restLength,omitempty"`
	Damping    float32    `json:"damping,omitempty"`
}

// objectParts collects the components of one object before its body is built.
type objectParts struct {
	collider  *physics.Collider
	rigidbody *rigidbodyDef
	springs   []*physics.Spring
}

// --- Loading ---

// LoadScene adds every object in the scene file at path to the current scene.
func (w *World) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}

	var sf SceneFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse scene %s: %w", path, err)
	}
	if sf.Name != "" {
		w.Scene.Name = sf.Name
	}

	for i, objDef := range sf.Objects {
		g, err := buildObject(objDef)
		if err != nil {
			return fmt.Errorf("scene %s: object %d (%q): %w", path, i, objDef.Name, err)
		}
		w.Scene.AddGameObject(g)
	}

	log.Printf("Scene: loaded %d objects from %s", len(sf.Objects), path)
	return nil
}

func buildObject(def ObjectDef) (*engine.GameObject, error) {
	var parts objectParts
	for _, raw := range def.Components {
		var header componentHeader
		if err := json.Unmarshal(raw, &header); err != nil {
			return nil, fmt.Errorf("component header: %w", err)
		}
		if err := parts.load(header.Type, raw); err != nil {
			return nil, fmt.Errorf("%s: %w", header.Type, err)
		}
	}

	g := engine.NewGameObject(def.Name, parts.body(def.Name))
	g.Tags = def.Tags
	g.Color = def.Color
	if g.Body != nil {
		g.Body.SetPosition(mgl32.Vec3(def.Position))
		if def.Orientation != nil {
			q := def.Orientation
			g.Body.SetOrientation(mgl32.Quat{W: q[0], V: mgl32.Vec3{q[1], q[2], q[3]}})
		} else {
			g.Body.SetEulerAngles(def.Rotation[0], def.Rotation[1], def.Rotation[2])
		}
	}
	return g, nil
}

func (p *objectParts) load(kind string, raw json.RawMessage) error {
	switch kind {
	case "BoxCollider":
		var def boxColliderDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		size := mgl32.Vec3(def.Size)
		if size.X() <= 0 || size.Y() <= 0 || size.Z() <= 0 {
			return fmt.Errorf("size must be positive, got %v", def.Size)
		}
		p.collider = physics.NewBoxCollider(size.Mul(0.5))
		p.collider.Offset = mgl32.Vec3(def.Offset)
	case "SphereCollider":
		var def sphereColliderDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		if def.Radius <= 0 {
			return fmt.Errorf("radius must be positive, got %g", def.Radius)
		}
		p.collider = physics.NewSphereCollider(def.Radius)
		p.collider.Offset = mgl32.Vec3(def.Offset)
	case "PlaneCollider":
		var def planeColliderDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		p.collider = physics.NewPlaneCollider(mgl32.Vec3(def.Normal))
		p.collider.Offset = mgl32.Vec3(def.Offset)
	case "Rigidbody":
		var def rigidbodyDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		p.rigidbody = &def
	case "Spring":
		var def springDef
		if err := json.Unmarshal(raw, &def); err != nil {
			return err
		}
		p.springs = append(p.springs, &physics.Spring{
			Anchor:     mgl32.Vec3(def.Anchor),
			BodyPoint:  mgl32.Vec3(def.BodyPoint),
			Stiffness:  def.Stiffness,
			RestLength: def.RestLength,
			Damping:    def.Damping,
		})
	default:
		log.Printf("Scene: skipping unknown component type %q", kind)
	}
	return nil
}

// body builds the rigid body, or returns nil for an object with neither a
// collider nor a Rigidbody. No Rigidbody means static, as does a plane.
func (p *objectParts) body(name string) *physics.RigidBody {
	if p.collider == nil && p.rigidbody == nil {
		return nil
	}

	var mass float32
	rb := p.rigidbody
	if rb != nil && !rb.Static {
		mass = rb.Mass
		if mass <= 0 {
			mass = 1
		}
	}
	if p.collider != nil && p.collider.Kind == physics.ShapePlane {
		mass = 0
	}

	b := physics.NewRigidBody(name, mass)
	b.SetCollider(p.collider)
	if p.collider != nil && mass > 0 {
		b.SetInertiaTensor(p.collider.DefaultInertia(mass))
	}
	if rb != nil && mass > 0 {
		b.Velocity = mgl32.Vec3(rb.Velocity)
		b.AngularVelocity = mgl32.Vec3(rb.AngularVelocity)
		b.CanSleep = rb.CanSleep
		if rb.Drag > 0 || rb.AngularDrag > 0 {
			b.Forces = append(b.Forces, &physics.Drag{Linear: rb.Drag, Angular: rb.AngularDrag})
		}
	}
	if mass > 0 {
		for _, s := range p.springs {
			b.Forces = append(b.Forces, s)
		}
	}
	return b
}

// --- Saving ---

// SaveScene writes the current scene, including live poses and velocities, to path.
func (w *World) SaveScene(path string) error {
	sf := SceneFile{Name: w.Scene.Name}
	for _, g := range w.Scene.GameObjects {
		sf.Objects = append(sf.Objects, serializeObject(g))
	}

	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("write scene: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

func serializeObject(g *engine.GameObject) ObjectDef {
	def := ObjectDef{
		Name:  g.Name,
		Tags:  g.Tags,
		Color: g.Color,
	}
	b := g.Body
	if b == nil {
		return def
	}

	def.Position = b.Position()
	q := b.Orientation()
	def.Orientation = &[4]float32{q.W, q.V[0], q.V[1], q.V[2]}

	if c := b.Collider; c != nil {
		var cdef any
		switch c.Kind {
		case physics.ShapeBox:
			cdef = boxColliderDef{Type: "BoxCollider", Size: c.HalfExtents.Mul(2), Offset: c.Offset}
		case physics.ShapeSphere:
			cdef = sphereColliderDef{Type: "SphereCollider", Radius: c.Radius, Offset: c.Offset}
		case physics.ShapePlane:
			cdef = planeColliderDef{Type: "PlaneCollider", Normal: c.Normal, Offset: c.Offset}
		}
		if raw := marshalComponent(cdef); raw != nil {
			def.Components = append(def.Components, raw)
		}
	}

	if b.IsStatic() {
		return def
	}

	rb := rigidbodyDef{
		Type:            "Rigidbody",
		Mass:            b.Mass(),
		Velocity:        b.Velocity,
		AngularVelocity: b.AngularVelocity,
		CanSleep:        b.CanSleep,
	}
	var springs []springDef
	for _, f := range b.Forces {
		switch force := f.(type) {
		case *physics.Drag:
			rb.Drag = force.Linear
			rb.AngularDrag = force.Angular
		case *physics.Spring:
			springs = append(springs, springDef{
				Type:       "Spring",
				Anchor:     force.Anchor,
				BodyPoint:  force.BodyPoint,
				Stiffness:  force.Stiffness,
				RestLength: force.RestLength,
				Damping:    force.Damping,
			})
		}
	}
	if raw := marshalComponent(rb); raw != nil {
		def.Components = append(def.Components, raw)
	}
	for _, s := range springs {
		if raw := marshalComponent(s); raw != nil {
			def.Components = append(def.Components, raw)
		}
	}
	return def
}

func marshalComponent(def any) json.RawMessage {
	if def == nil {
		return nil
	}
	data, err := json.Marshal(def)
	if err != nil {
		return nil
	}
	return data
}
