package engine

import (
	"testing"

	"rigid3d/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewGameObject(t *testing.T) {
	body := physics.NewSphereBody("", 1, 0.5)
	obj := NewGameObject("TestObject", body)

	if obj.Name != "TestObject" {
		t.Errorf("Expected name 'TestObject', got '%s'", obj.Name)
	}
	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}
	if !obj.Active {
		t.Error("New objects should be active")
	}
	if body.Name != "TestObject" {
		t.Errorf("Expected unnamed body to take the object name, got '%s'", body.Name)
	}

	named := physics.NewSphereBody("Ball", 1, 0.5)
	NewGameObject("Other", named)
	if named.Name != "Ball" {
		t.Errorf("Expected body name to be kept, got '%s'", named.Name)
	}
}

func TestGameObjectUniqueUIDs(t *testing.T) {
	obj1 := NewGameObject("First", nil)
	obj2 := NewGameObject("Second", nil)
	obj3 := NewGameObject("Third", nil)

	if obj1.UID == obj2.UID || obj2.UID == obj3.UID || obj1.UID == obj3.UID {
		t.Error("GameObjects should have unique UIDs")
	}
	if obj2.UID <= obj1.UID || obj3.UID <= obj2.UID {
		t.Error("UIDs should increase")
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("Test", nil)
	obj.Tags = []string{"crate", "dynamic"}

	if !obj.HasTag("crate") {
		t.Error("HasTag should return true for existing tag")
	}
	if obj.HasTag("floor") {
		t.Error("HasTag should return false for non-existent tag")
	}

	obj.AddTag("crate")
	obj.AddTag("heavy")
	if len(obj.Tags) != 3 {
		t.Errorf("Expected 3 tags without duplicates, got %v", obj.Tags)
	}

	obj2 := NewGameObject("Test2", nil)
	if obj2.HasTag("anything") {
		t.Error("HasTag should return false when Tags is nil/empty")
	}
}

func TestGameObjectPosition(t *testing.T) {
	marker := NewGameObject("Marker", nil)
	if marker.Position() != (mgl32.Vec3{}) {
		t.Errorf("Expected marker at origin, got %v", marker.Position())
	}

	body := physics.NewSphereBody("Ball", 1, 0.5)
	body.SetPosition(mgl32.Vec3{1, 2, 3})
	obj := NewGameObject("Ball", body)
	if obj.Position() != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Expected (1,2,3), got %v", obj.Position())
	}
}

func TestGameObjectSetActive(t *testing.T) {
	scene := NewScene("Test", physics.DefaultSettings())
	obj := NewGameObject("Ball", physics.NewSphereBody("Ball", 1, 0.5))
	scene.AddGameObject(obj)

	obj.SetActive(false)
	if len(scene.World.Bodies()) != 0 {
		t.Errorf("Expected inactive body to leave the world, got %d bodies", len(scene.World.Bodies()))
	}
	if scene.FindByUID(obj.UID) != obj {
		t.Error("Inactive object should stay in the scene")
	}

	obj.SetActive(true)
	if len(scene.World.Bodies()) != 1 {
		t.Errorf("Expected body back in the world, got %d bodies", len(scene.World.Bodies()))
	}
}
