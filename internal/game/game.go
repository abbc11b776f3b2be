package game

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"rigid3d/internal/camera"
	"rigid3d/internal/config"
	"rigid3d/internal/engine"
	"rigid3d/internal/physics"
	"rigid3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

const snapshotDir = "snapshots"

type Game struct {
	World      *world.World
	Camera     *camera.OrbitCamera
	ConfigPath string

	ShowContacts bool
	DebugMode    bool

	picked      *engine.GameObject
	impacts     int
	shotCounter int
	status      string
	statusTime  float64

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

func New(cfg config.Config, configPath, scenePath string) *Game {
	g := &Game{
		World:        world.New(cfg),
		Camera:       camera.New(rl.Vector3{X: 0, Y: 1, Z: 0}, 18),
		ConfigPath:   configPath,
		ShowContacts: cfg.Window.ShowContacts,
	}
	g.World.ScenePath = scenePath

	g.World.Scene.OnPick.AddListener(func(ev engine.PickEvent) {
		g.picked = ev.Object
	})
	g.World.Scene.OnStep.AddListener(func(stats physics.StepStats) {
		g.impacts += len(stats.Started)
	})
	g.World.Scene.OnClear.AddListener(func() {
		g.picked = nil
		g.impacts = 0
	})
	return g
}

func (g *Game) Run() {
	win := g.World.Config.Window
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(win.Width, win.Height, win.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(win.TargetFPS)
	initRayguiStyle()

	if err := g.World.Reset(); err != nil {
		log.Printf("Scene: %v", err)
		g.setStatus("Failed to load scene")
	}

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	g.Camera.Update()

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.World.Paused = !g.World.Paused
	}
	if rl.IsKeyPressed(rl.KeyN) && g.World.Paused {
		g.World.Tick()
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		g.SaveSnapshot()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.ShootSphere()
	}

	// Pick with left click unless the cursor is over the panel
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !rl.CheckCollisionPointRec(rl.GetMousePosition(), panelBounds()) {
		ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), g.Camera.GetRaylibCamera())
		if _, ok := g.World.Scene.Pick(physics.Ray{Origin: toVec3(ray.Position), Direction: toVec3(ray.Direction)}); !ok {
			g.picked = nil
		}
	}

	g.World.Update(deltaTime)

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) Draw() {
	cam := g.Camera.GetRaylibCamera()
	aspect := float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight())
	frustum := g.Camera.Frustum(aspect)

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	rl.BeginMode3D(cam)
	rl.DrawGrid(40, 1)
	drawn := drawObjects(g.World.Scene.GameObjects, &frustum, g.picked)
	if g.ShowContacts {
		drawContacts(g.World.Scene.World.Contacts())
	}
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI(drawn)
	rl.EndDrawing()
}

// ShootSphere throws a ball from the camera toward its target.
func (g *Game) ShootSphere() {
	g.shotCounter++

	eye := toVec3(g.Camera.Position())
	lookDir := toVec3(g.Camera.Target).Sub(eye).Normalize()

	body := physics.NewSphereBody(fmt.Sprintf("Shot_%d", g.shotCounter), 1, 0.4)
	body.SetPosition(eye.Add(lookDir.Mul(2)))
	body.Velocity = lookDir.Mul(20)

	shot := engine.NewGameObject(body.Name, body)
	shot.Color = "Orange"
	shot.AddTag("shot")
	g.World.Scene.AddGameObject(shot)
}

// SaveSnapshot writes the live scene to a timestamped file.
func (g *Game) SaveSnapshot() {
	path := filepath.Join(snapshotDir, fmt.Sprintf("snapshot_%s.json", time.Now().Format("20060102_150405")))
	if err := g.World.SaveScene(path); err != nil {
		log.Printf("Scene: snapshot failed: %v", err)
		g.setStatus("Snapshot failed")
		return
	}
	log.Printf("Scene: saved snapshot %s", path)
	g.setStatus("Saved " + path)
}

// SaveConfig writes the panel's tweaks back to the config file.
func (g *Game) SaveConfig() {
	cfg := g.World.Config
	settings := g.World.Scene.World.Settings
	cfg.Material = settings.Material
	cfg.Solver = settings.Solver
	cfg.Sleep = settings.Sleep
	if err := cfg.Save(g.ConfigPath); err != nil {
		log.Printf("Config: %v", err)
		g.setStatus("Config save failed")
		return
	}
	g.World.Config = cfg
	g.setStatus("Saved " + g.ConfigPath)
}

func (g *Game) Reset() {
	if err := g.World.Reset(); err != nil {
		log.Printf("Scene: %v", err)
		g.setStatus("Reset failed")
		return
	}
	g.setStatus("Scene reset")
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTime = rl.GetTime()
}

func toVec3(v rl.Vector3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}
