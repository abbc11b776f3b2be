// Stress test stepping growing piles of boxes and spheres in a walled pit
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"rigid3d/internal/config"
	"rigid3d/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "simulation config (YAML)")
	steps := flag.Int("steps", 300, "fixed steps per run")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config: %v", err)
	}
	fmt.Printf("Tick %.4fs | %d/%d iterations | restitution %.2f friction %.2f\n\n",
		cfg.TimeStep(), cfg.Solver.PositionIterations, cfg.Solver.VelocityIterations,
		cfg.Material.Restitution, cfg.Material.Friction)

	// Test various object counts
	testCounts := []int{10, 25, 50, 100, 200, 400}

	for _, count := range testCounts {
		runPile(cfg, count, *steps)
	}
}

func runPile(cfg config.Config, count, steps int) {
	w := physics.NewWorld(cfg.PhysicsSettings())
	buildPit(w)

	rng := rand.New(rand.NewSource(42)) // Consistent results

	// Spawn column grows with count to keep density reasonable
	spawnSize := float32(6)
	for i := 0; i < count; i++ {
		pos := mgl32.Vec3{
			rng.Float32()*spawnSize - spawnSize/2,
			1 + float32(i)*0.6,
			rng.Float32()*spawnSize - spawnSize/2,
		}
		var b *physics.RigidBody
		if i%2 == 0 {
			b = physics.NewSphereBody(fmt.Sprintf("Sphere_%d", i), 1, 0.3+rng.Float32()*0.2)
		} else {
			half := 0.25 + rng.Float32()*0.2
			b = physics.NewBoxBody(fmt.Sprintf("Box_%d", i), 2, mgl32.Vec3{half, half, half})
			b.SetEulerAngles(rng.Float32()*90, rng.Float32()*90, 0)
		}
		b.SetPosition(pos)
		w.AddBody(b)
	}

	dt := cfg.TimeStep()
	var total, worst time.Duration
	var contacts, posIters, velIters int
	var maxPen float32
	for i := 0; i < steps; i++ {
		start := time.Now()
		stats := w.Step(dt)
		elapsed := time.Since(start)

		total += elapsed
		if elapsed > worst {
			worst = elapsed
		}
		contacts += stats.Contacts
		posIters += stats.PositionIterations
		velIters += stats.VelocityIterations
		if stats.MaxPenetration > maxPen {
			maxPen = stats.MaxPenetration
		}
	}

	n := time.Duration(steps)
	fmt.Printf("%4d bodies: avg %9v | worst %9v | %6.1f contacts | %5.1f/%5.1f iterations | max penetration %.4f\n",
		count, (total / n).Round(time.Microsecond), worst.Round(time.Microsecond),
		float64(contacts)/float64(steps), float64(posIters)/float64(steps), float64(velIters)/float64(steps), maxPen)
}

// buildPit adds a floor and four walls around the spawn area
func buildPit(w *physics.World) {
	w.AddBody(physics.NewPlaneBody("Floor", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{}))

	walls := []struct {
		name   string
		normal mgl32.Vec3
		point  mgl32.Vec3
	}{
		{"WallEast", mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{4, 0, 0}},
		{"WallWest", mgl32.Vec3{1, 0, 0}, mgl32.Vec3{-4, 0, 0}},
		{"WallNorth", mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 0, 4}},
		{"WallSouth", mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, -4}},
	}
	for _, wall := range walls {
		w.AddBody(physics.NewPlaneBody(wall.name, wall.normal, wall.point))
	}
}
