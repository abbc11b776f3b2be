package world

import (
	"fmt"
	"log"

	"rigid3d/internal/config"
	"rigid3d/internal/engine"
	"rigid3d/internal/physics"
)

// World drives a scene at a fixed tick rate from variable frame times.
type World struct {
	Scene     *engine.Scene
	Config    config.Config
	ScenePath string
	Paused    bool

	// Stats from the most recent tick
	LastStats physics.StepStats

	accumulator float32
	ticks       uint64
}

func New(cfg config.Config) *World {
	return &World{
		Scene:  engine.NewScene("Main", cfg.PhysicsSettings()),
		Config: cfg,
	}
}

// Update consumes frameTime in fixed ticks and returns how many ran.
// At most MaxSubSteps run per call; time beyond that is dropped.
func (w *World) Update(frameTime float32) int {
	if w.Paused || frameTime <= 0 {
		return 0
	}
	dt := w.Config.TimeStep()
	w.accumulator += frameTime

	steps := 0
	for w.accumulator >= dt && steps < w.Config.MaxSubSteps {
		w.Tick()
		w.accumulator -= dt
		steps++
	}
	if steps == w.Config.MaxSubSteps && w.accumulator >= dt {
		if w.Config.Debug {
			log.Printf("World: dropped %.3fs after %d sub-steps", w.accumulator, steps)
		}
		w.accumulator = 0
	}
	return steps
}

// Tick advances the scene by exactly one fixed step, paused or not.
func (w *World) Tick() physics.StepStats {
	w.LastStats = w.Scene.Step(w.Config.TimeStep())
	w.ticks++
	return w.LastStats
}

// Ticks is the number of fixed steps run since the world was created or reset.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// ApplyConfig pushes cfg into the running simulation.
func (w *World) ApplyConfig(cfg config.Config) {
	w.Config = cfg
	w.Scene.World.Settings = cfg.PhysicsSettings()
}

// Reset clears the scene and reloads ScenePath.
func (w *World) Reset() error {
	w.Scene.Clear()
	w.accumulator = 0
	w.ticks = 0
	w.LastStats = physics.StepStats{}
	if w.ScenePath == "" {
		return nil
	}
	if err := w.LoadScene(w.ScenePath); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}
