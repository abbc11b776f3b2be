package config

import (
	"fmt"
	"os"
	"path/filepath"

	"rigid3d/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the commands look for settings, relative to the working directory.
const DefaultPath = "config/sim.yaml"

// WindowConfig holds sandbox window and overlay preferences.
type WindowConfig struct {
	Width        int32  `yaml:"width"`
	Height       int32  `yaml:"height"`
	Title        string `yaml:"title"`
	TargetFPS    int32  `yaml:"target_fps"`
	ShowContacts bool   `yaml:"show_contacts"`
}

// Config is the simulation configuration file.
type Config struct {
	TickRate    int        `yaml:"tick_rate"`     // fixed steps per second
	MaxSubSteps int        `yaml:"max_sub_steps"` // fixed steps allowed per rendered frame
	Gravity     [3]float32 `yaml:"gravity"`
	PickImpulse float32    `yaml:"pick_impulse"`
	Debug       bool       `yaml:"debug"`

	Material physics.Material       `yaml:"material"`
	Solver   physics.SolverSettings `yaml:"solver"`
	Sleep    physics.SleepSettings  `yaml:"sleep"`
	Window   WindowConfig           `yaml:"window"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	s := physics.DefaultSettings()
	return Config{
		TickRate:    60,
		MaxSubSteps: 5,
		Gravity:     [3]float32(s.Gravity),
		PickImpulse: s.PickImpulse,
		Material:    s.Material,
		Solver:      s.Solver,
		Sleep:       s.Sleep,
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "rigid3d sandbox",
			TargetFPS: 60,
		},
	}
}

// Load reads a YAML config. Keys missing from the file keep their defaults.
// A missing file returns Default() with no error.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Save writes the config as YAML, creating the directory if needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate rejects settings the simulation cannot run with.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", c.TickRate)
	}
	if c.MaxSubSteps <= 0 {
		return fmt.Errorf("max_sub_steps must be positive, got %d", c.MaxSubSteps)
	}
	if c.Solver.PositionIterations < 0 || c.Solver.VelocityIterations < 0 {
		return fmt.Errorf("solver iterations must not be negative, got %d/%d",
			c.Solver.PositionIterations, c.Solver.VelocityIterations)
	}
	if c.Solver.PenetrationEpsilon < 0 || c.Solver.VelocityEpsilon < 0 {
		return fmt.Errorf("solver epsilons must not be negative")
	}
	if c.Solver.AngularMoveLimit < 0 {
		return fmt.Errorf("angular_move_limit must not be negative, got %g", c.Solver.AngularMoveLimit)
	}
	if c.Material.Restitution < 0 || c.Material.Restitution > 1 {
		return fmt.Errorf("restitution must be in [0,1], got %g", c.Material.Restitution)
	}
	if c.Material.Friction < 0 {
		return fmt.Errorf("friction must not be negative, got %g", c.Material.Friction)
	}
	if c.PickImpulse < 0 {
		return fmt.Errorf("pick_impulse must not be negative, got %g", c.PickImpulse)
	}
	return nil
}

// TimeStep returns the fixed step length in seconds.
func (c Config) TimeStep() float32 {
	return 1 / float32(c.TickRate)
}

// PhysicsSettings converts the file settings into what physics.NewWorld takes.
func (c Config) PhysicsSettings() physics.Settings {
	return physics.Settings{
		Gravity:     mgl32.Vec3(c.Gravity),
		Material:    c.Material,
		Solver:      c.Solver,
		Sleep:       c.Sleep,
		PickImpulse: c.PickImpulse,
		Debug:       c.Debug,
	}
}

// ResolvePath anchors a relative path at base. Commands call it on
// user-supplied paths before changing into the executable's directory.
func ResolvePath(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
