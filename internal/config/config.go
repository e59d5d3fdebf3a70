// Package config provides runner configuration loading from YAML or TOML
// files, embedded defaults, difficulty presets and live reload.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/blockrun/internal/course"
	"github.com/vovakirdan/blockrun/internal/player"
)

// RunnerConfig contains all tunables of the runner.
type RunnerConfig struct {
	Physics  PhysicsConfig  `yaml:"physics" toml:"physics"`
	Controls ControlsConfig `yaml:"controls" toml:"controls"`
	Course   CourseConfig   `yaml:"course" toml:"course"`
	Timing   TimingConfig   `yaml:"timing" toml:"timing"`
	Camera   CameraConfig   `yaml:"camera" toml:"camera"`
}

// PhysicsConfig defines the player simulation constants (units/s, units/s²).
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity" toml:"gravity"`
	Resistance    float64 `yaml:"resistance" toml:"resistance"`
	MaxVelocity   float64 `yaml:"max_velocity" toml:"max_velocity"`
	JumpImpulse   float64 `yaml:"jump_impulse" toml:"jump_impulse"`
	FloorBounce   float64 `yaml:"floor_bounce" toml:"floor_bounce"`
	CeilingBounce float64 `yaml:"ceiling_bounce" toml:"ceiling_bounce"`
	SideBounce    float64 `yaml:"side_bounce" toml:"side_bounce"`
	Radius        float64 `yaml:"radius" toml:"radius"`
	DeathGrowth   float64 `yaml:"death_growth" toml:"death_growth"`
	DepthLimitRow int     `yaml:"depth_limit_row" toml:"depth_limit_row"`
}

// ControlsConfig defines how key presses drive the player.
type ControlsConfig struct {
	Acceleration float64 `yaml:"acceleration" toml:"acceleration"`
	HoldTimeout  float64 `yaml:"hold_timeout" toml:"hold_timeout"` // Seconds a direction stays held after its last press
}

// CourseConfig defines the generated course dimensions.
type CourseConfig struct {
	MinWidth int `yaml:"min_width" toml:"min_width"`
	MaxWidth int `yaml:"max_width" toml:"max_width"`
}

// TimingConfig defines the simulation clock.
type TimingConfig struct {
	InitialDelta float64 `yaml:"initial_delta" toml:"initial_delta"` // dt of the first tick on a course
	MaxDelta     float64 `yaml:"max_delta" toml:"max_delta"`         // Upper clamp for one tick
}

// CameraConfig defines the viewport.
type CameraConfig struct {
	Follow    float64 `yaml:"follow" toml:"follow"`         // Smoothing rate toward the player, 1/s
	CellWidth int     `yaml:"cell_width" toml:"cell_width"` // Terminal columns per grid column
}

// ToPhysics converts the physics section for the player simulator.
func (c RunnerConfig) ToPhysics() player.Physics {
	p := c.Physics
	return player.Physics{
		Gravity:       p.Gravity,
		Resistance:    p.Resistance,
		MaxVelocity:   p.MaxVelocity,
		JumpImpulse:   p.JumpImpulse,
		FloorBounce:   p.FloorBounce,
		CeilingBounce: p.CeilingBounce,
		SideBounce:    p.SideBounce,
		Radius:        p.Radius,
		DeathGrowth:   p.DeathGrowth,
		DepthLimitRow: p.DepthLimitRow,
	}
}

// GenParams returns generator parameters for the given seed.
func (c RunnerConfig) GenParams(seed int64) course.GenParams {
	return course.GenParams{
		MinWidth: c.Course.MinWidth,
		MaxWidth: c.Course.MaxWidth,
		Seed:     seed,
	}
}

// Validate reports every value that would break the simulation.
func (c RunnerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	p := c.Physics
	check(p.Gravity >= 0, "physics.gravity must not be negative, got %v", p.Gravity)
	check(p.Resistance >= 0, "physics.resistance must not be negative, got %v", p.Resistance)
	check(p.MaxVelocity > 0, "physics.max_velocity must be positive, got %v", p.MaxVelocity)
	check(p.Radius > 0, "physics.radius must be positive, got %v", p.Radius)
	check(p.Radius < course.CellSize, "physics.radius must be below the cell size %d, got %v", course.CellSize, p.Radius)
	check(p.DeathGrowth > 0, "physics.death_growth must be positive, got %v", p.DeathGrowth)
	check(p.DepthLimitRow > 0 && p.DepthLimitRow < course.Rows,
		"physics.depth_limit_row must be within 1..%d, got %d", course.Rows-1, p.DepthLimitRow)

	check(c.Controls.Acceleration > 0, "controls.acceleration must be positive, got %v", c.Controls.Acceleration)
	check(c.Controls.HoldTimeout > 0, "controls.hold_timeout must be positive, got %v", c.Controls.HoldTimeout)

	check(c.Course.MinWidth > 0, "course.min_width must be positive, got %d", c.Course.MinWidth)
	check(c.Course.MaxWidth >= c.Course.MinWidth,
		"course.max_width %d is below min_width %d", c.Course.MaxWidth, c.Course.MinWidth)

	check(c.Timing.InitialDelta > 0, "timing.initial_delta must be positive, got %v", c.Timing.InitialDelta)
	check(c.Timing.MaxDelta > 0, "timing.max_delta must be positive, got %v", c.Timing.MaxDelta)

	check(c.Camera.Follow > 0, "camera.follow must be positive, got %v", c.Camera.Follow)
	check(c.Camera.CellWidth > 0, "camera.cell_width must be positive, got %d", c.Camera.CellWidth)

	return errors.Join(errs...)
}
