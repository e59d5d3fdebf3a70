package config

import (
	_ "embed"

	"github.com/vovakirdan/blockrun/internal/player"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the hardcoded runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	ph := player.DefaultPhysics()
	return RunnerConfig{
		Physics: PhysicsConfig{
			Gravity:       ph.Gravity,
			Resistance:    ph.Resistance,
			MaxVelocity:   ph.MaxVelocity,
			JumpImpulse:   ph.JumpImpulse,
			FloorBounce:   ph.FloorBounce,
			CeilingBounce: ph.CeilingBounce,
			SideBounce:    ph.SideBounce,
			Radius:        ph.Radius,
			DeathGrowth:   ph.DeathGrowth,
			DepthLimitRow: ph.DepthLimitRow,
		},
		Controls: ControlsConfig{
			Acceleration: 1200,
			HoldTimeout:  0.4,
		},
		Course: CourseConfig{
			MinWidth: 300,
			MaxWidth: 500,
		},
		Timing: TimingConfig{
			InitialDelta: 0.000005,
			MaxDelta:     0.1,
		},
		Camera: CameraConfig{
			Follow:    4,
			CellWidth: 2,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
