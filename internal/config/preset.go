package config

import "fmt"

// Preset is a named difficulty level.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// Presets lists the known presets in increasing difficulty.
func Presets() []Preset {
	return []Preset{PresetEasy, PresetNormal, PresetHard}
}

// ApplyPreset adjusts course length and controls for a preset. Normal keeps
// the loaded values.
func ApplyPreset(cfg *RunnerConfig, p Preset) error {
	switch p {
	case PresetNormal, "":
	case PresetEasy:
		cfg.Course.MinWidth = 300
		cfg.Course.MaxWidth = 360
		cfg.Controls.Acceleration = 1400
		cfg.Physics.MaxVelocity = 550
	case PresetHard:
		cfg.Course.MinWidth = 440
		cfg.Course.MaxWidth = 500
		cfg.Controls.Acceleration = 1000
		cfg.Physics.MaxVelocity = 450
	default:
		return fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", p)
	}
	return nil
}
