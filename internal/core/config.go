package core

import "time"

// RuntimeConfig is passed to the game on reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // Course seed; 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the game status the platform layer needs for its chrome.
type GameState struct {
	Loading  bool          // Course generation in progress
	Won      bool          // Finish crossed
	Paused   bool          // Simulation frozen
	Dying    bool          // Death animation running
	Deaths   int           // Deaths on the current course
	Elapsed  time.Duration // Simulated time on the current course
	Progress float64       // Horizontal progress toward the finish, 0..1
	Seed     int64         // Seed of the current course
	Width    int           // Current course width in columns
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState
	Quit  bool // Player asked to leave
}
