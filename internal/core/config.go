package core

// RuntimeConfig is handed to a game on Reset.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Frames per second (default 30)
	Seed       int64  // RNG seed; 0 lets the platform pick one
	Difficulty string // easy, normal or hard
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    100,
		ScreenH:    32,
		TickRate:   30,
		Difficulty: "normal",
	}
}

// FrameDelta returns the seconds per frame at the configured tick rate.
func (c RuntimeConfig) FrameDelta() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 30
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the status a game reports to the platform after each frame.
type GameState struct {
	Score    int
	GameOver bool
	Won      bool // Valid once GameOver is set
	Paused   bool
	Round    int
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
	// Log holds combat log lines produced during the frame.
	Log []string
}
