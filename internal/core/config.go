package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host ticks per second (default 60)
	Seed     int64 // RNG seed for the gate generator
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a session.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score      int  // Points scored (successful gate runs)
	Lives      int  // Remaining lives
	LevelIndex int  // Level index used for background selection
	GameOver   bool // Whether the session reached its terminal state
	Paused     bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Scored bool // A scoring event happened this tick
	Missed bool // A miss event happened this tick
}
