package core

// RuntimeConfig is passed to the game on Reset.
type RuntimeConfig struct {
	ScreenW int // Screen width in characters
	ScreenH int // Screen height in characters
}

// DefaultConfig returns a RuntimeConfig for a classic 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// GameState is what the platform needs to know about a running level.
type GameState struct {
	Moves    int  // Successful moves since the level was (re)loaded
	Finished bool // All targets covered
	TooSmall bool // Level does not fit on screen
}

// StepResult is returned by Game.Step after handling one input frame.
type StepResult struct {
	State GameState
	Moved bool // Whether the frame changed the level
}
