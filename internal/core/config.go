package core

import "time"

// RuntimeConfig contains settings passed to the play screen.
type RuntimeConfig struct {
	ScreenW   int           // Screen width in characters
	ScreenH   int           // Screen height in characters
	StepDelay time.Duration // Delay between animated program steps
	Player    string        // Name stored with each run
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		StepDelay: 150 * time.Millisecond,
	}
}
