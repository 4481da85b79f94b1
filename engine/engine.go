// Package engine defines the interface for sequence generators.
package engine

import (
	"context"

	"termsuji-replay/types"
)

// Generator produces a board sequence, e.g. by letting an engine play itself.
type Generator interface {
	// Generate plays a game and returns one snapshot per move, starting
	// with the empty board.
	Generate(ctx context.Context) (*Game, error)

	// Close shuts down the engine.
	Close()
}

// Game is a generated sequence and its outcome.
type Game struct {
	Frames  types.Sequence
	Outcome string // SGF result, e.g. "W+2.5" or "B+R"
}

// GameConfig holds configuration for generating a game.
type GameConfig struct {
	BoardSize   int     // 5 for the bundled sample
	Komi        float64 // 2.5 matches the score calculator
	EngineLevel int     // GnuGo level 1-10
	EnginePath  string  // Path to GnuGo binary
	MaxMoves    int     // Stop after this many moves, passes included
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		BoardSize:   5,
		Komi:        2.5,
		EngineLevel: 5,
		EnginePath:  "gnugo",
		MaxMoves:    40,
	}
}
