package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default Tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		Timing: TimingConfig{
			ClearDelayMs: 300,
		},
		Speed: SpeedConfig{
			BaseMs:        1000,
			StepMs:        100,
			FloorMs:       50,
			LinesPerLevel: 10,
		},
		Pieces: PiecesConfig{
			Randomizer: RandomizerUniform,
		},
		Scoring: ScoringConfig{
			HardDropPerRow: 2,
		},
	}
}
