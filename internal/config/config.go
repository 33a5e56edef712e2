// Package config provides YAML-based game configuration loading and
// the level/speed curve for the tetris engine.
package config

import (
	"errors"
	"fmt"
)

// Randomizer names accepted in pieces.randomizer.
const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// TetrisConfig contains all tunable parameters for the Tetris game.
type TetrisConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Timing  TimingConfig  `yaml:"timing"`
	Speed   SpeedConfig   `yaml:"speed"`
	Pieces  PiecesConfig  `yaml:"pieces"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// BoardConfig defines the playfield dimensions in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig defines fixed delays.
type TimingConfig struct {
	ClearDelayMs int `yaml:"clear_delay_ms"` // Delay before cleared rows are removed
}

// PiecesConfig selects how upcoming pieces are drawn.
type PiecesConfig struct {
	Randomizer string `yaml:"randomizer"` // "uniform" or "bag"
}

// ScoringConfig defines score awards that are not part of the fixed line table.
type ScoringConfig struct {
	HardDropPerRow int `yaml:"hard_drop_per_row"`
}

// Validate checks that the configuration describes a playable game.
func (c TetrisConfig) Validate() error {
	var errs []error

	if c.Board.Width < 4 {
		errs = append(errs, fmt.Errorf("board.width must be at least 4, got %d", c.Board.Width))
	}
	if c.Board.Height < 4 {
		errs = append(errs, fmt.Errorf("board.height must be at least 4, got %d", c.Board.Height))
	}
	if c.Timing.ClearDelayMs < 0 {
		errs = append(errs, fmt.Errorf("timing.clear_delay_ms must not be negative, got %d", c.Timing.ClearDelayMs))
	}
	if err := c.Speed.Validate(); err != nil {
		errs = append(errs, err)
	}
	switch c.Pieces.Randomizer {
	case RandomizerUniform, RandomizerBag:
	default:
		errs = append(errs, fmt.Errorf("pieces.randomizer must be %q or %q, got %q",
			RandomizerUniform, RandomizerBag, c.Pieces.Randomizer))
	}
	if c.Scoring.HardDropPerRow < 0 {
		errs = append(errs, fmt.Errorf("scoring.hard_drop_per_row must not be negative, got %d", c.Scoring.HardDropPerRow))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid tetris config: %w", errors.Join(errs...))
	}
	return nil
}
