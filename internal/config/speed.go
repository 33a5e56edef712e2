package config

import (
	"fmt"
	"time"
)

// SpeedConfig defines how the level and automatic drop interval progress
// with the number of cleared lines.
type SpeedConfig struct {
	BaseMs        int `yaml:"base_ms"`         // Drop interval at level 1
	StepMs        int `yaml:"step_ms"`         // Interval reduction per level
	FloorMs       int `yaml:"floor_ms"`        // Fastest allowed interval
	LinesPerLevel int `yaml:"lines_per_level"` // Lines needed to advance one level
}

// Validate checks that the curve produces positive intervals.
func (s SpeedConfig) Validate() error {
	if s.FloorMs <= 0 {
		return fmt.Errorf("speed.floor_ms must be positive, got %d", s.FloorMs)
	}
	if s.BaseMs < s.FloorMs {
		return fmt.Errorf("speed.base_ms (%d) must not be below speed.floor_ms (%d)", s.BaseMs, s.FloorMs)
	}
	if s.StepMs < 0 {
		return fmt.Errorf("speed.step_ms must not be negative, got %d", s.StepMs)
	}
	if s.LinesPerLevel <= 0 {
		return fmt.Errorf("speed.lines_per_level must be positive, got %d", s.LinesPerLevel)
	}
	return nil
}

// Level returns the level reached after clearing the given number of lines.
// Levels start at 1.
func (s SpeedConfig) Level(lines int) int {
	perLevel := s.LinesPerLevel
	if perLevel <= 0 {
		perLevel = 10
	}
	if lines < 0 {
		lines = 0
	}
	return lines/perLevel + 1
}

// Interval returns the automatic drop interval for a level,
// decreasing by StepMs per level and never going below FloorMs.
func (s SpeedConfig) Interval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	ms := s.BaseMs - (level-1)*s.StepMs
	if ms < s.FloorMs {
		ms = s.FloorMs
	}
	return time.Duration(ms) * time.Millisecond
}
