package config

import "math"

// DifficultyManager turns a DifficultyConfig into a level between the
// configured initial level and 1.
type DifficultyManager struct {
	enabled bool
	by      string // "score" or "time"
	maxAt   float64
	start   float64
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	d := &DifficultyManager{
		enabled: cfg.Enabled,
		by:      cfg.Progression.Type,
		maxAt:   float64(cfg.Progression.MaxAt),
		start:   math.Max(0, math.Min(1, cfg.InitialLevel)),
	}
	if d.by != "score" && d.by != "time" {
		d.enabled = false
	}
	if d.maxAt <= 0 {
		d.maxAt = 1
	}
	return d
}

// IsEnabled reports whether the level grows during play.
func (d *DifficultyManager) IsEnabled() bool {
	return d.enabled
}

// Level returns the difficulty for the given score and elapsed ticks.
// It rises linearly from the initial level and reaches 1 at max_at.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.enabled {
		return d.start
	}
	at := float64(ticks)
	if d.by == "score" {
		at = float64(score)
	}
	progress := math.Min(1, at/d.maxAt)
	return d.start + progress*(1-d.start)
}

// Interval scales a tick interval from base at level 0 down to floor at
// level 1. The pursuer uses it for its step delay. Never less than 1.
func (d *DifficultyManager) Interval(base, floor, score, ticks int) int {
	floor = min(floor, base)
	n := base - int(math.Round(d.Level(score, ticks)*float64(base-floor)))
	return max(n, 1)
}
