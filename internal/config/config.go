// Package config provides YAML-based difficulty configuration for Circuit
// Repair: the preset list and generator limits.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
)

// File is the on-disk layout of difficulty.yaml.
type File struct {
	Generator GeneratorConfig `yaml:"generator"`
	Default   string          `yaml:"default"`
	Presets   []PresetConfig  `yaml:"presets"`
}

// GeneratorConfig holds the generator limits.
type GeneratorConfig struct {
	MaxAttempts      int `yaml:"max_attempts"`
	MaxSearchSteps   int `yaml:"max_search_steps"`
	MaxScrambleTries int `yaml:"max_scramble_tries"`
}

// PresetConfig is one named difficulty.
type PresetConfig struct {
	Name             string  `yaml:"name"`
	GridSizeRange    []int   `yaml:"grid_size_range"`
	MovableTileRange []int   `yaml:"movable_tile_range"`
	CornerRange      []int   `yaml:"corner_range"`
	ScrambleRatio    float64 `yaml:"scramble_ratio"`
	TimeLimit        string  `yaml:"time_limit,omitempty"` // e.g. "90s"; empty = untimed
}

// Preset names shipped in the embedded defaults.
const (
	PresetEasy   = "easy"
	PresetNormal = "normal"
	PresetHard   = "hard"
	PresetHell   = "hell"
)

// GenParams converts the generator section, keeping defaults for unset fields.
func (g GeneratorConfig) GenParams() core.GenParams {
	p := core.DefaultGenParams()
	if g.MaxAttempts > 0 {
		p.MaxAttempts = g.MaxAttempts
	}
	if g.MaxSearchSteps > 0 {
		p.MaxSearchSteps = g.MaxSearchSteps
	}
	if g.MaxScrambleTries > 0 {
		p.MaxScrambleTries = g.MaxScrambleTries
	}
	return p
}

// Difficulty converts and validates the preset.
func (p PresetConfig) Difficulty() (core.Difficulty, error) {
	if p.Name == "" {
		return core.Difficulty{}, fmt.Errorf("preset without name")
	}

	grid, err := toRange(p.GridSizeRange, "grid_size_range")
	if err != nil {
		return core.Difficulty{}, fmt.Errorf("preset %s: %w", p.Name, err)
	}
	movable, err := toRange(p.MovableTileRange, "movable_tile_range")
	if err != nil {
		return core.Difficulty{}, fmt.Errorf("preset %s: %w", p.Name, err)
	}
	corners, err := toRange(p.CornerRange, "corner_range")
	if err != nil {
		return core.Difficulty{}, fmt.Errorf("preset %s: %w", p.Name, err)
	}

	var limit time.Duration
	if p.TimeLimit != "" {
		limit, err = time.ParseDuration(p.TimeLimit)
		if err != nil {
			return core.Difficulty{}, fmt.Errorf("preset %s: time_limit: %w", p.Name, err)
		}
	}

	d := core.Difficulty{
		Name:          p.Name,
		GridSize:      grid,
		MovableTiles:  movable,
		Corners:       corners,
		ScrambleRatio: p.ScrambleRatio,
		TimeLimit:     limit,
	}
	if err := core.ValidateDifficulty(d); err != nil {
		return core.Difficulty{}, err
	}
	return d, nil
}

// FromDifficulty converts a core difficulty back to its YAML form.
func FromDifficulty(d core.Difficulty) PresetConfig {
	p := PresetConfig{
		Name:             d.Name,
		GridSizeRange:    []int{d.GridSize.Min, d.GridSize.Max},
		MovableTileRange: []int{d.MovableTiles.Min, d.MovableTiles.Max},
		CornerRange:      []int{d.Corners.Min, d.Corners.Max},
		ScrambleRatio:    d.ScrambleRatio,
	}
	if d.TimeLimit > 0 {
		p.TimeLimit = d.TimeLimit.String()
	}
	return p
}

// toRange reads a [min, max] pair.
func toRange(v []int, field string) (core.Range, error) {
	if len(v) != 2 {
		return core.Range{}, fmt.Errorf("%s must be [min, max], got %v", field, v)
	}
	return core.R(v[0], v[1]), nil
}
