package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
)

//go:embed defaults/difficulty.yaml
var defaultDifficultyYAML []byte

// DefaultFile returns the built-in configuration used when no YAML can be read.
func DefaultFile() File {
	presets := []core.Difficulty{
		{Name: PresetEasy, GridSize: core.R(4, 5), MovableTiles: core.R(3, 8), Corners: core.R(1, 6), ScrambleRatio: 0.7, TimeLimit: 120 * time.Second},
		{Name: PresetNormal, GridSize: core.R(5, 6), MovableTiles: core.R(4, 10), Corners: core.R(2, 8), ScrambleRatio: 0.8, TimeLimit: 90 * time.Second},
		{Name: PresetHard, GridSize: core.R(6, 7), MovableTiles: core.R(5, 12), Corners: core.R(3, 10), ScrambleRatio: 0.9, TimeLimit: 75 * time.Second},
		{Name: PresetHell, GridSize: core.R(7, 8), MovableTiles: core.R(6, 15), Corners: core.R(4, 12), ScrambleRatio: 1.0, TimeLimit: 60 * time.Second},
	}

	f := File{
		Generator: GeneratorConfig{
			MaxAttempts:      50,
			MaxSearchSteps:   20000,
			MaxScrambleTries: 8,
		},
		Default: PresetNormal,
	}
	for _, d := range presets {
		f.Presets = append(f.Presets, FromDifficulty(d))
	}
	return f
}
