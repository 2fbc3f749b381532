package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
	"github.com/vovakirdan/circuit-repair/internal/circuit/levels"
	"github.com/vovakirdan/circuit-repair/internal/circuit/levels/formats"
)

var (
	flagGenDifficulty string
	flagGenFormat     string
	flagGenSave       bool
	flagGenOut        string
	flagGenSolution   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a level",
	Long: `Generate a level for a difficulty preset and print it.

The same --seed and difficulty always produce the same level.

Output formats:
  ascii  - Board drawing with stats (default)
  yaml   - Level file, as read by 'circuit play --level'
  json   - Level record, as accepted by POST /levels/check

Examples:
  circuit generate
  circuit generate --difficulty hard --seed 42
  circuit generate --format yaml > level.yaml
  circuit generate --save                 # writes <levels>/<id>.yaml
  circuit generate --out ./my-level.json`,
	Args: cobra.NoArgs,
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&flagGenDifficulty, "difficulty", "d", "", "Difficulty preset (default from config)")
	generateCmd.Flags().StringVarP(&flagGenFormat, "format", "f", "ascii", "Output format: ascii, yaml, json")
	generateCmd.Flags().BoolVar(&flagGenSave, "save", false, "Save the level into the levels directory")
	generateCmd.Flags().StringVarP(&flagGenOut, "out", "o", "", "Write the level to this file (.yaml, .yml, .json)")
	generateCmd.Flags().BoolVar(&flagGenSolution, "solution", false, "Also print the solved board (ascii only)")
}

func runGenerate(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger("generate")

	d, err := cfg.Presets.Resolve(flagGenDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Available: %s\n", strings.Join(cfg.Presets.Names(), ", "))
		os.Exit(1)
	}

	params := cfg.Generator
	params.Logger = logger
	gen := core.NewGenerator(params, core.NewRand(time.Now().UnixNano()))

	var level *core.Level
	if flagSeed != 0 {
		level, err = gen.GenerateSeed(d, flagSeed)
	} else {
		level, err = gen.Generate(d)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating level: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("level generated", "id", level.ID, "seed", level.Seed, "size", level.Size())

	switch strings.ToLower(flagGenFormat) {
	case "ascii", "":
		printLevel(level, flagGenSolution)
	case "yaml", "yml", "json":
		data, err := formats.Marshal(formats.FromLevel(level), "."+strings.ToLower(flagGenFormat))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding level: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (use ascii, yaml or json)\n", flagGenFormat)
		os.Exit(1)
	}

	if flagGenOut != "" {
		if err := levels.Save(flagGenOut, level); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving level: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Saved %s\n", flagGenOut)
	}
	if flagGenSave {
		path, err := levels.NewLoader(flagLevelsDir).Save(level, ".yaml")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error saving level: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Saved %s\n", filepath.Clean(path))
	}
}

// printLevel writes the scrambled board and stats to stdout.
func printLevel(level *core.Level, withSolution bool) {
	stats := level.Stats()
	fmt.Printf("Level %s\n", level.ID)
	fmt.Printf("  difficulty: %s  seed: %d  size: %dx%d\n", level.Difficulty, level.Seed, level.Size(), level.Size())
	fmt.Printf("  movable: %d  corners: %d  min moves: %d\n", stats.Movable, stats.Corners, level.InitialGrid().MinimumMoves())
	fmt.Println()
	fmt.Print(core.RenderASCII(level.InitialGrid()))
	if withSolution {
		fmt.Println()
		fmt.Println("Solution:")
		fmt.Print(core.RenderASCII(level.SolutionGrid()))
	}
}
