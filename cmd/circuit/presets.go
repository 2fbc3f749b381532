package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/circuit-repair/internal/config"
)

var flagPresetsYAML bool

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List difficulty presets",
	Long: `Show the difficulty presets from the active configuration.

With --yaml the configuration is printed in the file format, ready to be
edited and passed back with --config.

Examples:
  circuit presets
  circuit presets --yaml > ~/.circuit/configs/difficulty.yaml`,
	Args: cobra.NoArgs,
	Run:  runPresets,
}

func init() {
	presetsCmd.Flags().BoolVar(&flagPresetsYAML, "yaml", false, "Print as difficulty YAML")
}

func runPresets(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	if flagPresetsYAML {
		f := config.File{
			Generator: config.GeneratorConfig{
				MaxAttempts:      cfg.Generator.MaxAttempts,
				MaxSearchSteps:   cfg.Generator.MaxSearchSteps,
				MaxScrambleTries: cfg.Generator.MaxScrambleTries,
			},
			Default: cfg.Presets.Default().Name,
		}
		for _, d := range cfg.Presets.All() {
			f.Presets = append(f.Presets, config.FromDifficulty(d))
		}
		data, err := config.Marshal(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding presets: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(data))
		return
	}

	fmt.Printf("Difficulty presets (%s):\n", cfg.Source)
	fmt.Println()
	fmt.Printf("  %-8s  %-7s  %-7s  %-7s  %-8s  %s\n", "Name", "Grid", "Tiles", "Corners", "Scramble", "Par")
	fmt.Printf("  %-8s  %-7s  %-7s  %-7s  %-8s  %s\n", "----", "----", "-----", "-------", "--------", "---")

	def := cfg.Presets.Default().Name
	for _, d := range cfg.Presets.All() {
		par := "-"
		if d.TimeLimit > 0 {
			par = d.TimeLimit.String()
		}
		marker := ""
		if d.Name == def {
			marker = "  (default)"
		}
		fmt.Printf("  %-8s  %-7s  %-7s  %-7s  %-8.0f  %s%s\n",
			d.Name, d.GridSize, d.MovableTiles, d.Corners, d.ScrambleRatio*100, par, marker)
	}
}
