package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
	"github.com/vovakirdan/circuit-repair/internal/circuit/levels"
)

var flagCheckAll bool

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a level file",
	Long: `Load a level file, validate it and report the starting board.

A level is valid when its layout has exactly one source and one terminal,
every accepted set matches its tile kind, and the solution powers the
terminal. With --all every file in the levels directory is checked.

Examples:
  circuit check ./levels/first.yaml
  circuit check --all
  circuit check --all --levels ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&flagCheckAll, "all", false, "Check every level in the levels directory")
}

func runCheck(_ *cobra.Command, args []string) {
	switch {
	case flagCheckAll:
		checkDir(flagLevelsDir)
	case len(args) == 1:
		lvl, err := levels.LoadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		reportLevel(lvl)
	default:
		fmt.Fprintln(os.Stderr, "Error: give a level file or --all")
		os.Exit(1)
	}
}

func checkDir(dir string) {
	loader := levels.NewLoader(dir)
	all, err := loader.LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(all) == 0 {
		fmt.Printf("No valid levels in %s\n", dir)
		return
	}

	fmt.Printf("  %-36s  %-8s  %-4s  %-7s  %-9s  %s\n", "ID", "Preset", "Size", "Movable", "Min moves", "File")
	fmt.Printf("  %-36s  %-8s  %-4s  %-7s  %-9s  %s\n", "--", "------", "----", "-------", "---------", "----")
	for _, lvl := range all {
		stats := lvl.Stats()
		fmt.Printf("  %-36s  %-8s  %-4d  %-7d  %-9d  %s\n",
			lvl.ID, lvl.Difficulty, lvl.Size(), stats.Movable, lvl.InitialGrid().MinimumMoves(), lvl.FilePath)
	}
}

func reportLevel(lvl levels.Level) {
	g := lvl.InitialGrid()
	stats := lvl.Stats()

	name := lvl.Name
	if name == "" {
		name = lvl.ID
	}
	fmt.Printf("Level %s\n", name)
	fmt.Printf("  id: %s  difficulty: %s  seed: %d\n", lvl.ID, lvl.Difficulty, lvl.Seed)
	fmt.Printf("  movable: %d  corners: %d  path: %d cells\n", stats.Movable, stats.Corners, len(lvl.Path))

	if core.IsConnected(g) {
		fmt.Println("  state: solved")
	} else {
		fmt.Printf("  state: unsolved, %d rotations to repair\n", g.MinimumMoves())
	}
	fmt.Println()
	fmt.Print(core.RenderASCII(g))
}
