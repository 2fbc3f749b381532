package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
	"github.com/vovakirdan/circuit-repair/internal/circuit/levels"
	"github.com/vovakirdan/circuit-repair/internal/platform/tui"
	"github.com/vovakirdan/circuit-repair/internal/storage"
)

var (
	flagDifficulty string
	flagLevelFile  string
	flagLevelID    string
	flagTheme      string
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Circuit Repair",
	Long: `Start the puzzle in the terminal.

Without --difficulty a menu lets you pick a preset. After each solved
circuit press N for the next one; results are saved to the database.

Controls:
  Arrows/WASD/HJKL  - Move cursor
  Space/Enter       - Rotate tile clockwise
  R                 - Reset puzzle
  N                 - Next puzzle (after solving)
  P                 - Pause
  ?                 - Toggle help
  Esc/B             - Back to menu
  Q/Ctrl+C          - Quit

Examples:
  circuit play
  circuit play --difficulty hell
  circuit play --level ./levels/first.yaml
  circuit play --id 3f2c...           # from the levels directory
  circuit play --theme mono`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&flagDifficulty, "difficulty", "d", "", "Difficulty preset (skips the menu)")
	playCmd.Flags().StringVar(&flagLevelFile, "level", "", "Start with a level file (.yaml, .yml, .json)")
	playCmd.Flags().StringVar(&flagLevelID, "id", "", "Start with a saved level from the levels directory")
	playCmd.Flags().StringVar(&flagTheme, "theme", "default", "Board theme: default, mono")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with results (default: OS user)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger("circuit")
	// The TUI owns the terminal; keep log lines out of the way unless asked.
	if !flagVerbose {
		logger.SetOutput(io.Discard)
	}

	var first *core.Level
	switch {
	case flagLevelFile != "":
		lvl, err := levels.LoadFile(flagLevelFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		first = lvl.Level
	case flagLevelID != "":
		lvl, err := levels.NewLoader(flagLevelsDir).LoadByID(flagLevelID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		first = lvl.Level
	}

	if flagDifficulty != "" {
		if _, err := cfg.Presets.Get(flagDifficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: results will not be saved: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	appCfg := tui.AppConfig{
		Config:     cfg,
		Store:      store,
		Player:     playerName(),
		Logger:     logger,
		Seed:       flagSeed,
		Difficulty: flagDifficulty,
		Level:      first,
		Theme:      flagTheme,
		Width:      width,
		Height:     height,
	}
	if err := tui.RunApp(appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}
