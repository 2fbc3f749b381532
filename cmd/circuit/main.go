// circuit is a terminal puzzle: rotate wire tiles until power flows from
// the source to the terminal.
//
// Usage:
//
//	circuit play                - Pick a difficulty and play
//	circuit generate            - Generate a level and print or save it
//	circuit check <file>        - Validate a level file and report its state
//	circuit presets             - List difficulty presets
//	circuit results [difficulty] - Show best results
//	circuit serve               - Start SSH server for remote play
//	circuit api                 - Start the HTTP JSON API
//
// Global flags:
//
//	--seed <value>   - Set RNG seed for reproducible levels
//	--db <path>      - Set results database path (default: ~/.circuit/results.db)
//	--config <path>  - Difficulty YAML (default: search ~/.circuit/configs, ./configs)
//	--levels <dir>   - Directory for saved level files
//	--verbose        - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/circuit-repair/internal/config"
)

var (
	// Global flags
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagLevelsDir string
	flagVerbose   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "circuit",
	Short: "Circuit Repair - rotate the wires, close the circuit",
	Long: `Circuit Repair is a terminal puzzle. Each level is a square grid with a
power source, a terminal and a single wire route between them. Some wire
tiles start rotated the wrong way; rotate them until the terminal lights up.

Available commands:
  play      - Pick a difficulty and play
  generate  - Generate a level (ASCII, YAML or JSON)
  check     - Validate a level file
  presets   - Show difficulty presets
  results   - View best results
  serve     - Start SSH server for remote play
  api       - Start the HTTP JSON API

Settings can also come from CIRCUIT_DB, CIRCUIT_CONFIG and CIRCUIT_LEVELS,
or from a .env file in the working directory. Flags take precedence.

Examples:
  circuit play
  circuit play --difficulty hard
  circuit generate --difficulty hell --seed 42 --save
  circuit serve --ssh :2222
  circuit api --addr :8080`,
}

func init() {
	// .env only fills in variables that are not already set; a missing file is fine.
	_ = godotenv.Load()

	// Global persistent flags, defaulting to the environment
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", envOr("CIRCUIT_DB", "~/.circuit/results.db"), "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", envOr("CIRCUIT_CONFIG", ""), "Path to difficulty config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", envOr("CIRCUIT_LEVELS", "levels"), "Directory for saved level files")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
}

// envOr returns the environment value for key, or def when unset.
func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// newLogger builds the CLI logger with the given prefix.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig loads difficulty presets or exits.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
