package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/circuit-repair/internal/platform/tui"
	"github.com/vovakirdan/circuit-repair/internal/storage"
)

var (
	flagResultsLimit int
	flagResultsClear bool
	flagResultsTUI   bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [difficulty]",
	Short: "Show best results",
	Long: `Display the best solves for a difficulty, ranked by stars, time and
moves, followed by aggregate stats. Without a difficulty, a summary line
is shown for every preset.

Examples:
  circuit results
  circuit results hard
  circuit results hard --limit 25
  circuit results --tui
  circuit results hard --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().IntVarP(&flagResultsLimit, "limit", "n", 10, "Number of results to show")
	resultsCmd.Flags().BoolVar(&flagResultsClear, "clear", false, "Delete stored results (all, or for the given difficulty)")
	resultsCmd.Flags().BoolVar(&flagResultsTUI, "tui", false, "Browse results in the interactive table")
}

func runResults(_ *cobra.Command, args []string) {
	cfg := loadConfig()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	difficulty := ""
	if len(args) == 1 {
		difficulty = args[0]
		if _, err := cfg.Presets.Get(difficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintf(os.Stderr, "Available: %s\n", strings.Join(cfg.Presets.Names(), ", "))
			store.Close()
			os.Exit(1)
		}
	}

	switch {
	case flagResultsClear:
		if err := store.ClearResults(difficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing results: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		if difficulty == "" {
			fmt.Println("All results cleared.")
		} else {
			fmt.Printf("Results for %s cleared.\n", difficulty)
		}
	case flagResultsTUI:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunResults(store, cfg.Presets.Names(), width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			store.Close()
			os.Exit(1)
		}
	case difficulty == "":
		printSummary(store, cfg.Presets.Names())
	default:
		printResults(store, difficulty, flagResultsLimit)
	}
}

func printSummary(store *storage.Store, names []string) {
	all, err := store.AllStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}

	fmt.Println("Results by difficulty")
	fmt.Println()
	fmt.Printf("  %-8s  %-6s  %-6s  %-6s  %-9s  %s\n", "Preset", "Solved", "Best", "Avg", "3 stars", "Last played")
	fmt.Printf("  %-8s  %-6s  %-6s  %-6s  %-9s  %s\n", "------", "------", "----", "---", "-------", "-----------")
	for _, name := range names {
		st, ok := all[name]
		if !ok || st.Solved == 0 {
			fmt.Printf("  %-8s  %-6d  %-6s  %-6s  %-9s  %s\n", name, 0, "-", "-", "-", "-")
			continue
		}
		fmt.Printf("  %-8s  %-6d  %-6s  %-6s  %-9d  %s\n",
			name, st.Solved, clock(st.BestTime.Seconds()), clock(st.AvgTime.Seconds()),
			st.ThreeStars, st.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func printResults(store *storage.Store, difficulty string, limit int) {
	results, err := store.TopResults(difficulty, limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		return
	}

	fmt.Printf("Best results - %s\n", difficulty)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No circuits repaired yet.")
		fmt.Println()
		fmt.Printf("Play 'circuit play --difficulty %s' to set the first result!\n", difficulty)
		return
	}

	fmt.Printf("  %-4s  %-5s  %-6s  %-7s  %-12s  %s\n", "Rank", "Stars", "Time", "Moves", "Player", "Date")
	fmt.Printf("  %-4s  %-5s  %-6s  %-7s  %-12s  %s\n", "----", "-----", "----", "-----", "------", "----")
	for i, r := range results {
		fmt.Printf("  %-4d  %-5s  %-6s  %-7s  %-12s  %s\n",
			i+1,
			strings.Repeat("*", r.Stars),
			clock(r.Duration.Seconds()),
			fmt.Sprintf("%d/%d", r.Moves, r.MinMoves),
			r.Player,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	if st, err := store.Stats(difficulty); err == nil && st.Solved > 0 {
		fmt.Println()
		fmt.Printf("Solved: %d  Best: %s  Avg: %s  Avg moves: %.1f  Stars: %d\n",
			st.Solved, clock(st.BestTime.Seconds()), clock(st.AvgTime.Seconds()), st.AvgMoves, st.TotalStars)
	}
}

// clock formats seconds as m:ss.
func clock(secs float64) string {
	s := int(secs)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
