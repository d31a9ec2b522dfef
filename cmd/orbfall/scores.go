package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/orbfall/internal/registry"
	"github.com/vovakirdan/orbfall/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresReset  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores or run history",
	Long: `Display the top scores for a mode. Battle mode lists its best runs
instead; --recent lists them newest first. Without a mode, prints a
summary of every mode that has been played.

Examples:
  orbfall scores
  orbfall scores orbs
  orbfall scores orbs_battle --recent
  orbfall scores orbs_clear --reset`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "List runs newest first instead of best first")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Delete all scores for the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		return printSummary(out, store)
	}

	gameID := args[0]
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'orbfall list' to see available modes)", err)
	}

	if flagScoresReset {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Scores for %s cleared.\n", game.Title())
		return nil
	}

	if rr, ok := game.(registry.RunReporter); ok && rr.TracksRuns() {
		return printRuns(out, store, gameID, game.Title())
	}
	return printScores(out, store, gameID, game.Title())
}

func printScores(out io.Writer, store *storage.Store, gameID, title string) error {
	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", title)
	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'orbfall play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.HighScore(gameID); err == nil {
		fmt.Fprintf(out, "\nBest: %d\n", best)
	}
	return nil
}

func printRuns(out io.Writer, store *storage.Store, gameID, title string) error {
	heading := "Best Runs"
	query := store.BestRuns
	if flagScoresRecent {
		heading = "Recent Runs"
		query = store.RecentRuns
	}

	runs, err := query(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s - %s\n\n", heading, title)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'orbfall play %s' to start one!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-7s  %-7s  %-5s  %-7s  %-20s  %s\n", "Rank", "Result", "Reached", "Kills", "Gold", "Seed", "Date")
	fmt.Fprintf(out, "  %-4s  %-7s  %-7s  %-5s  %-7s  %-20s  %s\n", "----", "------", "-------", "-----", "----", "----", "----")
	for i, r := range runs {
		result := "Defeat"
		if r.Victory {
			result = "Victory"
		}
		fmt.Fprintf(out, "  %-4d  %-7s  %-7s  %-5d  %-7d  %-20d  %s\n",
			i+1, result, fmt.Sprintf("W%d-%d", r.WorldReached, r.StageReached),
			r.Defeated, r.Gold, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printSummary(out io.Writer, store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Score Summary")
	fmt.Fprintln(out)
	if len(stats) == 0 {
		fmt.Fprintln(out, "No games played yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-12s  %-6s  %-8s  %-8s  %s\n", "Mode", "Games", "Best", "Average", "Last played")
	fmt.Fprintf(out, "  %-12s  %-6s  %-8s  %-8s  %s\n", "----", "-----", "----", "-------", "-----------")
	for _, g := range registry.List() {
		s, ok := stats[g.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(out, "  %-12s  %-6d  %-8d  %-8.1f  %s\n",
			g.ID, s.GamesCount, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
