package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
	flagScoresAll   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top high scores for the specified mode (default: blockfall).

Examples:
  blockfall scores
  blockfall scores blockfall_classic --limit 20
  blockfall scores --limit 0          # every recorded game
  blockfall scores --all              # summary of every mode
  blockfall scores --clear blockfall  # delete the mode's scores`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show (0 = all)")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the mode")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show a summary for every mode")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := blockfall.Marathon.ID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blockfall list' to see available modes.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}

	switch {
	case flagScoresClear:
		err = clearScores(os.Stdout, store, gameID)
	case flagScoresAll:
		err = printSummary(os.Stdout, store)
	default:
		err = printScores(os.Stdout, store, gameID, flagScoresLimit)
	}
	store.Close()

	if err != nil {
		fail("%v", err)
	}
}

// modeTitle returns the registered title for gameID, or the ID itself.
func modeTitle(gameID string) string {
	for _, g := range registry.List() {
		if g.ID == gameID {
			return g.Title
		}
	}
	return gameID
}

// printScores writes the leaderboard for gameID. A limit of 0 or less lists
// every recorded game.
func printScores(w io.Writer, store *storage.Store, gameID string, limit int) error {
	var (
		scores []storage.ScoreEntry
		err    error
	)
	if limit <= 0 {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, limit)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintf(w, "High Scores - %s\n\n", modeTitle(gameID))

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'blockfall play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-*s  %-8s  %-5s  %-5s  %s\n", "Rank", storage.MaxPlayerName, "Player", "Score", "Level", "Lines", "Date")
	fmt.Fprintf(w, "  %-4s  %-*s  %-8s  %-5s  %-5s  %s\n", "----", storage.MaxPlayerName, "------", "-----", "-----", "-----", "----")

	for i, entry := range scores {
		fmt.Fprintf(w, "  %-4d  %-*s  %-8d  %-5d  %-5d  %s\n",
			i+1, storage.MaxPlayerName, entry.PlayerName, entry.Score,
			entry.Level, entry.RowsCleared, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GameStats(gameID)
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %d  |  Games: %d  |  Average: %.0f  |  Highest level: %d  |  Lines: %d\n",
		stats.HighScore, stats.GamesCount, stats.AvgScore, stats.MaxLevel, stats.TotalRows)
	return nil
}

// printSummary writes one line of stats per mode that has been played.
func printSummary(w io.Writer, store *storage.Store) error {
	all, err := store.AllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	if len(all) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Fprintf(w, "  %-20s  %-6s  %-8s  %-8s  %-5s  %s\n", "Mode", "Games", "Best", "Average", "Level", "Lines")
	fmt.Fprintf(w, "  %-20s  %-6s  %-8s  %-8s  %-5s  %s\n", "----", "-----", "----", "-------", "-----", "-----")
	for _, id := range ids {
		st := all[id]
		fmt.Fprintf(w, "  %-20s  %-6d  %-8d  %-8.0f  %-5d  %d\n",
			modeTitle(id), st.GamesCount, st.HighScore, st.AvgScore, st.MaxLevel, st.TotalRows)
	}
	return nil
}

// clearScores deletes every score stored for gameID.
func clearScores(w io.Writer, store *storage.Store, gameID string) error {
	if err := store.ClearScores(gameID); err != nil {
		return err
	}
	fmt.Fprintf(w, "Cleared scores for %s\n", modeTitle(gameID))
	return nil
}
