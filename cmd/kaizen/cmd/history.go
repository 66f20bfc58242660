package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kangouroukids/kaizen-assistant/internal/history"
)

var (
	historyLimit  int
	historyFormat string
	historyClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the conversation log",
	Long: `Show the most recent logged questions and answers.

Examples:
  # Last 10 interactions
  kaizen history

  # Full log as JSON
  kaizen history --limit 0 --format json

  # Empty the log
  kaizen history --clear`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of entries to show, newest last (0 = all)")
	historyCmd.Flags().StringVar(&historyFormat, "format", "text", "Output format: text or json")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Empty the log")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store := history.NewStore(GetConfig().History.Path)

	if historyClear {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Println("History cleared.")
		return nil
	}

	entries, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if historyLimit > 0 && len(entries) > historyLimit {
		entries = entries[len(entries)-historyLimit:]
	}

	if len(entries) == 0 {
		fmt.Println("No history.")
		return nil
	}

	if historyFormat == "json" {
		output, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(output))
		return nil
	}

	for _, e := range entries {
		pages := make([]string, len(e.Pages))
		for i, p := range e.Pages {
			pages[i] = fmt.Sprintf("%d", p)
		}
		fmt.Printf("[%s] %s\n", e.Timestamp, e.Query)
		fmt.Printf("  Results: %d", e.ResultCount)
		if len(pages) > 0 {
			fmt.Printf("  Pages: %s", strings.Join(pages, ", "))
		}
		fmt.Println()
	}

	return nil
}
