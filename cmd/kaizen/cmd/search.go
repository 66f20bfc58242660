package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var searchFormat string

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Rank manual pages against a query",
	Long: `Rank the pages of the manual by keyword overlap with the query.

Examples:
  # Basic search
  kaizen search "facturation mensuelle"

  # JSON output for scripting
  kaizen search "appariement" --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchFormat, "format", "text", "Output format: text or json")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	query := args[0]
	a := newAssistant(GetConfig(), false)

	results := a.Search(ctx, query)

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	if searchFormat == "json" {
		output, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Found %d results:\n\n", len(results))
	for i, r := range results {
		fmt.Printf("─── Result %d ───\n", i+1)
		fmt.Printf("Page:  %d\n", r.Page)
		fmt.Printf("Score: %d\n", r.Score)
		fmt.Printf("Text:\n%s\n\n", r.Snippet(500))
	}

	return nil
}
