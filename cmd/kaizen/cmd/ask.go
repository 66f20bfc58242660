package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kangouroukids/kaizen-assistant/internal/assistant"
	"github.com/kangouroukids/kaizen-assistant/internal/config"
	"github.com/kangouroukids/kaizen-assistant/internal/extractor"
	"github.com/kangouroukids/kaizen-assistant/internal/history"
	"github.com/kangouroukids/kaizen-assistant/internal/synthesis"
)

var askFormat string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question from the manual",
	Long: `Answer a free-text question from the Kaizen operating manual.

Examples:
  # Ask a question
  kaizen ask "Comment créer un devis ?"

  # JSON output for scripting
  kaizen ask "Qu'est-ce que l'AICI ?" --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askFormat, "format", "text", "Output format: text or json")
}

// newAssistant wires the question-answering chain from the loaded
// configuration. withHistory controls whether interactions are logged.
func newAssistant(cfg config.Config, withHistory bool) *assistant.Assistant {
	ext := extractor.New(extractor.Config{
		Path: cfg.Manual.Path,
		Bin:  cfg.Manual.PdftotextBin,
	})
	synth := synthesis.New(synthesis.Config{
		MaxLines:   cfg.Synthesis.MaxLines,
		MinLineLen: cfg.Synthesis.MinLineLen,
	})
	var hist *history.Store
	if withHistory {
		hist = history.NewStore(cfg.History.Path)
	}
	return assistant.New(ext, synth, hist, assistant.Config{
		MinTokenLen: cfg.Search.MinTokenLen,
		MaxResults:  cfg.Search.MaxResults,
	})
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	query := args[0]
	a := newAssistant(GetConfig(), true)

	resp := a.Ask(ctx, query)

	if askFormat == "json" {
		output, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(output))
		return nil
	}

	fmt.Println(resp.Answer.Text)
	if len(resp.Answer.Pages) > 0 {
		pages := make([]string, len(resp.Answer.Pages))
		for i, p := range resp.Answer.Pages {
			pages[i] = fmt.Sprintf("%d", p)
		}
		fmt.Printf("\nPages consultées : %s\n", strings.Join(pages, ", "))
	}

	return nil
}
