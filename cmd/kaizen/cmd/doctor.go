package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/spf13/cobra"

	"github.com/kangouroukids/kaizen-assistant/internal/extractor"
	"github.com/kangouroukids/kaizen-assistant/internal/freshdesk"
	"github.com/kangouroukids/kaizen-assistant/internal/history"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the installation and configuration",
	Long: `Run one-shot diagnostics: pdftotext availability, manual PDF
presence and page count, extraction, history file writability, and
Freshdesk connectivity.

Example:
  kaizen doctor`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := GetConfig()
	failures := 0

	check := func(name string, err error, detail string) {
		if err != nil {
			failures++
			fmt.Printf("[fail] %s: %v\n", name, err)
			return
		}
		if detail != "" {
			fmt.Printf("[ ok ] %s (%s)\n", name, detail)
		} else {
			fmt.Printf("[ ok ] %s\n", name)
		}
	}

	// External extraction utility
	bin := cfg.Manual.PdftotextBin
	path, err := exec.LookPath(bin)
	check("pdftotext on PATH", err, path)

	// Manual PDF
	if cfg.Manual.Path == "" {
		failures++
		fmt.Println("[fail] manual PDF: no path configured (manual.path)")
	} else if _, err := os.Stat(cfg.Manual.Path); err != nil {
		failures++
		fmt.Printf("[fail] manual PDF: %v\n", err)
	} else {
		pageCount, err := api.PageCountFile(cfg.Manual.Path)
		check("manual PDF", err, fmt.Sprintf("%s, %d pages", cfg.Manual.Path, pageCount))

		// Full extraction, compared against the physical page count.
		// Fewer extracted pages than physical ones usually means blank
		// or image-only pages.
		ext := extractor.New(extractor.Config{Path: cfg.Manual.Path, Bin: bin})
		pages, err := ext.Pages(ctx)
		check("text extraction", err, fmt.Sprintf("%d of %d pages with text", len(pages), pageCount))
	}

	// History log
	store := history.NewStore(cfg.History.Path)
	_, err = store.Load()
	check("history log readable", err, cfg.History.Path)
	check("history log writable", store.CheckWritable(), cfg.History.Path)

	// Freshdesk
	helpdesk := freshdesk.New(freshdesk.Config{
		Domain:  cfg.Freshdesk.Domain,
		APIKey:  cfg.Freshdesk.APIKey,
		Timeout: cfg.Freshdesk.Timeout,
	})
	if !helpdesk.Enabled() {
		fmt.Println("[ -- ] freshdesk: not configured (optional; set FRESHDESK_DOMAIN and FRESHDESK_API_KEY)")
	} else {
		check("freshdesk connectivity", helpdesk.CheckConnection(ctx), cfg.Freshdesk.Domain)
	}

	fmt.Println()
	if failures > 0 {
		return fmt.Errorf("%d check(s) failed", failures)
	}
	fmt.Println("All checks passed.")
	return nil
}
