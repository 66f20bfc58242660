package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kangouroukids/kaizen-assistant/internal/freshdesk"
	"github.com/kangouroukids/kaizen-assistant/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the MCP server for agent clients.

The server communicates via stdio and provides three tools:
  - search_manual: Rank manual pages against a query
  - ask_manual:    Answer a question with cited pages
  - create_ticket: File a Freshdesk ticket for an unanswered question

Example:
  kaizen serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	a := newAssistant(cfg, true)
	helpdesk := freshdesk.New(freshdesk.Config{
		Domain:  cfg.Freshdesk.Domain,
		APIKey:  cfg.Freshdesk.APIKey,
		Timeout: cfg.Freshdesk.Timeout,
	})

	server := mcp.NewServer(mcp.Config{
		Name:    cfg.MCP.Name,
		Version: cfg.MCP.Version,
	}, a, helpdesk)

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting MCP server...")

	return server.ServeStdio()
}
