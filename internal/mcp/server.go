// Package mcp exposes the assistant over the Model Context Protocol, so
// agent clients can search the manual, ask questions, and file tickets.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kangouroukids/kaizen-assistant/internal/assistant"
	"github.com/kangouroukids/kaizen-assistant/internal/freshdesk"
	"github.com/kangouroukids/kaizen-assistant/internal/ticket"
	"github.com/kangouroukids/kaizen-assistant/pkg/models"
)

// snippetLen bounds page text returned by search_manual.
const snippetLen = 500

// Config holds MCP server configuration.
type Config struct {
	Name    string
	Version string
}

// Server wraps the MCP server around the assistant and the Freshdesk
// client.
type Server struct {
	mcpServer *server.MCPServer
	assistant *assistant.Assistant
	helpdesk  *freshdesk.Client
}

// NewServer creates an MCP server with the manual tools registered.
func NewServer(config Config, a *assistant.Assistant, helpdesk *freshdesk.Client) *Server {
	mcpServer := server.NewMCPServer(
		config.Name,
		config.Version,
		server.WithToolCapabilities(true),
	)

	s := &Server{
		mcpServer: mcpServer,
		assistant: a,
		helpdesk:  helpdesk,
	}

	searchTool := mcp.NewTool("search_manual",
		mcp.WithDescription("Search the Kaizen operating manual by keywords. Returns ranked pages with relevance scores and text snippets."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query string"),
		),
	)
	mcpServer.AddTool(searchTool, s.searchHandler)

	askTool := mcp.NewTool("ask_manual",
		mcp.WithDescription("Ask a question about the Kaizen manual. Returns a synthesized answer with cited page numbers."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Question in natural language (French)"),
		),
	)
	mcpServer.AddTool(askTool, s.askHandler)

	ticketTool := mcp.NewTool("create_ticket",
		mcp.WithDescription("File a Freshdesk support ticket for a question the manual did not answer. Falls back to returning the ticket text when the integration is not configured."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The unanswered question"),
		),
		mcp.WithString("email", mcp.Description("Requester email")),
		mcp.WithString("name", mcp.Description("Requester name")),
		mcp.WithString("agency", mcp.Description("Requester agency")),
	)
	mcpServer.AddTool(ticketTool, s.ticketHandler)

	return s
}

// searchHandler handles the search_manual tool call.
func (s *Server) searchHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	results := s.assistant.Search(ctx, query)

	type hit struct {
		Page    int    `json:"page"`
		Score   int    `json:"score"`
		Snippet string `json:"snippet"`
	}
	hits := make([]hit, len(results))
	for i, r := range results {
		hits[i] = hit{Page: r.Page, Score: r.Score, Snippet: r.Snippet(snippetLen)}
	}

	out, err := json.Marshal(hits)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// askHandler handles the ask_manual tool call.
func (s *Server) askHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	resp := s.assistant.Ask(ctx, query)

	out, err := json.Marshal(resp)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal answer: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// ticketHandler handles the create_ticket tool call.
func (s *Server) ticketHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	profile := &models.UserProfile{
		Email:  req.GetString("email", ""),
		Name:   req.GetString("name", ""),
		Agency: req.GetString("agency", ""),
	}

	results := s.assistant.Search(ctx, query)
	draft := ticket.Draft(query, results, profile, time.Now())

	result := s.helpdesk.CreateTicket(ctx, draft)
	if !result.Success {
		// The caller still gets the ticket text for a manual filing.
		payload := struct {
			freshdesk.SubmitResult
			ManualText string `json:"manual_text"`
		}{result, ticket.ManualText(draft)}
		out, err := json.Marshal(payload)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}

	out, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// ServeStdio starts the MCP server using stdio transport.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
