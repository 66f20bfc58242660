package config

import "time"

// Config holds all application configuration.
type Config struct {
	Manual    Manual    `mapstructure:"manual"`
	Search    Search    `mapstructure:"search"`
	Synthesis Synthesis `mapstructure:"synthesis"`
	Freshdesk Freshdesk `mapstructure:"freshdesk"`
	History   History   `mapstructure:"history"`
	MCP       MCP       `mapstructure:"mcp"`
}

// Manual holds source document configuration.
type Manual struct {
	Path         string `mapstructure:"path"`
	PdftotextBin string `mapstructure:"pdftotext_bin"`
}

// Search holds page search tuning.
type Search struct {
	MinTokenLen int `mapstructure:"min_token_len"` // tokens shorter than this are discarded
	MaxResults  int `mapstructure:"max_results"`   // top-K pages returned
}

// Synthesis holds extractive fallback tuning.
type Synthesis struct {
	MaxLines   int `mapstructure:"max_lines"`    // lines kept in the fallback answer
	MinLineLen int `mapstructure:"min_line_len"` // shorter lines are ignored
}

// Freshdesk holds helpdesk integration configuration. Both Domain and APIKey
// must be set for the integration to be active; otherwise ticket submission
// is a disabled feature, not an error.
type Freshdesk struct {
	Domain  string        `mapstructure:"domain"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// History holds conversation log configuration.
type History struct {
	Path string `mapstructure:"path"`
}

// MCP holds MCP server configuration.
type MCP struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Manual: Manual{
			Path:         "Kaizen_-_Manuel_ope_ratoire.pdf",
			PdftotextBin: "pdftotext",
		},
		Search: Search{
			MinTokenLen: 3,
			MaxResults:  5,
		},
		Synthesis: Synthesis{
			MaxLines:   6,
			MinLineLen: 30,
		},
		Freshdesk: Freshdesk{
			Timeout: 30 * time.Second,
		},
		History: History{
			Path: "chat_history.json",
		},
		MCP: MCP{
			Name:    "kaizen-assistant",
			Version: "1.0.0",
		},
	}
}
