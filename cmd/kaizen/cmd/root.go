package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kangouroukids/kaizen-assistant/internal/config"
)

var (
	cfgFile string
	verbose bool
	cfg     config.Config
)

// GetConfig returns the loaded configuration.
func GetConfig() config.Config {
	return cfg
}

var rootCmd = &cobra.Command{
	Use:   "kaizen",
	Short: "Kaizen assistant: question answering over the operating manual",
	Long: `The Kaizen assistant answers free-text questions about the Kaizen
operating manual. It extracts the manual PDF with pdftotext, ranks pages by
keyword overlap, synthesizes an answer, and can file a Freshdesk ticket when
the manual does not help.

Commands:
  ask      Answer a question from the manual
  search   Rank manual pages against a query
  ticket   Draft and submit a Freshdesk ticket
  history  Show or clear the conversation log
  serve    Start the MCP server for agent clients
  doctor   Check the installation and configuration`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogger() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func initConfig() {
	// Start with defaults
	cfg = config.Defaults()

	// A local .env keeps the Freshdesk credentials out of the config file.
	// Missing file is fine.
	godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/kaizen-assistant")
		viper.AddConfigPath(".")
	}

	// Environment variable overrides
	// KAIZEN_MANUAL_PATH -> manual.path
	viper.SetEnvPrefix("KAIZEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Explicitly bind nested env vars. The Freshdesk keys also accept the
	// unprefixed names the original deployment used.
	viper.BindEnv("manual.path", "KAIZEN_MANUAL_PATH")
	viper.BindEnv("manual.pdftotext_bin", "KAIZEN_MANUAL_PDFTOTEXT_BIN")
	viper.BindEnv("search.min_token_len", "KAIZEN_SEARCH_MIN_TOKEN_LEN")
	viper.BindEnv("search.max_results", "KAIZEN_SEARCH_MAX_RESULTS")
	viper.BindEnv("synthesis.max_lines", "KAIZEN_SYNTHESIS_MAX_LINES")
	viper.BindEnv("synthesis.min_line_len", "KAIZEN_SYNTHESIS_MIN_LINE_LEN")
	viper.BindEnv("freshdesk.domain", "KAIZEN_FRESHDESK_DOMAIN", "FRESHDESK_DOMAIN")
	viper.BindEnv("freshdesk.api_key", "KAIZEN_FRESHDESK_API_KEY", "FRESHDESK_API_KEY")
	viper.BindEnv("history.path", "KAIZEN_HISTORY_PATH")
	viper.BindEnv("mcp.name", "KAIZEN_MCP_NAME")
	viper.BindEnv("mcp.version", "KAIZEN_MCP_VERSION")

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("config file error", "error", err)
		}
		// No config file - use defaults + env vars
	}

	// Unmarshal into struct (merges config file with defaults)
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Warn("failed to parse config", "error", err)
	}
}
