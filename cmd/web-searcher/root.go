package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Abdull-Majeed/web-search-agent/internal/agent"
	"github.com/Abdull-Majeed/web-search-agent/internal/config"
	"github.com/Abdull-Majeed/web-search-agent/internal/gemini"
	"github.com/Abdull-Majeed/web-search-agent/internal/logger"
	"github.com/Abdull-Majeed/web-search-agent/internal/serpapi"
)

var cfg *config.Config

var (
	flagModel  string
	flagTopN   int
	flagNoPlan bool
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:   "web-searcher",
	Short: "Research assistant that searches the web and answers with cited sources",
	Long: `Web Search Agent is an LLM-powered research assistant. Each question is
turned into focused Google searches via SerpAPI, the result snippets are
assembled into grounding context, and Gemini writes an answer that cites
the source URLs.`,
	PersistentPreRun: loadRootConfig,
	SilenceUsage:     true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func loadRootConfig(_ *cobra.Command, _ []string) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg = config.Load()
	if flagModel != "" {
		cfg.Model = flagModel
	}
	if flagTopN != 0 {
		cfg.MaxResults = flagTopN
	}
	if flagNoPlan {
		cfg.PlanQueries = false
	}
	cfg.Debug = flagDebug
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagModel, "model", "m", "", "Gemini model name (default gemini-2.5-flash)")
	rootCmd.PersistentFlags().IntVarP(&flagTopN, "topn", "n", 0, "search results per query, 1-10 (default 10)")
	rootCmd.PersistentFlags().BoolVar(&flagNoPlan, "no-plan", false, "search with the raw question instead of LLM-planned queries")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "enable debug logging")
}

func newLogger() *zap.Logger {
	level := "info"
	if cfg.Debug {
		level = "debug"
	}
	return logger.New(level, "console")
}

// buildAgent wires the provider clients into a research agent. The search
// client is also returned so callers can run its health check.
func buildAgent(zlog *zap.Logger) (*agent.Agent, *serpapi.Client) {
	searchClient := serpapi.NewClient(cfg.SerpAPIKey, cfg.SearchTimeout)
	genClient := gemini.NewClient(cfg.GeminiAPIKey, cfg.GenerateTimeout)

	a := agent.New(searchClient, genClient, zlog, agent.Options{
		Model:           cfg.Model,
		MaxResults:      cfg.MaxResults,
		MaxContextBytes: cfg.MaxContextBytes,
		HistoryWindow:   cfg.HistoryWindow,
		PlanQueries:     cfg.PlanQueries,
	})

	return a, searchClient
}
