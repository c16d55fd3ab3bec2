package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Abdull-Majeed/web-search-agent/internal/session"
	"github.com/Abdull-Majeed/web-search-agent/internal/ui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive research chat",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	zlog := newLogger()
	defer zlog.Sync()

	display := ui.NewDisplay()
	researcher, searchClient := buildAgent(zlog)

	// A bad key should surface now, not on the first question. Search
	// failures mid-conversation only degrade the answer, so this is a
	// warning rather than a fatal error.
	if err := searchClient.HealthCheck(); err != nil {
		display.PrintWarning("Search provider check failed: " + err.Error())
		display.PrintInfo("Answers will fall back to model knowledge until search recovers.")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		display.PrintGoodbye()
		cancel()
		os.Exit(0)
	}()

	sess := session.New()
	display.PrintWelcome(cfg.Model)

	for {
		display.PrintPrompt()
		query, err := ui.ReadUserInput()
		if err != nil {
			break
		}

		switch query {
		case "":
			continue
		case "/exit", "/quit", "exit", "quit":
			display.PrintGoodbye()
			return nil
		case "/clear":
			display.ClearScreen()
			display.PrintWelcome(cfg.Model)
			continue
		case "/history":
			display.PrintHistory(sess.Turns())
			continue
		}

		now := time.Now()
		display.PrintUserMessage(query, now)

		// The pipeline reads prior turns; only the UI appends to the
		// session. The user turn stays even when the turn fails.
		history := sess.Recent(cfg.HistoryWindow)
		sess.Append(session.Turn{Role: session.RoleUser, Content: query, Timestamp: now})

		display.PrintSearchActivity("Researching")
		display.StartAssistantResponse()

		result, err := researcher.RunStream(ctx, query, history, display.WriteAnswer)
		if err != nil {
			display.PrintError(err)
			continue
		}

		display.EndAssistantResponse(result.Sources)

		sess.Append(session.Turn{
			Role:    session.RoleAssistant,
			Content: result.Answer,
			Sources: result.Sources,
		})
	}

	display.PrintGoodbye()
	return nil
}
