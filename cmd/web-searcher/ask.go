package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Abdull-Majeed/web-search-agent/internal/agent"
	"github.com/Abdull-Majeed/web-search-agent/internal/ui"
)

var flagOutfile string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single research question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&flagOutfile, "outfile", "o", "", "write the full result trace to a JSON file")
	rootCmd.AddCommand(askCmd)
}

func runAsk(_ *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	zlog := newLogger()
	defer zlog.Sync()

	display := ui.NewDisplay()
	researcher, _ := buildAgent(zlog)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	question := strings.Join(args, " ")

	display.PrintSearchActivity("Researching")
	result, err := researcher.Run(ctx, question, nil)
	if err != nil {
		return err
	}

	display.PrintSeparator()
	fmt.Println(display.RenderMarkdown(agent.RenderCitations(result.Answer, result.Sources)))
	display.PrintSeparator()

	if flagOutfile != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result trace: %w", err)
		}
		if err := os.WriteFile(flagOutfile, data, 0644); err != nil {
			return fmt.Errorf("writing result trace: %w", err)
		}
		display.PrintInfo("Saved detailed trace to " + flagOutfile)
	}

	return nil
}
