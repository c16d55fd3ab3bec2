// Package ui renders the chat transcript in the terminal.
package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/Abdull-Majeed/web-search-agent/internal/session"
)

// Color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// Display handles terminal output: message frames, status lines, and
// markdown rendering of finished answers.
type Display struct {
	width          int
	renderer       *glamour.TermRenderer
	responseBuffer strings.Builder
	startTime      time.Time
}

// NewDisplay creates a display sized to the current terminal.
func NewDisplay() *Display {
	width := terminalWidth()

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(width-4, 100)),
	)

	return &Display{
		width:    width,
		renderer: renderer,
	}
}

// ClearScreen clears the terminal.
func (d *Display) ClearScreen() {
	fmt.Print("\033[2J\033[H")
}

// PrintWelcome displays the welcome banner.
func (d *Display) PrintWelcome(modelName string) {
	fmt.Printf("%s%s╔══════════════════════════════════════════════╗%s\n", colorBold, colorCyan, colorReset)
	fmt.Printf("%s%s║        Web Search Agent — research chat       ║%s\n", colorBold, colorCyan, colorReset)
	fmt.Printf("%s%s╚══════════════════════════════════════════════╝%s\n", colorBold, colorCyan, colorReset)
	fmt.Printf("\n%sModel:%s %s\n", colorGray, colorReset, modelName)
	fmt.Printf("%sAsk any question — the agent researches in real time and cites its sources.%s\n", colorGray, colorReset)
	fmt.Printf("%sCommands:%s /exit | /clear | /history\n\n", colorGray, colorReset)
}

// PrintGoodbye displays the goodbye message.
func (d *Display) PrintGoodbye() {
	fmt.Printf("\n%sGoodbye!%s\n", colorCyan, colorReset)
}

// PrintPrompt displays the input prompt.
func (d *Display) PrintPrompt() {
	fmt.Printf("\n%s%s❯%s ", colorBold, colorGreen, colorReset)
}

// PrintUserMessage displays a user message with its timestamp.
func (d *Display) PrintUserMessage(content string, timestamp time.Time) {
	fmt.Printf("\n%s┌─ You · %s%s\n", colorGray, timestamp.Format("15:04:05"), colorReset)
	fmt.Printf("%s│%s %s\n", colorGray, colorReset, content)
	fmt.Printf("%s└%s\n", colorGray, colorReset)
}

// StartAssistantResponse opens an assistant frame and resets stream state.
func (d *Display) StartAssistantResponse() {
	d.startTime = time.Now()
	d.responseBuffer.Reset()
	fmt.Printf("\n%s┌─ Assistant · %s%s\n", colorGray, time.Now().Format("15:04:05"), colorReset)
}

// WriteAnswer streams raw answer text as it arrives.
func (d *Display) WriteAnswer(text string) {
	d.responseBuffer.WriteString(text)
	fmt.Print(text)
}

// EndAssistantResponse re-renders the buffered answer as markdown, then
// prints the sources and the elapsed time.
func (d *Display) EndAssistantResponse(sources []string) {
	duration := time.Since(d.startTime)

	fmt.Println()

	if d.responseBuffer.Len() > 0 && d.renderer != nil {
		if rendered, err := d.renderer.Render(d.responseBuffer.String()); err == nil {
			fmt.Println(strings.TrimRight(rendered, "\n"))
		}
	}

	if len(sources) > 0 {
		fmt.Printf("\n%s│ Sources:%s\n", colorGray, colorReset)
		for _, url := range sources {
			fmt.Printf("%s│   • %s%s\n", colorGray, truncate(url, 90), colorReset)
		}
	}

	fmt.Printf("%s└ %s%s\n", colorGray, formatDuration(duration), colorReset)
}

// PrintHistory displays the full transcript of a session.
func (d *Display) PrintHistory(turns []session.Turn) {
	if len(turns) == 0 {
		d.PrintInfo("No conversation history yet")
		return
	}

	d.PrintSeparator()
	for _, turn := range turns {
		ts := turn.Timestamp.Format("15:04:05")
		if turn.Role == session.RoleUser {
			fmt.Printf("\n[%s] You:\n%s\n", ts, turn.Content)
			continue
		}
		fmt.Printf("\n[%s] Assistant:\n%s\n", ts, turn.Content)
		if len(turn.Sources) > 0 {
			fmt.Println("Sources:")
			for _, url := range turn.Sources {
				fmt.Printf("  - %s\n", url)
			}
		}
	}
	d.PrintSeparator()
}

// PrintSeparator prints a visual separator.
func (d *Display) PrintSeparator() {
	fmt.Printf("%s%s%s\n", colorDim, strings.Repeat("─", min(d.width, 80)), colorReset)
}

// PrintSearchActivity shows search progress.
func (d *Display) PrintSearchActivity(message string) {
	fmt.Printf("%s%s⌕ %s...%s\n", colorDim, colorCyan, message, colorReset)
}

// PrintInfo displays an info message.
func (d *Display) PrintInfo(msg string) {
	fmt.Printf("%sℹ %s%s\n", colorCyan, msg, colorReset)
}

// PrintWarning displays a warning message.
func (d *Display) PrintWarning(msg string) {
	fmt.Printf("%s⚠ %s%s\n", colorYellow, msg, colorReset)
}

// PrintError displays an error message.
func (d *Display) PrintError(err error) {
	fmt.Printf("%s✗ Error: %v%s\n", colorRed, err, colorReset)
}

// PrintSuccess displays a success message.
func (d *Display) PrintSuccess(msg string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, msg, colorReset)
}

// RenderMarkdown renders markdown for one-shot output. Falls back to the
// raw text when rendering fails.
func (d *Display) RenderMarkdown(text string) string {
	if d.renderer == nil {
		return text
	}
	rendered, err := d.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(rendered, "\n")
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
