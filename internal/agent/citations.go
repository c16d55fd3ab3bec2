package agent

import (
	"fmt"
	"strings"
)

// RenderCitations appends the source URLs to the answer text as a markdown
// list, in the same order the results were assembled. Returns the answer
// unchanged when there are no sources.
func RenderCitations(answer string, sources []string) string {
	if len(sources) == 0 {
		return answer
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimRight(answer, "\n"))
	sb.WriteString("\n\n**Sources:**\n")
	for _, url := range sources {
		fmt.Fprintf(&sb, "- %s\n", url)
	}

	return sb.String()
}
