package agent

import (
	"fmt"
	"strings"
)

// BuildContext formats search results into the grounding text block for the
// synthesis prompt. Deterministic for a given input: blocks appear in plan
// order, results in provider rank order. Output is capped at maxBytes so a
// burst of long snippets cannot blow up the prompt; the cap cuts at a line
// boundary.
func BuildContext(blocks []SearchBlock, maxBytes int) string {
	var sb strings.Builder

	for _, block := range blocks {
		if len(block.Results) == 0 {
			continue
		}

		var part strings.Builder
		fmt.Fprintf(&part, "### Search: %s\n", block.Query)
		for _, r := range block.Results {
			fmt.Fprintf(&part, "- %s: %s\n(Source: %s)\n", r.Title, r.Snippet, r.URL)
		}

		if maxBytes > 0 && sb.Len()+part.Len() > maxBytes {
			appendWithinBudget(&sb, part.String(), maxBytes)
			break
		}

		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(part.String())
	}

	return sb.String()
}

// appendWithinBudget writes whole lines of part until the budget is spent.
func appendWithinBudget(sb *strings.Builder, part string, maxBytes int) {
	for _, line := range strings.SplitAfter(part, "\n") {
		if sb.Len()+len(line) > maxBytes {
			return
		}
		sb.WriteString(line)
	}
}

// CollectSources gathers the result URLs in the order they appear in the
// blocks, dropping empty URLs and repeats after their first occurrence.
func CollectSources(blocks []SearchBlock) []string {
	seen := make(map[string]bool)
	var urls []string

	for _, block := range blocks {
		for _, r := range block.Results {
			if r.URL == "" || seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			urls = append(urls, r.URL)
		}
	}

	return urls
}
