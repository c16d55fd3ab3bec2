package agent

import (
	"fmt"
	"strings"

	"github.com/Abdull-Majeed/web-search-agent/internal/session"
)

const systemPrompt = "You are a meticulous research assistant.\n" +
	"When you write the final answer, cite the relevant URLs in Markdown format, " +
	"for example: [Source](https://example.com).\n" +
	"Provide a concise, accurate, and referenced answer."

// planPrompt asks the model to propose search queries for the question.
func planPrompt(question string) string {
	return fmt.Sprintf(`%s

User question: %s

List up to %d specific Google search queries (in JSON array format) that will help answer the question. Example:
["topic 1", "topic 2"]

Respond with the JSON array only, no other text.`, systemPrompt, question, maxPlannedQueries)
}

// synthesisPrompt builds the final generation prompt from the question, the
// assembled search context, and the recent conversation turns. An empty
// context still yields a usable prompt; the model is told no sourced
// information is available.
func synthesisPrompt(question, contextText string, history []session.Turn) string {
	var sb strings.Builder

	sb.WriteString(systemPrompt)
	sb.WriteString("\n\n")

	if len(history) > 0 {
		sb.WriteString("Conversation so far:\n")
		for _, turn := range history {
			switch turn.Role {
			case session.RoleUser:
				fmt.Fprintf(&sb, "User: %s\n", turn.Content)
			case session.RoleAssistant:
				fmt.Fprintf(&sb, "Assistant: %s\n", turn.Content)
			}
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "User question: %s\n\n", question)

	if contextText != "" {
		sb.WriteString("Here are the gathered search results (with URLs):\n\n")
		sb.WriteString(contextText)
		sb.WriteString("\n\nNow write a detailed, well-structured, and factually correct answer. " +
			"At the end, include a short 'Sources' section listing all relevant URLs in Markdown format.")
	} else {
		sb.WriteString("No web search results are available for this question. " +
			"Answer from general knowledge, and say so when the answer depends on current information you cannot verify.")
	}

	return sb.String()
}
