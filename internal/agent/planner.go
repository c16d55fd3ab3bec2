package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// maxPlannedQueries bounds how many searches one question may trigger.
const maxPlannedQueries = 5

// planQueries asks the model which searches would help answer the question.
// The model responds with a JSON array of query strings; anything that does
// not parse falls back to the raw question.
func (a *Agent) planQueries(ctx context.Context, question string) ([]string, error) {
	response, err := a.gen.GenerateText(ctx, a.opts.Model, planPrompt(question))
	if err != nil {
		return nil, fmt.Errorf("planner call failed: %w", err)
	}

	var queries []string
	if err := json.Unmarshal([]byte(stripFences(response)), &queries); err != nil {
		// Not a JSON array; search with the question itself.
		return []string{question}, nil
	}

	out := make([]string, 0, maxPlannedQueries)
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		out = append(out, q)
		if len(out) == maxPlannedQueries {
			break
		}
	}

	if len(out) == 0 {
		return []string{question}, nil
	}
	return out, nil
}

// stripFences removes a markdown code fence wrapping, which models add
// around JSON despite instructions not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSuffix(s, "```")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
