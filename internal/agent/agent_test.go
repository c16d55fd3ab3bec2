package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Abdull-Majeed/web-search-agent/internal/provider"
	"github.com/Abdull-Majeed/web-search-agent/internal/serpapi"
	"github.com/Abdull-Majeed/web-search-agent/internal/session"
)

type fakeSearch struct {
	mu      sync.Mutex
	results map[string][]serpapi.Result
	err     error
	queries []string
}

func (f *fakeSearch) Search(_ context.Context, query string, maxResults int) ([]serpapi.Result, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	res := f.results[query]
	if len(res) > maxResults {
		res = res[:maxResults]
	}
	return res, nil
}

// fakeGen returns scripted responses in order, recording each prompt.
type fakeGen struct {
	responses []string
	err       error
	prompts   []string
}

func (f *fakeGen) GenerateText(_ context.Context, _ string, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", fmt.Errorf("no scripted response left")
	}
	r := f.responses[0]
	f.responses = f.responses[1:]
	return r, nil
}

type fakeStreamGen struct {
	fakeGen
	streamed bool
}

func (f *fakeStreamGen) GenerateTextStream(ctx context.Context, model, prompt string, onChunk func(string)) (string, error) {
	f.streamed = true
	text, err := f.GenerateText(ctx, model, prompt)
	if err != nil {
		return "", err
	}
	for _, word := range strings.SplitAfter(text, " ") {
		onChunk(word)
	}
	return text, nil
}

func marsResults() []serpapi.Result {
	return []serpapi.Result{
		{Title: "A", Snippet: "rover update one", URL: "https://a.example/one"},
		{Title: "B", Snippet: "rover update two", URL: "https://b.example/two"},
		{Title: "C", Snippet: "rover update three", URL: "https://c.example/three"},
	}
}

func TestRunGroundedAnswer(t *testing.T) {
	question := "current Mars rover status"
	search := &fakeSearch{results: map[string][]serpapi.Result{question: marsResults()}}
	gen := &fakeGen{responses: []string{"The rover is operational."}}

	a := New(search, gen, nil, Options{PlanQueries: false, MaxResults: 5})

	result, err := a.Run(context.Background(), question, nil)
	require.NoError(t, err)
	require.Equal(t, "The rover is operational.", result.Answer)
	require.Equal(t, []string{"https://a.example/one", "https://b.example/two", "https://c.example/three"}, result.Sources)

	// The synthesis prompt contains all three URLs in provider order
	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	posA := strings.Index(prompt, "https://a.example/one")
	posB := strings.Index(prompt, "https://b.example/two")
	posC := strings.Index(prompt, "https://c.example/three")
	require.True(t, posA >= 0 && posB >= 0 && posC >= 0)
	require.Less(t, posA, posB)
	require.Less(t, posB, posC)

	// And the rendered answer ends with the sources in the same order
	rendered := RenderCitations(result.Answer, result.Sources)
	require.True(t, strings.HasSuffix(rendered,
		"**Sources:**\n- https://a.example/one\n- https://b.example/two\n- https://c.example/three\n"))
}

func TestRunSearchFailureDegrades(t *testing.T) {
	search := &fakeSearch{err: &provider.Error{Provider: "serpapi", Op: "search", Err: fmt.Errorf("timeout")}}
	gen := &fakeGen{responses: []string{"I could not find sourced information, but in general..."}}

	a := New(search, gen, nil, Options{PlanQueries: false})

	result, err := a.Run(context.Background(), "current Mars rover status", nil)
	require.NoError(t, err, "a failed search must not abort the turn")
	require.NotEmpty(t, result.Answer)
	require.Empty(t, result.Sources)

	// Generation proceeded with empty context
	require.Len(t, gen.prompts, 1)
	require.Contains(t, gen.prompts[0], "No web search results are available")

	// No citations appended
	require.Equal(t, result.Answer, RenderCitations(result.Answer, result.Sources))
}

func TestRunGenerationFailureLeavesSessionUntouched(t *testing.T) {
	search := &fakeSearch{results: map[string][]serpapi.Result{"q": marsResults()}}
	gen := &fakeGen{err: &provider.Error{Provider: "gemini", Op: "generate", StatusCode: 429, Err: fmt.Errorf("quota exceeded")}}

	a := New(search, gen, nil, Options{PlanQueries: false})

	// Mirror the UI flow: the user turn goes in before the pipeline runs.
	sess := session.New()
	sess.Append(session.Turn{Role: session.RoleUser, Content: "q"})

	result, err := a.Run(context.Background(), "q", sess.Recent(10))
	require.Error(t, err)
	require.Nil(t, result)
	require.True(t, provider.IsProviderError(err))

	require.Equal(t, 1, sess.Len(), "only the user turn remains after a failed generation")
	require.Equal(t, session.RoleUser, sess.Turns()[0].Role)
}

func TestRunEmptyQuestion(t *testing.T) {
	a := New(&fakeSearch{}, &fakeGen{}, nil, Options{})
	_, err := a.Run(context.Background(), "   ", nil)
	require.Error(t, err)
}

func TestRunWithPlannedQueries(t *testing.T) {
	search := &fakeSearch{results: map[string][]serpapi.Result{
		"rover telemetry": {{Title: "T", Snippet: "s", URL: "https://t.example"}},
		"rover mission":   {{Title: "M", Snippet: "s", URL: "https://m.example"}},
	}}
	gen := &fakeGen{responses: []string{
		`["rover telemetry", "rover mission"]`,
		"Answer with both sources.",
	}}

	a := New(search, gen, nil, Options{PlanQueries: true})

	result, err := a.Run(context.Background(), "how is the rover doing", nil)
	require.NoError(t, err)

	// Sources follow plan order regardless of which search finished first
	require.Equal(t, []string{"https://t.example", "https://m.example"}, result.Sources)

	search.mu.Lock()
	defer search.mu.Unlock()
	require.ElementsMatch(t, []string{"rover telemetry", "rover mission"}, search.queries)
}

func TestRunDeduplicatesRepeatedURLs(t *testing.T) {
	shared := serpapi.Result{Title: "Shared", Snippet: "s", URL: "https://shared.example"}
	search := &fakeSearch{results: map[string][]serpapi.Result{
		"one": {shared, {Title: "A", Snippet: "s", URL: "https://a.example"}},
		"two": {shared, {Title: "B", Snippet: "s", URL: "https://b.example"}},
	}}
	gen := &fakeGen{responses: []string{
		`["one", "two"]`,
		"answer",
	}}

	a := New(search, gen, nil, Options{PlanQueries: true})

	result, err := a.Run(context.Background(), "question", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"https://shared.example", "https://a.example", "https://b.example"}, result.Sources)
}

func TestRunIncludesHistoryInPrompt(t *testing.T) {
	search := &fakeSearch{}
	gen := &fakeGen{responses: []string{"follow-up answer"}}

	a := New(search, gen, nil, Options{PlanQueries: false, HistoryWindow: 10})

	history := []session.Turn{
		{Role: session.RoleUser, Content: "what is perseverance"},
		{Role: session.RoleAssistant, Content: "A Mars rover launched in 2020."},
	}

	_, err := a.Run(context.Background(), "when did it land", history)
	require.NoError(t, err)
	require.Len(t, gen.prompts, 1)
	require.Contains(t, gen.prompts[0], "User: what is perseverance")
	require.Contains(t, gen.prompts[0], "Assistant: A Mars rover launched in 2020.")
}

func TestRunStreamUsesStreamingGenerator(t *testing.T) {
	question := "current Mars rover status"
	search := &fakeSearch{results: map[string][]serpapi.Result{question: marsResults()}}
	gen := &fakeStreamGen{fakeGen: fakeGen{responses: []string{"The rover is operational."}}}

	a := New(search, gen, nil, Options{PlanQueries: false})

	var streamed strings.Builder
	result, err := a.RunStream(context.Background(), question, nil, func(chunk string) {
		streamed.WriteString(chunk)
	})
	require.NoError(t, err)
	require.True(t, gen.streamed)
	require.Equal(t, "The rover is operational.", streamed.String())
	require.Equal(t, "The rover is operational.", result.Answer)
}

func TestRunStreamFallsBackToSync(t *testing.T) {
	search := &fakeSearch{}
	gen := &fakeGen{responses: []string{"plain answer"}}

	a := New(search, gen, nil, Options{PlanQueries: false})

	var chunks []string
	result, err := a.RunStream(context.Background(), "question", nil, func(chunk string) {
		chunks = append(chunks, chunk)
	})
	require.NoError(t, err)
	require.Equal(t, "plain answer", result.Answer)
	require.Equal(t, []string{"plain answer"}, chunks)
}
