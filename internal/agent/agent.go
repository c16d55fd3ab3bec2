// Package agent implements the research pipeline: plan search queries,
// gather results, assemble grounding context, and generate a cited answer.
package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Abdull-Majeed/web-search-agent/internal/serpapi"
	"github.com/Abdull-Majeed/web-search-agent/internal/session"
)

// SearchClient performs web searches.
type SearchClient interface {
	Search(ctx context.Context, query string, maxResults int) ([]serpapi.Result, error)
}

// Generator produces text from a prompt.
type Generator interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}

// StreamingGenerator is implemented by generators that can stream text as
// it is produced. The agent upgrades to it when available.
type StreamingGenerator interface {
	GenerateTextStream(ctx context.Context, model, prompt string, onChunk func(string)) (string, error)
}

// Options tunes the pipeline.
type Options struct {
	Model           string
	MaxResults      int  // per-query result bound, 1..10
	MaxContextBytes int  // cap on assembled context size
	HistoryWindow   int  // prior turns included in the synthesis prompt
	PlanQueries     bool // ask the model for focused search queries first
	SearchWorkers   int  // concurrent searches when a plan has several queries
}

// Agent ties a search client and a generator into the research pipeline.
type Agent struct {
	search SearchClient
	gen    Generator
	log    *zap.Logger
	opts   Options
}

// Result is the outcome of one research turn.
type Result struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Sources  []string `json:"sources"`
	Steps    []Step   `json:"steps"`
}

// Step records one stage of the pipeline for the debug trace.
type Step struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// SearchBlock groups the results of a single search query.
type SearchBlock struct {
	Query   string
	Results []serpapi.Result
}

// New creates an agent. Zero option fields fall back to working defaults.
func New(search SearchClient, gen Generator, log *zap.Logger, opts Options) *Agent {
	if opts.Model == "" {
		opts.Model = "gemini-2.5-flash"
	}
	if opts.MaxResults < 1 {
		opts.MaxResults = 5
	}
	if opts.MaxContextBytes < 1 {
		opts.MaxContextBytes = 24 * 1024
	}
	if opts.SearchWorkers < 1 {
		opts.SearchWorkers = 3
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Agent{search: search, gen: gen, log: log, opts: opts}
}

// Run executes one research turn: plan, search, assemble, generate. The
// prior turns are read-only input; the caller decides what to append to its
// session. Failed searches degrade to empty context; a failed generation
// aborts the turn.
func (a *Agent) Run(ctx context.Context, question string, history []session.Turn) (*Result, error) {
	return a.run(ctx, question, history, nil)
}

// RunStream is Run with the answer streamed through onChunk as it is
// generated. Falls back to a synchronous call when the generator cannot
// stream.
func (a *Agent) RunStream(ctx context.Context, question string, history []session.Turn, onChunk func(string)) (*Result, error) {
	return a.run(ctx, question, history, onChunk)
}

func (a *Agent) run(ctx context.Context, question string, history []session.Turn, onChunk func(string)) (*Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("agent: question cannot be empty")
	}

	var steps []Step

	queries := []string{question}
	if a.opts.PlanQueries {
		planned, err := a.planQueries(ctx, question)
		if err != nil {
			a.log.Warn("query planning failed, searching with the raw question", zap.Error(err))
		} else if len(planned) > 0 {
			queries = planned
		}
		steps = append(steps, Step{Type: "plan", Content: strings.Join(queries, " | ")})
	}

	blocks := a.searchAll(ctx, queries)
	for _, b := range blocks {
		steps = append(steps, Step{Type: "search", Content: fmt.Sprintf("%s (%d results)", b.Query, len(b.Results))})
	}

	contextText := BuildContext(blocks, a.opts.MaxContextBytes)
	sources := CollectSources(blocks)

	prompt := synthesisPrompt(question, contextText, recentHistory(history, a.opts.HistoryWindow))

	answer, err := a.generate(ctx, prompt, onChunk)
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	steps = append(steps, Step{Type: "assistant_answer", Content: answer})

	return &Result{
		Question: question,
		Answer:   strings.TrimSpace(answer),
		Sources:  sources,
		Steps:    steps,
	}, nil
}

func (a *Agent) generate(ctx context.Context, prompt string, onChunk func(string)) (string, error) {
	if onChunk != nil {
		if sg, ok := a.gen.(StreamingGenerator); ok {
			return sg.GenerateTextStream(ctx, a.opts.Model, prompt, onChunk)
		}
	}
	answer, err := a.gen.GenerateText(ctx, a.opts.Model, prompt)
	if err == nil && onChunk != nil {
		onChunk(answer)
	}
	return answer, err
}

// searchAll runs the planned queries through a bounded worker pool. Output
// order matches plan order regardless of completion order. A failed query
// contributes an empty block rather than failing the turn.
func (a *Agent) searchAll(ctx context.Context, queries []string) []SearchBlock {
	blocks := make([]SearchBlock, len(queries))
	for i, q := range queries {
		blocks[i].Query = q
	}

	type job struct {
		idx   int
		query string
	}

	jobs := make(chan job, len(queries))

	numWorkers := a.opts.SearchWorkers
	if len(queries) < numWorkers {
		numWorkers = len(queries)
	}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results, err := a.search.Search(ctx, j.query, a.opts.MaxResults)
				if err != nil {
					a.log.Warn("search failed", zap.String("query", j.query), zap.Error(err))
					continue
				}
				blocks[j.idx].Results = results
			}
		}()
	}

	for i, q := range queries {
		jobs <- job{idx: i, query: q}
	}
	close(jobs)
	wg.Wait()

	return blocks
}

func recentHistory(history []session.Turn, limit int) []session.Turn {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}
