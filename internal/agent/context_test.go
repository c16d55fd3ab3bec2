package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Abdull-Majeed/web-search-agent/internal/serpapi"
)

func testBlocks() []SearchBlock {
	return []SearchBlock{
		{
			Query: "rover telemetry",
			Results: []serpapi.Result{
				{Title: "A", Snippet: "first", URL: "https://a.example"},
				{Title: "B", Snippet: "second", URL: "https://b.example"},
			},
		},
		{
			Query: "rover mission",
			Results: []serpapi.Result{
				{Title: "C", Snippet: "third", URL: "https://c.example"},
			},
		},
	}
}

func TestBuildContextDeterministic(t *testing.T) {
	blocks := testBlocks()
	first := BuildContext(blocks, 0)
	second := BuildContext(blocks, 0)
	require.Equal(t, first, second)
	require.NotEmpty(t, first)
}

func TestBuildContextFormat(t *testing.T) {
	out := BuildContext(testBlocks(), 0)

	require.Contains(t, out, "### Search: rover telemetry")
	require.Contains(t, out, "### Search: rover mission")
	require.Contains(t, out, "- A: first\n(Source: https://a.example)")

	// URLs appear in block order, results in provider order
	posA := strings.Index(out, "https://a.example")
	posB := strings.Index(out, "https://b.example")
	posC := strings.Index(out, "https://c.example")
	require.True(t, posA < posB && posB < posC)
}

func TestBuildContextSkipsEmptyBlocks(t *testing.T) {
	blocks := []SearchBlock{
		{Query: "nothing found"},
		{Query: "hit", Results: []serpapi.Result{{Title: "A", Snippet: "s", URL: "https://a.example"}}},
	}
	out := BuildContext(blocks, 0)
	require.NotContains(t, out, "nothing found")
	require.Contains(t, out, "### Search: hit")
}

func TestBuildContextRespectsByteCap(t *testing.T) {
	long := strings.Repeat("very long snippet text ", 50)
	blocks := []SearchBlock{{
		Query: "big",
		Results: []serpapi.Result{
			{Title: "A", Snippet: long, URL: "https://a.example"},
			{Title: "B", Snippet: long, URL: "https://b.example"},
		},
	}}

	const limit = 256
	out := BuildContext(blocks, limit)
	require.LessOrEqual(t, len(out), limit)

	// The cap cuts at a line boundary, never mid-line
	if out != "" {
		require.True(t, strings.HasSuffix(out, "\n"))
	}
}

func TestCollectSourcesOrderAndDedup(t *testing.T) {
	blocks := testBlocks()
	blocks[1].Results = append(blocks[1].Results, serpapi.Result{Title: "A again", Snippet: "dup", URL: "https://a.example"})
	blocks[1].Results = append(blocks[1].Results, serpapi.Result{Title: "no url", Snippet: "s"})

	urls := CollectSources(blocks)
	require.Equal(t, []string{"https://a.example", "https://b.example", "https://c.example"}, urls)
}
