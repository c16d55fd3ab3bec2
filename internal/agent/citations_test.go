package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderCitationsPreservesOrder(t *testing.T) {
	sources := []string{"https://a.example", "https://b.example", "https://c.example"}
	out := RenderCitations("The rover is operational.", sources)

	require.True(t, strings.HasPrefix(out, "The rover is operational."))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Equal(t, "- https://a.example", lines[len(lines)-3])
	require.Equal(t, "- https://b.example", lines[len(lines)-2])
	require.Equal(t, "- https://c.example", lines[len(lines)-1])
}

func TestRenderCitationsNoSources(t *testing.T) {
	require.Equal(t, "answer", RenderCitations("answer", nil))
	require.Equal(t, "answer", RenderCitations("answer", []string{}))
}

func TestRenderCitationsTrimsTrailingNewlines(t *testing.T) {
	out := RenderCitations("answer\n\n", []string{"https://a.example"})
	require.Equal(t, "answer\n\n**Sources:**\n- https://a.example\n", out)
}
