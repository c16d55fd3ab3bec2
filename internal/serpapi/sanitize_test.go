package serpapi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanSnippet(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "Mars rover is operational", "Mars rover is operational"},
		{"bold markup", "<b>Mars</b> rover is <b>operational</b>", "Mars rover is operational"},
		{"entities", "rovers &amp; landers", "rovers & landers"},
		{"nbsp", "status:&nbsp;nominal", "status: nominal"},
		{"whitespace runs", "  too   many\n\nspaces ", "too many spaces"},
		{"nested tags", "<em><b>deep</b> dive</em>", "deep dive"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, cleanSnippet(tt.in))
		})
	}
}
