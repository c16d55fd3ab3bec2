package serpapi

import (
	"strings"

	"golang.org/x/net/html"
)

// cleanSnippet strips any HTML markup the provider left in a snippet and
// collapses runs of whitespace. Snippets are plain text most of the time,
// so the parser only runs when markup is actually present.
func cleanSnippet(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}

	var text strings.Builder
	collectText(doc, &text)

	return strings.Join(strings.Fields(text.String()), " ")
}

func collectText(n *html.Node, out *strings.Builder) {
	if n.Type == html.TextNode {
		out.WriteString(n.Data)
		out.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, out)
	}
}
