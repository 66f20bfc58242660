// Package render converts the HTML ticket descriptions into text suitable
// for a terminal, so the user can copy-paste a ticket manually when the
// Freshdesk integration is unavailable.
package render

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

// Markdown converts HTML into Markdown. Non-HTML input passes through
// unchanged.
func Markdown(content string) (string, error) {
	if !looksLikeHTML(content) {
		return strings.TrimSpace(content), nil
	}

	markdown, err := htmltomarkdown.ConvertString(content)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(markdown), nil
}

// PlainText strips all markup from HTML, keeping block-level line breaks.
// Parse errors degrade to returning the input as-is.
func PlainText(content string) string {
	if !looksLikeHTML(content) {
		return strings.TrimSpace(content)
	}

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return strings.TrimSpace(content)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && isBlock(n.Data) {
			b.WriteString("\n")
		}
	}
	walk(doc)

	return collapseBlankLines(strings.TrimSpace(b.String()))
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "li", "ul", "ol", "br", "hr",
		"h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// looksLikeHTML checks whether content contains markup worth converting.
func looksLikeHTML(content string) bool {
	lower := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		return true
	}
	for _, tag := range []string{"<p", "<div", "<h1", "<h2", "<h3", "<ul", "<ol", "<li", "<strong", "<em", "<br", "<hr"} {
		if strings.Contains(lower, tag) {
			return true
		}
	}
	return false
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	blank := false
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, strings.TrimRight(l, " \t"))
	}
	return strings.Join(out, "\n")
}
