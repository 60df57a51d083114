package jira

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// StripHTML flattens the rendered-HTML description Jira returns with
// expand=renderedFields into single-line plain text. On parse failure the
// input is returned unchanged.
func StripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}

	// Keep paragraph and line breaks as spaces rather than run words together
	doc.Find("br").ReplaceWithHtml(" ")

	text := doc.Text()
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}
