// ABOUTME: HTML utilities for stripping tags and decoding entities
// ABOUTME: Search snippets arrive with <strong> highlights, encoded entities and literal "<" in prose

package html

import (
	stdhtml "html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// tagPattern matches well-formed start, end and self-closing tags and comments
var tagPattern = regexp.MustCompile(`<(?:/?[a-zA-Z][a-zA-Z0-9-]*(?:\s[^<>]*)?/?|!--.*?--)>`)

// StripHTML returns the text content of an HTML fragment with entities
// decoded and whitespace collapsed. A "<" that does not open a real tag
// ("x<y", "<5ms") is kept as text.
func StripHTML(fragment string) string {
	tags := tagPattern.FindAllStringIndex(fragment, -1)
	if len(tags) == 0 {
		return collapseSpaces(stdhtml.UnescapeString(fragment))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(escapeStrayBrackets(fragment, tags)))
	if err != nil {
		return collapseSpaces(stdhtml.UnescapeString(tagPattern.ReplaceAllString(fragment, " ")))
	}

	doc.Find("script, style").Remove()

	return collapseSpaces(doc.Text())
}

// escapeStrayBrackets encodes every "<" outside the given tag spans
func escapeStrayBrackets(fragment string, tags [][]int) string {
	var b strings.Builder
	b.Grow(len(fragment) + 8)

	next := 0
	for i := 0; i < len(fragment); i++ {
		if next < len(tags) && i == tags[next][0] {
			b.WriteString(fragment[tags[next][0]:tags[next][1]])
			i = tags[next][1] - 1
			next++
			continue
		}
		if fragment[i] == '<' {
			b.WriteString("&lt;")
			continue
		}
		b.WriteByte(fragment[i])
	}
	return b.String()
}

// StripAll strips every fragment and drops the empty ones
func StripAll(fragments []string) []string {
	out := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if text := StripHTML(f); text != "" {
			out = append(out, text)
		}
	}
	return out
}

func collapseSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
