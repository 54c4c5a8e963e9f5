package importer

import (
	"regexp"
	"strings"
)

var (
	commentRe    = regexp.MustCompile(`(?s)<!--.*?-->`)
	paragraphRe  = regexp.MustCompile(`(?i)</p\s*>`)
	lineBreakRe  = regexp.MustCompile(`(?i)<br\s*/?>|</li\s*>|</div\s*>|</h[1-6]\s*>`)
	tagRe        = regexp.MustCompile(`(?s)<[^>]*>`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)

	entityReplacer = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&quot;", `"`,
		"&lt;", "<",
		"&gt;", ">",
	)
)

// CleanHTML turns exported rich text into plain text. Paragraphs are
// separated by one blank line, breaks and list items by a newline.
func CleanHTML(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = commentRe.ReplaceAllString(s, "")
	s = paragraphRe.ReplaceAllString(s, "\n\n")
	s = lineBreakRe.ReplaceAllString(s, "\n")
	s = tagRe.ReplaceAllString(s, "")
	s = entityReplacer.Replace(s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

// Excerpt cuts text to at most max runes on a word boundary.
func Excerpt(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}

	return strings.TrimRight(cut, " ,.;:") + "…"
}
