// Package sanitize cleans free text supplied by agents before it is stored
// or handed to the judge.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagPattern       = regexp.MustCompile(`<[^>]*>`)
	blankRunPattern  = regexp.MustCompile(`[ \t\f\v]+`)
	blankLinePattern = regexp.MustCompile(`\n{3,}`)
)

// Text strips markup, including entity-encoded markup, and normalizes
// whitespace. Line breaks survive; at most one empty line is kept between
// paragraphs.
func Text(s string) string {
	out := tagPattern.ReplaceAllString(s, "")
	out = tagPattern.ReplaceAllString(html.UnescapeString(out), "")
	out = strings.ReplaceAll(out, "\r\n", "\n")

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(blankRunPattern.ReplaceAllString(line, " "))
	}
	out = blankLinePattern.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(out)
}

// TextPtr sanitizes an optional field; nil stays nil.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := Text(*s)
	return &cleaned
}

// List sanitizes every entry and drops the ones left empty.
func List(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if cleaned := Text(v); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}
