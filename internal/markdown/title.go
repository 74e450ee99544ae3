// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"regexp"
	"strings"
)

// headingLine matches a top-level ATX heading: optional leading spaces,
// exactly one '#', at least one space, then the heading text. Deeper
// headings (##, ###, ...) do not match.
var headingLine = regexp.MustCompile(`^ *#[ \t]+(.+)$`)

// tocLine matches table-of-contents marker lines such as [TOC], [[toc]],
// or {:toc}, which duplicate the generated front-matter toc entry.
var tocLine = regexp.MustCompile(`(?i)^\s*(\[\[?toc\]?\]|\{:\s*toc\s*\})\s*$`)

// ExtractTitle returns the text of the first top-level heading in the
// document, trimmed of surrounding whitespace. The scan is unbounded; the
// first match wins regardless of position. ok is false when no top-level
// heading exists.
func ExtractTitle(text string) (title string, ok bool) {
	for _, line := range strings.Split(text, "\n") {
		if m := headingLine.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

// StripLeadingTitle removes the first top-level heading line from the
// document, if any. The front matter carries the title, so leaving the
// heading in place would render it twice.
func StripLeadingTitle(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if headingLine.MatchString(line) {
			rest := make([]string, 0, len(lines)-1)
			rest = append(rest, lines[:i]...)
			rest = append(rest, lines[i+1:]...)
			return strings.Join(rest, "\n")
		}
	}
	return text
}

// StripTOC removes table-of-contents marker lines from the document.
func StripTOC(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0:0]
	for _, line := range lines {
		if tocLine.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
