// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mathjax rewrites LaTeX math spans into renderer-compatible form.
// It is a small explicit scanner, not a LaTeX parser: delimiters are
// recognized with lookahead, and only the content between them is rewritten.
package mathjax

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var doubleSpace = regexp.MustCompile(` {2,}`)

// Rewrite scans text for math spans and rewrites their content:
//
//   - inline $...$ and \(...\) spans, block $$...$$ and \[...\] spans;
//     \(...\) and \[...\] delimiters are converted to the dollar forms
//   - the pipe character becomes \vert unless it is the delimiter of a
//     \left...\right or \lvert...\rvert pairing
//   - bare superscripts and subscripts gain braces: x^2 becomes x^{2},
//     x_\mu becomes x_{\mu}; already braced forms pass through
//   - runs of spaces inside math collapse to one
//
// A dollar sign with no valid closing delimiter before the end of the input
// or before a blank line is literal text, not math. Rewrite is idempotent.
func Rewrite(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	n := len(text)
	i := 0
	for i < n {
		c := text[i]
		if c == '\\' && i+1 < n {
			switch text[i+1] {
			case '(':
				if body, end, ok := scanEscaped(text, i+2, ')'); ok {
					b.WriteByte('$')
					b.WriteString(sanitize(body))
					b.WriteByte('$')
					i = end
					continue
				}
			case '[':
				if body, end, ok := scanEscaped(text, i+2, ']'); ok {
					b.WriteString("$$")
					b.WriteString(sanitize(body))
					b.WriteString("$$")
					i = end
					continue
				}
			}
			b.WriteByte(c)
			b.WriteByte(text[i+1])
			i += 2
			continue
		}
		if c == '$' {
			if i+1 < n && text[i+1] == '$' {
				if body, end, ok := scanBlock(text, i+2); ok {
					b.WriteString("$$")
					b.WriteString(sanitize(body))
					b.WriteString("$$")
					i = end
					continue
				}
				b.WriteString("$$")
				i += 2
				continue
			}
			if body, end, ok := scanInline(text, i+1); ok {
				b.WriteByte('$')
				b.WriteString(sanitize(body))
				b.WriteByte('$')
				i = end
				continue
			}
			b.WriteByte('$')
			i++
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

// scanInline looks for the closing $ of an inline span opened just before
// start. The opener must not be followed by whitespace, the closer must not
// be preceded by whitespace or followed by another $, and the span must not
// cross a blank line.
func scanInline(text string, start int) (body string, end int, ok bool) {
	n := len(text)
	if start >= n || text[start] == ' ' || text[start] == '\t' || text[start] == '\n' {
		return "", 0, false
	}
	for j := start; j < n; j++ {
		switch text[j] {
		case '\\':
			j++ // skip escaped character
		case '\n':
			if blankLineAhead(text, j+1) {
				return "", 0, false
			}
		case '$':
			prev := text[j-1]
			if prev == ' ' || prev == '\t' || prev == '\n' {
				return "", 0, false
			}
			if j+1 < n && text[j+1] == '$' {
				return "", 0, false
			}
			return text[start:j], j + 1, true
		}
	}
	return "", 0, false
}

// scanBlock looks for the closing $$ of a block span opened just before
// start. Block spans may cross newlines but not blank lines.
func scanBlock(text string, start int) (body string, end int, ok bool) {
	n := len(text)
	for j := start; j < n; j++ {
		switch text[j] {
		case '\\':
			j++
		case '\n':
			if blankLineAhead(text, j+1) {
				return "", 0, false
			}
		case '$':
			if j+1 < n && text[j+1] == '$' {
				return text[start:j], j + 2, true
			}
		}
	}
	return "", 0, false
}

// scanEscaped looks for a \) or \] closer matching a \( or \[ opener.
func scanEscaped(text string, start int, closer byte) (body string, end int, ok bool) {
	n := len(text)
	for j := start; j < n; j++ {
		switch text[j] {
		case '\\':
			if j+1 < n && text[j+1] == closer {
				return text[start:j], j + 2, true
			}
			j++
		case '\n':
			if blankLineAhead(text, j+1) {
				return "", 0, false
			}
		}
	}
	return "", 0, false
}

// blankLineAhead reports whether the line starting at pos is blank,
// which terminates any candidate math span.
func blankLineAhead(text string, pos int) bool {
	for pos < len(text) && (text[pos] == ' ' || text[pos] == '\t') {
		pos++
	}
	return pos >= len(text) || text[pos] == '\n'
}

func sanitize(s string) string {
	s = escapePipes(s)
	s = braceScripts(s)
	return doubleSpace.ReplaceAllString(s, " ")
}

func escapePipes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i++
			continue
		}
		if c == '|' {
			if pipeIsDelimiter(s, i) {
				b.WriteByte(c)
			} else {
				b.WriteString(`\vert `)
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// pipeIsDelimiter reports whether the pipe at index i is the delimiter of a
// \left...\right or \lvert...\rvert pairing. Such pipes stay unescaped.
func pipeIsDelimiter(s string, i int) bool {
	before := strings.TrimRight(s[:i], " ")
	if strings.HasSuffix(before, `\left`) || strings.HasSuffix(before, `\right`) {
		return true
	}
	open := strings.Count(s[:i], `\lvert`) - strings.Count(s[:i], `\rvert`)
	return open > 0 && strings.Contains(s[i:], `\rvert`)
}

// braceScripts wraps bare superscript and subscript tokens in braces:
// a single alphanumeric rune (x^2 -> x^{2}) or a command (x^\mu -> x^{\mu}).
// Tokens that are already braced pass through unchanged.
func braceScripts(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i += 2
			continue
		}
		if c == '^' || c == '_' {
			b.WriteByte(c)
			i++
			if i >= len(s) || s[i] == '{' {
				continue
			}
			if s[i] == '\\' {
				j := i + 1
				for j < len(s) && isASCIILetter(s[j]) {
					j++
				}
				if j > i+1 {
					b.WriteByte('{')
					b.WriteString(s[i:j])
					b.WriteByte('}')
					i = j
				}
				continue
			}
			r, size := utf8.DecodeRuneInString(s[i:])
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteByte('{')
				b.WriteRune(r)
				b.WriteByte('}')
				i += size
			}
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
