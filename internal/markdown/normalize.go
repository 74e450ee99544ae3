// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown holds line-oriented transforms for post bodies: blank-line
// normalization and title handling. It deliberately avoids a full Markdown
// parser; every transform here is defined on lines.
package markdown

import "strings"

// Normalize collapses runs of adjacent blank lines that share the same
// blockquote depth to a single blank line at that depth. A quoted blank line
// ("> ", "> >", ...) is never merged with a plain blank line or with a quoted
// blank line of a different depth, and its ">" prefix is never stripped.
// Content inside fenced code blocks passes through verbatim.
func Normalize(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	inFence := false
	var fenceChar byte
	fenceDepth := 0
	for i := 0; i < len(lines); {
		line := lines[i]
		if marker, depth := fenceMarker(line); marker != 0 {
			// A fence only closes on the marker and quote depth that
			// opened it; an interior ~~~ cannot close a backtick fence.
			if !inFence {
				inFence, fenceChar, fenceDepth = true, marker, depth
			} else if marker == fenceChar && depth == fenceDepth {
				inFence = false
			}
			out = append(out, line)
			i++
			continue
		}
		if inFence {
			out = append(out, line)
			i++
			continue
		}
		depth, blank := blankDepth(line)
		if !blank {
			out = append(out, line)
			i++
			continue
		}
		j := i + 1
		for j < len(lines) {
			d, b := blankDepth(lines[j])
			if !b || d != depth {
				break
			}
			j++
		}
		out = append(out, strings.TrimRight(line, " \t"))
		i = j
	}
	return strings.Join(out, "\n")
}

// blankDepth classifies a line. A line consisting only of whitespace is blank
// at depth 0; a line consisting only of ">" markers and whitespace is blank at
// the depth given by its marker count. Any other line is not blank.
func blankDepth(line string) (depth int, blank bool) {
	for _, r := range line {
		switch r {
		case '>':
			depth++
		case ' ', '\t':
		default:
			return 0, false
		}
	}
	return depth, true
}

// fenceMarker reports the fence marker of a line ('`' or '~') and the
// blockquote depth it appears at. marker is 0 for non-fence lines. Fences
// inside blockquotes ("> ```") count their '>' prefix as depth so quoted
// code blocks are fenced too.
func fenceMarker(line string) (marker byte, depth int) {
	i := 0
scan:
	for i < len(line) {
		switch line[i] {
		case '>':
			depth++
			i++
		case ' ', '\t':
			i++
		default:
			break scan
		}
	}
	rest := line[i:]
	if strings.HasPrefix(rest, "```") {
		return '`', depth
	}
	if strings.HasPrefix(rest, "~~~") {
		return '~', depth
	}
	return 0, 0
}
