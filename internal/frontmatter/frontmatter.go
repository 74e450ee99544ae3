// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package frontmatter builds and serializes the structured metadata header
// that precedes a post body. Serialization is hand-rolled: the key order of
// the header is a hard requirement, so the writer cannot rely on a YAML
// library's map marshalling.
package frontmatter

import (
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/postforge/pkg/types"
)

// DateLayout is the front-matter date format: zero-padded, 24-hour, local time.
const DateLayout = "2006-01-02 15:04:05"

// Kind distinguishes the two front-matter variants.
type Kind string

const (
	// KindStandard is a regular post: layout, title, date, description,
	// tags, categories, toc.
	KindStandard Kind = "standard"
	// KindRedirect is a stub pointing at a stored asset: layout, title,
	// date, redirect, categories.
	KindRedirect Kind = "redirect"
)

// FrontMatter is the metadata header of one post. Construct it with
// NewStandardPost or NewRedirectPost; serialize it exactly once with Render.
type FrontMatter struct {
	Kind        Kind
	Layout      string
	Title       string
	Date        time.Time
	Description string
	Tags        []string
	Categories  string
	TOC         bool
	Redirect    string
}

// NewStandardPost builds the header for a converted Markdown post. The date
// is the source file's modification time.
func NewStandardPost(meta types.Metadata, date time.Time) FrontMatter {
	return FrontMatter{
		Kind:        KindStandard,
		Layout:      meta.Layout,
		Title:       meta.Title,
		Date:        date,
		Description: meta.Description,
		Tags:        meta.Tags,
		Categories:  meta.Categories,
		TOC:         true,
	}
}

// NewRedirectPost builds the header for a PDF redirect stub. redirectPath is
// the stored asset's path relative to the site root.
func NewRedirectPost(meta types.Metadata, date time.Time, redirectPath string) FrontMatter {
	return FrontMatter{
		Kind:       KindRedirect,
		Layout:     meta.Layout,
		Title:      meta.Title,
		Date:       date,
		Categories: meta.Categories,
		Redirect:   redirectPath,
	}
}

// Render serializes the header between "---" delimiter lines. Key order is
// fixed: layout, title, date, description, tags, categories, toc for standard
// posts; layout, title, date, redirect, categories for redirects. Empty tags
// are omitted entirely.
func (f FrontMatter) Render() string {
	var b strings.Builder
	b.WriteString("---\n")
	writeScalar(&b, "layout", f.Layout)
	writeScalar(&b, "title", f.Title)
	// The date is a fixed-format literal, written bare; Parse keeps it as
	// text rather than letting YAML widen it to a timestamp.
	b.WriteString("date: ")
	b.WriteString(f.Date.Format(DateLayout))
	b.WriteByte('\n')
	if f.Kind == KindRedirect {
		writeScalar(&b, "redirect", f.Redirect)
		writeScalar(&b, "categories", f.Categories)
		b.WriteString("---\n")
		return b.String()
	}
	writeScalar(&b, "description", f.Description)
	if len(f.Tags) > 0 {
		b.WriteString("tags:\n")
		for _, t := range f.Tags {
			b.WriteString("  - ")
			b.WriteString(scalar(t))
			b.WriteByte('\n')
		}
	}
	writeScalar(&b, "categories", f.Categories)
	if f.TOC {
		b.WriteString("toc:\n  beginning: true\n")
	}
	b.WriteString("---\n")
	return b.String()
}

func writeScalar(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(scalar(value))
	b.WriteByte('\n')
}

// scalar renders a string value, quoting it when the plain form would break
// the header's encoding: colon-space sequences, leading markup characters,
// embedded quotes, comments, or surrounding whitespace.
func scalar(s string) string {
	if needsQuote(s) {
		return quote(s)
	}
	return s
}

func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	if strings.Contains(s, ": ") || strings.HasSuffix(s, ":") {
		return true
	}
	if strings.ContainsAny(s, "\"'#\n\t") {
		return true
	}
	switch s[0] {
	case '-', '?', ':', '&', '*', '!', '|', '>', '%', '@', '`', '[', ']', '{', '}', ',', ' ':
		return true
	}
	if s[len(s)-1] == ' ' {
		return true
	}
	// A plain scalar that YAML resolves to anything but a string (123,
	// true, null, 2025-01-01, ...) must be quoted to stay a string.
	var v interface{}
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return true
	}
	_, isString := v.(string)
	return !isString
}

// quote double-quotes a value, escaping only what YAML requires. Non-ASCII
// runes pass through unescaped so Unicode titles stay readable.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\', '"':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
