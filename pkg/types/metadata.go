// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for postforge: source kinds,
// author-supplied metadata, conversion results, and engine configuration.
package types

import (
	"errors"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SourceKind identifies the type of an input document.
type SourceKind string

const (
	SourceMarkdown SourceKind = "markdown"
	SourcePDF      SourceKind = "pdf"
)

const (
	// DefaultLayout is the front-matter layout used when the caller supplies none.
	DefaultLayout = "post"
	// DefaultCategories is the front-matter categories value used when the
	// caller supplies none.
	DefaultCategories = "Notes"
)

// Metadata holds the author-supplied fields for a post. The engine only reads
// it; ownership stays with the caller.
type Metadata struct {
	// Title is the post title. Required, non-empty after trimming.
	Title string `json:"title" yaml:"title"`

	// Description is the post description. Required.
	Description string `json:"description" yaml:"description"`

	// Tags lists the post tags in caller order, without empties or duplicates.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Categories is the front-matter categories value (default "Notes").
	Categories string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// Layout is the front-matter layout value (default "post").
	Layout string `json:"layout,omitempty" yaml:"layout,omitempty"`
}

// notBlank rejects strings that are empty after trimming. ozzo's Required
// accepts whitespace-only values, which is not good enough here.
func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be blank")
	}
	return nil
}

// Validate checks the required metadata fields. It reports the first problem
// with title or description; optional fields are never rejected.
func (m Metadata) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.By(notBlank)),
		validation.Field(&m.Description, validation.By(notBlank)),
	)
}

// ParseTags splits a raw tag string on commas, full-width commas, and
// whitespace, trims each piece, and drops empties and duplicates while
// preserving first-seen order.
func ParseTags(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '，' || unicode.IsSpace(r)
	})
	return NormalizeTags(fields)
}

// NormalizeTags trims tags and removes empties and case-sensitive duplicates,
// preserving first-seen order. A nil result means no tags.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
