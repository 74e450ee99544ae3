// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package slug derives collision-free, filesystem-safe output names from a
// date and a title. Collision checks run against a caller-supplied name set,
// never against the file system itself, so the generator stays pure.
package slug

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fallback is the slug used when sanitization would otherwise yield nothing.
const Fallback = "untitled"

// maxAttempts bounds disambiguation; exceeding it signals a pathological
// directory state rather than something worth looping on forever.
const maxAttempts = 10000

// ErrExhausted is returned when no free name is found within maxAttempts.
var ErrExhausted = errors.New("filename disambiguation attempts exhausted")

// Slugify converts a title into a URL- and filesystem-safe slug. Letters of
// any script and digits survive (lowercased, NFKC-normalized), whitespace
// runs become single hyphens, and everything else is dropped. A title that
// sanitizes to nothing yields Fallback.
func Slugify(title string) string {
	t := norm.NFKC.String(strings.TrimSpace(title))
	t = strings.ToLower(t)

	var b strings.Builder
	b.Grow(len(t))
	hyphen := false
	for _, r := range t {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			hyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !hyphen && b.Len() > 0 {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	s := strings.TrimRight(b.String(), "-")
	if s == "" {
		return Fallback
	}
	return s
}

// Filename produces "YYYY-MM-DD-<slug>.md", unique against existing. The
// existing set holds lowercased names; comparison is case-insensitive. When
// the base name is taken, a numeric disambiguator (-2, -3, ...) is appended
// until a free name is found. Deterministic for identical inputs.
func Filename(date time.Time, title string, existing map[string]struct{}) (string, error) {
	base := date.Format("2006-01-02") + "-" + Slugify(title)
	name := base + ".md"
	if !taken(existing, name) {
		return name, nil
	}
	for n := 2; n <= maxAttempts; n++ {
		name = fmt.Sprintf("%s-%d.md", base, n)
		if !taken(existing, name) {
			return name, nil
		}
	}
	return "", ErrExhausted
}

// UniqueAssetName keeps the given file name if free, otherwise appends a
// numeric disambiguator before the extension ("paper.pdf" -> "paper-2.pdf").
func UniqueAssetName(name string, existing map[string]struct{}) (string, error) {
	if !taken(existing, name) {
		return name, nil
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 2; n <= maxAttempts; n++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, n, ext)
		if !taken(existing, candidate) {
			return candidate, nil
		}
	}
	return "", ErrExhausted
}

func taken(existing map[string]struct{}, name string) bool {
	_, ok := existing[strings.ToLower(name)]
	return ok
}
