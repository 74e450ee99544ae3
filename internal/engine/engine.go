// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine orchestrates document conversion: it reads a Markdown or PDF
// source, drives the rewriting components, synthesizes the front-matter
// header, and writes the post atomically under a collision-free name.
//
// The pipeline is synchronous and assumes exclusive access to the output
// directory for the duration of one Process call; name uniqueness is computed
// from a directory snapshot taken at call start, so callers serialize
// conversions targeting the same directory.
package engine

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/postforge/internal/frontmatter"
	"github.com/pdiddy/postforge/internal/fsutil"
	"github.com/pdiddy/postforge/internal/markdown"
	"github.com/pdiddy/postforge/internal/mathjax"
	"github.com/pdiddy/postforge/internal/slug"
	"github.com/pdiddy/postforge/pkg/types"
)

// colonRun matches runs of colons in titles; they become hyphens before the
// title reaches the front matter or the slugger.
var colonRun = regexp.MustCompile(`:+`)

// Engine converts source documents into blog-post artifacts.
type Engine struct {
	cfg types.EngineConfig
}

// New creates an Engine with the given configuration, filling defaults.
func New(cfg types.EngineConfig) *Engine {
	cfg.ApplyDefaults()
	return &Engine{cfg: cfg}
}

// Process converts the document at inputPath into a post under outputDir and
// returns the result. All failures carry an ErrorKind; no visible output file
// is ever partially written.
func (e *Engine) Process(inputPath, outputDir string, meta types.Metadata) (types.ConversionResult, error) {
	if err := meta.Validate(); err != nil {
		return types.ConversionResult{}, &Error{Kind: RequiredMetadataMissing, Source: inputPath, Err: err}
	}
	meta = e.applyMetaDefaults(meta)

	kind, ok := kindForPath(inputPath)
	if !ok {
		return types.ConversionResult{}, &Error{Kind: UnsupportedInputKind, Source: inputPath}
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return types.ConversionResult{}, &Error{Kind: SourceNotFound, Source: inputPath, Err: err}
		}
		return types.ConversionResult{}, &Error{Kind: SourceUnreadable, Source: inputPath, Err: err}
	}
	date := info.ModTime()

	if kind == types.SourceMarkdown {
		return e.processMarkdown(inputPath, outputDir, meta, date)
	}
	return e.processPDF(inputPath, outputDir, meta, date)
}

// ExtractTitleForPreview reads a Markdown file and returns its first
// top-level heading, for pre-filling a title field before conversion.
// ok is false when the document has no top-level heading.
func ExtractTitleForPreview(path string) (title string, ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, &Error{Kind: SourceUnreadable, Source: path, Err: err}
	}
	title, ok = markdown.ExtractTitle(string(data))
	return title, ok, nil
}

// kindForPath branches strictly on the file extension, case-insensitively.
func kindForPath(path string) (types.SourceKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md":
		return types.SourceMarkdown, true
	case ".pdf":
		return types.SourcePDF, true
	}
	return "", false
}

// applyMetaDefaults fills layout and categories from the engine configuration,
// replaces colon runs in the title with hyphens, and enforces the tag
// invariants (no empties, no duplicates).
func (e *Engine) applyMetaDefaults(meta types.Metadata) types.Metadata {
	meta.Title = strings.TrimSpace(colonRun.ReplaceAllString(meta.Title, "-"))
	meta.Tags = types.NormalizeTags(meta.Tags)
	if meta.Layout == "" {
		meta.Layout = e.cfg.Layout
	}
	if meta.Categories == "" {
		meta.Categories = e.cfg.Categories
	}
	return meta
}

func (e *Engine) processMarkdown(inputPath, outputDir string, meta types.Metadata, date time.Time) (types.ConversionResult, error) {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return types.ConversionResult{}, &Error{Kind: SourceUnreadable, Source: inputPath, Err: err}
	}

	body := string(raw)
	body = markdown.StripLeadingTitle(body)
	body = markdown.StripTOC(body)
	body = mathjax.Rewrite(body)
	body = markdown.Normalize(body)

	fm := frontmatter.NewStandardPost(meta, date)
	return e.writePost(inputPath, outputDir, meta.Title, date, fm, body, "")
}

func (e *Engine) processPDF(inputPath, outputDir string, meta types.Metadata, date time.Time) (types.ConversionResult, error) {
	assetPath, err := e.storeAsset(inputPath)
	if err != nil {
		return types.ConversionResult{}, err
	}

	redirect, err := e.redirectPath(assetPath)
	if err != nil {
		return types.ConversionResult{}, &Error{Kind: AssetCopyFailed, Source: inputPath, Target: assetPath, Err: err}
	}

	fm := frontmatter.NewRedirectPost(meta, date, redirect)
	return e.writePost(inputPath, outputDir, meta.Title, date, fm, "", assetPath)
}

// storeAsset copies the PDF into the assets directory, resolving name
// collisions. A source that already is the stored asset (same file identity,
// not merely same content) is a harmless no-op, not a failure.
func (e *Engine) storeAsset(inputPath string) (string, error) {
	if err := os.MkdirAll(e.cfg.AssetsDir, 0o755); err != nil {
		return "", &Error{Kind: AssetCopyFailed, Source: inputPath, Target: e.cfg.AssetsDir, Err: err}
	}

	base := filepath.Base(inputPath)
	dest := filepath.Join(e.cfg.AssetsDir, base)
	if fsutil.SameFile(inputPath, dest) {
		return dest, nil
	}

	names, err := fsutil.ListNames(e.cfg.AssetsDir)
	if err != nil {
		return "", &Error{Kind: AssetCopyFailed, Source: inputPath, Target: e.cfg.AssetsDir, Err: err}
	}
	name, err := slug.UniqueAssetName(base, names)
	if err != nil {
		return "", &Error{Kind: FilenameResolutionExhausted, Source: inputPath, Target: e.cfg.AssetsDir, Err: err}
	}
	dest = filepath.Join(e.cfg.AssetsDir, name)

	if err := fsutil.CopyFile(inputPath, dest); err != nil {
		return "", &Error{Kind: AssetCopyFailed, Source: inputPath, Target: dest, Err: err}
	}
	return dest, nil
}

// redirectPath expresses a stored asset path relative to the site root, with
// forward slashes and a leading slash.
func (e *Engine) redirectPath(assetPath string) (string, error) {
	root, err := filepath.Abs(e.cfg.SiteRoot)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(assetPath)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(rel), nil
}

// writePost names the output against a snapshot of outputDir and writes it
// atomically. The header is followed by a blank line and the body; a
// redirect stub is the header alone.
func (e *Engine) writePost(inputPath, outputDir, title string, date time.Time, fm frontmatter.FrontMatter, body, assetPath string) (types.ConversionResult, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return types.ConversionResult{}, &Error{Kind: OutputDirectoryUnwritable, Source: inputPath, Target: outputDir, Err: err}
	}
	names, err := fsutil.ListNames(outputDir)
	if err != nil {
		return types.ConversionResult{}, &Error{Kind: OutputDirectoryUnwritable, Source: inputPath, Target: outputDir, Err: err}
	}

	name, err := slug.Filename(date, title, names)
	if err != nil {
		return types.ConversionResult{}, &Error{Kind: FilenameResolutionExhausted, Source: inputPath, Target: outputDir, Err: err}
	}
	outPath := filepath.Join(outputDir, name)

	content := fm.Render()
	if body = strings.Trim(body, "\n"); body != "" {
		content += "\n" + body + "\n"
	}

	if err := fsutil.WriteFileAtomic(outPath, []byte(content), 0o644); err != nil {
		return types.ConversionResult{}, &Error{Kind: OutputDirectoryUnwritable, Source: inputPath, Target: outPath, Err: err}
	}

	abs, err := filepath.Abs(outPath)
	if err != nil {
		abs = outPath
	}
	return types.ConversionResult{OutputPath: abs, AssetPath: assetPath, GeneratedAt: date}, nil
}
