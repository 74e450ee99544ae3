// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/postforge/internal/frontmatter"
	"github.com/pdiddy/postforge/pkg/types"
)

var modTime = time.Date(2025, 7, 18, 9, 30, 0, 0, time.Local)

// newSite builds a site root with an engine configured against it.
func newSite(t *testing.T) (*Engine, string, string) {
	t.Helper()
	siteRoot := t.TempDir()
	outputDir := filepath.Join(siteRoot, "_posts")
	eng := New(types.EngineConfig{SiteRoot: siteRoot})
	return eng, siteRoot, outputDir
}

// writeSource creates a source file with the canonical test modification time.
func writeSource(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestProcess_Markdown(t *testing.T) {
	eng, siteRoot, outputDir := newSite(t)
	src := filepath.Join(siteRoot, "input", "doc.md")
	writeSource(t, src, "# My Document\n\n[TOC]\n\nText with $a|b$ math.\n\n\n\nThe end.\n")

	meta := types.Metadata{
		Title:       "My Post: A Test",
		Description: "D",
		Tags:        []string{"a", "b"},
	}

	result, err := eng.Process(src, outputDir, meta)
	require.NoError(t, err)

	wantPath := filepath.Join(outputDir, "2025-07-18-my-post-a-test.md")
	abs, _ := filepath.Abs(wantPath)
	assert.Equal(t, abs, result.OutputPath)
	assert.True(t, result.GeneratedAt.Equal(modTime))

	data, err := os.ReadFile(wantPath)
	require.NoError(t, err)

	parsed, err := frontmatter.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "post", parsed.Fields["layout"])
	assert.Equal(t, "My Post- A Test", parsed.Fields["title"])
	assert.Equal(t, "2025-07-18 09:30:00", parsed.Fields["date"])
	assert.Equal(t, "D", parsed.Fields["description"])
	assert.Equal(t, []interface{}{"a", "b"}, parsed.Fields["tags"])
	assert.Equal(t, "Notes", parsed.Fields["categories"])

	assert.NotContains(t, parsed.Body, "# My Document")
	assert.NotContains(t, parsed.Body, "[TOC]")
	assert.Contains(t, parsed.Body, `$a\vert b$`)
	assert.NotContains(t, parsed.Body, "\n\n\n")
}

func TestProcess_Markdown_Rerun_IsByteStable(t *testing.T) {
	eng, siteRoot, outputDir := newSite(t)
	src := filepath.Join(siteRoot, "input", "doc.md")
	writeSource(t, src, "# Doc\n\nbody\n")
	meta := types.Metadata{Title: "Stable", Description: "D"}

	first, err := eng.Process(src, outputDir, meta)
	require.NoError(t, err)
	second, err := eng.Process(src, outputDir, meta)
	require.NoError(t, err)

	// Distinct filenames, identical header dates.
	assert.NotEqual(t, first.OutputPath, second.OutputPath)
	assert.Equal(t, filepath.Join(outputDir, "2025-07-18-stable-2.md"), second.OutputPath)

	a, err := os.ReadFile(first.OutputPath)
	require.NoError(t, err)
	b, err := os.ReadFile(second.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestProcess_UnsupportedExtension(t *testing.T) {
	eng, siteRoot, outputDir := newSite(t)
	require.NoError(t, os.MkdirAll(outputDir, 0o755))
	src := filepath.Join(siteRoot, "notes.txt")
	writeSource(t, src, "plain text")

	_, err := eng.Process(src, outputDir, types.Metadata{Title: "T", Description: "D"})
	assert.Equal(t, UnsupportedInputKind, KindOf(err))

	// No file-system writes may have happened.
	entries, readErr := os.ReadDir(outputDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestProcess_RequiredMetadataMissing(t *testing.T) {
	eng, siteRoot, outputDir := newSite(t)
	src := filepath.Join(siteRoot, "doc.md")
	writeSource(t, src, "# Doc\n")

	tests := []struct {
		name string
		meta types.Metadata
	}{
		{"empty title", types.Metadata{Description: "D"}},
		{"blank title", types.Metadata{Title: "   ", Description: "D"}},
		{"empty description", types.Metadata{Title: "T"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eng.Process(src, outputDir, tt.meta)
			assert.Equal(t, RequiredMetadataMissing, KindOf(err))
		})
	}
}

func TestProcess_SourceNotFound(t *testing.T) {
	eng, siteRoot, outputDir := newSite(t)

	_, err := eng.Process(filepath.Join(siteRoot, "absent.md"), outputDir,
		types.Metadata{Title: "T", Description: "D"})
	assert.Equal(t, SourceNotFound, KindOf(err))
}

func TestProcess_PDF(t *testing.T) {
	eng, siteRoot, outputDir := newSite(t)
	src := filepath.Join(siteRoot, "input", "paper.pdf")
	writeSource(t, src, "%PDF-1.4 content")

	result, err := eng.Process(src, outputDir, types.Metadata{Title: "Paper", Description: "D"})
	require.NoError(t, err)

	storedAsset := filepath.Join(siteRoot, "assets", "pdf", "posts", "paper.pdf")
	assert.Equal(t, storedAsset, result.AssetPath)
	data, err := os.ReadFile(storedAsset)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 content", string(data))

	stub, err := os.ReadFile(filepath.Join(outputDir, "2025-07-18-paper.md"))
	require.NoError(t, err)
	parsed, err := frontmatter.Parse(stub)
	require.NoError(t, err)
	assert.Equal(t, "/assets/pdf/posts/paper.pdf", parsed.Fields["redirect"])
	assert.Empty(t, parsed.Body)
	assert.NotContains(t, parsed.Fields, "description")
}

func TestProcess_PDF_NameCollision(t *testing.T) {
	eng, siteRoot, outputDir := newSite(t)
	assetsDir := filepath.Join(siteRoot, "assets", "pdf", "posts")
	writeSource(t, filepath.Join(assetsDir, "paper.pdf"), "existing asset")

	src := filepath.Join(siteRoot, "input", "paper.pdf")
	writeSource(t, src, "%PDF-1.4 new")

	result, err := eng.Process(src, outputDir, types.Metadata{Title: "Paper", Description: "D"})
	require.NoError(t, err)

	// Stored under a disambiguated name; the existing asset is untouched.
	assert.Equal(t, filepath.Join(assetsDir, "paper-2.pdf"), result.AssetPath)
	old, _ := os.ReadFile(filepath.Join(assetsDir, "paper.pdf"))
	assert.Equal(t, "existing asset", string(old))

	stub, err := os.ReadFile(filepath.Join(outputDir, "2025-07-18-paper.md"))
	require.NoError(t, err)
	parsed, err := frontmatter.Parse(stub)
	require.NoError(t, err)
	assert.Equal(t, "/assets/pdf/posts/paper-2.pdf", parsed.Fields["redirect"])
}

func TestProcess_PDF_SameStoredFile(t *testing.T) {
	eng, siteRoot, outputDir := newSite(t)
	assetsDir := filepath.Join(siteRoot, "assets", "pdf", "posts")
	src := filepath.Join(assetsDir, "paper.pdf")
	writeSource(t, src, "%PDF-1.4 already stored")

	result, err := eng.Process(src, outputDir, types.Metadata{Title: "Paper", Description: "D"})
	require.NoError(t, err, "converting the already-stored asset must not fail")

	assert.Equal(t, src, result.AssetPath)
	data, _ := os.ReadFile(src)
	assert.Equal(t, "%PDF-1.4 already stored", string(data))
}

func TestExtractTitleForPreview(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(src, []byte("intro\n\n# The Title\n"), 0o644))

	title, ok, err := ExtractTitleForPreview(src)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "The Title", title)

	bare := filepath.Join(dir, "bare.md")
	require.NoError(t, os.WriteFile(bare, []byte("no heading\n"), 0o644))
	_, ok, err = ExtractTitleForPreview(bare)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = ExtractTitleForPreview(filepath.Join(dir, "absent.md"))
	assert.Equal(t, SourceUnreadable, KindOf(err))
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(os.ErrNotExist))
	assert.Equal(t, ErrorKind(""), KindOf(nil))
}
