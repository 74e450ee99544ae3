// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/postforge/internal/engine"
	"github.com/pdiddy/postforge/internal/registry"
	"github.com/pdiddy/postforge/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a Markdown or PDF document into a blog post",
	Long: `Convert transforms a single source document into a post file.

A Markdown source becomes a post with rewritten math spans, normalized blank
lines, and a synthesized front-matter header. A PDF source is copied into the
site's asset tree and a redirect stub is generated instead. The post date is
the source file's modification time, so re-running on an unchanged source
produces the same header.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("title", "t", "", "post title (default: extracted from the document)")
	convertCmd.Flags().StringP("description", "d", "", "post description")
	convertCmd.Flags().String("tags", "", "tags, separated by commas or whitespace")
	convertCmd.Flags().StringP("output-dir", "o", "", "directory for the generated post")
	convertCmd.Flags().String("assets-dir", "", "directory for stored PDF assets")
	convertCmd.Flags().String("site-root", "", "static site root, used for redirect paths")
	convertCmd.Flags().String("categories", "", "front-matter categories")
	convertCmd.Flags().String("layout", "", "front-matter layout")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]

	flagOr := func(flag, key string) string {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			return v
		}
		return viper.GetString(key)
	}

	cfg := types.EngineConfig{
		OutputDir:  flagOr("output-dir", "output_dir"),
		AssetsDir:  flagOr("assets-dir", "assets_dir"),
		SiteRoot:   flagOr("site-root", "site_root"),
		Layout:     flagOr("layout", "layout"),
		Categories: flagOr("categories", "categories"),
	}
	cfg.ApplyDefaults()
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = "."
	}

	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		title = defaultTitle(input)
	}
	description, _ := cmd.Flags().GetString("description")
	rawTags, _ := cmd.Flags().GetString("tags")

	meta := types.Metadata{
		Title:       title,
		Description: description,
		Tags:        types.ParseTags(rawTags),
		Categories:  cfg.Categories,
		Layout:      cfg.Layout,
	}

	result, err := engine.New(cfg).Process(input, outputDir, meta)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", result.OutputPath)
	if result.AssetPath != "" {
		fmt.Printf("Stored asset %s\n", result.AssetPath)
	}

	recordConversion(input, meta, result)
	return nil
}

// defaultTitle pre-fills the title the way the interactive layer would: the
// first top-level heading for Markdown, the filename stem for PDF.
func defaultTitle(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".md") {
		if t, ok, err := engine.ExtractTitleForPreview(path); err == nil && ok {
			return t
		}
		return ""
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// recordConversion appends to the history database. Failures are warnings;
// the conversion itself already succeeded.
func recordConversion(input string, meta types.Metadata, result types.ConversionResult) {
	store, err := registry.Open(viper.GetString("registry_path"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open history: %v\n", err)
		return
	}
	defer store.Close()

	kind := types.SourceMarkdown
	if result.AssetPath != "" {
		kind = types.SourcePDF
	}
	err = store.Record(registry.Conversion{
		SourcePath: input,
		OutputPath: result.OutputPath,
		AssetPath:  result.AssetPath,
		Kind:       kind,
		Title:      meta.Title,
		PostDate:   result.GeneratedAt,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record history: %v\n", err)
	}
}
