// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/postforge/internal/engine"
)

var titleCmd = &cobra.Command{
	Use:   "title <file>",
	Short: "Print the title a conversion would default to",
	Long: `Title prints the default post title for a source document: the first
top-level heading of a Markdown file, or the filename stem of a PDF.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md":
			title, ok, err := engine.ExtractTitleForPreview(path)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no top-level heading in %s", path)
			}
			fmt.Println(title)
		case ".pdf":
			fmt.Println(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		default:
			return fmt.Errorf("unsupported input type: %s", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(titleCmd)
}
