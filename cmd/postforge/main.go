// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the postforge CLI, the collaborator
// layer around the conversion engine: it collects metadata, invokes one
// conversion at a time, and presents failures as single messages.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the postforge CLI.
var rootCmd = &cobra.Command{
	Use:   "postforge",
	Short: "Convert documents into static-site blog posts",
	Long: `postforge converts an author-supplied source document into a standardized
blog-post artifact for a static-site generator: a Markdown file carrying a
structured front-matter header, or a redirect stub pointing at a stored PDF.

Markdown sources get their math spans rewritten for the site's renderer,
blank lines normalized, and a front-matter header synthesized from the
supplied metadata. PDF sources are stored under the site's asset tree and a
redirect stub is generated in their place.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./postforge.yaml or ~/.config/postforge/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("postforge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "postforge"))
		}
	}

	viper.SetDefault("registry_path", filepath.Join(".postforge", "history.db"))

	viper.SetEnvPrefix("POSTFORGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
