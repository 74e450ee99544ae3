// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "path/filepath"

// DefaultAssetSubdir is the directory under the site root where PDF assets
// are stored when no explicit assets directory is configured.
const DefaultAssetSubdir = "assets/pdf/posts"

// EngineConfig holds the injected paths and front-matter defaults for the
// conversion engine.
type EngineConfig struct {
	// OutputDir is the default directory for generated post files.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// AssetsDir is the directory where PDF assets are stored. Defaults to
	// DefaultAssetSubdir under SiteRoot.
	AssetsDir string `json:"assets_dir" yaml:"assets_dir"`

	// SiteRoot is the root of the static site. Redirect paths in PDF stubs
	// are expressed relative to it.
	SiteRoot string `json:"site_root" yaml:"site_root"`

	// Layout is the default front-matter layout (default "post").
	Layout string `json:"layout" yaml:"layout"`

	// Categories is the default front-matter categories value (default "Notes").
	Categories string `json:"categories" yaml:"categories"`
}

// ApplyDefaults fills unset fields with their defaults.
func (c *EngineConfig) ApplyDefaults() {
	if c.SiteRoot == "" {
		c.SiteRoot = "."
	}
	if c.AssetsDir == "" {
		c.AssetsDir = filepath.Join(c.SiteRoot, filepath.FromSlash(DefaultAssetSubdir))
	}
	if c.Layout == "" {
		c.Layout = DefaultLayout
	}
	if c.Categories == "" {
		c.Categories = DefaultCategories
	}
}
