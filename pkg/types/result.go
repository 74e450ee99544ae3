// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionResult describes one completed conversion.
type ConversionResult struct {
	// OutputPath is the absolute path of the generated post file.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// AssetPath is the absolute path of the stored PDF asset. Empty for
	// Markdown conversions.
	AssetPath string `json:"asset_path,omitempty" yaml:"asset_path,omitempty"`

	// GeneratedAt is the timestamp written into the front-matter date field.
	// It is the source file's modification time, not the wall-clock time of
	// the conversion, so re-running on an unchanged source is stable.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}
