// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a conversion failure. The collaborator layer renders
// one human-readable message per kind without inspecting anything else.
type ErrorKind string

const (
	UnsupportedInputKind        ErrorKind = "unsupported_input_kind"
	SourceNotFound              ErrorKind = "source_not_found"
	SourceUnreadable            ErrorKind = "source_unreadable"
	OutputDirectoryUnwritable   ErrorKind = "output_directory_unwritable"
	RequiredMetadataMissing     ErrorKind = "required_metadata_missing"
	AssetCopyFailed             ErrorKind = "asset_copy_failed"
	FilenameResolutionExhausted ErrorKind = "filename_resolution_exhausted"
)

// message returns the human-readable phrase for a kind.
func (k ErrorKind) message() string {
	switch k {
	case UnsupportedInputKind:
		return "unsupported input type"
	case SourceNotFound:
		return "source file not found"
	case SourceUnreadable:
		return "source file could not be read"
	case OutputDirectoryUnwritable:
		return "output directory is not writable"
	case RequiredMetadataMissing:
		return "required metadata is missing"
	case AssetCopyFailed:
		return "storing the PDF asset failed"
	case FilenameResolutionExhausted:
		return "no free output filename could be found"
	}
	return string(k)
}

// Error is a conversion failure with enough context (source and target paths)
// for the collaborator to render a precise message.
type Error struct {
	Kind   ErrorKind
	Source string
	Target string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.message())
	if e.Source != "" {
		fmt.Fprintf(&b, ": %s", e.Source)
	}
	if e.Target != "" {
		fmt.Fprintf(&b, " -> %s", e.Target)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the ErrorKind from err, or "" when err does not carry one.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
