// Package blogconv converts blog export data between WordPress WXR
// documents and the Ghost JSON export format.
//
// The two directional transforms are pure functions of their input plus an
// injected clock and randomness source; no state is shared across calls, so
// independent conversions can run concurrently.
package blogconv

import (
	"encoding/json"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blogconv/internal/exporter"
	"github.com/goliatone/go-blogconv/internal/ghost"
	"github.com/goliatone/go-blogconv/internal/importer"
)

// Direction selects which transform a Convert call runs.
type Direction string

const (
	// DirectionWPToGhost parses WXR XML and produces the JSON export.
	DirectionWPToGhost Direction = "wp-to-ghost"
	// DirectionGhostToWP parses the JSON export and produces WXR XML.
	DirectionGhostToWP Direction = "ghost-to-wp"
)

// Canonical export model, re-exported for consumers of the root package.
type (
	Export     = ghost.Export
	Database   = ghost.Database
	Meta       = ghost.Meta
	Data       = ghost.Data
	Post       = ghost.Post
	Tag        = ghost.Tag
	User       = ghost.User
	Role       = ghost.Role
	PostTag    = ghost.PostTag
	RoleUser   = ghost.RoleUser
	PostAuthor = ghost.PostAuthor
)

// Convert runs the transform selected by direction over a raw text payload,
// handling the JSON (de)serialization around the canonical envelope.
func Convert(content string, direction Direction, opts Options) (string, error) {
	switch direction {
	case DirectionWPToGhost:
		export, err := ImportWXR(content, opts)
		if err != nil {
			return "", err
		}
		out, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			return "", fmt.Errorf("blogconv: serialize export: %w", err)
		}
		return string(out), nil
	case DirectionGhostToWP:
		var export Export
		if err := json.Unmarshal([]byte(content), &export); err != nil {
			return "", goerrors.Wrap(
				fmt.Errorf("%w: %w", ErrMalformedJSON, err),
				goerrors.CategoryValidation, "ghost export is not valid JSON",
			).WithTextCode("GHOST_PARSE_FAILED")
		}
		return ExportWXR(&export, opts)
	default:
		return "", fmt.Errorf("blogconv: unknown conversion direction %q", direction)
	}
}

// ImportWXR converts a WXR document into the canonical envelope.
func ImportWXR(content string, opts Options) (*Export, error) {
	imp := importer.New(importer.Config{
		GhostVersion: opts.GhostVersion,
		Authors:      opts.Authors,
		IDs:          opts.IDs,
		Clock:        opts.Clock,
		Logger:       importLogger(opts),
	})
	return imp.Convert(content)
}

// ExportWXR serializes the canonical envelope into a WXR document string.
func ExportWXR(export *Export, opts Options) (string, error) {
	exp := exporter.New(exporter.Config{
		Clock:  opts.Clock,
		Logger: exportLogger(opts),
	})
	return exp.Convert(export)
}
