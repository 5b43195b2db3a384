package blogconv

import (
	"errors"

	"github.com/goliatone/go-blogconv/internal/exporter"
	"github.com/goliatone/go-blogconv/internal/wxr"
)

// ErrMalformedJSON reports an export-direction payload that is not valid
// JSON at all.
var ErrMalformedJSON = errors.New("blogconv: content is not valid JSON")

// IsMalformedInput reports whether err is one of the fatal input-parsing
// failures: WXR that is not well-formed XML, or an export payload that is
// not valid JSON.
func IsMalformedInput(err error) bool {
	return errors.Is(err, wxr.ErrMalformedDocument) || errors.Is(err, ErrMalformedJSON)
}

// IsSchemaValidation reports whether err is an export-side failure caused
// by an envelope missing fields required to emit a valid document.
func IsSchemaValidation(err error) bool {
	return errors.Is(err, exporter.ErrSchemaValidation)
}
