package blogconv

import (
	"github.com/goliatone/go-blogconv/internal/logging"
	"github.com/goliatone/go-blogconv/pkg/interfaces"
)

// Options configures a conversion. The zero value selects production
// defaults: target version 6.0.0, collapsed author identities, random post
// UUIDs, the system clock, and no logging.
type Options struct {
	// GhostVersion is echoed unmodified into the export envelope on import.
	GhostVersion string
	// Authors overrides the import-side login-to-user mapping policy.
	Authors interfaces.AuthorResolver
	// IDs supplies the auxiliary post UUIDs assigned on import. Tests can
	// inject a deterministic source.
	IDs interfaces.IdentitySource
	// Clock supplies the current instant for export timestamps and missing
	// channel dates.
	Clock interfaces.Clock
	// Logging names a provider for module-scoped loggers.
	Logging interfaces.LoggerProvider
}

func importLogger(opts Options) interfaces.Logger {
	return logging.ImporterLogger(opts.Logging)
}

func exportLogger(opts Options) interfaces.Logger {
	return logging.ExporterLogger(opts.Logging)
}
