package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the given files, translates them into the format-agnostic
	// model and returns a single merged document.
	Load(ctx context.Context, files ...string) (*Document, error)

	// Extensions lists the file extensions the loader understands,
	// including the leading dot.
	Extensions() []string
}
