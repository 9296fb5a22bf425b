package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/psetgo/internal/config"
	"github.com/specialistvlad/psetgo/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
// A Loader keeps the parsed sources of its last Load so diagnostics can be
// rendered with snippets; use one Loader per document.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// Files returns the sources parsed so far, keyed by filename.
func (l *Loader) Files() map[string]*hcl.File {
	return l.parser.Files()
}

// Load parses the given files and merges them into a single document.
func (l *Loader) Load(ctx context.Context, files ...string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "file_count", len(files))

	var diags hcl.Diagnostics
	docs := make([]*config.Document, 0, len(files))
	for _, file := range files {
		hclFile, parseDiags := l.parser.ParseHCLFile(file)
		diags = append(diags, parseDiags...)
		if parseDiags.HasErrors() {
			continue
		}

		doc, decodeDiags := decodeBody(hclFile.Body, file)
		diags = append(diags, decodeDiags...)
		if doc != nil {
			docs = append(docs, doc)
		}
		logger.Debug("Decoded HCL file.", "file", file)
	}

	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to load HCL configuration: %w", diags)
	}

	merged := config.Merge(docs...)
	logger.Debug("HCL loading complete.", "modules", len(merged.Modules), "outputs", len(merged.Outputs), "paths", len(merged.Paths), "end_paths", len(merged.EndPaths))
	return merged, nil
}

// LoadBytes parses an in-memory document. The filename is only used for
// diagnostics.
func (l *Loader) LoadBytes(ctx context.Context, filename string, src []byte) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader parsing in-memory source.", "file", filename)

	hclFile, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to load HCL configuration: %w", diags)
	}

	doc, decodeDiags := decodeBody(hclFile.Body, filename)
	if decodeDiags.HasErrors() {
		return nil, fmt.Errorf("failed to load HCL configuration: %w", decodeDiags)
	}
	return doc, nil
}
