package yaml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/psetgo/internal/config"
	"github.com/specialistvlad/psetgo/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML implementation of the config.Loader interface. Like
// the HCL loader it remembers the sources it read for diagnostic snippets.
type Loader struct {
	files map[string]*hcl.File
}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{files: make(map[string]*hcl.File)}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Load reads the given files and merges them into a single document.
func (l *Loader) Load(ctx context.Context, files ...string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "file_count", len(files))

	docs := make([]*config.Document, 0, len(files))
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
		}
		doc, err := l.LoadBytes(ctx, file, src)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	merged := config.Merge(docs...)
	logger.Debug("YAML loading complete.", "modules", len(merged.Modules), "paths", len(merged.Paths))
	return merged, nil
}

// Files returns the sources read so far, keyed by filename. Only the bytes
// are populated; YAML has no HCL body.
func (l *Loader) Files() map[string]*hcl.File {
	return l.files
}

// LoadBytes decodes an in-memory YAML document.
func (l *Loader) LoadBytes(ctx context.Context, filename string, src []byte) (*config.Document, error) {
	ctxlog.FromContext(ctx).Debug("Decoding YAML source.", "file", filename)
	if l.files == nil {
		l.files = make(map[string]*hcl.File)
	}
	l.files[filename] = &hcl.File{Bytes: src}

	var root yamlDocument
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", filename, decodeDiagnostics(filename, src, err))
	}

	t := &translator{filename: filename}
	doc := t.document(&root)
	if t.diags.HasErrors() {
		return nil, fmt.Errorf("failed to load YAML configuration: %w", t.diags)
	}
	return doc, nil
}
