package app

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/psetgo/internal/config"
	"github.com/specialistvlad/psetgo/internal/ctxlog"
	"github.com/specialistvlad/psetgo/internal/fsutil"
	hclloader "github.com/specialistvlad/psetgo/internal/hcl"
	"github.com/specialistvlad/psetgo/internal/plan"
	yamlloader "github.com/specialistvlad/psetgo/internal/yaml"
)

// sourceLoader is a config.Loader that keeps its parsed sources around for
// diagnostic snippets.
type sourceLoader interface {
	config.Loader
	Files() map[string]*hcl.File
}

// loaders returns a fresh set of format loaders. Loaders are stateful, so
// every document gets its own set.
func loaders() []sourceLoader {
	return []sourceLoader{hclloader.NewLoader(), yamlloader.NewLoader()}
}

// Extensions lists every document file extension the application accepts.
func Extensions() []string {
	var exts []string
	for _, l := range loaders() {
		exts = append(exts, l.Extensions()...)
	}
	return exts
}

func loaderFor(set []sourceLoader, file string) sourceLoader {
	for _, l := range set {
		if fsutil.HasExtension(file, l.Extensions()...) {
			return l
		}
	}
	return nil
}

// Result is the outcome of processing one document. Exactly one of Plan and
// Err is set.
type Result struct {
	Path  string
	Plan  *plan.Plan
	Err   error
	Files map[string]*hcl.File
}

// Failed reports whether the document could not be loaded or resolved.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Load reads the document at path (a file or a directory) and merges its
// files, in lexical order, into one document. HCL and YAML files may be
// mixed. The returned map holds every source read, even on failure.
func (a *App) Load(ctx context.Context, path string) (*config.Document, map[string]*hcl.File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading document.", "path", path)

	files, err := fsutil.FindFiles(path, Extensions()...)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no configuration files found in %s", path)
	}

	set := loaders()
	var diags hcl.Diagnostics
	docs := make([]*config.Document, 0, len(files))
	for _, file := range files {
		doc, err := loaderFor(set, file).Load(ctx, file)
		if err != nil {
			var fileDiags hcl.Diagnostics
			if !errors.As(err, &fileDiags) {
				return nil, sources(set), err
			}
			diags = append(diags, fileDiags...)
			continue
		}
		docs = append(docs, doc)
	}
	if diags.HasErrors() {
		return nil, sources(set), fmt.Errorf("failed to load %s: %w", path, diags)
	}

	doc := config.Merge(docs...)
	logger.Debug("Document loaded.", "path", path, "files", len(files))
	return doc, sources(set), nil
}

func sources(set []sourceLoader) map[string]*hcl.File {
	out := make(map[string]*hcl.File)
	for _, l := range set {
		maps.Copy(out, l.Files())
	}
	return out
}

// Process loads and resolves a single document.
func (a *App) Process(ctx context.Context, path string) *Result {
	ctx = a.withLogger(ctx)
	res := &Result{Path: filepath.Clean(path)}

	doc, files, err := a.Load(ctx, path)
	res.Files = files
	if err != nil {
		res.Err = err
		return res
	}

	p, err := plan.Resolve(ctx, doc, a.registry)
	if err != nil {
		res.Err = err
		return res
	}
	res.Plan = p
	return res
}
