package registry

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/psetgo/internal/ctxlog"
	"github.com/specialistvlad/psetgo/internal/fsutil"
)

//go:embed catalog/*.hcl
var catalog embed.FS

// LoadBuiltins registers the module types shipped with the binary.
func (r *Registry) LoadBuiltins(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	// fs.Glob returns matches in lexical order.
	names, err := fs.Glob(catalog, "catalog/*.hcl")
	if err != nil {
		return fmt.Errorf("failed to list built-in manifests: %w", err)
	}

	parser := hclparse.NewParser()
	count := 0
	for _, name := range names {
		src, err := catalog.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read built-in manifest %s: %w", name, err)
		}
		n, err := r.registerManifest(parser, src, "builtin:"+path.Base(name))
		if err != nil {
			return err
		}
		count += n
	}

	logger.Debug("Built-in module types registered.", "count", count)
	return nil
}

// LoadManifests registers every module type found in the .hcl manifests
// under root. root may also name a single manifest file.
func (r *Registry) LoadManifests(ctx context.Context, root string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading manifests from modules path...", "path", root)

	files, err := fsutil.FindFiles(root, ".hcl")
	if err != nil {
		return fmt.Errorf("failed to find module manifests in %s: %w", root, err)
	}
	if len(files) == 0 {
		logger.Warn("No .hcl manifest files found in path.", "path", root)
		return nil
	}

	parser := hclparse.NewParser()
	count := 0
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read manifest %s: %w", file, err)
		}
		n, err := r.registerManifest(parser, src, file)
		if err != nil {
			return err
		}
		count += n
		logger.Debug("Loaded module types from manifest.", "file", file, "count", n)
	}

	logger.Info("Module manifests loaded.", "path", root, "module_types", count)
	return nil
}

func (r *Registry) registerManifest(parser *hclparse.Parser, src []byte, origin string) (int, error) {
	types, diags := ParseManifest(parser, src, origin)
	if diags.HasErrors() {
		return 0, fmt.Errorf("failed to parse manifest %s: %w", origin, diags)
	}
	for _, mt := range types {
		if err := r.Register(mt); err != nil {
			return 0, fmt.Errorf("failed to register module types from %s: %w", origin, err)
		}
	}
	return len(types), nil
}

// Builtins returns a new registry holding only the built-in module types.
func Builtins(ctx context.Context) (*Registry, error) {
	r := New()
	if err := r.LoadBuiltins(ctx); err != nil {
		return nil, err
	}
	return r, nil
}
