package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/specialistvlad/psetgo/internal/render"
	"github.com/specialistvlad/psetgo/internal/watch"
	"golang.org/x/sync/errgroup"
)

// ErrFailed is returned by the commands when at least one document failed to
// load or resolve. The failure itself has already been reported.
var ErrFailed = errors.New("validation failed")

// Validate processes every document concurrently and returns the results in
// argument order. Document failures are recorded in the results; only
// context cancellation is returned as an error.
func (a *App) Validate(ctx context.Context, paths []string) ([]*Result, error) {
	results := make([]*Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.Process(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// report writes one result to the output and reports whether it failed.
func (a *App) report(res *Result) (bool, error) {
	if res.Failed() {
		return true, render.Failure(a.outW, res.Path, res.Err, res.Files)
	}
	return false, render.Summary(a.outW, res.Path, res.Plan)
}

// RunValidate validates every document and prints a summary line or the
// diagnostics for each.
func (a *App) RunValidate(ctx context.Context, paths []string) error {
	ctx = a.withLogger(ctx)
	a.logger.Debug("Validating documents.", "count", len(paths))

	results, err := a.Validate(ctx, paths)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		bad, err := a.report(res)
		if err != nil {
			return err
		}
		if bad {
			failed++
		}
	}
	a.logger.Info("Validation finished.", "documents", len(results), "failed", failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d documents: %w", failed, len(results), ErrFailed)
	}
	return nil
}

// RunPlan prints the resolved plan of one document in the configured
// output format.
func (a *App) RunPlan(ctx context.Context, path string) error {
	res := a.Process(ctx, path)
	if res.Failed() {
		if err := render.Failure(a.outW, res.Path, res.Err, res.Files); err != nil {
			return err
		}
		return ErrFailed
	}

	if a.config.Output == OutputJSON {
		return render.JSON(a.outW, res.Plan)
	}
	return render.Text(a.outW, res.Plan)
}

// RunDump prints the fully expanded HCL form of one document.
func (a *App) RunDump(ctx context.Context, path string) error {
	res := a.Process(ctx, path)
	if res.Failed() {
		if err := render.Failure(a.outW, res.Path, res.Err, res.Files); err != nil {
			return err
		}
		return ErrFailed
	}
	return render.WriteDump(a.outW, res.Plan)
}

// RunModules lists every registered module type, or describes the named
// ones in detail.
func (a *App) RunModules(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return render.ModuleTypes(a.outW, a.registry.Types())
	}
	for _, name := range names {
		mt, ok := a.registry.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown module type '%s'", name)
		}
		if err := render.ModuleType(a.outW, mt); err != nil {
			return err
		}
	}
	return nil
}

// RunWatch validates the document at path, then again after every change,
// until ctx is cancelled.
func (a *App) RunWatch(ctx context.Context, path string) error {
	ctx = a.withLogger(ctx)

	validate := func(ctx context.Context) {
		if _, err := a.report(a.Process(ctx, path)); err != nil {
			a.logger.Error("Failed to write result.", "error", err)
		}
	}
	validate(ctx)

	w := watch.New(path, 0, Extensions()...)
	return w.Run(ctx, func(ctx context.Context, changed []string) {
		a.logger.Info("Re-validating after change.", "path", path, "changed", changed)
		validate(ctx)
	})
}
