package plan

import (
	"context"
	"fmt"
	"regexp"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/psetgo/internal/config"
	"github.com/specialistvlad/psetgo/internal/ctxlog"
	"github.com/specialistvlad/psetgo/internal/registry"
)

var (
	labelPattern   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	processPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// declKind is the kind of block a label was declared by.
type declKind int

const (
	declModule declKind = iota
	declOutput
	declSequence
	declPath
	declEndPath
	declSource
)

func (k declKind) String() string {
	switch k {
	case declModule:
		return "module"
	case declOutput:
		return "output module"
	case declSequence:
		return "sequence"
	case declPath:
		return "path"
	case declEndPath:
		return "end path"
	default:
		return "source"
	}
}

type decl struct {
	kind   declKind
	module *config.Module
	seq    *config.Sequence
	rng    hcl.Range
}

// resolver holds the state of a single Resolve call.
type resolver struct {
	doc *config.Document
	reg *registry.Registry

	process string
	labels  map[string]*decl
	order   []string
	bound   map[string]*Module

	inputRanges map[*TagRef]hcl.Range

	plan     *Plan
	errs     Errors
	reported map[string]bool
}

// Resolve validates doc against reg and builds its plan. On failure the
// returned error is an Errors value holding every problem found.
func Resolve(ctx context.Context, doc *config.Document, reg *registry.Registry) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving document.", "files", doc.Files, "modules", len(doc.Modules), "paths", len(doc.Paths))

	r := &resolver{
		doc:         doc,
		reg:         reg,
		labels:      make(map[string]*decl),
		bound:       make(map[string]*Module),
		inputRanges: make(map[*TagRef]hcl.Range),
		plan:        &Plan{MaxEvents: -1},
		reported:    make(map[string]bool),
	}

	r.resolveProcess()
	r.declareLabels()
	r.resolveSource()
	r.bindModules()
	r.checkSequences()
	r.resolvePaths()
	r.checkInputs()
	r.checkUnused()

	if len(r.errs) > 0 {
		logger.Debug("Resolution failed.", "errors", len(r.errs))
		return nil, r.errs
	}

	r.plan.ID = digest(r.plan)
	logger.Debug("Resolution complete.", "process", r.plan.Process, "plan_id", r.plan.ID, "steps", r.plan.StepCount(), "warnings", len(r.plan.Warnings))
	return r.plan, nil
}

// fail records a failure. Identical failures are reported once, which
// matters for sequences expanded into several paths.
func (r *resolver) fail(code error, label, param string, rng hcl.Range, format string, args ...any) {
	e := &Error{Code: code, Label: label, Param: param, Detail: fmt.Sprintf(format, args...), Range: rng}
	key := e.Error()
	if r.reported[key] {
		return
	}
	r.reported[key] = true
	r.errs = append(r.errs, e)
}

func (r *resolver) warn(code WarningCode, label string, rng hcl.Range, format string, args ...any) {
	r.plan.Warnings = append(r.plan.Warnings, Warning{
		Code:    code,
		Label:   label,
		Message: fmt.Sprintf(format, args...),
		Range:   rng,
	})
}

func (r *resolver) resolveProcess() {
	proc := r.doc.Process()
	if proc == nil {
		r.warn(WarnNoProcess, "", hcl.Range{}, "No process block is declared; the process has no name.")
		return
	}
	for _, extra := range r.doc.Processes[1:] {
		r.fail(ErrDuplicateBlock, extra.Name, "", extra.Range,
			"a process block was already declared at %s; a document configures exactly one process", proc.Range)
	}

	if !processPattern.MatchString(proc.Name) {
		r.fail(ErrInvalidLabel, proc.Name, "", proc.Range,
			"process name '%s' must be non-empty and contain only letters and digits", proc.Name)
	}
	r.process = proc.Name
	r.plan.Process = proc.Name
	if proc.MaxEvents != nil {
		r.plan.MaxEvents = *proc.MaxEvents
	}
}

// declareLabels fills the shared label namespace.
func (r *resolver) declareLabels() {
	add := func(label string, d *decl) {
		if !labelPattern.MatchString(label) {
			r.fail(ErrInvalidLabel, label, "", d.rng,
				"%s label '%s' must start with a letter and contain only letters, digits and underscores", d.kind, label)
			return
		}
		if label == SourceLabel {
			r.fail(ErrInvalidLabel, label, "", d.rng,
				"%s label '%s' is reserved for the source", d.kind, label)
			return
		}
		if prev, ok := r.labels[label]; ok {
			r.fail(ErrDuplicateLabel, label, "", d.rng,
				"label '%s' is already used by the %s declared at %s", label, prev.kind, prev.rng)
			return
		}
		r.labels[label] = d
		r.order = append(r.order, label)
	}

	for _, m := range r.doc.Modules {
		add(m.Label, &decl{kind: declModule, module: m, rng: m.Range})
	}
	for _, m := range r.doc.Outputs {
		add(m.Label, &decl{kind: declOutput, module: m, rng: m.Range})
	}
	for _, s := range r.doc.Sequences {
		add(s.Label, &decl{kind: declSequence, seq: s, rng: s.Range})
	}
	for _, s := range r.doc.Paths {
		add(s.Label, &decl{kind: declPath, seq: s, rng: s.Range})
	}
	for _, s := range r.doc.EndPaths {
		add(s.Label, &decl{kind: declEndPath, seq: s, rng: s.Range})
	}
}

func (r *resolver) resolveSource() {
	src := r.doc.Source()
	if src == nil {
		r.warn(WarnNoSource, "", hcl.Range{}, "No source is declared; the process has no input events.")
		return
	}
	for _, extra := range r.doc.Sources[1:] {
		r.fail(ErrDuplicateBlock, SourceLabel, "", extra.Range,
			"a source was already declared at %s; a process reads from exactly one source", src.Range)
	}
	r.plan.Source = r.bind(src, SourceLabel, declSource)
}

func (r *resolver) bindModules() {
	for _, label := range r.order {
		d := r.labels[label]
		if d.kind != declModule && d.kind != declOutput {
			continue
		}
		if m := r.bind(d.module, label, d.kind); m != nil {
			r.bound[label] = m
			r.plan.Modules = append(r.plan.Modules, m)
		}
	}
}

// labelsOf returns the declared labels of the given kinds, in declaration
// order.
func (r *resolver) labelsOf(kinds ...declKind) []string {
	var out []string
	for _, label := range r.order {
		for _, k := range kinds {
			if r.labels[label].kind == k {
				out = append(out, label)
				break
			}
		}
	}
	return out
}
