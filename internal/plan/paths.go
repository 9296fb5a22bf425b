package plan

import (
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/psetgo/internal/config"
)

// visitFunc receives every module reached while expanding a reference list.
type visitFunc func(label string, d *decl, via string, rng hcl.Range)

// checkSequences reports cycles between sequences, then expands every
// sequence on its own so that broken references are reported even for
// sequences no path uses.
func (r *resolver) checkSequences() {
	const (
		white = iota
		grey
		black
	)
	color := make(map[string]int)

	var visit func(label string, stack []string)
	visit = func(label string, stack []string) {
		color[label] = grey
		stack = append(stack, label)
		for _, ref := range r.labels[label].seq.Refs {
			d, ok := r.labels[ref.Name]
			if !ok || d.kind != declSequence {
				continue
			}
			switch color[ref.Name] {
			case grey:
				start := slices.Index(stack, ref.Name)
				cycle := append(slices.Clone(stack[start:]), ref.Name)
				r.fail(ErrSequenceCycle, ref.Name, "", ref.Range,
					"sequence '%s' includes itself: %s", ref.Name, strings.Join(cycle, " -> "))
			case white:
				visit(ref.Name, stack)
			}
		}
		color[label] = black
	}

	seqs := r.labelsOf(declSequence)
	for _, label := range seqs {
		if color[label] == white {
			visit(label, nil)
		}
	}
	for _, label := range seqs {
		r.expand(declSequence, label, r.labels[label].seq.Refs, label, []string{label}, func(string, *decl, string, hcl.Range) {})
	}
}

// expand walks refs depth-first, inlining sequences. ownerKind and owner
// name the block that holds refs. Cycles were reported by checkSequences
// and are skipped here.
func (r *resolver) expand(ownerKind declKind, owner string, refs []config.Ref, via string, stack []string, fn visitFunc) {
	for _, ref := range refs {
		d, ok := r.labels[ref.Name]
		if !ok {
			r.fail(ErrUnresolvedReference, ref.Name, "", ref.Range,
				"%s '%s' refers to '%s', which is not declared.%s", ownerKind, owner, ref.Name, didYouMean(ref.Name, r.order))
			continue
		}
		switch d.kind {
		case declModule, declOutput:
			fn(ref.Name, d, via, ref.Range)
		case declSequence:
			if slices.Contains(stack, ref.Name) {
				continue
			}
			r.expand(declSequence, ref.Name, d.seq.Refs, ref.Name, append(slices.Clone(stack), ref.Name), fn)
		case declPath, declEndPath:
			r.fail(ErrPathReference, ref.Name, "", ref.Range,
				"%s '%s' refers to %s '%s'; paths cannot contain other paths, use a sequence instead", ownerKind, owner, d.kind, ref.Name)
		}
	}
}

// buildPath expands one path or end-path declaration into steps.
func (r *resolver) buildPath(label string) *Path {
	d := r.labels[label]
	p := &Path{Name: label, End: d.kind == declEndPath}
	seen := make(map[string]bool)

	r.expand(d.kind, label, d.seq.Refs, "", nil, func(step string, sd *decl, via string, rng hcl.Range) {
		if sd.kind == declOutput && !p.End {
			r.fail(ErrOutputOnPath, step, "", rng,
				"output module '%s' is on path '%s'; output modules belong on end paths", step, label)
			return
		}
		if seen[step] {
			r.warn(WarnRepeatedOnPath, step, rng,
				"Module '%s' appears more than once on %s '%s'; only the first occurrence runs.", step, d.kind, label)
			return
		}
		seen[step] = true

		typeName := sd.module.Type
		if m, ok := r.bound[step]; ok {
			typeName = m.Type
		}
		p.Steps = append(p.Steps, Step{Position: len(p.Steps), Label: step, Type: typeName, Via: via})
	})
	return p
}

// resolvePaths builds every path and orders them by the schedule.
func (r *resolver) resolvePaths() {
	built := make(map[string]*Path)
	for _, label := range r.labelsOf(declPath, declEndPath) {
		built[label] = r.buildPath(label)
	}

	proc := r.doc.Process()
	if proc == nil || proc.Schedule == nil {
		for _, label := range r.labelsOf(declPath) {
			r.plan.Paths = append(r.plan.Paths, built[label])
		}
		for _, label := range r.labelsOf(declEndPath) {
			r.plan.EndPaths = append(r.plan.EndPaths, built[label])
		}
		return
	}

	declared := r.labelsOf(declPath, declEndPath)
	scheduled := make(map[string]bool)
	for _, ref := range proc.Schedule {
		p, ok := built[ref.Name]
		if !ok {
			r.fail(ErrUnknownSchedule, ref.Name, "", ref.Range,
				"the schedule names '%s', which is not a path or end path.%s", ref.Name, didYouMean(ref.Name, declared))
			continue
		}
		if scheduled[ref.Name] {
			r.warn(WarnRepeatedInSched, ref.Name, ref.Range,
				"Path '%s' is listed more than once in the schedule.", ref.Name)
			continue
		}
		scheduled[ref.Name] = true
		if p.End {
			r.plan.EndPaths = append(r.plan.EndPaths, p)
		} else {
			r.plan.Paths = append(r.plan.Paths, p)
		}
	}

	for _, label := range declared {
		if !scheduled[label] {
			r.warn(WarnNotScheduled, label, r.labels[label].rng,
				"%s '%s' is not in the schedule and will not run.", capitalize(r.labels[label].kind.String()), label)
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
