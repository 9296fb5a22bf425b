package plan

import (
	"sort"

	"github.com/specialistvlad/psetgo/internal/config"
	"github.com/specialistvlad/psetgo/internal/inputtag"
	"github.com/specialistvlad/psetgo/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// blockName is the document block a declaration kind is written as.
func blockName(k declKind) string {
	switch k {
	case declOutput:
		return "output"
	case declSource:
		return "source"
	default:
		return "module"
	}
}

func categoryFits(k declKind, c schema.Category) bool {
	switch k {
	case declOutput:
		return c == schema.CategoryOutput
	case declSource:
		return c == schema.CategorySource
	default:
		return c.IsWorker()
	}
}

// bind resolves the type of a configured module and checks its parameters
// against the type schema. It returns nil when the type cannot be used.
func (r *resolver) bind(cm *config.Module, label string, kind declKind) *Module {
	mt, ok := r.reg.Lookup(cm.Type)
	if !ok {
		r.fail(ErrUnknownModuleType, label, "", cm.TypeRange,
			"%s '%s' uses type '%s', which is not registered.%s", kind, label, cm.Type, didYouMean(cm.Type, r.reg.Names()))
		return nil
	}
	if !categoryFits(kind, mt.Category) {
		r.fail(ErrCategoryMismatch, label, "", cm.TypeRange,
			"type '%s' has category '%s' and cannot be declared in a %s block", mt.Name, mt.Category, blockName(kind))
		return nil
	}

	m := &Module{Label: label, Type: mt.Name, Category: mt.Category}

	bound := make([]string, 0, len(cm.Params))
	for name := range cm.Params {
		bound = append(bound, name)
	}
	sort.Strings(bound)
	for _, name := range bound {
		if _, ok := mt.Param(name); !ok {
			r.fail(ErrUnknownParameter, label, name, cm.Params[name].Range,
				"type '%s' of %s '%s' has no parameter '%s'.%s", mt.Name, kind, label, name, didYouMean(name, mt.ParamNames()))
		}
	}

	for _, name := range mt.ParamNames() {
		spec := mt.Params[name]
		p, isBound := cm.Params[name]
		switch {
		case isBound:
			v, err := schema.Conform(spec.Kind, p.Value)
			if err != nil {
				r.fail(ErrTypeMismatch, label, name, p.Range,
					"parameter '%s' of %s '%s': %s", name, kind, label, err)
				continue
			}
			m.Params = append(m.Params, &Param{Name: name, Kind: spec.Kind, Value: v, Untracked: spec.Untracked})
			r.collectInputs(m, spec, v, p)
		case !spec.Required():
			m.Params = append(m.Params, &Param{Name: name, Kind: spec.Kind, Value: *spec.Default, Defaulted: true, Untracked: spec.Untracked})
			r.collectInputs(m, spec, *spec.Default, config.Param{Range: cm.Range})
		default:
			r.fail(ErrMissingParameter, label, name, cm.Range,
				"%s '%s' of type '%s' must set parameter '%s' (%s)", kind, label, mt.Name, name, spec.Kind)
		}
	}

	return m
}

// collectInputs records the input tags held by a tag or vtag parameter.
func (r *resolver) collectInputs(m *Module, spec *schema.ParamSpec, v cty.Value, src config.Param) {
	var raws []string
	switch spec.Kind {
	case schema.KindTag:
		raws = []string{v.AsString()}
	case schema.KindVTag:
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			raws = append(raws, ev.AsString())
		}
	default:
		return
	}

	for _, raw := range raws {
		// Values were canonicalised by schema.Conform, so parsing cannot fail.
		tag, err := inputtag.Parse(raw)
		if err != nil {
			continue
		}
		ref := &TagRef{Param: spec.Name, Tag: tag}
		m.Inputs = append(m.Inputs, ref)
		r.inputRanges[ref] = src.Range
	}
}
