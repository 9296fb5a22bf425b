package yaml

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/psetgo/internal/config"
	"github.com/specialistvlad/psetgo/internal/pshcl"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// translator converts decoded YAML nodes of one file into the agnostic model.
type translator struct {
	filename string
	diags    hcl.Diagnostics
}

func (t *translator) rangeOf(n *yaml.Node) hcl.Range {
	start := hcl.Pos{Line: n.Line, Column: n.Column}
	end := start
	if n.Kind == yaml.ScalarNode {
		end.Column += len(n.Value)
	}
	return hcl.Range{Filename: t.filename, Start: start, End: end}
}

func (t *translator) errorf(n *yaml.Node, summary, format string, args ...any) {
	t.diags = append(t.diags, pshcl.ErrorDiag(summary, fmt.Sprintf(format, args...), t.rangeOf(n)))
}

// present reports whether a node field was set in the source.
func present(n *yaml.Node) bool {
	return n != nil && n.Kind != 0
}

// scalarString returns the string value of a scalar node or records an error.
func (t *translator) scalarString(n *yaml.Node, field string) (string, bool) {
	if !present(n) {
		return "", false
	}
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
		t.errorf(n, "Invalid value", "The %q field must be a string.", field)
		return "", false
	}
	return n.Value, true
}

func (t *translator) document(root *yamlDocument) *config.Document {
	doc := config.NewDocument()
	doc.Files = []string{t.filename}

	if present(&root.Process) || present(&root.MaxEvents) || root.Schedule != nil {
		doc.Processes = append(doc.Processes, t.process(root))
	}
	if root.Source != nil {
		if m := t.module(root.Source, false); m != nil {
			doc.Sources = append(doc.Sources, m)
		}
	}
	for i := range root.Modules {
		if m := t.module(&root.Modules[i], true); m != nil {
			doc.Modules = append(doc.Modules, m)
		}
	}
	for i := range root.Outputs {
		if m := t.module(&root.Outputs[i], true); m != nil {
			doc.Outputs = append(doc.Outputs, m)
		}
	}
	for i := range root.Sequences {
		if s := t.sequence(&root.Sequences[i]); s != nil {
			doc.Sequences = append(doc.Sequences, s)
		}
	}
	for i := range root.Paths {
		if s := t.sequence(&root.Paths[i]); s != nil {
			doc.Paths = append(doc.Paths, s)
		}
	}
	for i := range root.EndPaths {
		if s := t.sequence(&root.EndPaths[i]); s != nil {
			doc.EndPaths = append(doc.EndPaths, s)
		}
	}
	return doc
}

func (t *translator) process(root *yamlDocument) *config.ProcessBlock {
	p := &config.ProcessBlock{Range: hcl.Range{Filename: t.filename, Start: hcl.InitialPos, End: hcl.InitialPos}}

	if name, ok := t.scalarString(&root.Process, "process"); ok {
		p.Name = name
		p.Range = t.rangeOf(&root.Process)
	}

	if present(&root.MaxEvents) {
		var n int64
		if root.MaxEvents.ShortTag() != "!!int" || root.MaxEvents.Decode(&n) != nil {
			t.errorf(&root.MaxEvents, "Invalid value", "The \"max_events\" field must be a whole number.")
		} else {
			p.MaxEvents = &n
		}
	}

	if root.Schedule != nil {
		p.Schedule = t.refs(root.Schedule)
		if p.Schedule == nil {
			p.Schedule = []config.Ref{}
		}
	}
	return p
}

func (t *translator) module(ym *yamlModule, labeled bool) *config.Module {
	m := &config.Module{Params: map[string]config.Param{}}

	typeName, ok := t.scalarString(&ym.Type, "type")
	if !ok {
		if !present(&ym.Type) {
			t.errorf(&ym.Label, "Missing module type", "Every module needs a \"type\" field.")
		}
		return nil
	}
	m.Type = typeName
	m.TypeRange = t.rangeOf(&ym.Type)
	m.Range = m.TypeRange

	if labeled {
		label, ok := t.scalarString(&ym.Label, "label")
		if !ok {
			if !present(&ym.Label) {
				t.errorf(&ym.Type, "Missing module label", "Module of type %q needs a \"label\" field.", typeName)
			}
			return nil
		}
		m.Label = label
		m.Range = t.rangeOf(&ym.Label)
	}

	if !present(&ym.Params) {
		return m
	}
	if ym.Params.Kind != yaml.MappingNode {
		t.errorf(&ym.Params, "Invalid params", "The \"params\" field must be a mapping of parameter names to values.")
		return nil
	}
	for i := 0; i+1 < len(ym.Params.Content); i += 2 {
		key, valNode := ym.Params.Content[i], ym.Params.Content[i+1]
		if _, dup := m.Params[key.Value]; dup {
			t.errorf(key, "Duplicate parameter", "The parameter %q was already set for this module.", key.Value)
			continue
		}
		val, ok := t.value(valNode)
		if !ok {
			continue
		}
		m.Params[key.Value] = config.Param{Name: key.Value, Value: val, Range: t.rangeOf(key)}
	}
	return m
}

func (t *translator) sequence(ys *yamlSequence) *config.Sequence {
	label, ok := t.scalarString(&ys.Label, "label")
	if !ok {
		if !present(&ys.Label) {
			t.diags = append(t.diags, pshcl.ErrorDiag("Missing label", "Every path and sequence needs a \"label\" field.", hcl.Range{Filename: t.filename}))
		}
		return nil
	}
	return &config.Sequence{
		Label: label,
		Refs:  t.refs(ys.Modules),
		Range: t.rangeOf(&ys.Label),
	}
}

func (t *translator) refs(nodes []yaml.Node) []config.Ref {
	var refs []config.Ref
	for i := range nodes {
		name, ok := t.scalarString(&nodes[i], "modules")
		if !ok {
			continue
		}
		refs = append(refs, config.Ref{Name: name, Range: t.rangeOf(&nodes[i])})
	}
	return refs
}

// value converts a YAML value node into a cty value.
func (t *translator) value(n *yaml.Node) (cty.Value, bool) {
	switch n.Kind {
	case yaml.AliasNode:
		return t.value(n.Alias)
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!str":
			return cty.StringVal(n.Value), true
		case "!!int", "!!float":
			v, err := cty.ParseNumberVal(n.Value)
			if err != nil {
				t.errorf(n, "Invalid number", "The value %q is not a decimal number: %s.", n.Value, err)
				return cty.NilVal, false
			}
			return v, true
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				t.errorf(n, "Invalid boolean", "The value %q is not a boolean.", n.Value)
				return cty.NilVal, false
			}
			return cty.BoolVal(b), true
		case "!!null":
			return cty.NullVal(cty.DynamicPseudoType), true
		}
		t.errorf(n, "Unsupported value", "Values tagged %s are not supported.", n.ShortTag())
		return cty.NilVal, false
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			return cty.EmptyTupleVal, true
		}
		elems := make([]cty.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, ok := t.value(c)
			if !ok {
				return cty.NilVal, false
			}
			elems = append(elems, v)
		}
		return cty.TupleVal(elems), true
	}
	t.errorf(n, "Unsupported value", "Parameter values must be scalars or lists, not mappings.")
	return cty.NilVal, false
}
