package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/psetgo/internal/config"
	"github.com/specialistvlad/psetgo/internal/pshcl"
)

// documentSchema defines the top-level blocks of a process document file.
var documentSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "process", LabelNames: []string{"name"}},
		{Type: "source", LabelNames: []string{"type"}},
		{Type: "module", LabelNames: []string{"type", "label"}},
		{Type: "output", LabelNames: []string{"type", "label"}},
		{Type: "sequence", LabelNames: []string{"label"}},
		{Type: "path", LabelNames: []string{"label"}},
		{Type: "end_path", LabelNames: []string{"label"}},
	},
}

var processBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "max_events"},
		{Name: "schedule"},
	},
}

var sequenceBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "modules", Required: true},
	},
}

// decodeBody translates the blocks of one file body into a document.
func decodeBody(body hcl.Body, filename string) (*config.Document, hcl.Diagnostics) {
	doc := config.NewDocument()
	doc.Files = []string{filename}

	content, diags := body.Content(documentSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	for _, block := range content.Blocks {
		switch block.Type {
		case "process":
			p, pDiags := decodeProcess(block)
			diags = append(diags, pDiags...)
			if p != nil {
				doc.Processes = append(doc.Processes, p)
			}
		case "source":
			m, mDiags := decodeModule(block, block.Labels[0], "", block.LabelRanges[0])
			diags = append(diags, mDiags...)
			if m != nil {
				doc.Sources = append(doc.Sources, m)
			}
		case "module", "output":
			m, mDiags := decodeModule(block, block.Labels[0], block.Labels[1], block.LabelRanges[0])
			diags = append(diags, mDiags...)
			if m == nil {
				continue
			}
			if block.Type == "module" {
				doc.Modules = append(doc.Modules, m)
			} else {
				doc.Outputs = append(doc.Outputs, m)
			}
		case "sequence", "path", "end_path":
			s, sDiags := decodeSequence(block)
			diags = append(diags, sDiags...)
			if s == nil {
				continue
			}
			switch block.Type {
			case "sequence":
				doc.Sequences = append(doc.Sequences, s)
			case "path":
				doc.Paths = append(doc.Paths, s)
			default:
				doc.EndPaths = append(doc.EndPaths, s)
			}
		}
	}

	return doc, diags
}

func decodeProcess(block *hcl.Block) (*config.ProcessBlock, hcl.Diagnostics) {
	content, diags := block.Body.Content(processBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	p := &config.ProcessBlock{
		Name:  block.Labels[0],
		Range: block.DefRange,
	}

	if attr, ok := content.Attributes["max_events"]; ok {
		var n int64
		decodeDiags := gohcl.DecodeExpression(attr.Expr, nil, &n)
		diags = append(diags, decodeDiags...)
		if !decodeDiags.HasErrors() {
			p.MaxEvents = &n
		}
	}

	if attr, ok := content.Attributes["schedule"]; ok {
		refs, refDiags := pshcl.LabelList(attr.Expr)
		diags = append(diags, refDiags...)
		p.Schedule = toRefs(refs)
		if p.Schedule == nil {
			p.Schedule = []config.Ref{}
		}
	}

	return p, diags
}

func decodeModule(block *hcl.Block, typeName, label string, typeRange hcl.Range) (*config.Module, hcl.Diagnostics) {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	m := &config.Module{
		Label:     label,
		Type:      typeName,
		Params:    make(map[string]config.Param, len(attrs)),
		Range:     block.DefRange,
		TypeRange: typeRange,
	}

	evalCtx := evalContext()
	for name, attr := range attrs {
		val, valDiags := attr.Expr.Value(evalCtx)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		if !val.IsWhollyKnown() {
			diags = append(diags, pshcl.ErrorDiag(
				"Invalid parameter value",
				fmt.Sprintf("The value of '%s' must be known when the configuration is loaded.", name),
				attr.Expr.Range(),
			))
			continue
		}
		m.Params[name] = config.Param{Name: name, Value: val, Range: attr.Range}
	}

	return m, diags
}

func decodeSequence(block *hcl.Block) (*config.Sequence, hcl.Diagnostics) {
	content, diags := block.Body.Content(sequenceBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	refs, refDiags := pshcl.LabelList(content.Attributes["modules"].Expr)
	diags = append(diags, refDiags...)

	return &config.Sequence{
		Label: block.Labels[0],
		Refs:  toRefs(refs),
		Range: block.DefRange,
	}, diags
}

func toRefs(refs []pshcl.LabelRef) []config.Ref {
	if len(refs) == 0 {
		return nil
	}
	out := make([]config.Ref, len(refs))
	for i, r := range refs {
		out[i] = config.Ref{Name: r.Name, Range: r.Range}
	}
	return out
}
