package render

import (
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/psetgo/internal/plan"
	"github.com/specialistvlad/psetgo/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// Dump renders p back into the HCL document format. Every parameter is
// written out, defaults included, sequences are inlined into the paths
// that use them and the schedule is made explicit. Loading the result
// yields a plan with the same ID.
func Dump(p *plan.Plan) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	if p.Process != "" {
		proc := body.AppendNewBlock("process", []string{p.Process}).Body()
		if p.MaxEvents >= 0 {
			proc.SetAttributeValue("max_events", cty.NumberIntVal(p.MaxEvents))
		}
		proc.SetAttributeRaw("schedule", labelTuple(pathLabels(p.AllPaths())))
		body.AppendNewline()
	}

	if p.Source != nil {
		writeParams(body.AppendNewBlock("source", []string{p.Source.Type}).Body(), p.Source)
		body.AppendNewline()
	}

	for _, m := range p.Modules {
		blockType := "module"
		if m.Category == schema.CategoryOutput {
			blockType = "output"
		}
		writeParams(body.AppendNewBlock(blockType, []string{m.Type, m.Label}).Body(), m)
		body.AppendNewline()
	}

	for _, path := range p.AllPaths() {
		blockType := "path"
		if path.End {
			blockType = "end_path"
		}
		labels := make([]string, len(path.Steps))
		for i, s := range path.Steps {
			labels[i] = s.Label
		}
		body.AppendNewBlock(blockType, []string{path.Name}).Body().SetAttributeRaw("modules", labelTuple(labels))
		body.AppendNewline()
	}

	return hclwrite.Format(f.Bytes())
}

// WriteDump writes the output of Dump to w.
func WriteDump(w io.Writer, p *plan.Plan) error {
	_, err := w.Write(Dump(p))
	return err
}

func writeParams(body *hclwrite.Body, m *plan.Module) {
	for _, p := range m.Params {
		body.SetAttributeValue(p.Name, p.Value)
	}
}

func pathLabels(paths []*plan.Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.Name
	}
	return out
}

// labelTuple builds a tuple of bare identifiers, e.g. [calo, out].
func labelTuple(labels []string) hclwrite.Tokens {
	elems := make([]hclwrite.Tokens, len(labels))
	for i, l := range labels {
		elems[i] = hclwrite.TokensForIdentifier(l)
	}
	return hclwrite.TokensForTuple(elems)
}
