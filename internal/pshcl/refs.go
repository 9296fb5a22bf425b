package pshcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// LabelRef is a label referenced from a list expression.
type LabelRef struct {
	Name  string
	Range hcl.Range
}

// LabelList decodes a list of label references. Each element is either a bare
// identifier (`[producer, filter]`) or a string literal (`["producer"]`).
func LabelList(expr hcl.Expression) ([]LabelRef, hcl.Diagnostics) {
	exprs, diags := hcl.ExprList(expr)
	if diags.HasErrors() {
		return nil, diags
	}

	refs := make([]LabelRef, 0, len(exprs))
	for _, e := range exprs {
		traversal, travDiags := hcl.AbsTraversalForExpr(e)
		if !travDiags.HasErrors() {
			if len(traversal) != 1 {
				diags = append(diags, ErrorDiag(
					"Invalid label reference",
					"A label reference must be a bare name, not an attribute or index access.",
					e.Range(),
				))
				continue
			}
			refs = append(refs, LabelRef{Name: traversal.RootName(), Range: e.Range()})
			continue
		}

		// Strings are taken as-is; numbers are not silently converted.
		val, valDiags := e.Value(nil)
		if valDiags.HasErrors() || val.IsNull() || !val.IsKnown() || !val.Type().Equals(cty.String) {
			diags = append(diags, ErrorDiag(
				"Invalid label reference",
				"A label reference must be a bare name or a string.",
				e.Range(),
			))
			continue
		}
		refs = append(refs, LabelRef{Name: val.AsString(), Range: e.Range()})
	}

	return refs, diags
}
