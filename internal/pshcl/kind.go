package pshcl

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/psetgo/internal/schema"
)

// KindFromExpr converts an HCL expression naming a parameter kind (e.g. the
// bare keyword `double`) into a schema.Kind.
func KindFromExpr(expr hcl.Expression) (schema.Kind, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	// We expect a simple identifier like `tag`, not a string or a complex
	// expression. AbsTraversalForExpr is the right tool to validate this.
	traversal, travDiags := hcl.AbsTraversalForExpr(expr)
	if travDiags.HasErrors() || len(traversal) != 1 {
		diags = append(diags, ErrorDiag(
			"Invalid type specification",
			"The 'type' attribute must be a bare kind keyword like 'double', 'tag' or 'vstring'.",
			expr.Range(),
		))
		return schema.KindInvalid, diags
	}

	keyword := traversal.RootName()
	kind, ok := schema.ParseKind(keyword)
	if !ok {
		diags = append(diags, ErrorDiag(
			"Unsupported type",
			fmt.Sprintf("The keyword '%s' is not a valid type. Supported types are: %s.", keyword, strings.Join(schema.KindKeywords(), ", ")),
			expr.Range(),
		))
		return schema.KindInvalid, diags
	}

	return kind, diags
}
