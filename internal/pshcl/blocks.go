// Package pshcl holds small HCL helpers shared by the document loader and
// the module-type manifest parser.
package pshcl

import (
	"github.com/hashicorp/hcl/v2"
)

// ErrorDiag builds a single error diagnostic pointing at rng.
func ErrorDiag(summary, detail string, rng hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  rng.Ptr(),
	}
}
