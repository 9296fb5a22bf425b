package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/psetgo/internal/plan"
)

// Failure writes a load or validation failure for the document called
// name. Diagnostics are printed with source snippets when files holds the
// parsed sources.
func Failure(w io.Writer, name string, err error, files map[string]*hcl.File) error {
	st := newStyles(w)
	if _, werr := fmt.Fprintf(w, "%s %s\n", st.fail.Render("failed"), name); werr != nil {
		return werr
	}

	diags, ok := diagnosticsOf(err)
	if !ok {
		_, werr := fmt.Fprintf(w, "  %s\n", err)
		return werr
	}
	return hcl.NewDiagnosticTextWriter(w, files, 0, false).WriteDiagnostics(diags)
}

func diagnosticsOf(err error) (hcl.Diagnostics, bool) {
	var planErrs plan.Errors
	if errors.As(err, &planErrs) {
		return planErrs.Diagnostics(), true
	}
	var diags hcl.Diagnostics
	if errors.As(err, &diags) {
		return diags, true
	}
	return nil, false
}
