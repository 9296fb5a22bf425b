package plan

import (
	"errors"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Sentinel codes carried by Error. Use errors.Is to test for them.
var (
	ErrUnknownModuleType   = errors.New("unknown module type")
	ErrDuplicateLabel      = errors.New("duplicate label")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrUnknownParameter    = errors.New("unknown parameter")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrMissingParameter    = errors.New("missing required parameter")
	ErrInvalidLabel        = errors.New("invalid label")
	ErrCategoryMismatch    = errors.New("category mismatch")
	ErrOutputOnPath        = errors.New("output module on a path")
	ErrSequenceCycle       = errors.New("sequence cycle")
	ErrPathReference       = errors.New("path reference")
	ErrUnknownSchedule     = errors.New("unknown path in schedule")
	ErrDuplicateBlock      = errors.New("duplicate block")
)

// Error is a single validation failure.
type Error struct {
	Code error

	// Label is the offending label: the module, path or sequence being
	// checked, or the unresolved name.
	Label string

	// Param is set for parameter-level failures.
	Param string

	Detail string
	Range  hcl.Range
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Range.Filename != "" {
		b.WriteString(e.Range.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Code.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Code
}

// Errors is the collected list of failures of one resolution.
type Errors []*Error

func (errs Errors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return "validation failed:\n- " + strings.Join(msgs, "\n- ")
}

func (errs Errors) Unwrap() []error {
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}

// Diagnostics converts the failures to HCL diagnostics so they can be
// printed with source snippets.
func (errs Errors) Diagnostics() hcl.Diagnostics {
	diags := make(hcl.Diagnostics, 0, len(errs))
	for _, e := range errs {
		d := &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  summaryOf(e.Code),
			Detail:   e.Detail,
		}
		if e.Range.Filename != "" {
			d.Subject = e.Range.Ptr()
		}
		diags = append(diags, d)
	}
	return diags
}

func summaryOf(code error) string {
	s := code.Error()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
