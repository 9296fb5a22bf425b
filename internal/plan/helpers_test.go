package plan

import (
	"errors"
	"testing"

	"github.com/specialistvlad/psetgo/internal/config"
	hclload "github.com/specialistvlad/psetgo/internal/hcl"
	"github.com/specialistvlad/psetgo/internal/registry"
	"github.com/specialistvlad/psetgo/internal/schema"
	"github.com/specialistvlad/psetgo/internal/testutil"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// testRegistry returns the built-in types plus a filter and an analyzer
// that read input tags.
func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	ctx, _ := testutil.Context(t)

	reg, err := registry.Builtins(ctx)
	require.NoError(t, err)

	one := cty.NumberIntVal(1)
	require.NoError(t, reg.Register(&schema.ModuleType{
		Name:     "JetFilter",
		Category: schema.CategoryFilter,
		Params: map[string]*schema.ParamSpec{
			"src":      {Name: "src", Kind: schema.KindTag},
			"minCount": {Name: "minCount", Kind: schema.KindInt32, Default: &one},
		},
	}))
	require.NoError(t, reg.Register(&schema.ModuleType{
		Name:     "JetCounter",
		Category: schema.CategoryAnalyzer,
		Params: map[string]*schema.ParamSpec{
			"jets":    {Name: "jets", Kind: schema.KindVTag},
			"verbose": {Name: "verbose", Kind: schema.KindBool, Default: ptr(cty.False), Untracked: true},
		},
	}))
	return reg
}

func ptr(v cty.Value) *cty.Value {
	return &v
}

func loadDoc(t *testing.T, src string) *config.Document {
	t.Helper()
	ctx, _ := testutil.Context(t)
	doc, err := hclload.NewLoader().LoadBytes(ctx, "test.hcl", []byte(src))
	require.NoError(t, err)
	return doc
}

func resolveSrc(t *testing.T, src string) (*Plan, error) {
	t.Helper()
	ctx, _ := testutil.Context(t)
	return Resolve(ctx, loadDoc(t, src), testRegistry(t))
}

func mustResolve(t *testing.T, src string) *Plan {
	t.Helper()
	p, err := resolveSrc(t, src)
	require.NoError(t, err)
	return p
}

// resolveErrors resolves src and returns the collected errors.
func resolveErrors(t *testing.T, src string) Errors {
	t.Helper()
	p, err := resolveSrc(t, src)
	require.Error(t, err)
	require.Nil(t, p)

	var errs Errors
	require.True(t, errors.As(err, &errs), "expected plan.Errors, got %T", err)
	return errs
}

func warningCodes(p *Plan) []WarningCode {
	codes := make([]WarningCode, len(p.Warnings))
	for i, w := range p.Warnings {
		codes[i] = w.Code
	}
	return codes
}

func stepLabels(p *Path) []string {
	out := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		out[i] = s.Label
	}
	return out
}

func pathNames(paths []*Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.Name
	}
	return out
}
