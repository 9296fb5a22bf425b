package hcl

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/psetgo/internal/inputtag"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

var tagParts = [...]string{"label", "instance", "process"}

// TagFunc builds a canonical input tag string from its parts, e.g.
// tag("hltEgammaGsfTrackVars", "Deta") yields "hltEgammaGsfTrackVars:Deta".
var TagFunc = function.New(&function.Spec{
	Description: "Builds an input tag from a producer label and optional instance and process names.",
	Params: []function.Parameter{
		{Name: "label", Type: cty.String},
	},
	VarParam: &function.Parameter{Name: "parts", Type: cty.String},
	Type:     function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		if len(args) > 3 {
			return cty.NilVal, fmt.Errorf("tag accepts at most 3 arguments, got %d", len(args))
		}
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = arg.AsString()
			// Each argument is exactly one part of the tag.
			if strings.Contains(parts[i], ":") {
				return cty.NilVal, function.NewArgErrorf(i, "tag %s %q must not contain ':'", tagParts[i], parts[i])
			}
		}
		tag, err := inputtag.Parse(strings.Join(parts, ":"))
		if err != nil {
			return cty.NilVal, err
		}
		return cty.StringVal(tag.String()), nil
	},
})

// evalContext returns the evaluation context used for parameter values.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"tag": TagFunc,
		},
	}
}
