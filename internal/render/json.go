package render

import (
	"encoding/json"
	"io"

	"github.com/specialistvlad/psetgo/internal/plan"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

type jsonPlan struct {
	Process   string        `json:"process"`
	ID        string        `json:"id"`
	MaxEvents int64         `json:"max_events"`
	Source    *jsonModule   `json:"source,omitempty"`
	Modules   []jsonModule  `json:"modules"`
	Paths     []jsonPath    `json:"paths"`
	EndPaths  []jsonPath    `json:"end_paths"`
	Warnings  []jsonWarning `json:"warnings,omitempty"`
}

type jsonModule struct {
	Label    string      `json:"label"`
	Type     string      `json:"type"`
	Category string      `json:"category"`
	Params   []jsonParam `json:"params"`
	Inputs   []jsonInput `json:"inputs,omitempty"`
}

type jsonParam struct {
	Name      string                  `json:"name"`
	Kind      string                  `json:"kind"`
	Value     ctyjson.SimpleJSONValue `json:"value"`
	Defaulted bool                    `json:"defaulted,omitempty"`
	Untracked bool                    `json:"untracked,omitempty"`
}

type jsonInput struct {
	Param string `json:"param"`
	Tag   string `json:"tag"`
	Local bool   `json:"local"`
}

type jsonPath struct {
	Name  string     `json:"name"`
	Steps []jsonStep `json:"steps"`
}

type jsonStep struct {
	Position int    `json:"position"`
	Label    string `json:"label"`
	Type     string `json:"type"`
	Via      string `json:"via,omitempty"`
}

type jsonWarning struct {
	Code    string `json:"code"`
	Label   string `json:"label,omitempty"`
	Message string `json:"message"`
	Range   string `json:"range,omitempty"`
}

// JSON writes p as an indented JSON document.
func JSON(w io.Writer, p *plan.Plan) error {
	out := jsonPlan{
		Process:   p.Process,
		ID:        p.ID,
		MaxEvents: p.MaxEvents,
		Modules:   make([]jsonModule, 0, len(p.Modules)),
		Paths:     toJSONPaths(p.Paths),
		EndPaths:  toJSONPaths(p.EndPaths),
	}
	if p.Source != nil {
		src := toJSONModule(p.Source)
		out.Source = &src
	}
	for _, m := range p.Modules {
		out.Modules = append(out.Modules, toJSONModule(m))
	}
	for _, warning := range p.Warnings {
		jw := jsonWarning{Code: string(warning.Code), Label: warning.Label, Message: warning.Message}
		if warning.Range.Filename != "" {
			jw.Range = warning.Range.String()
		}
		out.Warnings = append(out.Warnings, jw)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toJSONModule(m *plan.Module) jsonModule {
	jm := jsonModule{
		Label:    m.Label,
		Type:     m.Type,
		Category: string(m.Category),
		Params:   make([]jsonParam, 0, len(m.Params)),
	}
	for _, p := range m.Params {
		jm.Params = append(jm.Params, jsonParam{
			Name:      p.Name,
			Kind:      p.Kind.String(),
			Value:     ctyjson.SimpleJSONValue{Value: p.Value},
			Defaulted: p.Defaulted,
			Untracked: p.Untracked,
		})
	}
	for _, in := range m.Inputs {
		jm.Inputs = append(jm.Inputs, jsonInput{Param: in.Param, Tag: in.Tag.String(), Local: in.Local})
	}
	return jm
}

func toJSONPaths(paths []*plan.Path) []jsonPath {
	out := make([]jsonPath, 0, len(paths))
	for _, p := range paths {
		jp := jsonPath{Name: p.Name, Steps: make([]jsonStep, 0, len(p.Steps))}
		for _, s := range p.Steps {
			jp.Steps = append(jp.Steps, jsonStep{Position: s.Position, Label: s.Label, Type: s.Type, Via: s.Via})
		}
		out = append(out, jp)
	}
	return out
}
