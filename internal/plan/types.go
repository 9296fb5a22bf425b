package plan

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/psetgo/internal/inputtag"
	"github.com/specialistvlad/psetgo/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// SourceLabel is the label under which the source appears in a plan.
const SourceLabel = "source"

// Plan is the resolved form of a process configuration.
type Plan struct {
	Process string

	// ID is a hex SHA-256 digest of everything that affects the physics
	// output of the process. Untracked parameters are not part of it.
	ID string

	// MaxEvents is -1 when all events are to be processed.
	MaxEvents int64

	Source   *Module
	Modules  []*Module
	Paths    []*Path
	EndPaths []*Path
	Warnings []Warning
}

// Module is a module instance bound to its type.
type Module struct {
	Label    string
	Type     string
	Category schema.Category

	// Params holds every parameter of the type, sorted by name.
	Params []*Param

	// Inputs lists the input tags found in tag and vtag parameters.
	Inputs []*TagRef
}

// Param is a parameter with its final value.
type Param struct {
	Name      string
	Kind      schema.Kind
	Value     cty.Value
	Defaulted bool
	Untracked bool
}

// TagRef is an input tag read by a module.
type TagRef struct {
	Param string
	Tag   inputtag.Tag

	// Local is true when the tag names a module of this process.
	Local bool
}

// Path is an ordered list of module executions.
type Path struct {
	Name  string
	End   bool
	Steps []Step
}

// Step is one module execution on a path.
type Step struct {
	// Position is zero-based.
	Position int
	Label    string
	Type     string

	// Via names the sequence that contributed the step, if any. For nested
	// sequences it is the innermost one.
	Via string
}

// WarningCode classifies a warning.
type WarningCode string

const (
	WarnNoProcess       WarningCode = "no-process"
	WarnNoSource        WarningCode = "no-source"
	WarnNotOnPath       WarningCode = "not-on-path"
	WarnProducerLater   WarningCode = "producer-later"
	WarnUnknownProduct  WarningCode = "unknown-product"
	WarnNotScheduled    WarningCode = "not-scheduled"
	WarnRepeatedOnPath  WarningCode = "repeated-on-path"
	WarnRepeatedInSched WarningCode = "repeated-in-schedule"
)

// Warning is a finding that does not prevent the plan from being built.
type Warning struct {
	Code    WarningCode
	Label   string
	Message string
	Range   hcl.Range
}

// Module returns the module with the given label. The source is found
// under SourceLabel.
func (p *Plan) Module(label string) (*Module, bool) {
	if p.Source != nil && label == SourceLabel {
		return p.Source, true
	}
	for _, m := range p.Modules {
		if m.Label == label {
			return m, true
		}
	}
	return nil, false
}

// AllPaths returns the paths followed by the end-paths, in execution order.
func (p *Plan) AllPaths() []*Path {
	out := make([]*Path, 0, len(p.Paths)+len(p.EndPaths))
	out = append(out, p.Paths...)
	return append(out, p.EndPaths...)
}

// StepCount returns the number of steps over all paths and end-paths.
func (p *Plan) StepCount() int {
	n := 0
	for _, path := range p.AllPaths() {
		n += len(path.Steps)
	}
	return n
}

// Param returns the parameter with the given name.
func (m *Module) Param(name string) (*Param, bool) {
	for _, p := range m.Params {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}
