package config

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Document is the unified representation of one process configuration,
// possibly assembled from several files.
type Document struct {
	Processes []*ProcessBlock
	Sources   []*Module
	Modules   []*Module
	Outputs   []*Module
	Sequences []*Sequence
	Paths     []*Sequence
	EndPaths  []*Sequence

	// Files lists the files the document was loaded from, in load order.
	Files []string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// ProcessBlock holds the process-wide settings.
type ProcessBlock struct {
	Name string

	// MaxEvents is nil when not configured. -1 means all events.
	MaxEvents *int64

	// Schedule is nil when no explicit schedule was declared.
	Schedule []Ref

	Range hcl.Range
}

// Module is a configured instance: a module, an output module or the source.
// Sources have no label.
type Module struct {
	Label  string
	Type   string
	Params map[string]Param

	Range     hcl.Range
	TypeRange hcl.Range
}

// Param is a single bound parameter value.
type Param struct {
	Name  string
	Value cty.Value
	Range hcl.Range
}

// Sequence is an ordered list of references. It is used for sequences,
// paths and end-paths alike.
type Sequence struct {
	Label string
	Refs  []Ref
	Range hcl.Range
}

// Ref is a reference to a labeled block by name.
type Ref struct {
	Name  string
	Range hcl.Range
}
