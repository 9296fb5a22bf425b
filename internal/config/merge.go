package config

// Merge concatenates the given documents in order. No conflict detection is
// performed; repeated labels or blocks are left for resolution to report.
func Merge(docs ...*Document) *Document {
	out := NewDocument()
	for _, d := range docs {
		if d == nil {
			continue
		}
		out.Processes = append(out.Processes, d.Processes...)
		out.Sources = append(out.Sources, d.Sources...)
		out.Modules = append(out.Modules, d.Modules...)
		out.Outputs = append(out.Outputs, d.Outputs...)
		out.Sequences = append(out.Sequences, d.Sequences...)
		out.Paths = append(out.Paths, d.Paths...)
		out.EndPaths = append(out.EndPaths, d.EndPaths...)
		out.Files = append(out.Files, d.Files...)
	}
	return out
}

// Process returns the first process block, or nil.
func (d *Document) Process() *ProcessBlock {
	if len(d.Processes) == 0 {
		return nil
	}
	return d.Processes[0]
}

// Source returns the first source, or nil.
func (d *Document) Source() *Module {
	if len(d.Sources) == 0 {
		return nil
	}
	return d.Sources[0]
}
