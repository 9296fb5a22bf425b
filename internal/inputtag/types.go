// internal/inputtag/types.go
package inputtag

// Tag is a reference to a data product by producer label, product instance
// label and process name.
type Tag struct {
	Label    string
	Instance string
	Process  string
}

// New creates a tag for the default product of the given producer label.
func New(label string) Tag {
	return Tag{Label: label}
}

// WithInstance returns a copy of the tag with the instance label replaced.
func (t Tag) WithInstance(instance string) Tag {
	t.Instance = instance
	return t
}

// WithProcess returns a copy of the tag with the process name replaced.
func (t Tag) WithProcess(process string) Tag {
	t.Process = process
	return t
}

// HasProcess reports whether the tag pins the product to a specific process.
func (t Tag) HasProcess() bool {
	return t.Process != ""
}
