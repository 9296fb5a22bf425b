// internal/inputtag/tag.go
package inputtag

import "strings"

// String serializes the Tag into its canonical short form. Trailing empty
// parts are dropped, so `a::` renders as `a`.
func (t Tag) String() string {
	var sb strings.Builder
	sb.WriteString(t.Label)
	switch {
	case t.Process != "":
		sb.WriteRune(separator)
		sb.WriteString(t.Instance)
		sb.WriteRune(separator)
		sb.WriteString(t.Process)
	case t.Instance != "":
		sb.WriteRune(separator)
		sb.WriteString(t.Instance)
	}
	return sb.String()
}

// Equal checks whether two tags reference the same product.
func (t Tag) Equal(other Tag) bool {
	return t == other
}
