// internal/inputtag/parser.go
package inputtag

import (
	"fmt"
	"regexp"
	"strings"
)

const separator = ':'

// partRegex matches a single tag part. A leading '@' marks framework-reserved
// names such as `@currentProcess`.
var partRegex = regexp.MustCompile(`^@?[A-Za-z0-9_]*$`)

// Parse creates a Tag from its string representation.
func Parse(raw string) (Tag, error) {
	if strings.TrimSpace(raw) == "" {
		return Tag{}, fmt.Errorf("input tag cannot be empty")
	}

	parts := strings.Split(raw, string(separator))
	if len(parts) > 3 {
		return Tag{}, fmt.Errorf("input tag %q has %d parts, at most 3 are allowed", raw, len(parts))
	}

	for _, part := range parts {
		if !partRegex.MatchString(part) {
			return Tag{}, fmt.Errorf("invalid input tag part %q in %q", part, raw)
		}
	}

	tag := Tag{Label: parts[0]}
	if tag.Label == "" || tag.Label == "@" {
		return Tag{}, fmt.Errorf("input tag %q has an empty producer label", raw)
	}
	if len(parts) > 1 {
		tag.Instance = parts[1]
	}
	if len(parts) > 2 {
		tag.Process = parts[2]
	}

	return tag, nil
}
