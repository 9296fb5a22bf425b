package yaml

import (
	"bytes"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/psetgo/internal/pshcl"
	"gopkg.in/yaml.v3"
)

// yaml.v3 reports positions only inside its messages, as "line N: ...".
var linePrefix = regexp.MustCompile(`^line (\d+): (.*)$`)

// decodeDiagnostics turns a yaml.v3 decode error into diagnostics, one per
// reported problem, each pointing at the offending line of src.
func decodeDiagnostics(filename string, src []byte, err error) hcl.Diagnostics {
	msgs := []string{err.Error()}
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		msgs = typeErr.Errors
	}

	var diags hcl.Diagnostics
	for _, msg := range msgs {
		msg = strings.TrimPrefix(msg, "yaml: ")
		rng := hcl.Range{
			Filename: filename,
			Start:    hcl.Pos{Line: 1, Column: 1},
			End:      hcl.Pos{Line: 1, Column: 1},
		}
		if m := linePrefix.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			rng = lineRange(filename, src, line)
			msg = m[2]
		}
		diags = append(diags, pshcl.ErrorDiag("Invalid YAML", capitalize(msg)+".", rng))
	}
	return diags
}

// lineRange covers the given 1-based line of src, without its newline. Lines
// past the end of src collapse to the end of the file.
func lineRange(filename string, src []byte, line int) hcl.Range {
	offset, current := 0, 1
	for current < line {
		next := bytes.IndexByte(src[offset:], '\n')
		if next < 0 {
			break
		}
		offset += next + 1
		current++
	}
	end := len(src)
	if next := bytes.IndexByte(src[offset:], '\n'); next >= 0 {
		end = offset + next
	}
	return hcl.Range{
		Filename: filename,
		Start:    hcl.Pos{Line: current, Column: 1, Byte: offset},
		End:      hcl.Pos{Line: current, Column: end - offset + 1, Byte: end},
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
