package plan

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"slices"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// digest computes the plan ID. The encoding covers the process name, every
// bound module with its tracked parameters (modules sorted by label) and
// the scheduled paths in execution order. Fields are length-prefixed so
// that no two plans share an encoding.
func digest(p *Plan) string {
	h := sha256.New()

	writeRecord(h, "process", p.Process)
	if p.Source != nil {
		writeModule(h, p.Source)
	}

	modules := slices.Clone(p.Modules)
	slices.SortFunc(modules, func(a, b *Module) int { return strings.Compare(a.Label, b.Label) })
	for _, m := range modules {
		writeModule(h, m)
	}

	for _, path := range p.AllPaths() {
		writeRecord(h, "path", path.Name, strconv.FormatBool(path.End))
		for _, s := range path.Steps {
			writeRecord(h, "step", s.Label)
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}

func writeModule(h hash.Hash, m *Module) {
	writeRecord(h, "module", m.Label, m.Type)
	for _, param := range m.Params {
		if param.Untracked {
			continue
		}
		writeRecord(h, "param", param.Name, param.Kind.String(), encodeValue(param.Value))
	}
}

func writeRecord(h hash.Hash, fields ...string) {
	for _, f := range fields {
		fmt.Fprintf(h, "%d:%s;", len(f), f)
	}
	h.Write([]byte{'\n'})
}

// encodeValue renders a value as canonical JSON. Numbers are printed from
// their exact decimal value, so 20 and 20.0 encode identically.
func encodeValue(v cty.Value) string {
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return v.GoString()
	}
	return string(b)
}
