package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/psetgo/internal/plan"
	"github.com/zclconf/go-cty/cty"
)

// Text writes a human-readable description of p.
func Text(w io.Writer, p *plan.Plan) error {
	st := newStyles(w)
	var b strings.Builder

	name := p.Process
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(&b, "%s %s\n", st.heading.Render("Process"), st.label.Render(name))
	fmt.Fprintf(&b, "  %s %s\n", pad(st.detail, "plan id", 11), p.ID)
	fmt.Fprintf(&b, "  %s %s\n", pad(st.detail, "max events", 11), maxEventsText(p.MaxEvents))
	if p.Source != nil {
		fmt.Fprintf(&b, "  %s %s\n", pad(st.detail, "source", 11), p.Source.Type)
	}

	writePaths(&b, st, "Paths", p.Paths)
	writePaths(&b, st, "End paths", p.EndPaths)

	if len(p.Modules) > 0 || p.Source != nil {
		fmt.Fprintf(&b, "\n%s\n", st.heading.Render("Modules"))
		if p.Source != nil {
			writeModule(&b, st, p.Source)
		}
		for _, m := range p.Modules {
			writeModule(&b, st, m)
		}
	}

	if len(p.Warnings) > 0 {
		fmt.Fprintf(&b, "\n%s\n", st.heading.Render("Warnings"))
		for _, warning := range p.Warnings {
			fmt.Fprintf(&b, "  %s %s\n", st.warn.Render("!"), warning.Message)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writePaths(b *strings.Builder, st styles, title string, paths []*plan.Path) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", st.heading.Render(title))
	for _, path := range paths {
		fmt.Fprintf(b, "  %s\n", st.label.Render(path.Name))
		labels := make([]string, len(path.Steps))
		for i, s := range path.Steps {
			labels[i] = s.Label
		}
		width := maxWidth(labels)
		for _, s := range path.Steps {
			line := fmt.Sprintf("    %2d. %s  %s", s.Position+1, pad(st.label, s.Label, width), s.Type)
			if s.Via != "" {
				line += "  " + st.detail.Render("via "+s.Via)
			}
			b.WriteString(strings.TrimRight(line, " ") + "\n")
		}
	}
}

func writeModule(b *strings.Builder, st styles, m *plan.Module) {
	fmt.Fprintf(b, "  %s  %s\n", st.label.Render(m.Label), st.detail.Render(fmt.Sprintf("%s (%s)", m.Type, m.Category)))

	names := make([]string, len(m.Params))
	kinds := make([]string, len(m.Params))
	for i, p := range m.Params {
		names[i] = p.Name
		kinds[i] = p.Kind.String()
	}
	nameWidth, kindWidth := maxWidth(names), maxWidth(kinds)

	for _, p := range m.Params {
		var flags []string
		if p.Defaulted {
			flags = append(flags, "default")
		}
		if p.Untracked {
			flags = append(flags, "untracked")
		}
		line := fmt.Sprintf("    %s  %s  %s", pad(st.label, p.Name, nameWidth), pad(st.detail, p.Kind.String(), kindWidth), FormatValue(p.Value))
		if len(flags) > 0 {
			line += "  " + st.detail.Render(strings.Join(flags, ", "))
		}
		b.WriteString(line + "\n")
	}
}

// FormatValue renders a value in HCL syntax.
func FormatValue(v cty.Value) string {
	return strings.TrimSpace(string(hclwrite.TokensForValue(v).Bytes()))
}

func maxEventsText(n int64) string {
	if n < 0 {
		return "all"
	}
	return fmt.Sprintf("%d", n)
}

// Summary writes a one-line result for a successfully resolved document,
// followed by its warnings.
func Summary(w io.Writer, name string, p *plan.Plan) error {
	st := newStyles(w)
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s: process %s, %d modules, %d paths, %d end paths, %d steps (plan %s)\n",
		st.ok.Render("ok"), name, displayName(p.Process),
		len(p.Modules), len(p.Paths), len(p.EndPaths), p.StepCount(), shortID(p.ID))
	for _, warning := range p.Warnings {
		fmt.Fprintf(&b, "  %s %s\n", st.warn.Render("warning:"), warning.Message)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func displayName(process string) string {
	if process == "" {
		return "(unnamed)"
	}
	return process
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
