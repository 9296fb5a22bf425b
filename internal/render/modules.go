package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/psetgo/internal/schema"
)

// ModuleTypes writes a one-line listing of each module type.
func ModuleTypes(w io.Writer, types []*schema.ModuleType) error {
	st := newStyles(w)
	names := make([]string, len(types))
	cats := make([]string, len(types))
	for i, mt := range types {
		names[i] = mt.Name
		cats[i] = string(mt.Category)
	}
	nameWidth, catWidth := maxWidth(names), maxWidth(cats)

	var b strings.Builder
	for _, mt := range types {
		line := fmt.Sprintf("%s  %s  %s", pad(st.label, mt.Name, nameWidth), pad(st.detail, string(mt.Category), catWidth), mt.Description)
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// ModuleType writes the full schema of one module type.
func ModuleType(w io.Writer, mt *schema.ModuleType) error {
	st := newStyles(w)
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", st.heading.Render("Module type"), st.label.Render(mt.Name))
	fmt.Fprintf(&b, "  %s %s\n", pad(st.detail, "category", 9), mt.Category)
	if mt.Origin != "" {
		fmt.Fprintf(&b, "  %s %s\n", pad(st.detail, "origin", 9), mt.Origin)
	}
	if mt.Description != "" {
		fmt.Fprintf(&b, "\n  %s\n", mt.Description)
	}

	if names := mt.ParamNames(); len(names) > 0 {
		fmt.Fprintf(&b, "\n%s\n", st.heading.Render("Parameters"))
		kinds := make([]string, len(names))
		for i, name := range names {
			kinds[i] = mt.Params[name].Kind.String()
		}
		nameWidth, kindWidth := maxWidth(names), maxWidth(kinds)

		for _, name := range names {
			p := mt.Params[name]
			value := st.fail.Render("required")
			if !p.Required() {
				value = FormatValue(*p.Default)
			}
			line := fmt.Sprintf("  %s  %s  %s", pad(st.label, name, nameWidth), pad(st.detail, p.Kind.String(), kindWidth), value)
			if p.Untracked {
				line += "  " + st.detail.Render("untracked")
			}
			b.WriteString(line + "\n")
			if p.Description != "" {
				fmt.Fprintf(&b, "  %s  %s\n", strings.Repeat(" ", nameWidth), st.detail.Render(p.Description))
			}
		}
	}

	if len(mt.Products) > 0 {
		fmt.Fprintf(&b, "\n%s\n", st.heading.Render("Products"))
		for _, p := range mt.Products {
			instance := p.Instance
			if instance == "" {
				instance = "(default)"
			}
			fmt.Fprintf(&b, "  %s  %s\n", st.label.Render(instance), p.Type)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
