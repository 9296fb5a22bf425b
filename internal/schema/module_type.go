// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package schema

import (
	"errors"
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Category is the role a module type plays in a process.
type Category string

const (
	CategorySource   Category = "source"
	CategoryProducer Category = "producer"
	CategoryFilter   Category = "filter"
	CategoryAnalyzer Category = "analyzer"
	CategoryOutput   Category = "output"
)

// ParseCategory validates a category keyword.
func ParseCategory(s string) (Category, bool) {
	switch c := Category(s); c {
	case CategorySource, CategoryProducer, CategoryFilter, CategoryAnalyzer, CategoryOutput:
		return c, true
	}
	return "", false
}

// IsWorker reports whether modules of this category may be placed on a
// regular path.
func (c Category) IsWorker() bool {
	return c == CategoryProducer || c == CategoryFilter || c == CategoryAnalyzer
}

// ParamSpec declares a single parameter of a module type.
type ParamSpec struct {
	Name        string
	Kind        Kind
	Description string

	// Default is used when an instance does not bind the parameter. A nil
	// Default makes the parameter required.
	Default *cty.Value

	// Untracked parameters do not contribute to the identity of a plan.
	Untracked bool
}

// Required reports whether instances must bind the parameter.
func (p *ParamSpec) Required() bool {
	return p.Default == nil
}

// ProductSpec declares a product a module puts into the event. An empty
// Instance is the module's default product.
type ProductSpec struct {
	Instance string
	Type     string
}

// ModuleType is the schema of one kind of module.
type ModuleType struct {
	Name        string
	Category    Category
	Description string
	Params      map[string]*ParamSpec
	Products    []ProductSpec
	Origin      string
}

// Param returns the parameter spec with the given name.
func (m *ModuleType) Param(name string) (*ParamSpec, bool) {
	p, ok := m.Params[name]
	return p, ok
}

// ParamNames returns the declared parameter names, sorted.
func (m *ModuleType) ParamNames() []string {
	names := make([]string, 0, len(m.Params))
	for name := range m.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasProduct reports whether the type declares a product with the given
// instance label. Types that declare no products accept any instance.
func (m *ModuleType) HasProduct(instance string) bool {
	if len(m.Products) == 0 {
		return true
	}
	for _, p := range m.Products {
		if p.Instance == instance {
			return true
		}
	}
	return false
}

// Validate checks the internal consistency of the module type.
func (m *ModuleType) Validate() error {
	var errs []error
	if m.Name == "" {
		errs = append(errs, errors.New("module type name cannot be empty"))
	}
	if _, ok := ParseCategory(string(m.Category)); !ok {
		errs = append(errs, fmt.Errorf("module type %q: invalid category %q", m.Name, m.Category))
	}
	for _, name := range m.ParamNames() {
		p := m.Params[name]
		if p.Name != name {
			errs = append(errs, fmt.Errorf("module type %q: parameter registered as %q is named %q", m.Name, name, p.Name))
		}
		if p.Kind == KindInvalid {
			errs = append(errs, fmt.Errorf("module type %q: parameter %q has no kind", m.Name, name))
			continue
		}
		if p.Default != nil {
			if _, err := Conform(p.Kind, *p.Default); err != nil {
				errs = append(errs, fmt.Errorf("module type %q: default for %q: %w", m.Name, name, err))
			}
		}
	}
	return errors.Join(errs...)
}
