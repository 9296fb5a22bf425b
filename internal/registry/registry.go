package registry

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/psetgo/internal/schema"
)

// Registry maps module type names to their schemas. Registration is not
// safe for concurrent use; lookups are.
type Registry struct {
	types map[string]*schema.ModuleType
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{types: make(map[string]*schema.ModuleType)}
}

// Register adds a module type. The type must be internally consistent and
// its name must not already be taken.
func (r *Registry) Register(mt *schema.ModuleType) error {
	if mt == nil {
		return fmt.Errorf("cannot register a nil module type")
	}
	if err := mt.Validate(); err != nil {
		return err
	}
	if existing, ok := r.types[mt.Name]; ok {
		return fmt.Errorf("module type '%s' already registered (from %s)", mt.Name, originOf(existing))
	}
	r.types[mt.Name] = mt
	return nil
}

// Lookup returns the module type with the given name.
func (r *Registry) Lookup(name string) (*schema.ModuleType, bool) {
	mt, ok := r.types[name]
	return mt, ok
}

// Names returns the registered type names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Types returns the registered module types sorted by name.
func (r *Registry) Types() []*schema.ModuleType {
	names := r.Names()
	out := make([]*schema.ModuleType, len(names))
	for i, name := range names {
		out[i] = r.types[name]
	}
	return out
}

// Len returns the number of registered module types.
func (r *Registry) Len() int {
	return len(r.types)
}

func originOf(mt *schema.ModuleType) string {
	if mt.Origin == "" {
		return "unknown origin"
	}
	return mt.Origin
}
