// Package annotation provides the semantic metadata attached to types and
// function arguments during schema generation.
//
// An Annotation carries the display name, description, and per-field
// sub-annotations for one type. Annotations are registered in a Registry
// keyed by type identity; the generator always resolves annotations through
// a registry lookup, which falls back to a synthesized default when no
// annotation was registered. Annotations are consumed read-only and never
// mutated after construction.
package annotation

import (
	"fmt"
	"reflect"
	"sync"
)

// Annotation is the semantic metadata for one type.
type Annotation struct {
	// Name is the display name used for envelope naming. Always set.
	Name string

	// Description describes the annotated type; empty means unset.
	Description string

	// Markdown holds free-form documentation. It is not consumed by
	// schema generation.
	Markdown string

	// Enum constrains the annotated value to an ordered set of scalars.
	// Nil means no constraint.
	Enum []any

	// Parameters maps field names to nested annotations. Every key must
	// name a real field of the annotated type; unknown keys fail schema
	// generation.
	Parameters map[string]*Annotation
}

// New creates an annotation with the given display name.
func New(name string) *Annotation {
	return &Annotation{Name: name}
}

// WithDescription returns a copy of the annotation with the description set.
func (a *Annotation) WithDescription(desc string) *Annotation {
	c := *a
	c.Description = desc
	return &c
}

// GetName returns the display name.
func (a *Annotation) GetName() string { return a.Name }

// GetDescription returns the type-level description.
func (a *Annotation) GetDescription() string { return a.Description }

// FieldDescription returns the description for a named field. When no
// nested annotation exists for the field, a deterministic fallback derived
// from the field name is returned.
func (a *Annotation) FieldDescription(field string) string {
	if a != nil && a.Parameters != nil {
		if p, ok := a.Parameters[field]; ok {
			return p.GetDescription()
		}
	}
	return FallbackDescription(field)
}

// FieldEnum returns the enum constraint for a named field, or nil.
func (a *Annotation) FieldEnum(field string) []any {
	if a != nil && a.Parameters != nil {
		if p, ok := a.Parameters[field]; ok {
			return p.Enum
		}
	}
	return nil
}

// Field returns the nested annotation for a named field, or nil.
func (a *Annotation) Field(name string) *Annotation {
	if a == nil || a.Parameters == nil {
		return nil
	}
	return a.Parameters[name]
}

// FallbackDescription synthesizes a field description from its identifier.
func FallbackDescription(field string) string {
	return fmt.Sprintf("Semantic of %s in the context of the schema", field)
}

// TypeName returns the canonical identifier used for unannotated types.
func TypeName(t reflect.Type) string {
	if n := t.Name(); n != "" {
		return n
	}
	return t.String()
}

// Registry maps type identities to annotations. The zero value is not
// usable; create registries with NewRegistry. Registries are safe for
// concurrent lookup; registration is expected to happen during process
// initialization.
type Registry struct {
	mu      sync.RWMutex
	types   map[reflect.Type]*Annotation
	methods map[string]*MethodAnnotation
}

// NewRegistry creates an empty annotation registry.
func NewRegistry() *Registry {
	return &Registry{
		types:   make(map[reflect.Type]*Annotation),
		methods: make(map[string]*MethodAnnotation),
	}
}

// RegisterType associates an annotation with a type identity.
func (r *Registry) RegisterType(t reflect.Type, a *Annotation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[t] = a
}

// LookupType resolves the annotation for a type. When none was registered
// it returns a default whose name is the type's canonical identifier and
// whose field descriptions all use the synthesized fallback.
func (r *Registry) LookupType(t reflect.Type) *Annotation {
	r.mu.RLock()
	a, ok := r.types[t]
	r.mu.RUnlock()
	if ok {
		return a
	}
	return New(TypeName(t))
}

// Default is the package-level registry used when no registry option is
// supplied to generation.
var Default = NewRegistry()

// Register associates an annotation with type T in the default registry.
func Register[T any](a *Annotation) {
	Default.RegisterType(reflect.TypeFor[T](), a)
}

// Lookup resolves the annotation for type T from the default registry.
func Lookup[T any]() *Annotation {
	return Default.LookupType(reflect.TypeFor[T]())
}
