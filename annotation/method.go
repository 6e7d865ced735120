package annotation

import (
	"fmt"

	"github.com/felixgeelhaar/llmschema/signature"
)

// ArgAnnotation is the semantic metadata for one function argument.
type ArgAnnotation struct {
	Description string
	Enum        []any

	// Required forces the argument to be required and visible. Mutually
	// exclusive with LLMExclude and UserProvided.
	Required bool

	// LLMExclude hides the argument from the schema; it must be supplied
	// out of band at call time.
	LLMExclude bool

	// UserProvided marks the argument as supplied by the hosting
	// application rather than the LLM. Implies exclusion.
	UserProvided bool
}

// NewArgAnnotation validates and returns an argument annotation.
func NewArgAnnotation(a ArgAnnotation) (*ArgAnnotation, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

func (a *ArgAnnotation) validate() error {
	if a.Required && (a.LLMExclude || a.UserProvided) {
		return &InvariantError{Detail: "required conflicts with llmexclude/userprovided"}
	}
	return nil
}

// MethodAnnotation is the semantic metadata for one function signature.
// Args must cover every non-excluded argument of the signature it is
// applied to.
type MethodAnnotation struct {
	Name        string
	Description string
	Args        map[string]*ArgAnnotation
}

// NewMethod creates a method annotation with the given display name.
func NewMethod(name string) *MethodAnnotation {
	return &MethodAnnotation{Name: name, Args: make(map[string]*ArgAnnotation)}
}

// Describe sets the method-level description.
func (m *MethodAnnotation) Describe(desc string) *MethodAnnotation {
	m.Description = desc
	return m
}

// Arg attaches an argument annotation.
func (m *MethodAnnotation) Arg(name string, a *ArgAnnotation) *MethodAnnotation {
	if m.Args == nil {
		m.Args = make(map[string]*ArgAnnotation)
	}
	m.Args[name] = a
	return m
}

// Apply resolves the annotation onto a signature: it sets the
// signature-level description, attaches per-argument descriptions and
// enums, and normalizes required/exclude flags. An annotation marking an
// argument required forces required=true and visible; one marking it
// excluded or user-provided forces llmexclude=true and not required.
//
// Apply fails when any in-signature, non-excluded argument has no
// annotation entry. The signature is mutated; callers generating schemas
// from shared signatures should Clone first.
func (m *MethodAnnotation) Apply(sig *signature.Signature) error {
	if m.Description != "" {
		sig.Description = m.Description
	}

	for _, arg := range sig.Args {
		aa, ok := m.Args[arg.Name]
		if !ok {
			if arg.LLMExclude {
				continue
			}
			return &CoverageError{Method: m.name(sig), Arg: arg.Name}
		}
		if err := aa.validate(); err != nil {
			return err
		}

		if aa.Description != "" {
			arg.Description = aa.Description
		}
		if aa.Enum != nil {
			arg.Enum = append([]any(nil), aa.Enum...)
		}

		switch {
		case aa.Required:
			arg.Required = true
			arg.LLMExclude = false
		case aa.LLMExclude || aa.UserProvided:
			arg.LLMExclude = true
			arg.Required = false
		}
	}

	return nil
}

func (m *MethodAnnotation) name(sig *signature.Signature) string {
	if m.Name != "" {
		return m.Name
	}
	return sig.Name
}

// CoverageError reports a method annotation that omits an argument present
// in the signature it was applied to.
type CoverageError struct {
	Method string
	Arg    string
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("llmschema: method annotation %q does not cover argument %q", e.Method, e.Arg)
}

// InvariantError reports an argument annotation whose flags conflict.
type InvariantError struct {
	Detail string
}

func (e *InvariantError) Error() string {
	return "llmschema: invalid argument annotation: " + e.Detail
}

// RegisterMethod associates a method annotation with a callable name.
func (r *Registry) RegisterMethod(name string, m *MethodAnnotation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods[name] = m
}

// LookupMethod resolves the method annotation for a callable. When none
// was registered it returns a default covering every argument of sig.
// The default entries carry no description: descriptions already present
// on the signature stay intact, and arguments without one fall back at
// emit time.
func (r *Registry) LookupMethod(name string, sig *signature.Signature) *MethodAnnotation {
	r.mu.RLock()
	m, ok := r.methods[name]
	r.mu.RUnlock()
	if ok {
		return m
	}

	def := NewMethod(name)
	for _, arg := range sig.Args {
		def.Args[arg.Name] = &ArgAnnotation{}
	}
	return def
}
