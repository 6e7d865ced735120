// Package signature describes Go functions as structured argument lists
// consumable by schema generation and argument binding.
//
// A Signature lists a function's arguments in call order along with the
// metadata schema generation needs: declared type, required flag, default
// value, enum constraint, and whether the argument is hidden from the LLM
// and supplied out of band. Signatures are produced by Extract (or the
// fluent Builder) and consumed read-only by the generator; GenerateFunc
// clones before applying annotations.
package signature

import (
	"context"
	"fmt"
	"reflect"
)

// ArgKind distinguishes positional from keyword-style arguments.
type ArgKind int

const (
	// Positional arguments are bound by call order.
	Positional ArgKind = iota
	// Keyword arguments are bound by name only.
	Keyword
)

// Arg describes one function argument.
type Arg struct {
	Name        string
	Type        reflect.Type
	Kind        ArgKind
	Position    int
	Required    bool
	HasDefault  bool
	Default     any
	Enum        []any
	Description string

	// LLMExclude hides the argument from the generated schema. Excluded
	// arguments are supplied out of band at call time.
	LLMExclude bool
}

func (a *Arg) clone() *Arg {
	c := *a
	if a.Enum != nil {
		c.Enum = append([]any(nil), a.Enum...)
	}
	return &c
}

// Signature is the structured description of one function overload.
type Signature struct {
	Name        string
	Description string
	Args        []*Arg

	// Func holds the underlying function for invocation. It may be the
	// zero Value when the signature was built without a function.
	Func reflect.Value

	hasContext bool
}

// HasContext reports whether the underlying function takes a leading
// context.Context parameter.
func (s *Signature) HasContext() bool { return s.hasContext }

// Clone returns a deep copy of the signature. The underlying function
// value is shared.
func (s *Signature) Clone() *Signature {
	c := &Signature{
		Name:        s.Name,
		Description: s.Description,
		Func:        s.Func,
		hasContext:  s.hasContext,
		Args:        make([]*Arg, len(s.Args)),
	}
	for i, a := range s.Args {
		c.Args[i] = a.clone()
	}
	return c
}

// Included returns the arguments visible to the LLM, in signature order.
func (s *Signature) Included() []*Arg {
	out := make([]*Arg, 0, len(s.Args))
	for _, a := range s.Args {
		if !a.LLMExclude {
			out = append(out, a)
		}
	}
	return out
}

// Arg returns the argument with the given name, or nil.
func (s *Signature) Arg(name string) *Arg {
	for _, a := range s.Args {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Callable is a named set of signature overloads.
type Callable struct {
	name      string
	overloads []*Signature
}

// NewCallable creates a callable from one or more overload signatures.
func NewCallable(name string, overloads ...*Signature) *Callable {
	return &Callable{name: name, overloads: overloads}
}

// Name returns the callable name.
func (c *Callable) Name() string { return c.name }

// Overloads returns the registered overload signatures.
func (c *Callable) Overloads() []*Signature { return c.overloads }

// Select resolves one overload using the given selector.
func (c *Callable) Select(sel Selector) (*Signature, error) {
	if sel == nil {
		sel = ByIndex(0)
	}
	sig, err := sel(c.overloads)
	if err != nil {
		return nil, &SelectorError{Callable: c.name, Reason: err.Error()}
	}
	return sig, nil
}

// Selector picks one overload from the available set.
type Selector func(overloads []*Signature) (*Signature, error)

// ByIndex selects an overload by zero-based index.
func ByIndex(i int) Selector {
	return func(overloads []*Signature) (*Signature, error) {
		if i < 0 || i >= len(overloads) {
			return nil, fmt.Errorf("overload index %d out of range [0, %d)", i, len(overloads))
		}
		return overloads[i], nil
	}
}

// ByArity selects the first overload with exactly n arguments.
func ByArity(n int) Selector {
	return func(overloads []*Signature) (*Signature, error) {
		for _, s := range overloads {
			if len(s.Args) == n {
				return s, nil
			}
		}
		return nil, fmt.Errorf("no overload with %d arguments", n)
	}
}

// SelectorError reports a failed overload selection.
type SelectorError struct {
	Callable string
	Reason   string
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("llmschema: selecting overload of %q: %s", e.Callable, e.Reason)
}

var ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
