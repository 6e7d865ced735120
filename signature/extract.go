package signature

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrVariadic is returned when a variadic function is extracted. Variadic
// parameter lists have no stable schema shape.
var ErrVariadic = errors.New("variadic functions are not supported")

// Extract builds a Signature from a Go function via reflection.
//
// Go reflection does not expose parameter names, so names are taken from
// the names argument in parameter order; missing names are synthesized as
// arg0, arg1, and so on. A leading context.Context parameter is skipped
// and restored at invocation time. Pointer-typed parameters are extracted
// as optional (required=false); everything else is required.
func Extract(name string, fn any, names ...string) (*Signature, error) {
	v := reflect.ValueOf(fn)
	t := v.Type()

	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("llmschema: extracting %q: expected a function, got %s", name, t.Kind())
	}
	if t.IsVariadic() {
		return nil, fmt.Errorf("llmschema: extracting %q: %w", name, ErrVariadic)
	}

	sig := &Signature{Name: name, Func: v}

	start := 0
	if t.NumIn() > 0 && t.In(0) == ctxType {
		sig.hasContext = true
		start = 1
	}

	for i := start; i < t.NumIn(); i++ {
		pos := i - start
		argName := fmt.Sprintf("arg%d", pos)
		if pos < len(names) && names[pos] != "" {
			argName = names[pos]
		}
		pt := t.In(i)
		sig.Args = append(sig.Args, &Arg{
			Name:     argName,
			Type:     pt,
			Kind:     Positional,
			Position: pos,
			Required: pt.Kind() != reflect.Pointer,
		})
	}

	return sig, nil
}

// Builder provides a fluent API for describing a function signature.
// The first error encountered sticks and is returned from Build.
type Builder struct {
	sig *Signature
	err error
}

// Of starts a builder for fn with the given argument names.
func Of(name string, fn any, names ...string) *Builder {
	sig, err := Extract(name, fn, names...)
	return &Builder{sig: sig, err: err}
}

// Describe sets the signature-level description.
func (b *Builder) Describe(desc string) *Builder {
	if b.err != nil {
		return b
	}
	b.sig.Description = desc
	return b
}

// Arg sets the description for a named argument.
func (b *Builder) Arg(name, desc string) *Builder {
	return b.with(name, func(a *Arg) { a.Description = desc })
}

// Required marks a named argument as required.
func (b *Builder) Required(name string) *Builder {
	return b.with(name, func(a *Arg) { a.Required = true })
}

// Optional marks a named argument as not required.
func (b *Builder) Optional(name string) *Builder {
	return b.with(name, func(a *Arg) { a.Required = false })
}

// Default sets a default value for a named argument and marks it optional.
func (b *Builder) Default(name string, value any) *Builder {
	return b.with(name, func(a *Arg) {
		a.HasDefault = true
		a.Default = value
		a.Required = false
	})
}

// Enum constrains a named argument to the given values.
func (b *Builder) Enum(name string, values ...any) *Builder {
	return b.with(name, func(a *Arg) { a.Enum = values })
}

// Exclude hides a named argument from the schema. Excluded arguments are
// supplied out of band at call time.
func (b *Builder) Exclude(name string) *Builder {
	return b.with(name, func(a *Arg) {
		a.LLMExclude = true
		a.Required = false
	})
}

// Keyword marks a named argument as keyword-style.
func (b *Builder) Keyword(name string) *Builder {
	return b.with(name, func(a *Arg) { a.Kind = Keyword })
}

func (b *Builder) with(name string, apply func(*Arg)) *Builder {
	if b.err != nil {
		return b
	}
	a := b.sig.Arg(name)
	if a == nil {
		b.err = fmt.Errorf("llmschema: signature %q has no argument %q", b.sig.Name, name)
		return b
	}
	apply(a)
	return b
}

// Build returns the signature or the first error encountered.
func (b *Builder) Build() (*Signature, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.sig, nil
}

// Callable returns the signature wrapped as a single-overload callable.
func (b *Builder) Callable() (*Callable, error) {
	sig, err := b.Build()
	if err != nil {
		return nil, err
	}
	return NewCallable(sig.Name, sig), nil
}
