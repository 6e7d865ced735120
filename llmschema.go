// Package llmschema converts Go types and function signatures into JSON
// Schema documents for LLM structured output and tool calling.
//
// llmschema walks a type's field structure (or a function's argument
// list), combines it with registered semantic annotations, and emits a
// JSON Schema tree honoring provider-specific structural rules:
//   - plain JSON Schema (Standard, Gemini)
//   - OpenAI structured output (response-format envelope, strict mode)
//   - OpenAI tool calling (function envelope, strict mode)
//
// Basic usage:
//
//	type Person struct {
//	    Name string `json:"name"`
//	    Age  int    `json:"age"`
//	}
//
//	llmschema.RegisterType[Person](&llmschema.Annotation{
//	    Name:        "Person",
//	    Description: "A schema for a person.",
//	    Parameters: map[string]*llmschema.Annotation{
//	        "name": {Description: "The name of the person"},
//	        "age":  {Description: "The age of the person"},
//	    },
//	})
//
//	out, err := llmschema.For[Person](llmschema.WithAdapter(llmschema.OpenAI))
//
// Function schemas are generated from extracted signatures:
//
//	sig, err := signature.Of("search", search, "query", "limit").
//	    Describe("Search for documents").
//	    Callable()
//	out, err := llmschema.GenerateFunc(sig, llmschema.WithAdapter(llmschema.OpenAITools))
package llmschema

import (
	"reflect"

	"github.com/felixgeelhaar/llmschema/annotation"
	"github.com/felixgeelhaar/llmschema/schema"
	"github.com/felixgeelhaar/llmschema/signature"
)

// Re-export core types for convenience

// Container is the mapping type generated schemas are built from.
type Container = schema.Container

// ContainerFactory produces empty containers during generation.
type ContainerFactory = schema.ContainerFactory

// Option configures schema generation.
type Option = schema.Option

// Adapter selects provider-specific structural rules.
type Adapter = schema.Adapter

// Adapter values.
const (
	Standard    = schema.Standard
	OpenAI      = schema.OpenAI
	OpenAITools = schema.OpenAITools
	Gemini      = schema.Gemini
)

// EnumPolicy controls duplicate handling in function-argument enums.
type EnumPolicy = schema.EnumPolicy

// Enum duplicate policies.
const (
	EnumDedupe = schema.EnumDedupe
	EnumError  = schema.EnumError
)

// Enumerator is the enum oracle: types implementing it are emitted as
// strings with an enum constraint.
type Enumerator = schema.Enumerator

// Annotation types
type Annotation = annotation.Annotation
type MethodAnnotation = annotation.MethodAnnotation
type ArgAnnotation = annotation.ArgAnnotation
type Registry = annotation.Registry

// Signature types
type Signature = signature.Signature
type Callable = signature.Callable
type Selector = signature.Selector

// Logging types
type Logger = schema.Logger
type LogField = schema.Field

// LogF creates a new log field with the given key and value.
func LogF(key string, value any) LogField {
	return schema.F(key, value)
}

// Option re-exports.
var (
	WithReferences       = schema.WithReferences
	WithReferencePath    = schema.WithReferencePath
	WithContainer        = schema.WithContainer
	WithAdapter          = schema.WithAdapter
	WithEnumPolicy       = schema.WithEnumPolicy
	WithSelector         = schema.WithSelector
	WithMethodAnnotation = schema.WithMethodAnnotation
	WithRegistry         = schema.WithRegistry
	WithLogger           = schema.WithLogger
)

// Container constructors.
var (
	NewOrdered   = schema.NewOrdered
	NewUnordered = schema.NewUnordered
)

// Selector constructors.
var (
	ByIndex = signature.ByIndex
	ByArity = signature.ByArity
)

// Generate converts a Go type into a JSON Schema mapping.
func Generate(t reflect.Type, opts ...Option) (Container, error) {
	return schema.Generate(t, opts...)
}

// For generates a schema for the type parameter T.
func For[T any](opts ...Option) (Container, error) {
	return schema.For[T](opts...)
}

// GenerateFunc converts one overload of a callable into a JSON Schema
// mapping describing its arguments.
func GenerateFunc(c *Callable, opts ...Option) (Container, error) {
	return schema.GenerateFunc(c, opts...)
}

// ForFunc extracts a single-overload callable from fn and generates its
// schema.
func ForFunc(name string, fn any, opts ...Option) (Container, error) {
	return schema.ForFunc(name, fn, opts...)
}

// RegisterType associates an annotation with type T in the default
// registry.
func RegisterType[T any](a *Annotation) {
	annotation.Register[T](a)
}

// RegisterMethod associates a method annotation with a callable name in
// the default registry.
func RegisterMethod(name string, m *MethodAnnotation) {
	annotation.Default.RegisterMethod(name, m)
}

// NewRegistry creates an empty annotation registry for callers that do
// not want to share the package-level default.
func NewRegistry() *Registry {
	return annotation.NewRegistry()
}
