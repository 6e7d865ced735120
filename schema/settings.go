package schema

import (
	"reflect"

	"github.com/felixgeelhaar/llmschema/annotation"
	"github.com/felixgeelhaar/llmschema/signature"
)

// Adapter selects the provider-specific structural rules applied to a
// generated schema.
type Adapter int

const (
	// Standard emits plain JSON Schema with no envelope.
	Standard Adapter = iota
	// OpenAI emits the response-format envelope for structured output.
	OpenAI
	// OpenAITools emits the tool-call envelope. Inner schema content is
	// identical to OpenAI; only the envelope differs.
	OpenAITools
	// Gemini is a passthrough placeholder, currently identical to Standard.
	Gemini
)

// String returns the adapter name.
func (a Adapter) String() string {
	switch a {
	case Standard:
		return "standard"
	case OpenAI:
		return "openai"
	case OpenAITools:
		return "openai_tools"
	case Gemini:
		return "gemini"
	default:
		return "unknown"
	}
}

// openAIMode reports whether the strict OpenAI inner-schema rules apply:
// full required lists, additionalProperties:false, nullable via type array.
func (a Adapter) openAIMode() bool {
	return a == OpenAI || a == OpenAITools
}

// EnumPolicy controls how duplicate enum values are handled during
// normalization of function-argument enums.
type EnumPolicy int

const (
	// EnumDedupe silently keeps the first occurrence of each value.
	EnumDedupe EnumPolicy = iota
	// EnumError fails on the first repeated value.
	EnumError
)

// DefaultReferencePath is the prefix used for $ref targets.
const DefaultReferencePath = "#/$defs/"

// Settings is the generation context threaded through one Generate call.
// A Settings value is built fresh from options per top-level call and is
// not mutated during recursion; top-level status is passed explicitly down
// the recursive calls.
type Settings struct {
	useReferences    bool
	referenceTypes   map[reflect.Type]struct{}
	referencePath    string
	container        ContainerFactory
	adapter          Adapter
	enumPolicy       EnumPolicy
	selector         signature.Selector
	methodAnnotation *annotation.MethodAnnotation
	registry         *annotation.Registry
	logger           Logger
}

// Adapter returns the configured adapter.
func (s *Settings) Adapter() Adapter { return s.adapter }

// Option configures schema generation.
type Option func(*Settings)

// NewSettings builds a Settings value from options, applying defaults for
// anything unset.
func NewSettings(opts ...Option) *Settings {
	s := &Settings{
		referencePath: DefaultReferencePath,
		container:     NewOrdered,
		adapter:       Standard,
		enumPolicy:    EnumDedupe,
		registry:      annotation.Default,
		logger:        NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithReferences toggles $defs factoring: nested composite types are
// collected once and referenced by $ref instead of inlined. Default off.
func WithReferences(enable bool) Option {
	return func(s *Settings) { s.useReferences = enable }
}

// WithReferencePath sets the $ref path prefix. Default "#/$defs/".
func WithReferencePath(path string) Option {
	return func(s *Settings) { s.referencePath = path }
}

// WithContainer sets the mapping implementation generated schemas are
// built from. Default NewOrdered.
func WithContainer(f ContainerFactory) Option {
	return func(s *Settings) { s.container = f }
}

// WithAdapter sets the provider adapter. Default Standard.
func WithAdapter(a Adapter) Option {
	return func(s *Settings) { s.adapter = a }
}

// WithEnumPolicy sets the duplicate policy for function-argument enums.
// Default EnumDedupe.
func WithEnumPolicy(p EnumPolicy) Option {
	return func(s *Settings) { s.enumPolicy = p }
}

// WithSelector sets the overload selector for function schema generation.
// Default is the first overload.
func WithSelector(sel signature.Selector) Option {
	return func(s *Settings) { s.selector = sel }
}

// WithMethodAnnotation supplies an explicit method annotation, bypassing
// the registry lookup.
func WithMethodAnnotation(m *annotation.MethodAnnotation) Option {
	return func(s *Settings) { s.methodAnnotation = m }
}

// WithRegistry sets the annotation registry consulted during generation.
// Default is the package-level registry.
func WithRegistry(r *annotation.Registry) Option {
	return func(s *Settings) { s.registry = r }
}

// WithLogger sets the logger for generation events. Default discards.
func WithLogger(l Logger) Option {
	return func(s *Settings) { s.logger = l }
}
