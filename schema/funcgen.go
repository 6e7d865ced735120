package schema

import (
	"reflect"

	"github.com/felixgeelhaar/llmschema/annotation"
	"github.com/felixgeelhaar/llmschema/signature"
)

// GenerateFunc converts one overload of a callable into a JSON Schema
// mapping describing its arguments, wrapped in the adapter's envelope.
//
// The overload is chosen by WithSelector (default: first). The method
// annotation comes from WithMethodAnnotation when given, otherwise from
// the registry, which synthesizes a covering default when nothing was
// registered. Applying the annotation fails if it does not cover every
// non-excluded argument of the selected signature.
//
// WithReferences is ignored for function schemas: argument types are
// always inlined, since strict tool schemas reject $ref.
func GenerateFunc(c *signature.Callable, opts ...Option) (Container, error) {
	s := NewSettings(opts...)
	out, err := generateFunc(c, s)
	if err != nil {
		s.logger.Error("function schema generation failed",
			F("callable", c.Name()), F("adapter", s.adapter.String()), F("error", err.Error()))
		return nil, err
	}
	s.logger.Debug("function schema generated",
		F("callable", c.Name()), F("adapter", s.adapter.String()))
	return out, nil
}

// ForFunc extracts a single-overload callable from fn and generates its
// schema. Argument names are synthesized unless names are given.
func ForFunc(name string, fn any, opts ...Option) (Container, error) {
	sig, err := signature.Extract(name, fn)
	if err != nil {
		return nil, err
	}
	return GenerateFunc(signature.NewCallable(name, sig), opts...)
}

func generateFunc(c *signature.Callable, s *Settings) (Container, error) {
	// Function schemas never factor references; argument types are
	// always inlined.
	s.referenceTypes = map[reflect.Type]struct{}{}

	sig, err := c.Select(s.selector)
	if err != nil {
		return nil, err
	}
	sig = sig.Clone()

	ma := s.methodAnnotation
	if ma == nil {
		ma = s.registry.LookupMethod(c.Name(), sig)
	}
	if err := ma.Apply(sig); err != nil {
		return nil, err
	}

	props := s.container()
	required := make([]string, 0, len(sig.Args))

	for _, arg := range sig.Args {
		if arg.LLMExclude {
			continue
		}

		at := arg.Type
		optional := at.Kind() == reflect.Pointer
		if optional {
			at = at.Elem()
		}

		def, err := generateField(at, s)
		if err != nil {
			return nil, err
		}

		// An optional wrapper always yields a nullable type; in OpenAI
		// mode a merely not-required argument does too, since every
		// included argument lands in the required list.
		if optional || (s.adapter.openAIMode() && !arg.Required) {
			makeNullable(def)
		}

		desc := arg.Description
		if desc == "" {
			desc = annotation.FallbackDescription(arg.Name)
		}
		def.Set("description", desc)

		if s.adapter.openAIMode() && arg.Enum != nil {
			norm, err := NormalizeEnum(arg.Enum, s.enumPolicy)
			if err != nil {
				return nil, err
			}
			def.Set("enum", norm)
		}

		props.Set(arg.Name, def)

		if s.adapter.openAIMode() || arg.Required {
			required = append(required, arg.Name)
		}
	}

	obj := s.container()
	obj.Set("type", "object")
	obj.Set("properties", props)
	obj.Set("required", required)
	if s.adapter.openAIMode() {
		obj.Set("additionalProperties", false)
	}

	name := ma.Name
	if name == "" {
		name = sig.Name
	}
	return wrap(obj, s, name, sig.Description), nil
}
