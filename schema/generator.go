package schema

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/felixgeelhaar/llmschema/annotation"
)

// Generate converts a Go type into a JSON Schema mapping, applying the
// configured adapter's structural rules and wrapping the result in the
// adapter's envelope.
//
// Known limitation: a self-referencing type generated without
// WithReferences recurses until the stack overflows. Enable references for
// cyclic type graphs.
func Generate(t reflect.Type, opts ...Option) (Container, error) {
	s := NewSettings(opts...)
	out, err := generate(t, s)
	if err != nil {
		s.logger.Error("schema generation failed",
			F("type", t.String()), F("adapter", s.adapter.String()), F("error", err.Error()))
		return nil, err
	}
	s.logger.Debug("schema generated",
		F("type", t.String()), F("adapter", s.adapter.String()))
	return out, nil
}

// For generates a schema for the type parameter T.
func For[T any](opts ...Option) (Container, error) {
	return Generate(reflect.TypeFor[T](), opts...)
}

func generate(t reflect.Type, s *Settings) (Container, error) {
	if t == nil {
		return nil, fmt.Errorf("llmschema: cannot generate schema for nil type")
	}
	t = deref(t)

	if s.useReferences {
		s.referenceTypes = gatherReferenceTypes(t)
	} else {
		s.referenceTypes = map[reflect.Type]struct{}{}
	}

	var inner Container
	var err error
	if t.Kind() == reflect.Struct && !isEnum(t) {
		inner, err = generateObject(t, s, true)
	} else {
		inner, err = generateField(t, s)
	}
	if err != nil {
		return nil, err
	}

	ann := s.registry.LookupType(t)
	return wrap(inner, s, ann.GetName(), ann.GetDescription()), nil
}

// generateObject emits the object schema for a composite type: one
// property per exported field in declaration order, a required list per
// the adapter's policy, and, at the top level with references enabled, a
// $defs section for every gathered nested type.
func generateObject(t reflect.Type, s *Settings, topLevel bool) (Container, error) {
	ann := s.registry.LookupType(t)
	if err := checkAnnotatedFields(t, ann); err != nil {
		return nil, err
	}

	props := s.container()
	required := make([]string, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := jsonFieldName(f)
		if name == "" {
			continue
		}

		ft := f.Type
		optional := ft.Kind() == reflect.Pointer
		if optional {
			ft = ft.Elem()
		}

		// Standard/Gemini: optional fields stay out of the required
		// list. OpenAI mode requires every field and signals
		// optionality through nullable typing instead.
		if s.adapter.openAIMode() || !optional {
			required = append(required, name)
		}

		desc := ann.FieldDescription(name)

		if _, ok := s.referenceTypes[ft]; ok && s.useReferences {
			props.Set(name, referenceProperty(ft, s, optional, desc))
			continue
		}

		def, err := generateField(ft, s)
		if err != nil {
			return nil, err
		}
		if s.adapter.openAIMode() && optional {
			makeNullable(def)
		}
		def.Set("description", desc)
		if s.adapter.openAIMode() {
			if enum := ann.FieldEnum(name); enum != nil {
				def.Set("enum", append([]any(nil), enum...))
			}
		}
		props.Set(name, def)
	}

	obj := s.container()
	obj.Set("type", "object")
	obj.Set("properties", props)
	obj.Set("required", required)
	if s.adapter.openAIMode() {
		obj.Set("additionalProperties", false)
		if !topLevel {
			obj.Set("description", ann.GetDescription())
		}
	}

	if topLevel && s.useReferences && len(s.referenceTypes) > 0 {
		defs, err := generateDefs(s)
		if err != nil {
			return nil, err
		}
		obj.Set("$defs", defs)
	}

	return obj, nil
}

// referenceProperty emits a $ref property. An optional field in OpenAI
// mode is wrapped in anyOf with a null branch, since OpenAI rejects a bare
// nullable $ref; otherwise the description is attached on the ref itself.
func referenceProperty(t reflect.Type, s *Settings, optional bool, desc string) Container {
	ref := s.container()
	ref.Set("$ref", s.referencePath+refName(t))

	if optional && s.adapter.openAIMode() {
		null := s.container()
		null.Set("type", "null")
		wrapper := s.container()
		wrapper.Set("description", desc)
		wrapper.Set("anyOf", []any{ref, null})
		return wrapper
	}

	ref.Set("description", desc)
	return ref
}

// generateDefs emits one flat definition per gathered reference type, in
// stable name order. Definitions may reference each other by $ref but are
// never inlined into one another.
func generateDefs(s *Settings) (Container, error) {
	types := make([]reflect.Type, 0, len(s.referenceTypes))
	for rt := range s.referenceTypes {
		types = append(types, rt)
	}
	sort.Slice(types, func(i, j int) bool { return refName(types[i]) < refName(types[j]) })

	defs := s.container()
	for _, rt := range types {
		def, err := generateObject(rt, s, false)
		if err != nil {
			return nil, err
		}
		defs.Set(refName(rt), def)
	}
	return defs, nil
}

// generateField classifies a field type into its base JSON type and emits
// the corresponding definition.
func generateField(t reflect.Type, s *Settings) (Container, error) {
	t = deref(t)

	if isEnum(t) {
		c := s.container()
		c.Set("type", "string")
		c.Set("enum", enumValues(t))
		return c, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return scalar(s, "boolean"), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return scalar(s, "integer"), nil
	case reflect.Float32, reflect.Float64:
		return scalar(s, "number"), nil
	case reflect.String:
		return scalar(s, "string"), nil
	case reflect.Slice, reflect.Array:
		return generateArray(t, s)
	case reflect.Struct:
		return generateObject(t, s, false)
	case reflect.Map, reflect.Interface:
		return scalar(s, "object"), nil
	default:
		// Anything unclassified is assumed to be a nested composite.
		return scalar(s, "object"), nil
	}
}

func generateArray(t reflect.Type, s *Settings) (Container, error) {
	elem := deref(t.Elem())

	c := s.container()
	c.Set("type", "array")

	if _, ok := s.referenceTypes[elem]; ok && s.useReferences {
		ref := s.container()
		ref.Set("$ref", s.referencePath+refName(elem))
		c.Set("items", ref)
		return c, nil
	}

	items, err := generateField(elem, s)
	if err != nil {
		return nil, err
	}
	c.Set("items", items)
	return c, nil
}

func scalar(s *Settings, base string) Container {
	c := s.container()
	c.Set("type", base)
	return c
}

// makeNullable rewrites a scalar "type" to the two-element form
// [base, "null"]; an existing type array gets "null" appended if absent.
func makeNullable(def Container) {
	tv, ok := def.Get("type")
	if !ok {
		return
	}
	switch x := tv.(type) {
	case string:
		def.Set("type", []any{x, "null"})
	case []any:
		for _, v := range x {
			if v == "null" {
				return
			}
		}
		def.Set("type", append(x, "null"))
	}
}

// checkAnnotatedFields cross-checks the annotation's Parameters keys
// against the type's real property names. A key naming a field the type
// does not declare is a configuration error.
func checkAnnotatedFields(t reflect.Type, ann *annotation.Annotation) error {
	if ann == nil || len(ann.Parameters) == 0 {
		return nil
	}

	fields := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if name := jsonFieldName(f); name != "" {
			fields[name] = struct{}{}
		}
	}

	keys := make([]string, 0, len(ann.Parameters))
	for k := range ann.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			return &FieldError{Type: t, Field: k}
		}
	}
	return nil
}

// jsonFieldName resolves the property name for a struct field, honoring
// the json tag. Returns "" for skipped fields.
func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	if tag != "" {
		if name := strings.Split(tag, ",")[0]; name != "" {
			return name
		}
	}
	return f.Name
}

func refName(t reflect.Type) string {
	if n := t.Name(); n != "" {
		return n
	}
	return t.String()
}
