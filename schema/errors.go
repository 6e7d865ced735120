package schema

import (
	"fmt"
	"reflect"
)

// FieldError reports an annotation whose Parameters map names a field the
// annotated type does not declare.
type FieldError struct {
	Type  reflect.Type
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("llmschema: annotation for %s references unknown field %q", e.Type, e.Field)
}

// EnumValueError reports an enum candidate that does not normalize to a
// JSON scalar.
type EnumValueError struct {
	Value any
}

func (e *EnumValueError) Error() string {
	return fmt.Sprintf("llmschema: enum value %v (%T) is not a JSON scalar", e.Value, e.Value)
}

// EnumDuplicateError reports a repeated enum value under the EnumError
// policy.
type EnumDuplicateError struct {
	Value any
}

func (e *EnumDuplicateError) Error() string {
	return fmt.Sprintf("llmschema: duplicate enum value %v", e.Value)
}
