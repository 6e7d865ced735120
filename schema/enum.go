package schema

import (
	"fmt"
	"reflect"
)

// Enumerator is implemented by types whose values form a closed set of
// string constants. It is the enum oracle for schema generation: a field
// whose type implements Enumerator is emitted as a string with an enum
// constraint listing the values in declaration order.
type Enumerator interface {
	EnumValues() []string
}

var enumeratorType = reflect.TypeOf((*Enumerator)(nil)).Elem()

func isEnum(t reflect.Type) bool {
	return t.Implements(enumeratorType) || reflect.PointerTo(t).Implements(enumeratorType)
}

func enumValues(t reflect.Type) []any {
	var e Enumerator
	if t.Implements(enumeratorType) {
		e = reflect.New(t).Elem().Interface().(Enumerator)
	} else {
		e = reflect.New(t).Interface().(Enumerator)
	}
	vals := e.EnumValues()
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

// NormalizeValue converts an enum candidate to its JSON-scalar form.
// Strings, booleans, integers, floats, and nil pass through (integers
// widen to int64, unsigned to uint64, floats to float64); values
// implementing fmt.Stringer stringify. Anything else is an EnumValueError.
func NormalizeValue(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return x, nil
	case bool:
		return x, nil
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return uint64(x), nil
	case uint8:
		return uint64(x), nil
	case uint16:
		return uint64(x), nil
	case uint32:
		return uint64(x), nil
	case uint64:
		return x, nil
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	case fmt.Stringer:
		return x.String(), nil
	default:
		return nil, &EnumValueError{Value: v}
	}
}

// NormalizeEnum converts candidate enum values to JSON scalars and applies
// the duplicate policy: EnumDedupe keeps the first occurrence of each
// normalized value and drops repeats; EnumError fails on the first repeat.
// First-appearance order is preserved.
func NormalizeEnum(values []any, policy EnumPolicy) ([]any, error) {
	out := make([]any, 0, len(values))
	seen := make(map[any]struct{}, len(values))

	for _, v := range values {
		n, err := NormalizeValue(v)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[n]; dup {
			if policy == EnumError {
				return nil, &EnumDuplicateError{Value: n}
			}
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	return out, nil
}
