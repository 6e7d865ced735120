// Package call binds JSON tool-call payloads to Go function arguments and
// invokes the underlying function.
//
// Bind coerces a payload produced by an LLM against a signature: visible
// arguments are decoded from the payload, excluded arguments are filled
// from the out-of-band map, defaults cover absent optional arguments, and
// enum-constrained arguments are validated against their normalized enum.
// Invoke runs the function with the bound arguments, restoring a leading
// context.Context parameter when the signature declares one.
package call

import (
	"context"
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"

	"github.com/felixgeelhaar/llmschema/schema"
	"github.com/felixgeelhaar/llmschema/signature"
)

// ArgumentError reports a payload argument that could not be bound.
type ArgumentError struct {
	Arg    string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("llmschema: argument %q: %s", e.Arg, e.Reason)
}

// Bind coerces a JSON payload into the argument list for sig, in call
// order. Excluded arguments are taken from outOfBand.
func Bind(sig *signature.Signature, payload []byte, outOfBand map[string]any) ([]reflect.Value, error) {
	var raw map[string]json.RawMessage
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &raw); err != nil {
			return nil, fmt.Errorf("llmschema: parsing call payload: %w", err)
		}
	}

	args := make([]reflect.Value, 0, len(sig.Args))
	for _, arg := range sig.Args {
		v, err := bindArg(arg, raw, outOfBand)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

func bindArg(arg *signature.Arg, raw map[string]json.RawMessage, outOfBand map[string]any) (reflect.Value, error) {
	if arg.LLMExclude {
		if v, ok := outOfBand[arg.Name]; ok {
			rv := reflect.ValueOf(v)
			if !rv.IsValid() || !rv.Type().AssignableTo(arg.Type) {
				return reflect.Value{}, &ArgumentError{Arg: arg.Name, Reason: fmt.Sprintf("out-of-band value %T is not assignable to %s", v, arg.Type)}
			}
			return rv, nil
		}
		if arg.HasDefault {
			return defaultValue(arg)
		}
		return reflect.Value{}, &ArgumentError{Arg: arg.Name, Reason: "excluded argument not supplied out of band"}
	}

	data, ok := raw[arg.Name]
	if !ok {
		if arg.HasDefault {
			return defaultValue(arg)
		}
		if arg.Required {
			return reflect.Value{}, &ArgumentError{Arg: arg.Name, Reason: "missing required argument"}
		}
		return reflect.Zero(arg.Type), nil
	}

	ptr := reflect.New(arg.Type)
	if err := json.Unmarshal(data, ptr.Interface()); err != nil {
		return reflect.Value{}, &ArgumentError{Arg: arg.Name, Reason: fmt.Sprintf("decoding as %s: %v", arg.Type, err)}
	}
	v := ptr.Elem()

	if arg.Enum != nil {
		if err := validateEnum(arg, v); err != nil {
			return reflect.Value{}, err
		}
	}
	return v, nil
}

func defaultValue(arg *signature.Arg) (reflect.Value, error) {
	rv := reflect.ValueOf(arg.Default)
	if !rv.IsValid() {
		return reflect.Zero(arg.Type), nil
	}
	if !rv.Type().AssignableTo(arg.Type) {
		if rv.Type().ConvertibleTo(arg.Type) {
			return rv.Convert(arg.Type), nil
		}
		return reflect.Value{}, &ArgumentError{Arg: arg.Name, Reason: fmt.Sprintf("default value %T is not assignable to %s", arg.Default, arg.Type)}
	}
	return rv, nil
}

// validateEnum checks a bound value against the argument's normalized
// enum. Duplicates in the declared enum are deduplicated here regardless
// of the generation-time policy; binding only cares about membership.
func validateEnum(arg *signature.Arg, v reflect.Value) error {
	allowed, err := schema.NormalizeEnum(arg.Enum, schema.EnumDedupe)
	if err != nil {
		return err
	}
	got, err := schema.NormalizeValue(deref(v).Interface())
	if err != nil {
		return &ArgumentError{Arg: arg.Name, Reason: err.Error()}
	}
	for _, a := range allowed {
		if a == got {
			return nil
		}
	}
	return &ArgumentError{Arg: arg.Name, Reason: fmt.Sprintf("value %v is not one of %v", got, allowed)}
}

func deref(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

// Invoke binds the payload and calls the signature's function. When the
// function returns an error as its last result, a non-nil error aborts
// the call; the remaining results are returned otherwise.
func Invoke(ctx context.Context, sig *signature.Signature, payload []byte, outOfBand map[string]any) ([]reflect.Value, error) {
	if !sig.Func.IsValid() {
		return nil, fmt.Errorf("llmschema: signature %q has no bound function", sig.Name)
	}

	args, err := Bind(sig, payload, outOfBand)
	if err != nil {
		return nil, err
	}
	if sig.HasContext() {
		args = append([]reflect.Value{reflect.ValueOf(ctx)}, args...)
	}

	results := sig.Func.Call(args)

	if n := len(results); n > 0 && results[n-1].Type() == errType {
		if errVal := results[n-1].Interface(); errVal != nil {
			return nil, errVal.(error)
		}
		results = results[:n-1]
	}
	return results, nil
}

var errType = reflect.TypeOf((*error)(nil)).Elem()
