package schema

import "reflect"

// gatherReferenceTypes walks the field graph of root and collects every
// nested composite type eligible for $defs factoring. The root type stays
// inlined at the top level; it enters the map only when its own field
// graph references it, so self-referencing roots resolve through $defs
// instead of recursing.
//
// Types are marked on entry, before their own fields are walked, so the
// walk terminates on cyclic type graphs.
func gatherReferenceTypes(root reflect.Type) map[reflect.Type]struct{} {
	refs := make(map[reflect.Type]struct{})
	gatherFields(deref(root), refs)
	return refs
}

func gatherFields(t reflect.Type, refs map[reflect.Type]struct{}) {
	if t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || jsonFieldName(f) == "" {
			continue
		}
		ft := unwrap(f.Type)
		if !isComposite(ft) {
			continue
		}
		if _, seen := refs[ft]; seen {
			continue
		}
		refs[ft] = struct{}{}
		gatherFields(ft, refs)
	}
}

// unwrap strips pointer, slice, and array wrappers down to the element type.
func unwrap(t reflect.Type) reflect.Type {
	for {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array:
			t = t.Elem()
		default:
			return t
		}
	}
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// isComposite reports whether t is a structured type with named fields,
// as opposed to primitives, arrays, maps, and enumerations.
func isComposite(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && !isEnum(t)
}
