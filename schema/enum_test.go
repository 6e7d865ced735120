package schema

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// Mode implements Enumerator on a pointer receiver.
type Mode int

func (*Mode) EnumValues() []string { return []string{"fast", "slow"} }

func TestIsEnum(t *testing.T) {
	t.Run("value receiver", func(t *testing.T) {
		if !isEnum(reflect.TypeFor[Fruit]()) {
			t.Error("Fruit should be an enum")
		}
	})

	t.Run("pointer receiver", func(t *testing.T) {
		if !isEnum(reflect.TypeFor[Mode]()) {
			t.Error("Mode should be an enum")
		}
	})

	t.Run("plain types are not enums", func(t *testing.T) {
		if isEnum(reflect.TypeFor[string]()) {
			t.Error("string should not be an enum")
		}
		if isEnum(reflect.TypeFor[struct{ A int }]()) {
			t.Error("anonymous struct should not be an enum")
		}
	})
}

func TestEnumValues(t *testing.T) {
	got := enumValues(reflect.TypeFor[Mode]())
	want := []any{"fast", "slow"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("enumValues = %v, want %v", got, want)
	}
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"string", "red", "red"},
		{"bool", true, true},
		{"nil", nil, nil},
		{"int widens to int64", int(7), int64(7)},
		{"int32 widens to int64", int32(7), int64(7)},
		{"uint widens to uint64", uint(7), uint64(7)},
		{"float32 widens to float64", float32(1.5), float64(1.5)},
		{"stringer stringifies", time.Duration(0), "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeValue(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("NormalizeValue(%v) = %v (%T), want %v (%T)",
					tt.in, got, got, tt.want, tt.want)
			}
		})
	}

	t.Run("unsupported value fails", func(t *testing.T) {
		_, err := NormalizeValue(struct{ A int }{})
		var valErr *EnumValueError
		if !errors.As(err, &valErr) {
			t.Fatalf("error = %T, want *EnumValueError", err)
		}
	})
}

func TestNormalizeEnum(t *testing.T) {
	t.Run("dedupe keeps first occurrence", func(t *testing.T) {
		got, err := NormalizeEnum([]any{"a", "a", "b"}, EnumDedupe)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got, []any{"a", "b"}) {
			t.Errorf("NormalizeEnum = %v, want [a b]", got)
		}
	})

	t.Run("dedupe preserves first-appearance order", func(t *testing.T) {
		got, err := NormalizeEnum([]any{"b", "a", "b", "c", "a"}, EnumDedupe)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got, []any{"b", "a", "c"}) {
			t.Errorf("NormalizeEnum = %v, want [b a c]", got)
		}
	})

	t.Run("duplicates collide after widening", func(t *testing.T) {
		got, err := NormalizeEnum([]any{int(1), int64(1), int32(1)}, EnumDedupe)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got, []any{int64(1)}) {
			t.Errorf("NormalizeEnum = %v, want [1]", got)
		}
	})

	t.Run("error policy rejects duplicates", func(t *testing.T) {
		_, err := NormalizeEnum([]any{"a", "a"}, EnumError)
		var dupErr *EnumDuplicateError
		if !errors.As(err, &dupErr) {
			t.Fatalf("error = %T, want *EnumDuplicateError", err)
		}
		if dupErr.Value != "a" {
			t.Errorf("Value = %v, want %q", dupErr.Value, "a")
		}
	})

	t.Run("unsupported value aborts normalization", func(t *testing.T) {
		_, err := NormalizeEnum([]any{"ok", []int{1}}, EnumDedupe)
		var valErr *EnumValueError
		if !errors.As(err, &valErr) {
			t.Fatalf("error = %T, want *EnumValueError", err)
		}
	})
}
