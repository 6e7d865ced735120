package schema

import (
	"testing"
)

func TestAdapterString(t *testing.T) {
	tests := []struct {
		adapter Adapter
		want    string
	}{
		{Standard, "standard"},
		{OpenAI, "openai"},
		{OpenAITools, "openai_tools"},
		{Gemini, "gemini"},
		{Adapter(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.adapter.String(); got != tt.want {
			t.Errorf("Adapter(%d).String() = %q, want %q", tt.adapter, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	type Payload struct {
		Text string `json:"text"`
	}

	t.Run("standard passes inner schema through", func(t *testing.T) {
		out, err := For[Payload]()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if typ, _ := out.Get("type"); typ != "object" {
			t.Errorf("type = %v, want %q", typ, "object")
		}
		if _, ok := out.Get("schema"); ok {
			t.Error("standard output must not carry an envelope")
		}
	})

	t.Run("openai envelope shape", func(t *testing.T) {
		out, err := For[Payload](WithAdapter(OpenAI))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []string{"name", "description", "strict", "schema"}
		got := out.Keys()
		if len(got) != len(want) {
			t.Fatalf("envelope keys = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("envelope keys = %v, want %v", got, want)
			}
		}
		if strict, _ := out.Get("strict"); strict != true {
			t.Errorf("strict = %v, want true", strict)
		}
	})

	t.Run("openai tools envelope shape", func(t *testing.T) {
		out, err := For[Payload](WithAdapter(OpenAITools))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if typ, _ := out.Get("type"); typ != "function" {
			t.Errorf("type = %v, want %q", typ, "function")
		}
		if _, ok := out.Get("parameters"); !ok {
			t.Error("expected 'parameters' member")
		}
		if _, ok := out.Get("schema"); ok {
			t.Error("tools envelope must not carry 'schema'")
		}
	})

	t.Run("openai and openai tools share inner content", func(t *testing.T) {
		rf, err := For[Payload](WithAdapter(OpenAI))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tool, err := For[Payload](WithAdapter(OpenAITools))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		schemaJSON := mustJSON(t, sub(t, rf, "schema"))
		paramsJSON := mustJSON(t, sub(t, tool, "parameters"))
		if schemaJSON != paramsJSON {
			t.Errorf("inner content diverges\n  schema: %s\n  params: %s", schemaJSON, paramsJSON)
		}
	})
}
