package llmschema

import (
	"encoding/json"
	"testing"
)

type benchProfile struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Age       int      `json:"age"`
	Score     float64  `json:"score"`
	Active    bool     `json:"active"`
	Nickname  *string  `json:"nickname"`
	Interests []string `json:"interests"`
}

type benchNested struct {
	Owner   benchProfile   `json:"owner"`
	Members []benchProfile `json:"members"`
	Title   string         `json:"title"`
}

func BenchmarkFor(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := For[benchProfile](); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkForOpenAI(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := For[benchProfile](WithAdapter(OpenAI)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkForNestedWithReferences(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := For[benchNested](WithReferences(true)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkForFunc(b *testing.B) {
	fn := func(query string, limit *int) ([]string, error) { return nil, nil }
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ForFunc("search", fn, WithAdapter(OpenAITools)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMarshal(b *testing.B) {
	out, err := For[benchNested](WithReferences(true))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := json.Marshal(out); err != nil {
			b.Fatal(err)
		}
	}
}
