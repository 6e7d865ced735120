package schema

// wrap applies the adapter envelope to a generated inner schema. Standard
// and Gemini pass the inner schema through unchanged; the OpenAI adapters
// share identical inner content and differ only in envelope shape.
func wrap(inner Container, s *Settings, name, description string) Container {
	switch s.adapter {
	case OpenAI:
		env := s.container()
		env.Set("name", name)
		env.Set("description", description)
		env.Set("strict", true)
		env.Set("schema", inner)
		return env
	case OpenAITools:
		env := s.container()
		env.Set("type", "function")
		env.Set("name", name)
		env.Set("description", description)
		env.Set("strict", true)
		env.Set("parameters", inner)
		return env
	default:
		return inner
	}
}
