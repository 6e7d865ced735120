// Package schema generates JSON Schema mappings from Go types and
// function signatures for LLM structured output and tool calling.
//
// # Basic Usage
//
// Generate a plain JSON Schema from a Go type:
//
//	type Query struct {
//	    Text       string `json:"text"`
//	    MaxResults *int   `json:"max_results"`
//	}
//
//	out, err := schema.For[Query]()
//
// Pointer fields are optional: Standard mode leaves them out of the
// required list. OpenAI mode requires every field and signals optionality
// through nullable typing instead:
//
//	out, err := schema.For[Query](schema.WithAdapter(schema.OpenAI))
//	// required == ["text", "max_results"]
//	// max_results type == ["integer", "null"]
//
// # Adapters
//
// The adapter controls the structural rules and the envelope:
//
//   - Standard: plain JSON Schema, no envelope
//   - OpenAI: {"name", "description", "strict": true, "schema": ...}
//   - OpenAITools: {"type": "function", "name", ..., "parameters": ...}
//   - Gemini: passthrough placeholder, identical to Standard
//
// # References
//
// With WithReferences, nested composite types are collected once into a
// $defs section and referenced by $ref instead of being inlined at every
// use site.
//
// # Annotations
//
// Descriptions, display names, and per-field enum hints come from the
// annotation registry; see the annotation package. The generator always
// resolves annotations through the registry, which synthesizes defaults
// for unannotated types.
//
// # Enumerations
//
// Types implementing Enumerator emit {"type": "string", "enum": [...]}
// with values in declaration order.
package schema
