// Package openai converts generated schema envelopes into request types
// for the github.com/sashabaranov/go-openai client.
package openai

import (
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/felixgeelhaar/llmschema/schema"
)

// ResponseFormat converts an OpenAI-mode envelope (schema.OpenAI adapter)
// into a chat completion response format for structured output.
func ResponseFormat(env schema.Container) (*openai.ChatCompletionResponseFormat, error) {
	name, desc, err := envelopeMeta(env)
	if err != nil {
		return nil, err
	}
	inner, ok := envContainer(env, "schema")
	if !ok {
		return nil, fmt.Errorf("llmschema: envelope has no %q member; generate with the OpenAI adapter", "schema")
	}

	return &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
		JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
			Name:        name,
			Description: desc,
			Schema:      inner,
			Strict:      true,
		},
	}, nil
}

// Tool converts an OpenAI tools envelope (schema.OpenAITools adapter) into
// a chat completion tool definition.
func Tool(env schema.Container) (openai.Tool, error) {
	name, desc, err := envelopeMeta(env)
	if err != nil {
		return openai.Tool{}, err
	}
	inner, ok := envContainer(env, "parameters")
	if !ok {
		return openai.Tool{}, fmt.Errorf("llmschema: envelope has no %q member; generate with the OpenAITools adapter", "parameters")
	}

	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        name,
			Description: desc,
			Strict:      true,
			Parameters:  inner,
		},
	}, nil
}

func envelopeMeta(env schema.Container) (name, desc string, err error) {
	n, ok := env.Get("name")
	if !ok {
		return "", "", fmt.Errorf("llmschema: not an adapter envelope: missing name")
	}
	name, _ = n.(string)
	if d, ok := env.Get("description"); ok {
		desc, _ = d.(string)
	}
	return name, desc, nil
}

func envContainer(env schema.Container, key string) (schema.Container, bool) {
	v, ok := env.Get(key)
	if !ok {
		return nil, false
	}
	c, ok := v.(schema.Container)
	return c, ok
}
