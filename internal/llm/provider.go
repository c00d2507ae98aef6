package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider is the interface to a generative content service. Responses are
// JSON documents constrained by the request schema; callers must still
// validate required fields before use.
type Provider interface {
	// Name returns the provider name
	Name() string

	// GenerateJSON runs a text prompt and returns the raw JSON response body
	GenerateJSON(ctx context.Context, req Request) ([]byte, error)

	// GenerateVisionJSON runs a multimodal (image + text) prompt
	GenerateVisionJSON(ctx context.Context, req VisionRequest) ([]byte, error)
}

// Request is a schema-constrained text generation request.
type Request struct {
	// Prompt is the full user prompt
	Prompt string

	// Schema constrains the response shape
	Schema *Schema

	// Temperature, 0 means provider default
	Temperature float32

	// MaxTokens limits the response length, 0 means provider default
	MaxTokens int
}

// VisionRequest adds an image to a generation request.
type VisionRequest struct {
	Request

	// Image is the raw image payload
	Image []byte

	// MIMEType of the image, e.g. "image/jpeg"
	MIMEType string
}

// Schema is a provider-neutral subset of JSON Schema, converted to each
// provider's native representation at call time.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// Object is a shorthand constructor for object schemas.
func Object(properties map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: "object", Properties: properties, Required: required}
}

// String builds a string property schema.
func String(description string) *Schema {
	return &Schema{Type: "string", Description: description}
}

// StringEnum builds a string schema constrained to the given values.
func StringEnum(description string, values ...string) *Schema {
	return &Schema{Type: "string", Description: description, Enum: values}
}

// Number builds a number property schema.
func Number(description string) *Schema {
	return &Schema{Type: "number", Description: description}
}

// Integer builds an integer property schema.
func Integer(description string) *Schema {
	return &Schema{Type: "integer", Description: description}
}

// StringArray builds an array-of-strings schema.
func StringArray(description string) *Schema {
	return &Schema{Type: "array", Description: description, Items: &Schema{Type: "string"}}
}

// JSON renders the schema as JSON Schema text, used by providers without a
// native schema parameter.
func (s *Schema) JSON() string {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Decode unmarshals a provider response into v, treating any parse failure
// as a malformed-response error for the caller to route into its fallback.
func Decode(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("malformed generative response: %w", err)
	}
	return nil
}

// Config holds generative provider configuration.
type Config struct {
	// Provider name: "gemini" or "openai"
	Provider string

	// Model for text generation
	Model string

	// VisionModel for image understanding (falls back to Model)
	VisionModel string

	// APIKey for the provider
	APIKey string

	// BaseURL for custom endpoints (tests, proxies)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}
