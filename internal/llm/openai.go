package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider on the OpenAI Chat Completions API.
// OpenAI has no response-schema parameter in JSON mode, so the schema is
// embedded in the prompt and conformance is enforced by the caller's parse.
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// GenerateJSON runs a text prompt in JSON mode.
func (p *OpenAIProvider) GenerateJSON(ctx context.Context, req Request) ([]byte, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPromptFor(req.Schema),
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: req.Prompt,
		},
	}
	return p.complete(ctx, messages, req)
}

// GenerateVisionJSON runs a multimodal prompt with an inline image.
func (p *OpenAIProvider) GenerateVisionJSON(ctx context.Context, req VisionRequest) ([]byte, error) {
	if len(req.Image) == 0 {
		return nil, fmt.Errorf("image payload is empty")
	}
	mime := req.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(req.Image))

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPromptFor(req.Schema),
		},
		{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: dataURL, Detail: openai.ImageURLDetailAuto},
				},
				{
					Type: openai.ChatMessagePartTypeText,
					Text: req.Prompt,
				},
			},
		},
	}
	return p.complete(ctx, messages, req.Request)
}

func (p *OpenAIProvider) complete(ctx context.Context, messages []openai.ChatCompletionMessage, req Request) ([]byte, error) {
	model := p.config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 2048
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	chatReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return []byte(strings.TrimSpace(resp.Choices[0].Message.Content)), nil
}

func systemPromptFor(schema *Schema) string {
	if schema == nil {
		return "Respond with a single JSON object."
	}
	return "Respond with a single JSON object conforming exactly to this JSON Schema:\n" + schema.JSON()
}
