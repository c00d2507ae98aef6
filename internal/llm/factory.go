package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/commupath/commupath/internal/model"
)

// NewProvider creates a generative provider based on configuration.
func NewProvider(ctx context.Context, config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "gemini", "":
		return NewGeminiProvider(ctx, config)

	case "openai":
		return NewOpenAIProvider(config)

	default:
		return nil, fmt.Errorf("unknown generative provider: %s (supported: gemini, openai)", config.Provider)
	}
}

// ConfigFromModel converts model.GenerativeConfig to llm.Config.
func ConfigFromModel(mc model.GenerativeConfig) Config {
	return Config{
		Provider:    mc.Provider,
		Model:       mc.Model,
		VisionModel: mc.VisionModel,
		APIKey:      mc.APIKey,
		BaseURL:     mc.BaseURL,
		Timeout:     mc.Timeout,
		MaxTokens:   mc.MaxTokens,
	}
}
