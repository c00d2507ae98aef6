package llm

import (
	"context"
	"fmt"
)

// unavailableProvider satisfies Provider when no real provider could be
// constructed (missing key, unknown name). Every call fails with the
// construction error, which routes callers onto their fallback tiers
// instead of crashing at startup.
type unavailableProvider struct {
	err error
}

// NewUnavailable wraps a construction error as a Provider.
func NewUnavailable(err error) Provider {
	return &unavailableProvider{err: err}
}

func (p *unavailableProvider) Name() string {
	return "unavailable"
}

func (p *unavailableProvider) GenerateJSON(_ context.Context, _ Request) ([]byte, error) {
	return nil, fmt.Errorf("generative provider unavailable: %w", p.err)
}

func (p *unavailableProvider) GenerateVisionJSON(_ context.Context, _ VisionRequest) ([]byte, error) {
	return nil, fmt.Errorf("generative provider unavailable: %w", p.err)
}
