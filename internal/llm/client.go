package llm

import (
	"context"
)

// LLMClient invokes a hosted model. Judges depend on this interface so tests
// can run without network access.
type LLMClient interface {
	InvokeModel(ctx context.Context, request LLMRequest) (*LLMResponse, error)
	InvokeModelWithRetry(ctx context.Context, request LLMRequest) (*LLMResponse, error)
}
