package llm

// LLMRequest is a single-turn prompt. System is optional.
type LLMRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

type LLMResponse struct {
	Content    string
	StopReason string
}
