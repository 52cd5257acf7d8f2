package models

import (
	"time"
)

type Verdict string

const (
	VerdictPass   Verdict = "pass"
	VerdictFail   Verdict = "fail"
	VerdictReview Verdict = "review"
)

type EventType string

const (
	EventTypeAgentResponse EventType = "agent_response"
	EventTypeAgentError    EventType = "agent_error"
)

type Agent struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Version string `json:"version"`
}

type Interaction struct {
	UserQuery string `json:"user_query"`
	Context   string `json:"context"`
	Answer    string `json:"answer"`
}

// Input message
type EvaluationRequest struct {
	EventID     string      `json:"event_id"`
	EventType   EventType   `json:"event_type"`
	Agent       Agent       `json:"agent"`
	Interaction Interaction `json:"interaction"`
}

// Normalized internal object
type EvaluationContext struct {
	RequestID string    `json:"request_id" jsonschema:"required,description=Unique event identifier"`
	Query     string    `json:"user_query" jsonschema:"required,description=User's original query"`
	Context   string    `json:"context,omitempty" jsonschema:"description=Optional context or retrieved documents"`
	Answer    string    `json:"answer" jsonschema:"required,description=Agent response to evaluate"`
	CreatedAt time.Time `json:"created_at" jsonschema:"description=Time when the evaluation context was created"`
}

// Normalize maps a wire request onto the context the pipeline works with.
func (r EvaluationRequest) Normalize() EvaluationContext {
	return EvaluationContext{
		RequestID: r.EventID,
		Query:     r.Interaction.UserQuery,
		Context:   r.Interaction.Context,
		Answer:    r.Interaction.Answer,
		CreatedAt: time.Now(),
	}
}

// One evaluator's output
type StageResult struct {
	Name     string        `json:"name"`
	Score    float64       `json:"score"`
	Reason   string        `json:"reason"`
	Duration time.Duration `json:"duration_ns"`
}

// Final output emitted to the results stream
type EvaluationResult struct {
	ID         string        `json:"id"`
	Stages     []StageResult `json:"stages"`
	Confidence float64       `json:"confidence"`
	Verdict    Verdict       `json:"verdict"`
}

type RepetitionRequest struct {
	Text string `json:"text"`
}

type RepetitionResponse struct {
	TokenCount      int     `json:"token_count"`
	DistinctCount   int     `json:"distinct_count"`
	LongestRun      int     `json:"longest_run"`
	WindowStart     int     `json:"window_start"`
	WindowEnd       int     `json:"window_end"`
	Phrase          string  `json:"phrase"`
	RepetitionScore float64 `json:"repetition_score"`
}
