package mcpadapter

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/repetition"
)

// Evaluator runs the full evaluation pipeline.
type Evaluator interface {
	Execute(ctx context.Context, evalCtx models.EvaluationContext) models.EvaluationResult
}

// EvaluateInput is the MCP tool input schema for full pipeline evaluation.
type EvaluateInput struct {
	EventID string `json:"event_id" jsonschema:"unique event identifier"`
	Query   string `json:"user_query" jsonschema:"user's original query"`
	Answer  string `json:"answer" jsonschema:"agent response to evaluate"`
	Context string `json:"context,omitempty" jsonschema:"optional context or retrieved documents"`
}

// CheckRepetitionInput is the MCP tool input schema for the repetition scan.
type CheckRepetitionInput struct {
	Text string `json:"text" jsonschema:"text to scan for repeated words"`
}

// NewEvaluateHandler returns a tool handler that uses the given executor.
// Pass the returned function to mcp.AddTool.
func NewEvaluateHandler(exec Evaluator) func(context.Context, *mcp.CallToolRequest, EvaluateInput) (*mcp.CallToolResult, models.EvaluationResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input EvaluateInput) (*mcp.CallToolResult, models.EvaluationResult, error) {
		return EvaluateResponse(ctx, exec, req, input)
	}
}

// EvaluateResponse runs the full evaluation pipeline and returns the result.
func EvaluateResponse(
	ctx context.Context,
	exec Evaluator,
	req *mcp.CallToolRequest,
	input EvaluateInput,
) (*mcp.CallToolResult, models.EvaluationResult, error) {
	evalCtx := models.EvaluationContext{
		RequestID: input.EventID,
		Query:     input.Query,
		Context:   input.Context,
		Answer:    input.Answer,
		CreatedAt: time.Now(),
	}

	result := exec.Execute(ctx, evalCtx)
	return nil, result, nil
}

// CheckRepetition scans the text without touching the pipeline. It needs no
// executor, so the tool is available even when judges are not configured.
func CheckRepetition(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CheckRepetitionInput,
) (*mcp.CallToolResult, models.RepetitionResponse, error) {
	return nil, models.NewRepetitionResponse(repetition.Analyze(input.Text)), nil
}

// NewServer registers both tools on a fresh MCP server.
func NewServer(name, version string, exec Evaluator) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    name,
			Version: version,
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_repetition",
		Description: "Find the longest run of words without a repeated word in a text",
	}, CheckRepetition)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "evaluate_response",
		Description: "Evaluate an AI agent response for repetition, vocabulary, format and the configured LLM judges",
	}, NewEvaluateHandler(exec))

	return server
}
