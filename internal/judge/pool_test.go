package judge

import (
	"context"
	"testing"

	"github.com/povarna/generative-ai-agents/repetition-agent/internal/config"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/repetition-agent/internal/models"
	"github.com/rs/zerolog"
)

func TestJudgePool_BuildFromConfig_Success(t *testing.T) {
	logger := zerolog.Nop()
	pool := NewJudgePool(&MockLLMClient{}, &logger)

	judges, err := pool.BuildFromConfig(config.Judges{
		Evaluators: []config.JudgeConfiguration{
			judgeConfig("repetition", "Score: {{.Answer}}", true),
			judgeConfig("conciseness", "Score: {{.Query}}", false),
		},
	})
	if err != nil {
		t.Fatalf("BuildFromConfig failed: %v", err)
	}
	if len(judges) != 2 {
		t.Errorf("Expected 2 judges, got %d", len(judges))
	}
}

func TestJudgePool_BuildFromConfig_SkipsDisabled(t *testing.T) {
	logger := zerolog.Nop()
	pool := NewJudgePool(&MockLLMClient{}, &logger)

	disabled := judgeConfig("conciseness", "Score: {{.Answer}}", false)
	disabled.Enabled = false

	judges, err := pool.BuildFromConfig(config.Judges{
		Evaluators: []config.JudgeConfiguration{
			judgeConfig("repetition", "Score: {{.Answer}}", false),
			disabled,
		},
	})
	if err != nil {
		t.Fatalf("BuildFromConfig failed: %v", err)
	}
	if len(judges) != 1 {
		t.Errorf("Expected 1 judge, got %d", len(judges))
	}
}

func TestJudgePool_BuildFromConfig_InvalidPrompt(t *testing.T) {
	logger := zerolog.Nop()
	pool := NewJudgePool(&MockLLMClient{}, &logger)

	_, err := pool.BuildFromConfig(config.Judges{
		Evaluators: []config.JudgeConfiguration{judgeConfig("broken", "{{.Answer", false)},
	})
	if err == nil {
		t.Fatal("Expected error for invalid template")
	}
}

func TestJudgePool_BuildFromConfig_NoClient(t *testing.T) {
	logger := zerolog.Nop()
	pool := NewJudgePool(nil, &logger)

	if _, err := pool.BuildFromConfig(config.Judges{}); err == nil {
		t.Fatal("Expected error without LLM client")
	}
}

func TestJudgeRunner_KeepsOrder(t *testing.T) {
	logger := zerolog.Nop()

	first, _ := NewLLMJudge(judgeConfig("first", "{{.Answer}}", false), &MockLLMClient{
		ResponseToReturn: &llm.LLMResponse{Content: `{"score": 0.1, "reason": "a"}`},
	}, &logger)
	second, _ := NewLLMJudge(judgeConfig("second", "{{.Answer}}", false), &MockLLMClient{
		ResponseToReturn: &llm.LLMResponse{Content: `{"score": 0.9, "reason": "b"}`},
	}, &logger)

	runner := NewJudgeRunner([]Judge{first, second}, &logger)
	results := runner.Run(context.Background(), models.EvaluationContext{Answer: "an answer"})

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Name != "first-judge" || results[1].Name != "second-judge" {
		t.Errorf("Unexpected order: %s, %s", results[0].Name, results[1].Name)
	}
	if results[0].Score != 0.1 || results[1].Score != 0.9 {
		t.Errorf("Unexpected scores: %f, %f", results[0].Score, results[1].Score)
	}
}
