package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checks.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoadChecksConfig_Success(t *testing.T) {
	path := writeConfig(t, `prechecks:
  repetition:
    min_unique_ratio: 0.6
  vocabulary:
    enabled: false

aggregation:
  precheck_weight: 0.5
  judge_weight: 0.5

judges:
  default_model:
    max_tokens: 256
    temperature: 0.2
    retry: true

  evaluators:
    - name: repetition
      enabled: true
      prompt: |
        Answer: {{.Answer}}
      model:
        max_tokens: 128
        retry: false

    - name: conciseness
      enabled: true
      prompt: "Answer: {{.Answer}}"
`)

	t.Setenv("CHECKS_CONFIG_PATH", path)

	cfg, err := LoadChecksConfig()
	if err != nil {
		t.Fatalf("LoadChecksConfig() failed: %v", err)
	}

	if cfg.Prechecks.Repetition.MinUniqueRatio != 0.6 {
		t.Errorf("Expected min_unique_ratio=0.6, got %v", cfg.Prechecks.Repetition.MinUniqueRatio)
	}
	if !IsEnabled(cfg.Prechecks.Repetition.Enabled) {
		t.Error("Expected repetition check to default to enabled")
	}
	if IsEnabled(cfg.Prechecks.Vocabulary.Enabled) {
		t.Error("Expected vocabulary check to be disabled")
	}
	if cfg.Prechecks.Vocabulary.MinDistinctRatio != 0.4 {
		t.Errorf("Expected default min_distinct_ratio=0.4, got %v", cfg.Prechecks.Vocabulary.MinDistinctRatio)
	}

	if cfg.Aggregation.PrecheckWeight != 0.5 || cfg.Aggregation.JudgeWeight != 0.5 {
		t.Errorf("Unexpected weights: %+v", cfg.Aggregation)
	}
	if cfg.Aggregation.EarlyExitThreshold != 0.2 {
		t.Errorf("Expected default early_exit_threshold=0.2, got %v", cfg.Aggregation.EarlyExitThreshold)
	}

	if len(cfg.Judges.Evaluators) != 2 {
		t.Fatalf("Expected 2 evaluators, got %d", len(cfg.Judges.Evaluators))
	}

	repetition := cfg.Judges.Evaluators[0]
	if repetition.Model.MaxTokens != 128 {
		t.Errorf("Expected repetition max_tokens=128, got %d", repetition.Model.MaxTokens)
	}
	if repetition.Model.Retry {
		t.Error("Expected repetition retry=false")
	}
	if repetition.Model.Temperature != 0.2 {
		t.Errorf("Expected inherited temperature=0.2, got %f", repetition.Model.Temperature)
	}

	conciseness := cfg.Judges.Evaluators[1]
	if conciseness.Model == nil {
		t.Fatal("Expected conciseness.Model to be populated with defaults")
	}
	if conciseness.Model.MaxTokens != 256 || !conciseness.Model.Retry {
		t.Errorf("Expected default model, got %+v", *conciseness.Model)
	}
}

func TestLoadChecksConfig_ExplicitZeroIsKept(t *testing.T) {
	path := writeConfig(t, `prechecks:
  repetition:
    min_unique_ratio: 0
aggregation:
  early_exit_threshold: 0
`)

	cfg, err := LoadChecksConfigFile(path)
	if err != nil {
		t.Fatalf("LoadChecksConfigFile() failed: %v", err)
	}

	if cfg.Prechecks.Repetition.MinUniqueRatio != 0 {
		t.Errorf("Expected min_unique_ratio=0, got %v", cfg.Prechecks.Repetition.MinUniqueRatio)
	}
	if cfg.Aggregation.EarlyExitThreshold != 0 {
		t.Errorf("Expected early_exit_threshold=0, got %v", cfg.Aggregation.EarlyExitThreshold)
	}
	if cfg.Prechecks.Vocabulary.MinDistinctRatio != 0.4 {
		t.Errorf("Expected default min_distinct_ratio=0.4, got %v", cfg.Prechecks.Vocabulary.MinDistinctRatio)
	}
	if cfg.Aggregation.PassThreshold != 0.8 {
		t.Errorf("Expected default pass_threshold=0.8, got %v", cfg.Aggregation.PassThreshold)
	}
}

func TestLoadChecksConfig_MissingFile(t *testing.T) {
	t.Setenv("CHECKS_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := LoadChecksConfig(); err == nil {
		t.Fatal("Expected error for missing config file")
	}
}

func TestLoadChecksConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "prechecks: [unclosed")

	if _, err := LoadChecksConfigFile(path); err == nil {
		t.Fatal("Expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "ratio out of range",
			content: `prechecks:
  repetition:
    min_unique_ratio: 1.5`,
			wantErr: "min_unique_ratio",
		},
		{
			name: "review above pass",
			content: `aggregation:
  pass_threshold: 0.4
  review_threshold: 0.6`,
			wantErr: "review_threshold",
		},
		{
			name: "duplicate judge",
			content: `judges:
  evaluators:
    - name: repetition
      prompt: "a"
    - name: repetition
      prompt: "b"`,
			wantErr: "duplicate judge",
		},
		{
			name: "enabled judge without prompt",
			content: `judges:
  evaluators:
    - name: repetition
      enabled: true`,
			wantErr: "has no prompt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadChecksConfigFile(writeConfig(t, tt.content))
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
	if cfg.Aggregation.PrecheckWeight != 0.3 || cfg.Aggregation.JudgeWeight != 0.7 {
		t.Errorf("Unexpected default weights: %+v", cfg.Aggregation)
	}
	if len(cfg.Judges.Evaluators) != 0 {
		t.Errorf("Default config should not define judges")
	}
}

func TestShippedConfig(t *testing.T) {
	cfg, err := LoadChecksConfigFile(filepath.Join("..", "..", "configs", "checks.yaml"))
	if err != nil {
		t.Fatalf("configs/checks.yaml should load: %v", err)
	}
	if len(cfg.Judges.Evaluators) == 0 {
		t.Error("Expected judges in shipped config")
	}
}
