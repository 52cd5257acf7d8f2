package config

// ChecksConfig represents the complete evaluation configuration
type ChecksConfig struct {
	Prechecks   PrechecksConfig   `yaml:"prechecks"`
	Aggregation AggregationConfig `yaml:"aggregation"`
	Judges      Judges            `yaml:"judges"`
}

// PrechecksConfig holds thresholds for the deterministic checkers
type PrechecksConfig struct {
	Repetition RepetitionCheckConfig `yaml:"repetition"`
	Vocabulary VocabularyCheckConfig `yaml:"vocabulary"`
}

type RepetitionCheckConfig struct {
	Enabled        *bool   `yaml:"enabled"`
	MinUniqueRatio float64 `yaml:"min_unique_ratio"`
}

type VocabularyCheckConfig struct {
	Enabled          *bool   `yaml:"enabled"`
	MinDistinctRatio float64 `yaml:"min_distinct_ratio"`
}

// AggregationConfig contains weights for aggregating precheck and judge scores
type AggregationConfig struct {
	PrecheckWeight     float64 `yaml:"precheck_weight"`
	JudgeWeight        float64 `yaml:"judge_weight"`
	EarlyExitThreshold float64 `yaml:"early_exit_threshold"`
	PassThreshold      float64 `yaml:"pass_threshold"`
	ReviewThreshold    float64 `yaml:"review_threshold"`
}

type Judges struct {
	DefaultModel ModelConfig          `yaml:"default_model"`
	Evaluators   []JudgeConfiguration `yaml:"evaluators"`
}

type ModelConfig struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	Retry       bool    `yaml:"retry"`
}

// JudgeConfiguration describes one LLM judge. Prompt is a text/template
// rendered against the judge input.
type JudgeConfiguration struct {
	Name        string       `yaml:"name"`
	Enabled     bool         `yaml:"enabled"`
	Description string       `yaml:"description"`
	Prompt      string       `yaml:"prompt"`
	Model       *ModelConfig `yaml:"model"`
}
