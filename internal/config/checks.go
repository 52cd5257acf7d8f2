package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "configs/checks.yaml"

// LoadChecksConfig reads the YAML file named by CHECKS_CONFIG_PATH, falling
// back to configs/checks.yaml.
func LoadChecksConfig() (*ChecksConfig, error) {
	path := os.Getenv("CHECKS_CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	return LoadChecksConfigFile(path)
}

func LoadChecksConfigFile(path string) (*ChecksConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checks config %s: %w", path, err)
	}

	// Keys absent from the file keep their defaults; an explicit 0 is kept.
	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse checks config %s: %w", path, err)
	}

	applyJudgeDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *ChecksConfig {
	return defaults()
}

func defaults() *ChecksConfig {
	return &ChecksConfig{
		Prechecks: PrechecksConfig{
			Repetition: RepetitionCheckConfig{MinUniqueRatio: 0.5},
			Vocabulary: VocabularyCheckConfig{MinDistinctRatio: 0.4},
		},
		Aggregation: AggregationConfig{
			PrecheckWeight:     0.3,
			JudgeWeight:        0.7,
			EarlyExitThreshold: 0.2,
			PassThreshold:      0.8,
			ReviewThreshold:    0.5,
		},
		Judges: Judges{
			DefaultModel: ModelConfig{MaxTokens: 256},
		},
	}
}

func applyJudgeDefaults(cfg *ChecksConfig) {
	if cfg.Judges.DefaultModel.MaxTokens == 0 {
		cfg.Judges.DefaultModel.MaxTokens = 256
	}

	// Judges without a model block inherit the default one; partial
	// overrides inherit the fields they leave unset.
	for i := range cfg.Judges.Evaluators {
		judge := &cfg.Judges.Evaluators[i]
		if judge.Model == nil {
			model := cfg.Judges.DefaultModel
			judge.Model = &model
			continue
		}
		if judge.Model.MaxTokens == 0 {
			judge.Model.MaxTokens = cfg.Judges.DefaultModel.MaxTokens
		}
		if judge.Model.Temperature == 0 {
			judge.Model.Temperature = cfg.Judges.DefaultModel.Temperature
		}
	}
}

// IsEnabled treats an absent flag as enabled.
func IsEnabled(flag *bool) bool {
	return flag == nil || *flag
}

func (c *ChecksConfig) Validate() error {
	var errs []error

	if r := c.Prechecks.Repetition.MinUniqueRatio; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("prechecks.repetition.min_unique_ratio must be within [0,1], got %v", r))
	}
	if r := c.Prechecks.Vocabulary.MinDistinctRatio; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("prechecks.vocabulary.min_distinct_ratio must be within [0,1], got %v", r))
	}

	agg := c.Aggregation
	if agg.PrecheckWeight < 0 || agg.JudgeWeight < 0 {
		errs = append(errs, errors.New("aggregation weights must not be negative"))
	}
	if agg.ReviewThreshold > agg.PassThreshold {
		errs = append(errs, fmt.Errorf("aggregation.review_threshold (%v) must not exceed pass_threshold (%v)", agg.ReviewThreshold, agg.PassThreshold))
	}

	names := make(map[string]bool, len(c.Judges.Evaluators))
	for _, judge := range c.Judges.Evaluators {
		if judge.Name == "" {
			errs = append(errs, errors.New("judge name is required"))
			continue
		}
		if names[judge.Name] {
			errs = append(errs, fmt.Errorf("duplicate judge name %q", judge.Name))
		}
		names[judge.Name] = true

		if judge.Enabled && judge.Prompt == "" {
			errs = append(errs, fmt.Errorf("judge %q is enabled but has no prompt", judge.Name))
		}
	}

	return errors.Join(errs...)
}
