package config

import "time"

// Config is the complete service configuration loaded from YAML.
type Config struct {
	Guardrails []GuardrailConfig `yaml:"guardrails"`
	Cache      CacheConfig       `yaml:"cache"`
	Prediction PredictionConfig  `yaml:"prediction"`
}

// GuardrailConfig declares one named guardrail and its ordered rule list.
type GuardrailConfig struct {
	Name          string       `yaml:"name"`
	GuardrailType string       `yaml:"guardrail_type"`
	Rules         []RuleConfig `yaml:"rules"`
}

// RuleConfig declares one rule. Which fields are required depends on the
// rule type.
type RuleConfig struct {
	Type         string  `yaml:"type"`
	Pattern      string  `yaml:"pattern"`
	ReplaceWith  *string `yaml:"replace_with"`
	MinLength    *int    `yaml:"min_length"`
	MaxLength    *int    `yaml:"max_length"`
	ErrorMessage string  `yaml:"error_message"`
}

// CacheConfig tunes the similarity response cache. A nil Threshold means the
// cache default; an explicit 0 hits on any positive score.
type CacheConfig struct {
	Method     string   `yaml:"method"`
	Threshold  *float64 `yaml:"threshold"`
	MaxEntries int      `yaml:"max_entries"`
	TTL        string   `yaml:"ttl"`

	// ParsedTTL is populated from TTL during validation.
	ParsedTTL time.Duration `yaml:"-"`
}

// PredictionConfig configures the generation call.
type PredictionConfig struct {
	Provider     string      `yaml:"provider"`
	Model        string      `yaml:"model"`
	SystemPrompt string      `yaml:"system_prompt"`
	Parameters   ModelParams `yaml:"parameters"`
}

// ModelParams holds per-call model parameters.
type ModelParams struct {
	Temperature *float64 `yaml:"temperature"`
	MaxTokens   int      `yaml:"max_tokens"`
}

// TemperatureOrDefault returns the configured temperature, defaulting to 1.0.
func (p ModelParams) TemperatureOrDefault() float64 {
	if p.Temperature == nil {
		return 1.0
	}
	return *p.Temperature
}
