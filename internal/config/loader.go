package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tpetrov/safellm/internal/guardrail"
	"github.com/tpetrov/safellm/internal/similarity"
)

const (
	defaultConfigPath = "configs/config.yaml"
	defaultMaxTokens  = 256

	// minAllowedMaxLength guards against truncation limits so small that
	// every generated response would be cut to a fragment.
	minAllowedMaxLength = 50
)

// Load reads and validates the service configuration. The path defaults to
// configs/config.yaml and can be overridden with SAFELLM_CONFIG_PATH.
func Load() (*Config, error) {
	path := os.Getenv("SAFELLM_CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	for gi := range cfg.Guardrails {
		for ri := range cfg.Guardrails[gi].Rules {
			rule := &cfg.Guardrails[gi].Rules[ri]
			if rule.Type == string(guardrail.RuleTypePattern) && rule.ReplaceWith == nil {
				empty := ""
				rule.ReplaceWith = &empty
			}
		}
	}

	if cfg.Cache.Method == "" {
		cfg.Cache.Method = string(similarity.MethodJaccard)
	}
	if cfg.Prediction.Parameters.MaxTokens == 0 {
		cfg.Prediction.Parameters.MaxTokens = defaultMaxTokens
	}
}

// Validate checks the structural rules each section must satisfy. Rule
// semantics (regex compilation) are verified when the engines are built.
func (c *Config) Validate() error {
	for _, g := range c.Guardrails {
		if g.Name == "" || g.GuardrailType == "" {
			return fmt.Errorf("each guardrail must have a name and a guardrail_type")
		}
		gt := guardrail.Type(g.GuardrailType)
		if gt != guardrail.TypeInput && gt != guardrail.TypeOutput {
			return fmt.Errorf("guardrail %q: invalid guardrail_type %q", g.Name, g.GuardrailType)
		}
		if g.Rules == nil {
			return fmt.Errorf("guardrail %q must have a rules list", g.Name)
		}

		for i, rule := range g.Rules {
			switch guardrail.RuleType(rule.Type) {
			case guardrail.RuleTypePattern:
				if rule.Pattern == "" {
					return fmt.Errorf("guardrail %q rule %d: pattern rules must have a pattern", g.Name, i)
				}

			case guardrail.RuleTypeLength:
				if rule.MinLength == nil && rule.MaxLength == nil {
					return fmt.Errorf("guardrail %q rule %d: length rules must have min_length or max_length", g.Name, i)
				}
				if rule.MaxLength != nil && *rule.MaxLength < minAllowedMaxLength {
					return fmt.Errorf("guardrail %q rule %d: max_length must be at least %d", g.Name, i, minAllowedMaxLength)
				}

			default:
				return fmt.Errorf("guardrail %q rule %d: unsupported rule type %q", g.Name, i, rule.Type)
			}
		}
	}

	if c.Cache.Threshold != nil && (*c.Cache.Threshold < 0 || *c.Cache.Threshold > 1) {
		return fmt.Errorf("cache threshold must be in [0,1], got %f", *c.Cache.Threshold)
	}
	if !similarity.Method(c.Cache.Method).Known() {
		return fmt.Errorf("cache: unknown similarity method %q", c.Cache.Method)
	}
	if c.Cache.TTL != "" {
		ttl, err := time.ParseDuration(c.Cache.TTL)
		if err != nil {
			return fmt.Errorf("cache: invalid ttl %q: %w", c.Cache.TTL, err)
		}
		c.Cache.ParsedTTL = ttl
	}

	if c.Prediction.Provider != "" && c.Prediction.Model == "" {
		return fmt.Errorf("prediction configuration must have a model")
	}

	return nil
}

// Guardrail returns the first guardrail of the given type, or nil when none
// is configured.
func (c *Config) Guardrail(t guardrail.Type) *guardrail.Config {
	for _, g := range c.Guardrails {
		if guardrail.Type(g.GuardrailType) != t {
			continue
		}
		cfg := guardrail.Config{Name: g.Name, Type: t}
		for _, rule := range g.Rules {
			spec := guardrail.RuleSpec{
				Type:         guardrail.RuleType(rule.Type),
				Pattern:      rule.Pattern,
				MinLength:    rule.MinLength,
				MaxLength:    rule.MaxLength,
				ErrorMessage: rule.ErrorMessage,
			}
			if rule.ReplaceWith != nil {
				spec.ReplaceWith = *rule.ReplaceWith
			}
			cfg.Rules = append(cfg.Rules, spec)
		}
		return &cfg
	}
	return nil
}
