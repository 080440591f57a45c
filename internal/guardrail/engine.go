package guardrail

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	validMessage         = "Input is valid."
	invalidLengthMessage = "Input length is invalid."

	// passthroughName is reported when no guardrail is configured.
	passthroughName = "N/A"
)

type patternRule struct {
	re          *regexp.Regexp
	replaceWith string
}

type lengthRule struct {
	min int
	max int // 0 means no ceiling
}

// Engine validates and rewrites text against an immutable rule list. It holds
// no mutable state across calls.
type Engine struct {
	name     string
	patterns []patternRule
	lengths  []lengthRule
}

// NewEngine compiles a guardrail config into an engine. A malformed regex or
// an unrecognized rule type is a configuration error reported immediately.
func NewEngine(cfg Config) (*Engine, error) {
	e := &Engine{name: cfg.Name}

	for i, rule := range cfg.Rules {
		switch rule.Type {
		case RuleTypePattern:
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				return nil, fmt.Errorf("guardrail %q rule %d: invalid pattern %q: %w", cfg.Name, i, rule.Pattern, err)
			}
			e.patterns = append(e.patterns, patternRule{re: re, replaceWith: rule.ReplaceWith})

		case RuleTypeLength:
			lr := lengthRule{min: DefaultMinLength}
			if rule.MinLength != nil {
				lr.min = *rule.MinLength
			}
			if rule.MaxLength != nil {
				lr.max = *rule.MaxLength
			}
			e.lengths = append(e.lengths, lr)

		default:
			return nil, fmt.Errorf("guardrail %q rule %d: unsupported rule type %q", cfg.Name, i, rule.Type)
		}
	}

	return e, nil
}

// Name returns the guardrail name, or "N/A" for a nil engine.
func (e *Engine) Name() string {
	if e == nil {
		return passthroughName
	}
	return e.name
}

// Validate folds the text through the rule list: every pattern rule first, in
// order, rewriting the running text, then every length rule, in order. A nil
// engine or an empty rule list is a pass-through.
func (e *Engine) Validate(text string) Outcome {
	if e == nil {
		return Outcome{
			IsValid:         true,
			Message:         validMessage,
			GuardrailName:   passthroughName,
			TransformedText: text,
		}
	}

	running := text

	// Pattern rules are sanitizing transforms only; they never fail.
	for _, p := range e.patterns {
		running = strings.TrimSpace(p.re.ReplaceAllString(running, p.replaceWith))
	}

	// Lengths are measured in runes, not bytes, so multi-byte text is
	// counted and truncated on character boundaries.
	for _, l := range e.lengths {
		runes := []rune(running)
		if len(runes) < l.min {
			return Outcome{
				IsValid:         false,
				Message:         invalidLengthMessage,
				GuardrailName:   e.name,
				FailedRule:      RuleTypeLength,
				TransformedText: running,
			}
		}
		// Over-long text is truncated, not rejected. Truncation compounds
		// across multiple length rules.
		if l.max > 0 && len(runes) > l.max {
			running = string(runes[:l.max])
		}
	}

	return Outcome{
		IsValid:         true,
		Message:         validMessage,
		GuardrailName:   e.name,
		TransformedText: running,
	}
}
