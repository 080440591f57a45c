package guardrail

// RuleType identifies the kind of a guardrail rule.
type RuleType string

const (
	RuleTypePattern RuleType = "pattern"
	RuleTypeLength  RuleType = "length"
)

// Type distinguishes which side of a generation call a guardrail protects.
type Type string

const (
	TypeInput  Type = "input"
	TypeOutput Type = "output"
)

// DefaultMinLength is the length floor applied when a length rule leaves
// min_length unset.
const DefaultMinLength = 5

// RuleSpec describes one rule of a guardrail. Pattern rules rewrite the
// running text and never fail; length rules reject text below the minimum and
// truncate text above the maximum.
type RuleSpec struct {
	Type         RuleType
	Pattern      string
	ReplaceWith  string
	MinLength    *int
	MaxLength    *int
	ErrorMessage string
}

// Config is a named, ordered rule list. Rule order is significant and
// preserved from configuration.
type Config struct {
	Name  string
	Type  Type
	Rules []RuleSpec
}

// Outcome is the result of validating one text. Validation failures are
// normal outcomes, not errors.
type Outcome struct {
	IsValid         bool     `json:"is_valid"`
	Message         string   `json:"message"`
	GuardrailName   string   `json:"guardrail_name"`
	FailedRule      RuleType `json:"failed_rule,omitempty"`
	TransformedText string   `json:"transformed_text"`
}
