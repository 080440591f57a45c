package models

// GuardrailRequest asks for one text to be validated.
type GuardrailRequest struct {
	Text string `json:"text" jsonschema:"required,description=Text to validate"`
}

// GuardrailResponse reports a validation outcome.
type GuardrailResponse struct {
	IsValid         bool   `json:"is_valid"`
	Message         string `json:"message"`
	GuardrailUsed   string `json:"guardrail_used"`
	FailedRule      string `json:"failed_rule,omitempty"`
	TransformedText string `json:"transformed_text,omitempty"`
}

// SimilarityRequest asks for a pairwise similarity score.
type SimilarityRequest struct {
	Text1  string `json:"text1" jsonschema:"required,description=First text"`
	Text2  string `json:"text2" jsonschema:"required,description=Second text"`
	Method string `json:"method,omitempty" jsonschema:"description=Similarity method (jaccard or cosine_tfidf)"`
}

// SimilarityResponse carries the score and the method that produced it.
type SimilarityResponse struct {
	SimilarityScore float64 `json:"similarity_score"`
	MethodUsed      string  `json:"method_used"`
}

// PredictionRequest asks for a guarded generation.
type PredictionRequest struct {
	RequestID string `json:"request_id,omitempty" jsonschema:"description=Optional request identifier"`
	InputText string `json:"input_text" jsonschema:"required,description=Prompt text to generate from"`
}

// PredictionResponse carries the generated (or cached) response text.
type PredictionResponse struct {
	Prediction string `json:"prediction"`
	Cached     bool   `json:"cached,omitempty"`
}
