package llm

// Request carries one generation call.
type Request struct {
	Prompt       string
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
}

// Response is the model output.
type Response struct {
	Content    string
	StopReason string
}
