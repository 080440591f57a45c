package gpt

import (
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Client calls the OpenAI chat completions API. Retries are delegated to the
// SDK client rather than reimplemented here.
type Client struct {
	Client  openai.Client
	ModelID string
}

func NewClient(apiKey string, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("OpenAI model ID is required")
	}

	return &Client{
		Client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithMaxRetries(3),
		),
		ModelID: model,
	}, nil
}
