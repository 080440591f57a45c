package gpt

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/tpetrov/safellm/internal/llm"
)

func (c *Client) Generate(ctx context.Context, request llm.Request) (*llm.Response, error) {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if request.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(request.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(request.Prompt))

	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		MaxCompletionTokens: openai.Int(int64(request.MaxTokens)),
		Temperature:         openai.Float(request.Temperature),
		Model:               openai.ChatModel(c.ModelID),
	}

	output, err := c.Client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("unable to invoke gpt model: %w", err)
	}

	if len(output.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	choice := output.Choices[0]
	return &llm.Response{
		Content:    choice.Message.Content,
		StopReason: fmt.Sprint(choice.FinishReason),
	}, nil
}

func (c *Client) GenerateWithRetry(ctx context.Context, request llm.Request) (*llm.Response, error) {
	// The underlying client already retries (option.WithMaxRetries).
	return c.Generate(ctx, request)
}
