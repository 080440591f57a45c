package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tpetrov/safellm/internal/guardrail"
	"github.com/tpetrov/safellm/internal/models"
	"github.com/tpetrov/safellm/internal/predictor"
	"github.com/tpetrov/safellm/internal/similarity"
)

// PredictInput is the MCP tool input schema (matches HTTP API field names).
type PredictInput struct {
	RequestID string `json:"request_id,omitempty" jsonschema:"optional request identifier"`
	InputText string `json:"input_text" jsonschema:"prompt to generate a prediction for"`
}

// ValidateInput is the MCP tool input schema for guardrail validation.
type ValidateInput struct {
	Text string `json:"text" jsonschema:"text to validate"`
}

// SimilarityInput is the MCP tool input schema for similarity scoring.
type SimilarityInput struct {
	Text1  string `json:"text1" jsonschema:"first text"`
	Text2  string `json:"text2" jsonschema:"second text"`
	Method string `json:"method,omitempty" jsonschema:"similarity method: jaccard or cosine_tfidf (default: service default)"`
}

// NewPredictHandler returns a tool handler that uses the given predictor.
// Pass the returned function to mcp.AddTool.
func NewPredictHandler(pred *predictor.Predictor) func(context.Context, *mcp.CallToolRequest, PredictInput) (*mcp.CallToolResult, models.PredictionResponse, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PredictInput) (*mcp.CallToolResult, models.PredictionResponse, error) {
		resp, err := pred.Predict(ctx, models.PredictionRequest{
			RequestID: input.RequestID,
			InputText: input.InputText,
		})
		return nil, resp, err
	}
}

// NewValidateHandler returns a tool handler backed by the given guardrail engine.
// Pass the returned function to mcp.AddTool.
func NewValidateHandler(engine *guardrail.Engine) func(context.Context, *mcp.CallToolRequest, ValidateInput) (*mcp.CallToolResult, models.GuardrailResponse, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ValidateInput) (*mcp.CallToolResult, models.GuardrailResponse, error) {
		outcome := engine.Validate(input.Text)
		return nil, models.GuardrailResponse{
			IsValid:         outcome.IsValid,
			Message:         outcome.Message,
			GuardrailUsed:   outcome.GuardrailName,
			FailedRule:      string(outcome.FailedRule),
			TransformedText: outcome.TransformedText,
		}, nil
	}
}

// NewSimilarityHandler returns a tool handler that scores two texts with the
// similarity service. Pass the returned function to mcp.AddTool.
func NewSimilarityHandler(svc *similarity.Service) func(context.Context, *mcp.CallToolRequest, SimilarityInput) (*mcp.CallToolResult, models.SimilarityResponse, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SimilarityInput) (*mcp.CallToolResult, models.SimilarityResponse, error) {
		score, used, err := svc.Calculate(input.Text1, input.Text2, similarity.Method(input.Method))
		if err != nil {
			return nil, models.SimilarityResponse{}, err
		}
		return nil, models.SimilarityResponse{
			SimilarityScore: score,
			MethodUsed:      string(used),
		}, nil
	}
}
