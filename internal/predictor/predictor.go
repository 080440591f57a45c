package predictor

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tpetrov/safellm/internal/guardrail"
	"github.com/tpetrov/safellm/internal/models"
)

// Canned responses returned when a guardrail rejects the text. These are
// normal outcomes reported to the caller, not errors.
const (
	UnsafeInputMessage  = "Unsafe input detected, prediction not generated."
	UnsafeOutputMessage = "Unsafe output detected, prediction not generated."
)

// Validator validates and rewrites text against a guardrail rule list.
type Validator interface {
	Validate(text string) guardrail.Outcome
}

// ResponseCache serves stored responses for near-duplicate requests.
type ResponseCache interface {
	Lookup(ctx context.Context, text string) (string, bool, error)
	Store(ctx context.Context, text, response string) error
}

// Generator produces a response for a prompt. It is treated as a black box
// invoked at most once per request.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Predictor runs the guarded generation flow: input guardrail, cache lookup,
// generation, output guardrail, cache store.
type Predictor struct {
	input     Validator
	output    Validator
	cache     ResponseCache
	generator Generator
	logger    *zerolog.Logger
}

func New(
	input Validator,
	output Validator,
	cache ResponseCache,
	generator Generator,
	logger *zerolog.Logger,
) *Predictor {
	return &Predictor{
		input:     input,
		output:    output,
		cache:     cache,
		generator: generator,
		logger:    logger,
	}
}

func (p *Predictor) Predict(ctx context.Context, req models.PredictionRequest) (models.PredictionResponse, error) {
	prompt := req.InputText

	if p.input != nil {
		outcome := p.input.Validate(req.InputText)
		if !outcome.IsValid {
			p.logger.Warn().
				Str("request_id", req.RequestID).
				Str("guardrail", outcome.GuardrailName).
				Str("failed_rule", string(outcome.FailedRule)).
				Msg("input validation failed")
			return models.PredictionResponse{Prediction: UnsafeInputMessage}, nil
		}
		prompt = outcome.TransformedText
	}

	// The cache is keyed by the exact original request text, not the
	// rewritten prompt.
	if p.cache != nil {
		cached, ok, err := p.cache.Lookup(ctx, req.InputText)
		if err != nil {
			p.logger.Warn().Err(err).Str("request_id", req.RequestID).Msg("cache lookup failed")
		} else if ok {
			p.logger.Info().Str("request_id", req.RequestID).Msg("serving cached prediction")
			return models.PredictionResponse{Prediction: cached, Cached: true}, nil
		}
	}

	generated, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		return models.PredictionResponse{}, err
	}

	response := generated
	if p.output != nil {
		outcome := p.output.Validate(generated)
		if !outcome.IsValid {
			p.logger.Warn().
				Str("request_id", req.RequestID).
				Str("guardrail", outcome.GuardrailName).
				Str("failed_rule", string(outcome.FailedRule)).
				Msg("output validation failed")
			return models.PredictionResponse{Prediction: UnsafeOutputMessage}, nil
		}
		response = outcome.TransformedText
	}

	if p.cache != nil {
		if err := p.cache.Store(ctx, req.InputText, response); err != nil {
			p.logger.Warn().Err(err).Str("request_id", req.RequestID).Msg("cache store failed")
		}
	}

	return models.PredictionResponse{Prediction: response}, nil
}
