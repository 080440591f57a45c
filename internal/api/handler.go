package api

import (
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
	"github.com/tpetrov/safellm/internal/api/middleware"
	"github.com/tpetrov/safellm/internal/guardrail"
	"github.com/tpetrov/safellm/internal/models"
	"github.com/tpetrov/safellm/internal/predictor"
	"github.com/tpetrov/safellm/internal/similarity"
)

// HealthResponse is the health endpoint body.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ServiceInfo is the root endpoint body.
type ServiceInfo struct {
	Message            string   `json:"message"`
	Version            string   `json:"version"`
	AvailableEndpoints []string `json:"available_endpoints"`
	Guardrails         []string `json:"available_guardrails"`
	SimilarityMethods  []string `json:"available_similarity_methods"`
}

type Handler struct {
	input      *guardrail.Engine
	output     *guardrail.Engine
	similarity *similarity.Service
	predictor  *predictor.Predictor
	logger     *zerolog.Logger
}

func NewHandler(
	input *guardrail.Engine,
	output *guardrail.Engine,
	similarityService *similarity.Service,
	pred *predictor.Predictor,
	logger *zerolog.Logger,
) *Handler {
	return &Handler{
		input:      input,
		output:     output,
		similarity: similarityService,
		predictor:  pred,
		logger:     logger,
	}
}

// GET /api/v1/
func (h *Handler) Info(req *restful.Request, resp *restful.Response) {
	var guardrails []string
	if h.input != nil {
		guardrails = append(guardrails, h.input.Name())
	}
	if h.output != nil {
		guardrails = append(guardrails, h.output.Name())
	}

	info := ServiceInfo{
		Message: "Welcome to the Safe LLM Endpoint API!",
		Version: version,
		AvailableEndpoints: []string{
			"/api/v1/input-guardrail",
			"/api/v1/output-guardrail",
			"/api/v1/similarity",
			"/api/v1/similarity/methods",
			"/api/v1/prediction",
			"/api/v1/health",
		},
		Guardrails:        guardrails,
		SimilarityMethods: h.similarity.Methods(),
	}

	resp.WriteHeaderAndEntity(http.StatusOK, info)
}

// POST /api/v1/input-guardrail
func (h *Handler) InputGuardrail(req *restful.Request, resp *restful.Response) {
	h.validateWith(h.input, req, resp)
}

// POST /api/v1/output-guardrail
func (h *Handler) OutputGuardrail(req *restful.Request, resp *restful.Response) {
	h.validateWith(h.output, req, resp)
}

func (h *Handler) validateWith(engine *guardrail.Engine, req *restful.Request, resp *restful.Response) {
	var grReq models.GuardrailRequest
	if err := req.ReadEntity(&grReq); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	outcome := engine.Validate(grReq.Text)

	h.logger.Info().
		Str("guardrail", outcome.GuardrailName).
		Bool("is_valid", outcome.IsValid).
		Str("failed_rule", string(outcome.FailedRule)).
		Msg("Validation complete")

	resp.WriteHeaderAndEntity(http.StatusOK, models.GuardrailResponse{
		IsValid:         outcome.IsValid,
		Message:         outcome.Message,
		GuardrailUsed:   outcome.GuardrailName,
		FailedRule:      string(outcome.FailedRule),
		TransformedText: outcome.TransformedText,
	})
}

// POST /api/v1/similarity
func (h *Handler) Similarity(req *restful.Request, resp *restful.Response) {
	var simReq models.SimilarityRequest
	if err := req.ReadEntity(&simReq); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	score, used, err := h.similarity.Calculate(simReq.Text1, simReq.Text2, similarity.Method(simReq.Method))
	if err != nil {
		if errors.Is(err, similarity.ErrUnknownMethod) {
			middleware.HandleError(resp, err, http.StatusBadRequest)
			return
		}
		h.logger.Error().Err(err).Msg("Similarity calculation failed")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, models.SimilarityResponse{
		SimilarityScore: score,
		MethodUsed:      string(used),
	})
}

// GET /api/v1/similarity/methods
func (h *Handler) SimilarityMethods(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, h.similarity.Methods())
}

// POST /api/v1/prediction
func (h *Handler) Prediction(req *restful.Request, resp *restful.Response) {
	var predReq models.PredictionRequest
	if err := req.ReadEntity(&predReq); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("request_id", predReq.RequestID).
		Int("input_length", len(predReq.InputText)).
		Msg("Start prediction")

	ctx := req.Request.Context()
	result, err := h.predictor.Predict(ctx, predReq)
	if err != nil {
		h.logger.Error().Err(err).Str("request_id", predReq.RequestID).Msg("Prediction failed")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	h.logger.Info().
		Str("request_id", predReq.RequestID).
		Bool("cached", result.Cached).
		Msg("Prediction complete")

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: version,
	})
}

const version = "1.0.0"
