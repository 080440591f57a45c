package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/tpetrov/safellm/internal/api/middleware"
	"github.com/tpetrov/safellm/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	ws.
		Route(ws.GET("/").
			To(handler.Info).
			Doc("Service information").
			Metadata(restfulspec.KeyOpenAPITags, []string{"info"}).
			Writes(ServiceInfo{}).
			Returns(200, "OK", ServiceInfo{}))

	ws.
		Route(ws.GET("/health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/input-guardrail").
			To(handler.InputGuardrail).
			Doc("Validate text with the input guardrail").
			Metadata(restfulspec.KeyOpenAPITags, []string{"guardrails"}).
			Reads(models.GuardrailRequest{}).
			Writes(models.GuardrailResponse{}).
			Returns(200, "OK", models.GuardrailResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/output-guardrail").
			To(handler.OutputGuardrail).
			Doc("Validate text with the output guardrail").
			Metadata(restfulspec.KeyOpenAPITags, []string{"guardrails"}).
			Reads(models.GuardrailRequest{}).
			Writes(models.GuardrailResponse{}).
			Returns(200, "OK", models.GuardrailResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/similarity").
			To(handler.Similarity).
			Doc("Calculate similarity between two texts").
			Metadata(restfulspec.KeyOpenAPITags, []string{"similarity"}).
			Reads(models.SimilarityRequest{}).
			Writes(models.SimilarityResponse{}).
			Returns(200, "OK", models.SimilarityResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/similarity/methods").
			To(handler.SimilarityMethods).
			Doc("List available similarity methods").
			Metadata(restfulspec.KeyOpenAPITags, []string{"similarity"}).
			Returns(200, "OK", []string{}))

	ws.
		Route(ws.POST("/prediction").
			To(handler.Prediction).
			Doc("Generate a guarded prediction, serving cached responses for near-duplicate requests").
			Metadata(restfulspec.KeyOpenAPITags, []string{"prediction"}).
			Reads(models.PredictionRequest{}).
			Writes(models.PredictionResponse{}).
			Returns(200, "OK", models.PredictionResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
