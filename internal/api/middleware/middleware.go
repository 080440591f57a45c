package middleware

import (
	"net/http"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// HandleError writes an error response with the given status code.
func HandleError(resp *restful.Response, err error, code int) {
	if writeErr := resp.WriteHeaderAndEntity(code, ErrorResponse{Error: err.Error(), Code: code}); writeErr != nil {
		log.Error().Err(writeErr).Msg("Failed to write error response")
	}
}

// Logger logs every request with its status and duration.
func Logger(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()
	chain.ProcessFilter(req, resp)
	log.Info().
		Str("method", req.Request.Method).
		Str("path", req.Request.URL.Path).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("Request handled")
}

// RecoverPanic converts handler panics into 500 responses.
func RecoverPanic(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Str("path", req.Request.URL.Path).Msg("Handler panicked")
			resp.WriteHeaderAndEntity(http.StatusInternalServerError, ErrorResponse{
				Error: "internal server error",
				Code:  http.StatusInternalServerError,
			})
		}
	}()
	chain.ProcessFilter(req, resp)
}
