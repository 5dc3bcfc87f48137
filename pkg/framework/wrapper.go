// Package framework wraps function handlers with the shared HTTP
// plumbing: CORS, preflight, JSON decoding/encoding, error-kind to
// status mapping, and Sentry capture.
package framework

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/99airplane/lifelOOp/pkg/apperrors"
	"github.com/99airplane/lifelOOp/pkg/bootstrap"
	infrasentry "github.com/99airplane/lifelOOp/pkg/infrastructure/sentry"
)

// FrameworkContext contains dependencies injected by the framework
type FrameworkContext struct {
	Service *bootstrap.Service
	Logger  *slog.Logger
}

// HandlerFunc is the signature for an HTTP cloud function handler.
// The returned value is JSON-encoded into the 200 response.
type HandlerFunc func(ctx context.Context, r *http.Request, fwCtx *FrameworkContext) (interface{}, error)

type errorBody struct {
	Error string `json:"error"`
}

// WrapHTTP wraps a handler with CORS, method checks, logging and error
// mapping. failureMessage is the static body returned on 500; internal
// detail never leaves the process.
func WrapHTTP(serviceName string, svc *bootstrap.Service, failureMessage string, handler HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
			return
		}

		logger := bootstrap.NewLogger(serviceName)
		fwCtx := &FrameworkContext{
			Service: svc,
			Logger:  logger,
		}

		logger.Info("Function started")

		out, err := handler(r.Context(), r, fwCtx)
		if err != nil {
			if apperrors.IsValidation(err) {
				logger.Warn("Request rejected", "error", err)
				writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
				return
			}

			logger.Error("Function failed", "error", err)
			infrasentry.CaptureException(err, map[string]interface{}{"service": serviceName}, logger)
			infrasentry.Flush(2 * time.Second)
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: failureMessage})
			return
		}

		logger.Info("Function completed successfully")
		writeJSON(w, http.StatusOK, out)
	}
}

// DecodeJSON reads the request body into dst, returning a ValidationError
// on malformed input.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.Validationf("Invalid request body")
	}
	return nil
}

func setCORSHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
