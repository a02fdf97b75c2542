// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/convogenius/meeting-intelligence-service/internal/domain"
	"github.com/convogenius/meeting-intelligence-service/internal/logging"
	"github.com/convogenius/meeting-intelligence-service/internal/middleware"
	"github.com/convogenius/meeting-intelligence-service/internal/service"
	"github.com/convogenius/meeting-intelligence-service/pkg/constants"
)

// IntelligenceAPI is the HTTP surface of the service: the provider webhook
// endpoint plus the health probes.
type IntelligenceAPI struct {
	webhookService  *service.WebhookService
	pipelineHandler domain.MessageHandler
}

// NewIntelligenceAPI creates a new IntelligenceAPI.
func NewIntelligenceAPI(webhookService *service.WebhookService, pipelineHandler domain.MessageHandler) *IntelligenceAPI {
	return &IntelligenceAPI{
		webhookService:  webhookService,
		pipelineHandler: pipelineHandler,
	}
}

// HandleWebhook processes one provider webhook delivery.
func (a *IntelligenceAPI) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rawBody, ok := middleware.GetRawBodyFromContext(ctx)
	if !ok {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "unable to read request body")
			return
		}
		rawBody = body
	}

	err := a.webhookService.ProcessWebhookEvent(ctx, service.WebhookRequest{
		Signature: r.Header.Get(constants.SignatureHeader),
		APIKey:    r.Header.Get(constants.APIKeyHeader),
		RawBody:   rawBody,
	})
	if err != nil {
		status := httpStatusForError(err)
		if status >= http.StatusInternalServerError {
			slog.ErrorContext(ctx, "webhook processing failed", logging.ErrKey, err)
		} else {
			slog.WarnContext(ctx, "webhook rejected", logging.ErrKey, err, "status", status)
		}
		writeJSONError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Livez checks if the service is alive.
func (a *IntelligenceAPI) Livez(w http.ResponseWriter, _ *http.Request) {
	// This always returns as long as the service is still running. As this
	// endpoint is expected to be used as a Kubernetes liveness check, this
	// service must likewise self-detect non-recoverable errors and
	// self-terminate.
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK\n"))
}

// Readyz checks if the service is able to take inbound requests.
func (a *IntelligenceAPI) Readyz(w http.ResponseWriter, _ *http.Request) {
	if !a.webhookService.ServiceReady() || !a.pipelineHandler.HandlerReady() {
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK\n"))
}

// httpStatusForError maps a domain error to its HTTP status code.
func httpStatusForError(err error) int {
	switch domain.GetErrorType(err) {
	case domain.ErrorTypeValidation:
		return http.StatusBadRequest
	case domain.ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrorTypeNotFound:
		return http.StatusNotFound
	case domain.ErrorTypeConflict:
		return http.StatusConflict
	case domain.ErrorTypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.With(logging.ErrKey, err).Error("error encoding response body")
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
