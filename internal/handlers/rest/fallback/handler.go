// Package fallback answers requests that match no route, or match a route
// under a method it does not serve.
package fallback

import (
	"encoding/json"
	"fmt"
	"net/http"

	"grubdash/internal/generated/dto"
	"grubdash/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	status  int
	message func(r *http.Request) string
}

func NewNotFound(log handlerLogger) *Handler {
	return &Handler{
		log:    log.With(),
		status: http.StatusNotFound,
		message: func(r *http.Request) string {
			return fmt.Sprintf("Path not found: %s", r.URL.RequestURI())
		},
	}
}

func NewMethodNotAllowed(log handlerLogger) *Handler {
	return &Handler{
		log:    log.With(),
		status: http.StatusMethodNotAllowed,
		message: func(r *http.Request) string {
			return fmt.Sprintf("%s not allowed for %s", r.Method, r.URL.RequestURI())
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(h.status)
	err := json.NewEncoder(w).Encode(dto.ErrorResponse{Message: h.message(r)})
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
