package order_post

import (
	"encoding/json"
	"net/http"

	"grubdash/internal/generated/dto"
	"grubdash/internal/handlers/rest/converters"
	"grubdash/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	modify, err := converters.DecodeOrderRequest(r.Body)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Warn("decode create order request")
		h.writeJSON(w, http.StatusBadRequest, converters.ToErrorResponse(err))
		return
	}

	created, err := h.service.CreateOrder(r.Context(), modify)
	if err != nil {
		status := converters.StatusCode(err)
		if status == http.StatusInternalServerError {
			h.log.With(
				logger.NewField("error", err),
			).Error("create order")
		}
		h.writeJSON(w, status, converters.ToErrorResponse(err))
		return
	}

	h.writeJSON(w, http.StatusCreated, dto.OrderResponse{
		Data: converters.FromDomain(created),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
