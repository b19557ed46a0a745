package orders_get

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
	orders, err := h.service.GetOrders(r.Context())
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("list orders")
		h.writeJSON(w, http.StatusInternalServerError, converters.ToErrorResponse(err))
		return
	}

	h.writeJSON(w, http.StatusOK, dto.OrderListResponse{
		Data: converters.FromDomainList(orders),
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
