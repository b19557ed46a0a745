package order_put

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
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

// ServeHTTP reports an unknown order as 404 even when the decoded body would
// fail validation. Only unparsable JSON is rejected earlier.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]

	modify, err := converters.DecodeOrderRequest(r.Body)
	if err != nil {
		h.log.With(
			logger.NewField("order_id", orderID),
			logger.NewField("error", err),
		).Warn("decode update order request")
		h.writeJSON(w, http.StatusBadRequest, converters.ToErrorResponse(err))
		return
	}

	updated, err := h.service.UpdateOrder(r.Context(), orderID, modify)
	if err != nil {
		status := converters.StatusCode(err)
		if status == http.StatusInternalServerError {
			h.log.With(
				logger.NewField("order_id", orderID),
				logger.NewField("error", err),
			).Error("update order")
		}
		h.writeJSON(w, status, converters.ToErrorResponse(err))
		return
	}

	h.writeJSON(w, http.StatusOK, dto.OrderResponse{
		Data: converters.FromDomain(updated),
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
