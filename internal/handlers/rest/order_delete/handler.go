package order_delete

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
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
	orderID := mux.Vars(r)["orderId"]

	err := h.service.DeleteOrder(r.Context(), orderID)
	if err != nil {
		status := converters.StatusCode(err)
		if status == http.StatusInternalServerError {
			h.log.With(
				logger.NewField("order_id", orderID),
				logger.NewField("error", err),
			).Error("delete order")
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		err = json.NewEncoder(w).Encode(converters.ToErrorResponse(err))
		if err != nil {
			h.log.With(
				logger.NewField("error", err),
			).Error("encode JSON response")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
