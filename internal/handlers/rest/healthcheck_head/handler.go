package healthcheck_head

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"grubdash/pkg/logger"
)

const pingTimeout = 2 * time.Second

type Handler struct {
	log            handlerLogger
	isShuttingDown *atomic.Bool
	storage        Pinger
}

func New(log handlerLogger, isShuttingDown *atomic.Bool, storage Pinger) *Handler {
	return &Handler{
		log:            log.With(),
		isShuttingDown: isShuttingDown,
		storage:        storage,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.isShuttingDown.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	err := h.storage.Ping(ctx)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Warn("order storage is unreachable")
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
