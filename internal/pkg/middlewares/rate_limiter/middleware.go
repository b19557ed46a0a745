package rate_limiter

import (
	"encoding/json"
	"net/http"
	"strconv"

	"grubdash/internal/generated/dto"
	"grubdash/internal/pkg/middlewares/metrics"
	"grubdash/pkg/logger"
)

const MessageRateLimited = "Rate limit exceeded. Try again later."

func Middleware(log handlerLogger, limit int, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			route := metrics.RouteLabel(r)
			RateLimitExceededTotal.WithLabelValues(r.Method, route).Inc()

			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("route", route),
				logger.NewField("remote_addr", r.RemoteAddr),
			).Warn("rate limit exceeded")

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)

			err := json.NewEncoder(w).Encode(dto.ErrorResponse{Message: MessageRateLimited})
			if err != nil {
				log.With(
					logger.NewField("error", err),
				).Error("encode JSON response")
			}
		})
	}
}
