package timeout

import (
	"context"
	"net/http"
	"time"
)

// Middleware bounds the request context so storage calls made by the order
// handlers are cancelled once the budget is spent. A non-positive budget
// disables the bound.
func Middleware(budget time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if budget <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), budget)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
