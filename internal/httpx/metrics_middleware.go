package httpx

import (
	"net/http"
	"time"

	"hpportal/internal/platform/metrics"
)

// MetricsMiddleware records request counts and latency per route pattern.
// It must wrap the ServeMux directly so the matched pattern is visible on r.
func MetricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := wrapResponseWriter(w)

			next.ServeHTTP(rw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.ObserveRequest(r.Method, route, rw.statusCode, time.Since(start))
		})
	}
}
